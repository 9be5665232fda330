package validator

import (
	"github.com/kirra-gql/validate/ast"
	"github.com/kirra-gql/validate/schema"
)

func fragmentHasValidType(c *context, typeCondition *ast.NamedType) error {
	if typeCondition == nil {
		return nil
	}
	t := c.schema.GetType(typeCondition.Name.Value)
	if t == nil {
		return newError("Unknown type %q.", typeCondition.Name.Value)
	}
	if !schema.IsCompositeType(t) {
		return newError("Fragment cannot condition on non composite type %q.", typeCondition.Name.Value)
	}
	return nil
}

func fragmentSpreadTargetDefined(c *context, fs *ast.FragmentSpread) error {
	if _, ok := c.fragmentMap[fs.Name.Value]; !ok {
		return newError("Unknown fragment %q.", fs.Name.Value)
	}
	return nil
}

// fragmentDefinitionHasNoCycles shares one seen set across the entire
// transitive scan of fd's spreads. That means any fragment revisited
// along two different branches is reported as a cycle even when it
// isn't one -- preserved faithfully rather than fixed.
func fragmentDefinitionHasNoCycles(c *context, fd *ast.FragmentDefinition) error {
	seen := map[string]bool{fd.Name.Value: true}
	var walk func(ss *ast.SelectionSet) error
	walk = func(ss *ast.SelectionSet) error {
		if ss == nil {
			return nil
		}
		for _, sel := range ss.Selections {
			switch s := sel.(type) {
			case *ast.FragmentSpread:
				name := s.Name.Value
				if seen[name] {
					return newError("Cannot spread fragment %q within itself.", name)
				}
				seen[name] = true
				if target, ok := c.fragmentMap[name]; ok {
					if err := walk(target.SelectionSet); err != nil {
						return err
					}
				}
			case *ast.InlineFragment:
				if err := walk(s.SelectionSet); err != nil {
					return err
				}
			}
		}
		return nil
	}
	return walk(fd.SelectionSet)
}

// fragmentSpreadIsPossible checks whether parent and target share at
// least one possible concrete Object type. An unresolved parent or
// target abstains -- some other rule already reported the unresolvable
// type.
func fragmentSpreadIsPossible(c *context, parent, target frame) error {
	if !parent.known || !target.known {
		return nil
	}
	parentTypes := schema.PossibleObjectTypes(c.schema, parent.typ)
	targetTypes := schema.PossibleObjectTypes(c.schema, target.typ)
	if parentTypes == nil || targetTypes == nil {
		return nil
	}
	for name := range targetTypes {
		if _, ok := parentTypes[name]; ok {
			return nil
		}
	}
	return newError("Fragment type condition is not possible for given type")
}
