// Package validator implements the static validation pass that decides
// whether a parsed query document is executable against a schema. It
// walks the document depth-first, keyed by node kind, checking a fixed
// set of rules at each kind and threading a context that accumulates
// name tables, fragment usage, and a type stack as it goes.
//
// Validation fails fast: the first rule to report a problem ends the
// walk, and that rule's Error is the only one returned.
package validator

import (
	"github.com/kirra-gql/validate/ast"
	"github.com/kirra-gql/validate/schema"
)

// Validate checks doc against s, returning nil if it's executable or
// the first violation otherwise. It neither mutates s nor doc, and a
// context is never reused across calls.
func Validate(s *schema.Schema, doc *ast.Document) error {
	c := newContext(s, doc)
	return c.visitDocument(doc)
}

func (c *context) visitDocument(doc *ast.Document) error {
	for _, def := range doc.Definitions {
		if fd, ok := def.(*ast.FragmentDefinition); ok {
			c.fragmentMap[fd.Name.Value] = fd
		}
	}

	if err := uniqueFragmentNames(c, doc); err != nil {
		return err
	}

	for _, def := range doc.Definitions {
		switch d := def.(type) {
		case *ast.Operation:
			if err := c.visitOperation(d); err != nil {
				return err
			}
		case *ast.FragmentDefinition:
			if err := c.visitFragmentDefinition(d); err != nil {
				return err
			}
		}
	}

	return noUnusedFragments(c, doc)
}

func (c *context) visitOperation(op *ast.Operation) error {
	c.push(known(c.schema.Query()))
	defer c.pop()

	if err := uniqueOperationNames(c, op); err != nil {
		return err
	}
	if err := loneAnonymousOperation(c, op); err != nil {
		return err
	}
	if err := directivesAreDefined(c, op); err != nil {
		return err
	}

	if op.SelectionSet != nil {
		return c.visitSelectionSet(op.SelectionSet)
	}
	return nil
}

func (c *context) visitSelectionSet(ss *ast.SelectionSet) error {
	if err := unambiguousSelections(c, ss); err != nil {
		return err
	}
	for _, sel := range ss.Selections {
		switch s := sel.(type) {
		case *ast.Field:
			if err := c.visitField(s); err != nil {
				return err
			}
		case *ast.InlineFragment:
			if err := c.visitInlineFragment(s); err != nil {
				return err
			}
		case *ast.FragmentSpread:
			if err := c.visitFragmentSpread(s); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *context) visitField(f *ast.Field) error {
	parent := c.top()
	fd := fieldDefinition(parent, f.Name.Value)
	if fd != nil {
		c.push(known(fd.Type))
	} else {
		c.push(absent)
	}
	defer c.pop()

	if err := fieldsDefinedOnType(c, parent, f); err != nil {
		return err
	}
	if err := argumentsDefinedOnType(fd, f); err != nil {
		return err
	}
	if err := scalarFieldsAreLeaves(c, f); err != nil {
		return err
	}
	if err := compositeFieldsAreNotLeaves(c, f); err != nil {
		return err
	}
	if err := uniqueArgumentNames(f.Arguments); err != nil {
		return err
	}
	if err := argumentsOfCorrectType(fd, f); err != nil {
		return err
	}
	if err := requiredArgumentsPresent(fd, f); err != nil {
		return err
	}
	if err := directivesAreDefined(c, f); err != nil {
		return err
	}

	for _, arg := range f.Arguments {
		if err := uniqueInputObjectFields(arg.Value); err != nil {
			return err
		}
	}

	if f.SelectionSet != nil {
		return c.visitSelectionSet(f.SelectionSet)
	}
	return nil
}

func (c *context) visitInlineFragment(f *ast.InlineFragment) error {
	parent := c.top()
	target := parent
	if f.TypeCondition != nil {
		if t := c.schema.GetType(f.TypeCondition.Name.Value); t != nil {
			target = known(t)
		} else {
			target = absent
		}
	}
	c.push(target)
	defer c.pop()

	if err := fragmentHasValidType(c, f.TypeCondition); err != nil {
		return err
	}
	if err := fragmentSpreadIsPossible(c, parent, target); err != nil {
		return err
	}
	if err := directivesAreDefined(c, f); err != nil {
		return err
	}

	if f.SelectionSet != nil {
		return c.visitSelectionSet(f.SelectionSet)
	}
	return nil
}

// visitFragmentSpread intentionally never pops the frame it pushes.
// The dispatch table gives fragmentSpread an enter hook but no exit
// hook, so every spread leaks one stack frame -- preserved from the
// source rather than quietly fixed (see the design notes).
func (c *context) visitFragmentSpread(fs *ast.FragmentSpread) error {
	c.usedFragments[fs.Name.Value] = true

	parent := c.top()
	target := absent
	if def, ok := c.fragmentMap[fs.Name.Value]; ok && def.TypeCondition != nil {
		if t := c.schema.GetType(def.TypeCondition.Name.Value); t != nil {
			target = known(t)
		}
	}
	c.push(target)

	if err := fragmentSpreadTargetDefined(c, fs); err != nil {
		return err
	}
	if err := fragmentSpreadIsPossible(c, parent, target); err != nil {
		return err
	}
	return directivesAreDefined(c, fs)
}

func (c *context) visitFragmentDefinition(fd *ast.FragmentDefinition) error {
	target := absent
	if fd.TypeCondition != nil {
		if t := c.schema.GetType(fd.TypeCondition.Name.Value); t != nil {
			target = known(t)
		}
	}
	c.push(target)
	defer c.pop()

	if err := fragmentHasValidType(c, fd.TypeCondition); err != nil {
		return err
	}
	if err := fragmentDefinitionHasNoCycles(c, fd); err != nil {
		return err
	}
	if err := directivesAreDefined(c, fd); err != nil {
		return err
	}

	if fd.SelectionSet != nil {
		return c.visitSelectionSet(fd.SelectionSet)
	}
	return nil
}
