package validator

import (
	"sort"

	"github.com/kirra-gql/validate/ast"
	"github.com/kirra-gql/validate/schema"
)

// fieldsDefinedOnType trusts the frame the engine already pushed for
// this field: enter() resolved the field and pushed absent if it
// couldn't be found on parent's type.
func fieldsDefinedOnType(c *context, parent frame, f *ast.Field) error {
	if c.top().known {
		return nil
	}
	if !parent.known {
		return nil
	}
	return newError("Cannot query field %q on type %q.", f.Name.Value, typeName(parent.typ))
}

func argumentsDefinedOnType(fd *schema.FieldDefinition, f *ast.Field) error {
	if fd == nil {
		return nil
	}
	for _, arg := range f.Arguments {
		if fd.Arguments == nil || fd.Arguments[arg.Name.Value] == nil {
			return newError("Unknown argument %q on field %q.", arg.Name.Value, f.Name.Value)
		}
	}
	return nil
}

func scalarFieldsAreLeaves(c *context, f *ast.Field) error {
	t := c.top()
	if !t.known || !schema.IsScalarType(t.typ) {
		return nil
	}
	if f.SelectionSet != nil {
		return newError("Scalar values cannot have subselections")
	}
	return nil
}

func compositeFieldsAreNotLeaves(c *context, f *ast.Field) error {
	t := c.top()
	if !t.known || !schema.IsCompositeType(t.typ) {
		return nil
	}
	if f.SelectionSet == nil {
		return newError("Composite types must have subselections")
	}
	return nil
}

func uniqueArgumentNames(args []*ast.Argument) error {
	seen := map[string]bool{}
	for _, a := range args {
		if seen[a.Name.Value] {
			return newError("There can be only one argument named %q.", a.Name.Value)
		}
		seen[a.Name.Value] = true
	}
	return nil
}

// requiredArgumentsPresent sorts the field's declared argument names so
// that which missing argument gets reported first is deterministic,
// despite Go's randomized map iteration order.
func requiredArgumentsPresent(fd *schema.FieldDefinition, f *ast.Field) error {
	if fd == nil {
		return nil
	}
	provided := map[string]bool{}
	for _, a := range f.Arguments {
		provided[a.Name.Value] = true
	}
	names := make([]string, 0, len(fd.Arguments))
	for n := range fd.Arguments {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		if schema.IsNonNullType(fd.Arguments[n].Type) && !provided[n] {
			return newError("Required argument %q was not supplied.", n)
		}
	}
	return nil
}
