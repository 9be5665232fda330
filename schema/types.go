package schema

import "github.com/kirra-gql/validate/ast"

// Type is implemented by every schema type variant. It carries no
// methods of its own; callers type-switch on the concrete variant, the
// same way the validator's rules do.
type Type interface {
	isType()
}

// NamedTyper is implemented by every type variant that has a name of
// its own, i.e. everything except List and NonNull wrappers.
type NamedTyper interface {
	Type
	TypeName() string
}

// FieldDefinition describes one field of an Object or Interface type.
type FieldDefinition struct {
	Type      Type
	Arguments map[string]*InputValueDefinition
}

// InputValueDefinition describes an argument or input object field.
type InputValueDefinition struct {
	Type Type
}

// ObjectType is a concrete, selectable type.
type ObjectType struct {
	Name       string
	Interfaces []*InterfaceType
	Fields     map[string]*FieldDefinition
}

func (*ObjectType) isType()            {}
func (t *ObjectType) TypeName() string { return t.Name }

// InterfaceType declares a set of fields that implementing Objects must
// provide.
type InterfaceType struct {
	Name   string
	Fields map[string]*FieldDefinition
}

func (*InterfaceType) isType()            {}
func (t *InterfaceType) TypeName() string { return t.Name }

// UnionType is the disjoint union of a set of Object types.
type UnionType struct {
	Name  string
	Types []*ObjectType
}

func (*UnionType) isType()            {}
func (t *UnionType) TypeName() string { return t.Name }

// ScalarType is a leaf type whose literal values are coerced by
// ParseLiteral. ParseLiteral should return (value, true) on success and
// (nil, false) if the literal can't be coerced to this scalar.
type ScalarType struct {
	Name         string
	ParseLiteral func(ast.Value) (interface{}, bool)
}

func (*ScalarType) isType()            {}
func (t *ScalarType) TypeName() string { return t.Name }

// EnumType is a leaf type whose valid literal values are named members.
type EnumType struct {
	Name   string
	Values map[string]struct{}
}

func (*EnumType) isType()            {}
func (t *EnumType) TypeName() string { return t.Name }

// InputObjectType describes the shape of an object literal usable as an
// argument or default value.
type InputObjectType struct {
	Name   string
	Fields map[string]*InputValueDefinition
}

func (*InputObjectType) isType()            {}
func (t *InputObjectType) TypeName() string { return t.Name }

// NonNullType wraps another type, forbidding the null literal.
type NonNullType struct{ OfType Type }

func (*NonNullType) isType() {}

// ListType wraps another type, admitting list literals of it.
type ListType struct{ OfType Type }

func (*ListType) isType() {}

func IsObjectType(t Type) bool      { _, ok := t.(*ObjectType); return ok }
func IsInterfaceType(t Type) bool   { _, ok := t.(*InterfaceType); return ok }
func IsUnionType(t Type) bool       { _, ok := t.(*UnionType); return ok }
func IsScalarType(t Type) bool      { _, ok := t.(*ScalarType); return ok }
func IsEnumType(t Type) bool        { _, ok := t.(*EnumType); return ok }
func IsInputObjectType(t Type) bool { _, ok := t.(*InputObjectType); return ok }
func IsNonNullType(t Type) bool     { _, ok := t.(*NonNullType); return ok }
func IsListType(t Type) bool        { _, ok := t.(*ListType); return ok }

// IsCompositeType reports whether t is an Object, Interface, or Union --
// the three type kinds that can own a selection set.
func IsCompositeType(t Type) bool {
	switch t.(type) {
	case *ObjectType, *InterfaceType, *UnionType:
		return true
	default:
		return false
	}
}

// IsLeafType reports whether t is a Scalar or Enum -- the two type
// kinds that must not have a subselection.
func IsLeafType(t Type) bool {
	switch t.(type) {
	case *ScalarType, *EnumType:
		return true
	default:
		return false
	}
}

// Unwrap strips NonNull and List wrappers, returning the innermost
// named type. A nil input yields a nil output.
func Unwrap(t Type) Type {
	for {
		switch w := t.(type) {
		case *NonNullType:
			t = w.OfType
		case *ListType:
			t = w.OfType
		default:
			return t
		}
	}
}

// SameType reports whether a and b are the same named type, comparing
// by identity for composites/leaves and structurally for List/NonNull
// wrappers.
func SameType(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch a := a.(type) {
	case *NonNullType:
		b, ok := b.(*NonNullType)
		return ok && SameType(a.OfType, b.OfType)
	case *ListType:
		b, ok := b.(*ListType)
		return ok && SameType(a.OfType, b.OfType)
	default:
		return a == b
	}
}

// Fields returns the field map of t if it's an Object or Interface, or
// nil otherwise.
func Fields(t Type) map[string]*FieldDefinition {
	switch t := t.(type) {
	case *ObjectType:
		return t.Fields
	case *InterfaceType:
		return t.Fields
	default:
		return nil
	}
}

// PossibleObjectTypes returns the set of concrete Object types that t
// could resolve to at execution time, keyed by name. It returns nil for
// types that aren't Object, Interface, or Union.
func PossibleObjectTypes(s *Schema, t Type) map[string]*ObjectType {
	switch t := t.(type) {
	case *ObjectType:
		return map[string]*ObjectType{t.Name: t}
	case *InterfaceType:
		ret := map[string]*ObjectType{}
		for _, obj := range s.GetImplementors(t.Name) {
			ret[obj.Name] = obj
		}
		return ret
	case *UnionType:
		ret := map[string]*ObjectType{}
		for _, obj := range t.Types {
			ret[obj.Name] = obj
		}
		return ret
	default:
		return nil
	}
}
