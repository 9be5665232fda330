package ast

// Type is implemented by the three type-reference node shapes that can
// appear in a fragment's type condition or (were variables in scope) a
// variable definition.
type Type interface {
	Node
}

type NamedType struct{ Name *Name }

func (*NamedType) Kind() Kind { return KindNamedType }

type ListType struct{ Type Type }

func (*ListType) Kind() Kind { return KindListType }

type NonNullType struct{ Type Type }

func (*NonNullType) Kind() Kind { return KindNonNullType }
