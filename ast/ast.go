// Package ast defines the node shapes produced by an upstream GraphQL
// query parser. Validator consumes these types but never constructs or
// mutates them; they're pure data.
package ast

// Kind discriminates the concrete shape of a Node. The validator's
// traversal engine itself dispatches with type switches on the concrete
// node types; Kind is the tag-style discriminator for other consumers
// and for comparing value kinds.
type Kind string

const (
	KindDocument           Kind = "Document"
	KindOperation          Kind = "Operation"
	KindFragmentDefinition Kind = "FragmentDefinition"
	KindSelectionSet       Kind = "SelectionSet"
	KindField              Kind = "Field"
	KindInlineFragment     Kind = "InlineFragment"
	KindFragmentSpread     Kind = "FragmentSpread"
	KindArgument           Kind = "Argument"

	KindNamedType   Kind = "NamedType"
	KindListType    Kind = "ListType"
	KindNonNullType Kind = "NonNullType"

	KindIntValue         Kind = "IntValue"
	KindFloatValue       Kind = "FloatValue"
	KindStringValue      Kind = "StringValue"
	KindBooleanValue     Kind = "BooleanValue"
	KindNullValue        Kind = "NullValue"
	KindEnumValue        Kind = "EnumValue"
	KindListValue        Kind = "ListValue"
	KindInputObjectValue Kind = "InputObjectValue"
	KindVariable         Kind = "Variable"
)

// Node is implemented by every AST shape. Kind reports which of the
// Kind constants the shape is.
type Node interface {
	Kind() Kind
}

// Name is a bare identifier, e.g. a field, argument, or type name.
type Name struct {
	Value string
}

// Document is the root node: an ordered list of operation and fragment
// definitions.
type Document struct {
	Definitions []Definition
}

func (*Document) Kind() Kind { return KindDocument }

// Definition is implemented by Operation and FragmentDefinition.
type Definition interface {
	Node
}

// Operation is an anonymous or named operation. The validator always
// checks selections against the schema's query root; this mirrors the
// upstream implementation's simplification of ignoring the operation
// type (query/mutation/subscription) when resolving the root type.
type Operation struct {
	Name         *Name
	Directives   []*Directive
	SelectionSet *SelectionSet
}

func (*Operation) Kind() Kind                     { return KindOperation }
func (o *Operation) GetDirectives() []*Directive   { return o.Directives }
func (o *Operation) GetSelectionSet() *SelectionSet { return o.SelectionSet }

// FragmentDefinition declares a reusable named fragment.
type FragmentDefinition struct {
	Name          *Name
	TypeCondition *NamedType
	Directives    []*Directive
	SelectionSet  *SelectionSet
}

func (*FragmentDefinition) Kind() Kind                      { return KindFragmentDefinition }
func (f *FragmentDefinition) GetDirectives() []*Directive    { return f.Directives }
func (f *FragmentDefinition) GetSelectionSet() *SelectionSet { return f.SelectionSet }

// SelectionSet is an ordered list of selections.
type SelectionSet struct {
	Selections []Selection
}

func (*SelectionSet) Kind() Kind { return KindSelectionSet }

// Selection is implemented by Field, InlineFragment, and FragmentSpread.
type Selection interface {
	Node
}

// Field selects a field, optionally under an alias, with optional
// arguments, directives, and a subselection.
type Field struct {
	Alias        *Name
	Name         *Name
	Arguments    []*Argument
	Directives   []*Directive
	SelectionSet *SelectionSet
}

func (*Field) Kind() Kind                   { return KindField }
func (f *Field) GetDirectives() []*Directive { return f.Directives }

// OutputKey is the alias if present, else the field's own name -- the
// key under which the field's result would appear in the response.
func (f *Field) OutputKey() string {
	if f.Alias != nil {
		return f.Alias.Value
	}
	return f.Name.Value
}

// InlineFragment is an anonymous fragment embedded in a selection set.
type InlineFragment struct {
	TypeCondition *NamedType
	Directives    []*Directive
	SelectionSet  *SelectionSet
}

func (*InlineFragment) Kind() Kind                      { return KindInlineFragment }
func (f *InlineFragment) GetDirectives() []*Directive    { return f.Directives }
func (f *InlineFragment) GetSelectionSet() *SelectionSet { return f.SelectionSet }

// FragmentSpread references a fragment definition by name.
type FragmentSpread struct {
	Name       *Name
	Directives []*Directive
}

func (*FragmentSpread) Kind() Kind                   { return KindFragmentSpread }
func (f *FragmentSpread) GetDirectives() []*Directive { return f.Directives }

// Argument is a name/value pair, attached to a Field or Directive.
type Argument struct {
	Name  *Name
	Value Value
}

func (*Argument) Kind() Kind { return KindArgument }

// Directive is an @-prefixed annotation on some node.
type Directive struct {
	Name      *Name
	Arguments []*Argument
}

// HasDirectives is implemented by every node kind that may carry
// directives, letting directivesAreDefined operate generically.
type HasDirectives interface {
	Node
	GetDirectives() []*Directive
}

// HasSelectionSet is implemented by node kinds that own a (possibly nil)
// subselection.
type HasSelectionSet interface {
	Node
	GetSelectionSet() *SelectionSet
}

var (
	_ HasDirectives = (*Operation)(nil)
	_ HasDirectives = (*FragmentDefinition)(nil)
	_ HasDirectives = (*Field)(nil)
	_ HasDirectives = (*InlineFragment)(nil)
	_ HasDirectives = (*FragmentSpread)(nil)

	_ HasSelectionSet = (*Operation)(nil)
	_ HasSelectionSet = (*FragmentDefinition)(nil)
	_ HasSelectionSet = (*InlineFragment)(nil)
)
