package validator

import (
	"strconv"

	"github.com/kirra-gql/validate/ast"
	"github.com/kirra-gql/validate/schema"
)

// testSchema builds a small, fixed schema shared by every test in this
// package:
//
//	scalar Int
//	scalar String
//	scalar ID
//	scalar Boolean
//
//	input UserFilter { name: String }
//
//	interface Pet { name: String }
//	type Dog implements Pet { name: String, barkVolume: Int }
//	type Cat implements Pet { name: String, meowVolume: Int }
//
//	type User { name: String }
//
//	type Query {
//	  a: Int
//	  b: Int
//	  id: ID
//	  me: User
//	  pet: Pet
//	  pick(x: Int!): Int
//	  node(id: ID!): User
//	  count(filter: UserFilter, limit: Int): Int
//	}
//
//	directive @include(if: Boolean!) on FIELD | FRAGMENT_SPREAD | INLINE_FRAGMENT
func testSchema() *schema.Schema {
	intScalar := &schema.ScalarType{
		Name: "Int",
		ParseLiteral: func(v ast.Value) (interface{}, bool) {
			iv, ok := v.(*ast.IntValue)
			if !ok {
				return nil, false
			}
			n, err := strconv.Atoi(iv.Value)
			return n, err == nil
		},
	}
	stringScalar := &schema.ScalarType{
		Name: "String",
		ParseLiteral: func(v ast.Value) (interface{}, bool) {
			sv, ok := v.(*ast.StringValue)
			return sv.Value, ok
		},
	}
	idScalar := &schema.ScalarType{
		Name: "ID",
		ParseLiteral: func(v ast.Value) (interface{}, bool) {
			switch sv := v.(type) {
			case *ast.StringValue:
				return sv.Value, true
			case *ast.IntValue:
				return sv.Value, true
			default:
				return nil, false
			}
		},
	}
	boolScalar := &schema.ScalarType{
		Name: "Boolean",
		ParseLiteral: func(v ast.Value) (interface{}, bool) {
			bv, ok := v.(*ast.BooleanValue)
			return bv.Value, ok
		},
	}

	pet := &schema.InterfaceType{Name: "Pet"}
	pet.Fields = map[string]*schema.FieldDefinition{
		"name": {Type: stringScalar},
	}

	dog := &schema.ObjectType{Name: "Dog", Interfaces: []*schema.InterfaceType{pet}}
	dog.Fields = map[string]*schema.FieldDefinition{
		"name":       {Type: stringScalar},
		"barkVolume": {Type: intScalar},
	}

	cat := &schema.ObjectType{Name: "Cat", Interfaces: []*schema.InterfaceType{pet}}
	cat.Fields = map[string]*schema.FieldDefinition{
		"name":       {Type: stringScalar},
		"meowVolume": {Type: intScalar},
	}

	user := &schema.ObjectType{Name: "User"}
	user.Fields = map[string]*schema.FieldDefinition{
		"name": {Type: stringScalar},
	}

	query := &schema.ObjectType{Name: "Query"}
	query.Fields = map[string]*schema.FieldDefinition{
		"a":    {Type: intScalar},
		"b":    {Type: intScalar},
		"id":   {Type: idScalar},
		"me":   {Type: user},
		"pet":  {Type: pet},
		"pick": {Type: intScalar, Arguments: map[string]*schema.InputValueDefinition{"x": {Type: &schema.NonNullType{OfType: intScalar}}}},
		"node": {Type: user, Arguments: map[string]*schema.InputValueDefinition{"id": {Type: &schema.NonNullType{OfType: idScalar}}}},
	}

	userFilter := &schema.InputObjectType{Name: "UserFilter", Fields: map[string]*schema.InputValueDefinition{"name": {Type: stringScalar}}}
	query.Fields["count"] = &schema.FieldDefinition{Type: intScalar, Arguments: map[string]*schema.InputValueDefinition{
		"filter": {Type: userFilter},
		"limit":  {Type: intScalar},
	}}

	includeDirective := &schema.Directive{
		Name:      "include",
		Locations: []schema.DirectiveLocation{schema.DirectiveLocationField, schema.DirectiveLocationFragmentSpread, schema.DirectiveLocationInlineFragment},
		Arguments: map[string]*schema.InputValueDefinition{"if": {Type: &schema.NonNullType{OfType: boolScalar}}},
	}

	s, err := schema.New(&schema.Definition{
		Query: query,
		Types: []schema.Type{
			intScalar, stringScalar, idScalar, boolScalar,
			pet, dog, cat, user, userFilter,
		},
		Directives: []*schema.Directive{includeDirective},
	})
	if err != nil {
		panic(err)
	}
	return s
}

// --- tiny AST builders, enough to write the tests below by hand ---

func name(v string) *ast.Name { return &ast.Name{Value: v} }

func selSet(selections ...ast.Selection) *ast.SelectionSet {
	return &ast.SelectionSet{Selections: selections}
}

func fld(n string, ss *ast.SelectionSet, args ...*ast.Argument) *ast.Field {
	return &ast.Field{Name: name(n), Arguments: args, SelectionSet: ss}
}

func aliased(alias, n string, ss *ast.SelectionSet, args ...*ast.Argument) *ast.Field {
	return &ast.Field{Alias: name(alias), Name: name(n), Arguments: args, SelectionSet: ss}
}

func arg(n string, v ast.Value) *ast.Argument {
	return &ast.Argument{Name: name(n), Value: v}
}

func intVal(v string) *ast.IntValue       { return &ast.IntValue{Value: v} }
func strVal(v string) *ast.StringValue    { return &ast.StringValue{Value: v} }
func boolVal(v bool) *ast.BooleanValue    { return &ast.BooleanValue{Value: v} }
func nullVal() *ast.NullValue             { return &ast.NullValue{} }
func spreadOf(n string) *ast.FragmentSpread {
	return &ast.FragmentSpread{Name: name(n)}
}

func inlineOn(t string, ss *ast.SelectionSet) *ast.InlineFragment {
	return &ast.InlineFragment{TypeCondition: &ast.NamedType{Name: name(t)}, SelectionSet: ss}
}

func query(ss *ast.SelectionSet) *ast.Document {
	return &ast.Document{Definitions: []ast.Definition{&ast.Operation{SelectionSet: ss}}}
}

func namedOp(opName string, ss *ast.SelectionSet) *ast.Operation {
	return &ast.Operation{Name: name(opName), SelectionSet: ss}
}

func doc(defs ...ast.Definition) *ast.Document {
	return &ast.Document{Definitions: defs}
}

func fragDef(n, typeCond string, ss *ast.SelectionSet) *ast.FragmentDefinition {
	return &ast.FragmentDefinition{Name: name(n), TypeCondition: &ast.NamedType{Name: name(typeCond)}, SelectionSet: ss}
}
