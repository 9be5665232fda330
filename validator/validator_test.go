package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kirra-gql/validate/ast"
)

func TestValidate_EmptyDocumentSucceeds(t *testing.T) {
	assert.NoError(t, Validate(testSchema(), doc()))
}

func TestFields_ScalarFieldsAreLeaves(t *testing.T) {
	// { id { x } } -- id is a scalar, so subselecting it is invalid.
	err := Validate(testSchema(), query(selSet(fld("id", selSet(fld("x", nil))))))
	if assert.Error(t, err) {
		assert.Equal(t, "Scalar values cannot have subselections", err.Error())
	}

	assert.NoError(t, Validate(testSchema(), query(selSet(fld("id", nil)))))
}

func TestFields_CompositeFieldsAreNotLeaves(t *testing.T) {
	// { me } -- me is a User (composite), and carries no subselection.
	err := Validate(testSchema(), query(selSet(fld("me", nil))))
	if assert.Error(t, err) {
		assert.Equal(t, "Composite types must have subselections", err.Error())
	}

	assert.NoError(t, Validate(testSchema(), query(selSet(fld("me", selSet(fld("name", nil)))))))
}

func TestFields_FieldsDefinedOnType(t *testing.T) {
	assert.Error(t, Validate(testSchema(), query(selSet(fld("nope", nil)))))
	assert.NoError(t, Validate(testSchema(), query(selSet(fld("a", nil)))))
}

func TestArguments_RequiredArgumentsPresent(t *testing.T) {
	err := Validate(testSchema(), query(selSet(fld("pick", nil))))
	if assert.Error(t, err) {
		assert.Equal(t, `Required argument "x" was not supplied.`, err.Error())
	}

	assert.NoError(t, Validate(testSchema(), query(selSet(fld("pick", nil, arg("x", intVal("1")))))))
}

func TestArguments_UnknownArgument(t *testing.T) {
	assert.Error(t, Validate(testSchema(), query(selSet(fld("pick", nil, arg("y", intVal("1")))))))
}

func TestArguments_UniqueArgumentNames(t *testing.T) {
	assert.Error(t, Validate(testSchema(), query(selSet(fld("pick", nil,
		arg("x", intVal("1")), arg("x", intVal("2")),
	)))))
}

func TestArguments_OfCorrectType(t *testing.T) {
	assert.NoError(t, Validate(testSchema(), query(selSet(fld("pick", nil, arg("x", intVal("1")))))))
	assert.Error(t, Validate(testSchema(), query(selSet(fld("pick", nil, arg("x", strVal("1")))))))
	assert.Error(t, Validate(testSchema(), query(selSet(fld("pick", nil, arg("x", nullVal()))))))

	// a variable reference is never flagged -- coercing it is out of scope.
	assert.NoError(t, Validate(testSchema(), query(selSet(fld("pick", nil, arg("x", &ast.Variable{Name: name("v")}))))))
}

func TestValues_UniqueInputObjectFields(t *testing.T) {
	obj := &ast.InputObjectValue{Fields: []*ast.ObjectField{
		{Name: name("name"), Value: strVal("a")},
		{Name: name("name"), Value: strVal("b")},
	}}
	err := Validate(testSchema(), query(selSet(fld("count", nil, arg("filter", obj)))))
	if assert.Error(t, err) {
		assert.Equal(t, `There can be only one input field named "name".`, err.Error())
	}
}

func TestOperations_UniqueOperationNames(t *testing.T) {
	d := doc(
		namedOp("A", selSet(fld("a", nil))),
		namedOp("A", selSet(fld("b", nil))),
	)
	err := Validate(testSchema(), d)
	if assert.Error(t, err) {
		assert.Equal(t, `There can be only one operation named "A".`, err.Error())
	}
}

func TestOperations_LoneAnonymousOperation(t *testing.T) {
	anon := &ast.Operation{SelectionSet: selSet(fld("a", nil))}

	assert.Error(t, Validate(testSchema(), doc(anon, namedOp("A", selSet(fld("b", nil))))))
	assert.Error(t, Validate(testSchema(), doc(namedOp("A", selSet(fld("b", nil))), anon)))
	assert.Error(t, Validate(testSchema(), doc(anon, anon)))
	assert.NoError(t, Validate(testSchema(), doc(anon)))
}

func TestSelections_AmbiguousFieldsOnSameParent(t *testing.T) {
	// { x: a  x: b } -- same output key, different field names, same
	// parent Object type: must fail.
	err := Validate(testSchema(), query(selSet(
		aliased("x", "a", nil),
		aliased("x", "b", nil),
	)))
	if assert.Error(t, err) {
		assert.Equal(t, "Type name mismatch", err.Error())
	}

	assert.NoError(t, Validate(testSchema(), query(selSet(
		aliased("x", "a", nil),
		aliased("x", "a", nil),
	))))
}

func TestSelections_ArgumentOrderDoesNotAffectMerging(t *testing.T) {
	a := fld("node", selSet(fld("name", nil)), arg("id", strVal("1")))
	b := fld("node", selSet(fld("name", nil)), arg("id", strVal("1")))
	assert.NoError(t, Validate(testSchema(), query(selSet(a, b))))

	c := fld("node", selSet(fld("name", nil)), arg("id", strVal("2")))
	err := Validate(testSchema(), query(selSet(a, c)))
	if assert.Error(t, err) {
		assert.Equal(t, "Argument mismatch", err.Error())
	}

	// the same arguments listed in a different order still merge.
	filter := &ast.InputObjectValue{Fields: []*ast.ObjectField{{Name: name("name"), Value: strVal("x")}}}
	limitFirst := fld("count", nil, arg("limit", intVal("5")), arg("filter", filter))
	filterFirst := fld("count", nil, arg("filter", filter), arg("limit", intVal("5")))
	assert.NoError(t, Validate(testSchema(), query(selSet(limitFirst, filterFirst))))
}

func TestSelections_DisjointObjectTypesMayDifferInFieldName(t *testing.T) {
	// fragments on disjoint concrete types of an interface can alias
	// different field names to the same output key.
	petSel := selSet(
		inlineOn("Dog", selSet(aliased("volume", "barkVolume", nil))),
		inlineOn("Cat", selSet(aliased("volume", "meowVolume", nil))),
	)
	assert.NoError(t, Validate(testSchema(), query(selSet(fld("pet", petSel)))))
}

func TestFragments_FragmentSpreadTargetDefined(t *testing.T) {
	d := query(selSet(spreadOf("Missing")))
	assert.Error(t, Validate(testSchema(), d))
}

func TestFragments_NoUnusedFragments(t *testing.T) {
	d := doc(
		&ast.Operation{SelectionSet: selSet(fld("a", nil))},
		fragDef("F", "User", selSet(fld("name", nil))),
	)
	err := Validate(testSchema(), d)
	if assert.Error(t, err) {
		assert.Equal(t, `Fragment "F" was not used.`, err.Error())
	}
}

func TestFragments_UniqueFragmentNames(t *testing.T) {
	d := doc(
		fragDef("F", "User", selSet(fld("name", nil))),
		fragDef("F", "User", selSet(fld("name", nil))),
		&ast.Operation{SelectionSet: selSet(fld("me", selSet(spreadOf("F"))))},
	)
	assert.Error(t, Validate(testSchema(), d))
}

func TestFragments_FragmentSpreadIsPossible(t *testing.T) {
	// Dog has no relationship to User -- spreading a User fragment
	// under a Dog selection is impossible.
	d := doc(
		fragDef("F", "User", selSet(fld("name", nil))),
		&ast.Operation{SelectionSet: selSet(fld("pet", selSet(inlineOn("Dog", selSet(spreadOf("F"))))))},
	)
	err := Validate(testSchema(), d)
	if assert.Error(t, err) {
		assert.Equal(t, "Fragment type condition is not possible for given type", err.Error())
	}
}

func TestFragments_FragmentHasValidType(t *testing.T) {
	d := doc(
		fragDef("F", "DoesNotExist", selSet(fld("name", nil))),
		&ast.Operation{SelectionSet: selSet(fld("me", selSet(spreadOf("F"))))},
	)
	assert.Error(t, Validate(testSchema(), d))

	d2 := doc(
		fragDef("F", "Int", selSet(fld("name", nil))),
		&ast.Operation{SelectionSet: selSet(fld("me", selSet(spreadOf("F"))))},
	)
	assert.Error(t, Validate(testSchema(), d2))
}

func TestFragments_CycleDetection(t *testing.T) {
	a := fragDef("A", "User", selSet(spreadOf("B")))
	b := fragDef("B", "User", selSet(spreadOf("A")))
	d := doc(a, b, &ast.Operation{SelectionSet: selSet(fld("me", selSet(spreadOf("A"))))})
	assert.Error(t, Validate(testSchema(), d))
}

func TestDirectives_AreDefined(t *testing.T) {
	f := fld("a", nil)
	f.Directives = []*ast.Directive{{Name: name("bogus")}}
	assert.Error(t, Validate(testSchema(), query(selSet(f))))

	f2 := fld("a", nil)
	f2.Directives = []*ast.Directive{{Name: name("include"), Arguments: []*ast.Argument{arg("if", boolVal(true))}}}
	assert.NoError(t, Validate(testSchema(), query(selSet(f2))))
}

func TestValidate_IsPure(t *testing.T) {
	s := testSchema()
	d := query(selSet(fld("me", selSet(fld("name", nil)))))
	assert.NoError(t, Validate(s, d))
	assert.NoError(t, Validate(s, d))
}
