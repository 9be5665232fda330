package validator

import (
	"github.com/kirra-gql/validate/ast"
	"github.com/kirra-gql/validate/schema"
)

func argumentsOfCorrectType(fd *schema.FieldDefinition, f *ast.Field) error {
	if fd == nil {
		return nil
	}
	for _, arg := range f.Arguments {
		argDef, ok := fd.Arguments[arg.Name.Value]
		if !ok {
			// argumentsDefinedOnType already reports unknown arguments.
			continue
		}
		if err := checkValueType(argDef.Type, arg.Value, arg.Name.Value); err != nil {
			return err
		}
	}
	return nil
}

// checkValueType coerces a literal against a declared type, per the
// kind-by-kind rules in §4.2. Variables are accepted unconditionally;
// checking them against their runtime values is out of scope.
func checkValueType(t schema.Type, v ast.Value, argName string) error {
	if _, ok := v.(*ast.Variable); ok {
		return nil
	}
	switch w := t.(type) {
	case *schema.NonNullType:
		if ast.IsNull(v) {
			return newError("Argument %q must not be null.", argName)
		}
		return checkValueType(w.OfType, v, argName)
	case *schema.ListType:
		if ast.IsNull(v) {
			return nil
		}
		lv, ok := v.(*ast.ListValue)
		if !ok {
			return newError("Argument %q must be a list.", argName)
		}
		for _, el := range lv.Values {
			if err := checkValueType(w.OfType, el, argName); err != nil {
				return err
			}
		}
		return nil
	case *schema.InputObjectType:
		if ast.IsNull(v) {
			return nil
		}
		iv, ok := v.(*ast.InputObjectValue)
		if !ok {
			return newError("Argument %q must be an object.", argName)
		}
		for _, field := range iv.Fields {
			fieldDef, ok := w.Fields[field.Name.Value]
			if !ok {
				return newError("Unknown field %q on input type %q.", field.Name.Value, w.Name)
			}
			if err := checkValueType(fieldDef.Type, field.Value, field.Name.Value); err != nil {
				return err
			}
		}
		return nil
	case *schema.EnumType:
		if ast.IsNull(v) {
			return nil
		}
		ev, ok := v.(*ast.EnumValue)
		if !ok {
			return newError("Argument %q must be an enum value.", argName)
		}
		if _, ok := w.Values[ev.Value]; !ok {
			return newError("Value %q is not a valid value for enum %q.", ev.Value, w.Name)
		}
		return nil
	case *schema.ScalarType:
		if ast.IsNull(v) {
			return nil
		}
		if w.ParseLiteral == nil {
			return nil
		}
		if _, ok := w.ParseLiteral(v); !ok {
			return newError("Argument %q has an invalid value for scalar %q.", argName, w.Name)
		}
		return nil
	default:
		return nil
	}
}

// uniqueInputObjectFields recursively descends through list and input
// object values, rejecting any input object with a duplicate field
// name.
func uniqueInputObjectFields(v ast.Value) error {
	switch w := v.(type) {
	case *ast.ListValue:
		for _, el := range w.Values {
			if err := uniqueInputObjectFields(el); err != nil {
				return err
			}
		}
	case *ast.InputObjectValue:
		seen := map[string]bool{}
		for _, f := range w.Fields {
			if seen[f.Name.Value] {
				return newError("There can be only one input field named %q.", f.Name.Value)
			}
			seen[f.Name.Value] = true
			if err := uniqueInputObjectFields(f.Value); err != nil {
				return err
			}
		}
	}
	return nil
}
