// Package jsondoc decodes the CLI's on-disk JSON representations of a
// query document and a schema into the ast and schema packages' native
// types. It exists because the validator core deliberately has no
// parser of its own (see the validator package's scope notes); this is
// the one external collaborator that knows how to produce an
// ast.Document and a schema.Schema for cmd/gqlvalidate to feed it.
package jsondoc

import (
	"encoding/json"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/kirra-gql/validate/ast"
)

// api is jsoniter configured for drop-in encoding/json compatibility.
// json.RawMessage below is the stdlib type; jsoniter accepts and
// produces it without copying since the two share the same layout.
var api = jsoniter.ConfigCompatibleWithStandardLibrary

// DecodeDocument reads a JSON-encoded query document from r. The
// expected shape mirrors the AST node kinds in the validator's data
// model: every node is an object carrying a "kind" discriminator.
func DecodeDocument(r io.Reader) (*ast.Document, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "jsondoc: reading document")
	}
	var raw struct {
		Definitions []json.RawMessage `json:"definitions"`
	}
	if err := api.Unmarshal(b, &raw); err != nil {
		return nil, errors.Wrap(err, "jsondoc: decoding document")
	}
	doc := &ast.Document{}
	for _, d := range raw.Definitions {
		def, err := decodeDefinition(d)
		if err != nil {
			return nil, err
		}
		doc.Definitions = append(doc.Definitions, def)
	}
	return doc, nil
}

type node struct {
	Kind          string            `json:"kind"`
	Name          *nameNode         `json:"name"`
	Alias         *nameNode         `json:"alias"`
	Directives    []json.RawMessage `json:"directives"`
	Arguments     []json.RawMessage `json:"arguments"`
	SelectionSet  *json.RawMessage  `json:"selectionSet"`
	Selections    []json.RawMessage `json:"selections"`
	TypeCondition *json.RawMessage  `json:"typeCondition"`
	Value         json.RawMessage   `json:"value"`
	Values        []json.RawMessage `json:"values"`
}

type nameNode struct {
	Value string `json:"value"`
}

func decodeDefinition(raw json.RawMessage) (ast.Definition, error) {
	var n node
	if err := api.Unmarshal(raw, &n); err != nil {
		return nil, errors.Wrap(err, "jsondoc: decoding definition")
	}
	switch n.Kind {
	case "operation":
		return decodeOperation(n)
	case "fragmentDefinition":
		return decodeFragmentDefinition(n)
	default:
		return nil, fmt.Errorf("jsondoc: unsupported definition kind %q", n.Kind)
	}
}

func decodeOperation(n node) (*ast.Operation, error) {
	op := &ast.Operation{}
	if n.Name != nil {
		op.Name = &ast.Name{Value: n.Name.Value}
	}
	directives, err := decodeDirectives(n.Directives)
	if err != nil {
		return nil, err
	}
	op.Directives = directives
	if n.SelectionSet != nil {
		ss, err := decodeSelectionSet(*n.SelectionSet)
		if err != nil {
			return nil, err
		}
		op.SelectionSet = ss
	}
	return op, nil
}

func decodeFragmentDefinition(n node) (*ast.FragmentDefinition, error) {
	if n.Name == nil {
		return nil, fmt.Errorf("jsondoc: fragmentDefinition missing name")
	}
	fd := &ast.FragmentDefinition{Name: &ast.Name{Value: n.Name.Value}}
	if n.TypeCondition != nil {
		tc, err := decodeNamedType(*n.TypeCondition)
		if err != nil {
			return nil, err
		}
		fd.TypeCondition = tc
	}
	directives, err := decodeDirectives(n.Directives)
	if err != nil {
		return nil, err
	}
	fd.Directives = directives
	if n.SelectionSet != nil {
		ss, err := decodeSelectionSet(*n.SelectionSet)
		if err != nil {
			return nil, err
		}
		fd.SelectionSet = ss
	}
	return fd, nil
}

func decodeNamedType(raw json.RawMessage) (*ast.NamedType, error) {
	var n node
	if err := api.Unmarshal(raw, &n); err != nil {
		return nil, errors.Wrap(err, "jsondoc: decoding type reference")
	}
	if n.Kind != "namedType" || n.Name == nil {
		return nil, fmt.Errorf("jsondoc: expected namedType, got kind %q", n.Kind)
	}
	return &ast.NamedType{Name: &ast.Name{Value: n.Name.Value}}, nil
}

func decodeSelectionSet(raw json.RawMessage) (*ast.SelectionSet, error) {
	var n node
	if err := api.Unmarshal(raw, &n); err != nil {
		return nil, errors.Wrap(err, "jsondoc: decoding selection set")
	}
	ss := &ast.SelectionSet{}
	for _, sel := range n.Selections {
		s, err := decodeSelection(sel)
		if err != nil {
			return nil, err
		}
		ss.Selections = append(ss.Selections, s)
	}
	return ss, nil
}

func decodeSelection(raw json.RawMessage) (ast.Selection, error) {
	var n node
	if err := api.Unmarshal(raw, &n); err != nil {
		return nil, errors.Wrap(err, "jsondoc: decoding selection")
	}
	switch n.Kind {
	case "field":
		return decodeField(n)
	case "inlineFragment":
		return decodeInlineFragment(n)
	case "fragmentSpread":
		return decodeFragmentSpread(n)
	default:
		return nil, fmt.Errorf("jsondoc: unsupported selection kind %q", n.Kind)
	}
}

func decodeField(n node) (*ast.Field, error) {
	if n.Name == nil {
		return nil, fmt.Errorf("jsondoc: field missing name")
	}
	f := &ast.Field{Name: &ast.Name{Value: n.Name.Value}}
	if n.Alias != nil {
		f.Alias = &ast.Name{Value: n.Alias.Value}
	}
	args, err := decodeArguments(n.Arguments)
	if err != nil {
		return nil, err
	}
	f.Arguments = args
	directives, err := decodeDirectives(n.Directives)
	if err != nil {
		return nil, err
	}
	f.Directives = directives
	if n.SelectionSet != nil {
		ss, err := decodeSelectionSet(*n.SelectionSet)
		if err != nil {
			return nil, err
		}
		f.SelectionSet = ss
	}
	return f, nil
}

func decodeInlineFragment(n node) (*ast.InlineFragment, error) {
	f := &ast.InlineFragment{}
	if n.TypeCondition != nil {
		tc, err := decodeNamedType(*n.TypeCondition)
		if err != nil {
			return nil, err
		}
		f.TypeCondition = tc
	}
	directives, err := decodeDirectives(n.Directives)
	if err != nil {
		return nil, err
	}
	f.Directives = directives
	if n.SelectionSet != nil {
		ss, err := decodeSelectionSet(*n.SelectionSet)
		if err != nil {
			return nil, err
		}
		f.SelectionSet = ss
	}
	return f, nil
}

func decodeFragmentSpread(n node) (*ast.FragmentSpread, error) {
	if n.Name == nil {
		return nil, fmt.Errorf("jsondoc: fragmentSpread missing name")
	}
	fs := &ast.FragmentSpread{Name: &ast.Name{Value: n.Name.Value}}
	directives, err := decodeDirectives(n.Directives)
	if err != nil {
		return nil, err
	}
	fs.Directives = directives
	return fs, nil
}

func decodeDirectives(raw []json.RawMessage) ([]*ast.Directive, error) {
	var out []*ast.Directive
	for _, d := range raw {
		var n node
		if err := api.Unmarshal(d, &n); err != nil {
			return nil, errors.Wrap(err, "jsondoc: decoding directive")
		}
		if n.Name == nil {
			return nil, fmt.Errorf("jsondoc: directive missing name")
		}
		args, err := decodeArguments(n.Arguments)
		if err != nil {
			return nil, err
		}
		out = append(out, &ast.Directive{Name: &ast.Name{Value: n.Name.Value}, Arguments: args})
	}
	return out, nil
}

func decodeArguments(raw []json.RawMessage) ([]*ast.Argument, error) {
	var out []*ast.Argument
	for _, a := range raw {
		var n node
		if err := api.Unmarshal(a, &n); err != nil {
			return nil, errors.Wrap(err, "jsondoc: decoding argument")
		}
		if n.Name == nil {
			return nil, fmt.Errorf("jsondoc: argument missing name")
		}
		v, err := decodeValue(n.Value)
		if err != nil {
			return nil, err
		}
		out = append(out, &ast.Argument{Name: &ast.Name{Value: n.Name.Value}, Value: v})
	}
	return out, nil
}

func decodeValue(raw json.RawMessage) (ast.Value, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("jsondoc: missing value")
	}
	var n struct {
		Kind   string            `json:"kind"`
		Value  json.RawMessage   `json:"value"`
		Values []json.RawMessage `json:"values"`
		Name   *nameNode         `json:"name"`
	}
	if err := api.Unmarshal(raw, &n); err != nil {
		return nil, errors.Wrap(err, "jsondoc: decoding value")
	}
	switch n.Kind {
	case "int":
		var s string
		api.Unmarshal(n.Value, &s)
		return &ast.IntValue{Value: s}, nil
	case "float":
		var s string
		api.Unmarshal(n.Value, &s)
		return &ast.FloatValue{Value: s}, nil
	case "string":
		var s string
		api.Unmarshal(n.Value, &s)
		return &ast.StringValue{Value: s}, nil
	case "boolean":
		var b bool
		api.Unmarshal(n.Value, &b)
		return &ast.BooleanValue{Value: b}, nil
	case "null":
		return &ast.NullValue{}, nil
	case "enum":
		var s string
		api.Unmarshal(n.Value, &s)
		return &ast.EnumValue{Value: s}, nil
	case "variable":
		if n.Name == nil {
			return nil, fmt.Errorf("jsondoc: variable missing name")
		}
		return &ast.Variable{Name: &ast.Name{Value: n.Name.Value}}, nil
	case "list":
		lv := &ast.ListValue{}
		for _, v := range n.Values {
			el, err := decodeValue(v)
			if err != nil {
				return nil, err
			}
			lv.Values = append(lv.Values, el)
		}
		return lv, nil
	case "inputObject":
		return decodeInputObjectValue(raw)
	default:
		return nil, fmt.Errorf("jsondoc: unsupported value kind %q", n.Kind)
	}
}

func decodeInputObjectValue(raw json.RawMessage) (ast.Value, error) {
	var n struct {
		Values []struct {
			Name  nameNode        `json:"name"`
			Value json.RawMessage `json:"value"`
		} `json:"values"`
	}
	if err := api.Unmarshal(raw, &n); err != nil {
		return nil, errors.Wrap(err, "jsondoc: decoding input object value")
	}
	iv := &ast.InputObjectValue{}
	for _, f := range n.Values {
		v, err := decodeValue(f.Value)
		if err != nil {
			return nil, err
		}
		iv.Fields = append(iv.Fields, &ast.ObjectField{Name: &ast.Name{Value: f.Name.Value}, Value: v})
	}
	return iv, nil
}
