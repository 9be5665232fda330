package jsondoc

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/kirra-gql/validate/ast"
	"github.com/kirra-gql/validate/schema"
)

// typeRef is the on-disk shape of a type reference: either a bare name
// (resolved against the types already declared) or a nonNull/list
// wrapper around another typeRef.
type typeRef struct {
	Kind   string   `json:"kind"`
	Name   string   `json:"name"`
	OfType *typeRef `json:"ofType"`
}

type inputValueDef struct {
	Type typeRef `json:"type"`
}

type fieldDef struct {
	Type      typeRef                  `json:"type"`
	Arguments map[string]inputValueDef `json:"arguments"`
}

type typeDef struct {
	Kind       string              `json:"kind"`
	Name       string              `json:"name"`
	Interfaces []string            `json:"interfaces"`
	Fields     map[string]fieldDef `json:"fields"`
	Types      []string            `json:"types"`
	Values     []string            `json:"values"`
}

type directiveDef struct {
	Name      string                   `json:"name"`
	Locations []string                 `json:"locations"`
	Arguments map[string]inputValueDef `json:"arguments"`
}

type schemaDoc struct {
	Query      string         `json:"query"`
	Types      []typeDef      `json:"types"`
	Directives []directiveDef `json:"directives"`
}

// builtinScalarParsers supplies ParseLiteral implementations for the
// standard GraphQL scalars. A scalar type declared in the JSON document
// under one of these names gets the matching coercion; any other
// scalar accepts every non-null literal, since the JSON schema format
// has no way to describe custom scalar semantics.
var builtinScalarParsers = map[string]func(ast.Value) (interface{}, bool){
	"Int": func(v ast.Value) (interface{}, bool) {
		iv, ok := v.(*ast.IntValue)
		return iv, ok
	},
	"Float": func(v ast.Value) (interface{}, bool) {
		switch v.(type) {
		case *ast.FloatValue, *ast.IntValue:
			return v, true
		default:
			return nil, false
		}
	},
	"String": func(v ast.Value) (interface{}, bool) {
		sv, ok := v.(*ast.StringValue)
		return sv, ok
	},
	"Boolean": func(v ast.Value) (interface{}, bool) {
		bv, ok := v.(*ast.BooleanValue)
		return bv, ok
	},
	"ID": func(v ast.Value) (interface{}, bool) {
		switch v.(type) {
		case *ast.StringValue, *ast.IntValue:
			return v, true
		default:
			return nil, false
		}
	},
}

// DecodeSchema reads a JSON-encoded schema description from r and
// builds a *schema.Schema from it.
func DecodeSchema(r io.Reader) (*schema.Schema, error) {
	var doc schemaDoc
	if err := api.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "jsondoc: decoding schema")
	}

	named := map[string]schema.Type{}
	objects := map[string]*schema.ObjectType{}
	interfaces := map[string]*schema.InterfaceType{}

	// Pass 1: create every named type as an empty shell so forward
	// references (a field whose type is declared later) resolve.
	for _, t := range doc.Types {
		switch t.Kind {
		case "Object":
			o := &schema.ObjectType{Name: t.Name}
			objects[t.Name] = o
			named[t.Name] = o
		case "Interface":
			i := &schema.InterfaceType{Name: t.Name}
			interfaces[t.Name] = i
			named[t.Name] = i
		case "Union":
			named[t.Name] = &schema.UnionType{Name: t.Name}
		case "Scalar":
			parse, ok := builtinScalarParsers[t.Name]
			if !ok {
				parse = func(v ast.Value) (interface{}, bool) { return v, !ast.IsNull(v) }
			}
			named[t.Name] = &schema.ScalarType{Name: t.Name, ParseLiteral: parse}
		case "Enum":
			values := map[string]struct{}{}
			for _, v := range t.Values {
				values[v] = struct{}{}
			}
			named[t.Name] = &schema.EnumType{Name: t.Name, Values: values}
		case "InputObject":
			named[t.Name] = &schema.InputObjectType{Name: t.Name}
		default:
			return nil, fmt.Errorf("jsondoc: unsupported schema type kind %q", t.Kind)
		}
	}

	resolve := func(ref typeRef) (schema.Type, error) {
		var resolveRef func(typeRef) (schema.Type, error)
		resolveRef = func(ref typeRef) (schema.Type, error) {
			switch ref.Kind {
			case "NonNull":
				if ref.OfType == nil {
					return nil, fmt.Errorf("jsondoc: NonNull type missing ofType")
				}
				inner, err := resolveRef(*ref.OfType)
				if err != nil {
					return nil, err
				}
				return &schema.NonNullType{OfType: inner}, nil
			case "List":
				if ref.OfType == nil {
					return nil, fmt.Errorf("jsondoc: List type missing ofType")
				}
				inner, err := resolveRef(*ref.OfType)
				if err != nil {
					return nil, err
				}
				return &schema.ListType{OfType: inner}, nil
			default:
				t, ok := named[ref.Name]
				if !ok {
					return nil, fmt.Errorf("jsondoc: unknown type %q", ref.Name)
				}
				return t, nil
			}
		}
		return resolveRef(ref)
	}

	resolveFields := func(defs map[string]fieldDef) (map[string]*schema.FieldDefinition, error) {
		fields := map[string]*schema.FieldDefinition{}
		for name, fd := range defs {
			t, err := resolve(fd.Type)
			if err != nil {
				return nil, err
			}
			args, err := resolveArguments(resolve, fd.Arguments)
			if err != nil {
				return nil, err
			}
			fields[name] = &schema.FieldDefinition{Type: t, Arguments: args}
		}
		return fields, nil
	}

	// Pass 2: fill in fields, interfaces, union members, input fields.
	for _, t := range doc.Types {
		switch t.Kind {
		case "Object":
			o := objects[t.Name]
			fields, err := resolveFields(t.Fields)
			if err != nil {
				return nil, err
			}
			o.Fields = fields
			for _, iname := range t.Interfaces {
				iface, ok := interfaces[iname]
				if !ok {
					return nil, fmt.Errorf("jsondoc: type %q implements unknown interface %q", t.Name, iname)
				}
				o.Interfaces = append(o.Interfaces, iface)
			}
		case "Interface":
			i := interfaces[t.Name]
			fields, err := resolveFields(t.Fields)
			if err != nil {
				return nil, err
			}
			i.Fields = fields
		case "Union":
			u := named[t.Name].(*schema.UnionType)
			for _, oname := range t.Types {
				obj, ok := objects[oname]
				if !ok {
					return nil, fmt.Errorf("jsondoc: union %q references unknown object %q", t.Name, oname)
				}
				u.Types = append(u.Types, obj)
			}
		case "InputObject":
			io := named[t.Name].(*schema.InputObjectType)
			fields := map[string]*schema.InputValueDefinition{}
			for name, fd := range t.Fields {
				ft, err := resolve(fd.Type)
				if err != nil {
					return nil, err
				}
				fields[name] = &schema.InputValueDefinition{Type: ft}
			}
			io.Fields = fields
		}
	}

	query, ok := objects[doc.Query]
	if !ok {
		return nil, fmt.Errorf("jsondoc: query root type %q is not declared as an Object", doc.Query)
	}

	types := make([]schema.Type, 0, len(named))
	for _, t := range named {
		types = append(types, t)
	}

	var directives []*schema.Directive
	for _, d := range doc.Directives {
		args, err := resolveArguments(resolve, d.Arguments)
		if err != nil {
			return nil, err
		}
		locations := make([]schema.DirectiveLocation, 0, len(d.Locations))
		for _, l := range d.Locations {
			locations = append(locations, schema.DirectiveLocation(l))
		}
		directives = append(directives, &schema.Directive{
			Name:      d.Name,
			Locations: locations,
			Arguments: args,
		})
	}

	return schema.New(&schema.Definition{
		Query:      query,
		Types:      types,
		Directives: directives,
	})
}

func resolveArguments(resolve func(typeRef) (schema.Type, error), defs map[string]inputValueDef) (map[string]*schema.InputValueDefinition, error) {
	if len(defs) == 0 {
		return nil, nil
	}
	out := map[string]*schema.InputValueDefinition{}
	for name, def := range defs {
		t, err := resolve(def.Type)
		if err != nil {
			return nil, err
		}
		out[name] = &schema.InputValueDefinition{Type: t}
	}
	return out, nil
}
