package validator

import "github.com/kirra-gql/validate/schema"

// typeName renders a schema type the way error messages want to show
// it: the bare name for named types, and GraphQL-ish wrapper syntax for
// List/NonNull so nested type mismatches stay readable.
func typeName(t schema.Type) string {
	switch w := t.(type) {
	case nil:
		return ""
	case schema.NamedTyper:
		return w.TypeName()
	case *schema.NonNullType:
		return typeName(w.OfType) + "!"
	case *schema.ListType:
		return "[" + typeName(w.OfType) + "]"
	default:
		return ""
	}
}
