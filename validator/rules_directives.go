package validator

import "github.com/kirra-gql/validate/ast"

func directivesAreDefined(c *context, node ast.HasDirectives) error {
	for _, d := range node.GetDirectives() {
		if c.schema.GetDirective(d.Name.Value) == nil {
			return newError("Unknown directive %q.", d.Name.Value)
		}
		if err := uniqueArgumentNames(d.Arguments); err != nil {
			return err
		}
	}
	return nil
}
