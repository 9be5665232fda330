package validator

import "github.com/kirra-gql/validate/ast"

func uniqueOperationNames(c *context, op *ast.Operation) error {
	if op.Name == nil {
		return nil
	}
	if c.operationNames[op.Name.Value] {
		return newError("There can be only one operation named %q.", op.Name.Value)
	}
	c.operationNames[op.Name.Value] = true
	return nil
}

// loneAnonymousOperation relies on uniqueOperationNames having already
// run for this operation and for every operation before it; rule order
// in the dispatch table must not change.
func loneAnonymousOperation(c *context, op *ast.Operation) error {
	if op.Name == nil {
		if c.hasAnonymousOperation || len(c.operationNames) > 0 {
			return newError("This anonymous operation must be the only defined operation.")
		}
		c.hasAnonymousOperation = true
		return nil
	}
	if c.hasAnonymousOperation {
		return newError("This anonymous operation must be the only defined operation.")
	}
	return nil
}
