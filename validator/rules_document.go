package validator

import "github.com/kirra-gql/validate/ast"

func uniqueFragmentNames(c *context, doc *ast.Document) error {
	seen := map[string]bool{}
	for _, def := range doc.Definitions {
		fd, ok := def.(*ast.FragmentDefinition)
		if !ok {
			continue
		}
		if seen[fd.Name.Value] {
			return newError("There can be only one fragment named %q.", fd.Name.Value)
		}
		seen[fd.Name.Value] = true
	}
	return nil
}

// noUnusedFragments runs as the document's exit rule, after every
// operation subtree has had a chance to populate usedFragments.
func noUnusedFragments(c *context, doc *ast.Document) error {
	for _, def := range doc.Definitions {
		fd, ok := def.(*ast.FragmentDefinition)
		if !ok {
			continue
		}
		if !c.usedFragments[fd.Name.Value] {
			return newError("Fragment %q was not used.", fd.Name.Value)
		}
	}
	return nil
}
