package validator

import (
	"github.com/kirra-gql/validate/ast"
	"github.com/kirra-gql/validate/schema"
)

// frame is one entry of the type stack. A rule consulting the stack must
// tolerate a frame whose known bit is false: that marks a position whose
// schema type couldn't be resolved (an undefined field, an unresolvable
// fragment target), and rules must abstain rather than cascade a second
// error from it.
type frame struct {
	typ   schema.Type
	known bool
}

var absent = frame{}

func known(t schema.Type) frame {
	return frame{typ: t, known: true}
}

// context is the mutable state threaded through one validation walk. It
// is never shared across calls to Validate.
type context struct {
	schema      *schema.Schema
	document    *ast.Document
	fragmentMap map[string]*ast.FragmentDefinition

	operationNames        map[string]bool
	hasAnonymousOperation bool
	usedFragments         map[string]bool

	// mergeSeenFragments backs unambiguousSelections' fragment-spread
	// dedup. It lives for the whole walk, not per selection set -- see
	// collectFieldsForMerge.
	mergeSeenFragments map[string]bool

	objects []frame
}

func newContext(s *schema.Schema, doc *ast.Document) *context {
	return &context{
		schema:             s,
		document:           doc,
		fragmentMap:        map[string]*ast.FragmentDefinition{},
		operationNames:     map[string]bool{},
		usedFragments:      map[string]bool{},
		mergeSeenFragments: map[string]bool{},
	}
}

func (c *context) push(f frame) {
	c.objects = append(c.objects, f)
}

func (c *context) pop() {
	c.objects = c.objects[:len(c.objects)-1]
}

func (c *context) top() frame {
	return c.objects[len(c.objects)-1]
}

// parent returns the frame just below the top, i.e. the type that owns
// the field/fragment currently being entered once its own frame has been
// pushed. The visit functions in engine.go capture the parent with top()
// before pushing instead, so no current rule calls this.
func (c *context) parent() frame {
	return c.objects[len(c.objects)-2]
}

// fieldDefinition resolves the FieldDefinition for name on parent, or
// nil if parent is absent, not an Object/Interface, or has no such
// field. Only declared fields resolve; meta-fields such as __typename
// are not special-cased.
func fieldDefinition(parent frame, name string) *schema.FieldDefinition {
	if !parent.known {
		return nil
	}
	fields := schema.Fields(parent.typ)
	if fields == nil {
		return nil
	}
	return fields[name]
}
