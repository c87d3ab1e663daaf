package gql

import (
	"fmt"

	"github.com/graphql-go/graphql/language/ast"
)

// MaxQueryDepth bounds field-selection nesting per operation. The subscription
// relation is self-referential, so an unbounded query could fan out a resolver
// call per user per level; the guard rejects such documents before execution.
const MaxQueryDepth = 5

// validateDepth is a pure function over the parsed document. Fragment spreads
// are transparent: their fields count at the spread site. Spread cycles stop
// at the visited set; document validation rejects them separately.
func validateDepth(doc *ast.Document, max int) error {
	frags := make(map[string]*ast.FragmentDefinition)
	for _, def := range doc.Definitions {
		if f, ok := def.(*ast.FragmentDefinition); ok && f.Name != nil {
			frags[f.Name.Value] = f
		}
	}
	for _, def := range doc.Definitions {
		op, ok := def.(*ast.OperationDefinition)
		if !ok {
			continue
		}
		if d := selectionDepth(op.SelectionSet, frags, make(map[string]bool)); d > max {
			return fmt.Errorf("operation depth %d exceeds maximum allowed depth %d", d, max)
		}
	}
	return nil
}

func selectionDepth(set *ast.SelectionSet, frags map[string]*ast.FragmentDefinition, seen map[string]bool) int {
	if set == nil {
		return 0
	}
	depth := 0
	for _, sel := range set.Selections {
		d := 0
		switch s := sel.(type) {
		case *ast.Field:
			d = 1 + selectionDepth(s.SelectionSet, frags, seen)
		case *ast.InlineFragment:
			d = selectionDepth(s.SelectionSet, frags, seen)
		case *ast.FragmentSpread:
			name := s.Name.Value
			if seen[name] {
				continue
			}
			if f := frags[name]; f != nil {
				seen[name] = true
				d = selectionDepth(f.SelectionSet, frags, seen)
				delete(seen, name)
			}
		}
		if d > depth {
			depth = d
		}
	}
	return depth
}
