package gql

import (
	"testing"

	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseDoc(t *testing.T, query string) *ast.Document {
	t.Helper()
	doc, err := parser.Parse(parser.ParseParams{Source: query})
	require.NoError(t, err)
	return doc
}

func TestValidateDepthWithinBound(t *testing.T) {
	queries := []string{
		`{ users { id } }`,
		`{ user(id: "b7e1f3c8-0000-4000-8000-000000000000") { name posts { title } } }`,
		// exactly five levels
		`{ users { userSubscribedTo { userSubscribedTo { posts { title } } } } }`,
	}
	for _, q := range queries {
		assert.NoError(t, validateDepth(parseDoc(t, q), MaxQueryDepth), q)
	}
}

func TestValidateDepthExceeded(t *testing.T) {
	q := `{ users { userSubscribedTo { userSubscribedTo { userSubscribedTo { posts { title } } } } } }`
	err := validateDepth(parseDoc(t, q), MaxQueryDepth)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "depth")
}

// Fragment fields count at the spread site.
func TestValidateDepthThroughFragments(t *testing.T) {
	ok := `
		fragment userFields on User { posts { title } }
		{ users { ...userFields } }`
	assert.NoError(t, validateDepth(parseDoc(t, ok), MaxQueryDepth))

	tooDeep := `
		fragment deep on User { userSubscribedTo { userSubscribedTo { posts { title } } } }
		{ users { subscribedToUser { ...deep } } }`
	assert.Error(t, validateDepth(parseDoc(t, tooDeep), MaxQueryDepth))

	inline := `{ users { ... on User { posts { title } } } }`
	assert.NoError(t, validateDepth(parseDoc(t, inline), MaxQueryDepth))
}

// A cyclic spread must terminate; document validation rejects it later anyway.
func TestValidateDepthCyclicFragmentTerminates(t *testing.T) {
	q := `
		fragment loop on User { userSubscribedTo { ...loop } }
		{ users { ...loop } }`
	assert.NoError(t, validateDepth(parseDoc(t, q), MaxQueryDepth))
}
