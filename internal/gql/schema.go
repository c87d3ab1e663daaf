package gql

import "github.com/graphql-go/graphql"

// NewSchema composes the root Query and Mutation objects into one executable
// schema. Pure composition, no I/O; the result is read-only and is shared by
// every request for the life of the process.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	t := newSchemaTypes(r)

	query := graphql.NewObject(graphql.ObjectConfig{
		Name:   "RootQueryType",
		Fields: r.queryFields(t),
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name:   "Mutations",
		Fields: r.mutationFields(t),
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}
