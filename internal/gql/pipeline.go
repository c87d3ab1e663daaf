package gql

import (
	"context"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/gqlerrors"
	"github.com/graphql-go/graphql/language/parser"
	"github.com/graphql-go/graphql/language/source"
)

// Pipeline runs one request through parse, depth guard, document validation,
// and execution, terminal on the first failing stage. The embedded schema is
// built once and never mutated afterwards.
type Pipeline struct {
	schema   graphql.Schema
	maxDepth int
}

func NewPipeline(r *Resolver) (*Pipeline, error) {
	schema, err := NewSchema(r)
	if err != nil {
		return nil, err
	}
	return &Pipeline{schema: schema, maxDepth: MaxQueryDepth}, nil
}

// Run always yields a {data, errors} envelope; a failure before execution
// leaves data null and carries the stage's errors. No resolver runs unless
// every pre-execution stage passed.
func (p *Pipeline) Run(ctx context.Context, query string, variables map[string]interface{}) *graphql.Result {
	src := source.NewSource(&source.Source{Body: []byte(query), Name: "GraphQL request"})
	doc, err := parser.Parse(parser.ParseParams{Source: src})
	if err != nil {
		return &graphql.Result{Errors: gqlerrors.FormatErrors(err)}
	}

	if err := validateDepth(doc, p.maxDepth); err != nil {
		return &graphql.Result{Errors: gqlerrors.FormatErrors(err)}
	}

	if vr := graphql.ValidateDocument(&p.schema, doc, nil); !vr.IsValid {
		return &graphql.Result{Errors: vr.Errors}
	}

	return graphql.Execute(graphql.ExecuteParams{
		Schema:  p.schema,
		AST:     doc,
		Args:    variables,
		Context: ctx,
	})
}
