package gql

import (
	"github.com/google/uuid"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"

	"github.com/d60-Lab/social-graphql/internal/model"
)

// UUIDType accepts only the canonical 36-character RFC 4122 textual form.
// Returning nil from Serialize/ParseValue/ParseLiteral makes the engine report
// a coercion error instead of silently passing a malformed id to a resolver.
var UUIDType = graphql.NewScalar(graphql.ScalarConfig{
	Name:        "UUID",
	Description: "A 128-bit identifier in canonical textual form",
	Serialize: func(value interface{}) interface{} {
		s, ok := value.(string)
		if !ok || !isCanonicalUUID(s) {
			return nil
		}
		return s
	},
	ParseValue: func(value interface{}) interface{} {
		s, ok := value.(string)
		if !ok || !isCanonicalUUID(s) {
			return nil
		}
		return s
	},
	ParseLiteral: func(valueAST ast.Value) interface{} {
		sv, ok := valueAST.(*ast.StringValue)
		if !ok || !isCanonicalUUID(sv.Value) {
			return nil
		}
		return sv.Value
	},
})

// uuid.Parse also accepts urn: and braced forms; the length check pins the
// grammar to the canonical 8-4-4-4-12 rendering.
func isCanonicalUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// MemberTypeIDEnum closes the tier set at the type-system boundary; anything
// outside it fails validation before resolvers run.
var MemberTypeIDEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "MemberTypeId",
	Values: graphql.EnumValueConfigMap{
		model.MemberTypeBasic:    &graphql.EnumValueConfig{Value: model.MemberTypeBasic},
		model.MemberTypeBusiness: &graphql.EnumValueConfig{Value: model.MemberTypeBusiness},
	},
})
