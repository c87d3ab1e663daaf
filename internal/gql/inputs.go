package gql

import "github.com/graphql-go/graphql"

// Create inputs require every field; change inputs are fully optional and are
// merged into the stored row field by field.

var createUserInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "CreateUserInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"balance": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
	},
})

var changeUserInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "ChangeUserInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":    &graphql.InputObjectFieldConfig{Type: graphql.String},
		"balance": &graphql.InputObjectFieldConfig{Type: graphql.Float},
	},
})

var createPostInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "CreatePostInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"title":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"content":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"authorId": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(UUIDType)},
	},
})

var changePostInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "ChangePostInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"title":   &graphql.InputObjectFieldConfig{Type: graphql.String},
		"content": &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

var createProfileInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "CreateProfileInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"isMale":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Boolean)},
		"yearOfBirth":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
		"userId":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(UUIDType)},
		"memberTypeId": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(MemberTypeIDEnum)},
	},
})

var changeProfileInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "ChangeProfileInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"isMale":       &graphql.InputObjectFieldConfig{Type: graphql.Boolean},
		"yearOfBirth":  &graphql.InputObjectFieldConfig{Type: graphql.Int},
		"memberTypeId": &graphql.InputObjectFieldConfig{Type: MemberTypeIDEnum},
	},
})
