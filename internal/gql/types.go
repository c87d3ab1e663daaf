package gql

import (
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/d60-Lab/social-graphql/internal/model"
)

// schemaTypes holds the entity object types for one schema build. User and
// Profile reference each other and User references itself through the
// subscription fields, so the relation field sets are declared as thunks and
// only evaluated once every type identity exists.
type schemaTypes struct {
	user       *graphql.Object
	profile    *graphql.Object
	post       *graphql.Object
	memberType *graphql.Object
}

func newSchemaTypes(r *Resolver) *schemaTypes {
	t := &schemaTypes{}

	t.memberType = graphql.NewObject(graphql.ObjectConfig{
		Name:        "MemberType",
		Description: "A fixed membership tier",
		Fields: graphql.Fields{
			"id":                 &graphql.Field{Type: MemberTypeIDEnum},
			"discount":           &graphql.Field{Type: graphql.Float},
			"postsLimitPerMonth": &graphql.Field{Type: graphql.Int},
		},
	})

	t.post = graphql.NewObject(graphql.ObjectConfig{
		Name:        "Post",
		Description: "A post authored by a user",
		Fields: graphql.Fields{
			"id":       &graphql.Field{Type: UUIDType},
			"title":    &graphql.Field{Type: graphql.String},
			"content":  &graphql.Field{Type: graphql.String},
			"authorId": &graphql.Field{Type: UUIDType},
		},
	})

	t.user = graphql.NewObject(graphql.ObjectConfig{
		Name:        "User",
		Description: "A user of the service",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id":      &graphql.Field{Type: UUIDType},
				"name":    &graphql.Field{Type: graphql.String},
				"balance": &graphql.Field{Type: graphql.Float},
				"profile": &graphql.Field{
					Type: t.profile,
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						u, err := sourceUser(p)
						if err != nil {
							return nil, err
						}
						prof, err := r.Profiles.FindByUserID(p.Context, u.ID)
						if err != nil {
							return nil, storageError("User.profile", err)
						}
						if prof == nil {
							return nil, nil
						}
						return prof, nil
					},
				},
				"posts": &graphql.Field{
					Type: graphql.NewList(t.post),
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						u, err := sourceUser(p)
						if err != nil {
							return nil, err
						}
						posts, err := r.Posts.FindByAuthorID(p.Context, u.ID)
						if err != nil {
							return nil, storageError("User.posts", err)
						}
						return posts, nil
					},
				},
				"userSubscribedTo": &graphql.Field{
					Type:        graphql.NewList(t.user),
					Description: "Users this user subscribes to",
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						u, err := sourceUser(p)
						if err != nil {
							return nil, err
						}
						authors, err := r.Subscriptions.Authors(p.Context, u.ID)
						if err != nil {
							return nil, storageError("User.userSubscribedTo", err)
						}
						return authors, nil
					},
				},
				"subscribedToUser": &graphql.Field{
					Type:        graphql.NewList(t.user),
					Description: "Users subscribed to this user",
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						u, err := sourceUser(p)
						if err != nil {
							return nil, err
						}
						subs, err := r.Subscriptions.Subscribers(p.Context, u.ID)
						if err != nil {
							return nil, storageError("User.subscribedToUser", err)
						}
						return subs, nil
					},
				},
			}
		}),
	})

	t.profile = graphql.NewObject(graphql.ObjectConfig{
		Name:        "Profile",
		Description: "A user's profile",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id":           &graphql.Field{Type: UUIDType},
				"isMale":       &graphql.Field{Type: graphql.Boolean},
				"yearOfBirth":  &graphql.Field{Type: graphql.Int},
				"userId":       &graphql.Field{Type: UUIDType},
				"memberTypeId": &graphql.Field{Type: MemberTypeIDEnum},
				"user": &graphql.Field{
					Type: t.user,
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						prof, err := sourceProfile(p)
						if err != nil {
							return nil, err
						}
						u, err := r.Users.FindByID(p.Context, prof.UserID)
						if err != nil {
							return nil, storageError("Profile.user", err)
						}
						if u == nil {
							return nil, nil
						}
						return u, nil
					},
				},
				"memberType": &graphql.Field{
					// Resolved strictly through the parent's foreign key.
					Type: t.memberType,
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						prof, err := sourceProfile(p)
						if err != nil {
							return nil, err
						}
						mt, err := r.MemberTypes.FindByID(p.Context, prof.MemberTypeID)
						if err != nil {
							return nil, storageError("Profile.memberType", err)
						}
						if mt == nil {
							return nil, nil
						}
						return mt, nil
					},
				},
			}
		}),
	})

	return t
}

func sourceUser(p graphql.ResolveParams) (*model.User, error) {
	u, ok := p.Source.(*model.User)
	if !ok {
		return nil, fmt.Errorf("unexpected source type %T", p.Source)
	}
	return u, nil
}

func sourceProfile(p graphql.ResolveParams) (*model.Profile, error) {
	prof, ok := p.Source.(*model.Profile)
	if !ok {
		return nil, fmt.Errorf("unexpected source type %T", p.Source)
	}
	return prof, nil
}
