package gql

import (
	"errors"
	"fmt"

	"github.com/graphql-go/graphql"
	"go.uber.org/zap"

	"github.com/d60-Lab/social-graphql/internal/model"
	"github.com/d60-Lab/social-graphql/internal/repository"
	"github.com/d60-Lab/social-graphql/pkg/logger"
)

// Resolver binds schema fields to the repository collaborators. Resolvers only
// see these interfaces, so a per-request batching loader could later be slid
// in between without touching any field definition.
type Resolver struct {
	Users         repository.UserRepository
	Profiles      repository.ProfileRepository
	Posts         repository.PostRepository
	MemberTypes   repository.MemberTypeRepository
	Subscriptions repository.SubscriptionRepository
}

func NewResolver(
	users repository.UserRepository,
	profiles repository.ProfileRepository,
	posts repository.PostRepository,
	memberTypes repository.MemberTypeRepository,
	subscriptions repository.SubscriptionRepository,
) *Resolver {
	return &Resolver{
		Users:         users,
		Profiles:      profiles,
		Posts:         posts,
		MemberTypes:   memberTypes,
		Subscriptions: subscriptions,
	}
}

// storageError logs the underlying fault and hands the client a message that
// carries no store internals.
func storageError(field string, err error) error {
	if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrDuplicate) {
		return err
	}
	logger.Error("repository failure", zap.String("field", field), zap.Error(err))
	return fmt.Errorf("%s: internal storage error", field)
}

func (r *Resolver) queryFields(t *schemaTypes) graphql.Fields {
	return graphql.Fields{
		"users": &graphql.Field{
			Type: graphql.NewList(t.user),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				users, err := r.Users.FindMany(p.Context)
				if err != nil {
					return nil, storageError("users", err)
				}
				return users, nil
			},
		},
		"user": &graphql.Field{
			Type: t.user,
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(UUIDType)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				u, err := r.Users.FindByID(p.Context, p.Args["id"].(string))
				if err != nil {
					return nil, storageError("user", err)
				}
				if u == nil {
					return nil, nil
				}
				return u, nil
			},
		},
		"posts": &graphql.Field{
			Type: graphql.NewList(t.post),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				posts, err := r.Posts.FindMany(p.Context)
				if err != nil {
					return nil, storageError("posts", err)
				}
				return posts, nil
			},
		},
		"post": &graphql.Field{
			Type: t.post,
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(UUIDType)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				post, err := r.Posts.FindByID(p.Context, p.Args["id"].(string))
				if err != nil {
					return nil, storageError("post", err)
				}
				if post == nil {
					return nil, nil
				}
				return post, nil
			},
		},
		"profiles": &graphql.Field{
			Type: graphql.NewList(t.profile),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				profiles, err := r.Profiles.FindMany(p.Context)
				if err != nil {
					return nil, storageError("profiles", err)
				}
				return profiles, nil
			},
		},
		"profile": &graphql.Field{
			Type: t.profile,
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(UUIDType)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				prof, err := r.Profiles.FindByID(p.Context, p.Args["id"].(string))
				if err != nil {
					return nil, storageError("profile", err)
				}
				if prof == nil {
					return nil, nil
				}
				return prof, nil
			},
		},
		"memberTypes": &graphql.Field{
			Type: graphql.NewList(t.memberType),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				mts, err := r.MemberTypes.FindMany(p.Context)
				if err != nil {
					return nil, storageError("memberTypes", err)
				}
				return mts, nil
			},
		},
		"memberType": &graphql.Field{
			Type: t.memberType,
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(MemberTypeIDEnum)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				mt, err := r.MemberTypes.FindByID(p.Context, p.Args["id"].(string))
				if err != nil {
					return nil, storageError("memberType", err)
				}
				if mt == nil {
					return nil, nil
				}
				return mt, nil
			},
		},
	}
}

func (r *Resolver) mutationFields(t *schemaTypes) graphql.Fields {
	return graphql.Fields{
		"createUser": &graphql.Field{
			Type: t.user,
			Args: graphql.FieldConfigArgument{
				"dto": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createUserInput)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				dto := p.Args["dto"].(map[string]interface{})
				u := &model.User{
					Name:    dto["name"].(string),
					Balance: dto["balance"].(float64),
				}
				if err := r.Users.Create(p.Context, u); err != nil {
					return nil, storageError("createUser", err)
				}
				return u, nil
			},
		},
		"changeUser": &graphql.Field{
			Type: t.user,
			Args: graphql.FieldConfigArgument{
				"id":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(UUIDType)},
				"dto": &graphql.ArgumentConfig{Type: graphql.NewNonNull(changeUserInput)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				id := p.Args["id"].(string)
				dto := p.Args["dto"].(map[string]interface{})
				var upd repository.UserUpdate
				if v, ok := dto["name"].(string); ok {
					upd.Name = &v
				}
				if v, ok := dto["balance"].(float64); ok {
					upd.Balance = &v
				}
				u, err := r.Users.Update(p.Context, id, upd)
				if err != nil {
					if errors.Is(err, repository.ErrNotFound) {
						return nil, fmt.Errorf("user %s: %w", id, err)
					}
					return nil, storageError("changeUser", err)
				}
				return u, nil
			},
		},
		"deleteUser": &graphql.Field{
			Type: graphql.Boolean,
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(UUIDType)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				id := p.Args["id"].(string)
				if err := r.Users.Delete(p.Context, id); err != nil {
					if errors.Is(err, repository.ErrNotFound) {
						return nil, fmt.Errorf("user %s: %w", id, err)
					}
					return nil, storageError("deleteUser", err)
				}
				return true, nil
			},
		},
		"createPost": &graphql.Field{
			Type: t.post,
			Args: graphql.FieldConfigArgument{
				"dto": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createPostInput)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				dto := p.Args["dto"].(map[string]interface{})
				post := &model.Post{
					Title:    dto["title"].(string),
					Content:  dto["content"].(string),
					AuthorID: dto["authorId"].(string),
				}
				if err := r.Posts.Create(p.Context, post); err != nil {
					if errors.Is(err, repository.ErrNotFound) {
						return nil, fmt.Errorf("author %s: %w", post.AuthorID, err)
					}
					return nil, storageError("createPost", err)
				}
				return post, nil
			},
		},
		"changePost": &graphql.Field{
			Type: t.post,
			Args: graphql.FieldConfigArgument{
				"id":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(UUIDType)},
				"dto": &graphql.ArgumentConfig{Type: graphql.NewNonNull(changePostInput)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				id := p.Args["id"].(string)
				dto := p.Args["dto"].(map[string]interface{})
				var upd repository.PostUpdate
				if v, ok := dto["title"].(string); ok {
					upd.Title = &v
				}
				if v, ok := dto["content"].(string); ok {
					upd.Content = &v
				}
				post, err := r.Posts.Update(p.Context, id, upd)
				if err != nil {
					if errors.Is(err, repository.ErrNotFound) {
						return nil, fmt.Errorf("post %s: %w", id, err)
					}
					return nil, storageError("changePost", err)
				}
				return post, nil
			},
		},
		"deletePost": &graphql.Field{
			Type: graphql.Boolean,
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(UUIDType)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				id := p.Args["id"].(string)
				if err := r.Posts.Delete(p.Context, id); err != nil {
					if errors.Is(err, repository.ErrNotFound) {
						return nil, fmt.Errorf("post %s: %w", id, err)
					}
					return nil, storageError("deletePost", err)
				}
				return true, nil
			},
		},
		"createProfile": &graphql.Field{
			Type: t.profile,
			Args: graphql.FieldConfigArgument{
				"dto": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createProfileInput)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				dto := p.Args["dto"].(map[string]interface{})
				prof := &model.Profile{
					IsMale:       dto["isMale"].(bool),
					YearOfBirth:  dto["yearOfBirth"].(int),
					UserID:       dto["userId"].(string),
					MemberTypeID: dto["memberTypeId"].(string),
				}
				if err := r.Profiles.Create(p.Context, prof); err != nil {
					if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrDuplicate) {
						return nil, err
					}
					return nil, storageError("createProfile", err)
				}
				return prof, nil
			},
		},
		"changeProfile": &graphql.Field{
			Type: t.profile,
			Args: graphql.FieldConfigArgument{
				"id":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(UUIDType)},
				"dto": &graphql.ArgumentConfig{Type: graphql.NewNonNull(changeProfileInput)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				id := p.Args["id"].(string)
				dto := p.Args["dto"].(map[string]interface{})
				var upd repository.ProfileUpdate
				if v, ok := dto["isMale"].(bool); ok {
					upd.IsMale = &v
				}
				if v, ok := dto["yearOfBirth"].(int); ok {
					upd.YearOfBirth = &v
				}
				if v, ok := dto["memberTypeId"].(string); ok {
					upd.MemberTypeID = &v
				}
				prof, err := r.Profiles.Update(p.Context, id, upd)
				if err != nil {
					if errors.Is(err, repository.ErrNotFound) {
						return nil, fmt.Errorf("profile %s: %w", id, repository.ErrNotFound)
					}
					return nil, storageError("changeProfile", err)
				}
				return prof, nil
			},
		},
		"deleteProfile": &graphql.Field{
			Type: graphql.Boolean,
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(UUIDType)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				id := p.Args["id"].(string)
				if err := r.Profiles.Delete(p.Context, id); err != nil {
					if errors.Is(err, repository.ErrNotFound) {
						return nil, fmt.Errorf("profile %s: %w", id, err)
					}
					return nil, storageError("deleteProfile", err)
				}
				return true, nil
			},
		},
		"subscribeTo": &graphql.Field{
			Type: t.user,
			Args: graphql.FieldConfigArgument{
				"userId":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(UUIDType)},
				"authorId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(UUIDType)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				userID := p.Args["userId"].(string)
				authorID := p.Args["authorId"].(string)
				if err := r.Subscriptions.CreateLink(p.Context, userID, authorID); err != nil {
					if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrDuplicate) {
						return nil, err
					}
					return nil, storageError("subscribeTo", err)
				}
				u, err := r.Users.FindByID(p.Context, userID)
				if err != nil {
					return nil, storageError("subscribeTo", err)
				}
				return u, nil
			},
		},
		"unsubscribeFrom": &graphql.Field{
			Type: graphql.Boolean,
			Args: graphql.FieldConfigArgument{
				"userId":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(UUIDType)},
				"authorId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(UUIDType)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				userID := p.Args["userId"].(string)
				authorID := p.Args["authorId"].(string)
				if err := r.Subscriptions.DeleteLink(p.Context, userID, authorID); err != nil {
					if errors.Is(err, repository.ErrNotFound) {
						return nil, err
					}
					return nil, storageError("unsubscribeFrom", err)
				}
				return true, nil
			},
		},
	}
}
