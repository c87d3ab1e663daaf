package gql

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/social-graphql/internal/model"
	"github.com/d60-Lab/social-graphql/internal/repository"
	"github.com/d60-Lab/social-graphql/pkg/database"
)

// countingUserRepo proves the short-circuit paths: a request that fails before
// execution must never reach the store.
type countingUserRepo struct {
	repository.UserRepository
	calls *atomic.Int64
}

func (c *countingUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	c.calls.Add(1)
	return c.UserRepository.FindByID(ctx, id)
}

func (c *countingUserRepo) FindMany(ctx context.Context) ([]*model.User, error) {
	c.calls.Add(1)
	return c.UserRepository.FindMany(ctx)
}

type testEnv struct {
	pipeline *Pipeline
	users    repository.UserRepository
	posts    repository.PostRepository
	profiles repository.ProfileRepository
	subs     repository.SubscriptionRepository
	calls    *atomic.Int64
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.SeedMemberTypes(db))

	calls := &atomic.Int64{}
	users := &countingUserRepo{UserRepository: repository.NewUserRepository(db), calls: calls}
	r := NewResolver(
		users,
		repository.NewProfileRepository(db),
		repository.NewPostRepository(db),
		repository.NewMemberTypeRepository(db),
		repository.NewSubscriptionRepository(db),
	)
	p, err := NewPipeline(r)
	require.NoError(t, err)
	return &testEnv{
		pipeline: p,
		users:    users,
		posts:    repository.NewPostRepository(db),
		profiles: repository.NewProfileRepository(db),
		subs:     repository.NewSubscriptionRepository(db),
		calls:    calls,
	}
}

func dataMap(t *testing.T, v interface{}) map[string]interface{} {
	t.Helper()
	m, ok := v.(map[string]interface{})
	require.True(t, ok, "expected map, got %T", v)
	return m
}

func TestQueryUserWithPosts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := &model.User{Name: "Alice", Balance: 100}
	require.NoError(t, env.users.Create(ctx, alice))
	require.NoError(t, env.posts.Create(ctx, &model.Post{Title: "Hello", Content: "world", AuthorID: alice.ID}))

	res := env.pipeline.Run(ctx,
		`query ($id: UUID!) { user(id: $id) { name posts { title } } }`,
		map[string]interface{}{"id": alice.ID},
	)
	require.Empty(t, res.Errors)

	user := dataMap(t, dataMap(t, res.Data)["user"])
	assert.Equal(t, "Alice", user["name"])
	posts, ok := user["posts"].([]interface{})
	require.True(t, ok)
	require.Len(t, posts, 1)
	assert.Equal(t, "Hello", dataMap(t, posts[0])["title"])
}

func TestQueryMissingUserIsNull(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res := env.pipeline.Run(ctx,
		`query ($id: UUID!) { user(id: $id) { name } }`,
		map[string]interface{}{"id": "b7e1f3c8-0000-4000-8000-000000000000"},
	)
	require.Empty(t, res.Errors)
	assert.Nil(t, dataMap(t, res.Data)["user"])
}

func TestMalformedQueryShortCircuits(t *testing.T) {
	env := newTestEnv(t)

	res := env.pipeline.Run(context.Background(), `{ users { id `, nil)
	assert.Nil(t, res.Data)
	require.NotEmpty(t, res.Errors)
	assert.Zero(t, env.calls.Load(), "no resolver may run on a syntax error")
}

func TestUnknownFieldShortCircuits(t *testing.T) {
	env := newTestEnv(t)

	res := env.pipeline.Run(context.Background(), `{ nothingHere }`, nil)
	assert.Nil(t, res.Data)
	require.NotEmpty(t, res.Errors)
	assert.Zero(t, env.calls.Load())
}

func TestBadUUIDLiteralShortCircuits(t *testing.T) {
	env := newTestEnv(t)

	res := env.pipeline.Run(context.Background(), `{ user(id: "not-a-uuid") { id } }`, nil)
	assert.Nil(t, res.Data)
	require.NotEmpty(t, res.Errors)
	assert.Zero(t, env.calls.Load())
}

func TestDepthGuard(t *testing.T) {
	env := newTestEnv(t)

	tooDeep := `{ users { userSubscribedTo { userSubscribedTo { userSubscribedTo { posts { title } } } } } }`
	res := env.pipeline.Run(context.Background(), tooDeep, nil)
	assert.Nil(t, res.Data)
	require.NotEmpty(t, res.Errors)
	assert.Contains(t, res.Errors[0].Message, "depth")
	assert.Zero(t, env.calls.Load())

	atLimit := `{ users { userSubscribedTo { userSubscribedTo { posts { title } } } } }`
	res = env.pipeline.Run(context.Background(), atLimit, nil)
	assert.Empty(t, res.Errors)
	assert.Positive(t, env.calls.Load(), "a depth-5 query reaches execution")
}

func TestUserLifecycleMutations(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res := env.pipeline.Run(ctx,
		`mutation { createUser(dto: { name: "Neo", balance: 10.5 }) { id name balance } }`, nil)
	require.Empty(t, res.Errors)
	created := dataMap(t, dataMap(t, res.Data)["createUser"])
	id, ok := created["id"].(string)
	require.True(t, ok)
	assert.Equal(t, "Neo", created["name"])
	assert.Equal(t, 10.5, created["balance"])

	res = env.pipeline.Run(ctx,
		`mutation ($id: UUID!, $dto: ChangeUserInput!) { changeUser(id: $id, dto: $dto) { name balance } }`,
		map[string]interface{}{"id": id, "dto": map[string]interface{}{"name": "Trinity"}},
	)
	require.Empty(t, res.Errors)
	changed := dataMap(t, dataMap(t, res.Data)["changeUser"])
	assert.Equal(t, "Trinity", changed["name"])
	assert.Equal(t, 10.5, changed["balance"], "partial update keeps omitted fields")

	res = env.pipeline.Run(ctx,
		`mutation ($id: UUID!) { deleteUser(id: $id) }`,
		map[string]interface{}{"id": id},
	)
	require.Empty(t, res.Errors)
	assert.Equal(t, true, dataMap(t, res.Data)["deleteUser"])

	res = env.pipeline.Run(ctx,
		`query ($id: UUID!) { user(id: $id) { id } }`,
		map[string]interface{}{"id": id},
	)
	require.Empty(t, res.Errors)
	assert.Nil(t, dataMap(t, res.Data)["user"])

	// deleting again is a field-level error
	res = env.pipeline.Run(ctx,
		`mutation ($id: UUID!) { deleteUser(id: $id) }`,
		map[string]interface{}{"id": id},
	)
	require.NotEmpty(t, res.Errors)
	assert.Contains(t, res.Errors[0].Message, "not found")
}

func TestSubscriptionMutationsAndTraversal(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := &model.User{Name: "A"}
	b := &model.User{Name: "B"}
	require.NoError(t, env.users.Create(ctx, a))
	require.NoError(t, env.users.Create(ctx, b))

	res := env.pipeline.Run(ctx,
		`mutation ($u: UUID!, $a: UUID!) { subscribeTo(userId: $u, authorId: $a) { id userSubscribedTo { id } } }`,
		map[string]interface{}{"u": a.ID, "a": b.ID},
	)
	require.Empty(t, res.Errors)
	sub := dataMap(t, dataMap(t, res.Data)["subscribeTo"])
	authors, ok := sub["userSubscribedTo"].([]interface{})
	require.True(t, ok)
	require.Len(t, authors, 1)
	assert.Equal(t, b.ID, dataMap(t, authors[0])["id"])

	// inverse direction, and nothing in the reversed fields
	res = env.pipeline.Run(ctx,
		`query ($id: UUID!) { user(id: $id) { subscribedToUser { id } userSubscribedTo { id } } }`,
		map[string]interface{}{"id": b.ID},
	)
	require.Empty(t, res.Errors)
	bUser := dataMap(t, dataMap(t, res.Data)["user"])
	subscribers, ok := bUser["subscribedToUser"].([]interface{})
	require.True(t, ok)
	require.Len(t, subscribers, 1)
	assert.Equal(t, a.ID, dataMap(t, subscribers[0])["id"])
	assert.Empty(t, bUser["userSubscribedTo"])

	// duplicate pair is rejected
	res = env.pipeline.Run(ctx,
		`mutation ($u: UUID!, $a: UUID!) { subscribeTo(userId: $u, authorId: $a) { id } }`,
		map[string]interface{}{"u": a.ID, "a": b.ID},
	)
	require.NotEmpty(t, res.Errors)
	assert.Contains(t, res.Errors[0].Message, "already exists")

	res = env.pipeline.Run(ctx,
		`mutation ($u: UUID!, $a: UUID!) { unsubscribeFrom(userId: $u, authorId: $a) }`,
		map[string]interface{}{"u": a.ID, "a": b.ID},
	)
	require.Empty(t, res.Errors)
	assert.Equal(t, true, dataMap(t, res.Data)["unsubscribeFrom"])

	res = env.pipeline.Run(ctx,
		`mutation ($u: UUID!, $a: UUID!) { unsubscribeFrom(userId: $u, authorId: $a) }`,
		map[string]interface{}{"u": a.ID, "a": b.ID},
	)
	require.NotEmpty(t, res.Errors)
	assert.Contains(t, res.Errors[0].Message, "not found")
}

func TestProfileMutationsAndRelations(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	u := &model.User{Name: "Morpheus"}
	require.NoError(t, env.users.Create(ctx, u))

	res := env.pipeline.Run(ctx,
		fmt.Sprintf(`mutation {
			createProfile(dto: { isMale: true, yearOfBirth: 1970, userId: %q, memberTypeId: basic }) {
				id isMale yearOfBirth memberType { id discount } user { name }
			}
		}`, u.ID), nil)
	require.Empty(t, res.Errors)
	prof := dataMap(t, dataMap(t, res.Data)["createProfile"])
	assert.Equal(t, true, prof["isMale"])
	assert.Equal(t, 1970, prof["yearOfBirth"])
	assert.Equal(t, "basic", dataMap(t, prof["memberType"])["id"])
	assert.Equal(t, "Morpheus", dataMap(t, prof["user"])["name"])

	// second profile for the same user propagates the uniqueness fault
	res = env.pipeline.Run(ctx,
		fmt.Sprintf(`mutation {
			createProfile(dto: { isMale: false, yearOfBirth: 1971, userId: %q, memberTypeId: business }) { id }
		}`, u.ID), nil)
	require.NotEmpty(t, res.Errors)
	assert.Contains(t, res.Errors[0].Message, "already exists")

	// the user side resolves the profile lazily
	res = env.pipeline.Run(ctx,
		`query ($id: UUID!) { user(id: $id) { profile { yearOfBirth memberTypeId } } }`,
		map[string]interface{}{"id": u.ID},
	)
	require.Empty(t, res.Errors)
	lazy := dataMap(t, dataMap(t, dataMap(t, res.Data)["user"])["profile"])
	assert.Equal(t, 1970, lazy["yearOfBirth"])
	assert.Equal(t, "basic", lazy["memberTypeId"])
}

func TestMemberTypeQueries(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res := env.pipeline.Run(ctx, `{ memberTypes { id discount postsLimitPerMonth } }`, nil)
	require.Empty(t, res.Errors)
	tiers, ok := dataMap(t, res.Data)["memberTypes"].([]interface{})
	require.True(t, ok)
	assert.Len(t, tiers, 2)

	res = env.pipeline.Run(ctx, `{ memberType(id: business) { postsLimitPerMonth } }`, nil)
	require.Empty(t, res.Errors)
	assert.Equal(t, 100, dataMap(t, dataMap(t, res.Data)["memberType"])["postsLimitPerMonth"])

	// outside the closed set fails validation
	res = env.pipeline.Run(ctx, `{ memberType(id: platinum) { id } }`, nil)
	assert.Nil(t, res.Data)
	require.NotEmpty(t, res.Errors)
}
