package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/models"
)

func newRepo(t *testing.T) (*SessionRepo, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewSessionRepo(rdb), mr
}

func TestSessionRepoRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, mr := newRepo(t)

	s := &models.Session{ID: "r1", Token: "tok", User: models.User{ID: 5, Name: "Eva"}, ExpiresAt: time.Now().Add(30 * time.Minute)}
	require.NoError(t, repo.Save(ctx, s))
	assert.True(t, mr.Exists(keyPrefix+"r1"))
	assert.Greater(t, mr.TTL(keyPrefix+"r1"), 29*time.Minute)

	got, err := repo.Get(ctx, "r1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Eva", got.User.Name)

	require.NoError(t, repo.Delete(ctx, "r1"))
	got, err = repo.Get(ctx, "r1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionRepoExpiresWithTTL(t *testing.T) {
	ctx := context.Background()
	repo, mr := newRepo(t)

	require.NoError(t, repo.Save(ctx, &models.Session{ID: "r2", ExpiresAt: time.Now().Add(time.Minute)}))
	mr.FastForward(2 * time.Minute)

	got, err := repo.Get(ctx, "r2")
	require.NoError(t, err)
	assert.Nil(t, got)
}
