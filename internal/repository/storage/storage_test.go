package storage

import (
	"context"
	"path/filepath"
	"testing"

	"bosko-storefront/internal/db"
	"bosko-storefront/internal/migrate"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseRepository checks the behavior every backend must share.
func exerciseRepository(t *testing.T, repo Repository) {
	t.Helper()
	ctx := context.Background()

	_, err := repo.Get(ctx, "dev-1", KeyCart)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Set(ctx, "dev-1", KeyCart, []byte(`[{"productId":1,"quantity":2}]`)))
	require.NoError(t, repo.Set(ctx, "dev-2", KeyCart, []byte(`[]`)))

	got, err := repo.Get(ctx, "dev-1", KeyCart)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"productId":1,"quantity":2}]`, string(got))

	require.NoError(t, repo.Set(ctx, "dev-1", KeyCart, []byte(`[]`)))
	got, err = repo.Get(ctx, "dev-1", KeyCart)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(got))

	require.NoError(t, repo.Delete(ctx, "dev-1", KeyCart))
	_, err = repo.Get(ctx, "dev-1", KeyCart)
	require.ErrorIs(t, err, ErrNotFound)

	// Deleting a missing key is not an error.
	require.NoError(t, repo.Delete(ctx, "dev-1", KeyCart))

	got, err = repo.Get(ctx, "dev-2", KeyCart)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(got))

	require.NoError(t, repo.Ping(ctx))
}

func TestMemoryRepository(t *testing.T) {
	exerciseRepository(t, NewMemory())
}

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory()
	value := []byte(`"es"`)
	require.NoError(t, repo.Set(ctx, "dev", KeyLanguage, value))
	value[1] = 'x'

	got, err := repo.Get(ctx, "dev", KeyLanguage)
	require.NoError(t, err)
	assert.Equal(t, `"es"`, string(got))
}

func TestRedisRepository(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	exerciseRepository(t, NewRedis(client))
}

func TestRedisRepository_KeyLayoutHasNoExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	repo := NewRedis(client)
	require.NoError(t, repo.Set(context.Background(), "dev-9", KeyToken, []byte(`"tok"`)))

	assert.True(t, mr.Exists("device:dev-9:bosko-token"))
	assert.Zero(t, mr.TTL("device:dev-9:bosko-token"))
}

func TestRedisRepository_UnreachableServer(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	repo := NewRedis(client)
	mr.Close()

	_, err := repo.Get(context.Background(), "dev", KeyCart)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.ErrorContains(t, err, "redis get failed")
}

func TestSQLiteRepository(t *testing.T) {
	ctx := context.Background()
	sqlDB, err := db.OpenSQLite(ctx, filepath.Join(t.TempDir(), "storage.db"))
	require.NoError(t, err)
	defer sqlDB.Close()

	require.NoError(t, migrate.ApplySQLite(ctx, sqlDB))
	// Applying twice is a no-op.
	require.NoError(t, migrate.ApplySQLite(ctx, sqlDB))

	exerciseRepository(t, NewSQLite(sqlDB))
}

func TestScoped(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory()
	a := Scope(repo, "a")
	b := Scope(repo, "b")

	require.NoError(t, a.Set(ctx, KeyLanguage, []byte(`"en"`)))
	_, err := b.Get(ctx, KeyLanguage)
	require.ErrorIs(t, err, ErrNotFound)

	got, err := a.Get(ctx, KeyLanguage)
	require.NoError(t, err)
	assert.Equal(t, `"en"`, string(got))
	assert.Equal(t, "a", a.Namespace())

	require.NoError(t, a.Delete(ctx, KeyLanguage))
	_, err = repo.Get(ctx, "a", KeyLanguage)
	require.ErrorIs(t, err, ErrNotFound)
}
