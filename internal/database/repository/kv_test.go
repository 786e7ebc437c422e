package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/jasktasks/internal/database"
	"github.com/jask/jasktasks/internal/kvstore"
)

func testRepo(t *testing.T) (*KVRepo, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.RunMigrations(dbPath))
	// second run is a no-op
	require.NoError(t, database.RunMigrations(dbPath))

	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewKVRepo(db), dbPath
}

func TestKVRepoReadWrite(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	repo, _ := testRepo(t)

	_, ok, err := repo.Read(ctx, kvstore.DefaultKey)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, repo.Write(ctx, kvstore.DefaultKey, `[{"id":"a","title":"x","completed":false}]`))
	require.NoError(t, repo.Write(ctx, kvstore.DefaultKey, `[]`))

	v, ok, err := repo.Read(ctx, kvstore.DefaultKey)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `[]`, v)

	e, err := repo.Get(ctx, kvstore.DefaultKey)
	require.NoError(t, err)
	require.NotNil(t, e)
	require.False(t, e.UpdatedAt.IsZero())
}

func TestKVRepoSurvivesReopen(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo, dbPath := testRepo(t)
	require.NoError(t, repo.Write(ctx, "tasks", `["persisted"]`))

	db, err := database.Open(dbPath)
	require.NoError(t, err)
	defer db.Close()

	v, ok, err := NewKVRepo(db).Read(ctx, "tasks")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `["persisted"]`, v)
}

func TestKVRepoRejectsEmptyKey(t *testing.T) {
	t.Parallel()

	repo, _ := testRepo(t)
	require.ErrorIs(t, repo.Write(context.Background(), "", "x"), kvstore.ErrInvalidKey)
}
