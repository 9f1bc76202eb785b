package repository_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alhekamatallam-lgtm/Alwefod/internal/repository"
	"github.com/alhekamatallam-lgtm/Alwefod/internal/repository/models"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	_, err = db.Exec(repository.Schema)
	require.NoError(t, err)

	return db
}

func TestSnapshotRepository_Integration(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	defer db.Close()

	repo := repository.NewSnapshotRepository(db)
	base := time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC)

	t.Run("Latest on empty table", func(t *testing.T) {
		snap, err := repo.Latest(ctx)

		require.NoError(t, err)
		assert.Nil(t, snap)
	})

	for i, id := range []string{"a", "b", "c"} {
		err := repo.Save(ctx, models.Snapshot{
			ID:           id,
			CreatedAt:    base.Add(time.Duration(i) * time.Minute),
			ProjectCount: 8,
			FailedCount:  i,
			Payload:      []byte(`{"id":"` + id + `"}`),
		})
		require.NoError(t, err)
	}

	t.Run("Latest returns newest", func(t *testing.T) {
		snap, err := repo.Latest(ctx)

		require.NoError(t, err)
		require.NotNil(t, snap)
		assert.Equal(t, "c", snap.ID)
		assert.True(t, base.Add(2*time.Minute).Equal(snap.CreatedAt))
		assert.Equal(t, 8, snap.ProjectCount)
		assert.Equal(t, 2, snap.FailedCount)
		assert.JSONEq(t, `{"id":"c"}`, string(snap.Payload))
	})

	t.Run("duplicate id rejected", func(t *testing.T) {
		err := repo.Save(ctx, models.Snapshot{ID: "a", CreatedAt: base, Payload: []byte(`{}`)})

		assert.Error(t, err)
	})

	t.Run("Prune keeps newest", func(t *testing.T) {
		removed, err := repo.Prune(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(2), removed)

		var n int
		require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM dashboard_snapshots`).Scan(&n))
		assert.Equal(t, 1, n)

		snap, err := repo.Latest(ctx)
		require.NoError(t, err)
		assert.Equal(t, "c", snap.ID)
	})
}
