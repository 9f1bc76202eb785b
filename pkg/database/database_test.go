package database

import (
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("in-memory database uses one connection", func(t *testing.T) {
		db, err := New(WithMigrations(
			`CREATE TABLE IF NOT EXISTS kv (k TEXT PRIMARY KEY, v TEXT)`,
			`INSERT INTO kv (k, v) VALUES ('a', '1')`,
		))
		require.NoError(t, err)
		defer db.Close()

		assert.Equal(t, 1, db.Stats().MaxOpenConnections)

		var v string
		require.NoError(t, db.QueryRow(`SELECT v FROM kv WHERE k = 'a'`).Scan(&v))
		assert.Equal(t, "1", v)
	})

	t.Run("file database keeps pool settings", func(t *testing.T) {
		db, err := New(
			WithDataSource(filepath.Join(t.TempDir(), "test.db")),
			WithMaxOpenConns(3),
		)
		require.NoError(t, err)
		defer db.Close()

		assert.Equal(t, 3, db.Stats().MaxOpenConnections)
	})

	t.Run("failing migration closes the pool", func(t *testing.T) {
		db, err := New(WithMigrations(`CREATE TABLE broken (`))
		assert.Nil(t, db)
		assert.ErrorContains(t, err, "migration 1 failed")
	})

	t.Run("validation", func(t *testing.T) {
		_, err := New(WithDriver(""))
		assert.Error(t, err)

		_, err = New(WithDataSource(""))
		assert.Error(t, err)
	})

	t.Run("unknown driver gives up after retries", func(t *testing.T) {
		_, err := New(WithDriver("nosuchdriver"), WithRetry(2, time.Millisecond))
		assert.ErrorContains(t, err, "after 2 attempts")
	})
}

func TestInMemory(t *testing.T) {
	assert.True(t, inMemory(":memory:"))
	assert.True(t, inMemory("file:x?mode=memory"))
	assert.False(t, inMemory("file:x?mode=memory&cache=shared"))
	assert.False(t, inMemory("./data/database.db"))
}
