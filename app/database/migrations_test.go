package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := NewConnection(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, RunMigrations(db))

	return db
}

func TestMigrationsIdempotent(t *testing.T) {
	db := newTestDB(t)

	repo := NewItemRepository(db)
	_, _, err := repo.Create(Item{Title: "Survivor", Published: true})
	require.NoError(t, err)

	settingsRepo := NewSettingsRepository(db, DefaultSettings())
	require.NoError(t, settingsRepo.Seed())

	// Second run must be a no-op that keeps existing data
	require.NoError(t, RunMigrations(db))

	count, err := repo.Count()
	require.NoError(t, err)
	require.Equal(t, 1, count)

	settings, err := settingsRepo.Get()
	require.NoError(t, err)
	require.Equal(t, "PolySend Notifications", settings.Title)
}
