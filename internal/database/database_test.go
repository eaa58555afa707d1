package database

import (
	"path/filepath"
	"testing"

	"github.com/marginote/annotator-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize(t *testing.T) {
	t.Run("in-memory database", func(t *testing.T) {
		db, err := Initialize(":memory:", Options{})
		require.NoError(t, err)
		defer db.Close()

		assert.NoError(t, db.HealthCheck())
	})

	t.Run("creates parent directory", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "nested", "dir", "annotations.db")
		db, err := Initialize(dbPath, Options{EnableWAL: true})
		require.NoError(t, err)
		defer db.Close()

		assert.NoError(t, db.HealthCheck())
		assert.FileExists(t, dbPath)
	})
}

func TestAutoMigrate(t *testing.T) {
	db, err := Initialize(":memory:", Options{})
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.AutoMigrate(models.All()...))

	assert.True(t, db.Migrator().HasTable(&models.Annotation{}))
	assert.True(t, db.Migrator().HasTable(&models.Media{}))
}

func TestHealthCheckAfterClose(t *testing.T) {
	db, err := Initialize(":memory:", Options{})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	assert.Error(t, db.HealthCheck())
}
