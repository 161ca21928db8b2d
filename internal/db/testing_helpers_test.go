package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDatabase(t *testing.T, name string) *gorm.DB {
	t.Helper()

	database, err := OpenSQLite(filepath.Join(t.TempDir(), name), nil)
	require.NoError(t, err)

	sqlDB, err := database.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return database
}
