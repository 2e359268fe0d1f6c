package services_test

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"orgpulse-survey/internal/adapters/persistence/models"
	"orgpulse-survey/internal/config"
)

// newTestDB opens an isolated in-memory database with the same error
// translation the production MySQL connection uses.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))

	return db
}

// testConfig returns a config suitable for service tests
func testConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT:     config.JWTConfig{Secret: "test-secret"},
		SystemAccount: config.SystemAccountConfig{
			ID:    999999,
			Email: "system@orgpulse.local",
		},
	}
}
