// Package testutil holds helpers shared by package tests.
package testutil

import (
	"testing"

	"github.com/guraspy/personalized-workout-api/config"
	"github.com/guraspy/personalized-workout-api/models"
	"github.com/guraspy/personalized-workout-api/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB returns a migrated in-memory sqlite database private to t.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.OpenDB(config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=1",
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// CreateUser inserts a user whose password is "password123".
func CreateUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	hash, err := utils.HashPassword("password123")
	require.NoError(t, err)
	u := &models.User{Username: username, Email: username + "@example.com", Password: hash}
	require.NoError(t, db.Create(u).Error)
	return u
}

// CreateExercise inserts a library exercise.
func CreateExercise(t *testing.T, db *gorm.DB, name string, muscles ...string) *models.Exercise {
	t.Helper()
	if muscles == nil {
		muscles = []string{}
	}
	e := &models.Exercise{Name: name, TargetMuscles: muscles, Equipment: "None"}
	require.NoError(t, db.Create(e).Error)
	return e
}
