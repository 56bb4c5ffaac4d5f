package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dinoverse/internal/config"
	"dinoverse/internal/models"
)

func TestOpenSQLiteAndMigrate(t *testing.T) {
	d, err := Open(config.DBConfig{Driver: "sqlite"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(d) })

	assert.Equal(t, "sqlite", d.Driver)
	require.NoError(t, Ping(d))
	require.NoError(t, AutoMigrate(d))

	m := d.Gorm.Migrator()
	assert.True(t, m.HasTable(&models.Trade{}))
	assert.True(t, m.HasTable(&models.SiteContent{}))
	assert.True(t, m.HasIndex(&models.HabitLog{}, "idx_habit_logs_habit_day"))
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(config.DBConfig{Driver: "mysql"})
	assert.Error(t, err)
}

func TestSetTimezoneSkipsSQLite(t *testing.T) {
	d, err := Open(config.DBConfig{Driver: "sqlite"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(d) })
	assert.NoError(t, SetTimezone(d, "UTC"))
}
