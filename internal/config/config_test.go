package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_NAME", "jobdesk_test")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("CACHE_TTL", "90")

	cfg := Load()

	assert.Equal(t, "jobdesk_test", cfg.Database.Name)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, 90*time.Second, cfg.Cache.TTL)
	assert.Contains(t, cfg.DSN(), "dbname=jobdesk_test")
	assert.Contains(t, cfg.URL(), "/jobdesk_test?sslmode=")
}

func TestGetDurationFallsBack(t *testing.T) {
	t.Setenv("SESSION_TTL", "soon")
	assert.Equal(t, time.Hour, getDuration("SESSION_TTL", time.Hour))
	assert.Equal(t, time.Minute, getDuration("JOBDESK_UNSET_DURATION", time.Minute))
}
