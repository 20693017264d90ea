package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseHelpers(t *testing.T) {
	assert.Equal(t, []string{"F", "Ô", "KP"}, ParseList(" F, Ô,,KP "))
	assert.Nil(t, ParseList(""))

	assert.Equal(t, []uint{2, 7}, ParseUintList("2, abc, 0, 7"))

	buckets := ParseBuckets("X:work, CA3 : night, broken, :awol, KP:")
	assert.Equal(t, map[string]string{"X": "work", "CA3": "night"}, buckets)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("JWT_TTL_HOURS", "2")
	t.Setenv("MATRIX_FACTORY_IDS", "2,3")
	t.Setenv("ENFORCE_LOCK_RULES", "true")
	t.Setenv("AUTO_LOCK_CRON", "0 1 1 * *")
	t.Setenv("DB_SLOW_MS", "khong-phai-so")

	cfg := Load()
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 2*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, 200*time.Millisecond, cfg.Database.SlowThreshold)
	assert.True(t, cfg.Policy.EnforceLockRules)
	assert.True(t, cfg.Policy.IsMatrixFactory(3))
	assert.False(t, cfg.Policy.IsMatrixFactory(1))
	assert.Equal(t, "0 1 1 * *", cfg.Scheduler.AutoLockCron)
}

func TestPolicyDefaults(t *testing.T) {
	cfg := Load()
	assert.True(t, cfg.Policy.IsAbsenceCode("KP"))
	assert.False(t, cfg.Policy.IsAbsenceCode("X"))
	assert.True(t, cfg.Policy.IsHalfDayCode("X/2"))
	assert.Equal(t, "night", cfg.Policy.CategoryBuckets["CA3"])
}

func TestConnectDBRejectsUnknownDriver(t *testing.T) {
	_, err := ConnectDB(DatabaseConfig{Driver: "oracle", DSN: "x"})
	assert.Error(t, err)
}
