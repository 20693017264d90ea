package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Policy    Policy
	Bravo     BravoConfig
	Scheduler SchedulerConfig
}

type AppConfig struct {
	Port           string
	AllowedOrigins string
}

type DatabaseConfig struct {
	Driver        string // mysql | postgres
	DSN           string
	SlowThreshold time.Duration
	MaxOpenConns  int
	MaxIdleConns  int
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

// Policy holds the company rules that used to be inline literals: which
// factories are organised as section x shift matrices, and how attendance
// codes are counted.
type Policy struct {
	MatrixFactoryIDs []uint
	AbsenceCodes     []string
	HalfDayCodes     []string
	// CategoryBuckets maps an attendance code symbol to a report bucket
	// (work, night, paid_leave, sick, maternity, unpaid, awol).
	CategoryBuckets map[string]string
	// EnforceLockRules makes the daily save path also honour LockRule ranges.
	EnforceLockRules bool
}

type BravoConfig struct {
	EntryUserCode string
	MarkerValue   string
}

type SchedulerConfig struct {
	AutoLockCron string
}

// Load reads the whole configuration from the environment. Call godotenv
// before this if a .env file should be honoured.
func Load() *Config {
	return &Config{
		App: AppConfig{
			Port:           GetEnv("APP_PORT", "3000"),
			AllowedOrigins: GetEnv("CORS_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			Driver:        GetEnv("DB_DRIVER", "mysql"),
			DSN:           GetEnv("DB_DSN", "root:@tcp(127.0.0.1:3306)/hr_timesheet?charset=utf8mb4&parseTime=True&loc=Local"),
			SlowThreshold: time.Duration(GetEnvAsInt("DB_SLOW_MS", 200)) * time.Millisecond,
			MaxOpenConns:  GetEnvAsInt("DB_MAX_OPEN", 25),
			MaxIdleConns:  GetEnvAsInt("DB_MAX_IDLE", 10),
		},
		JWT: JWTConfig{
			Secret: GetEnv("JWT_SECRET", "doi-secret-nay-truoc-khi-trien-khai"),
			TTL:    time.Duration(GetEnvAsInt("JWT_TTL_HOURS", 12)) * time.Hour,
		},
		Policy: Policy{
			MatrixFactoryIDs: ParseUintList(GetEnv("MATRIX_FACTORY_IDS", "2")),
			AbsenceCodes:     ParseList(GetEnv("ABSENCE_CODES", "F,Ô,TS,RO,KP")),
			HalfDayCodes:     ParseList(GetEnv("HALF_DAY_CODES", "X/2,F/2")),
			CategoryBuckets:  ParseBuckets(GetEnv("CATEGORY_BUCKETS", "X:work,CA3:night,F:paid_leave,F/2:paid_leave,Ô:sick,TS:maternity,RO:unpaid,KP:awol")),
			EnforceLockRules: GetEnvAsBool("ENFORCE_LOCK_RULES", false),
		},
		Bravo: BravoConfig{
			EntryUserCode: GetEnv("BRAVO_ENTRY_USER", "NV001"),
			MarkerValue:   GetEnv("BRAVO_MARKER", "1"),
		},
		Scheduler: SchedulerConfig{
			AutoLockCron: GetEnv("AUTO_LOCK_CRON", ""),
		},
	}
}

// Helper function to get environment variable with fallback default value
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// Helper function to get environment variable as integer with fallback
func GetEnvAsInt(key string, fallback int) int {
	valueStr := GetEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func GetEnvAsBool(key string, fallback bool) bool {
	if value, err := strconv.ParseBool(GetEnv(key, "")); err == nil {
		return value
	}
	return fallback
}

// ParseList splits a comma separated value, dropping blanks.
func ParseList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ParseUintList is ParseList for numeric ids; non-numeric entries are skipped.
func ParseUintList(raw string) []uint {
	var out []uint
	for _, part := range ParseList(raw) {
		if n, err := strconv.ParseUint(part, 10, 64); err == nil && n > 0 {
			out = append(out, uint(n))
		}
	}
	return out
}

// ParseBuckets reads "CODE:bucket,CODE:bucket".
func ParseBuckets(raw string) map[string]string {
	out := make(map[string]string)
	for _, pair := range ParseList(raw) {
		code, bucket, ok := strings.Cut(pair, ":")
		code, bucket = strings.TrimSpace(code), strings.TrimSpace(bucket)
		if !ok || code == "" || bucket == "" {
			continue
		}
		out[code] = bucket
	}
	return out
}

func (p Policy) IsMatrixFactory(factoryID uint) bool {
	for _, id := range p.MatrixFactoryIDs {
		if id == factoryID {
			return true
		}
	}
	return false
}

func (p Policy) IsAbsenceCode(code string) bool {
	return contains(p.AbsenceCodes, code)
}

func (p Policy) IsHalfDayCode(code string) bool {
	return contains(p.HalfDayCodes, code)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
