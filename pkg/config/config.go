package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Pipeline     PipelineConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Pipeline.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"QUOTEWISE_APP_ENV" required:"true"`
	Port         string `envconfig:"QUOTEWISE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"QUOTEWISE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"QUOTEWISE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"QUOTEWISE_DB_DSN"`
	Driver string `envconfig:"QUOTEWISE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"QUOTEWISE_DB_HOST"`
	LegacyPort     int    `envconfig:"QUOTEWISE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"QUOTEWISE_DB_USER"`
	LegacyPassword string `envconfig:"QUOTEWISE_DB_PASSWORD"`
	LegacyName     string `envconfig:"QUOTEWISE_DB_NAME"`
	LegacySSLMode  string `envconfig:"QUOTEWISE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"QUOTEWISE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"QUOTEWISE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"QUOTEWISE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"QUOTEWISE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"QUOTEWISE_REDIS_URL"`
	PoolSize     int           `envconfig:"QUOTEWISE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"QUOTEWISE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"QUOTEWISE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"QUOTEWISE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"QUOTEWISE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis endpoint was configured at all.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != ""
}

// PipelineConfig carries the tunables of the RFP processing pipeline.
type PipelineConfig struct {
	FuzzyThreshold     int           `envconfig:"QUOTEWISE_PIPELINE_FUZZY_THRESHOLD" default:"60"`
	MaxMatches         int           `envconfig:"QUOTEWISE_PIPELINE_MAX_MATCHES" default:"5"`
	TaxRate            float64       `envconfig:"QUOTEWISE_PIPELINE_TAX_RATE" default:"0.08"`
	QuoteRetentionDays int           `envconfig:"QUOTEWISE_QUOTE_RETENTION_DAYS" default:"90"`
	DuplicateGuardTTL  time.Duration `envconfig:"QUOTEWISE_DUPLICATE_GUARD_TTL" default:"24h"`
}

func (p PipelineConfig) validate() error {
	if p.FuzzyThreshold < 0 || p.FuzzyThreshold > 100 {
		return fmt.Errorf("fuzzy threshold must be within [0,100], got %d", p.FuzzyThreshold)
	}
	if p.MaxMatches < 1 {
		return fmt.Errorf("max matches must be positive, got %d", p.MaxMatches)
	}
	if p.TaxRate < 0 || p.TaxRate >= 1 {
		return fmt.Errorf("tax rate must be within [0,1), got %v", p.TaxRate)
	}
	return nil
}

type FeatureFlagsConfig struct {
	UseSQLite   bool   `envconfig:"QUOTEWISE_USE_SQLITE" default:"false"`
	SQLitePath  string `envconfig:"QUOTEWISE_SQLITE_PATH" default:"quotewise.db"`
	AutoMigrate bool   `envconfig:"QUOTEWISE_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
