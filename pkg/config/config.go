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
	JWT          JWTConfig
	Ledger       LedgerConfig
	RateLimit    RateLimitConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	// The sqlite flag overrides the driver so a dev deployment only has to
	// flip one variable.
	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = "sqlite"
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.Ledger.AdminIdentity) == "" {
		return nil, fmt.Errorf("%s is required", EnvAdminIdentity)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"RENTLEDGER_APP_ENV" required:"true"`
	Port         string `envconfig:"RENTLEDGER_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"RENTLEDGER_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"RENTLEDGER_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"RENTLEDGER_DB_DSN"`
	Driver string `envconfig:"RENTLEDGER_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"RENTLEDGER_DB_HOST"`
	LegacyPort     int    `envconfig:"RENTLEDGER_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"RENTLEDGER_DB_USER"`
	LegacyPassword string `envconfig:"RENTLEDGER_DB_PASSWORD"`
	LegacyName     string `envconfig:"RENTLEDGER_DB_NAME"`
	LegacySSLMode  string `envconfig:"RENTLEDGER_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"RENTLEDGER_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"RENTLEDGER_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"RENTLEDGER_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"RENTLEDGER_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"RENTLEDGER_REDIS_URL" required:"true"`
	Address      string        `envconfig:"RENTLEDGER_REDIS_ADDR"`
	Password     string        `envconfig:"RENTLEDGER_REDIS_PASSWORD"`
	DB           int           `envconfig:"RENTLEDGER_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"RENTLEDGER_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"RENTLEDGER_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"RENTLEDGER_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"RENTLEDGER_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"RENTLEDGER_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"RENTLEDGER_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"RENTLEDGER_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"RENTLEDGER_JWT_EXPIRATION_MINUTES" default:"60"`
}

// AccessTokenTTL returns the access token lifetime configured in minutes.
func (j JWTConfig) AccessTokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

// LedgerConfig carries the rental-ledger policy knobs. AdminIdentity is fixed at
// boot and never changes for the lifetime of the deployment.
type LedgerConfig struct {
	AdminIdentity    string `envconfig:"RENTLEDGER_ADMIN_IDENTITY"`
	RequireWhitelist bool   `envconfig:"RENTLEDGER_REQUIRE_WHITELIST" default:"true"`
	StrictRefunds    bool   `envconfig:"RENTLEDGER_STRICT_REFUNDS" default:"true"`
}

type RateLimitConfig struct {
	BookingWindow time.Duration `envconfig:"RENTLEDGER_RATE_LIMIT_BOOKING_WINDOW" default:"1m"`
	BookingLimit  int           `envconfig:"RENTLEDGER_RATE_LIMIT_BOOKING_LIMIT" default:"30"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"RENTLEDGER_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"RENTLEDGER_AUTO_MIGRATE" default:"false"`
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
