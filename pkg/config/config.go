package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "development"
	AppEnvProd = "production"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"WASHO_APP_ENV" required:"true"`
	Port         string `envconfig:"WASHO_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"WASHO_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"WASHO_LOG_WARN_STACK" default:"false"`
	AutoMigrate  bool   `envconfig:"WASHO_AUTO_MIGRATE" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"WASHO_DB_DSN"`

	Host     string `envconfig:"WASHO_DB_HOST"`
	Port     int    `envconfig:"WASHO_DB_PORT" default:"5432"`
	User     string `envconfig:"WASHO_DB_USER"`
	Password string `envconfig:"WASHO_DB_PASSWORD"`
	Name     string `envconfig:"WASHO_DB_NAME"`
	SSLMode  string `envconfig:"WASHO_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"WASHO_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"WASHO_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"WASHO_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"WASHO_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// ensureDSN assembles a postgres DSN from the discrete fields when no DSN
// was provided directly.
func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return fmt.Errorf("either WASHO_DB_DSN or WASHO_DB_HOST/USER/NAME must be set")
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.Name,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	d.DSN = u.String()
	return nil
}

type RedisConfig struct {
	Address      string        `envconfig:"WASHO_REDIS_ADDR" default:"localhost:6379"`
	Password     string        `envconfig:"WASHO_REDIS_PASSWORD"`
	DB           int           `envconfig:"WASHO_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"WASHO_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"WASHO_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"WASHO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"WASHO_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"WASHO_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"WASHO_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"WASHO_JWT_ISSUER" default:"washo"`
	ExpirationMinutes int    `envconfig:"WASHO_JWT_EXPIRATION_MINUTES" default:"480"`
}

// TokenTTL returns the access token lifetime.
func (j JWTConfig) TokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	BcryptCost int `envconfig:"WASHO_PASSWORD_BCRYPT_COST" default:"12"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"WASHO_AUTH_LOGIN_WINDOW" default:"1m"`
	LoginIPLimit    int           `envconfig:"WASHO_AUTH_LOGIN_IP_LIMIT" default:"10"`
	LoginEmailLimit int           `envconfig:"WASHO_AUTH_LOGIN_EMAIL_LIMIT" default:"5"`
}
