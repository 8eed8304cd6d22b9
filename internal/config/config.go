package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config aggregates all runtime settings required by the application.
// Every default reproduces the behaviour of a bare `taskdesk` launch.
type Config struct {
	AppName     string `env:"APP_NAME" env-default:"taskdesk"`
	Environment string `env:"APP_ENV" env-default:"development"`
	Database    DatabaseConfig
	Auth        AuthConfig
	Tasks       TasksConfig
	Context     ContextConfig
	Logger      LoggerConfig
	Migrations  MigrationsConfig
}

type DatabaseConfig struct {
	Driver string `env:"DB_DRIVER" env-default:"sqlite"`
	Path   string `env:"DB_PATH" env-default:"todo.db"`
	URL    string `env:"DATABASE_URL"`
	Name   string `env:"DB_NAME" env-default:"taskdesk"`
}

type AuthConfig struct {
	PlaintextPasswords bool `env:"AUTH_PLAINTEXT_PASSWORDS" env-default:"false"`
	BcryptCost         int  `env:"AUTH_BCRYPT_COST" env-default:"10"`
}

type TasksConfig struct {
	DeleteByTitle bool `env:"TASKS_DELETE_BY_TITLE" env-default:"false"`
}

type ContextConfig struct {
	ActionTimeout   time.Duration `env:"ACTION_TIMEOUT" env-default:"0s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"5s"`
}

type LoggerConfig struct {
	Level    string `env:"LOG_LEVEL" env-default:"info"`
	Encoding string `env:"LOG_ENCODING" env-default:"json"`
	File     string `env:"LOG_FILE" env-default:"taskdesk.log"`
}

type MigrationsConfig struct {
	Enabled bool `env:"RUN_MIGRATIONS" env-default:"true"`
}

// Load reads configuration from environment variables (optionally .env)
// and applies defaults so the application boots without any setup.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MustLoad panics if configuration cannot be loaded.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("DB_PATH must not be empty for the %s driver", DriverSQLite)
		}
	case DriverPostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required for the %s driver", DriverPostgres)
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if c.Context.ActionTimeout < 0 {
		return fmt.Errorf("ACTION_TIMEOUT must not be negative")
	}
	return nil
}
