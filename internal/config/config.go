package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"BrickERP"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"brickerp"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Auth struct {
		Secret   string        `envconfig:"AUTH_SECRET"`
		User     string        `envconfig:"AUTH_USER" default:"admin"`
		Password string        `envconfig:"AUTH_PASSWORD"`
		TokenTTL time.Duration `envconfig:"AUTH_TOKEN_TTL" default:"12h"`
	}

	Reconcile struct {
		ToleranceAmount int64 `envconfig:"RECONCILE_TOLERANCE_CENTS" default:"500"`
		ToleranceDays   int   `envconfig:"RECONCILE_TOLERANCE_DAYS" default:"7"`
	}

	Backup struct {
		Dir       string `envconfig:"BACKUP_DIR" default:"./backups"`
		Retention int    `envconfig:"BACKUP_RETENTION" default:"14"`
	}

	Scheduler struct {
		Enabled       bool   `envconfig:"SCHEDULER_ENABLED" default:"false"`
		BackupSpec    string `envconfig:"SCHEDULER_BACKUP_SPEC" default:"0 0 3 * * *"`
		ReconcileSpec string `envconfig:"SCHEDULER_RECONCILE_SPEC" default:"0 30 3 * * *"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
