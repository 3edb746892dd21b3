package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/amishk599/vacancydb/internal/store"
)

// Config is the root configuration for a harvest run.
type Config struct {
	Database  store.Config
	API       APIConfig
	Employers []EmployerConfig
	Keyword   string // title keyword used by the report
}

// APIConfig controls how the hh.ru API is reached.
type APIConfig struct {
	BaseURL   string
	UserAgent string
	PerPage   int           // 0 leaves the upstream default
	Timeout   time.Duration // per-request HTTP timeout
}

// EmployerConfig is one employer to harvest.
type EmployerConfig struct {
	ID   int    `yaml:"id"`
	Note string `yaml:"note"` // free-form label, not sent anywhere
}

// DefaultEmployers is the employer list harvested when the config names none.
var DefaultEmployers = []EmployerConfig{
	{ID: 786, Note: "Yandex"},
	{ID: 1122962, Note: "Sber"},
	{ID: 15478, Note: "VK (Mail.Ru Group)"},
	{ID: 1540, Note: "RZD"},
	{ID: 1740, Note: "Gazprom Neft"},
	{ID: 3529, Note: "Alfa-Bank"},
	{ID: 78636, Note: "VTB"},
	{ID: 3776, Note: "Sberbank-Technology"},
	{ID: 2180, Note: "Rosneft"},
	{ID: 78653, Note: "Ozon"},
}

const (
	defaultBaseURL   = "https://api.hh.ru"
	defaultUserAgent = "vacancydb/1.0 (vacancydb@example.com)"
	defaultKeyword   = "Python"
	defaultPort      = 5432
	defaultSSLMode   = "disable"
	defaultSQLite    = "vacancies.db"
)

// rawConfig is used for YAML unmarshaling (snake_case fields and duration as string).
type rawConfig struct {
	Database  rawDatabaseConfig `yaml:"database"`
	API       rawAPIConfig      `yaml:"api"`
	Employers []EmployerConfig  `yaml:"employers"`
	Keyword   string            `yaml:"keyword"`
}

type rawDatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	Path     string `yaml:"path"`
}

type rawAPIConfig struct {
	BaseURL   string `yaml:"base_url"`
	UserAgent string `yaml:"user_agent"`
	PerPage   int    `yaml:"per_page"`
	Timeout   string `yaml:"timeout"`
}

// Load reads the optional .env file, then the YAML config at path, applies
// DB_* environment overrides and defaults, and validates the result. When
// optional is true a missing config file is not an error.
func Load(path string, optional bool) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var raw rawConfig
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		// Expand environment variables
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	case optional && errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := applyEnv(&raw.Database); err != nil {
		return nil, err
	}

	timeout := 30 * time.Second // default
	if raw.API.Timeout != "" {
		timeout, err = time.ParseDuration(raw.API.Timeout)
		if err != nil {
			return nil, fmt.Errorf("parse api.timeout %q: %w", raw.API.Timeout, err)
		}
	}

	cfg := &Config{
		Database: store.Config{
			Driver:   valueOr(raw.Database.Driver, store.DriverPostgres),
			Host:     raw.Database.Host,
			Port:     raw.Database.Port,
			Database: raw.Database.Name,
			User:     raw.Database.User,
			Password: raw.Database.Password,
			SSLMode:  valueOr(raw.Database.SSLMode, defaultSSLMode),
			Path:     valueOr(raw.Database.Path, defaultSQLite),
		},
		API: APIConfig{
			BaseURL:   valueOr(raw.API.BaseURL, defaultBaseURL),
			UserAgent: valueOr(raw.API.UserAgent, defaultUserAgent),
			PerPage:   raw.API.PerPage,
			Timeout:   timeout,
		},
		Employers: raw.Employers,
		Keyword:   valueOr(raw.Keyword, defaultKeyword),
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = defaultPort
	}
	if len(cfg.Employers) == 0 {
		cfg.Employers = DefaultEmployers
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// EmployerIDs returns the configured employer ids in order.
func (c *Config) EmployerIDs() []int {
	ids := make([]int, len(c.Employers))
	for i, e := range c.Employers {
		ids[i] = e.ID
	}
	return ids
}

// applyEnv overrides database settings with DB_* environment variables.
func applyEnv(db *rawDatabaseConfig) error {
	for name, dst := range map[string]*string{
		"DB_DRIVER":   &db.Driver,
		"DB_HOST":     &db.Host,
		"DB_NAME":     &db.Name,
		"DB_USER":     &db.User,
		"DB_PASSWORD": &db.Password,
		"DB_SSLMODE":  &db.SSLMode,
		"DB_PATH":     &db.Path,
	} {
		if v, ok := os.LookupEnv(name); ok && v != "" {
			*dst = v
		}
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse DB_PORT %q: %w", v, err)
		}
		db.Port = port
	}
	return nil
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func validate(cfg *Config) error {
	db := cfg.Database
	switch db.Driver {
	case store.DriverPostgres:
		if db.Host == "" {
			return fmt.Errorf("database.host (or DB_HOST) is required for postgres")
		}
		if db.Database == "" {
			return fmt.Errorf("database.name (or DB_NAME) is required for postgres")
		}
		if db.User == "" {
			return fmt.Errorf("database.user (or DB_USER) is required for postgres")
		}
		if db.Port <= 0 || db.Port > 65535 {
			return fmt.Errorf("database.port must be between 1 and 65535, got %d", db.Port)
		}
	case store.DriverSQLite:
		if db.Path == "" {
			return fmt.Errorf("database.path (or DB_PATH) is required for sqlite")
		}
	default:
		return fmt.Errorf("database.driver must be %q or %q, got %q", store.DriverPostgres, store.DriverSQLite, db.Driver)
	}

	if cfg.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %v", cfg.API.Timeout)
	}
	if cfg.API.PerPage < 0 {
		return fmt.Errorf("api.per_page must not be negative, got %d", cfg.API.PerPage)
	}

	for _, e := range cfg.Employers {
		if e.ID <= 0 {
			return fmt.Errorf("employer id must be positive, got %d", e.ID)
		}
	}

	return nil
}
