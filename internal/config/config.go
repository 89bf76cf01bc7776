package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
)

// Config holds everything the binaries need. It is built once in main and
// passed down; nothing below cmd/ reads the process environment.
type Config struct {
	Env      string `mapstructure:"env"`
	Port     string `mapstructure:"port"`
	SiteName string `mapstructure:"site_name"`

	CMS CMSConfig `mapstructure:"cms"`

	RedisURL     string `mapstructure:"redis_url"`
	DatabaseURL  string `mapstructure:"database_url"`
	SnapshotPath string `mapstructure:"snapshot_path"`

	TemplatesDir string `mapstructure:"templates_dir"`
	StaticDir    string `mapstructure:"static_dir"`

	WarmSchedule string        `mapstructure:"warm_schedule"`
	AdminToken   string        `mapstructure:"admin_token"`
	RefreshDelay time.Duration `mapstructure:"refresh_delay"`
	LogLevel     string        `mapstructure:"log_level"`
}

// CMSConfig configures the Strapi fetch client.
type CMSConfig struct {
	URL        string        `mapstructure:"url"`
	Token      string        `mapstructure:"token"`
	Timeout    time.Duration `mapstructure:"timeout"`
	Revalidate time.Duration `mapstructure:"revalidate"`
}

// envBindings lists the environment variables accepted for each key, in
// precedence order. The Strapi/Next.js names are kept as aliases so an
// existing deployment's .env keeps working.
var envBindings = map[string][]string{
	"env":            {"APP_ENV", "NODE_ENV"},
	"port":           {"PORT"},
	"site_name":      {"SITE_NAME"},
	"cms.url":        {"CMS_URL", "STRAPI_URL", "NEXT_PUBLIC_STRAPI_URL"},
	"cms.token":      {"CMS_API_TOKEN", "STRAPI_API_TOKEN"},
	"cms.timeout":    {"CMS_TIMEOUT"},
	"cms.revalidate": {"CMS_REVALIDATE"},
	"redis_url":      {"REDIS_URL"},
	"database_url":   {"DATABASE_URL"},
	"snapshot_path":  {"SNAPSHOT_PATH"},
	"templates_dir":  {"TEMPLATES_DIR"},
	"static_dir":     {"STATIC_DIR"},
	"warm_schedule":  {"WARM_SCHEDULE"},
	"admin_token":    {"ADMIN_TOKEN"},
	"refresh_delay":  {"REFRESH_DELAY"},
	"log_level":      {"LOG_LEVEL"},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", EnvProduction)
	v.SetDefault("port", "8080")
	v.SetDefault("site_name", "Statehouse School")
	v.SetDefault("cms.url", "http://localhost:1337")
	v.SetDefault("cms.token", "")
	v.SetDefault("cms.timeout", 15*time.Second)
	v.SetDefault("cms.revalidate", 60*time.Second)
	v.SetDefault("redis_url", "")
	v.SetDefault("database_url", "")
	v.SetDefault("snapshot_path", "data/snapshots.db")
	v.SetDefault("templates_dir", "web/templates")
	v.SetDefault("static_dir", "web/static")
	v.SetDefault("warm_schedule", "FREQ=MINUTELY;INTERVAL=1")
	v.SetDefault("admin_token", "")
	v.SetDefault("refresh_delay", 8*time.Second)
	v.SetDefault("log_level", "info")
}

// Load reads .env (if present), an optional YAML config file and the
// environment. An empty file means "site.yaml in the working directory, if any".
func Load(file string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}
	return load(viper.New(), file)
}

func load(v *viper.Viper, file string) (*Config, error) {
	setDefaults(v)

	for key, names := range envBindings {
		args := append([]string{key}, names...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("site")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || file != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() {
	switch strings.ToLower(strings.TrimSpace(c.Env)) {
	case "development", "dev":
		c.Env = EnvDevelopment
	default:
		c.Env = EnvProduction
	}
	c.CMS.URL = strings.TrimRight(strings.TrimSpace(c.CMS.URL), "/")
	c.CMS.Token = strings.TrimSpace(c.CMS.Token)

	// Caching only applies to production; development always fetches fresh.
	if !c.IsProduction() || c.CMS.Revalidate < 0 {
		c.CMS.Revalidate = 0
	}
}

// Validate reports configuration that would make every request fail.
func (c *Config) Validate() error {
	u, err := url.Parse(c.CMS.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("cms.url must be an absolute http(s) URL, got %q", c.CMS.URL)
	}
	if c.CMS.Timeout <= 0 {
		return fmt.Errorf("cms.timeout must be positive, got %s", c.CMS.Timeout)
	}
	if c.Port == "" {
		return errors.New("port must not be empty")
	}
	return nil
}

// IsProduction reports whether fetch failures degrade instead of propagating.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}
