package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator"
	"github.com/joho/godotenv"
	"github.com/matst80/slask-storefront/pkg/catalog"
	"github.com/matst80/slask-storefront/pkg/types"
	"gopkg.in/yaml.v3"
)

type CatalogConfig struct {
	Url        string          `yaml:"url" validate:"required,url"`
	FetchMode  types.FetchMode `yaml:"fetch_mode" validate:"oneof=static server client"`
	Timeout    time.Duration   `yaml:"timeout" validate:"gt=0"`
	Revalidate time.Duration   `yaml:"revalidate" validate:"gte=0"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db" validate:"gte=0"`
}

type Config struct {
	ListenAddress string              `yaml:"listen_address" validate:"required"`
	DebugAddress  string              `yaml:"debug_address"`
	Profiling     bool                `yaml:"profiling"`
	Country       string              `yaml:"country" validate:"required"`
	SnapshotDir   string              `yaml:"snapshot_dir" validate:"required"`
	RabbitUrl     string              `yaml:"rabbit_url"`
	SessionTTL    time.Duration       `yaml:"session_ttl" validate:"gt=0"`
	Catalog       CatalogConfig       `yaml:"catalog"`
	Redis         RedisConfig         `yaml:"redis"`
	FilterGroups  []types.FilterGroup `yaml:"filter_groups"`
	NavLinks      []string            `yaml:"nav_links" validate:"dive,required"`
}

func Default() *Config {
	return &Config{
		ListenAddress: ":8080",
		DebugAddress:  ":8081",
		Country:       "se",
		SnapshotDir:   "data",
		SessionTTL:    30 * time.Minute,
		Catalog: CatalogConfig{
			Url:        catalog.DefaultEndpoint,
			FetchMode:  types.FetchServer,
			Timeout:    catalog.DefaultTimeout,
			Revalidate: catalog.DefaultRevalidate,
		},
		FilterGroups: types.DefaultFilterGroups(),
		NavLinks:     types.DefaultNavLinks(),
	}
}

// LoadDotEnv reads the given env files into the process environment. Missing
// files are skipped and already set variables win.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Load builds the configuration from defaults, the optional yaml file at path
// and the environment, in that order, and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	str := func(target *string, env string) {
		if v := os.Getenv(env); v != "" {
			*target = v
		}
	}
	str(&c.Catalog.Url, "CATALOG_URL")
	str(&c.Redis.Addr, "REDIS_URL")
	str(&c.Redis.Password, "REDIS_PASSWORD")
	str(&c.RabbitUrl, "RABBIT_URL")
	str(&c.Country, "COUNTRY")
	str(&c.SnapshotDir, "SNAPSHOT_DIR")
	str(&c.ListenAddress, "LISTEN_ADDRESS")
	str(&c.DebugAddress, "DEBUG_ADDRESS")
	if v := os.Getenv("FETCH_MODE"); v != "" {
		c.Catalog.FetchMode = types.FetchMode(v)
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("REDIS_DB: %w", err)
		}
		c.Redis.DB = db
	}
	if v := os.Getenv("PROFILING"); v != "" {
		c.Profiling = v == "true" || v == "1"
	}
	return nil
}

var validate = validator.New()

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := types.ValidateFilterGroups(c.FilterGroups); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
