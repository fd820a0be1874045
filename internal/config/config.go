package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// FEEDSCOUT_CATALOG_BASE_URL for catalog.base_url.
const EnvPrefix = "FEEDSCOUT"

type Config struct {
	Catalog struct {
		BaseURL   string        `mapstructure:"base_url"`
		APIToken  string        `mapstructure:"api_token"`
		Username  string        `mapstructure:"username"`
		Password  string        `mapstructure:"password"`
		UserAgent string        `mapstructure:"user_agent"`
		Timeout   time.Duration `mapstructure:"timeout"`
	} `mapstructure:"catalog"`

	Server struct {
		Addr string `mapstructure:"addr"`
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`

	Resolver struct {
		FuzzyLimit int `mapstructure:"fuzzy_limit"` // per kind, capped at 25
	} `mapstructure:"resolver"`

	Entries struct {
		DefaultLimit int `mapstructure:"default_limit"`
		MaxLimit     int `mapstructure:"max_limit"`
	} `mapstructure:"entries"`

	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"` // "text" or "json"
	} `mapstructure:"log"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("catalog.timeout", 30*time.Second)
	v.SetDefault("catalog.user_agent", "feedscout/1.0")
	v.SetDefault("server.addr", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("resolver.fuzzy_limit", 10)
	v.SetDefault("entries.default_limit", 20)
	v.SetDefault("entries.max_limit", 100)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// LoadConfig reads config.yaml from the working directory or
// $HOME/.feedscout, then applies FEEDSCOUT_* environment overrides.
// An explicit path (from --config) takes precedence over the search paths.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.feedscout")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// AutomaticEnv only resolves keys viper already knows about; keys with no
	// default must be bound explicitly so env-only setups work.
	for _, key := range []string{"catalog.base_url", "catalog.api_token", "catalog.username", "catalog.password"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env for %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		// Missing file is fine when everything comes from the environment.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	return &cfg, nil
}

// ListenAddr joins the server address and port.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Addr, c.Server.Port)
}
