// Package config loads the formflow CLI's configuration from an
// optional TOML file and FORMFLOW_-prefixed environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the CLI configuration.
type Config struct {
	Demo  DemoConfig
	Serve ServeConfig
	Log   LogConfig
}

// DemoConfig holds the engine options the demo wizard runs with.
type DemoConfig struct {
	ValidateOnChange     bool `mapstructure:"validate_on_change"`
	ValidateOnBlur       bool `mapstructure:"validate_on_blur"`
	AllowSectionSkipping bool `mapstructure:"allow_section_skipping"`
	ResetOnSubmit        bool `mapstructure:"reset_on_submit"`
}

// ServeConfig holds the upload endpoint settings.
type ServeConfig struct {
	Addr      string        `mapstructure:"addr"`
	UploadDir string        `mapstructure:"upload_dir"`
	MaxSize   int64         `mapstructure:"max_size"`
	TTL       time.Duration `mapstructure:"ttl"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from file and env. The file is
// $FORMFLOW_CONFIG when set, otherwise config.toml under
// ~/.config/formflow; a missing file leaves the defaults. Env var
// overrides use prefix FORMFLOW_, e.g. FORMFLOW_SERVE_ADDR.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("demo.validate_on_change", true)
	v.SetDefault("demo.validate_on_blur", true)
	v.SetDefault("demo.allow_section_skipping", false)
	v.SetDefault("demo.reset_on_submit", false)
	v.SetDefault("serve.addr", ":8080")
	v.SetDefault("serve.upload_dir", filepath.Join(os.TempDir(), "formflow-uploads"))
	v.SetDefault("serve.max_size", int64(10<<20))
	v.SetDefault("serve.ttl", time.Hour)
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("FORMFLOW_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "formflow"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("FORMFLOW")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}
