package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/flavono123/nestform/internal/export"
)

const (
	KeyFormat  = "format"
	KeyOutput  = "output"
	KeyDebug   = "debug"
	KeyLogFile = "log_file"

	DefaultLogFile = "debug.log"
)

type Config struct {
	Format  string `mapstructure:"format"`
	Output  string `mapstructure:"output"`
	Debug   bool   `mapstructure:"debug"`
	LogFile string `mapstructure:"log_file"`
}

// OutputFormat returns the parsed Format. Load has already validated it.
func (c Config) OutputFormat() export.Format {
	f, _ := export.ParseFormat(c.Format)
	return f
}

// Dir returns the per-user config directory, e.g. ~/.config/nestform.
func Dir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, AppID), nil
}

// SetDefaults registers defaults and the NESTFORM_* environment binding on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyFormat, string(export.FormatJSON))
	v.SetDefault(KeyOutput, "")
	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeyLogFile, DefaultLogFile)

	v.SetEnvPrefix(strings.ToUpper(AppID))
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// Load reads the config file and decodes v into a Config. When no file was
// set explicitly, a missing config.yaml under Dir is not an error.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)

	if v.ConfigFileUsed() == "" {
		if dir, err := Dir(); err == nil {
			v.AddConfigPath(dir)
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}
	if _, err := export.ParseFormat(cfg.Format); err != nil {
		return Config{}, fmt.Errorf("%w: %q (want one of %v)", err, cfg.Format, export.Formats)
	}
	// DEBUG=1 keeps working without the NESTFORM_ prefix
	if os.Getenv("DEBUG") != "" {
		cfg.Debug = true
	}
	return cfg, nil
}
