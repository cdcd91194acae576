// Package config loads the editor settings from defaults, an optional
// memeland.yaml and MEMELAND_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// AppName names the config file and its directory under the user config dir.
	AppName   = "memeland"
	EnvPrefix = "MEMELAND"
)

// Keys understood by the editor.
const (
	KeyContentDir   = "content_dir"
	KeyOutputDir    = "output_dir"
	KeyOutputName   = "output_name"
	KeyWindowWidth  = "window_width"
	KeyWindowHeight = "window_height"
	KeyPanelWidth   = "panel_width"
	KeyLogLevel     = "log_level"
)

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	ContentDir   string `mapstructure:"content_dir"`
	OutputDir    string `mapstructure:"output_dir"`
	OutputName   string `mapstructure:"output_name"`
	WindowWidth  int    `mapstructure:"window_width"`
	WindowHeight int    `mapstructure:"window_height"`
	PanelWidth   int    `mapstructure:"panel_width"`
	LogLevel     string `mapstructure:"log_level"`
}

func Default() Config {
	return Config{
		ContentDir:   "./content",
		OutputDir:    ".",
		OutputName:   "meme.png",
		WindowWidth:  1280,
		WindowHeight: 800,
		PanelWidth:   380,
		LogLevel:     "info",
	}
}

// NewViper returns a viper instance with the defaults, environment binding
// and config search path set up. Flags may be bound to it before Load.
func NewViper() *viper.Viper {
	v := viper.New()
	d := Default()
	v.SetDefault(KeyContentDir, d.ContentDir)
	v.SetDefault(KeyOutputDir, d.OutputDir)
	v.SetDefault(KeyOutputName, d.OutputName)
	v.SetDefault(KeyWindowWidth, d.WindowWidth)
	v.SetDefault(KeyWindowHeight, d.WindowHeight)
	v.SetDefault(KeyPanelWidth, d.PanelWidth)
	v.SetDefault(KeyLogLevel, d.LogLevel)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetConfigName(AppName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, AppName))
	}
	return v
}

// Load reads the configuration. An empty path searches the default
// locations and tolerates a missing file; an explicit path must exist.
func Load(path string) (Config, error) {
	return LoadFrom(NewViper(), path)
}

// LoadFrom is Load using a prepared viper instance.
func LoadFrom(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	switch {
	case c.ContentDir == "":
		return fmt.Errorf("%w: %s is empty", ErrInvalid, KeyContentDir)
	case c.OutputName == "" || filepath.Base(c.OutputName) != c.OutputName:
		return fmt.Errorf("%w: %s %q must be a plain file name", ErrInvalid, KeyOutputName, c.OutputName)
	case c.WindowWidth <= 0 || c.WindowHeight <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.WindowWidth, c.WindowHeight)
	case c.PanelWidth < 0 || c.PanelWidth >= c.WindowWidth:
		return fmt.Errorf("%w: %s %d does not fit the window", ErrInvalid, KeyPanelWidth, c.PanelWidth)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses LogLevel ("debug", "info", "warn", "error").
func (c Config) SlogLevel() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalid, KeyLogLevel, err)
	}
	return l, nil
}

// OutputPath is where the exported meme is written on disk.
func (c Config) OutputPath() string {
	return filepath.Join(c.OutputDir, c.OutputName)
}
