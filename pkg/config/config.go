// Package config loads CLI and preview-server settings from an optional
// file and FORMKIT_ prefixed environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/render"
)

// EnvPrefix prefixes environment overrides, e.g. FORMKIT_PREVIEW_ADDR.
const EnvPrefix = "FORMKIT"

// Config holds application configuration.
type Config struct {
	Render      RenderConfig      `mapstructure:"render"`
	Preview     PreviewConfig     `mapstructure:"preview"`
	Log         LogConfig         `mapstructure:"log"`
	Definitions DefinitionsConfig `mapstructure:"definitions"`
}

// RenderConfig holds layout defaults for field-tree rendering.
type RenderConfig struct {
	Grid         bool   `mapstructure:"grid"`
	DefaultWidth string `mapstructure:"default_width"`
	DefaultSpan  int    `mapstructure:"default_span"`
}

// PreviewConfig holds preview server settings.
type PreviewConfig struct {
	Addr string `mapstructure:"addr"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// DefinitionsConfig locates form definition files.
type DefinitionsConfig struct {
	Dir string `mapstructure:"dir"`
}

// Load reads configuration from path, when set, then applies environment
// overrides. A missing path is an error; an empty one uses defaults only.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	return c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("render.grid", false)
	v.SetDefault("render.default_width", string(render.DefaultWidth))
	v.SetDefault("render.default_span", render.DefaultSpan)
	v.SetDefault("preview.addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("definitions.dir", ".")
}

// Options converts the layout defaults into render options.
func (c RenderConfig) Options() render.Options {
	opts := render.Options{
		Grid:         c.Grid,
		DefaultWidth: model.Width(c.DefaultWidth),
	}
	if c.DefaultSpan > 0 {
		opts.DefaultColProps = model.Props{"span": c.DefaultSpan}
	}
	return opts
}

// ZapLevel parses the configured level.
func (c LogConfig) ZapLevel() (zapcore.Level, error) {
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("config: log level: %w", err)
	}
	return level, nil
}
