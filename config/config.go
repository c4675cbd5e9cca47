// Package config loads engine settings from an XDG config file with
// environment-variable overrides.
package config

import (
	"fmt"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

const cfgFile = "tesuji/config.yaml"

// InvalidConfig reports a config value the engine cannot start with.
type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

// Config holds the engine's startup settings.
type Config struct {
	BoardSize     int     `mapstructure:"board_size"`
	Komi          float64 `mapstructure:"komi"`
	LadderDepth   int     `mapstructure:"ladder_depth"`
	PassThreshold int     `mapstructure:"pass_threshold"`
	Debug         bool    `mapstructure:"debug"`
}

// InitConfig resolves the config in precedence order: defaults, then
// the XDG config file if one exists, then TESUJI_* environment
// variables.
func InitConfig() (*Config, error) {
	v := viper.New()
	v.SetDefault("board_size", 19)
	v.SetDefault("komi", 6.5)
	v.SetDefault("ladder_depth", 64)
	v.SetDefault("pass_threshold", 1)
	v.SetDefault("debug", false)

	if absPath, err := xdg.SearchConfigFile(cfgFile); err == nil {
		v.SetConfigFile(absPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, &InvalidConfig{err.Error()}
		}
	}

	v.SetEnvPrefix("tesuji")
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, &InvalidConfig{err.Error()}
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate rejects settings the session layer would refuse anyway, so
// startup fails early with a readable message.
func (c *Config) Validate() error {
	switch c.BoardSize {
	case 9, 13, 19:
	default:
		return &InvalidConfig{fmt.Sprintf("board_size must be 9, 13 or 19, got %d", c.BoardSize)}
	}
	if c.Komi <= -360 || c.Komi >= 360 {
		return &InvalidConfig{fmt.Sprintf("komi out of range: %g", c.Komi)}
	}
	if c.LadderDepth <= 0 {
		return &InvalidConfig{fmt.Sprintf("ladder_depth must be positive, got %d", c.LadderDepth)}
	}
	return nil
}
