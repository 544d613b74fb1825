// Package config loads app-level settings from timedeck.yml in the user's
// config directory. Widget data lives in internal/storage; this file only
// carries knobs that never change at runtime.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

// Config is the resolved application configuration.
type Config struct {
	DataDir     string // Where widget state files are stored
	TwelveHour  bool   // Clock display format
	QuickSetMin []int  // Quick-set minute buttons on the timer input
}

// Load reads timedeck.yml, creating it with defaults on first run.
func Load() (Config, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("error getting user home directory: %w", err)
		}
		if runtime.GOOS == "windows" {
			configHome = filepath.Join(homeDir, "AppData", "Roaming")
		} else {
			configHome = filepath.Join(homeDir, ".config")
		}
	}

	configFile := filepath.Join(configHome, "timedeck", "timedeck.yml")
	viper.SetConfigFile(configFile)

	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return Config{}, fmt.Errorf("error creating config directory: %w", err)
	}

	viper.SetDefault("data_dir", "")
	viper.SetDefault("twelve_hour", true)
	viper.SetDefault("quick_set_minutes", []int{1, 2, 3, 5, 10, 15, 20, 30})

	viper.SetEnvPrefix("timedeck")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok || os.IsNotExist(err) {
			if err := viper.WriteConfigAs(configFile); err != nil {
				return Config{}, fmt.Errorf("error creating config file: %w", err)
			}
		} else {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return Config{
		DataDir:     viper.GetString("data_dir"),
		TwelveHour:  viper.GetBool("twelve_hour"),
		QuickSetMin: viper.GetIntSlice("quick_set_minutes"),
	}, nil
}
