package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"

	"scratchmenu/pkg/logger"
)

const (
	configDirName  = "scratchmenu"
	configFileName = "config.yaml"
)

// DefaultConfigPath returns the config file location under the XDG
// config home.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, configDirName, configFileName)
}

// initializeConfig creates or loads the configuration.
func initializeConfig(providedPath string, defaultPath string, log *logger.Logger) (*Config, error) {
	// An explicit path must load, no fallback
	if providedPath != "" {
		config, err := loadConfigFromPath(providedPath, log)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load config from provided path")
		}
		return config, nil
	}

	if _, err := os.Stat(defaultPath); os.IsNotExist(err) {
		config := DefaultConfig(log)
		if err := os.MkdirAll(filepath.Dir(defaultPath), 0755); err != nil {
			log.Warn("Could not create config directory", "path", filepath.Dir(defaultPath), "error", err.Error())
			return config, nil
		}
		if err := config.WriteToFile(defaultPath); err != nil {
			log.Warn("Could not write default config", "path", defaultPath, "error", err.Error())
			return config, nil
		}
		config.path = defaultPath
		log.Info("Wrote default configuration", "path", defaultPath)
		return config, nil
	}

	config, err := loadConfigFromPath(defaultPath, log)
	if err != nil {
		log.Warn("Falling back to default configuration", "path", defaultPath, "error", err.Error())
		return DefaultConfig(log), nil
	}
	return config, nil
}

// FindConfig locates and initializes the configuration.
func FindConfig(providedPath string, log *logger.Logger) (*Config, error) {
	log.Debug("Looking for configuration", "provided_path", providedPath)

	defaultConfigPath := DefaultConfigPath()
	log.Debug("Configuration paths", "config_path", defaultConfigPath)

	config, err := initializeConfig(providedPath, defaultConfigPath, log)
	if err != nil {
		return nil, err
	}

	log.Debug("Configuration loaded",
		"path", config.path,
		"swaymsg", config.swaymsg,
		"menu", config.menu,
		"action", config.action,
		"unique", config.unique)
	return config, nil
}
