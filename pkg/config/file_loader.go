package config

import (
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"scratchmenu/pkg/logger"
)

// LoadFromFile loads the configuration from a YAML (or JSON) file.
func (c *Config) LoadFromFile(path string, log *logger.Logger) error {
	log.Debug("Loading configuration from file", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		log.Error("Failed to read config file", err, "path", path)
		return errors.Wrapf(err, "read config %s", path)
	}
	log.Debug("Config file read successfully", "size_bytes", len(data))

	var temp fileConfig
	if err := yaml.Unmarshal(data, &temp); err != nil {
		log.Error("Failed to parse config file", err, "path", path)
		return errors.Wrapf(err, "parse config %s", path)
	}
	log.Debug("Config file parsed successfully")

	// Assign to private fields
	c.swaymsg = temp.Swaymsg
	c.menu = temp.Menu
	c.action = temp.Action
	c.unique = temp.Unique
	c.queryTimeout = DefaultQueryTimeout
	if temp.QueryTimeout != nil {
		c.queryTimeout = time.Duration(*temp.QueryTimeout)
	}
	c.notifyCommand = temp.NotifyCommand
	c.path = path

	c.fillDefaults()
	return nil
}

// WriteToFile stores the configuration as YAML.
func (c *Config) WriteToFile(path string) error {
	data, err := yaml.Marshal(c.toFile())
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "write config %s", path)
	}
	return nil
}

// loadConfigFromPath loads the configuration from a file.
func loadConfigFromPath(path string, log *logger.Logger) (*Config, error) {
	config := New(log)
	if err := config.LoadFromFile(path, log); err != nil {
		return nil, err
	}
	return config, nil
}
