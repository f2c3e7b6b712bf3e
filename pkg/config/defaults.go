package config

import (
	"time"

	"scratchmenu/pkg/logger"
)

const (
	DefaultSwaymsg      = "swaymsg"
	DefaultAction       = "scratchpad show"
	DefaultQueryTimeout = 5 * time.Second
)

// DefaultConfig creates a default configuration.
func DefaultConfig(log *logger.Logger) *Config {
	log.Debug("Creating default configuration")

	config := &Config{
		swaymsg:      DefaultSwaymsg,
		menu:         "",
		action:       DefaultAction,
		unique:       false,
		queryTimeout: DefaultQueryTimeout,
		log:          log,
	}

	log.Debug("Created default configuration",
		"swaymsg", config.swaymsg,
		"action", config.action,
		"query_timeout", config.queryTimeout.String())

	return config
}

// fillDefaults replaces unset values with their defaults.
func (c *Config) fillDefaults() {
	if c.swaymsg == "" {
		c.swaymsg = DefaultSwaymsg
	}
	if c.action == "" {
		c.action = DefaultAction
	}
	if c.queryTimeout < 0 {
		c.queryTimeout = 0
	}
}
