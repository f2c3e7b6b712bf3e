package config

import (
	"time"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"scratchmenu/pkg/logger"
)

// Config holds the application configuration.
type Config struct {
	// Configurable via the config file (private fields to enforce immutability)
	swaymsg       string
	menu          string
	action        string
	unique        bool
	queryTimeout  time.Duration
	notifyCommand string

	// Internal fields
	path string
	log  *logger.Logger
}

// fileConfig is the on-disk shape. YAML is a superset of JSON, so
// both formats load through it.
type fileConfig struct {
	Swaymsg       string         `yaml:"swaymsg"`
	Menu          string         `yaml:"menu"`
	Action        string         `yaml:"action"`
	Unique        bool           `yaml:"unique"`
	QueryTimeout  *Duration      `yaml:"query_timeout,omitempty"`
	NotifyCommand string         `yaml:"notify_command"`
}

// Duration is a time.Duration in the config file. It accepts a duration
// string ("750ms", "5s") or a plain number of seconds.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var seconds int64
	if err := value.Decode(&seconds); err == nil {
		*d = Duration(time.Duration(seconds) * time.Second)
		return nil
	}

	var s string
	if err := value.Decode(&s); err != nil {
		return errors.Newf("line %d: expected a duration, got %q", value.Line, value.Value)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return errors.Wrapf(err, "line %d", value.Line)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// New creates a new Config instance with the provided logger.
func New(log *logger.Logger) *Config {
	return &Config{
		log: log,
	}
}

// GetSwaymsg returns the swaymsg binary.
func (c *Config) GetSwaymsg() string {
	return c.swaymsg
}

// GetMenu returns the menu command line. Empty means auto-detect.
func (c *Config) GetMenu() string {
	return c.menu
}

// GetAction returns the sway command run on the selected window.
func (c *Config) GetAction() string {
	return c.action
}

// GetUnique reports whether duplicate menu entries are collapsed.
func (c *Config) GetUnique() bool {
	return c.unique
}

// GetQueryTimeout returns the timeout for swaymsg queries.
func (c *Config) GetQueryTimeout() time.Duration {
	return c.queryTimeout
}

// GetNotifyCommand returns the notify command.
func (c *Config) GetNotifyCommand() string {
	return c.notifyCommand
}

// GetPath returns the file the configuration was loaded from, if any.
func (c *Config) GetPath() string {
	return c.path
}

// Overrides carries command line values that win over the file.
// Nil fields leave the loaded value untouched.
type Overrides struct {
	Menu   *string
	Action *string
	Unique *bool
}

// Apply returns a copy of c with the overrides applied.
func (c *Config) Apply(o Overrides) *Config {
	out := *c
	if o.Menu != nil {
		out.menu = *o.Menu
	}
	if o.Action != nil && *o.Action != "" {
		out.action = *o.Action
	}
	if o.Unique != nil {
		out.unique = *o.Unique
	}
	return &out
}

func (c *Config) toFile() fileConfig {
	return fileConfig{
		Swaymsg:       c.swaymsg,
		Menu:          c.menu,
		Action:        c.action,
		Unique:        c.unique,
		QueryTimeout:  (*Duration)(&c.queryTimeout),
		NotifyCommand: c.notifyCommand,
	}
}
