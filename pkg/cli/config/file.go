package config

import (
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// File holds the path of the optional TOML configuration file
type File struct {
	Path string
}

// Flags returns CLI flags for the configuration file
func (c *File) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "TOML file with default option values",
			Destination: &c.Path,
			Sources:     cli.EnvVars("WARDROBE_CONFIG"),
		},
	}
}

// FileValues is the content of the configuration file. Durations use Go
// syntax, e.g. "10s".
type FileValues struct {
	Category     string `toml:"category"`
	OutputDir    string `toml:"output_dir"`
	SettingsPath string `toml:"settings_path"`
	Timeout      string `toml:"timeout"`
	MaxAttempts  int    `toml:"max_attempts"`
	RetryDelay   string `toml:"retry_delay"`
	UserAgent    string `toml:"user_agent"`
	LogLevel     string `toml:"log_level"`
}

// Load reads the configuration file. An empty Path yields nil values.
func (c *File) Load() (*FileValues, error) {
	if c.Path == "" {
		return nil, nil
	}

	raw, err := os.ReadFile(c.Path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", c.Path))
	}

	var values FileValues
	if err := toml.Unmarshal(raw, &values); err != nil {
		return nil, goerr.Wrap(err, "failed to parse config file", goerr.V("path", c.Path))
	}

	return &values, nil
}

// flagSetter reports whether a flag was given explicitly on the command
// line or through its environment variable
type flagSetter interface {
	IsSet(name string) bool
}

// Apply copies file values into the configuration structs for every option
// that was not set explicitly
func (x *FileValues) Apply(cmd flagSetter, fetch *Fetch, settings *Settings, logger *Logger) error {
	if x == nil {
		return nil
	}

	setString := func(flag, value string, dst *string) {
		if value != "" && !cmd.IsSet(flag) {
			*dst = value
		}
	}
	setDuration := func(flag, value string, dst *time.Duration) error {
		if value == "" || cmd.IsSet(flag) {
			return nil
		}
		d, err := time.ParseDuration(value)
		if err != nil {
			return goerr.Wrap(err, "invalid duration in config file", goerr.V("key", flag), goerr.V("value", value))
		}
		*dst = d
		return nil
	}

	setString("category", x.Category, &fetch.Category)
	setString("output-dir", x.OutputDir, &fetch.OutputDir)
	setString("user-agent", x.UserAgent, &fetch.UserAgent)
	setString("settings", x.SettingsPath, &settings.Path)
	setString("log-level", x.LogLevel, &logger.Level)

	if x.MaxAttempts > 0 && !cmd.IsSet("max-attempts") {
		fetch.MaxAttempts = x.MaxAttempts
	}
	if err := setDuration("timeout", x.Timeout, &fetch.Timeout); err != nil {
		return err
	}
	if err := setDuration("retry-delay", x.RetryDelay, &fetch.RetryDelay); err != nil {
		return err
	}

	return nil
}
