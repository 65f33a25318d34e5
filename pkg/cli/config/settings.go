package config

import (
	"github.com/m-mizutani/wardrobe/pkg/infra/settings"
	"github.com/urfave/cli/v3"
)

// Settings holds settings file configuration
type Settings struct {
	Path  string
	Clear bool
}

// Flags returns CLI flags for the settings file
func (c *Settings) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "settings",
			Usage:       "Path of the settings file",
			Value:       settings.DefaultPath,
			Destination: &c.Path,
			Sources:     cli.EnvVars("WARDROBE_SETTINGS"),
		},
		&cli.BoolFlag{
			Name:        "clear-settings",
			Usage:       "Clear saved settings",
			Destination: &c.Clear,
		},
	}
}
