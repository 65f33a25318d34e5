package config

import "github.com/urfave/cli/v3"

// Auth holds session cookie configuration
type Auth struct {
	Cookie     string
	SaveCookie bool
}

// Flags returns CLI flags for authentication
func (c *Auth) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "cookie",
			Usage:       "ROBLOSECURITY cookie for authentication",
			Destination: &c.Cookie,
			Sources:     cli.EnvVars("WARDROBE_COOKIE"),
		},
		&cli.BoolFlag{
			Name:        "save-cookie",
			Usage:       "Save the provided cookie to settings",
			Destination: &c.SaveCookie,
		},
	}
}
