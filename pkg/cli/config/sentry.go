package config

import (
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/wardrobe/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// Sentry holds error reporting configuration
type Sentry struct {
	DSN string
	Env string
}

// Flags returns CLI flags for Sentry configuration
func (c *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN for reporting unexpected failures",
			Destination: &c.DSN,
			Sources:     cli.EnvVars("WARDROBE_SENTRY_DSN"),
		},
		&cli.StringFlag{
			Name:        "sentry-env",
			Usage:       "Sentry environment",
			Value:       "default",
			Destination: &c.Env,
			Sources:     cli.EnvVars("WARDROBE_SENTRY_ENV"),
		},
	}
}

// Enabled reports whether a DSN is configured
func (c *Sentry) Enabled() bool {
	return c.DSN != ""
}

// Configure initializes the Sentry client. The returned function captures an
// error and is a no-op when Sentry is disabled. flush must be called before
// the process exits.
func (c *Sentry) Configure() (capture func(error), flush func(), err error) {
	if !c.Enabled() {
		return func(error) {}, func() {}, nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         c.DSN,
		Environment: c.Env,
		Release:     types.Version,
	}); err != nil {
		return nil, nil, goerr.Wrap(err, "failed to initialize sentry", goerr.V("env", c.Env))
	}

	capture = func(err error) {
		sentry.CaptureException(err)
	}
	flush = func() {
		sentry.Flush(2 * time.Second)
	}
	return capture, flush, nil
}
