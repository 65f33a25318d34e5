package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/wardrobe/pkg/domain/interfaces"
	"github.com/m-mizutani/wardrobe/pkg/domain/model"
	"github.com/m-mizutani/wardrobe/pkg/infra/roblox"
	"github.com/m-mizutani/wardrobe/pkg/usecase"
	"github.com/m-mizutani/wardrobe/pkg/utils/retry"
	"github.com/urfave/cli/v3"
)

// Fetch holds download configuration
type Fetch struct {
	Category    string
	OutputDir   string
	Timeout     time.Duration
	MaxAttempts int
	RetryDelay  time.Duration
	UserAgent   string
}

// Flags returns CLI flags for download configuration
func (c *Fetch) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "category",
			Usage:       "Asset category used as output subdirectory (shirts, pants)",
			Value:       string(model.DefaultCategory),
			Destination: &c.Category,
			Sources:     cli.EnvVars("WARDROBE_CATEGORY"),
		},
		&cli.StringFlag{
			Name:        "output-dir",
			Usage:       "Root directory of downloaded images",
			Value:       usecase.DefaultOutputDir,
			Destination: &c.OutputDir,
			Sources:     cli.EnvVars("WARDROBE_OUTPUT_DIR"),
		},
		&cli.DurationFlag{
			Name:        "timeout",
			Usage:       "Timeout of each HTTP request",
			Value:       roblox.DefaultTimeout,
			Destination: &c.Timeout,
			Sources:     cli.EnvVars("WARDROBE_TIMEOUT"),
		},
		&cli.IntFlag{
			Name:        "max-attempts",
			Usage:       "Attempts per lookup on timeout or connection failure",
			Value:       retry.DefaultMaxAttempts,
			Destination: &c.MaxAttempts,
			Sources:     cli.EnvVars("WARDROBE_MAX_ATTEMPTS"),
		},
		&cli.DurationFlag{
			Name:        "retry-delay",
			Usage:       "Pause between lookup attempts",
			Value:       retry.DefaultDelay,
			Destination: &c.RetryDelay,
			Sources:     cli.EnvVars("WARDROBE_RETRY_DELAY"),
		},
		&cli.StringFlag{
			Name:        "user-agent",
			Usage:       "User-Agent header of lookup requests",
			Value:       roblox.DefaultUserAgent,
			Destination: &c.UserAgent,
			Sources:     cli.EnvVars("WARDROBE_USER_AGENT"),
		},
	}
}

// RetryPolicy returns the configured retry policy
func (c *Fetch) RetryPolicy() retry.Policy {
	return retry.Policy{
		MaxAttempts: c.MaxAttempts,
		Delay:       c.RetryDelay,
	}
}

// NewFetcher builds the asset client and fetcher from the configuration.
// extra client options are applied after the configured ones.
func (c *Fetch) NewFetcher(logger *slog.Logger, reporter interfaces.Reporter, extra ...roblox.Option) interfaces.FetcherUseCase {
	clientOpts := append([]roblox.Option{
		roblox.WithTimeout(c.Timeout),
		roblox.WithUserAgent(c.UserAgent),
		roblox.WithLogger(logger),
	}, extra...)

	return usecase.NewFetcher(
		roblox.NewClient(clientOpts...),
		reporter,
		usecase.WithRetryPolicy(c.RetryPolicy()),
		usecase.WithOutputDir(c.OutputDir),
		usecase.WithLogger(logger),
	)
}
