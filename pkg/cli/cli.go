package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/m-mizutani/wardrobe/pkg/cli/config"
	"github.com/m-mizutani/wardrobe/pkg/domain/interfaces"
	"github.com/m-mizutani/wardrobe/pkg/domain/types"
	"github.com/m-mizutani/wardrobe/pkg/infra/console"
	"github.com/m-mizutani/wardrobe/pkg/infra/roblox"
	"github.com/urfave/cli/v3"
)

// runConfig holds process level dependencies of Run
type runConfig struct {
	stdin         io.Reader
	stdout        io.Writer
	stderr        io.Writer
	clientOptions []roblox.Option
}

// Option is a functional option for Run
type Option func(*runConfig)

// WithStdin sets the reader used for interactive prompts
func WithStdin(r io.Reader) Option {
	return func(c *runConfig) {
		c.stdin = r
	}
}

// WithStdout sets the destination of status lines and prompts
func WithStdout(w io.Writer) Option {
	return func(c *runConfig) {
		c.stdout = w
	}
}

// WithStderr sets the destination of logs
func WithStderr(w io.Writer) Option {
	return func(c *runConfig) {
		c.stderr = w
	}
}

// WithClientOptions appends options of the asset API client
func WithClientOptions(opts ...roblox.Option) Option {
	return func(c *runConfig) {
		c.clientOptions = append(c.clientOptions, opts...)
	}
}

// app carries what Before prepares for the actions
type app struct {
	run      *runConfig
	logger   *slog.Logger
	reporter interfaces.Reporter
	capture  func(error)
	flush    func()

	loggerCfg   config.Logger
	fileCfg     config.File
	authCfg     config.Auth
	settingsCfg config.Settings
	fetchCfg    config.Fetch
	sentryCfg   config.Sentry
}

// Run runs the CLI application
func Run(ctx context.Context, args []string, opts ...Option) error {
	rc := &runConfig{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(rc)
	}

	a := &app{
		run:      rc,
		reporter: console.New(console.WithWriter(rc.stdout)),
		capture:  func(error) {},
		flush:    func() {},
	}
	a.loggerCfg.Writer = rc.stderr

	var flags []cli.Flag
	flags = append(flags, a.loggerCfg.Flags()...)
	flags = append(flags, a.fileCfg.Flags()...)
	flags = append(flags, a.authCfg.Flags()...)
	flags = append(flags, a.settingsCfg.Flags()...)
	flags = append(flags, a.fetchCfg.Flags()...)
	flags = append(flags, a.sentryCfg.Flags()...)

	cmd := &cli.Command{
		Name:      "wardrobe",
		Usage:     "Download clothing images by catalog ID, catalog URL or a file listing them",
		ArgsUsage: "[file_or_id_or_url]",
		Version:   types.Version,
		Flags:     flags,
		Reader:    rc.stdin,
		Writer:    rc.stdout,
		ErrWriter: rc.stderr,
		Before:    a.before,
		Action:    a.cmdDownload,
		Commands: []*cli.Command{
			a.cmdThumbnail(),
		},
	}

	err := cmd.Run(ctx, args)
	a.flush()

	if err != nil {
		logger := a.logger
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("CLI execution failed", slog.Any("error", err))
		return err
	}

	return nil
}

func (a *app) before(ctx context.Context, c *cli.Command) (context.Context, error) {
	values, err := a.fileCfg.Load()
	if err != nil {
		return nil, err
	}
	if err := values.Apply(c, &a.fetchCfg, &a.settingsCfg, &a.loggerCfg); err != nil {
		return nil, err
	}

	logger, err := a.loggerCfg.Configure()
	if err != nil {
		return nil, err
	}
	a.logger = logger.With("run_id", uuid.NewString())
	slog.SetDefault(a.logger)

	capture, flush, err := a.sentryCfg.Configure()
	if err != nil {
		return nil, err
	}
	a.capture = capture
	a.flush = flush

	return ctx, nil
}
