package console

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/wardrobe/pkg/domain/interfaces"
)

// Reporter prints bold colored status lines
type Reporter struct {
	w       io.Writer
	success *color.Color
	warn    *color.Color
	failure *color.Color
	notice  *color.Color
}

var _ interfaces.Reporter = (*Reporter)(nil)

// Option is a functional option for Reporter configuration
type Option func(*Reporter)

// WithWriter sets the output destination
func WithWriter(w io.Writer) Option {
	return func(r *Reporter) {
		r.w = w
	}
}

// WithNoColor disables ANSI escape sequences
func WithNoColor() Option {
	return func(r *Reporter) {
		for _, c := range []*color.Color{r.success, r.warn, r.failure, r.notice} {
			c.DisableColor()
		}
	}
}

// New creates a Reporter writing to stdout unless configured otherwise
func New(opts ...Option) *Reporter {
	r := &Reporter{
		w:       os.Stdout,
		success: color.New(color.FgGreen, color.Bold),
		warn:    color.New(color.FgYellow, color.Bold),
		failure: color.New(color.FgRed, color.Bold),
		notice:  color.New(color.FgCyan, color.Bold),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Success prints a green line
func (r *Reporter) Success(format string, args ...any) {
	r.print(r.success, format, args...)
}

// Warn prints a yellow line
func (r *Reporter) Warn(format string, args ...any) {
	r.print(r.warn, format, args...)
}

// Failure prints a red line
func (r *Reporter) Failure(format string, args ...any) {
	r.print(r.failure, format, args...)
}

// Notice prints a cyan line
func (r *Reporter) Notice(format string, args ...any) {
	r.print(r.notice, format, args...)
}

func (r *Reporter) print(c *color.Color, format string, args ...any) {
	// Write errors on a terminal are not actionable
	_, _ = c.Fprintln(r.w, fmt.Sprintf(format, args...))
}
