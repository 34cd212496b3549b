// Package logging provides a zerolog-backed implementation of the
// appengine.Logger interface used by the client and the gae CLI.
//
// Example usage:
//
//	logger := logging.NewLogger(&logging.Config{Level: "debug", Format: "console"})
//	client, err := gaeclient.New(ctx, &appengine.Config{
//		Logger: logging.NewAdapter(logger),
//		Debug:  true,
//	})
package logging

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/fivetwenty-io/appengine-client/pkg/appengine"
)

// Adapter forwards appengine.Logger calls to a zerolog.Logger.
type Adapter struct {
	logger zerolog.Logger
}

// NewAdapter wraps logger.
func NewAdapter(logger zerolog.Logger) *Adapter {
	return &Adapter{logger: logger}
}

// Debug implements appengine.Logger.
func (a *Adapter) Debug(msg string, fields map[string]interface{}) {
	a.logger.Debug().Fields(fields).Msg(msg)
}

// Info implements appengine.Logger.
func (a *Adapter) Info(msg string, fields map[string]interface{}) {
	a.logger.Info().Fields(fields).Msg(msg)
}

// Warn implements appengine.Logger.
func (a *Adapter) Warn(msg string, fields map[string]interface{}) {
	a.logger.Warn().Fields(fields).Msg(msg)
}

// Error implements appengine.Logger.
func (a *Adapter) Error(msg string, fields map[string]interface{}) {
	a.logger.Error().Fields(fields).Msg(msg)
}

// Zerolog returns the wrapped logger.
func (a *Adapter) Zerolog() zerolog.Logger {
	return a.logger
}

// WithLogger stores logger in ctx.
func WithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// FromContext returns the logger stored in ctx, or a disabled logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

var _ appengine.Logger = (*Adapter)(nil)
