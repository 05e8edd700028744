package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/louisbranch/countrycapture/internal/platform/config"
	"github.com/louisbranch/countrycapture/internal/platform/logging"
	"github.com/louisbranch/countrycapture/internal/platform/otel"
	"github.com/louisbranch/countrycapture/internal/platform/timeouts"
)

// ServiceCapture names the capture process in telemetry and logs.
const ServiceCapture = "capture"

// RunOptions controls shared entrypoint behavior for commands.
type RunOptions struct {
	// Telemetry configures the trace exporter.
	Telemetry otel.Options
	// Logger receives shutdown failures. Nil discards them.
	Logger *zap.Logger
}

// ParseConfig loads prefixed environment values into cfg.
func ParseConfig[T any](cfg *T) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	return config.ParseEnvWithPrefix(cfg, config.EnvPrefix)
}

// RunWithTelemetryAndOptions configures tracing and executes run, flushing
// spans on return.
func RunWithTelemetryAndOptions(ctx context.Context, service string, options RunOptions, run func(context.Context) error) error {
	service = strings.TrimSpace(service)
	if service == "" {
		return fmt.Errorf("service name is required")
	}
	if run == nil {
		return fmt.Errorf("run function is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.OrNop(options.Logger)

	shutdown, err := otel.Setup(ctx, service, options.Telemetry)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.TraceFlush)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			logger.Warn("otel shutdown", zap.String("service", service), zap.Error(err))
		}
	}()
	return run(ctx)
}
