// Package capture wires the capture command line.
package capture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	entrypoint "github.com/louisbranch/countrycapture/internal/platform/cmd"
	platformi18n "github.com/louisbranch/countrycapture/internal/platform/i18n"
	"github.com/louisbranch/countrycapture/internal/platform/logging"
	"github.com/louisbranch/countrycapture/internal/platform/otel"
	captureservice "github.com/louisbranch/countrycapture/internal/services/capture"
	"github.com/louisbranch/countrycapture/internal/services/capture/seed"
	"github.com/louisbranch/countrycapture/internal/services/capture/storage/sqlite"
)

// Config holds command configuration, read from COUNTRY_CAPTURE_* variables.
type Config struct {
	HTTPAddr  string `env:"HTTP_ADDR" envDefault:"localhost:8090"`
	DBPath    string `env:"DB_PATH" envDefault:"data/capture.db"`
	Logging   logging.Options
	Telemetry otel.Options
}

// ParseConfig loads Config from the environment.
func ParseConfig() (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// NewRootCommand builds the capture command tree. Flags override cfg.
func NewRootCommand(cfg Config, out, errOut io.Writer) *cobra.Command {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	root := &cobra.Command{
		Use:           "capture",
		Short:         "Country capture modal service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the SQLite level catalog")
	root.PersistentFlags().StringVar(&cfg.Logging.Level, "log-level", cfg.Logging.Level, "log level (debug, info, warn, error)")

	root.AddCommand(
		newServeCommand(&cfg),
		newRenderCommand(&cfg),
		newSeedCommand(&cfg),
	)
	return root
}

// Execute runs the command tree with args.
func Execute(ctx context.Context, cfg Config, args []string, out, errOut io.Writer) error {
	root := NewRootCommand(cfg, out, errOut)
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func newServeCommand(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the level index and capture modal over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), *cfg)
		},
	}
	cmd.Flags().StringVar(&cfg.HTTPAddr, "addr", cfg.HTTPAddr, "HTTP listen address")
	return cmd
}

func runServe(ctx context.Context, cfg Config) error {
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	store, err := sqlite.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open level store: %w", err)
	}
	defer store.Close()

	options := entrypoint.RunOptions{Telemetry: cfg.Telemetry, Logger: logger}
	return entrypoint.RunWithTelemetryAndOptions(ctx, entrypoint.ServiceCapture, options, func(ctx context.Context) error {
		server, err := captureservice.NewServer(ctx, captureservice.Config{
			HTTPAddr: cfg.HTTPAddr,
			Store:    store,
			Logger:   logger,
			Tracer:   otel.Tracer(entrypoint.ServiceCapture),
		})
		if err != nil {
			return err
		}
		defer server.Close()
		logger.Info("capture starting", zap.String("addr", cfg.HTTPAddr), zap.String("db", cfg.DBPath))
		return server.ListenAndServe(ctx)
	})
}

func newRenderCommand(cfg *Config) *cobra.Command {
	var levelID, lang string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the open modal markup for one level",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(levelID) == "" {
				return errors.New("--level is required")
			}
			tag, ok := platformi18n.ParseTag(lang)
			if !ok && strings.TrimSpace(lang) != "" {
				return fmt.Errorf("unsupported language %q", lang)
			}
			store, err := sqlite.Open(cmd.Context(), cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open level store: %w", err)
			}
			defer store.Close()

			service := captureservice.NewService(store, nil, nil)
			if err := service.RenderLevel(cmd.Context(), levelID, tag, cmd.OutOrStdout()); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout())
			return err
		},
	}
	cmd.Flags().StringVar(&levelID, "level", "", "level id to render")
	cmd.Flags().StringVar(&lang, "lang", "", "language tag (en-US, pt-BR)")
	return cmd
}

func newSeedCommand(cfg *Config) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load levels from a YAML fixture into the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(path) == "" {
				return errors.New("--file is required")
			}
			file, err := seed.LoadFile(path)
			if err != nil {
				return err
			}
			store, err := sqlite.Open(cmd.Context(), cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open level store: %w", err)
			}
			defer store.Close()

			result, err := seed.Apply(cmd.Context(), store, file, nil)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "seeded %d levels, %d completions (%d already recorded)\n",
				result.Levels, result.Completions, result.Skipped)
			names := make([]string, 0, len(result.AssignedIDs))
			for name := range result.AssignedIDs {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(out, "assigned %s -> %s\n", name, result.AssignedIDs[name])
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "file", "f", "", "YAML fixture path")
	return cmd
}
