package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MillerMedia/MSDS-460-Decision-Analytics-The-Diet-Problem/internal/config"
	"github.com/MillerMedia/MSDS-460-Decision-Analytics-The-Diet-Problem/internal/logging"
	"github.com/MillerMedia/MSDS-460-Decision-Analytics-The-Diet-Problem/internal/planner"
	"github.com/MillerMedia/MSDS-460-Decision-Analytics-The-Diet-Problem/internal/server"
	"github.com/MillerMedia/MSDS-460-Decision-Analytics-The-Diet-Problem/pkg/constants"
	"github.com/MillerMedia/MSDS-460-Decision-Analytics-The-Diet-Problem/pkg/lp/simplex"
	"github.com/MillerMedia/MSDS-460-Decision-Analytics-The-Diet-Problem/pkg/output"
	"github.com/MillerMedia/MSDS-460-Decision-Analytics-The-Diet-Problem/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "diet-solver",
		Short:        "Find the cheapest combination of goods that meets attribute requirements",
		SilenceUsage: true,
	}
	cmd.AddCommand(solveCmd(), serveCmd(), versionCmd())
	return cmd
}

func solveCmd() *cobra.Command {
	var (
		configLocation   string
		outputFormatFlag string
		logLevel         string
		concurrency      int
	)

	c := &cobra.Command{
		Use:   "solve",
		Short: "Solve every active scenario of a problem file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Load the config file to get logging configuration
			conf, err := config.LoadConfiguration(configLocation)
			if err != nil {
				return fmt.Errorf("failed to load configuration at %s: %w", configLocation, err)
			}

			// Initialize logging based on config and CLI override
			logger, err := logging.New(conf.Logging, logLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() {
				_ = logger.Sync()
			}()

			// Determine output format (CLI override takes precedence over config)
			outputFormat := conf.Output.Format
			if outputFormatFlag != "" {
				outputFormat = outputFormatFlag
			}
			if outputFormat == "" {
				outputFormat = constants.OutputFormatPretty
			}
			if err := validation.ValidateOutputFormat(outputFormat); err != nil {
				logger.Error(err.Error(), zap.String("op", "main.solve"))
				return err
			}

			// Validate configuration and display any warnings
			for _, warning := range conf.ValidateConfiguration() {
				logger.Warn("Configuration warning: "+warning,
					zap.String("op", "main.solve"),
				)
			}

			runner, err := planner.NewRunner(logger, simplex.New(), conf)
			if err != nil {
				return err
			}
			runner.Concurrency = concurrency

			results, err := runner.Run(cmd.Context())
			if err != nil {
				logger.Error("failed to solve scenarios",
					zap.String("op", "main.solve"),
					zap.Error(err),
				)
				return err
			}

			return output.Write(cmd.OutOrStdout(), outputFormat, results)
		},
	}

	c.Flags().StringVarP(&configLocation, "config", "c", constants.DefaultConfigFile, "path to problem file")
	c.Flags().StringVarP(&outputFormatFlag, "output-format", "o", "", "type of output override: pretty, csv, json")
	c.Flags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	c.Flags().IntVar(&concurrency, "concurrency", 0, "maximum scenarios solved at once (0 uses GOMAXPROCS)")
	return c
}

func serveCmd() *cobra.Command {
	var (
		configLocation string
		address        string
		logLevel       string
	)

	c := &cobra.Command{
		Use:   "serve",
		Short: "Serve the solve API over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := server.LoadConfig(configLocation)
			if err != nil {
				return err
			}
			if address != "" {
				cfg.Address = address
			}

			logger, err := logging.New(cfg.Logging, logLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() {
				_ = logger.Sync()
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			handler := server.NewHandler(logger, cfg.Engine(), cfg, version)
			if err := server.Serve(ctx, logger, cfg, handler); err != nil {
				logger.Error("server stopped", zap.String("op", "main.serve"), zap.Error(err))
				return err
			}
			return nil
		},
	}

	c.Flags().StringVarP(&configLocation, "config", "c", constants.DefaultServerConfigFile, "path to server configuration file")
	c.Flags().StringVarP(&address, "address", "a", "", "listen address override (e.g. :8080)")
	c.Flags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	return c
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "diet-solver %s (%s)\n", version, simplex.EngineName)
			return err
		},
	}
}
