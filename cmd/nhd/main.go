package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/North-Head-Digital/nhd-website/pkg/config"
	"github.com/North-Head-Digital/nhd-website/pkg/metrics"
	"github.com/North-Head-Digital/nhd-website/pkg/version"
)

var (
	// Global flags
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *logrus.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "nhd",
	Short: "North Head Digital website tooling",
	Long: `Tools for the North Head Digital marketing site.

Serve the public directory for local development, inspect the endpoints
the contact and newsletter forms submit to, and push a submission through
the same JSON-then-form fallback chain the site uses.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger, err = newLogger(cfg.LogLevel, logLevel)
		if err != nil {
			return err
		}

		metrics.Initialize(metrics.MetricsConfig{
			EnableLatency:        cfg.Metrics.EnableLatency,
			EnableDetailedStatus: cfg.Metrics.EnableDetailedStatus,
		})
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.Get().String())
	},
}

func newLogger(configured, override string) (*logrus.Logger, error) {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})

	level := configured
	if override != "" {
		level = override
	}
	if level == "" {
		return l, nil
	}

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	l.SetLevel(parsed)
	return l, nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config.yaml (default: ./config.yaml or ./config/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the configured log level")

	rootCmd.AddCommand(versionCmd, serveCmd, endpointsCmd, submitCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
