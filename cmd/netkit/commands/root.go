package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/netkit-go/netkit/internal/config"
	netkitmetrics "github.com/netkit-go/netkit/internal/metrics"
)

var (
	// cfg is the loaded CLI configuration, populated in PersistentPreRunE.
	cfg *config.Config

	// logger is the structured logger built from cfg.Log, populated in
	// PersistentPreRunE.
	logger *slog.Logger

	// collector is the Prometheus metrics collector shared by the
	// ingest and decode subcommands.
	collector *netkitmetrics.Collector

	// configPath is the --config flag value.
	configPath string

	// outputFormat is the --format flag value. No command reads it:
	// every command prints plain text.
	outputFormat string
)

// rootCmd is the top-level cobra command for netkit.
var rootCmd = &cobra.Command{
	Use:   "netkit",
	Short: "Network addressing and protocol-decoding toolkit",
	Long:  "netkit classifies, subnets, and decodes IPv4/IPv6/MAC addresses and Ethernet/IPv4/ICMPv4/TCP packets.",
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded

		logger = newLogger(cfg.Log)
		collector = netkitmetrics.NewCollector(prometheus.NewRegistry())

		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"path to configuration file (YAML)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "table",
		"output format (not applied: output is always plain text)")

	rootCmd.AddCommand(classifyCmd())
	rootCmd.AddCommand(subnetCmd())
	rootCmd.AddCommand(ouiCmd())
	rootCmd.AddCommand(decodeCmd())
	rootCmd.AddCommand(versionCmd())
}

// Execute runs the root command and exits with code 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// newLogger builds a structured logger the way cmd/gobfd does, minus
// the dynamic level reload (the CLI is one-shot, not a long-lived
// daemon).
func newLogger(cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: config.ParseLogLevel(cfg.Level)}

	var handler slog.Handler
	switch cfg.Format {
	case "text":
		handler = slog.NewTextHandler(os.Stderr, opts)
	default:
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}
