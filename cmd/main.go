package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"httpblast/internal/cli"
	"httpblast/internal/client"
	"httpblast/internal/config"
	"httpblast/internal/influx"
	"httpblast/internal/logging"
	"httpblast/internal/summary"
)

type rootFlags struct {
	url         string
	number      int
	concurrency int
	timeout     string
	warmup      int
	configFile  string
	capacity    bool
	influx      bool
	verbose     bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			cli.Failf("%v", err)
		}
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	flags := rootFlags{}

	cmd := &cobra.Command{
		Use:           "httpblast",
		Short:         "Fixed-count HTTP GET load generator",
		Long:          "httpblast issues a fixed number of GET requests against a URL in concurrency-bounded rounds and reports latency statistics.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, &flags)
		},
	}

	cmd.Flags().StringVarP(&flags.url, "url", "u", "", "Target URL (prompted interactively when omitted)")
	cmd.Flags().IntVarP(&flags.number, "number", "n", config.DefaultRequests, "Total number of requests to issue")
	cmd.Flags().IntVarP(&flags.concurrency, "concurrency", "c", config.DefaultConcurrency, "Number of concurrent requests per round")
	cmd.Flags().StringVar(&flags.timeout, "timeout", config.DefaultTimeout, "Per-request timeout")
	cmd.Flags().IntVar(&flags.warmup, "warmup", config.DefaultWarmup, "Warmup requests issued before measuring")
	cmd.Flags().StringVar(&flags.configFile, "config", "", "Optional YAML config file")
	cmd.Flags().BoolVar(&flags.capacity, "capacity", false, "Search the highest concurrency meeting the configured thresholds")
	cmd.Flags().BoolVar(&flags.influx, "influx", false, "Export samples to InfluxDB (connection settings from the config file)")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Debug logging to stderr")

	return cmd
}

func run(cmd *cobra.Command, flags *rootFlags) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := buildConfig(cmd, flags)
	if err != nil {
		return err
	}

	logger, err := logging.New(flags.verbose)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	influxClient := influx.NewClient(ctx, cfg.Influx)
	defer influxClient.Close()

	if flags.capacity {
		return runCapacity(ctx, cfg, logger)
	}

	return runLoad(ctx, cfg, logger, influxClient)
}

// buildConfig layers defaults, the optional YAML file, explicit flags,
// and finally the interactive prompt when no URL was given. Explicit
// flags win over file values.
func buildConfig(cmd *cobra.Command, flags *rootFlags) (*config.Config, error) {
	cfg := config.Default()

	if flags.configFile != "" {
		if err := config.LoadFile(cfg, flags.configFile); err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("url") {
		cfg.URL = flags.url
	}
	if cmd.Flags().Changed("number") {
		cfg.Requests = flags.number
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency = flags.concurrency
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Timeout = flags.timeout
	}
	if cmd.Flags().Changed("warmup") {
		cfg.Warmup = flags.warmup
	}
	if flags.influx {
		cfg.Influx.Enabled = true
	}

	if cfg.URL == "" {
		cli.PrintBanner()
		values, err := cli.PromptRun(cfg.Requests, cfg.Concurrency)
		if err != nil {
			return nil, err
		}
		cfg.URL = values.URL
		cfg.Requests = values.Requests
		cfg.Concurrency = values.Concurrency
	}

	if err := cfg.Resolve(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func runLoad(ctx context.Context, cfg *config.Config, logger *zap.Logger, influxClient *influx.Client) error {
	cli.Section("Run")
	cli.KeyValue("URL", cfg.URL)
	cli.KeyValue("Requests", fmt.Sprintf("%d", cfg.Requests))
	cli.KeyValue("Concurrency", fmt.Sprintf("%d", cfg.Concurrency))
	cli.KeyValue("Timeout", cfg.Timeout)
	cli.Blank()

	runner := client.NewRunner(ctx, cfg, logger)
	defer runner.Close()

	if cfg.Warmup > 0 {
		cli.Infof("Warmup: %d requests", cfg.Warmup)
		runner.Warmup(cfg.Warmup)
	}

	spinner := cli.NewProgressSpinner()
	spinner.Start(runner.Rounds(), cfg.Requests)
	runner.OnRound = func(done, _, requests int) {
		spinner.Update(done, requests)
	}

	result, runErr := runner.Run()
	spinner.Stop()

	if runErr != nil && result == nil {
		return runErr
	}
	if runErr != nil {
		cli.Warnf("Interrupted after %d of %d requests", result.Total(), cfg.Requests)
	}

	stats := client.Reduce(result)
	summary.PrintRun(stats, result.Duration)

	if influxClient != nil {
		runID := influx.RunID()
		influxClient.WriteRunSamples(runID, cfg.URL, result.Samples)
		influxClient.WriteRunSummary(runID, cfg.URL, stats)
		cli.Infof("Exported run %s to InfluxDB", runID)
	}

	return nil
}

func runCapacity(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	cli.Section("Capacity")
	cli.KeyValue("URL", cfg.URL)
	cli.KeyValue("Requests per probe", fmt.Sprintf("%d", cfg.Capacity.Requests))
	cli.Blank()

	tester := client.NewCapacityTester(ctx, cfg, logger)
	result, err := tester.Run()
	if err != nil {
		return fmt.Errorf("capacity test failed: %w", err)
	}

	summary.PrintCapacity(result)
	return nil
}
