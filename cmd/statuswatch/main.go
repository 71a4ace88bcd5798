package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"statuswatch/internal/common"
	"statuswatch/internal/config"
	"statuswatch/internal/feed"
	"statuswatch/internal/logger"
	"statuswatch/internal/monitor"
	"statuswatch/internal/notifier"
	"statuswatch/internal/opsserver"
	"statuswatch/internal/scheduler"

	"github.com/urfave/cli/v2"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:           "statuswatch",
		Usage:          "Watch status page feeds and report new or updated incidents",
		Version:        version,
		DefaultCommand: "run",
		Commands: []*cli.Command{
			runCmd(),
			validateCmd(),
			versionCmd(),
		},
	}
}

func configFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to the YAML configuration file",
		EnvVars: []string{"STATUSWATCH_CONFIG"},
	}
}

func runCmd() *cli.Command {
	return &cli.Command{
		Name:   "run",
		Usage:  "Poll the configured feeds until interrupted",
		Flags:  []cli.Flag{configFlag()},
		Action: runAction,
	}
}

func validateCmd() *cli.Command {
	return &cli.Command{
		Name:   "validate",
		Usage:  "Load and validate the configuration, then print a summary",
		Flags:  []cli.Flag{configFlag()},
		Action: validateAction,
	}
}

func versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print the build version",
		Action: func(cCtx *cli.Context) error {
			fmt.Printf("%s version %s\n", cCtx.App.Name, cCtx.App.Version)
			return nil
		},
	}
}

func runAction(cCtx *cli.Context) error {
	cfg, err := config.LoadConfig(cCtx.String("config"))
	if err != nil {
		return common.WrapError(err, "loading configuration")
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return common.WrapError(err, "validating configuration")
	}

	zLogger, err := logger.New(cfg.Log)
	if err != nil {
		return common.WrapError(err, "initializing logger")
	}
	zLogger.Info().Str("version", version).Int("feeds", len(cfg.Watch.Feeds)).Msg("statuswatch starting")

	clientCfg := common.DefaultHTTPClientConfig()
	clientCfg.Timeout = cfg.HTTP.Timeout()
	feedClient := common.NewHTTPClient(clientCfg, zLogger)

	var sinks []notifier.Sink
	if cfg.Notifications.Console {
		sinks = append(sinks, notifier.NewConsoleSink(os.Stdout))
	}
	if cfg.Notifications.WebhookURL != "" {
		webhookClient := &http.Client{Timeout: cfg.Notifications.WebhookTimeout()}
		sinks = append(sinks, notifier.NewWebhookSink(
			cfg.Notifications.WebhookURL,
			webhookClient,
			cfg.Notifications.MaxRetryElapsed(),
			zLogger,
		))
	}
	if len(sinks) == 0 {
		zLogger.Warn().Msg("No notification sinks configured, incident changes will only be logged")
	}
	sink := notifier.NewFanout(zLogger, sinks...)

	fetcher := monitor.NewFetcher(feedClient, cfg.HTTP.UserAgent, zLogger)

	// Each monitor gets its own parser: gofeed parsers are not safe for
	// concurrent use.
	runners := make([]scheduler.Runner, 0, len(cfg.Watch.Feeds))
	for _, feedCfg := range cfg.Watch.Feeds {
		runners = append(runners, monitor.NewMonitor(
			feedCfg.Name,
			feedCfg.URL,
			feedCfg.Interval(),
			fetcher,
			feed.NewParser(zLogger),
			monitor.NewDetector(),
			monitor.NewMemoryStateStore(),
			sink,
			zLogger,
		))
	}

	sched, err := scheduler.New(runners, cfg.Watch.StartSpread(), zLogger)
	if err != nil {
		return common.WrapError(err, "building scheduler")
	}

	ctx, stop := signal.NotifyContext(cCtx.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var ops *opsserver.Server
	if cfg.Ops.Enabled {
		ops = opsserver.New(cfg.Ops.Listen, zLogger)
		go func() {
			if err := ops.Start(); err != nil {
				zLogger.Error().Err(err).Msg("Ops server failed")
			}
		}()
	}

	sched.Run(ctx)

	if ops != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := ops.Shutdown(shutdownCtx); err != nil {
			zLogger.Warn().Err(err).Msg("Ops server shutdown failed")
		}
	}

	zLogger.Info().Msg("statuswatch stopped")
	return nil
}

func validateAction(cCtx *cli.Context) error {
	resolved := config.GetConfigPath(cCtx.String("config"))
	cfg, err := config.LoadConfig(cCtx.String("config"))
	if err != nil {
		return err
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return err
	}

	if resolved == "" {
		resolved = "(built-in defaults)"
	}
	fmt.Printf("Configuration OK: %s\n", resolved)
	fmt.Printf("  feeds: %d\n", len(cfg.Watch.Feeds))
	for _, feedCfg := range cfg.Watch.Feeds {
		fmt.Printf("    - %s: %s (every %s)\n", feedCfg.Name, feedCfg.URL, feedCfg.Interval())
	}
	fmt.Printf("  console notifications: %t\n", cfg.Notifications.Console)
	if cfg.Notifications.WebhookURL != "" {
		fmt.Printf("  webhook: %s\n", cfg.Notifications.WebhookURL)
	}
	if cfg.Ops.Enabled {
		fmt.Printf("  ops listener: %s\n", cfg.Ops.Listen)
	}
	return nil
}
