package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/peopleops/hr-console/internal/app"
	"github.com/peopleops/hr-console/internal/cli"
	"github.com/peopleops/hr-console/internal/config"
	"github.com/peopleops/hr-console/internal/observability"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := pflag.NewFlagSet("hrctl", pflag.ContinueOnError)
	flags.SetInterspersed(false)
	apiURL := flags.String("api-url", "", "HR backend base URL (overrides API_BASE_URL)")
	store := flags.String("store", "", "token store backend: file, redis or memory")
	logLevel := flags.String("log-level", "warn", "log level for stderr diagnostics")
	jsonOut := flags.Bool("json", false, "print JSON instead of tables")
	if err := flags.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		fmt.Fprintf(os.Stderr, "hrctl: %v\n", err)
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "hrctl: %v\n", err)
		return 1
	}
	if *apiURL != "" {
		cfg.API.BaseURL = *apiURL
	}
	if *store != "" {
		cfg.Store.Backend = *store
	}
	if flags.Changed("log-level") || os.Getenv("LOG_LEVEL") == "" {
		cfg.Logger.Level = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "hrctl: %v\n", err)
		return 1
	}

	logger, err := observability.NewCLILogger(cfg.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hrctl: %v\n", err)
		return 1
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	container, err := app.Build(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hrctl: %v\n", err)
		return 1
	}
	defer container.Close()

	env := &cli.Env{Container: container, Out: os.Stdout, Err: os.Stderr, JSON: *jsonOut}
	if err := cli.Run(ctx, env, flags.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "hrctl: %v\n", err)
		return 1
	}
	return 0
}
