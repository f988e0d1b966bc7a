// Package cmd wires up the CLI flags and dispatches to the honeypot.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"telnetlog/config"
	"telnetlog/honeypot"
	"telnetlog/internal/report"
	"telnetlog/util"
)

// version is overridable at link time:
//
//	go build -ldflags "-X telnetlog/cmd.version=2.0.0"
var version = "1.0.0" //nolint:gochecknoglobals

// Execute parses args, resolves configuration, and runs the honeypot
// until ctx ends.  Precedence: flags > environment > config file >
// defaults.
func Execute(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("telnetlog", flag.ContinueOnError)

	// Flag targets are scratch variables; only flags the user actually
	// set are copied onto the Config, so the layering stays intact.
	var (
		port        int
		idleSec     int
		attempts    int
		retrySec    int
		output      string
		sqlitePath  string
		redisAddr   string
		redisPass   string
		redisDB     int
		redisChan   string
		metricsAddr string
		verbose     int
		configPath  string
	)

	// ── listener ─────────────────────────────────────────────────
	fs.IntVarP(&port, "port", "l", config.DefaultPort, "TCP port to listen on")
	fs.IntVarP(&idleSec, "timeout", "w", int(config.DefaultIdleTimeout/time.Second),
		"Receive timeout in seconds")

	// ── session ──────────────────────────────────────────────────
	fs.IntVar(&attempts, "attempts", config.DefaultMaxAttempts,
		"Login retries after the first attempt")
	fs.IntVar(&retrySec, "retry-delay", int(config.DefaultRetryDelay/time.Second),
		"Seconds to stall between rejected attempts")

	// ── sinks ────────────────────────────────────────────────────
	fs.StringVarP(&output, "output", "o", "", "CSV output file (default stdout)")
	fs.StringVar(&sqlitePath, "sqlite", "", "SQLite database path")
	fs.StringVar(&redisAddr, "redis", "", "Redis address for pub/sub (host:port)")
	fs.StringVar(&redisPass, "redis-password", "", "Redis password")
	fs.IntVar(&redisDB, "redis-db", 0, "Redis database number")
	fs.StringVar(&redisChan, "redis-channel", config.DefaultRedisChannel,
		"Redis pub/sub channel")

	// ── observability ────────────────────────────────────────────
	fs.StringVar(&metricsAddr, "metrics", "", "Prometheus/health listen address (e.g. :9100)")
	fs.CountVarP(&verbose, "verbose", "v", "Increase verbosity (repeatable)")

	fs.StringVarP(&configPath, "config", "f", "", "YAML configuration file")

	var showVersion, showHelp, dryRun bool
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	fs.BoolVarP(&showHelp, "help", "h", false, "Show this help")
	fs.BoolVar(&dryRun, "dry-run", false, "Validate configuration and exit")

	fs.Usage = func() { printUsage(fs) }

	// ── parse ────────────────────────────────────────────────────
	if err := fs.Parse(args); err != nil {
		return err
	}

	if showHelp {
		printUsage(fs)
		return nil
	}
	if showVersion {
		fmt.Printf("telnetlog %s\n", version)
		return nil
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected argument %q (use --help for usage)", fs.Args()[0])
	}

	// ── resolve configuration ────────────────────────────────────
	cfg := config.New()
	if configPath != "" {
		if err := config.LoadFile(cfg, configPath); err != nil {
			return err
		}
	}
	config.LoadFromEnv(cfg)

	if fs.Changed("port") {
		cfg.Port = port
	}
	if fs.Changed("timeout") {
		cfg.IdleTimeout = time.Duration(idleSec) * time.Second
	}
	if fs.Changed("attempts") {
		cfg.MaxAttempts = attempts
	}
	if fs.Changed("retry-delay") {
		cfg.RetryDelay = time.Duration(retrySec) * time.Second
	}
	if fs.Changed("output") {
		cfg.Output = output
	}
	if fs.Changed("sqlite") {
		cfg.SQLitePath = sqlitePath
	}
	if fs.Changed("redis") {
		cfg.RedisAddr = redisAddr
	}
	if fs.Changed("redis-password") {
		cfg.RedisPass = redisPass
	}
	if fs.Changed("redis-db") {
		cfg.RedisDB = redisDB
	}
	if fs.Changed("redis-channel") {
		cfg.RedisChannel = redisChan
	}
	if fs.Changed("metrics") {
		cfg.MetricsAddr = metricsAddr
	}
	if fs.Changed("verbose") {
		cfg.Verbose = verbose
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if dryRun {
		return nil
	}

	// ── build components ─────────────────────────────────────────
	logger := util.NewLogger(cfg.Verbose)

	sink, err := buildSink(cfg, logger)
	if err != nil {
		return err
	}
	defer sink.Close()

	hp := honeypot.New(cfg, sink, logger)
	return hp.Run(ctx)
}

// ── helpers ──────────────────────────────────────────────────────────

// buildSink assembles the reporting fan-out from the configuration.
// CSV is always on; SQLite and Redis join when configured.
func buildSink(cfg *config.Config, logger *util.Logger) (report.Sink, error) {
	var sinks []report.Sink

	csv, err := report.OpenCSV(cfg.Output)
	if err != nil {
		return nil, fmt.Errorf("csv output: %w", err)
	}
	sinks = append(sinks, csv)

	// Network and disk sinks get a circuit breaker so a dead backend
	// is suspended instead of being hit on every credential.
	if cfg.SQLitePath != "" {
		store, err := report.NewStore(cfg.SQLitePath)
		if err != nil {
			csv.Close() //nolint:errcheck
			return nil, fmt.Errorf("sqlite: %w", err)
		}
		sinks = append(sinks, report.NewGuard(store, nil))
	}

	if cfg.RedisAddr != "" {
		pub, err := report.NewPublisher(cfg.RedisAddr, cfg.RedisPass,
			cfg.RedisDB, cfg.RedisChannel)
		if err != nil {
			for _, s := range sinks {
				s.Close() //nolint:errcheck
			}
			return nil, fmt.Errorf("redis: %w", err)
		}
		sinks = append(sinks, report.NewGuard(pub, nil))
	}

	return report.NewReporter(logger, sinks...), nil
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, `telnetlog – Telnet honeypot v%s

Accepts telnet connections, walks peers through a fake login, and
records every username/password pair.  Nobody ever gets a shell.

Usage:
  telnetlog [options]

Options:
`, version)
	fs.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Examples:
  telnetlog                                   Listen on port 23, CSV to stdout
  telnetlog -l 2323 -o creds.csv              Unprivileged port, append to file
  telnetlog --sqlite creds.db --metrics :9100 SQLite sink plus Prometheus
  telnetlog --redis localhost:6379 -vv        Publish events, chatty logging
`)
}
