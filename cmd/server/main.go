package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/coachsync/internal/crypto"
	"github.com/iudanet/coachsync/internal/server"
	"github.com/iudanet/coachsync/internal/server/storage"
	"github.com/iudanet/coachsync/internal/server/storage/postgres"
	"github.com/iudanet/coachsync/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// Переменные окружения перекрывают значения по умолчанию, флаги перекрывают окружение
const (
	envAddr         = "COACHSYNC_ADDR"
	envDBPath       = "COACHSYNC_DB_PATH"
	envDatabaseURL  = "COACHSYNC_DATABASE_URL"
	envJWTSecret    = "COACHSYNC_JWT_SECRET"
	envCoachKeyHash = "COACHSYNC_COACH_KEY_HASH"
	envLogLevel     = "COACHSYNC_LOG_LEVEL"
)

type options struct {
	dbPath      string
	databaseURL string
	logLevel    string
	hashKey     string
	cfg         server.Config
	showVersion bool
}

func main() {
	opts := parseFlags()

	if opts.showVersion {
		printVersion()
		os.Exit(0)
	}

	if opts.hashKey != "" {
		hash, err := crypto.HashCoachKey(opts.hashKey, 0)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(hash)
		os.Exit(0)
	}

	logger := newLogger(opts.logLevel)

	if err := run(opts, logger); err != nil {
		logger.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(opts options, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStorage(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close storage", "error", err)
		}
	}()

	srv, err := server.New(opts.cfg, store, logger)
	if err != nil {
		return err
	}

	return srv.Run(ctx)
}

// openStorage выбирает PostgreSQL, если задан URL, иначе SQLite файл
func openStorage(ctx context.Context, opts options) (storage.Storage, error) {
	if opts.databaseURL != "" {
		store, err := postgres.New(ctx, opts.databaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres storage: %w", err)
		}
		return store, nil
	}

	store, err := sqlite.New(ctx, opts.dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite storage: %w", err)
	}
	return store, nil
}

func parseFlags() options {
	def := server.DefaultConfig()
	opts := options{cfg: def}

	flag.StringVar(&opts.cfg.Addr, "addr", envOr(envAddr, def.Addr), "HTTP listen address")
	flag.StringVar(&opts.dbPath, "db", envOr(envDBPath, "coachsync.db"), "SQLite database path (ignored when -database-url is set)")
	flag.StringVar(&opts.databaseURL, "database-url", os.Getenv(envDatabaseURL), "PostgreSQL connection URL")
	flag.StringVar(&opts.cfg.JWTSecret, "jwt-secret", os.Getenv(envJWTSecret), "secret for signing spectator tokens")
	flag.StringVar(&opts.cfg.CoachKeyHash, "coach-key-hash", os.Getenv(envCoachKeyHash), "bcrypt hash of the coach key")
	flag.StringVar(&opts.logLevel, "log-level", envOr(envLogLevel, "info"), "log level: debug, info, warn, error")
	flag.DurationVar(&opts.cfg.TokenTTL, "token-ttl", def.TokenTTL, "default spectator token lifetime")
	flag.DurationVar(&opts.cfg.MaxTokenTTL, "max-token-ttl", def.MaxTokenTTL, "maximum spectator token lifetime")
	flag.DurationVar(&opts.cfg.PingInterval, "ping-interval", def.PingInterval, "change feed keepalive interval")
	flag.DurationVar(&opts.cfg.ShutdownTimeout, "shutdown-timeout", def.ShutdownTimeout, "graceful shutdown timeout")
	flag.DurationVar(&opts.cfg.CleanupInterval, "cleanup-interval", def.CleanupInterval, "expired token cleanup interval, 0 disables")
	flag.IntVar(&opts.cfg.CoachRateLimit, "coach-rate", def.CoachRateLimit, "coach requests per minute per IP")
	flag.IntVar(&opts.cfg.SpectatorRateLimit, "spectator-rate", def.SpectatorRateLimit, "spectator requests per minute per IP")
	flag.IntVar(&opts.cfg.FeedRateLimit, "feed-rate", def.FeedRateLimit, "change feed connects per rate window per spectator token")
	flag.StringVar(&opts.hashKey, "hash-key", "", "print the bcrypt hash of the given coach key and exit")
	flag.BoolVar(&opts.showVersion, "version", false, "Show version information")
	flag.Parse()

	opts.cfg.Version = Version
	return opts
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func printVersion() {
	fmt.Printf("coachsync server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
