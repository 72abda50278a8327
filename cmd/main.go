package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/iplstat/internal/adapters/http/api"
	"github.com/okian/iplstat/internal/adapters/http/swagger"
	service "github.com/okian/iplstat/internal/app"
	"github.com/okian/iplstat/internal/config"
	"github.com/okian/iplstat/internal/domain/ranking"
	"github.com/okian/iplstat/pkg/logger"
)

// HTTP server timeout constants.
const (
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type options struct {
	batting string
	bowling string
	query   string
	player  string
	list    bool
	serve   bool
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if err := logger.InitWithWriter(stderr); err != nil {
		fmt.Fprintln(stderr, "failed to initialize logging:", err)
		return exitFailure
	}
	defer func() { _ = logger.Sync() }()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(stderr, "failed to load config:", err)
		return exitFailure
	}

	opts, err := parseFlags(args, cfg, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	log := logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc := service.New(
		service.WithLogger(logger.Named("analyser")),
		service.WithTopWindow(cfg.TopWindow),
		service.WithSuggestionDistance(cfg.SuggestionDistance),
		service.WithWorkers(cfg.Workers),
	)

	if opts.list {
		return writeOutput(stdout, stderr, svc.Queries())
	}

	if opts.batting == "" || opts.bowling == "" {
		fmt.Fprintln(stderr, "both -batting and -bowling are required")
		return exitUsage
	}
	if _, err := svc.LoadBatting(ctx, opts.batting); err != nil {
		fmt.Fprintln(stderr, err)
		return exitFailure
	}
	if _, err := svc.LoadBowling(ctx, opts.bowling); err != nil {
		fmt.Fprintln(stderr, err)
		return exitFailure
	}

	switch {
	case opts.serve:
		if err := serve(ctx, cfg, svc); err != nil {
			log.Error(ctx, "server failed", logger.Error(err))
			return exitFailure
		}
		return exitOK
	case opts.player != "":
		p, err := svc.FindPlayer(ctx, opts.player)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return exitFailure
		}
		return writeOutput(stdout, stderr, p)
	case opts.query != "":
		res, err := svc.Run(ctx, opts.query)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return exitFailure
		}
		return writeOutput(stdout, stderr, res)
	default:
		return runAll(ctx, svc, stdout, stderr)
	}
}

func parseFlags(args []string, cfg *config.Config, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("iplstat", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.batting, "batting", cfg.BattingPath, "path to the batting CSV")
	fs.StringVar(&o.bowling, "bowling", cfg.BowlingPath, "path to the bowling CSV")
	fs.StringVar(&o.query, "query", "", "run a single query by name")
	fs.StringVar(&o.player, "player", "", "print the profile of a player")
	fs.BoolVar(&o.list, "list", false, "list the available queries")
	fs.BoolVar(&o.serve, "serve", false, "serve the query API over HTTP")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %v\n", fs.Args())
		fs.Usage()
		return o, errors.New("unexpected arguments")
	}
	return o, nil
}

// runAll evaluates the whole catalogue. Queries with no qualifying rows are
// reported inline and do not fail the run.
func runAll(ctx context.Context, svc *service.Service, stdout, stderr io.Writer) int {
	answers, err := svc.RunAll(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitFailure
	}
	for _, a := range answers {
		if a.Err != nil && !errors.Is(a.Err, ranking.ErrEmptyResult) {
			fmt.Fprintln(stderr, a.Err)
			return exitFailure
		}
	}
	return writeOutput(stdout, stderr, answers)
}

func writeOutput(stdout, stderr io.Writer, v any) int {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintln(stderr, "failed to write output:", err)
		return exitFailure
	}
	return exitOK
}

func serve(ctx context.Context, cfg *config.Config, svc *service.Service) error {
	log := logger.Get()

	r := api.NewRouter(cfg.CORSAllowedOrigins)

	// Register API docs under /api-docs
	swagger.Register(ctx, r)

	// Register business API routes with the service dependency.
	api.NewServer(svc, svc).Register(ctx, r)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadTimeout:       time.Duration(cfg.ReadTimeoutMS) * time.Millisecond,
		WriteTimeout:      time.Duration(cfg.WriteTimeoutMS) * time.Millisecond,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr), logger.String("session", svc.ID()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("%w: %w", api.ErrServe, err)
		}
		close(errCh)
	}()

	// Wait for shutdown signal
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	<-errCh

	log.Info(ctx, "server stopped")
	return nil
}
