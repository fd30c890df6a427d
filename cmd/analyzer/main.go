package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/spacesedan/sentiscope/config"
	"github.com/spacesedan/sentiscope/internal/clients"
	"github.com/spacesedan/sentiscope/internal/export"
	"github.com/spacesedan/sentiscope/internal/logging"
	"github.com/spacesedan/sentiscope/internal/models"
	"github.com/spacesedan/sentiscope/internal/monitoring"
	"github.com/spacesedan/sentiscope/internal/processing"
	"github.com/spacesedan/sentiscope/internal/sentiment"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run returns the process exit code. Everything the user is meant to read
// goes to stdout; logs go to stderr and the log file.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stdout, "Error: %s\n", err)
		return 1
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	cfg, err := config.Load(env)
	if err != nil {
		fmt.Fprintf(stdout, "Error: %s\n", err)
		return 1
	}

	logger, err := logging.New(logging.Options{
		Level:   cfg.LogLevel,
		Verbose: opts.Verbose,
		Console: stderr,
		File:    cfg.LogFile,
	})
	if err != nil {
		fmt.Fprintf(stdout, "Error: %s\n", err)
		return 1
	}
	defer logger.Close()

	log := logger.With(slog.String("run_id", uuid.NewString()))
	slog.SetDefault(log)

	if err := analyze(ctx, cfg, opts, log, stdout); err != nil {
		if errors.Is(err, processing.ErrNoPosts) {
			fmt.Fprintln(stdout, "No posts found.")
			return 1
		}
		log.Error("[Main] Analysis failed", slog.String("error", err.Error()))
		fmt.Fprintf(stdout, "Error: %s\n", err)
		return 1
	}

	return 0
}

func analyze(ctx context.Context, cfg *config.Config, opts cliOptions, log *slog.Logger, stdout io.Writer) error {
	metrics := monitoring.NewMetrics()
	clock := clockwork.NewRealClock()

	reddit, err := clients.NewRedditClient(clients.RedditOptions{
		ClientID:          cfg.RedditClientID,
		ClientSecret:      cfg.RedditClientSecret,
		UserAgent:         cfg.RedditUserAgent,
		RequestsPerMinute: cfg.RedditRequestsPerMinute,
		Observer:          metrics,
		Logger:            log,
	})
	if err != nil {
		return err
	}

	var fetcher processing.Fetcher = reddit
	if cfg.CacheEnabled() {
		vc, err := clients.NewValkeyClient(clients.ValkeyOptions{
			Address:  cfg.ValkeyAddress,
			Password: cfg.ValkeyPassword,
			UseTLS:   cfg.ValkeyTLS,
			Logger:   log,
		})
		if err != nil {
			log.Warn("[Main] Listing cache unavailable, continuing without it", slog.String("error", err.Error()))
		} else {
			defer vc.Close()
			fetcher = processing.NewCachedFetcher(fetcher, vc, cfg.CacheTTL, log)
		}
	}

	pipeline := &processing.Pipeline{
		Fetcher:  fetcher,
		Scorer:   sentiment.NewScorer(sentiment.WithMarkdown(opts.Markdown)),
		Clock:    clock,
		Logger:   log,
		Observer: metrics,
		Progress: stdout,
	}

	result, err := pipeline.Run(ctx, processing.RunOptions{
		Subreddit:    opts.Subreddit,
		Limit:        opts.Limit,
		Sort:         opts.Sort,
		Comments:     opts.Comments,
		CommentLimit: opts.CommentLimit,
	})
	if err != nil {
		return err
	}

	if opts.Output != "" {
		message, err := exportResult(opts, clock, result)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, message)
	}

	printSummary(stdout, result)
	if opts.Verbose {
		printPosts(stdout, result.Posts)
	}

	metrics.MarkRunFinished(clock.Now())
	if opts.MetricsFile != "" {
		if err := metrics.WriteFile(opts.MetricsFile); err != nil {
			return err
		}
		log.Debug("[Main] Wrote metrics", slog.String("path", opts.MetricsFile))
	}

	return nil
}

func exportResult(opts cliOptions, clock clockwork.Clock, result models.AnalysisResult) (string, error) {
	path, err := export.ResolveOutputPath(opts.Output, opts.Format)
	if err != nil {
		return "", err
	}

	switch opts.Format {
	case export.FormatCSV:
		return export.ExportCSV(path, result)
	case export.FormatReport:
		return export.NewReporter(clock).Export(path, result)
	default:
		return export.ExportJSON(path, result)
	}
}
