package main

import (
	"errors"
	"flag"
	"io"

	"github.com/spacesedan/sentiscope/internal/export"
	"github.com/spacesedan/sentiscope/internal/models"
	"github.com/spacesedan/sentiscope/internal/processing"
)

type cliOptions struct {
	Subreddit    string
	Limit        int
	Sort         models.SortMode
	Comments     bool
	CommentLimit int
	Output       string
	Format       export.Format
	Markdown     bool
	MetricsFile  string
	Verbose      bool
}

// parseFlags accepts both the long and the short spelling of the common
// flags (-s/--subreddit, -l/--limit, -c/--comments, -o/--output, -v/--verbose).
func parseFlags(args []string, stderr io.Writer) (cliOptions, error) {
	var (
		opts   cliOptions
		sort   string
		format string
	)

	fs := flag.NewFlagSet("analyzer", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.Subreddit, "subreddit", "", "Subreddit name to analyze (required)")
	fs.StringVar(&opts.Subreddit, "s", "", "Shorthand for --subreddit")
	fs.IntVar(&opts.Limit, "limit", processing.DEFAULT_POST_LIMIT, "Number of posts to analyze")
	fs.IntVar(&opts.Limit, "l", processing.DEFAULT_POST_LIMIT, "Shorthand for --limit")
	fs.StringVar(&sort, "sort", string(models.SortHot), "Sort posts by: hot, new or top")
	fs.BoolVar(&opts.Comments, "comments", false, "Also analyze comments")
	fs.BoolVar(&opts.Comments, "c", false, "Shorthand for --comments")
	fs.IntVar(&opts.CommentLimit, "comment-limit", processing.DEFAULT_COMMENT_LIMIT, "Comments to analyze per post")
	fs.StringVar(&opts.Output, "output", "", "Output file path")
	fs.StringVar(&opts.Output, "o", "", "Shorthand for --output")
	fs.StringVar(&format, "format", string(export.FormatJSON), "Output format: json, csv or report")
	fs.BoolVar(&opts.Markdown, "markdown", false, "Strip Reddit markdown before scoring")
	fs.StringVar(&opts.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this file")
	fs.BoolVar(&opts.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&opts.Verbose, "v", false, "Shorthand for --verbose")

	if err := fs.Parse(args); err != nil {
		return cliOptions{}, err
	}

	if opts.Subreddit == "" {
		return cliOptions{}, errors.New("the --subreddit flag is required")
	}
	if fs.NArg() > 0 {
		return cliOptions{}, errors.New("unexpected argument: " + fs.Arg(0))
	}
	if opts.Limit <= 0 {
		return cliOptions{}, errors.New("--limit must be positive")
	}
	if opts.CommentLimit <= 0 {
		return cliOptions{}, errors.New("--comment-limit must be positive")
	}

	var err error
	if opts.Sort, err = models.ParseSortMode(sort); err != nil {
		return cliOptions{}, err
	}
	if opts.Format, err = export.ParseFormat(format); err != nil {
		return cliOptions{}, err
	}

	return opts, nil
}
