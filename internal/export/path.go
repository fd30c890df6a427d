package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type Format string

const (
	FormatJSON   Format = "json"
	FormatCSV    Format = "csv"
	FormatReport Format = "report"
)

var extensions = map[Format]string{
	FormatJSON:   ".json",
	FormatCSV:    ".csv",
	FormatReport: ".txt",
}

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	if _, ok := extensions[f]; !ok {
		return "", fmt.Errorf("unknown format %q (want json, csv or report)", s)
	}
	return f, nil
}

// ResolveOutputPath makes sure the parent directory exists and gives the path
// the format's extension when it has none.
func ResolveOutputPath(path string, format Format) (string, error) {
	if path == "" {
		return "", nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("[Export] failed to create output directory: %w", err)
		}
	}

	if filepath.Ext(path) == "" {
		ext, ok := extensions[format]
		if !ok {
			ext = ".txt"
		}
		path += ext
	}

	return path, nil
}

// CommentsPath derives the companion file for comment rows:
// out/posts.csv -> out/posts_comments.csv.
func CommentsPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_comments" + ext
}

func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("[Export] failed to create %s: %w", path, err)
	}

	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("[Export] failed to write %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("[Export] failed to close %s: %w", path, err)
	}
	return nil
}
