package models

import (
	"fmt"
	"strings"
)

// SortMode selects which subreddit listing to read.
type SortMode string

const (
	SortHot SortMode = "hot"
	SortNew SortMode = "new"
	SortTop SortMode = "top"
)

func ParseSortMode(s string) (SortMode, error) {
	switch mode := SortMode(strings.ToLower(s)); mode {
	case SortHot, SortNew, SortTop:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown sort mode %q (want hot, new or top)", s)
	}
}
