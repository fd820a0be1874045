package clix

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"feedscout/internal/window"
)

type PaginationParams struct {
	Limit  int
	Offset int
}

// ParsePagination reads --limit and --offset. A zero limit is kept so the
// configured default applies later.
func ParsePagination(flags *pflag.FlagSet) (PaginationParams, error) {
	limit, _ := flags.GetInt("limit")
	offset, _ := flags.GetInt("offset")
	if limit < 0 {
		return PaginationParams{}, fmt.Errorf("--limit must not be negative")
	}
	if offset < 0 {
		offset = 0
	}
	return PaginationParams{Limit: limit, Offset: offset}, nil
}

// ParseList splits a comma separated flag value, dropping blanks.
func ParseList(flags *pflag.FlagSet, name string) ([]string, error) {
	raw, err := flags.GetString(name)
	if err != nil {
		return nil, err
	}
	var out []string
	if raw != "" {
		// Trim space and filter out empty strings in one pass
		for _, item := range strings.Split(raw, ",") {
			trimmed := strings.TrimSpace(item)
			if trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out, nil
}

// ParseOptionalBool returns nil unless the flag was set explicitly.
func ParseOptionalBool(flags *pflag.FlagSet, name string) (*bool, error) {
	if !flags.Changed(name) {
		return nil, nil
	}
	v, err := flags.GetBool(name)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// AddWindowFlags registers the entry search window flags on flags.
func AddWindowFlags(flags *pflag.FlagSet) {
	flags.String("search", "", "Full-text search query")
	flags.String("status", "", "Comma separated statuses (unread, read, removed)")
	flags.Bool("starred", false, "Only starred entries (--starred=false for unstarred)")
	for _, name := range timeFlags {
		flags.String(name, "", "Time bound: unix seconds, unix milliseconds or a date (2006-01-02[T15:04:05])")
	}
	flags.Int64("before-entry-id", 0, "Only entries with a smaller id")
	flags.Int64("after-entry-id", 0, "Only entries with a larger id")
	flags.Int("limit", 0, "Page size (0 uses the configured default)")
	flags.Int("offset", 0, "Number of entries to skip")
	flags.String("order", "", "Sort field (id, status, published_at, category_title, category_id)")
	flags.String("direction", "", "Sort direction (asc, desc)")
}

var timeFlags = []string{"before", "after", "published-before", "published-after", "changed-before", "changed-after"}

// ParseWindow builds a search filter from the flags added by AddWindowFlags.
func ParseWindow(flags *pflag.FlagSet) (window.Filter, error) {
	var f window.Filter
	page, err := ParsePagination(flags)
	if err != nil {
		return f, err
	}
	f.Limit, f.Offset = page.Limit, page.Offset

	f.Search, _ = flags.GetString("search")
	if f.Statuses, err = ParseList(flags, "status"); err != nil {
		return f, err
	}
	if f.Starred, err = ParseOptionalBool(flags, "starred"); err != nil {
		return f, err
	}

	bounds := make(map[string]any, len(timeFlags))
	for _, name := range timeFlags {
		if v, _ := flags.GetString(name); v != "" {
			bounds[name] = v
		}
	}
	f.Before = bounds["before"]
	f.After = bounds["after"]
	f.PublishedBefore = bounds["published-before"]
	f.PublishedAfter = bounds["published-after"]
	f.ChangedBefore = bounds["changed-before"]
	f.ChangedAfter = bounds["changed-after"]

	f.BeforeEntryID, _ = flags.GetInt64("before-entry-id")
	f.AfterEntryID, _ = flags.GetInt64("after-entry-id")
	f.Order, _ = flags.GetString("order")
	f.Direction, _ = flags.GetString("direction")
	return f, nil
}
