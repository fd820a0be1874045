// Package window turns an entry search request into the catalog's query
// parameters and describes the page that came back.
package window

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"feedscout/internal/models"
)

var (
	validStatuses   = []string{models.EntryStatusUnread, models.EntryStatusRead, models.EntryStatusRemoved}
	validOrders     = []string{"id", "status", "published_at", "category_title", "category_id"}
	validDirections = []string{"asc", "desc"}
)

// Limits bounds the page size of an entry search.
type Limits struct {
	Default int
	Max     int
}

var DefaultLimits = Limits{Default: 20, Max: 100}

// Filter is the scope-free part of a search window. Time bounds accept
// anything NormalizeTime understands; unusable values are left out.
type Filter struct {
	Search   string
	Statuses []string
	Starred  *bool

	Before          any
	After           any
	PublishedBefore any
	PublishedAfter  any
	ChangedBefore   any
	ChangedAfter    any

	BeforeEntryID int64
	AfterEntryID  int64

	Limit     int
	Offset    int
	Order     string
	Direction string
}

// Normalize clamps paging to limits and validates the enumerated fields.
func (f *Filter) Normalize(limits Limits) error {
	if limits.Default <= 0 {
		limits = DefaultLimits
	}
	if f.Limit <= 0 {
		f.Limit = limits.Default
	}
	if limits.Max > 0 && f.Limit > limits.Max {
		f.Limit = limits.Max
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	statuses := make([]string, 0, len(f.Statuses))
	for _, s := range f.Statuses {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if !contains(validStatuses, s) {
			return fmt.Errorf("%w: invalid status %q (expected one of %s)", models.ErrValidation, s, strings.Join(validStatuses, ", "))
		}
		statuses = append(statuses, s)
	}
	f.Statuses = statuses

	f.Order = strings.ToLower(strings.TrimSpace(f.Order))
	if f.Order != "" && !contains(validOrders, f.Order) {
		return fmt.Errorf("%w: invalid order %q (expected one of %s)", models.ErrValidation, f.Order, strings.Join(validOrders, ", "))
	}
	f.Direction = strings.ToLower(strings.TrimSpace(f.Direction))
	if f.Direction != "" && !contains(validDirections, f.Direction) {
		return fmt.Errorf("%w: invalid direction %q (expected asc or desc)", models.ErrValidation, f.Direction)
	}
	if f.BeforeEntryID < 0 || f.AfterEntryID < 0 {
		return fmt.Errorf("%w: entry id cursors must be positive", models.ErrValidation)
	}
	return nil
}

// Values renders the filter as catalog query parameters.
func (f Filter) Values() url.Values {
	v := url.Values{}
	v.Set("limit", strconv.Itoa(f.Limit))
	v.Set("offset", strconv.Itoa(f.Offset))
	if s := strings.TrimSpace(f.Search); s != "" {
		v.Set("search", s)
	}
	for _, s := range f.Statuses {
		v.Add("status", s)
	}
	if f.Starred != nil {
		v.Set("starred", strconv.FormatBool(*f.Starred))
	}
	for _, tb := range f.timeBounds() {
		if ts, ok := NormalizeTime(tb.val); ok {
			v.Set(tb.key, strconv.FormatInt(ts, 10))
		}
	}
	if f.BeforeEntryID > 0 {
		v.Set("before_entry_id", strconv.FormatInt(f.BeforeEntryID, 10))
	}
	if f.AfterEntryID > 0 {
		v.Set("after_entry_id", strconv.FormatInt(f.AfterEntryID, 10))
	}
	if f.Order != "" {
		v.Set("order", f.Order)
	}
	if f.Direction != "" {
		v.Set("direction", f.Direction)
	}
	return v
}

type timeBound struct {
	key string
	val any
}

func (f Filter) timeBounds() []timeBound {
	return []timeBound{
		{"before", f.Before},
		{"after", f.After},
		{"published_before", f.PublishedBefore},
		{"published_after", f.PublishedAfter},
		{"changed_before", f.ChangedBefore},
		{"changed_after", f.ChangedAfter},
	}
}

// DroppedTimeBounds lists the time bounds that were supplied but could not be
// understood, and are therefore missing from Values.
func (f Filter) DroppedTimeBounds() []string {
	var dropped []string
	for _, tb := range f.timeBounds() {
		if tb.val == nil {
			continue
		}
		if s, ok := tb.val.(string); ok && strings.TrimSpace(s) == "" {
			continue
		}
		if _, ok := NormalizeTime(tb.val); !ok {
			dropped = append(dropped, tb.key)
		}
	}
	return dropped
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
