// Package feed is the content source refreshed by a pull. A plain refresh
// returns every entry; a menu refresh narrows the entries to the selected
// label.
package feed

import (
	"context"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Entry is one item of content.
type Entry struct {
	Title string `koanf:"title"`
	Topic string `koanf:"topic"`
}

// Result is the outcome of a load.
type Result struct {
	// Label is the menu label the load was filtered by, empty for a plain
	// refresh.
	Label   string
	Entries []Entry
	// Matched is false when a label matched nothing and every entry was
	// returned instead.
	Matched  bool
	LoadedAt time.Time
}

// Source serves entries with a configurable latency.
type Source struct {
	entries  []Entry
	latency  time.Duration
	throttle *throttle
	now      func() time.Time
}

// New returns a source over entries. latency delays every load; minInterval
// spaces consecutive loads.
func New(entries []Entry, latency, minInterval time.Duration) *Source {
	dup := make([]Entry, len(entries))
	copy(dup, entries)
	return &Source{
		entries:  dup,
		latency:  latency,
		throttle: newThrottle(minInterval),
		now:      time.Now,
	}
}

// Entries returns every entry.
func (s *Source) Entries() []Entry {
	dup := make([]Entry, len(s.entries))
	copy(dup, s.entries)
	return dup
}

// Load waits for the configured latency and returns the entries for label.
func (s *Source) Load(ctx context.Context, label string) (Result, error) {
	if err := s.throttle.wait(ctx); err != nil {
		return Result{}, err
	}
	if s.latency > 0 {
		timer := time.NewTimer(s.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		case <-timer.C:
		}
	}
	entries, matched := Filter(s.entries, label)
	return Result{Label: label, Entries: entries, Matched: matched, LoadedAt: s.now()}, nil
}

// Filter returns the entries whose topic fuzzy-matches label, then those whose
// title contains it. When nothing matches, every entry is returned and matched
// is false.
func Filter(entries []Entry, label string) ([]Entry, bool) {
	trimmed := strings.TrimSpace(label)
	if trimmed == "" {
		return clone(entries), true
	}
	topics := make([]string, len(entries))
	for i, e := range entries {
		topics[i] = e.Topic
	}
	if ranks := fuzzy.RankFindNormalizedFold(trimmed, topics); len(ranks) > 0 {
		keep := make(map[int]struct{}, len(ranks))
		for _, rank := range ranks {
			keep[rank.OriginalIndex] = struct{}{}
		}
		filtered := make([]Entry, 0, len(keep))
		for i, e := range entries {
			if _, ok := keep[i]; ok {
				filtered = append(filtered, e)
			}
		}
		return filtered, true
	}
	lower := strings.ToLower(trimmed)
	var filtered []Entry
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Title), lower) {
			filtered = append(filtered, e)
		}
	}
	if len(filtered) > 0 {
		return filtered, true
	}
	return clone(entries), false
}

// DefaultEntries is the built-in sample feed.
func DefaultEntries() []Entry {
	return []Entry{
		{Title: "Council approves new cycle lanes downtown", Topic: "Top Stories"},
		{Title: "Storm warning issued for the coast", Topic: "Top Stories"},
		{Title: "Local bakery wins national award", Topic: "Most Recent"},
		{Title: "Train timetable changes from Monday", Topic: "Most Recent"},
		{Title: "A beginner's guide to sourdough", Topic: "Interest"},
		{Title: "Ten walks within an hour of the city", Topic: "Interest"},
		{Title: "Why terminals still matter", Topic: "Interest"},
	}
}

func clone(entries []Entry) []Entry {
	if entries == nil {
		return nil
	}
	dup := make([]Entry, len(entries))
	copy(dup, entries)
	return dup
}
