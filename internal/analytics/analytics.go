// Package analytics keeps an append-only event log in the local cache and
// computes the dashboard reductions over it. Events are device-local;
// nothing here talks to the remote gateway.
package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/aghannam/manassa/internal/cache"
	"github.com/aghannam/manassa/internal/common"
	"github.com/aghannam/manassa/internal/logging"
)

const collection = "analytics_events"

// Event kinds recorded by the site and the admin panel.
const (
	KindVisit        = "visit"
	KindPageView     = "pageview"
	KindArticleView  = "articleView"
	KindCategoryView = "categoryView"
	KindUserAction   = "userAction"
)

// Named reporting windows.
const (
	Period7d  = "7d"
	Period30d = "30d"
	Period90d = "90d"
	Period1y  = "1y"
)

// Event is one recorded occurrence. Payload keys in use: "path",
// "articleId", "userAgent", "referrer".
type Event struct {
	ID        string            `json:"id"`
	Kind      string            `json:"kind"`
	Payload   map[string]string `json:"payload,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// Count pairs a reduction key with its tally, largest first.
type Count struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Log records and reduces events. Safe for concurrent use.
type Log struct {
	store  *cache.Store
	logger logging.Logger
	now    func() time.Time

	mu     sync.Mutex
	events []Event
	loaded bool
}

func NewLog(store *cache.Store, logger logging.Logger) *Log {
	return &Log{store: store, logger: logger, now: time.Now}
}

func periodDuration(period string) (time.Duration, error) {
	switch period {
	case Period7d:
		return 7 * 24 * time.Hour, nil
	case Period30d:
		return 30 * 24 * time.Hour, nil
	case Period90d:
		return 90 * 24 * time.Hour, nil
	case Period1y:
		return 365 * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("unknown period %q", period)
	}
}

// load must be called with l.mu held. A corrupt or absent log starts empty.
func (l *Log) load(ctx context.Context) error {
	if l.loaded {
		return nil
	}
	payload, found, err := l.store.Get(ctx, collection)
	if err != nil {
		return err
	}
	if found {
		if err := json.Unmarshal(payload, &l.events); err != nil {
			l.logger.Warn(ctx, "corrupt analytics log, starting empty", "error", err)
			l.events = nil
		}
	}
	l.loaded = true
	return nil
}

func (l *Log) persist(ctx context.Context) error {
	events := l.events
	if events == nil {
		events = []Event{}
	}
	payload, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("%w: marshal analytics: %w", common.ErrLocalStorage, err)
	}
	return l.store.Set(ctx, collection, payload)
}

// Record appends one event stamped with the current time.
func (l *Log) Record(ctx context.Context, kind string, payload map[string]string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.load(ctx); err != nil {
		return err
	}

	suffix, err := common.MakeRandHexString(4)
	if err != nil {
		suffix = "00000000"
	}
	now := l.now()
	l.events = append(l.events, Event{
		ID:        fmt.Sprintf("%d-%s", now.UnixMilli(), suffix),
		Kind:      kind,
		Payload:   payload,
		Timestamp: now,
	})
	return l.persist(ctx)
}

// Window returns the events recorded within the named period, newest last.
func (l *Log) Window(ctx context.Context, period string) ([]Event, error) {
	d, err := periodDuration(period)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.load(ctx); err != nil {
		return nil, err
	}

	cutoff := l.now().Add(-d)
	out := make([]Event, 0, len(l.events))
	for _, e := range l.events {
		if e.Timestamp.After(cutoff) {
			out = append(out, e)
		}
	}
	return out, nil
}

// topBy tallies a payload key over a window and returns the n largest.
func (l *Log) topBy(ctx context.Context, period, kind, payloadKey string, n int) ([]Count, error) {
	events, err := l.Window(ctx, period)
	if err != nil {
		return nil, err
	}

	tally := map[string]int{}
	for _, e := range events {
		if e.Kind != kind {
			continue
		}
		if v := e.Payload[payloadKey]; v != "" {
			tally[v]++
		}
	}
	return topN(tally, n), nil
}

// TopPages returns the n most viewed paths in the period.
func (l *Log) TopPages(ctx context.Context, period string, n int) ([]Count, error) {
	return l.topBy(ctx, period, KindPageView, "path", n)
}

// TopArticles returns the n most viewed article ids in the period.
func (l *Log) TopArticles(ctx context.Context, period string, n int) ([]Count, error) {
	return l.topBy(ctx, period, KindArticleView, "articleId", n)
}

// Devices buckets the period's visits by device class derived from the
// recorded user agent.
func (l *Log) Devices(ctx context.Context, period string) ([]Count, error) {
	events, err := l.Window(ctx, period)
	if err != nil {
		return nil, err
	}

	tally := map[string]int{}
	for _, e := range events {
		if ua := e.Payload["userAgent"]; ua != "" {
			tally[DeviceClass(ua)]++
		}
	}
	return topN(tally, len(tally)), nil
}

// Browsers buckets the period's visits by browser family.
func (l *Log) Browsers(ctx context.Context, period string) ([]Count, error) {
	events, err := l.Window(ctx, period)
	if err != nil {
		return nil, err
	}

	tally := map[string]int{}
	for _, e := range events {
		if ua := e.Payload["userAgent"]; ua != "" {
			tally[BrowserFamily(ua)]++
		}
	}
	return topN(tally, len(tally)), nil
}

// Prune drops events older than maxAgeDays and reports how many were
// removed. Pruning an already-pruned log removes nothing.
func (l *Log) Prune(ctx context.Context, maxAgeDays int) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.load(ctx); err != nil {
		return 0, err
	}

	cutoff := l.now().AddDate(0, 0, -maxAgeDays)
	kept := make([]Event, 0, len(l.events))
	for _, e := range l.events {
		if e.Timestamp.After(cutoff) {
			kept = append(kept, e)
		}
	}

	removed := len(l.events) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	l.events = kept
	if err := l.persist(ctx); err != nil {
		return 0, err
	}
	return removed, nil
}

// DeviceClass maps a user agent to mobile, tablet, or desktop.
func DeviceClass(ua string) string {
	s := strings.ToLower(ua)
	switch {
	case strings.Contains(s, "ipad") || strings.Contains(s, "tablet"):
		return "tablet"
	case strings.Contains(s, "mobi") || strings.Contains(s, "android") || strings.Contains(s, "iphone"):
		return "mobile"
	default:
		return "desktop"
	}
}

// BrowserFamily maps a user agent to a coarse browser family. Order
// matters: Edge and Opera embed "chrome", Chrome embeds "safari".
func BrowserFamily(ua string) string {
	s := strings.ToLower(ua)
	switch {
	case strings.Contains(s, "edg"):
		return "edge"
	case strings.Contains(s, "opr") || strings.Contains(s, "opera"):
		return "opera"
	case strings.Contains(s, "firefox"):
		return "firefox"
	case strings.Contains(s, "chrome"):
		return "chrome"
	case strings.Contains(s, "safari"):
		return "safari"
	default:
		return "other"
	}
}

func topN(tally map[string]int, n int) []Count {
	out := make([]Count, 0, len(tally))
	for k, c := range tally {
		out = append(out, Count{Key: k, Count: c})
	}
	// largest first, key ascending for stable output on ties
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out
}
