// Package repository implements the local-first data access layer: one
// generic CRUD+list repository per entity type, orchestrating the remote
// gateway and the persistent local cache. The pattern everywhere is "try
// remote, fall back to local cache, reconcile on write". The cache holds a
// full copy of the collection, replaced wholesale on every local write.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/aghannam/manassa/internal/cache"
	"github.com/aghannam/manassa/internal/common"
	"github.com/aghannam/manassa/internal/gateway"
	"github.com/aghannam/manassa/internal/logging"
	"github.com/aghannam/manassa/internal/models"
)

// ValidationError carries the user-facing messages for a rejected write.
// No I/O is performed when validation fails.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

// Options parameterizes the generic repository per entity type. Blank
// produces a fresh zero entity for JSON decoding; Seed returns the demo
// dataset materialized when a collection was never written.
type Options[T models.Entity] struct {
	Validate func(T) []string
	Seed     func() []T
	Blank    func() T
}

// Repository presents one coherent CRUD+list API per entity type that is
// agnostic to whether the data ultimately lives remotely or locally.
type Repository[T models.Entity] struct {
	collection string
	gw         gateway.Gateway
	store      *cache.Store
	logger     logging.Logger
	opts       Options[T]
	now        func() time.Time

	mu     sync.Mutex
	items  []T
	loaded bool
}

func New[T models.Entity](collection string, gw gateway.Gateway, store *cache.Store, logger logging.Logger, opts Options[T]) *Repository[T] {
	return &Repository[T]{
		collection: collection,
		gw:         gw,
		store:      store,
		logger:     logger,
		opts:       opts,
		now:        time.Now,
	}
}

// Collection returns the collection name the repository manages.
func (r *Repository[T]) Collection() string { return r.collection }

// localID synthesizes an id for entities created while the remote store is
// unreachable: unix milliseconds plus a random suffix.
func (r *Repository[T]) localID() string {
	suffix, err := common.MakeRandHexString(4)
	if err != nil {
		suffix = "00000000"
	}
	return fmt.Sprintf("%d-%s", r.now().UnixMilli(), suffix)
}

// Reload discards the in-memory working set so the next operation fetches
// the collection again, preferring the remote store. Used after the remote
// comes back mid-session, or to pick up writes made by another admin.
func (r *Repository[T]) Reload() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loaded = false
	r.items = nil
}

// load fills the in-memory working set: remote first when available and
// non-empty, otherwise the local cache (materializing seed defaults for a
// never-written collection). Callers must hold r.mu.
func (r *Repository[T]) load(ctx context.Context) error {
	if r.loaded {
		return nil
	}

	if r.gw.Available() {
		docs, err := r.gw.List(ctx, r.collection)
		if err != nil {
			r.logger.Warn(ctx, "remote list failed, using local cache",
				"collection", r.collection, "error", err)
		} else if len(docs) > 0 {
			items := make([]T, 0, len(docs))
			for _, doc := range docs {
				item := r.opts.Blank()
				if err := json.Unmarshal(doc, item); err != nil {
					r.logger.Warn(ctx, "skipping malformed remote document",
						"collection", r.collection, "error", err)
					continue
				}
				items = append(items, item)
			}
			r.items = items
			r.loaded = true
			// keep the fallback copy warm
			if err := r.persistLocal(ctx); err != nil {
				r.logger.Warn(ctx, "cache refresh failed",
					"collection", r.collection, "error", err)
			}
			return nil
		}
	}

	items, err := r.readLocal(ctx)
	if err != nil {
		return err
	}
	r.items = items
	r.loaded = true
	return nil
}

// readLocal reads the cached collection. A missing key materializes the
// seed defaults and persists them, so the "never written" state can no
// longer be confused with "intentionally emptied". Corrupt payloads are
// treated as absent: the cache is advisory, never a source of fatal errors.
func (r *Repository[T]) readLocal(ctx context.Context) ([]T, error) {
	payload, found, err := r.store.Get(ctx, r.collection)
	if err != nil {
		// degraded read: serve the seeds without persisting
		r.logger.Error(ctx, "cache read failed, serving seed defaults",
			"collection", r.collection, "error", err)
		return r.opts.Seed(), nil
	}

	if found {
		var items []T
		if err := json.Unmarshal(payload, &items); err == nil {
			if items == nil {
				items = []T{}
			}
			return items, nil
		}
		r.logger.Warn(ctx, "corrupt cache payload, re-materializing seeds",
			"collection", r.collection)
	}

	items := r.opts.Seed()
	if err := r.writeLocal(ctx, items); err != nil {
		r.logger.Warn(ctx, "seed persist failed", "collection", r.collection, "error", err)
	}
	return items, nil
}

func (r *Repository[T]) writeLocal(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %w", common.ErrLocalStorage, r.collection, err)
	}
	return r.store.Set(ctx, r.collection, payload)
}

// persistLocal writes the working set back. Callers must hold r.mu.
func (r *Repository[T]) persistLocal(ctx context.Context) error {
	return r.writeLocal(ctx, r.items)
}

// List returns the current collection. It does not apply UI pagination;
// callers run the result through the query engine.
func (r *Repository[T]) List(ctx context.Context) ([]T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.load(ctx); err != nil {
		return nil, err
	}

	out := make([]T, len(r.items))
	copy(out, r.items)
	return out, nil
}

// Get scans the loaded working set for id.
func (r *Repository[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.load(ctx); err != nil {
		return zero, err
	}

	for _, item := range r.items {
		if item.EntityID() == id {
			return item, nil
		}
	}
	return zero, common.ErrNotFound
}

// HasID reports whether id is present in the working set, loading it
// lazily. Used by cross-entity validators (article → category).
func (r *Repository[T]) HasID(id string) bool {
	_, err := r.Get(context.Background(), id)
	return err == nil
}

// Create validates the input, attempts the remote write, and falls back to
// a local-only create on any gateway failure. The finalized entity carries
// either the remote-assigned id or a synthesized local one; once assigned
// the id never changes.
func (r *Repository[T]) Create(ctx context.Context, entity T) error {
	if msgs := r.opts.Validate(entity); len(msgs) > 0 {
		return &ValidationError{Messages: msgs}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.load(ctx); err != nil {
		return err
	}

	entity.Stamp(r.now())

	remoteOK := false
	if r.gw.Available() {
		doc, err := json.Marshal(entity)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", r.collection, err)
		}
		id, err := r.gw.Create(ctx, r.collection, doc)
		if err != nil {
			r.logger.Warn(ctx, "remote create failed, falling back to local",
				"collection", r.collection, "error", err)
		} else {
			entity.SetEntityID(id)
			remoteOK = true
		}
	}
	if !remoteOK {
		entity.SetEntityID(r.localID())
	}

	r.items = append(r.items, entity)
	if err := r.persistLocal(ctx); err != nil {
		if !remoteOK {
			// neither store holds the entity, surface the combined failure
			r.items = r.items[:len(r.items)-1]
			return err
		}
		r.logger.Warn(ctx, "cache write failed after remote create",
			"collection", r.collection, "error", err)
	}
	return nil
}

// Update applies patch to the entity with the given id. The merge is a
// shallow field merge computed once; the identical merged document is then
// written to the remote store (when reachable) and to the local cache, so
// the two paths can never diverge. id and createdAt are immutable;
// updatedAt is refreshed regardless of which path succeeded.
func (r *Repository[T]) Update(ctx context.Context, id string, patch map[string]any) (T, error) {
	var zero T

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.load(ctx); err != nil {
		return zero, err
	}

	idx := -1
	for i, item := range r.items {
		if item.EntityID() == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return zero, common.ErrNotFound
	}

	merged, err := r.merge(r.items[idx], patch)
	if err != nil {
		return zero, err
	}
	merged.Stamp(r.now())

	if msgs := r.opts.Validate(merged); len(msgs) > 0 {
		return zero, &ValidationError{Messages: msgs}
	}

	if r.gw.Available() {
		doc, marshalErr := json.Marshal(merged)
		if marshalErr != nil {
			return zero, fmt.Errorf("marshal %s: %w", r.collection, marshalErr)
		}
		if err := r.gw.Update(ctx, r.collection, id, doc); err != nil {
			r.logger.Warn(ctx, "remote update failed, keeping local copy",
				"collection", r.collection, "id", id, "error", err)
		}
	}

	r.items[idx] = merged
	if err := r.persistLocal(ctx); err != nil {
		return zero, err
	}
	return merged, nil
}

// merge produces a fresh entity with patch fields shallowly overlaid on the
// current JSON form. id and createdAt cannot be patched.
func (r *Repository[T]) merge(current T, patch map[string]any) (T, error) {
	var zero T

	raw, err := json.Marshal(current)
	if err != nil {
		return zero, fmt.Errorf("marshal %s: %w", r.collection, err)
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return zero, fmt.Errorf("unmarshal %s: %w", r.collection, err)
	}

	for k, v := range patch {
		if k == "id" || k == "createdAt" {
			continue
		}
		m[k] = v
	}

	mergedRaw, err := json.Marshal(m)
	if err != nil {
		return zero, fmt.Errorf("marshal merged %s: %w", r.collection, err)
	}

	merged := r.opts.Blank()
	if err := json.Unmarshal(mergedRaw, merged); err != nil {
		return zero, fmt.Errorf("invalid patch for %s: %w", r.collection, err)
	}
	return merged, nil
}

// Delete removes the entity locally no matter what the remote side says;
// the remote delete is best-effort (logged, never blocking). Deleting an id
// that is already gone is a success and leaves the collection untouched.
func (r *Repository[T]) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.load(ctx); err != nil {
		return err
	}

	if r.gw.Available() {
		if err := r.gw.Delete(ctx, r.collection, id); err != nil && !errors.Is(err, common.ErrNotFound) {
			r.logger.Warn(ctx, "remote delete failed, removing locally anyway",
				"collection", r.collection, "id", id, "error", err)
		}
	}

	idx := -1
	for i, item := range r.items {
		if item.EntityID() == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil
	}

	r.items = append(r.items[:idx], r.items[idx+1:]...)
	return r.persistLocal(ctx)
}
