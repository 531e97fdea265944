// Package settings manages the single site-settings document. Unlike the
// entity repositories there is no list: the collection holds exactly one
// JSON object, updated by shallow merge on both the remote and local paths.
package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/aghannam/manassa/internal/cache"
	"github.com/aghannam/manassa/internal/common"
	"github.com/aghannam/manassa/internal/gateway"
	"github.com/aghannam/manassa/internal/logging"
)

const (
	collection = "settings"
	documentID = "site"
)

// Defaults is the settings document materialized when none was ever saved.
func Defaults() map[string]any {
	return map[string]any{
		"id":              documentID,
		"siteName":        "ألفا نو",
		"siteDescription": "منصة المحتوى العربي لرواد الأعمال",
		"language":        "ar",
		"direction":       "rtl",
		"articlesPerPage": float64(9),
		"social": map[string]any{
			"twitter":  "",
			"linkedin": "",
			"youtube":  "",
		},
	}
}

// Store reads and merges the settings document.
type Store struct {
	gw     gateway.Gateway
	cache  *cache.Store
	logger logging.Logger

	mu     sync.Mutex
	doc    map[string]any
	loaded bool
}

func NewStore(gw gateway.Gateway, cacheStore *cache.Store, logger logging.Logger) *Store {
	return &Store{gw: gw, cache: cacheStore, logger: logger}
}

func (s *Store) load(ctx context.Context) error {
	if s.loaded {
		return nil
	}

	if s.gw.Available() {
		raw, err := s.gw.GetDoc(ctx, collection, documentID)
		if err == nil {
			var doc map[string]any
			if err := json.Unmarshal(raw, &doc); err == nil {
				s.doc = doc
				s.loaded = true
				if err := s.persistLocal(ctx); err != nil {
					s.logger.Warn(ctx, "settings cache refresh failed", "error", err)
				}
				return nil
			}
		} else {
			s.logger.Warn(ctx, "remote settings fetch failed, using local copy", "error", err)
		}
	}

	payload, found, err := s.cache.Get(ctx, collection)
	if err != nil {
		s.logger.Error(ctx, "settings cache read failed, serving defaults", "error", err)
		s.doc = Defaults()
		s.loaded = true
		return nil
	}
	if found {
		var doc map[string]any
		if err := json.Unmarshal(payload, &doc); err == nil {
			s.doc = doc
			s.loaded = true
			return nil
		}
		s.logger.Warn(ctx, "corrupt settings payload, re-materializing defaults")
	}

	s.doc = Defaults()
	s.loaded = true
	if err := s.persistLocal(ctx); err != nil {
		s.logger.Warn(ctx, "settings defaults persist failed", "error", err)
	}
	return nil
}

func (s *Store) persistLocal(ctx context.Context) error {
	payload, err := json.Marshal(s.doc)
	if err != nil {
		return fmt.Errorf("%w: marshal settings: %w", common.ErrLocalStorage, err)
	}
	return s.cache.Set(ctx, collection, payload)
}

// Get returns a copy of the current settings document.
func (s *Store) Get(ctx context.Context) (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return nil, err
	}

	out := make(map[string]any, len(s.doc))
	for k, v := range s.doc {
		out[k] = v
	}
	return out, nil
}

// Update shallow-merges patch into the document. The merged document is
// computed once and the identical copy goes to both the remote store (when
// reachable) and the cache, so the paths cannot diverge. The id key is
// immutable.
func (s *Store) Update(ctx context.Context, patch map[string]any) (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return nil, err
	}

	merged := make(map[string]any, len(s.doc)+len(patch))
	for k, v := range s.doc {
		merged[k] = v
	}
	for k, v := range patch {
		if k == "id" {
			continue
		}
		merged[k] = v
	}

	if s.gw.Available() {
		raw, err := json.Marshal(merged)
		if err != nil {
			return nil, fmt.Errorf("marshal settings: %w", err)
		}
		if err := s.gw.Update(ctx, collection, documentID, raw); err != nil {
			s.logger.Warn(ctx, "remote settings update failed, keeping local copy", "error", err)
		}
	}

	s.doc = merged
	if err := s.persistLocal(ctx); err != nil {
		return nil, err
	}

	out := make(map[string]any, len(merged))
	for k, v := range merged {
		out[k] = v
	}
	return out, nil
}
