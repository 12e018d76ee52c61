package service

import (
	"context"
	"encoding/json"

	"quizsync/internal/domain"
)

// RemoveUnusedObjects walks local storage and removes every record not
// reachable from the subscriptions tree, then evicts cached content no
// reachable lecture points at. Returns the removed storage keys.
func (s *Service) RemoveUnusedObjects(ctx context.Context) ([]string, error) {
	subs, err := s.getSubscriptions(ctx, true)
	if err != nil {
		return nil, err
	}

	reachable := map[string]struct{}{
		domain.SubscriptionsKey: {},
		domain.ClientIDKey:      {},
	}
	materials := map[string]struct{}{}

	for _, uri := range subs.LectureURIs() {
		reachable[uri] = struct{}{}

		raw, ok, err := s.kv.Get(ctx, uri)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		var lec domain.Lecture
		if err := json.Unmarshal(raw, &lec); err != nil {
			// Unreadable record, let the next sync rewrite it.
			s.logger.Warn("skipping undecodable lecture during cleanup", "key", uri, "error", err)
			continue
		}
		if lec.MaterialURI != "" {
			materials[lec.MaterialURI] = struct{}{}
		}
	}

	keys, err := s.kv.ListKeys(ctx)
	if err != nil {
		return nil, err
	}

	var removed []string
	for _, key := range keys {
		if _, ok := reachable[key]; ok {
			continue
		}
		if err := s.kv.Remove(ctx, key); err != nil {
			return removed, err
		}
		removed = append(removed, key)
	}

	if err := s.cache.EvictExcept(ctx, materials, false); err != nil {
		return removed, err
	}

	if len(removed) > 0 {
		s.logger.Info("removed unused records", "count", len(removed))
	}
	return removed, nil
}
