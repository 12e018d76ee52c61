package service

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"quizsync/internal/domain"
)

// ProgressFunc receives coarse progress updates during a sync. May be
// nil when the caller doesn't care.
type ProgressFunc func(total, done int, message string)

func (p ProgressFunc) report(total, done int, message string) {
	if p != nil {
		p(total, done, message)
	}
}

// LectureSyncOptions tunes one lecture sync.
type LectureSyncOptions struct {
	// SyncForce syncs even when every queue entry already round-tripped.
	SyncForce bool

	// IfMissingFetch treats an absent local record as an empty one, so
	// the sync becomes the initial download of the lecture.
	IfMissingFetch bool

	// SkipQuestions leaves the question-bank payload unfetched.
	SkipQuestions bool

	// SkipCleanup skips the storage walk afterwards.
	SkipCleanup bool
}

// SyncLecture pushes the lecture's answer queue to the server and
// reconciles the response into local storage. Returns false when the
// lecture was already in sync and nothing was sent.
func (s *Service) SyncLecture(ctx context.Context, uri string, opts LectureSyncOptions, progress ProgressFunc) (bool, error) {
	resolved, err := s.resolveURI(ctx, uri)
	if err != nil {
		return false, err
	}

	unlock := s.lockURI(resolved)
	lec, err := s.getLecture(ctx, resolved, opts.IfMissingFetch)
	unlock()
	if err != nil {
		return false, err
	}

	if !opts.SyncForce && lec.Questions != nil && lec.Synced() {
		return false, nil
	}

	// Snapshot what we send: entries appended mid-flight must survive
	// the merge untouched.
	snapshot, err := lec.Clone()
	if err != nil {
		return false, err
	}
	snapshot.CurrentTime = s.now()

	progress.report(3, 0, "Fetching lecture "+resolved)
	remoteLec, err := s.remote.SyncLecture(ctx, snapshot)
	if err != nil {
		return false, err
	}
	progress.report(3, 1, "Reconciling answers")

	// A different account on the server must never overwrite this
	// device's records, so check before any local write. A response
	// with no user at all counts as a mismatch too.
	if lec.User != "" && lec.User != remoteLec.User {
		return false, &domain.IdentityMismatchError{LocalUser: lec.User, RemoteUser: remoteLec.User}
	}

	// Everything the server returned has been processed by it.
	for i := range remoteLec.AnswerQueue {
		remoteLec.AnswerQueue[i].Synced = true
	}

	err = s.withLecture(ctx, resolved, opts.IfMissingFetch, func(cur *domain.Lecture) error {
		merged := MergeQueues(snapshot.AnswerQueue, cur.AnswerQueue, remoteLec.AnswerQueue)

		cur.Title = remoteLec.Title
		cur.User = remoteLec.User
		cur.Path = remoteLec.Path
		cur.MaterialURI = remoteLec.MaterialURI
		cur.SlideURI = remoteLec.SlideURI
		cur.Settings = remoteLec.Settings
		cur.MaterialTags = remoteLec.MaterialTags
		if remoteLec.Questions != nil {
			cur.Questions = remoteLec.Questions
		}
		cur.AnswerQueue = merged

		if cur.MaterialURI == "" && cur.Path != "" {
			cur.MaterialURI = "/api/stage/material?path=" + url.QueryEscape(cur.Path)
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	progress.report(3, 2, "Fetching questions")
	if !opts.SkipQuestions {
		if err := s.prefetchQuestions(ctx, resolved); err != nil {
			return false, err
		}
	}

	if !opts.SkipCleanup {
		if _, err := s.RemoveUnusedObjects(ctx); err != nil {
			s.logger.Warn("cleanup after sync failed", "lecture", resolved, "error", err)
		}
	}

	progress.report(3, 3, "Done")
	s.publishSynced(ctx, resolved)
	return true, nil
}

// prefetchQuestions pulls the material payload into the content cache
// and seeds the lecture's question aggregates from its stats.
func (s *Service) prefetchQuestions(ctx context.Context, uri string) error {
	return s.withLecture(ctx, uri, false, func(lec *domain.Lecture) error {
		material, err := s.fetchMaterial(ctx, lec)
		if err != nil {
			return err
		}
		if lec.Questions == nil && material.Stats != nil {
			lec.Questions = material.Stats
		}
		return nil
	})
}

// SubscriptionSyncOptions tunes a full subscriptions sync.
type SubscriptionSyncOptions struct {
	SyncForce   bool
	SkipCleanup bool

	// LectureAdd / LectureDel subscribe to or unsubscribe from a
	// tutorial path before refreshing the list.
	LectureAdd string
	LectureDel string
}

// SyncSubscriptions refreshes the subscriptions tree from the server
// and syncs every subscribed lecture, a bounded number in flight at a
// time. Individual lecture failures are counted, not fatal.
func (s *Service) SyncSubscriptions(ctx context.Context, opts SubscriptionSyncOptions, progress ProgressFunc) (*domain.SyncStats, error) {
	start := time.Now()

	if opts.LectureAdd != "" {
		if err := s.remote.SubscriptionAdd(ctx, opts.LectureAdd); err != nil {
			return nil, fmt.Errorf("subscribe to %s: %w", opts.LectureAdd, err)
		}
	}
	if opts.LectureDel != "" {
		if err := s.remote.SubscriptionRemove(ctx, opts.LectureDel); err != nil {
			return nil, fmt.Errorf("unsubscribe from %s: %w", opts.LectureDel, err)
		}
	}

	subs, err := s.remote.SubscriptionList(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch subscriptions: %w", err)
	}
	if err := s.setSubscriptions(ctx, subs); err != nil {
		return nil, err
	}

	if opts.LectureDel != "" {
		// Drop the removed lecture's records before syncing the rest.
		if _, err := s.RemoveUnusedObjects(ctx); err != nil {
			s.logger.Warn("cleanup after unsubscribe failed", "error", err)
		}
	}

	uris := subs.LectureURIs()
	stats := &domain.SyncStats{Lectures: len(uris)}

	var mu sync.Mutex
	done := 0
	total := len(uris) + 1
	progress.report(total, done, "Syncing lectures")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.BatchSize)
	for _, uri := range uris {
		g.Go(func() error {
			synced, err := s.SyncLecture(gctx, uri, LectureSyncOptions{
				SyncForce:      opts.SyncForce,
				IfMissingFetch: true,
				SkipCleanup:    true,
			}, nil)

			mu.Lock()
			defer mu.Unlock()
			done++
			switch {
			case err != nil:
				stats.Errors++
				s.logger.Warn("lecture sync failed", "lecture", uri, "error", err)
				progress.report(total, done, "Failed "+uri)
			case synced:
				stats.Synced++
				progress.report(total, done, "Synced "+uri)
			default:
				stats.Skipped++
				progress.report(total, done, "Up to date "+uri)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return stats, err
	}

	if !opts.SkipCleanup {
		removed, err := s.RemoveUnusedObjects(ctx)
		if err != nil {
			s.logger.Warn("final cleanup failed", "error", err)
		}
		stats.Removed = len(removed)
	}

	progress.report(total, total, "Done")
	stats.Duration = time.Since(start)
	s.logger.Info("subscriptions sync finished",
		"lectures", stats.Lectures,
		"synced", stats.Synced,
		"skipped", stats.Skipped,
		"errors", stats.Errors,
		"removed", stats.Removed,
		"duration", stats.Duration,
	)
	return stats, nil
}
