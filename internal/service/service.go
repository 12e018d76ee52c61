// Package service is the progression engine: it owns the lecture
// record lifecycle, the answer-queue merge algorithm, subscription
// bookkeeping and garbage collection of orphaned local records.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"quizsync/internal/config"
	"quizsync/internal/domain"
)

type currentLectureKey struct{}

// WithCurrentLecture returns a context carrying uri as the current
// lecture. Operations called with an empty URI resolve against it.
func WithCurrentLecture(ctx context.Context, uri string) context.Context {
	return context.WithValue(ctx, currentLectureKey{}, uri)
}

// CurrentLecture returns the current lecture URI carried by ctx.
func CurrentLecture(ctx context.Context) (string, bool) {
	uri, ok := ctx.Value(currentLectureKey{}).(string)
	return uri, ok && uri != ""
}

// Service is the sync engine. All lecture mutations flow through
// withLecture, which serialises read-modify-write per lecture URI.
type Service struct {
	kv        KeyValueStore
	cache     ContentCache
	remote    RemoteService
	oracle    AllocationOracle
	publisher Publisher
	logger    *slog.Logger
	cfg       config.SyncConfig

	locks sync.Map // lecture URI -> *sync.Mutex

	// now returns the current UTC time in epoch seconds.
	now func() int64

	fetchMu     sync.Mutex
	lastFetched fetchedMaterial
}

// fetchedMaterial is the in-memory single-flight cache of the most
// recently fetched material payload and question. Keeping the question
// ensures marking compares against the exact payload that was served.
type fetchedMaterial struct {
	materialURI string
	material    *domain.Material
	questionID  string
	question    *domain.Question
}

func New(
	kv KeyValueStore,
	cache ContentCache,
	remote RemoteService,
	oracle AllocationOracle,
	publisher Publisher,
	logger *slog.Logger,
	cfg config.SyncConfig,
) *Service {
	return &Service{
		kv:        kv,
		cache:     cache,
		remote:    remote,
		oracle:    oracle,
		publisher: publisher,
		logger:    logger.With("component", "service"),
		cfg:       cfg,
		now:       func() int64 { return time.Now().Unix() },
	}
}

// resolveURI picks the lecture to operate on: an explicit URI wins,
// otherwise the context's current lecture.
func (s *Service) resolveURI(ctx context.Context, uri string) (string, error) {
	if uri != "" {
		return uri, nil
	}
	if cur, ok := CurrentLecture(ctx); ok {
		return cur, nil
	}
	return "", domain.ErrNoLectureSelected
}

// clientID returns the device's client identity, creating it lazily.
func (s *Service) clientID(ctx context.Context) (string, error) {
	raw, ok, err := s.kv.Get(ctx, domain.ClientIDKey)
	if err != nil {
		return "", fmt.Errorf("get client id: %w", err)
	}
	if ok {
		var id string
		if err := json.Unmarshal(raw, &id); err == nil && id != "" {
			return id, nil
		}
	}

	id := uuid.NewString()
	value, err := json.Marshal(id)
	if err != nil {
		return "", err
	}
	if err := s.kv.Set(ctx, domain.ClientIDKey, value); err != nil {
		return "", fmt.Errorf("store client id: %w", err)
	}
	return id, nil
}

// lockURI serialises access to one lecture record. Mutations against
// different URIs proceed concurrently.
func (s *Service) lockURI(uri string) func() {
	v, _ := s.locks.LoadOrStore(uri, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// publishAnswer emits an answer_submitted event, best effort.
func (s *Service) publishAnswer(ctx context.Context, lecURI string, a *domain.Answer) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishAnswer(ctx, lecURI, a); err != nil {
		s.logger.Warn("publish answer event failed", "lecture", lecURI, "error", err)
	}
}

// publishSynced emits a lecture_synced event, best effort.
func (s *Service) publishSynced(ctx context.Context, lecURI string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishSynced(ctx, lecURI); err != nil {
		s.logger.Warn("publish sync event failed", "lecture", lecURI, "error", err)
	}
}
