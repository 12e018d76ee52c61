package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"encoding/json"
	"time"

	"quizsync/internal/domain"
)

// KeyValueStore is the durable per-device store holding one JSON
// record per lecture plus the subscriptions tree and client identity.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (json.RawMessage, bool, error)
	Set(ctx context.Context, key string, value json.RawMessage) error
	Remove(ctx context.Context, key string) error
	ListKeys(ctx context.Context) ([]string, error)
}

// ContentCache stores fetched question-bank payloads for offline
// replay, tolerating quota failures.
type ContentCache interface {
	FetchCached(ctx context.Context, url string, timeout time.Duration) (json.RawMessage, error)
	ListCachedURLs(ctx context.Context) (map[string]struct{}, error)
	EvictExcept(ctx context.Context, expected map[string]struct{}, invert bool) error
	InjectCache(ctx context.Context, url string, data json.RawMessage) error
}

// RemoteService is the authoritative lecture service.
type RemoteService interface {
	SyncLecture(ctx context.Context, lec *domain.Lecture) (*domain.Lecture, error)
	SubscriptionAdd(ctx context.Context, path string) error
	SubscriptionRemove(ctx context.Context, path string) error
	SubscriptionList(ctx context.Context) (*domain.Subscription, error)
	RequestReview(ctx context.Context, lecURI string) (*domain.Answer, error)
	GetJSON(ctx context.Context, url string) (json.RawMessage, error)
	GetHTML(ctx context.Context, url string) (string, error)
}

// AllocationOracle chooses questions, marks answers and grades the
// answer queue. Opaque to the engine.
type AllocationOracle interface {
	NewAllocation(lec *domain.Lecture, practice bool) (*domain.Answer, error)
	MarkAnswer(a *domain.Answer, correct json.RawMessage) bool
	GradeAllocation(settings domain.Settings, queue []domain.Answer, lec *domain.Lecture)
	QuestionStudyTime(settings domain.Settings, queue []domain.Answer) int64
}

// Publisher emits progression lifecycle events for downstream
// consumers. Optional: a nil publisher disables events.
type Publisher interface {
	PublishAnswer(ctx context.Context, lecURI string, a *domain.Answer) error
	PublishSynced(ctx context.Context, lecURI string) error
	Close() error
}
