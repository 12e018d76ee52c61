package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/suite"

	"quizsync/internal/storage/sqlite"
)

type stubFetcher struct {
	calls int
	data  json.RawMessage
	err   error
}

func (f *stubFetcher) GetJSON(ctx context.Context, url string) (json.RawMessage, error) {
	f.calls++
	return f.data, f.err
}

type CacheTestSuite struct {
	suite.Suite
	db      *sqlx.DB
	fetcher *stubFetcher
	cache   *Cache
}

func (s *CacheTestSuite) SetupTest() {
	db, err := sqlite.Open(":memory:")
	s.Require().NoError(err)
	s.db = db

	s.fetcher = &stubFetcher{data: json.RawMessage(`{"data": {}}`)}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	s.cache = New(db, s.fetcher, logger)
}

func (s *CacheTestSuite) TearDownTest() {
	s.db.Close()
}

func TestCacheTestSuite(t *testing.T) {
	suite.Run(t, new(CacheTestSuite))
}

func (s *CacheTestSuite) TestFetchCached_FetchesOnce() {
	ctx := context.Background()

	first, err := s.cache.FetchCached(ctx, "/mat", time.Minute)
	s.Require().NoError(err)
	s.JSONEq(`{"data": {}}`, string(first))

	second, err := s.cache.FetchCached(ctx, "/mat", time.Minute)
	s.Require().NoError(err)
	s.JSONEq(`{"data": {}}`, string(second))

	s.Equal(1, s.fetcher.calls)
}

func (s *CacheTestSuite) TestFetchCached_FetchError() {
	s.fetcher.data = nil
	s.fetcher.err = errors.New("offline")

	_, err := s.cache.FetchCached(context.Background(), "/mat", time.Minute)

	s.Error(err)

	urls, listErr := s.cache.ListCachedURLs(context.Background())
	s.NoError(listErr)
	s.Empty(urls)
}

func (s *CacheTestSuite) TestInjectCache_BypassesNetwork() {
	ctx := context.Background()

	s.Require().NoError(s.cache.InjectCache(ctx, "/mat", json.RawMessage(`{"seeded": true}`)))

	data, err := s.cache.FetchCached(ctx, "/mat", time.Minute)
	s.Require().NoError(err)
	s.JSONEq(`{"seeded": true}`, string(data))
	s.Equal(0, s.fetcher.calls)
}

func (s *CacheTestSuite) TestListCachedURLs() {
	ctx := context.Background()

	s.Require().NoError(s.cache.InjectCache(ctx, "/mat0", json.RawMessage(`{}`)))
	s.Require().NoError(s.cache.InjectCache(ctx, "/mat1", json.RawMessage(`{}`)))

	urls, err := s.cache.ListCachedURLs(ctx)
	s.NoError(err)
	s.Equal(map[string]struct{}{"/mat0": {}, "/mat1": {}}, urls)
}

func (s *CacheTestSuite) TestEvictExcept() {
	ctx := context.Background()

	s.Require().NoError(s.cache.InjectCache(ctx, "/mat0", json.RawMessage(`{}`)))
	s.Require().NoError(s.cache.InjectCache(ctx, "/mat1", json.RawMessage(`{}`)))
	s.Require().NoError(s.cache.InjectCache(ctx, "/mat2", json.RawMessage(`{}`)))

	err := s.cache.EvictExcept(ctx, map[string]struct{}{"/mat1": {}}, false)
	s.Require().NoError(err)

	urls, err := s.cache.ListCachedURLs(ctx)
	s.NoError(err)
	s.Equal(map[string]struct{}{"/mat1": {}}, urls)
}

func (s *CacheTestSuite) TestEvictExcept_Inverted() {
	ctx := context.Background()

	s.Require().NoError(s.cache.InjectCache(ctx, "/mat0", json.RawMessage(`{}`)))
	s.Require().NoError(s.cache.InjectCache(ctx, "/mat1", json.RawMessage(`{}`)))

	err := s.cache.EvictExcept(ctx, map[string]struct{}{"/mat1": {}}, true)
	s.Require().NoError(err)

	urls, err := s.cache.ListCachedURLs(ctx)
	s.NoError(err)
	s.Equal(map[string]struct{}{"/mat0": {}}, urls)
}

func (s *CacheTestSuite) TestEvictExcept_NothingToEvict() {
	err := s.cache.EvictExcept(context.Background(), map[string]struct{}{}, false)
	s.NoError(err)
}
