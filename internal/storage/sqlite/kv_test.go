package sqlite

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/suite"
)

type KVStoreTestSuite struct {
	suite.Suite
	db    *sqlx.DB
	store *KVStore
}

func (s *KVStoreTestSuite) SetupTest() {
	db, err := Open(":memory:")
	s.Require().NoError(err)
	s.db = db
	s.store = NewKVStore(db)
}

func (s *KVStoreTestSuite) TearDownTest() {
	s.db.Close()
}

func TestKVStoreTestSuite(t *testing.T) {
	suite.Run(t, new(KVStoreTestSuite))
}

func (s *KVStoreTestSuite) TestSetAndGet() {
	ctx := context.Background()

	err := s.store.Set(ctx, "/api/stage?path=lec0", json.RawMessage(`{"title": "Lecture 0"}`))
	s.Require().NoError(err)

	value, ok, err := s.store.Get(ctx, "/api/stage?path=lec0")
	s.NoError(err)
	s.True(ok)
	s.JSONEq(`{"title": "Lecture 0"}`, string(value))
}

func (s *KVStoreTestSuite) TestGetMissing() {
	value, ok, err := s.store.Get(context.Background(), "nope")

	s.NoError(err)
	s.False(ok)
	s.Nil(value)
}

func (s *KVStoreTestSuite) TestSetOverwrites() {
	ctx := context.Background()

	s.Require().NoError(s.store.Set(ctx, "k", json.RawMessage(`1`)))
	s.Require().NoError(s.store.Set(ctx, "k", json.RawMessage(`2`)))

	value, ok, err := s.store.Get(ctx, "k")
	s.NoError(err)
	s.True(ok)
	s.Equal("2", string(value))
}

func (s *KVStoreTestSuite) TestRemove() {
	ctx := context.Background()

	s.Require().NoError(s.store.Set(ctx, "k", json.RawMessage(`1`)))
	s.Require().NoError(s.store.Remove(ctx, "k"))

	_, ok, err := s.store.Get(ctx, "k")
	s.NoError(err)
	s.False(ok)

	// Removing an absent key is not an error.
	s.NoError(s.store.Remove(ctx, "k"))
}

func (s *KVStoreTestSuite) TestListKeys() {
	ctx := context.Background()

	keys, err := s.store.ListKeys(ctx)
	s.NoError(err)
	s.Empty(keys)

	s.Require().NoError(s.store.Set(ctx, "b", json.RawMessage(`1`)))
	s.Require().NoError(s.store.Set(ctx, "a", json.RawMessage(`2`)))
	s.Require().NoError(s.store.Set(ctx, "_subscriptions", json.RawMessage(`{}`)))

	keys, err = s.store.ListKeys(ctx)
	s.NoError(err)
	s.Equal([]string{"_subscriptions", "a", "b"}, keys)
}
