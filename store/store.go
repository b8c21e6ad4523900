// Package store is the record store behind every collection: typed tables over a
// swappable Backend (memory, local SQLite, MongoDB, Postgres, DynamoDB).
//
// Reads re-derive from the whole stored collection and writes overwrite it. A failed
// read yields the collection's default data and a failed write is logged and dropped,
// so callers never see persistence errors.
package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	models "github.com/phillip/venturelink/models"
)

type Collection string

const (
	Ideas       Collection = "ideas"
	Likes       Collection = "likes"
	Investments Collection = "investments"
	Chats       Collection = "chats"
	Users       Collection = "users"
)

var AllCollections = []Collection{Ideas, Likes, Investments, Chats, Users}

// Backend persists whole collections.
type Backend interface {
	Name() string
	// Load decodes every record of coll into out, a pointer to a slice.
	// found is false when the collection has never been written.
	Load(ctx context.Context, coll Collection, out any) (found bool, err error)
	// Save replaces the collection with records, in order.
	Save(ctx context.Context, coll Collection, records []any) error
	Clear(ctx context.Context, coll Collection) error
	Close(ctx context.Context) error
}

// Table is a typed view of one collection.
type Table[T any] struct {
	backend Backend
	coll    Collection
	log     *zap.Logger
	seed    func() []T
}

func newTable[T any](b Backend, coll Collection, log *zap.Logger, seed func() []T) *Table[T] {
	return &Table[T]{backend: b, coll: coll, log: log, seed: seed}
}

// All returns every record. A never-written collection reads as its seed, if set;
// the seed is only persisted by a write (or Store.Seed), never by a read.
func (t *Table[T]) All(ctx context.Context) []T {
	var records []T
	found, err := t.backend.Load(ctx, t.coll, &records)
	if err != nil {
		t.log.Warn("collection read failed, using defaults",
			zap.String("collection", string(t.coll)),
			zap.String("backend", t.backend.Name()),
			zap.Error(err))
		return t.defaults()
	}
	if !found {
		return t.defaults()
	}
	if records == nil {
		records = []T{}
	}
	return records
}

// seedIfMissing persists the seed when the collection has never been written.
// Caller holds the store lock.
func (t *Table[T]) seedIfMissing(ctx context.Context) error {
	if t.seed == nil {
		return nil
	}
	var records []T
	found, err := t.backend.Load(ctx, t.coll, &records)
	if err != nil || found {
		return err
	}
	seed := t.seed()
	docs := make([]any, len(seed))
	for i := range seed {
		docs[i] = seed[i]
	}
	return t.backend.Save(ctx, t.coll, docs)
}

func (t *Table[T]) defaults() []T {
	if t.seed != nil {
		return t.seed()
	}
	return []T{}
}

// Save overwrites the collection. Failures are logged, never returned.
func (t *Table[T]) Save(ctx context.Context, records []T) {
	docs := make([]any, len(records))
	for i := range records {
		docs[i] = records[i]
	}
	if err := t.backend.Save(ctx, t.coll, docs); err != nil {
		t.log.Error("collection write dropped",
			zap.String("collection", string(t.coll)),
			zap.String("backend", t.backend.Name()),
			zap.Int("records", len(records)),
			zap.Error(err))
	}
}

// Find returns the first record matching match.
func (t *Table[T]) Find(ctx context.Context, match func(T) bool) (T, bool) {
	for _, r := range t.All(ctx) {
		if match(r) {
			return r, true
		}
	}
	var zero T
	return zero, false
}

// Filter returns every record matching match, in stored order.
func (t *Table[T]) Filter(ctx context.Context, match func(T) bool) []T {
	out := []T{}
	for _, r := range t.All(ctx) {
		if match(r) {
			out = append(out, r)
		}
	}
	return out
}

// Store bundles the five collections over one backend.
//
// The embedded mutex serialises read-modify-write sequences inside this process.
// It does not coordinate separate processes sharing a backend.
type Store struct {
	sync.Mutex

	backend Backend
	log     *zap.Logger

	Ideas       *Table[models.Idea]
	Likes       *Table[models.Like]
	Investments *Table[models.Investment]
	Chats       *Table[models.Chat]
	Users       *Table[models.User]
}

type Option func(*storeOptions)

type storeOptions struct {
	seedIdeas func() []models.Idea
}

// WithDemoIdeas makes a never-written ideas collection read as the demo catalogue.
func WithDemoIdeas() Option {
	return func(o *storeOptions) { o.seedIdeas = DemoIdeas }
}

func New(b Backend, log *zap.Logger, opts ...Option) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	var o storeOptions
	for _, opt := range opts {
		opt(&o)
	}
	log = log.With(zap.String("backend", b.Name()))
	return &Store{
		backend:     b,
		log:         log,
		Ideas:       newTable(b, Ideas, log, o.seedIdeas),
		Likes:       newTable[models.Like](b, Likes, log, nil),
		Investments: newTable[models.Investment](b, Investments, log, nil),
		Chats:       newTable[models.Chat](b, Chats, log, nil),
		Users:       newTable[models.User](b, Users, log, nil),
	}
}

// Mode names the active backend.
func (s *Store) Mode() string { return s.backend.Name() }

// Seed persists the demo ideas if the ideas collection has never been written.
func (s *Store) Seed(ctx context.Context) error {
	s.Lock()
	defer s.Unlock()
	return s.Ideas.seedIfMissing(ctx)
}

// Reset removes every collection.
func (s *Store) Reset(ctx context.Context) error {
	s.Lock()
	defer s.Unlock()
	for _, coll := range AllCollections {
		if err := s.backend.Clear(ctx, coll); err != nil {
			return err
		}
	}
	s.log.Info("store reset")
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.backend.Close(ctx)
}
