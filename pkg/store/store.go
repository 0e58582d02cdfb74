// Package store persists family documents for the HTTP server.
//
// A [Store] maps family ids to [graph.FamilyFile] values. Implementations:
//   - [MemoryStore]: in-process map for tests and single-instance use
//   - [FileStore]: one JSON file per family under a directory
//   - [RedisStore]: JSON values under a key prefix in Redis
//   - [MongoStore]: one BSON document per family in a MongoDB collection
//
// Every backend returns [ErrNotFound] for unknown ids and lists ids in
// ascending order. [Instrument] wraps a store so lookups and writes are
// reported to the registered observability hooks.
//
//	s, err := store.Open(ctx, store.Config{Backend: "file", Dir: "./families"})
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//	err = s.Put(ctx, "simpsons", family)
package store

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/Andre-Pham/FamApp-sub000/pkg/graph"
	"github.com/Andre-Pham/FamApp-sub000/pkg/observability"
)

// ErrNotFound is returned when a family id is not stored.
var ErrNotFound = errors.New("family not found")

// Store holds family documents keyed by id.
type Store interface {
	Get(ctx context.Context, id string) (graph.FamilyFile, error)
	Put(ctx context.Context, id string, f graph.FamilyFile) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]string, error)
	Close() error
}

// Backend names accepted by [Open].
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Backends lists the supported backend names.
var Backends = []string{BackendMemory, BackendFile, BackendRedis, BackendMongo}

// Config selects and configures a backend.
type Config struct {
	Backend string

	// Dir is the directory of the file backend.
	Dir string

	// RedisAddr is host:port of the Redis server.
	RedisAddr string

	// MongoURI is the connection string of the MongoDB deployment.
	MongoURI string
}

// Open creates the configured backend wrapped with [Instrument].
func Open(ctx context.Context, cfg Config) (Store, error) {
	var (
		s   Store
		err error
	)
	switch cfg.Backend {
	case "", BackendMemory:
		cfg.Backend = BackendMemory
		s = NewMemoryStore()
	case BackendFile:
		s, err = NewFileStore(cfg.Dir)
	case BackendRedis:
		s, err = NewRedisStore(ctx, RedisConfig{Addr: cfg.RedisAddr})
	case BackendMongo:
		s, err = NewMongoStore(ctx, MongoConfig{URI: cfg.MongoURI})
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Backend, err)
	}
	return Instrument(s, cfg.Backend), nil
}

// clone copies a family so callers never share slices with a store.
func clone(f graph.FamilyFile) graph.FamilyFile {
	out := graph.FamilyFile{Root: f.Root, People: slices.Clone(f.People)}
	for i := range out.People {
		out.People[i].ExSpouses = slices.Clone(out.People[i].ExSpouses)
	}
	return out
}

// =============================================================================
// Instrumentation
// =============================================================================

type instrumented struct {
	Store
	backend string
}

// Instrument reports hits, misses and writes of s to [observability.Store].
func Instrument(s Store, backend string) Store {
	return &instrumented{Store: s, backend: backend}
}

func (s *instrumented) Get(ctx context.Context, id string) (graph.FamilyFile, error) {
	f, err := s.Store.Get(ctx, id)
	switch {
	case err == nil:
		observability.Store().OnStoreHit(ctx, s.backend)
	case errors.Is(err, ErrNotFound):
		observability.Store().OnStoreMiss(ctx, s.backend)
	}
	return f, err
}

func (s *instrumented) Put(ctx context.Context, id string, f graph.FamilyFile) error {
	if err := s.Store.Put(ctx, id, f); err != nil {
		return err
	}
	size := 0
	if data, err := graph.MarshalFamily(f); err == nil {
		size = len(data)
	}
	observability.Store().OnStorePut(ctx, s.backend, size)
	return nil
}
