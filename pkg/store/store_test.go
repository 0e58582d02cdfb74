package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	fterrors "github.com/Andre-Pham/FamApp-sub000/pkg/errors"
	"github.com/Andre-Pham/FamApp-sub000/pkg/graph"
	"github.com/Andre-Pham/FamApp-sub000/pkg/observability"
)

func simpsons() graph.FamilyFile {
	return graph.FamilyFile{
		Root: "homer",
		People: []graph.PersonRecord{
			{ID: "homer", Sex: "male", FirstName: "Homer", Spouse: "marge"},
			{ID: "marge", Sex: "female", FirstName: "Marge", Spouse: "homer"},
			{ID: "bart", Sex: "male", Mother: "marge", Father: "homer"},
			{ID: "abe", Sex: "male", ExSpouses: []string{"mona"}},
			{ID: "mona", Sex: "female", ExSpouses: []string{"abe"}},
		},
	}
}

// exercise runs the behaviour every backend shares.
func exercise(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := s.Get(ctx, "simpsons"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(missing) error = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, "simpsons"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(missing) error = %v, want ErrNotFound", err)
	}

	want := simpsons()
	if err := s.Put(ctx, "simpsons", want); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Put(ctx, "flanders", graph.FamilyFile{People: []graph.PersonRecord{{ID: "ned", Sex: "male"}}}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get(ctx, "simpsons")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Get mismatch (-want +got):\n%s", diff)
	}

	ids, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if diff := cmp.Diff([]string{"flanders", "simpsons"}, ids); diff != "" {
		t.Errorf("List mismatch (-want +got):\n%s", diff)
	}

	// Overwrite.
	want.Root = "bart"
	if err := s.Put(ctx, "simpsons", want); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if got, _ := s.Get(ctx, "simpsons"); got.Root != "bart" {
		t.Errorf("Root after overwrite = %q, want bart", got.Root)
	}

	if err := s.Delete(ctx, "simpsons"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, "simpsons"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Delete error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	exercise(t, s)
}

func TestMemoryStoreCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	f := simpsons()
	_ = s.Put(ctx, "simpsons", f)
	f.People[3].ExSpouses[0] = "changed"

	got, _ := s.Get(ctx, "simpsons")
	if got.People[3].ExSpouses[0] != "mona" {
		t.Error("store shares slices with the caller's value")
	}
	got.People[0].ID = "changed"
	again, _ := s.Get(ctx, "simpsons")
	if again.People[0].ID != "homer" {
		t.Error("Get returned a value sharing the stored slice")
	}
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	exercise(t, s)

	if _, err := os.Stat(filepath.Join(dir, "flanders.json")); err != nil {
		t.Errorf("expected flanders.json on disk: %v", err)
	}
}

func TestFileStoreRejectsUnsafeIDs(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for _, id := range []string{"", "../escape", "a/b", "with space"} {
		if err := s.Put(ctx, id, simpsons()); !fterrors.Is(err, fterrors.ErrCodeInvalidInput) {
			t.Errorf("Put(%q) error = %v, want INVALID_INPUT", id, err)
		}
	}
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("FAMLAYOUT_TEST_REDIS")
	if addr == "" {
		t.Skip("FAMLAYOUT_TEST_REDIS not set")
	}
	ctx := context.Background()
	s, err := NewRedisStore(ctx, RedisConfig{Addr: addr, Prefix: "famlayout:test:" + t.Name() + ":"})
	if err != nil {
		t.Fatalf("NewRedisStore: %v", err)
	}
	defer s.Close()
	defer s.Delete(ctx, "flanders")
	exercise(t, s)
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("FAMLAYOUT_TEST_MONGO")
	if uri == "" {
		t.Skip("FAMLAYOUT_TEST_MONGO not set")
	}
	ctx := context.Background()
	s, err := NewMongoStore(ctx, MongoConfig{URI: uri, Database: "famlayout_test", Collection: t.Name()})
	if err != nil {
		t.Fatalf("NewMongoStore: %v", err)
	}
	defer s.Close()
	defer s.Delete(ctx, "flanders")
	exercise(t, s)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, Config{})
	if err != nil {
		t.Fatalf("Open(default): %v", err)
	}
	if _, ok := s.(*instrumented).Store.(*MemoryStore); !ok {
		t.Errorf("default backend = %T, want *MemoryStore", s.(*instrumented).Store)
	}

	if _, err := Open(ctx, Config{Backend: "file", Dir: t.TempDir()}); err != nil {
		t.Errorf("Open(file): %v", err)
	}
	if _, err := Open(ctx, Config{Backend: "sqlite"}); err == nil {
		t.Error("Open(sqlite) should fail")
	}
}

type countingHooks struct {
	observability.NoopStoreHooks
	hits, misses, puts int
	bytes              int
}

func (h *countingHooks) OnStoreHit(context.Context, string)  { h.hits++ }
func (h *countingHooks) OnStoreMiss(context.Context, string) { h.misses++ }
func (h *countingHooks) OnStorePut(_ context.Context, _ string, size int) {
	h.puts++
	h.bytes += size
}

func TestInstrument(t *testing.T) {
	hooks := &countingHooks{}
	observability.SetStoreHooks(hooks)
	defer observability.Reset()

	ctx := context.Background()
	s := Instrument(NewMemoryStore(), BackendMemory)

	_, _ = s.Get(ctx, "simpsons")
	_ = s.Put(ctx, "simpsons", simpsons())
	_, _ = s.Get(ctx, "simpsons")
	_, _ = s.Get(ctx, "simpsons")

	if hooks.hits != 2 || hooks.misses != 1 || hooks.puts != 1 {
		t.Errorf("hits/misses/puts = %d/%d/%d, want 2/1/1", hooks.hits, hooks.misses, hooks.puts)
	}
	if hooks.bytes == 0 {
		t.Error("put size should be the encoded family size")
	}
}
