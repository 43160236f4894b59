package archive

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/geomech/pkg/errors"
)

func sampleRecord(tool string, at time.Time) Record {
	return Record{
		ID:        NewID(),
		Tool:      tool,
		Input:     json.RawMessage(`{"depth":10000}`),
		Output:    json.RawMessage(`{"value":10010}`),
		Duration:  1500 * time.Microsecond,
		CreatedAt: at,
	}
}

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	if a == b {
		t.Error("NewID should be unique")
	}
	if len(a) != 36 {
		t.Errorf("NewID length = %d, want 36", len(a))
	}
}

func TestNullStore(t *testing.T) {
	ctx := context.Background()
	s := NewNullStore()
	defer s.Close()

	if err := s.Save(ctx, sampleRecord("t", time.Now())); err != nil {
		t.Errorf("Save: %v", err)
	}
	if _, err := s.Get(ctx, "x"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Get error = %v, want NOT_FOUND", err)
	}
	if recs, err := s.List(ctx, ListOptions{}); err != nil || len(recs) != 0 {
		t.Errorf("List = %v, %v", recs, err)
	}
}

// storeContract exercises the behaviour every backend shares.
func storeContract(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	first := sampleRecord("geomech_vertical_stress", base)
	second := sampleRecord("geomech_fracture_gradient", base.Add(time.Second))
	failed := sampleRecord("geomech_vertical_stress", base.Add(2*time.Second))
	failed.Output = nil
	failed.ErrorCode = "INVALID_INPUT"
	failed.Error = "depth must be > 0, got -1"

	for _, r := range []Record{first, second, failed} {
		if err := s.Save(ctx, r); err != nil {
			t.Fatalf("Save(%s): %v", r.Tool, err)
		}
	}
	if err := s.Save(ctx, first); err == nil {
		t.Error("saving a duplicate ID should fail")
	}

	got, err := s.Get(ctx, first.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Tool != first.Tool || string(got.Input) != string(first.Input) || string(got.Output) != string(first.Output) {
		t.Errorf("Get = %+v", got)
	}
	if got.Duration != first.Duration || !got.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("Get duration/time = %v/%v", got.Duration, got.CreatedAt)
	}

	if _, err := s.Get(ctx, NewID()); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Get(missing) error = %v, want NOT_FOUND", err)
	}

	all, err := s.List(ctx, ListOptions{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 || all[0].ID != failed.ID || all[2].ID != first.ID {
		t.Errorf("List order wrong: %v", ids(all))
	}
	if !all[0].Failed() || all[0].Output != nil {
		t.Errorf("failed record = %+v", all[0])
	}

	vs, _ := s.List(ctx, ListOptions{Tool: "geomech_vertical_stress"})
	if len(vs) != 2 {
		t.Errorf("List(tool) returned %d records", len(vs))
	}
	one, _ := s.List(ctx, ListOptions{Limit: 1})
	if len(one) != 1 || one[0].ID != failed.ID {
		t.Errorf("List(limit 1) = %v", ids(one))
	}
}

func ids(recs []Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Tool + "/" + r.ID[:8]
	}
	return out
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "runs.db")
	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer s.Close()
	if s.Path() != path {
		t.Errorf("Path() = %q", s.Path())
	}
	storeContract(t, s)
}

func TestSQLiteStoreReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "runs.db")

	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatal(err)
	}
	rec := sampleRecord("geomech_thermal_stress", time.Now())
	if err := s.Save(ctx, rec); err != nil {
		t.Fatal(err)
	}
	_ = s.Close()

	s, err = NewSQLiteStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if _, err := s.Get(ctx, rec.ID); err != nil {
		t.Errorf("record lost across reopen: %v", err)
	}
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("GEOMECH_TEST_MONGO")
	if uri == "" {
		t.Skip("GEOMECH_TEST_MONGO not set")
	}
	ctx := context.Background()
	s, err := NewMongoStore(ctx, MongoOptions{
		URI:        uri,
		Database:   "geomech_test",
		Collection: "runs_" + NewID()[:8],
	})
	if err != nil {
		t.Fatalf("NewMongoStore: %v", err)
	}
	defer func() {
		_ = s.coll.Drop(ctx)
		_ = s.Close()
	}()
	storeContract(t, s)
}
