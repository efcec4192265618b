package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/bonsai/internal/bonsai"
)

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	rec := Record{
		Name:       "juniper",
		Seed:       42,
		TrunkWidth: 7,
		Width:      80,
		Height:     30,
		LeafJitter: 24,
		Metrics:    map[string]float64{"leaves": 120},
	}

	id, err := st.Save(rec)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if id == "" {
		t.Error("expected non-empty id")
	}

	got, err := st.Load(id)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if got.ID != id {
		t.Errorf("expected id %q, got %q", id, got.ID)
	}
	if got.Name != "juniper" {
		t.Errorf("expected name 'juniper', got '%s'", got.Name)
	}
	if got.Seed != 42 {
		t.Errorf("expected seed 42, got %d", got.Seed)
	}
	if got.Metrics["leaves"] != 120 {
		t.Errorf("expected 120 leaves, got %f", got.Metrics["leaves"])
	}
	if got.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}

	if _, err := os.Stat(filepath.Join(tmpDir, id, "tree.json")); err != nil {
		t.Errorf("expected record file: %v", err)
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, seed := range []uint64{3, 1, 2} {
		rec := Record{Seed: seed, Width: 40, Height: 20, Timestamp: base.Add(time.Duration(seed) * time.Hour)}
		if _, err := st.Save(rec); err != nil {
			t.Fatalf("save %d failed: %v", i, err)
		}
	}

	recs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recs))
	}
	for i, r := range recs {
		if r.Seed != uint64(i+1) {
			t.Errorf("record %d: expected seed %d, got %d", i, i+1, r.Seed)
		}
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "nope"))
	recs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("expected empty garden, got %d", len(recs))
	}
}

func TestStoreListSkipsJunk(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	if _, err := st.Save(Record{Seed: 9}); err != nil {
		t.Fatal(err)
	}
	os.MkdirAll(filepath.Join(dir, "broken"), 0755)
	os.WriteFile(filepath.Join(dir, "broken", "tree.json"), []byte("{"), 0644)
	os.WriteFile(filepath.Join(dir, "stray.txt"), []byte("x"), 0644)

	recs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(recs) != 1 {
		t.Errorf("expected 1 record, got %d", len(recs))
	}
}

func TestStoreNotFound(t *testing.T) {
	st := New(t.TempDir())

	if _, err := st.Load("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound from Load, got %v", err)
	}
	if err := st.Delete("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound from Delete, got %v", err)
	}
}

func TestStoreDelete(t *testing.T) {
	st := New(t.TempDir())
	id, err := st.Save(Record{Seed: 5})
	if err != nil {
		t.Fatal(err)
	}
	if err := st.Delete(id); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := st.Load(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected deleted record to be gone, got %v", err)
	}
}

func TestRecordReplant(t *testing.T) {
	opts := bonsai.Options{Seed: 77, Screen: bonsai.Screen{Width: 60, Height: 25}, LeafJitter: 10}
	tree, err := bonsai.Plant(opts)
	if err != nil {
		t.Fatal(err)
	}
	for tree.Step(nil) {
	}

	rec := NewRecord(tree, nil)
	if rec.Seed != 77 || rec.TrunkWidth != 0 || rec.LeafJitter != 10 {
		t.Fatalf("unexpected record %+v", rec)
	}

	again, err := bonsai.Plant(rec.Options())
	if err != nil {
		t.Fatal(err)
	}
	for again.Step(nil) {
	}

	if again.Appearance() != tree.Appearance() {
		t.Errorf("replant appearance differs: %+v vs %+v", again.Appearance(), tree.Appearance())
	}
	if len(again.Leaves()) != len(tree.Leaves()) || again.Frames() != tree.Frames() {
		t.Errorf("replant diverged: %d/%d leaves, %d/%d frames",
			len(again.Leaves()), len(tree.Leaves()), again.Frames(), tree.Frames())
	}
}
