package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/san-kum/bonsai/internal/bonsai"
)

var ErrNotFound = errors.New("tree not found in garden")

// Store is the garden: one directory per saved tree under baseDir.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Record holds what is needed to regrow a tree, never the tree itself.
type Record struct {
	ID         string             `json:"id"`
	Name       string             `json:"name,omitempty"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       uint64             `json:"seed"`
	TrunkWidth uint               `json:"trunk_width"`
	Width      int                `json:"width"`
	Height     int                `json:"height"`
	LeafJitter int                `json:"leaf_jitter"`
	Metrics    map[string]float64 `json:"metrics,omitempty"`
}

// NewRecord describes tree. TrunkWidth stays zero when the width was
// drawn from the seed.
func NewRecord(tree *bonsai.Tree, ms map[string]float64) Record {
	opts := tree.Options()
	return Record{
		Seed:       opts.Seed,
		TrunkWidth: opts.TrunkWidth,
		Width:      opts.Screen.Width,
		Height:     opts.Screen.Height,
		LeafJitter: opts.LeafJitter,
		Metrics:    ms,
	}
}

// Options plants the recorded tree again.
func (r Record) Options() bonsai.Options {
	return bonsai.Options{
		Seed:       r.Seed,
		TrunkWidth: r.TrunkWidth,
		Screen:     bonsai.Screen{Width: r.Width, Height: r.Height},
		LeafJitter: r.LeafJitter,
	}
}

func (s *Store) Save(rec Record) (string, error) {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	if rec.ID == "" {
		rec.ID = fmt.Sprintf("%d_%d", rec.Seed, rec.Timestamp.Unix())
	}
	dir := filepath.Join(s.baseDir, rec.ID)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(dir, "tree.json"))
	if err != nil {
		return "", err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return "", err
	}

	return rec.ID, nil
}

// List returns saved trees, oldest first.
func (s *Store) List() ([]Record, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Record{}, nil
		}
		return nil, err
	}

	recs := make([]Record, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		rec, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		recs = append(recs, *rec)
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Timestamp.Before(recs[j].Timestamp)
	})
	return recs, nil
}

func (s *Store) Load(id string) (*Record, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, "tree.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
		}
		return nil, err
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%s: %w", id, err)
	}

	return &rec, nil
}

func (s *Store) Delete(id string) error {
	dir := filepath.Join(s.baseDir, id)
	if _, err := os.Stat(filepath.Join(dir, "tree.json")); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s: %w", id, ErrNotFound)
		}
		return err
	}
	return os.RemoveAll(dir)
}
