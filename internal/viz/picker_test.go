package viz

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/bonsai/internal/config"
	"github.com/san-kum/bonsai/internal/storage"
)

func pick(t *testing.T, m Picker, keys ...string) Picker {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(Picker)
	}
	return m
}

func TestPickerEntries(t *testing.T) {
	store := storage.New(t.TempDir())
	if _, err := store.Save(storage.Record{Name: "juniper", Seed: 9, TrunkWidth: 4}); err != nil {
		t.Fatal(err)
	}

	p, err := NewPicker(store, config.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	presets := config.ListPresets()
	if len(p.entries) != len(presets)+1 {
		t.Fatalf("expected %d entries, got %d", len(presets)+1, len(p.entries))
	}
	last := p.entries[len(p.entries)-1]
	if last.name != "juniper" || last.cfg.Seed != 9 || last.cfg.TrunkWidth != 4 {
		t.Errorf("unexpected garden entry %+v", last)
	}
}

func TestPickerFlow(t *testing.T) {
	p, err := NewPicker(nil, config.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	m := *p

	m = pick(t, m, "j", "enter")
	if m.state != stateConfig {
		t.Fatalf("expected config state, got %d", m.state)
	}
	if m.selected.name != config.ListPresets()[1] {
		t.Errorf("expected %q, got %q", config.ListPresets()[1], m.selected.name)
	}

	m = pick(t, m, "enter", "1", "2", "3", "enter")
	if m.selected.cfg.Seed != 123 {
		t.Errorf("expected seed 123, got %d", m.selected.cfg.Seed)
	}
	m = pick(t, m, "l")
	if m.selected.cfg.Seed != 124 {
		t.Errorf("expected seed 124, got %d", m.selected.cfg.Seed)
	}

	m = pick(t, m, "j", "l")
	if m.selected.cfg.TrunkWidth != config.GetPreset(m.selected.name).TrunkWidth+1 {
		t.Errorf("unexpected trunk width %d", m.selected.cfg.TrunkWidth)
	}

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	m = next.(Picker)
	m = pick(t, m, "s")
	if m.state != stateGrow {
		t.Fatalf("expected grow state, got %d", m.state)
	}
	if tree := m.live.Tree(); tree == nil || tree.Seed() != 124 {
		t.Fatal("expected a planted tree with the edited seed")
	}

	m = pick(t, m, "esc")
	if m.state != stateConfig {
		t.Errorf("expected esc to return to config, got %d", m.state)
	}
}

func TestAdjustFieldBounds(t *testing.T) {
	cfg := config.DefaultConfig()

	adjustField(cfg, "seed", -1)
	if cfg.Seed != 0 {
		t.Errorf("seed went below zero: %d", cfg.Seed)
	}
	adjustField(cfg, "trunk_width", -1)
	if cfg.TrunkWidth != 0 {
		t.Errorf("trunk width went below zero: %d", cfg.TrunkWidth)
	}
	setField(cfg, "trunk_width", 1000)
	if cfg.TrunkWidth != 40 {
		t.Errorf("expected trunk width clamped to 40, got %d", cfg.TrunkWidth)
	}
	setField(cfg, "leaf_jitter", 1000)
	if cfg.LeafJitter != config.MaxLeafJitter {
		t.Errorf("expected jitter clamped, got %d", cfg.LeafJitter)
	}
	adjustField(cfg, "theme", -1)
	if cfg.Theme != ThemeNames()[len(ThemeNames())-1] {
		t.Errorf("expected theme to wrap backwards, got %q", cfg.Theme)
	}
}
