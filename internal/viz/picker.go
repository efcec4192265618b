package viz

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/bonsai/internal/bonsai"
	"github.com/san-kum/bonsai/internal/config"
	"github.com/san-kum/bonsai/internal/storage"
)

const (
	stateMenu = iota
	stateConfig
	stateGrow
)

var presetInfo = map[string]string{
	"sapling":   "thin trunk, slow growth",
	"classic":   "the familiar shape",
	"ancient":   "wide trunk, dense canopy",
	"windswept": "a fixed, leaning seed",
	"timelapse": "grows in a blink",
}

// fields are the settings editable before growing.
var fields = []string{"seed", "trunk_width", "time_scale_ms", "leaf_jitter", "theme"}

type entry struct {
	name, desc string
	cfg        *config.Config
}

type Picker struct {
	state, cursor int
	entries       []entry
	selected      entry
	fieldCursor   int
	editing       bool
	editBuf       string
	store         *storage.Store
	styles        styles
	width, height int
	live          Model
}

// NewPicker lists the presets followed by every tree saved in store.
// Garden entries start from base.
func NewPicker(store *storage.Store, base *config.Config) (*Picker, error) {
	entries := make([]entry, 0)
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		entries = append(entries, entry{name: name, desc: presetInfo[name], cfg: cfg})
	}

	if store != nil {
		recs, err := store.List()
		if err != nil {
			return nil, err
		}
		for _, r := range recs {
			cfg := *base
			cfg.Seed, cfg.TrunkWidth, cfg.LeafJitter = r.Seed, r.TrunkWidth, r.LeafJitter
			name := r.Name
			if name == "" {
				name = r.ID
			}
			entries = append(entries, entry{name: name, desc: "saved " + r.Timestamp.Format("2006-01-02"), cfg: &cfg})
		}
	}

	return &Picker{
		state:   stateMenu,
		entries: entries,
		store:   store,
		styles:  newStyles(GetTheme(base.Theme)),
		width:   80,
		height:  24,
	}, nil
}

func (m Picker) Init() tea.Cmd { return nil }

func (m Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.state == stateGrow {
			return m.forward(msg)
		}
		return m, nil
	default:
		if m.state == stateGrow {
			return m.forward(msg)
		}
	}
	return m, nil
}

func (m Picker) forward(msg tea.Msg) (Picker, tea.Cmd) {
	next, cmd := m.live.Update(msg)
	m.live = next.(Model)
	return m, cmd
}

func (m Picker) handleKey(msg tea.KeyMsg) (Picker, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateConfig:
		return m.configKey(msg)
	case stateGrow:
		if msg.String() == "esc" {
			m.state = stateConfig
			return m, nil
		}
		return m.forward(msg)
	}
	return m, nil
}

func (m Picker) menuKey(msg tea.KeyMsg) (Picker, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "enter", " ":
		if len(m.entries) == 0 {
			return m, nil
		}
		e := m.entries[m.cursor]
		cfg := *e.cfg
		m.selected = entry{name: e.name, desc: e.desc, cfg: &cfg}
		m.state, m.fieldCursor = stateConfig, 0
	}
	return m, nil
}

func (m Picker) configKey(msg tea.KeyMsg) (Picker, tea.Cmd) {
	cfg := m.selected.cfg
	field := fields[m.fieldCursor]
	if m.editing {
		switch msg.String() {
		case "enter":
			if v, err := strconv.ParseUint(m.editBuf, 10, 64); err == nil {
				setField(cfg, field, v)
			}
			m.editing, m.editBuf = false, ""
		case "esc":
			m.editing, m.editBuf = false, ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if s := msg.String(); len(s) == 1 && s[0] >= '0' && s[0] <= '9' {
				m.editBuf += s
			}
		}
		return m, nil
	}
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q", "esc":
		m.state = stateMenu
	case "up", "k":
		if m.fieldCursor > 0 {
			m.fieldCursor--
		}
	case "down", "j":
		if m.fieldCursor < len(fields)-1 {
			m.fieldCursor++
		}
	case "enter", " ":
		if field != "theme" {
			m.editing, m.editBuf = true, fieldValue(cfg, field)
		}
	case "left", "h":
		adjustField(cfg, field, -1)
	case "right", "l":
		adjustField(cfg, field, 1)
	case "s":
		return m.start()
	}
	return m, nil
}

func (m Picker) start() (Picker, tea.Cmd) {
	cfg := *m.selected.cfg
	m.live = NewModel(&cfg, m.store)
	m.state = stateGrow
	m, sized := m.forward(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	return m, tea.Batch(sized, m.live.Init())
}

func fieldValue(cfg *config.Config, field string) string {
	switch field {
	case "seed":
		return strconv.FormatUint(cfg.Seed, 10)
	case "trunk_width":
		return strconv.FormatUint(uint64(cfg.TrunkWidth), 10)
	case "time_scale_ms":
		return strconv.Itoa(cfg.TimeScaleMs)
	case "leaf_jitter":
		return strconv.Itoa(cfg.LeafJitter)
	case "theme":
		return cfg.Theme
	}
	return ""
}

// setField stores v, clamped to the field's valid range.
func setField(cfg *config.Config, field string, v uint64) {
	switch field {
	case "seed":
		cfg.Seed = v
	case "trunk_width":
		cfg.TrunkWidth = uint(min(v, bonsai.MaxTrunkWidth))
	case "time_scale_ms":
		cfg.TimeScaleMs = int(max(min(v, 2000), 1))
	case "leaf_jitter":
		cfg.LeafJitter = int(min(v, config.MaxLeafJitter))
	}
}

func adjustField(cfg *config.Config, field string, dir int) {
	switch field {
	case "seed":
		if dir > 0 || cfg.Seed > 0 {
			cfg.Seed = uint64(int64(cfg.Seed) + int64(dir))
		}
	case "trunk_width":
		if dir > 0 || cfg.TrunkWidth > 0 {
			setField(cfg, field, uint64(int(cfg.TrunkWidth)+dir))
		}
	case "time_scale_ms":
		setField(cfg, field, uint64(max(cfg.TimeScaleMs+dir*10, 1)))
	case "leaf_jitter":
		setField(cfg, field, uint64(max(cfg.LeafJitter+dir*4, 0)))
	case "theme":
		if dir > 0 {
			cfg.Theme = NextTheme(cfg.Theme).Name
			return
		}
		names := ThemeNames()
		for i, name := range names {
			if name == cfg.Theme {
				cfg.Theme = names[(i+len(names)-1)%len(names)]
				return
			}
		}
		cfg.Theme = names[0]
	}
}

func (m Picker) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateGrow:
		return m.live.View()
	}
	return ""
}

func (m Picker) viewMenu() string {
	s := m.styles
	var b strings.Builder
	b.WriteString("\n\n    " + GradientText("BONSAI", ThemeBonsai.Primary, ThemeBonsai.Accent) + "\n    " + s.subtle.Render("pick a tree to grow") + "\n    " + s.separator(25) + "\n\n")
	if len(m.entries) == 0 {
		b.WriteString("    " + s.label.Render("nothing to grow") + "\n")
	}
	for i, e := range m.entries {
		desc := e.desc
		if len(desc) > 28 {
			desc = desc[:25] + "..."
		}
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", s.key.Render("▸"), s.value.Render(fmt.Sprintf("%-16s", e.name)), s.done.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", s.label.Render(fmt.Sprintf("  %-16s", e.name)), s.subtle.Render(desc)))
		}
	}
	b.WriteString("\n    " + s.keyHints([2]string{"j/k", "navigate"}, [2]string{"enter", "select"}, [2]string{"q", "quit"}) + "\n")
	return b.String()
}

func (m Picker) viewConfig() string {
	s := m.styles
	cfg := m.selected.cfg
	var b strings.Builder
	b.WriteString("\n\n    " + s.title.Render(strings.ToUpper(m.selected.name)) + "\n    " + s.subtle.Render(m.selected.desc) + "\n    " + s.separator(25) + "\n\n")
	for i, name := range fields {
		val := fmt.Sprintf("%12s", fieldValue(cfg, name))
		if m.editing && i == m.fieldCursor {
			val = fmt.Sprintf("%12s", m.editBuf+"_")
		}
		if i == m.fieldCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", s.key.Render("▸"), s.value.Render(fmt.Sprintf("%-14s", name)), s.done.Render(val)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n", s.label.Render(fmt.Sprintf("  %-14s", name)), s.subtle.Render(val)))
		}
	}
	b.WriteString("\n    " + s.keyHints([2]string{"j/k", "select"}, [2]string{"h/l", "adjust"}, [2]string{"enter", "edit"}, [2]string{"s", "grow"}, [2]string{"esc", "back"}) + "\n")
	return b.String()
}

// RunPicker starts the full-screen preset and garden browser.
func RunPicker(store *storage.Store, base *config.Config) error {
	p, err := NewPicker(store, base)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(p, tea.WithAltScreen()).Run()
	return err
}
