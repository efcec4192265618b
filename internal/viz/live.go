package viz

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/bonsai/internal/bonsai"
	"github.com/san-kum/bonsai/internal/config"
	"github.com/san-kum/bonsai/internal/metrics"
	"github.com/san-kum/bonsai/internal/storage"
)

const (
	footerHeight = 2
	minInterval  = 5 * time.Millisecond
	maxInterval  = 2 * time.Second
)

type TickMsg time.Time

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model grows one tree in the terminal, a frame per tick. The tree is
// planted on the first window size message.
type Model struct {
	cfg           *config.Config
	store         *storage.Store
	tree          *bonsai.Tree
	canvas        *Canvas
	history       *bonsai.Recorder
	theme         Theme
	styles        styles
	interval      time.Duration
	width, height int
	running       bool
	showHelp      bool
	status        string
	err           error
}

// NewModel builds a viewer. store may be nil, which disables saving.
func NewModel(cfg *config.Config, store *storage.Store) Model {
	theme := GetTheme(cfg.Theme)
	return Model{
		cfg:      cfg,
		store:    store,
		theme:    theme,
		styles:   newStyles(theme),
		interval: cfg.TimeScale(),
		running:  true,
	}
}

func (m Model) Init() tea.Cmd {
	return tick(m.interval)
}

// Tree is nil until the viewer has a screen size.
func (m Model) Tree() *bonsai.Tree { return m.tree }

// Update handles input events and grows the tree.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			if m.tree != nil {
				m.plant(m.tree.Seed())
			}
		case "n":
			m.plant(0)
		case "enter":
			m.finish()
		case "s":
			m.save()
		case "t":
			m.theme = NextTheme(m.theme.Name)
			m.styles = newStyles(m.theme)
			m.status = "theme " + m.theme.Name
		case "+", "=":
			m.interval = max(m.interval/2, minInterval)
			m.status = fmt.Sprintf("%v per frame", m.interval)
		case "-", "_":
			m.interval = min(m.interval*2, maxInterval)
			m.status = fmt.Sprintf("%v per frame", m.interval)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tick(m.interval)
	}
	return m, nil
}

// resize keeps the tree it already has and redraws it onto a canvas of
// the new size.
func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	m.canvas = NewCanvas(w, h-footerHeight)
	if m.history != nil {
		m.history.Replay(m.canvas)
	}
	if m.tree == nil {
		m.plant(m.cfg.Seed)
	}
}

// plant starts a new tree. A zero seed draws a random one.
func (m *Model) plant(seed uint64) {
	if m.canvas == nil {
		return
	}
	opts := m.cfg.Options(m.canvas.Width, m.canvas.Height)
	opts.Seed = seed
	tree, err := bonsai.Plant(opts)
	if err != nil {
		m.tree, m.history, m.err = nil, nil, err
		log.Printf("plant failed: %v", err)
		return
	}

	m.tree, m.err = tree, nil
	m.history = &bonsai.Recorder{}
	m.canvas.Clear()
	m.running = true
	m.status = ""
	look := tree.Appearance()
	log.Printf("planted seed=%d trunk=%d leaves=%s screen=%dx%d",
		tree.Seed(), look.TrunkWidth, look.LeafColor, opts.Screen.Width, opts.Screen.Height)
}

// step grows the tree one frame.
func (m *Model) step() {
	if m.tree == nil || m.tree.Done() {
		return
	}
	if m.tree.Frames() >= m.cfg.MaxFrames {
		m.running = false
		m.status = "frame limit reached"
		log.Printf("seed=%d stopped at frame limit %d", m.tree.Seed(), m.cfg.MaxFrames)
		return
	}
	m.tree.Step(bonsai.Sinks{m.canvas, m.history})
	if m.tree.Done() {
		log.Printf("finished seed=%d frames=%d branches=%d leaves=%d",
			m.tree.Seed(), m.tree.Frames(), len(m.tree.Branches())-1, len(m.tree.Leaves()))
	}
}

// finish grows the rest of the tree at once.
func (m *Model) finish() {
	if m.tree == nil {
		return
	}
	for !m.tree.Done() {
		limited := m.tree.Frames() >= m.cfg.MaxFrames
		m.step()
		if limited {
			return
		}
	}
}

func (m *Model) save() {
	if m.tree == nil {
		return
	}
	if m.store == nil {
		m.status = "no garden configured"
		return
	}
	rec := storage.NewRecord(m.tree, metrics.Collect(m.tree, metrics.Default()))
	id, err := m.store.Save(rec)
	if err != nil {
		m.status = "save failed"
		log.Printf("garden save: %v", err)
		return
	}
	m.status = "saved " + id
	log.Printf("garden save: %s", id)
}

// View renders the tree above a two-line footer.
func (m Model) View() string {
	if m.canvas == nil {
		return ""
	}
	body := m.canvas.Render()
	switch {
	case m.err != nil:
		body = lipgloss.Place(m.canvas.Width, m.canvas.Height, lipgloss.Center, lipgloss.Center, m.errorView())
	case m.showHelp:
		body = lipgloss.Place(m.canvas.Width, m.canvas.Height, lipgloss.Center, lipgloss.Center, m.helpView())
	}
	return body + "\n" + m.footer()
}

func (m Model) errorView() string {
	msg := m.err.Error()
	if errors.Is(m.err, bonsai.ErrScreenTooSmall) {
		msg = "terminal too small to grow a tree"
	}
	return m.styles.err.Render(msg) + "\n" + m.styles.hint.Render("resize or press q")
}

func (m Model) helpView() string {
	keys := [][2]string{
		{"space", "pause or resume"},
		{"enter", "finish growing"},
		{"r", "regrow this seed"},
		{"n", "new random tree"},
		{"s", "save to garden"},
		{"t", "cycle theme"},
		{"+ / -", "faster / slower"},
		{"?", "toggle help"},
		{"q", "quit"},
	}
	var b strings.Builder
	b.WriteString(m.styles.title.Render("KEYS") + "\n\n")
	for _, k := range keys {
		b.WriteString(fmt.Sprintf("%s %s\n", m.styles.key.Render(fmt.Sprintf("%-7s", k[0])), m.styles.label.Render(k[1])))
	}
	return m.styles.box.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) footer() string {
	line := lipgloss.NewStyle().MaxWidth(m.width)

	var s strings.Builder
	s.WriteString(GradientText("bonsai", m.theme.Primary, m.theme.Accent) + " ")
	if m.tree != nil {
		s.WriteString(m.stat("seed", fmt.Sprint(m.tree.Seed())))
		s.WriteString(m.stat("phase", m.tree.Phase()))
		s.WriteString(m.stat("branches", fmt.Sprint(len(m.tree.Branches())-1)))
		s.WriteString(m.stat("leaves", fmt.Sprint(len(m.tree.Leaves()))))
		s.WriteString(m.stat("frame", fmt.Sprint(m.tree.Frames())))
	}
	s.WriteString(m.state())
	if m.status != "" {
		s.WriteString("  " + m.styles.label.Render(m.status))
	}

	hints := m.styles.keyHints(
		[2]string{"space", "pause"},
		[2]string{"enter", "finish"},
		[2]string{"n", "new"},
		[2]string{"s", "save"},
		[2]string{"?", "help"},
		[2]string{"q", "quit"},
	)
	return line.Render(s.String()) + "\n" + line.Render(hints)
}

func (m Model) stat(label, value string) string {
	return " " + m.styles.label.Render(label) + " " + m.styles.value.Render(value)
}

func (m Model) state() string {
	switch {
	case m.tree != nil && m.tree.Done():
		return "  " + m.styles.done.Render("DONE")
	case !m.running:
		return "  " + m.styles.paused.Render("PAUSED")
	default:
		return "  " + m.styles.running.Render("GROWING")
	}
}

// Run starts the full-screen viewer.
func Run(cfg *config.Config, store *storage.Store) error {
	_, err := tea.NewProgram(NewModel(cfg, store), tea.WithAltScreen()).Run()
	return err
}
