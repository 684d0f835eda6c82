// Package ui provides optional terminal interfaces.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/daylog/internal/todo"
)

// DefaultRefreshInterval is how often the browser reloads the log file.
const DefaultRefreshInterval = 2 * time.Second

// Lines taken by the header and footer around the viewport.
const (
	headerHeight = 3
	footerHeight = 2
)

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

// tuiConfig holds TUI configuration.
type tuiConfig struct {
	refreshInterval time.Duration
}

// WithRefreshInterval sets how often the log file is reloaded.
// Zero disables periodic reloads.
func WithRefreshInterval(d time.Duration) TUIOption {
	return func(c *tuiConfig) {
		c.refreshInterval = d
	}
}

// RunTUI starts a read-only browser over the days in todoPath.
func RunTUI(ctx context.Context, todoPath string, clock todo.Clock, opts ...TUIOption) error {
	c := &tuiConfig{
		refreshInterval: DefaultRefreshInterval,
	}
	for _, opt := range opts {
		opt(c)
	}

	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := newTUIModel(todoPath, clock, c.refreshInterval)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170"))

	dateStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Strikethrough(true)

	fileStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
)

type tuiModel struct {
	todoPath        string
	clock           todo.Clock
	days            []todo.Day // latest first
	index           int
	loadErr         error
	vp              viewport.Model
	ready           bool
	showHelp        bool
	refreshInterval time.Duration
}

type tickMsg time.Time

func newTUIModel(todoPath string, clock todo.Clock, refreshInterval time.Duration) *tuiModel {
	if clock == nil {
		clock = todo.Today
	}
	return &tuiModel{
		todoPath:        todoPath,
		clock:           clock,
		refreshInterval: refreshInterval,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	m.refresh()
	if m.refreshInterval <= 0 {
		return nil
	}
	return tickCmd(m.refreshInterval)
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		height := max(1, msg.Height-headerHeight-footerHeight)
		if !m.ready {
			m.vp = viewport.New(msg.Width, height)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = height
		}
		m.render()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r", "f5":
			m.refresh()
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			m.render()
			return m, nil
		case "left", "h":
			m.move(1)
			return m, nil
		case "right", "l":
			m.move(-1)
			return m, nil
		}
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.refreshInterval)
	}

	if !m.ready {
		return m, nil
	}
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m *tuiModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("daylog"))
	b.WriteString(" ")
	b.WriteString(fileStyle.Render(m.todoPath))
	b.WriteString("\n")
	b.WriteString(m.positionLine())
	b.WriteString("\n\n")

	if m.ready {
		b.WriteString(m.vp.View())
	} else {
		b.WriteString(m.body())
	}

	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("h/l move between days | ↑/↓ scroll | r reload | ? help | q quit"))
	return b.String()
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refresh reloads the log, keeping the selected date when it still exists.
func (m *tuiModel) refresh() {
	var selected todo.Day
	hadSelection := m.loadErr == nil && m.index < len(m.days)
	if hadSelection {
		selected = m.days[m.index]
	}

	t, err := todo.Open(m.todoPath, m.clock())
	if err != nil {
		m.loadErr = err
		m.days = nil
		m.index = 0
		m.render()
		return
	}
	m.loadErr = nil
	m.days = t.Days()
	m.index = 0
	if hadSelection {
		for i, day := range m.days {
			if day.Date == selected.Date {
				m.index = i
				break
			}
		}
	}
	m.render()
}

// move shifts the selection; positive steps go back in time.
func (m *tuiModel) move(step int) {
	next := m.index + step
	if next < 0 || next >= len(m.days) {
		return
	}
	m.index = next
	m.render()
	if m.ready {
		m.vp.GotoTop()
	}
}

func (m *tuiModel) render() {
	if !m.ready {
		return
	}
	m.vp.SetContent(m.body())
}

func (m *tuiModel) positionLine() string {
	if m.loadErr != nil || len(m.days) == 0 {
		return helpStyle.Render("no days")
	}
	day := m.days[m.index]
	return fmt.Sprintf("%s %s", dateStyle.Render(day.Date.String()),
		helpStyle.Render(fmt.Sprintf("(%d/%d)", m.index+1, len(m.days))))
}

func (m *tuiModel) body() string {
	if m.showHelp {
		return helpText()
	}
	if m.loadErr != nil {
		return errStyle.Render("Error loading todo file:") + "\n  " + m.loadErr.Error()
	}
	if len(m.days) == 0 {
		return "No days yet. Add a task with: daylog add <text>"
	}
	return renderDay(m.days[m.index])
}

func renderDay(day todo.Day) string {
	if len(day.Sections) == 0 {
		return helpStyle.Render("(no sections)")
	}
	var blocks []string
	for _, section := range day.Sections {
		var b strings.Builder
		if section.Name != "" {
			b.WriteString(sectionStyle.Render(section.Name))
			b.WriteString("\n")
		}
		if len(section.Tasks) == 0 {
			b.WriteString(helpStyle.Render("  (empty)"))
		}
		for i, task := range section.Tasks {
			if i > 0 {
				b.WriteString("\n")
			}
			line := "  " + task.String()
			if section.Name == todo.DoneSection {
				line = doneStyle.Render(line)
			}
			b.WriteString(line)
		}
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n\n")
}

func helpText() string {
	var b strings.Builder
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, ctrl+c      Quit\n")
	b.WriteString("  r, F5          Reload the file\n")
	b.WriteString("  h, left        Previous (older) day\n")
	b.WriteString("  l, right       Next (newer) day\n")
	b.WriteString("  up, down       Scroll\n")
	b.WriteString("  pgup, pgdown   Scroll a page\n")
	b.WriteString("  ?              Toggle this help screen\n")
	return b.String()
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
