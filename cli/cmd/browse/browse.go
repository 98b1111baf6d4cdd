// Package browse implements an interactive fuzzy finder over services
// database entries.
package browse

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/svcdb/log"
	"github.com/ardnew/svcdb/query"
	"github.com/ardnew/svcdb/services"
)

const (
	prompt        = "➜ "
	defaultWidth  = 80
	defaultHeight = 12
)

// Styles.
var (
	promptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	portStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	aliasStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	matchStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true)
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

// model is the Bubble Tea model for the browser.
type model struct {
	ctxFunc    func() context.Context
	input      textinput.Model
	entries    []services.Entry
	matches    []query.Match
	history    *History
	historyIdx int
	logger     log.Logger
	selected   int // index into matches
	offset     int // first visible match
	width      int
	height     int // rows available for matches
	chosen     *services.Entry
	quitting   bool
}

// Run starts the browser over entries. It returns the entry chosen with
// Enter, or false if the user quit without choosing.
func Run(
	ctx context.Context,
	entries []services.Entry,
	cacheDir string,
	logger log.Logger,
) (services.Entry, bool, error) {
	if len(entries) == 0 {
		return services.Entry{}, false, ErrNoEntries
	}

	var history *History
	if cacheDir != "" {
		history = NewHistory(filepath.Join(cacheDir, baseHistory))
	} else {
		history = NewHistory("")
	}

	if err := history.Load(); err != nil {
		logger.WarnContext(ctx, "could not load history", slog.Any("error", err))
	}

	p := tea.NewProgram(newModel(ctx, entries, history, logger), tea.WithContext(ctx))

	final, err := p.Run()
	if err != nil {
		return services.Entry{}, false, err
	}

	m, ok := final.(model)
	if !ok || m.chosen == nil {
		return services.Entry{}, false, nil
	}

	return *m.chosen, true, nil
}

func newModel(
	ctx context.Context,
	entries []services.Entry,
	history *History,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(prompt)
	ti.Placeholder = "type to search names and aliases"
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = defaultWidth

	m := model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		entries:    entries,
		history:    history,
		historyIdx: history.Len(),
		logger:     logger,
		width:      defaultWidth,
		height:     defaultHeight,
	}
	m.refresh()

	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(prompt) - 2
		m.height = max(msg.Height-3, 1)
		m.scroll()

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(m.ctxFunc(), "browse keypress",
		slog.String("key", msg.String()),
	)

	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.quitting = true

		return m, tea.Quit

	case tea.KeyEnter:
		if len(m.matches) == 0 {
			return m, nil
		}

		if err := m.history.Add(m.input.Value()); err != nil {
			m.logger.WarnContext(m.ctxFunc(), "could not save history",
				slog.Any("error", err))
		}

		chosen := m.matches[m.selected].Entry
		m.chosen = &chosen
		m.quitting = true

		return m, tea.Quit

	case tea.KeyUp, tea.KeyCtrlK:
		m.move(-1)

		return m, nil

	case tea.KeyDown, tea.KeyCtrlJ:
		m.move(1)

		return m, nil

	case tea.KeyPgUp:
		m.move(-m.height)

		return m, nil

	case tea.KeyPgDown:
		m.move(m.height)

		return m, nil

	case tea.KeyCtrlP:
		return m.historyStep(-1), nil

	case tea.KeyCtrlN:
		return m.historyStep(1), nil
	}

	var cmd tea.Cmd

	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	m.refresh()

	return m, cmd
}

// refresh recomputes matches for the current input and resets the selection.
func (m *model) refresh() {
	m.matches = query.Search(m.entries, strings.TrimSpace(m.input.Value()))
	m.selected = 0
	m.offset = 0
}

// move moves the selection by delta, clamped to the match list.
func (m *model) move(delta int) {
	if len(m.matches) == 0 {
		return
	}

	m.selected = min(max(m.selected+delta, 0), len(m.matches)-1)
	m.scroll()
}

// scroll keeps the selection visible.
func (m *model) scroll() {
	if m.selected < m.offset {
		m.offset = m.selected
	}

	if m.selected >= m.offset+m.height {
		m.offset = m.selected - m.height + 1
	}
}

// historyStep replaces the input with the previous (delta < 0) or next
// history entry. Stepping past the newest entry clears the input.
func (m model) historyStep(delta int) model {
	idx := m.historyIdx + delta
	if idx < 0 || idx > m.history.Len() {
		return m
	}

	m.historyIdx = idx

	pattern, err := m.history.At(idx)
	if err != nil {
		pattern = ""
	}

	m.input.SetValue(pattern)
	m.input.CursorEnd()
	m.refresh()

	return m
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	end := min(m.offset+m.height, len(m.matches))

	for i := m.offset; i < end; i++ {
		b.WriteString(renderMatch(m.matches[i], i == m.selected))
		b.WriteString("\n")
	}

	status := fmt.Sprintf("%d/%d  ↑/↓ select  enter choose  ctrl+p/n history  esc quit",
		len(m.matches), len(m.entries))
	b.WriteString(hintStyle.Render(status))
	b.WriteString("\n")

	return b.String()
}

// renderMatch renders one result line with the matched characters of the
// matching name highlighted.
func renderMatch(match query.Match, selected bool) string {
	e := match.Entry

	name := highlight(match.Name, match.MatchedIndexes)
	if match.Name != e.Name {
		name = e.Name + " (" + name + ")"
	}

	line := fmt.Sprintf("%-32s %s", name, portStyle.Render(e.Endpoint()))

	if len(e.Aliases) > 0 {
		line += "  " + aliasStyle.Render(strings.Join(e.Aliases, " "))
	}

	if selected {
		return selectedStyle.Render("> " + line)
	}

	return "  " + line
}

func highlight(s string, indexes []int) string {
	if len(indexes) == 0 {
		return s
	}

	matchSet := make(map[int]bool, len(indexes))
	for _, idx := range indexes {
		matchSet[idx] = true
	}

	var b strings.Builder

	for i, r := range s {
		if matchSet[i] {
			b.WriteString(matchStyle.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}

	return b.String()
}
