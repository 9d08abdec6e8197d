package ui

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/gitmsg/gitmsg/internal/ports"
)

const maxVisible = 10

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#D73BC9"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#D73BC9")).Bold(true)
	matchStyle    = lipgloss.NewStyle().Underline(true)
	dimStyle      = lipgloss.NewStyle().Faint(true)
)

// Picker is the built-in chooser, used when fzf is not installed. It renders
// on stderr so stdout stays clean for data.
type Picker struct{}

// NewPicker creates the fallback chooser.
func NewPicker() *Picker {
	return &Picker{}
}

// Pick presents the entries in a filterable list and returns the selection.
func (p *Picker) Pick(ctx context.Context, entries []string, opts ports.PickOptions) (ports.PickResult, error) {
	m := newPickerModel(entries, opts)
	prog := tea.NewProgram(m, tea.WithContext(ctx), tea.WithOutput(os.Stderr))

	out, err := prog.Run()
	if err != nil {
		return ports.PickResult{}, fmt.Errorf("picker: %w", err)
	}

	final, ok := out.(*pickerModel)
	if !ok || final.cancelled {
		return ports.PickResult{Cancelled: true}, nil
	}
	return ports.PickResult{Line: final.choice}, nil
}

type pickerModel struct {
	entries  []string
	filtered []fuzzy.Match // current matches, indices into entries
	cursor   int           // position in filtered list
	input    textinput.Model
	vim      bool
	num      bool

	choice    string
	cancelled bool
}

func newPickerModel(entries []string, opts ports.PickOptions) *pickerModel {
	in := textinput.New()
	in.Prompt = "> "
	in.Placeholder = "type to filter"
	in.CharLimit = 120
	in.Focus()

	m := &pickerModel{
		entries: entries,
		input:   in,
		vim:     opts.Vim,
		num:     opts.Numeric,
	}
	m.applyFilter()
	return m
}

func (m *pickerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	key := keyMsg.String()
	switch key {
	case "ctrl+c", "esc":
		m.cancelled = true
		return m, tea.Quit

	case "enter":
		if len(m.filtered) == 0 {
			m.cancelled = true
			return m, tea.Quit
		}
		m.choice = m.entries[m.filtered[m.cursor].Index]
		return m, tea.Quit

	case "up", "ctrl+p":
		m.moveCursor(-1)
		return m, nil

	case "down", "ctrl+n":
		m.moveCursor(1)
		return m, nil
	}

	// Vim navigation and digit accept claim their keys before the filter
	// sees them, like fzf's --bind does.
	if m.vim && (key == "j" || key == "k") {
		if key == "j" {
			m.moveCursor(1)
		} else {
			m.moveCursor(-1)
		}
		return m, nil
	}

	if m.num && len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		idx := int(key[0] - '1')
		if idx < len(m.entries) {
			m.choice = m.entries[idx]
			return m, tea.Quit
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m *pickerModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Select a commit message (ESC to cancel)"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	start := 0
	if m.cursor >= maxVisible {
		start = m.cursor - maxVisible + 1
	}
	end := min(start+maxVisible, len(m.filtered))

	if start > 0 {
		b.WriteString(dimStyle.Render("  ↑ more above") + "\n")
	}

	for i := start; i < end; i++ {
		match := m.filtered[i]
		line := m.entries[match.Index]

		prefix := "  "
		if i == m.cursor {
			prefix = selectedStyle.Render("> ")
			line = highlightMatches(line, match.MatchedIndexes, selectedStyle)
		} else {
			line = highlightMatches(line, match.MatchedIndexes, lipgloss.NewStyle())
		}
		b.WriteString(prefix + line + "\n")
	}

	if end < len(m.filtered) {
		b.WriteString(dimStyle.Render("  ↓ more below") + "\n")
	}
	if len(m.filtered) == 0 {
		b.WriteString(dimStyle.Render("  no matching messages") + "\n")
	}

	return b.String()
}

func (m *pickerModel) moveCursor(delta int) {
	next := m.cursor + delta
	if next >= 0 && next < len(m.filtered) {
		m.cursor = next
	}
}

func (m *pickerModel) applyFilter() {
	query := strings.TrimSpace(m.input.Value())

	if query == "" {
		m.filtered = make([]fuzzy.Match, len(m.entries))
		for i, e := range m.entries {
			m.filtered[i] = fuzzy.Match{Str: e, Index: i}
		}
	} else {
		m.filtered = fuzzy.Find(query, m.entries)
	}

	if m.cursor >= len(m.filtered) {
		m.cursor = max(0, len(m.filtered)-1)
	}
}

// highlightMatches underlines the filter-matched runes.
func highlightMatches(line string, matched []int, base lipgloss.Style) string {
	if len(matched) == 0 {
		return base.Render(line)
	}

	set := make(map[int]bool, len(matched))
	for _, idx := range matched {
		set[idx] = true
	}

	var b strings.Builder
	for i, r := range []rune(line) {
		if set[i] {
			b.WriteString(matchStyle.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}
	return b.String()
}
