// Package ui implements hop's interactive repository picker.
package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"

	"thoreinstein.com/hop/pkg/complete"
)

var (
	// ErrCancelled is returned when the user cancels the selection
	ErrCancelled = errors.New("selection cancelled")
	// ErrNoProjects is returned when nothing was selectable
	ErrNoProjects = errors.New("no repositories found")
)

// maxVisible caps how many rows the picker renders.
const maxVisible = 12

// SuggestFunc returns suggestions for the current query.
type SuggestFunc func(query string) []complete.Suggestion

// KeyMap defines key bindings for the picker
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Copy   key.Binding
	Cancel key.Binding
}

// Keys are the picker's default key bindings.
var Keys = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+p", "ctrl+k"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+n", "ctrl+j"),
		key.WithHelp("↓", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "jump"),
	),
	Copy: key.NewBinding(
		key.WithKeys("ctrl+y"),
		key.WithHelp("ctrl+y", "copy path"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "cancel"),
	),
}

// resultsMsg carries the suggestions computed for query.
type resultsMsg struct {
	query   string
	results []complete.Suggestion
}

// Model is the bubbletea model behind Pick.
type Model struct {
	suggest   SuggestFunc
	copy      func(string) error
	input     textinput.Model
	results   []complete.Suggestion
	cursor    int
	loaded    bool
	status    string
	chosen    *complete.Suggestion
	cancelled bool
}

// NewModel creates a picker model that asks suggest for every query.
func NewModel(suggest SuggestFunc, initial string) *Model {
	input := textinput.New()
	input.Placeholder = "repository..."
	input.Prompt = "› "
	input.SetValue(initial)
	input.Focus()

	return &Model{
		suggest: suggest,
		copy:    clipboard.WriteAll,
		input:   input,
	}
}

// Init starts the first search.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.search(m.input.Value()))
}

// Update handles messages for the picker
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resultsMsg:
		// A slower search for an older query must not replace newer results.
		if msg.query != m.input.Value() {
			return m, nil
		}
		m.results = msg.results
		m.loaded = true
		if m.cursor >= len(m.results) {
			m.cursor = 0
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, Keys.Cancel):
			m.cancelled = true
			return m, tea.Quit

		case key.Matches(msg, Keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, Keys.Down):
			if m.cursor < len(m.results)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, Keys.Select):
			if selected, ok := m.selected(); ok {
				m.chosen = &selected
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, Keys.Copy):
			if selected, ok := m.selected(); ok {
				if err := m.copy(selected.Tooltip); err != nil {
					m.status = "copy failed: " + err.Error()
				} else {
					m.status = "copied " + selected.Tooltip
				}
			}
			return m, nil
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	if query := m.input.Value(); query != before {
		m.cursor = 0
		m.status = ""
		return m, tea.Batch(cmd, m.search(query))
	}

	return m, cmd
}

func (m *Model) search(query string) tea.Cmd {
	suggest := m.suggest
	return func() tea.Msg {
		return resultsMsg{query: query, results: suggest(query)}
	}
}

func (m *Model) selected() (complete.Suggestion, bool) {
	if m.cursor < 0 || m.cursor >= len(m.results) {
		return complete.Suggestion{}, false
	}
	return m.results[m.cursor], true
}

// Chosen returns the selected suggestion, or nil when the picker was
// cancelled or never selected anything.
func (m *Model) Chosen() *complete.Suggestion {
	return m.chosen
}

// View renders the picker
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("hop"))
	b.WriteString("\n\n")
	b.WriteString(inputStyle.Render(m.input.View()))
	b.WriteString("\n\n")

	switch {
	case !m.loaded:
		b.WriteString(mutedStyle.Render("Scanning..."))
	case len(m.results) == 0:
		b.WriteString(mutedStyle.Render("No matching repositories"))
	default:
		start := 0
		if m.cursor >= maxVisible {
			start = m.cursor - maxVisible + 1
		}
		end := min(start+maxVisible, len(m.results))

		for i := start; i < end; i++ {
			s := m.results[i]
			line := fmt.Sprintf("%-32s %s", s.Label, mutedStyle.Render(s.Tooltip))
			if i == m.cursor {
				line = selectedStyle.Render(fmt.Sprintf("%-32s %s", s.Label, s.Tooltip))
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		if len(m.results) > end {
			b.WriteString(mutedStyle.Render(fmt.Sprintf("... and %d more", len(m.results)-end)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("%s %s  %s %s  %s %s  %s %s",
		helpKeyStyle.Render("↑/↓"), mutedStyle.Render("navigate"),
		helpKeyStyle.Render("enter"), mutedStyle.Render("jump"),
		helpKeyStyle.Render("ctrl+y"), mutedStyle.Render("copy"),
		helpKeyStyle.Render("esc"), mutedStyle.Render("cancel"),
	))

	return appStyle.Render(b.String())
}

// Pick runs the picker on the terminal and returns the chosen suggestion.
// The UI is drawn on stderr so stdout carries only the result.
func Pick(suggest SuggestFunc, initial string) (*complete.Suggestion, error) {
	if len(suggest("")) == 0 {
		return nil, ErrNoProjects
	}

	model := NewModel(suggest, initial)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithOutput(os.Stderr))

	final, err := p.Run()
	if err != nil {
		return nil, errors.Wrap(err, "picker failed")
	}

	m, ok := final.(*Model)
	if !ok || m.cancelled || m.chosen == nil {
		return nil, ErrCancelled
	}
	return m.chosen, nil
}
