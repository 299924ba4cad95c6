package feerate

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

const defaultModelWidth = 80

var (
	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
	focusedColumnStyle = columnStyle.
				BorderForeground(lipgloss.Color("205"))
	tipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Model drives an Input from a terminal. Tab and shift+tab move between
// visible sub-fields, left and right cycle the kind, digits edit the
// focused number, enter submits and esc cancels.
type Model struct {
	input     *Input
	focus     int
	buffer    string
	width     int
	submitted bool
	cancelled bool
	err       error
}

// NewModel wraps input.
func NewModel(input *Input) Model {
	if input == nil {
		input = New()
	}
	return Model{input: input, width: defaultModelWidth}
}

// Input returns the wrapped input.
func (m Model) Input() *Input {
	return m.input
}

// Submitted reports whether the user confirmed the value.
func (m Model) Submitted() bool {
	return m.submitted
}

// Cancelled reports whether the user aborted.
func (m Model) Cancelled() bool {
	return m.cancelled
}

// Err returns the error of the last edit, if any.
func (m Model) Err() error {
	return m.err
}

// Focused returns the sub-field under the cursor.
func (m Model) Focused() SubField {
	fields := m.input.Layout().Fields
	if m.focus >= len(fields) {
		return fields[len(fields)-1]
	}
	return fields[m.focus]
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.cancelled = true
		return m, tea.Quit
	case "enter":
		m.submitted = true
		return m, tea.Quit
	case "tab":
		return m.moveFocus(1), nil
	case "shift+tab":
		return m.moveFocus(-1), nil
	case "left":
		if m.Focused() == FieldKind {
			m.cycleKind(-1)
		}
		return m, nil
	case "right":
		if m.Focused() == FieldKind {
			m.cycleKind(1)
		}
		return m, nil
	case "backspace":
		if m.Focused() != FieldKind && m.buffer != "" {
			m.buffer = m.buffer[:len(m.buffer)-1]
			m.applyBuffer()
		}
		return m, nil
	}

	if msg.Type == tea.KeyRunes && m.Focused() != FieldKind {
		for _, r := range msg.Runes {
			if (r >= '0' && r <= '9') || (r == '.' && !strings.Contains(m.buffer, ".")) {
				m.buffer += string(r)
			}
		}
		m.applyBuffer()
	}
	return m, nil
}

func (m *Model) applyBuffer() {
	field := m.Focused()
	text := strings.TrimSuffix(m.buffer, ".")
	m.err = m.input.Edit(field, text)
	if m.err != nil {
		return
	}
	// The input clamps and rounds, so the buffer follows the stored value
	// whenever they diverge.
	stored := m.input.value(field)
	typed, err := decimal.NewFromString(text)
	if err != nil || !stored.Valid || !stored.Decimal.Equal(typed) {
		m.resetBuffer()
	}
}

func (m Model) moveFocus(delta int) Model {
	count := len(m.input.Layout().Fields)
	m.focus = ((m.focus+delta)%count + count) % count
	m.resetBuffer()
	return m
}

func (m *Model) cycleKind(delta int) {
	kinds := Kinds()
	current := 0
	for i, kind := range kinds {
		if kind == m.input.Value().Kind {
			current = i
		}
	}
	next := ((current+delta)%len(kinds) + len(kinds)) % len(kinds)
	m.input.SetKind(kinds[next])
	if count := len(m.input.Layout().Fields); m.focus >= count {
		m.focus = count - 1
	}
}

func (m *Model) resetBuffer() {
	m.buffer = ""
	field := m.Focused()
	if field == FieldKind {
		return
	}
	if value := m.input.value(field); value.Valid {
		m.buffer = value.Decimal.String()
	}
}

func (m Model) View() string {
	views := m.input.Views()
	layout := m.input.Layout()
	colWidth := m.width/layout.Divisor - 2
	if colWidth < 8 {
		colWidth = 8
	}

	columns := make([]string, len(views))
	for i, view := range views {
		text := view.Text
		if view.Field == FieldKind {
			text = "‹ " + text + " ›"
		} else if i == m.focus {
			text = m.buffer
		}
		if text == "" {
			text = tipStyle.Render(view.Placeholder)
		}
		body := text
		if view.Tip != "" {
			body += "\n" + tipStyle.Render(view.Tip)
		}
		style := columnStyle
		if i == m.focus {
			style = focusedColumnStyle
		}
		columns[i] = style.Width(colWidth).Render(body)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}
