package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/roomgraph/pkg/catalog"
	rgerrors "github.com/matzehuels/roomgraph/pkg/errors"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// TypeListModel - Interactive node type selection
// =============================================================================

// TypeListModel is the bubbletea model for picking a node type from the
// displayable part of a catalog.
type TypeListModel struct {
	Types    []*catalog.NodeType
	Current  *catalog.NodeType // type of the node being edited, if any
	Cursor   int
	Selected *catalog.NodeType
	Height   int
	Offset   int
}

// NewTypeListModel creates a type list with the cursor on current when it
// is among the choices.
func NewTypeListModel(types []*catalog.NodeType, current *catalog.NodeType) TypeListModel {
	m := TypeListModel{Types: types, Current: current, Height: 12}
	for i, t := range types {
		if t == current {
			m.Cursor = i
		}
	}
	if m.Cursor >= m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
	return m
}

func (m TypeListModel) Init() tea.Cmd {
	return nil
}

func (m TypeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Types)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Types) > 0 {
				m.Selected = m.Types[m.Cursor]
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 3 {
			m.Height = 3
		}
	}
	return m, nil
}

func (m TypeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Node Type"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Types))
	for i := m.Offset; i < end; i++ {
		t := m.Types[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		marker := " "
		if t == m.Current {
			marker = StyleSuccess.Render("*")
		}
		line := fmt.Sprintf("%s%s %-20s  %s", cursor, marker, t.Name(), listDimStyle.Render(t.Kind().String()))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Types))))
	return b.String()
}

// pickType runs the type picker. It returns an INVALID_INPUT error when the
// user quits without choosing.
func pickType(cat *catalog.Catalog, current *catalog.NodeType) (*catalog.NodeType, error) {
	types := cat.Displayable()
	if len(types) == 0 {
		return nil, rgerrors.New(rgerrors.ErrCodeInvalidCatalog, "catalog has no displayable node types")
	}
	final, err := tea.NewProgram(NewTypeListModel(types, current)).Run()
	if err != nil {
		return nil, err
	}
	m, ok := final.(TypeListModel)
	if !ok || m.Selected == nil {
		return nil, rgerrors.New(rgerrors.ErrCodeInvalidInput, "no node type selected")
	}
	return m.Selected, nil
}
