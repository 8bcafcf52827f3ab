package ui

import (
	"strings"

	"github.com/Mshel/torsnake/internal/game"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Define styles
var (
	focusedColor = lipgloss.Color("205") // Bright Pink/Purple
	blurredColor = lipgloss.Color("240")
	focusedStyle = lipgloss.NewStyle().Foreground(focusedColor)
	blurredStyle = lipgloss.NewStyle().Foreground(blurredColor)
	helpStyle    = blurredStyle

	buttonStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder())

	submitButtonStyle = buttonStyle.
				BorderForeground(focusedColor).
				Padding(0, 1)

	blurredButtonStyle = buttonStyle.
				BorderForeground(blurredColor).
				Padding(0, 1)
)

// SetupModel asks for the player name before a ranked game.
type SetupModel struct {
	nameInput  textinput.Model
	focusIndex int // 0: Name, 1: Start
	width      int
	height     int
}

func NewInitialSetupModel(defaultName string, w, h int) SetupModel {
	ti := textinput.New()
	ti.Placeholder = "Your snake name"
	ti.SetValue(defaultName)
	ti.Focus()
	ti.CharLimit = game.MaxPlayerNameLen
	ti.PromptStyle = focusedStyle
	ti.TextStyle = focusedStyle

	return SetupModel{
		nameInput: ti,
		width:     w,
		height:    h,
	}
}

// Init sends a command to start the cursor blinking
func (m SetupModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return BackToMenuMsg{} }

		case "tab", "shift+tab":
			m.focusIndex = 1 - m.focusIndex
			if m.focusIndex == 0 {
				return m, m.nameInput.Focus()
			}
			m.nameInput.Blur()
			return m, nil

		case "enter":
			if m.focusIndex == 0 {
				m.focusIndex = 1
				m.nameInput.Blur()
				return m, nil
			}
			name := strings.TrimSpace(m.nameInput.Value())
			return m, func() tea.Msg { return SetupSubmitMsg{Name: name} }
		}

		if m.focusIndex == 0 {
			var cmd tea.Cmd
			m.nameInput, cmd = m.nameInput.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m SetupModel) View() string {
	center := func(s string) string {
		return lipgloss.NewStyle().Width(m.width).Align(lipgloss.Center).Render(s)
	}

	var b strings.Builder

	b.WriteString(center(focusedStyle.Bold(true).Render("Who is playing?")))
	b.WriteString("\n\n")
	b.WriteString(center(m.nameInput.View()))
	b.WriteString("\n\n")

	submitText := "Start"
	if m.focusIndex == 1 {
		b.WriteString(center(submitButtonStyle.Render(submitText)))
	} else {
		b.WriteString(center(blurredButtonStyle.Render(submitText)))
	}
	b.WriteString("\n\n")

	b.WriteString(center(helpStyle.Render("(tab to switch, enter to confirm, esc to go back)")))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}
