package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type MenuChoice int

const (
	ChoiceSinglePlayer MenuChoice = iota
	ChoiceTwoPlayer
	ChoiceVersusBot
	ChoiceManual
	ChoiceHallOfFame
	ChoiceLicense
	ChoiceQuit
)

var menuLabels = []string{
	ChoiceSinglePlayer: "1 Player",
	ChoiceTwoPlayer:    "2 Players",
	ChoiceVersusBot:    "Versus Bot",
	ChoiceManual:       "Manual",
	ChoiceHallOfFame:   "Hall of Fame",
	ChoiceLicense:      "License",
	ChoiceQuit:         "Quit",
}

// MenuModel holds the state for the main menu.
type MenuModel struct {
	selected MenuChoice
	status   string // last error shown under the menu
	width    int
	height   int
}

func NewMenuModel(w, h int) MenuModel {
	return MenuModel{selected: ChoiceSinglePlayer, width: w, height: h}
}

func (m MenuModel) Init() tea.Cmd { return nil }

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k", "w":
			m.selected = (m.selected - 1 + MenuChoice(len(menuLabels))) % MenuChoice(len(menuLabels))
		case "down", "j", "s", "tab":
			m.selected = (m.selected + 1) % MenuChoice(len(menuLabels))
		case "q":
			return m, tea.Quit
		case "enter":
			choice := m.selected
			return m, func() tea.Msg { return MenuSelectMsg{Choice: choice} }
		}
	}
	return m, nil
}

var torsnakeAscii = `
 ▀█▀ █▀█ █▀█ █▀ █▄ █ ▄▀█ █▄▀ █▀▀
  █  █▄█ █▀▄ ▄█ █ ▀█ █▀█ █ █ ██▄
`

var (
	asciiStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("87"))

	menuItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Padding(0, 3).
			Width(20).
			Align(lipgloss.Center)

	menuSelectedStyle = menuItemStyle.
				Background(lipgloss.Color("87")).
				Foreground(lipgloss.Color("0")).
				Bold(true)

	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Margin(1, 0)
)

func (m MenuModel) View() string {
	var items strings.Builder
	for i, label := range menuLabels {
		if MenuChoice(i) == m.selected {
			items.WriteString(menuSelectedStyle.Render(label))
		} else {
			items.WriteString(menuItemStyle.Render(label))
		}
		items.WriteString("\n")
	}

	parts := []string{
		asciiStyle.Render(torsnakeAscii),
		lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Render(items.String()),
		helpStyle.Render("(arrows to move, enter to select, q to quit)"),
	}
	if m.status != "" {
		parts = append(parts, statusStyle.Render(m.status))
	}

	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, parts...),
	)
}
