package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const manualText = `The field is a torus: leave through one edge and you come back
through the opposite one. There are no walls.

Eat the numbered food to grow by one cell. The number is the
amount of points it is worth. Food values change every few
seconds, so a far 7 may turn into a 1 before you get there.

You lose when your head runs into any part of your body,
including the very end of your tail.

1 Player     arrows or W A S D
2 Players    player 1: W A S D, player 2: arrows.
             The first snake to crash loses, crashing
             on the same tick is a draw.
Versus Bot   you race the Ouroboros bot on a board of its own.

P pauses, Q or Esc returns to the menu.`

const licenseText = `MIT License

Permission is hereby granted, free of charge, to any person obtaining
a copy of this software and associated documentation files, to deal
in the Software without restriction, including without limitation the
rights to use, copy, modify, merge, publish, distribute, sublicense,
and/or sell copies of the Software, subject to the following condition:

The above copyright notice and this permission notice shall be
included in all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND.`

// InfoModel is a static text page.
type InfoModel struct {
	title  string
	body   string
	width  int
	height int
}

func NewManualModel(w, h int) InfoModel {
	return InfoModel{title: "MANUAL", body: manualText, width: w, height: h}
}

func NewLicenseModel(w, h int) InfoModel {
	return InfoModel{title: "LICENSE", body: licenseText, width: w, height: h}
}

func (m InfoModel) Init() tea.Cmd { return nil }

func (m InfoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "enter", "q":
			return m, func() tea.Msg { return BackToMenuMsg{} }
		}
	}
	return m, nil
}

func (m InfoModel) View() string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		asciiStyle.Bold(true).Padding(1, 0).Render(m.title),
		lipgloss.NewStyle().Align(lipgloss.Left).Render(m.body),
		lipgloss.NewStyle().Faint(true).Margin(1, 0).Render("Press Esc or Enter to return"),
	)
	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2).Render(content),
	)
}
