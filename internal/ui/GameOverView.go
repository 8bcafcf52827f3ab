package ui

import (
	"fmt"
	"strings"

	"github.com/Mshel/torsnake/internal/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ResultModel shows the end of a match: game over, victory or draw.
type ResultModel struct {
	result         game.MatchResult
	newHighScore   bool
	saveErr        error
	SelectedButton int // 0: Play again, 1: Menu
	ScreenWidth    int
	ScreenHeight   int
}

// Styles for Game Over/Leaderboard
var (
	GameOverbuttonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("250")).
				Padding(0, 3).
				Margin(1, 1).
				Bold(true)

	selectedButtonStyle = GameOverbuttonStyle.
				Background(lipgloss.Color("4")).
				Foreground(lipgloss.Color("15")) // White/Bright text

	leaderboardHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("236")).
				Padding(0, 1).
				Align(lipgloss.Center)

	leaderboardRowStyle = lipgloss.NewStyle().
				Padding(0, 1)

	leaderboardBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder(), false, false, true, false).
				BorderForeground(lipgloss.Color("8"))
)

func NewResultModel(result game.MatchResult, w, h int) ResultModel {
	return ResultModel{result: result, ScreenWidth: w, ScreenHeight: h}
}

func (m ResultModel) Init() tea.Cmd { return nil }

func (m ResultModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth, m.ScreenHeight = msg.Width, msg.Height

	case ScoreSavedMsg:
		if msg.RunID == m.result.RunID {
			m.newHighScore = msg.IsBest
			m.saveErr = msg.Err
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h", "a":
			m.SelectedButton = max(0, m.SelectedButton-1)
		case "right", "l", "d":
			m.SelectedButton = min(1, m.SelectedButton+1)
		case "esc", "q":
			return m, func() tea.Msg { return BackToMenuMsg{} }
		case "enter":
			if m.SelectedButton == 0 {
				return m, func() tea.Msg { return PlayAgainMsg{} }
			}
			return m, func() tea.Msg { return BackToMenuMsg{} }
		}
	}
	return m, nil
}

func (m ResultModel) title() (string, lipgloss.Color) {
	switch m.result.Outcome {
	case game.OutcomeVictoryP1, game.OutcomeVictoryP2:
		winner := 0
		if m.result.Outcome == game.OutcomeVictoryP2 {
			winner = 1
		}
		name := strings.ToUpper(m.result.Players[winner].Name)
		return "🏆 " + name + " WINS 🏆", lipgloss.Color(playerColor(winner))
	case game.OutcomeDraw:
		return "D R A W", lipgloss.Color("214")
	default:
		return "💀 G A M E   O V E R 💀", lipgloss.Color("9")
	}
}

func (m ResultModel) View() string {
	text, color := m.title()
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(color).
		Padding(1, 5).
		Align(lipgloss.Center).
		Render(text)

	var stats strings.Builder
	for i, player := range m.result.Players {
		colorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(playerColor(i)))
		stats.WriteString(fmt.Sprintf("%s%-*s score %4d   length %3d\n",
			colorStyle.Render("● "), game.MaxPlayerNameLen, player.Name, player.Score, player.Length))
	}
	stats.WriteString(fmt.Sprintf("\n%d ticks", m.result.Ticks))

	if m.result.Mode == game.ModeSinglePlayer {
		switch {
		case m.saveErr != nil:
			stats.WriteString("\n" + statusStyle.Render("Score could not be saved"))
		case m.newHighScore:
			stats.WriteString("\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true).Render("★ NEW HIGHSCORE ★"))
		}
	}

	againButton := GameOverbuttonStyle.Render("PLAY AGAIN")
	menuButton := GameOverbuttonStyle.Render("MENU")
	if m.SelectedButton == 0 {
		againButton = selectedButtonStyle.Render("PLAY AGAIN")
	} else {
		menuButton = selectedButtonStyle.Render("MENU")
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Center, againButton, menuButton)

	content := lipgloss.JoinVertical(lipgloss.Center, title, stats.String(), buttons)

	// Center the content on the screen
	return lipgloss.Place(m.ScreenWidth, m.ScreenHeight,
		lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Padding(0, 2).Render(content),
	)
}
