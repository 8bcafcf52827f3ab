package ui

import (
	"fmt"
	"time"

	"github.com/Mshel/torsnake/internal/game"
	"github.com/Mshel/torsnake/internal/spectate"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// gameTickMsg carries the run id so ticks of an abandoned match are dropped.
type gameTickMsg struct {
	runID string
}

func tickCmd(runID string) tea.Cmd {
	return tea.Tick(game.GameTickDuration, func(time.Time) tea.Msg {
		return gameTickMsg{runID: runID}
	})
}

// GameViewModel drives one match: it owns the GameManager until the match ends.
type GameViewModel struct {
	gameManager  *game.GameManager
	spectators   *spectate.Hub
	paused       bool
	finished     bool
	ScreenWidth  int
	ScreenHeight int
}

func NewGameModel(gm *game.GameManager, spectators *spectate.Hub, screenWidth int, screenHeight int) GameViewModel {
	return GameViewModel{
		gameManager:  gm,
		spectators:   spectators,
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
	}
}

func (m GameViewModel) Init() tea.Cmd {
	m.spectators.Publish(spectate.NewFrame(m.gameManager))
	return tickCmd(m.gameManager.RunID)
}

// keyDirection maps a key to the player it steers. In two player mode WASD
// belongs to player 1 and the arrows to player 2; otherwise both steer player 1.
func keyDirection(mode game.Mode, key string) (int, game.Direction, bool) {
	switch key {
	case "w":
		return 0, game.Up, true
	case "s":
		return 0, game.Down, true
	case "a":
		return 0, game.Left, true
	case "d":
		return 0, game.Right, true
	}

	arrowPlayer := 0
	if mode == game.ModeTwoPlayer {
		arrowPlayer = 1
	}
	switch key {
	case "up":
		return arrowPlayer, game.Up, true
	case "down":
		return arrowPlayer, game.Down, true
	case "left":
		return arrowPlayer, game.Left, true
	case "right":
		return arrowPlayer, game.Right, true
	}
	return 0, game.Up, false
}

func (m GameViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.finished {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth, m.ScreenHeight = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "p":
			m.paused = !m.paused
			return m, nil
		case "q", "esc":
			log.Debug("Match abandoned", "run_id", m.gameManager.RunID, "tick", m.gameManager.TickCount())
			m.finished = true
			m.gameManager.Close()
			return m, func() tea.Msg { return BackToMenuMsg{} }
		}

		if m.paused {
			return m, nil
		}
		if playerIdx, dir, ok := keyDirection(m.gameManager.Mode, key); ok {
			m.gameManager.QueueDirection(playerIdx, dir)
		}
		return m, nil

	case gameTickMsg:
		if msg.runID != m.gameManager.RunID {
			return m, nil
		}
		if m.paused {
			return m, tickCmd(m.gameManager.RunID)
		}

		outcome := m.gameManager.Tick()
		m.spectators.Publish(spectate.NewFrame(m.gameManager))
		if outcome == game.OutcomeRunning {
			return m, tickCmd(m.gameManager.RunID)
		}

		// the result must be taken before Close destroys the boards
		result := m.gameManager.Result()
		m.finished = true
		m.gameManager.Close()
		return m, func() tea.Msg { return GameFinishedMsg{Result: result} }
	}

	return m, nil
}

func (m GameViewModel) View() string {
	if m.finished {
		return lipgloss.Place(m.ScreenWidth, m.ScreenHeight, lipgloss.Center, lipgloss.Center, "Match over...")
	}
	players := m.gameManager.Players()

	columns := make([]string, 0, len(players))
	for i, player := range players {
		board := renderBoard(player, i)
		panel := renderStatusPanel(player, i, lipgloss.Width(board)-2)
		columns = append(columns, lipgloss.JoinVertical(lipgloss.Left, board, panel))
	}
	boards := lipgloss.JoinHorizontal(lipgloss.Top, joinWithGap(columns, "  ")...)

	header := fmt.Sprintf("%s  ·  tick %d", m.gameManager.Mode, m.gameManager.TickCount())
	if m.paused {
		header += "  ·  " + lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true).Render("PAUSED")
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.NewStyle().Bold(true).Render(header),
		boards,
		helpStyle.Render(controlsHelp(m.gameManager.Mode)),
	)
	return lipgloss.Place(m.ScreenWidth, m.ScreenHeight, lipgloss.Center, lipgloss.Center, content)
}

func joinWithGap(columns []string, gap string) []string {
	joined := make([]string, 0, len(columns)*2)
	for i, column := range columns {
		if i > 0 {
			joined = append(joined, gap)
		}
		joined = append(joined, column)
	}
	return joined
}
