package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Mshel/torsnake/internal/game"
	"github.com/charmbracelet/lipgloss"
)

var (
	voidColor    = "233"
	playerColors = []string{"87", "205"}

	mapViewStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 0)

	statusPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("8")).
				Padding(0, 1)

	voidStyle = lipgloss.NewStyle().Background(lipgloss.Color(voidColor)).Render(" ")

	// food glows hotter with its value
	foodColors = map[int]string{1: "28", 2: "34", 3: "40", 4: "184", 5: "214", 6: "202", 7: "196"}

	headRunes = map[game.Direction]string{
		game.Up:    "▲",
		game.Down:  "▼",
		game.Left:  "◀",
		game.Right: "▶",
	}
	bodyRune = "■"
	deadRune = "✕"
)

func playerColor(idx int) string {
	return playerColors[idx%len(playerColors)]
}

// renderBoard draws one torus field cell by cell.
func renderBoard(player *game.Player, idx int) string {
	snapshot := player.Board.Snapshot()
	gameMap := game.BuildGameMap(snapshot)

	snakeStyle := lipgloss.NewStyle().Background(lipgloss.Color(voidColor)).Foreground(lipgloss.Color(playerColor(idx)))
	headStyle := snakeStyle.Bold(true)
	if player.Dead {
		headStyle = headStyle.Foreground(lipgloss.Color("9"))
	}

	var sb strings.Builder
	for row, tiles := range gameMap.Tiles {
		for _, tile := range tiles {
			switch tile.Kind {
			case game.TileHead:
				if player.Dead {
					sb.WriteString(headStyle.Render(deadRune))
				} else {
					sb.WriteString(headStyle.Render(headRunes[player.Heading]))
				}
			case game.TileBody:
				sb.WriteString(snakeStyle.Render(bodyRune))
			case game.TileFood:
				foodStyle := lipgloss.NewStyle().Background(lipgloss.Color(voidColor)).Foreground(lipgloss.Color(foodColors[tile.Point])).Bold(true)
				sb.WriteString(foodStyle.Render(strconv.Itoa(tile.Point)))
			default:
				sb.WriteString(voidStyle)
			}
		}
		if row < len(gameMap.Tiles)-1 {
			sb.WriteString("\n")
		}
	}

	return mapViewStyle.Render(sb.String())
}

// renderStatusPanel draws the score card of one player.
func renderStatusPanel(player *game.Player, idx int, width int) string {
	var statusContent strings.Builder

	colorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(playerColor(idx)))
	statusContent.WriteString(fmt.Sprintf("%s%s\n", colorStyle.Render("● "), player.Name))
	statusContent.WriteString(fmt.Sprintf("Score:  %d\n", player.Board.Score))
	statusContent.WriteString(fmt.Sprintf("Length: %d\n", player.Board.SnakeLength()))

	switch {
	case player.Dead:
		statusContent.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render("Crashed"))
	case player.IsBot():
		statusContent.WriteString(blurredStyle.Render("Bot"))
	default:
		statusContent.WriteString(fmt.Sprintf("Heading: %s", headRunes[player.Heading]))
	}

	return statusPanelStyle.Width(width).Render(statusContent.String())
}

func controlsHelp(mode game.Mode) string {
	var help strings.Builder
	help.WriteString(lipgloss.NewStyle().Bold(true).Render("Controls") + "\n")
	if mode == game.ModeTwoPlayer {
		help.WriteString("P1: W A S D\nP2: Arrows\n")
	} else {
		help.WriteString("Arrows / WASD: Move\n")
	}
	help.WriteString("P: Pause\nQ / Esc: Menu")
	return help.String()
}
