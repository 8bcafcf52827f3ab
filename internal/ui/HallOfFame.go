package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Mshel/torsnake/internal/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type hallOfFameLoadedMsg struct {
	page   int
	scores []game.Score
	total  int
	err    error
}

// HallOfFameModel pages through the single player highscores.
type HallOfFameModel struct {
	highScores *game.HighScoreService
	page       int
	scores     []game.Score
	total      int
	err        error
	loaded     bool
	width      int
	height     int
}

func NewHallOfFameModel(highScores *game.HighScoreService, w, h int) HallOfFameModel {
	return HallOfFameModel{highScores: highScores, width: w, height: h}
}

func (m HallOfFameModel) Init() tea.Cmd {
	return m.load(0)
}

func (m HallOfFameModel) load(page int) tea.Cmd {
	highScores := m.highScores
	if highScores == nil {
		return nil
	}
	return func() tea.Msg {
		total, err := highScores.GetTotalScoreCount()
		if err != nil {
			return hallOfFameLoadedMsg{page: page, err: err}
		}
		scores, err := highScores.GetHighScores(game.HighScorePageSize, page*game.HighScorePageSize)
		return hallOfFameLoadedMsg{page: page, scores: scores, total: total, err: err}
	}
}

func (m HallOfFameModel) pageCount() int {
	return max(1, (m.total+game.HighScorePageSize-1)/game.HighScorePageSize)
}

func (m HallOfFameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case hallOfFameLoadedMsg:
		m.loaded = true
		m.page, m.scores, m.total, m.err = msg.page, msg.scores, msg.total, msg.err

	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h", "a":
			if m.page > 0 {
				return m, m.load(m.page - 1)
			}
		case "right", "l", "d":
			if m.page+1 < m.pageCount() {
				return m, m.load(m.page + 1)
			}
		case "esc", "enter", "q":
			return m, func() tea.Msg { return BackToMenuMsg{} }
		}
	}
	return m, nil
}

func (m HallOfFameModel) View() string {
	title := lipgloss.NewStyle().Bold(true).Padding(1, 0).Render("👑 HALL OF FAME 👑")
	instruction := lipgloss.NewStyle().Faint(true).Margin(1, 0).Render("←/→ to page, Esc or Enter to return")

	var body string
	switch {
	case m.highScores == nil:
		body = blurredStyle.Render("No highscore database configured.")
	case m.err != nil:
		body = statusStyle.Render("Could not load highscores: " + m.err.Error())
	case !m.loaded:
		body = blurredStyle.Render("Loading...")
	case len(m.scores) == 0:
		body = blurredStyle.Render("No games recorded yet. Be the first!")
	default:
		body = m.renderTable() + "\n" + blurredStyle.Render(fmt.Sprintf("page %d/%d", m.page+1, m.pageCount()))
	}

	finalContent := lipgloss.JoinVertical(lipgloss.Center, title, body, instruction)
	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Padding(0, 2).Render(finalContent),
	)
}

func (m HallOfFameModel) renderTable() string {
	var tableContent strings.Builder

	// Define column widths for alignment
	rankWidth := 5
	nameWidth := game.MaxPlayerNameLen + 2
	numberWidth := 8
	dateWidth := 12

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		leaderboardHeaderStyle.Width(rankWidth).Render("#"),
		leaderboardHeaderStyle.Width(nameWidth).Render("Player"),
		leaderboardHeaderStyle.Width(numberWidth).Render("Score"),
		leaderboardHeaderStyle.Width(numberWidth).Render("Length"),
		leaderboardHeaderStyle.Width(dateWidth).Render("Date"),
	)
	tableContent.WriteString(header + "\n")

	for i, score := range m.scores {
		rank := m.page*game.HighScorePageSize + i + 1

		rowStyle := leaderboardRowStyle
		if rank == 1 {
			rowStyle = rowStyle.Foreground(lipgloss.Color("220")).Bold(true)
		}

		row := lipgloss.JoinHorizontal(lipgloss.Top,
			rowStyle.Width(rankWidth).Render(strconv.Itoa(rank)),
			rowStyle.Width(nameWidth).Render(score.PlayerName),
			rowStyle.Width(numberWidth).Render(strconv.Itoa(score.Score)),
			rowStyle.Width(numberWidth).Render(strconv.Itoa(score.Length)),
			rowStyle.Width(dateWidth).Render(score.CreatedAt.Format("2006-01-02")),
		)
		tableContent.WriteString(leaderboardBorderStyle.Render(row) + "\n")
	}
	return tableContent.String()
}
