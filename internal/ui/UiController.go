package ui

import (
	"github.com/Mshel/torsnake/internal/game"
	"github.com/Mshel/torsnake/internal/spectate"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

type Screen int

const (
	MenuScreen Screen = iota
	SetupScreen
	GameScreen
	ResultScreen
	HallOfFameScreen
	InfoScreen
)

// Dependencies are shared by every session of a process. Nil HighScores disables
// the hall of fame and score saving; nil Spectators disables frame publishing.
type Dependencies struct {
	HighScores  *game.HighScoreService
	Spectators  *spectate.Hub
	NewBot      func() (game.Strategy, error)
	Settings    game.Settings
	DefaultName string
}

// Messages for screen transitions
type MenuSelectMsg struct{ Choice MenuChoice }

type SetupSubmitMsg struct{ Name string }

type GameFinishedMsg struct{ Result game.MatchResult }

type ScoreSavedMsg struct {
	RunID  string
	IsBest bool
	Err    error
}

type PlayAgainMsg struct{}

type BackToMenuMsg struct{}

type ControllerModel struct {
	CurrentScreen Screen
	deps          Dependencies

	MenuModel   MenuModel
	ActiveModel tea.Model // the model behind every screen but the menu

	mode        game.Mode
	playerNames []string

	ScreenWidth  int
	ScreenHeight int
}

func NewControllerModel(deps Dependencies, screenWidth int, screenHeight int) ControllerModel {
	return ControllerModel{
		CurrentScreen: MenuScreen,
		deps:          deps,
		MenuModel:     NewMenuModel(screenWidth, screenHeight),
		ScreenWidth:   screenWidth,
		ScreenHeight:  screenHeight,
	}
}

func (m ControllerModel) Init() tea.Cmd {
	return m.MenuModel.Init()
}

func (m ControllerModel) View() string {
	if m.CurrentScreen == MenuScreen || m.ActiveModel == nil {
		return m.MenuModel.View()
	}
	return m.ActiveModel.View()
}

func (m ControllerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.abandonGame()
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.ScreenWidth, m.ScreenHeight = msg.Width, msg.Height
		var menuModel tea.Model
		menuModel, _ = m.MenuModel.Update(msg)
		m.MenuModel = menuModel.(MenuModel)
		if m.ActiveModel != nil {
			m.ActiveModel, _ = m.ActiveModel.Update(msg)
		}
		return m, nil

	case MenuSelectMsg:
		return m.onMenuSelect(msg.Choice)

	case SetupSubmitMsg:
		names := []string{msg.Name}
		if msg.Name == "" {
			names = []string{m.deps.DefaultName}
		}
		return m.startGame(m.mode, names)

	case GameFinishedMsg:
		return m.showResult(msg.Result)

	case PlayAgainMsg:
		return m.startGame(m.mode, m.playerNames)

	case BackToMenuMsg:
		m.abandonGame()
		m.CurrentScreen = MenuScreen
		m.ActiveModel = nil
		return m, m.MenuModel.Init()
	}

	// Delegate everything else to the active screen
	var cmd tea.Cmd
	if m.CurrentScreen == MenuScreen || m.ActiveModel == nil {
		var menuModel tea.Model
		menuModel, cmd = m.MenuModel.Update(msg)
		m.MenuModel = menuModel.(MenuModel)
		return m, cmd
	}
	m.ActiveModel, cmd = m.ActiveModel.Update(msg)
	return m, cmd
}

func (m ControllerModel) onMenuSelect(choice MenuChoice) (tea.Model, tea.Cmd) {
	m.MenuModel.status = ""

	switch choice {
	case ChoiceSinglePlayer:
		m.mode = game.ModeSinglePlayer
		return m.showSetup()
	case ChoiceVersusBot:
		m.mode = game.ModeVersusBot
		return m.showSetup()
	case ChoiceTwoPlayer:
		return m.startGame(game.ModeTwoPlayer, nil)
	case ChoiceHallOfFame:
		m.CurrentScreen = HallOfFameScreen
		hallOfFame := NewHallOfFameModel(m.deps.HighScores, m.ScreenWidth, m.ScreenHeight)
		m.ActiveModel = hallOfFame
		return m, hallOfFame.Init()
	case ChoiceManual:
		m.CurrentScreen = InfoScreen
		m.ActiveModel = NewManualModel(m.ScreenWidth, m.ScreenHeight)
		return m, nil
	case ChoiceLicense:
		m.CurrentScreen = InfoScreen
		m.ActiveModel = NewLicenseModel(m.ScreenWidth, m.ScreenHeight)
		return m, nil
	case ChoiceQuit:
		return m, tea.Quit
	}
	return m, nil
}

func (m ControllerModel) showSetup() (tea.Model, tea.Cmd) {
	m.CurrentScreen = SetupScreen
	setup := NewInitialSetupModel(m.deps.DefaultName, m.ScreenWidth, m.ScreenHeight)
	m.ActiveModel = setup
	return m, setup.Init()
}

func (m ControllerModel) startGame(mode game.Mode, names []string) (tea.Model, tea.Cmd) {
	m.abandonGame()
	m.mode = mode
	m.playerNames = names

	config := game.MatchConfig{Mode: mode, Settings: m.deps.Settings, PlayerNames: names}
	if mode == game.ModeVersusBot && m.deps.NewBot != nil {
		bot, err := m.deps.NewBot()
		if err != nil {
			log.Error("Failed to load bot strategy", "error", err)
			return m.backToMenuWithStatus("Could not load the bot: " + err.Error())
		}
		config.Bot = bot
	}

	gm, err := game.NewGameManager(config)
	if err != nil {
		log.Error("Failed to create match", "mode", mode, "error", err)
		return m.backToMenuWithStatus("Could not start the game: " + err.Error())
	}
	log.Info("Match started", "run_id", gm.RunID, "mode", mode, "players", names)

	m.CurrentScreen = GameScreen
	gameModel := NewGameModel(gm, m.deps.Spectators, m.ScreenWidth, m.ScreenHeight)
	m.ActiveModel = gameModel
	return m, gameModel.Init()
}

func (m ControllerModel) showResult(result game.MatchResult) (tea.Model, tea.Cmd) {
	m.CurrentScreen = ResultScreen
	m.ActiveModel = NewResultModel(result, m.ScreenWidth, m.ScreenHeight)
	log.Info("Match finished", "run_id", result.RunID, "outcome", result.Outcome, "ticks", result.Ticks)

	highScores := m.deps.HighScores
	if highScores == nil || result.Mode != game.ModeSinglePlayer {
		return m, nil
	}
	return m, func() tea.Msg {
		isBest, err := highScores.RecordResult(result)
		if err != nil {
			log.Error("Failed to save high score", "run_id", result.RunID, "error", err)
		}
		return ScoreSavedMsg{RunID: result.RunID, IsBest: isBest, Err: err}
	}
}

func (m ControllerModel) backToMenuWithStatus(status string) (tea.Model, tea.Cmd) {
	m.CurrentScreen = MenuScreen
	m.ActiveModel = nil
	m.MenuModel.status = status
	return m, nil
}

// abandonGame releases a match that is still running when the screen changes.
func (m ControllerModel) abandonGame() {
	if gameModel, ok := m.ActiveModel.(GameViewModel); ok && !gameModel.finished {
		gameModel.gameManager.Close()
	}
}
