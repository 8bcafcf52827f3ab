package game

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

type Mode int

const (
	ModeSinglePlayer Mode = iota
	ModeTwoPlayer
	ModeVersusBot
)

func (m Mode) String() string {
	switch m {
	case ModeSinglePlayer:
		return "single"
	case ModeTwoPlayer:
		return "two-player"
	case ModeVersusBot:
		return "versus-bot"
	default:
		return "unknown"
	}
}

func (m Mode) PlayerCount() int {
	if m == ModeSinglePlayer {
		return 1
	}
	return 2
}

type Outcome int

const (
	OutcomeRunning Outcome = iota
	OutcomeGameOver
	OutcomeVictoryP1
	OutcomeVictoryP2
	OutcomeDraw
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRunning:
		return "running"
	case OutcomeGameOver:
		return "game over"
	case OutcomeVictoryP1:
		return "player 1 wins"
	case OutcomeVictoryP2:
		return "player 2 wins"
	case OutcomeDraw:
		return "draw"
	default:
		return "unknown"
	}
}

type MatchConfig struct {
	Mode        Mode
	Settings    Settings
	PlayerNames []string
	Bot         Strategy // drives player 2 in ModeVersusBot, GreedyStrategy when nil
}

type PlayerResult struct {
	Name   string
	Score  int
	Length int
	IsBot  bool
	Dead   bool
}

type MatchResult struct {
	RunID   string
	Mode    Mode
	Outcome Outcome
	Ticks   int
	Players []PlayerResult
}

// GameManager runs one match: every player owns an independent Board and the
// manager advances all of them once per Tick. It is not safe for concurrent use;
// each terminal session owns its own manager.
type GameManager struct {
	RunID    string
	Mode     Mode
	Settings Settings

	players   []*Player
	tickCount int
	outcome   Outcome
}

func NewGameManager(cfg MatchConfig) (*GameManager, error) {
	seed := cfg.Settings.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	gm := &GameManager{
		RunID:    uuid.NewString(),
		Mode:     cfg.Mode,
		Settings: cfg.Settings,
		outcome:  OutcomeRunning,
	}

	for i := range cfg.Mode.PlayerCount() {
		board, err := NewBoard(cfg.Settings, rand.New(rand.NewSource(seed+int64(i))))
		if err != nil {
			gm.Close()
			return nil, err
		}

		var strategy Strategy
		if cfg.Mode == ModeVersusBot && i == 1 {
			strategy = cfg.Bot
			if strategy == nil {
				strategy = GreedyStrategy{}
			}
		}

		gm.players = append(gm.players, CreateNewPlayer(playerName(cfg.PlayerNames, i, strategy != nil), board, strategy))
	}

	log.Debug("Match created", "run_id", gm.RunID, "mode", gm.Mode, "seed", seed)
	return gm, nil
}

func playerName(names []string, i int, isBot bool) string {
	if i < len(names) && names[i] != "" {
		return names[i]
	}
	if isBot {
		return "Ouroboros"
	}
	if i == 0 {
		return "Player 1"
	}
	return "Player 2"
}

func (gm *GameManager) Players() []*Player {
	return gm.players
}

func (gm *GameManager) Outcome() Outcome {
	return gm.outcome
}

func (gm *GameManager) TickCount() int {
	return gm.tickCount
}

// QueueDirection sets the direction a human player takes on the next tick.
// Reversals and bot-controlled players are ignored.
func (gm *GameManager) QueueDirection(playerIndex int, dir Direction) bool {
	if playerIndex < 0 || playerIndex >= len(gm.players) {
		return false
	}
	player := gm.players[playerIndex]
	if player.IsBot() || player.Dead {
		return false
	}
	return player.UpdateDirection(dir)
}

// Tick moves every live player once, re-rolls food values on the retarget period
// and resolves the match outcome.
func (gm *GameManager) Tick() Outcome {
	if gm.outcome != OutcomeRunning {
		return gm.outcome
	}
	gm.tickCount++

	for _, player := range gm.players {
		if player.IsBot() && !player.Dead {
			player.UpdateDirection(player.Strategy.NextDirection(player.Board.Snapshot(), player.Heading))
		}
	}

	failed := make([]bool, len(gm.players))
	for i, player := range gm.players {
		if player.Dead {
			continue
		}
		if player.move() == Failure {
			failed[i] = true
			log.Debug("Snake collided", "run_id", gm.RunID, "player", player.Name, "score", player.Board.Score)
		}
	}

	if gm.Settings.RetargetEvery > 0 && gm.tickCount%gm.Settings.RetargetEvery == 0 {
		for _, player := range gm.players {
			player.Board.RetargetFoodValues()
		}
	}

	gm.outcome = gm.resolve(failed)
	return gm.outcome
}

func (gm *GameManager) resolve(failed []bool) Outcome {
	if len(failed) == 1 {
		if failed[0] {
			return OutcomeGameOver
		}
		return OutcomeRunning
	}

	switch {
	case failed[0] && failed[1]:
		return OutcomeDraw
	case failed[0]:
		return OutcomeVictoryP2
	case failed[1]:
		return OutcomeVictoryP1
	}
	return OutcomeRunning
}

func (gm *GameManager) Result() MatchResult {
	result := MatchResult{
		RunID:   gm.RunID,
		Mode:    gm.Mode,
		Outcome: gm.outcome,
		Ticks:   gm.tickCount,
	}
	for _, player := range gm.players {
		result.Players = append(result.Players, PlayerResult{
			Name:   player.Name,
			Score:  player.Board.Score,
			Length: player.Board.SnakeLength(),
			IsBot:  player.IsBot(),
			Dead:   player.Dead,
		})
	}
	return result
}

// Close destroys every board and releases bot resources.
func (gm *GameManager) Close() {
	for _, player := range gm.players {
		player.Board.Destroy()
		if closer, ok := player.Strategy.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				log.Error("Failed to close strategy", "run_id", gm.RunID, "error", err)
			}
		}
	}
}
