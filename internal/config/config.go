// Package config binds command line flags with environment fallbacks and builds
// the shared dependencies of the binaries.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/Mshel/torsnake/internal/game"
	"github.com/Mshel/torsnake/internal/spectate"
	"github.com/Mshel/torsnake/internal/ui"
	"github.com/charmbracelet/log"
)

type Options struct {
	DBPath        string
	LogFile       string
	BotScript     string
	SpectateAddr  string
	Host          string
	Port          string
	KeyPath       string
	Seed          int64
	Width         int
	Height        int
	InitialFood   int
	RetargetEvery int
	Debug         bool
}

// RegisterFlags binds every option to fs. Defaults come from the environment.
func (o *Options) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&o.DBPath, "db", getEnvOrDefault("SNAKE_DB_PATH", "highscores.db"), "sqlite file for highscores, empty disables them")
	fs.StringVar(&o.LogFile, "log-file", getEnvOrDefault("SNAKE_LOG_FILE", "snake.log"), "log file used while the terminal UI owns the screen")
	fs.StringVar(&o.BotScript, "bot", getEnvOrDefault("SNAKE_BOT_SCRIPT", ""), "lua script driving the versus bot, empty uses the built-in one")
	fs.StringVar(&o.SpectateAddr, "spectate", getEnvOrDefault("SNAKE_SPECTATE_ADDR", ""), "address of the websocket spectator feed, empty disables it")
	fs.StringVar(&o.Host, "host", getEnvOrDefault("SNAKE_HOST", "0.0.0.0"), "ssh listen host")
	fs.StringVar(&o.Port, "port", getEnvOrDefault("SNAKE_PORT", "6996"), "ssh listen port")
	fs.StringVar(&o.KeyPath, "key", getEnvOrDefault("OUROBOROS_PRIVATE_KEY_PATH", ".ssh/id_ed25519"), "ssh host key path")
	fs.Int64Var(&o.Seed, "seed", getEnvInt64OrDefault("SNAKE_SEED", 0), "random seed, 0 seeds from the clock")
	fs.IntVar(&o.Width, "width", getEnvIntOrDefault("SNAKE_WIDTH", game.BoardColCount), "board columns")
	fs.IntVar(&o.Height, "height", getEnvIntOrDefault("SNAKE_HEIGHT", game.BoardRowCount), "board rows")
	fs.IntVar(&o.InitialFood, "food", getEnvIntOrDefault("SNAKE_FOOD", game.InitialFoodCount), "food cells on the board")
	fs.IntVar(&o.RetargetEvery, "retarget", getEnvIntOrDefault("SNAKE_RETARGET_EVERY", game.RetargetEveryTicks), "ticks between food value re-rolls, 0 disables")
	fs.BoolVar(&o.Debug, "debug", getEnvBoolOrDefault("SNAKE_DEBUG", false), "debug logging")
}

func (o Options) Settings() game.Settings {
	settings := game.DefaultSettings()
	settings.XMax = settings.XMin + o.Width
	settings.YMax = settings.YMin + o.Height
	settings.InitialFood = o.InitialFood
	settings.RetargetEvery = o.RetargetEvery
	settings.Seed = o.Seed
	return settings
}

// BotFactory loads the configured script once to fail fast and returns a
// constructor that gives every match its own Lua state.
func (o Options) BotFactory() (func() (game.Strategy, error), error) {
	probe, err := game.LoadLuaStrategy(o.BotScript)
	if err != nil {
		return nil, err
	}
	probe.Close()

	path := o.BotScript
	return func() (game.Strategy, error) {
		return game.LoadLuaStrategy(path)
	}, nil
}

// Dependencies opens the highscore database and bot factory shared by all
// sessions. The returned close function releases them.
func (o Options) Dependencies(hub *spectate.Hub) (ui.Dependencies, func(), error) {
	settings := o.Settings()
	if err := settings.Validate(); err != nil {
		return ui.Dependencies{}, nil, fmt.Errorf("invalid board settings: %w", err)
	}

	newBot, err := o.BotFactory()
	if err != nil {
		return ui.Dependencies{}, nil, err
	}

	deps := ui.Dependencies{
		Spectators: hub,
		NewBot:     newBot,
		Settings:   settings,
	}

	if o.DBPath == "" {
		log.Warn("Highscores disabled: no database path")
		return deps, func() {}, nil
	}
	highScores, err := game.NewHighScoreService(o.DBPath)
	if err != nil {
		return ui.Dependencies{}, nil, err
	}
	deps.HighScores = highScores

	return deps, func() {
		if err := highScores.Close(); err != nil {
			log.Error("Failed to close highscore database", "error", err)
		}
	}, nil
}

// Environment variable helpers
func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvIntOrDefault(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvInt64OrDefault(key string, defaultVal int64) int64 {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvBoolOrDefault(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}
