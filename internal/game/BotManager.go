package game

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

const maxConcurrentBotGames = 25

// BenchConfig describes a batch of headless games played by one strategy.
// NewStrategy is called once per game because a LuaStrategy is not safe to
// share between goroutines.
type BenchConfig struct {
	Games       int
	Workers     int
	MaxTicks    int
	Settings    Settings
	NewStrategy func() (Strategy, error)
}

type BenchGame struct {
	Seed   int64
	Score  int
	Length int
	Ticks  int
	Died   bool
}

type BenchReport struct {
	Games     []BenchGame
	BestScore int
	MeanScore float64
	Deaths    int
	Elapsed   time.Duration
}

// BotMaster plays benchmark games on a bounded pool of goroutines.
type BotMaster struct {
	config BenchConfig
}

func NewBotMaster(config BenchConfig) (*BotMaster, error) {
	if config.NewStrategy == nil {
		return nil, errors.New("bench needs a strategy factory")
	}
	if config.Games <= 0 {
		return nil, errors.New("bench needs at least one game")
	}
	if err := config.Settings.Validate(); err != nil {
		return nil, err
	}
	if config.Workers <= 0 || config.Workers > maxConcurrentBotGames {
		config.Workers = maxConcurrentBotGames
	}
	if config.MaxTicks <= 0 {
		config.MaxTicks = 10_000
	}
	return &BotMaster{config: config}, nil
}

// Run plays every game and returns once all finished or ctx is cancelled. Games
// already running when ctx ends stop at their next tick and are still reported.
func (bm *BotMaster) Run(ctx context.Context) (BenchReport, error) {
	start := time.Now()
	baseSeed := bm.config.Settings.Seed
	if baseSeed == 0 {
		baseSeed = start.UnixNano()
	}

	semaphore := make(chan struct{}, bm.config.Workers)
	results := make([]BenchGame, bm.config.Games)
	errs := make([]error, bm.config.Games)

	var wg sync.WaitGroup
schedule:
	for i := range bm.config.Games {
		select {
		case <-ctx.Done():
			break schedule
		case semaphore <- struct{}{}:
		}

		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-semaphore }()
			results[i], errs[i] = bm.playGame(ctx, baseSeed+int64(i))
		}(i)
	}
	wg.Wait()

	report := BenchReport{Elapsed: time.Since(start)}
	total := 0
	for i, game := range results {
		if errs[i] != nil {
			return report, errs[i]
		}
		if game.Ticks == 0 {
			continue // never started
		}
		report.Games = append(report.Games, game)
		total += game.Score
		report.BestScore = max(report.BestScore, game.Score)
		if game.Died {
			report.Deaths++
		}
	}
	if len(report.Games) > 0 {
		report.MeanScore = float64(total) / float64(len(report.Games))
	}

	log.Info("Bench finished", "games", len(report.Games), "best", report.BestScore, "mean", report.MeanScore, "deaths", report.Deaths, "elapsed", report.Elapsed)
	return report, ctx.Err()
}

func (bm *BotMaster) playGame(ctx context.Context, seed int64) (BenchGame, error) {
	strategy, err := bm.config.NewStrategy()
	if err != nil {
		return BenchGame{}, err
	}
	if closer, ok := strategy.(io.Closer); ok {
		defer closer.Close()
	}
	board, err := NewBoard(bm.config.Settings, rand.New(rand.NewSource(seed)))
	if err != nil {
		return BenchGame{}, err
	}
	bot := CreateNewPlayer("bench", board, strategy)
	defer board.Destroy()

	game := BenchGame{Seed: seed}
	for game.Ticks < bm.config.MaxTicks && ctx.Err() == nil {
		game.Ticks++
		bot.UpdateDirection(strategy.NextDirection(board.Snapshot(), bot.Heading))
		if bot.move() == Failure {
			game.Died = true
			break
		}
		if every := bm.config.Settings.RetargetEvery; every > 0 && game.Ticks%every == 0 {
			board.RetargetFoodValues()
		}
	}
	game.Score = board.Score
	game.Length = board.SnakeLength()
	return game, nil
}
