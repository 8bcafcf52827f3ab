package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Mshel/torsnake/internal/config"
	"github.com/Mshel/torsnake/internal/game"
	"github.com/Mshel/torsnake/internal/spectate"
	"github.com/Mshel/torsnake/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

func main() {
	var opts config.Options
	opts.RegisterFlags(flag.CommandLine)
	benchGames := flag.Int("bench", 0, "play this many headless bot games and print a report instead of starting the UI")
	benchTicks := flag.Int("bench-ticks", 5000, "tick limit per benchmark game")
	flag.Parse()

	if opts.Debug {
		log.SetLevel(log.DebugLevel)
	}

	if *benchGames > 0 {
		if err := runBench(opts, *benchGames, *benchTicks); err != nil {
			fmt.Fprintf(os.Stderr, "bench failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// the alt screen owns stdout, so logs go to a file
	logFile, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not open log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	log.SetOutput(logFile)

	var hub *spectate.Hub
	if opts.SpectateAddr != "" {
		hub = spectate.NewHub()
		server := spectate.NewServer(opts.SpectateAddr, hub)
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("Could not start spectator feed", "error", err)
			}
		}()
		defer server.Close()
		defer hub.Close()
	}

	deps, closeDeps, err := opts.Dependencies(hub)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error %v\n", err)
		os.Exit(1)
	}
	defer closeDeps()
	deps.DefaultName = os.Getenv("USER")

	p := tea.NewProgram(ui.NewControllerModel(deps, 0, 0), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Error("Program exited with error", "error", err)
		fmt.Printf("error %v", err)
	}
}

func runBench(opts config.Options, games, maxTicks int) error {
	newBot, err := opts.BotFactory()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	master, err := game.NewBotMaster(game.BenchConfig{
		Games:       games,
		MaxTicks:    maxTicks,
		Settings:    opts.Settings(),
		NewStrategy: newBot,
	})
	if err != nil {
		return err
	}

	report, err := master.Run(ctx)
	for _, g := range report.Games {
		fmt.Printf("seed %-20d score %5d  length %4d  ticks %5d  died %v\n", g.Seed, g.Score, g.Length, g.Ticks, g.Died)
	}
	fmt.Printf("\n%d games in %s: best %d, mean %.2f, deaths %d\n",
		len(report.Games), report.Elapsed, report.BestScore, report.MeanScore, report.Deaths)
	return err
}
