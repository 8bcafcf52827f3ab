package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/Mshel/torsnake/internal/config"
	"github.com/Mshel/torsnake/internal/spectate"
	"github.com/Mshel/torsnake/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
)

const maxConnectionsPerIP = 2

var (
	ipCounter = make(map[string]int)
	ipMutex   sync.Mutex
)

func getIP(s ssh.Session) string {
	if addr, ok := s.RemoteAddr().(*net.TCPAddr); ok {
		return addr.IP.String()
	}
	return s.RemoteAddr().String()
}

// acquireIP reserves a connection slot for ip and returns the count including it.
func acquireIP(ip string) (int, bool) {
	ipMutex.Lock()
	defer ipMutex.Unlock()
	if ipCounter[ip] >= maxConnectionsPerIP {
		return ipCounter[ip], false
	}
	ipCounter[ip]++
	return ipCounter[ip], true
}

func releaseIP(ip string) int {
	ipMutex.Lock()
	defer ipMutex.Unlock()
	ipCounter[ip]--
	if ipCounter[ip] <= 0 {
		delete(ipCounter, ip)
	}
	return ipCounter[ip]
}

func connectionLimiterMiddleware(next ssh.Handler) ssh.Handler {
	return func(s ssh.Session) {
		ip := getIP(s)

		count, ok := acquireIP(ip)
		if !ok {
			log.Warn("Connection denied: IP limit exceeded", "ip", ip, "attempted_count", count+1, "current_limit", maxConnectionsPerIP)
			errorMessage := fmt.Sprintf("Too many active connections from your IP (%d/%d). Please try again later.\r\n", count+1, maxConnectionsPerIP)
			s.Write([]byte(errorMessage))
			s.Close()
			return
		}

		log.Info("Connection accepted", "ip", ip, "user", s.User(), "current_count", count, "limit", maxConnectionsPerIP)
		next(s)
		log.Info("Connection closed and counter decremented", "ip", ip, "count_after", releaseIP(ip))
	}
}

func main() {
	var opts config.Options
	opts.RegisterFlags(flag.CommandLine)
	flag.Parse()

	if opts.Debug {
		log.SetLevel(log.DebugLevel)
	}

	var hub *spectate.Hub
	if opts.SpectateAddr != "" {
		hub = spectate.NewHub()
	}

	deps, closeDeps, err := opts.Dependencies(hub)
	if err != nil {
		log.Fatal("Failed to prepare game dependencies", "error", err)
	}
	defer closeDeps()

	sshServer, serverCreateErr := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(opts.Host, opts.Port)),
		wish.WithHostKeyPath(opts.KeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(viewHandler(deps)),
			logging.Middleware(),
			activeterm.Middleware(),
			connectionLimiterMiddleware,
		),
	)
	if serverCreateErr != nil {
		log.Fatal("Failed to create ssh server", "error", serverCreateErr)
	}

	serverDoneChannel := make(chan os.Signal, 1)
	// Capturing system signal to kill server
	signal.Notify(serverDoneChannel, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	log.Info("Starting SSH server", "host", opts.Host, "port", opts.Port)
	go func() {
		if err := sshServer.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Error("Could not start server", "error", err)
			serverDoneChannel <- nil
		}
	}()

	var spectateServer *http.Server
	if hub != nil {
		spectateServer = spectate.NewServer(opts.SpectateAddr, hub)
		log.Info("Starting spectator feed", "addr", opts.SpectateAddr, "path", spectate.Path)
		go func() {
			if err := spectateServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("Could not start spectator feed", "error", err)
			}
		}()
	}

	<-serverDoneChannel

	log.Info("Stopping SSH server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := sshServer.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		log.Error("Could not stop server", "error", err)
	}
	if spectateServer != nil {
		hub.Close()
		if err := spectateServer.Shutdown(ctx); err != nil {
			log.Error("Could not stop spectator feed", "error", err)
		}
	}
}

func viewHandler(deps ui.Dependencies) bubbletea.Handler {
	return func(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
		pty, _, _ := sshSession.Pty()

		sessionDeps := deps
		sessionDeps.DefaultName = sshSession.User()
		controllerModel := ui.NewControllerModel(sessionDeps, pty.Window.Width, pty.Window.Height)

		return controllerModel, []tea.ProgramOption{tea.WithAltScreen()}
	}
}
