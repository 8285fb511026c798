// Command arena runs the snake arena.
//
//	arena play  [flags]   play in the terminal
//	arena serve [flags]   serve the game to websocket renderers
//	arena sim   [flags]   run a headless AI match and print the result
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/brensch/snekarena/engine"
	"github.com/brensch/snekarena/server"
	"github.com/brensch/snekarena/tui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "play":
		return runPlay(ctx, args[1:])
	case "serve":
		return runServe(ctx, args[1:])
	case "sim":
		return runSim(ctx, args[1:], stdout)
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: arena <play|serve|sim> [flags]", msg)
}

func runPlay(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	g := addGameFlags(fs, "human,ai,ai,ai", "arena.log")
	if err := fs.Parse(args); err != nil {
		return err
	}
	settings, err := g.settings()
	if err != nil {
		return err
	}

	log, closeLog, err := g.logger()
	if err != nil {
		return err
	}
	defer closeLog()

	d := engine.NewDriver(g.engine(log))
	updates, cancel := d.Subscribe(16)
	defer cancel()

	ctx, stopDriver := context.WithCancel(ctx)
	defer stopDriver()
	go func() { _ = d.Run(ctx) }()

	log.Infow("terminal session started", "map", settings.Map, "players", settings.PlayerCount)
	p := tea.NewProgram(tui.New(d, updates, settings), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

func runServe(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	g := addGameFlags(fs, "human,ai,ai,ai", "")
	addr := fs.String("addr", getEnvOrDefault("ARENA_LISTEN", ":8080"), "Listen address")
	autostart := fs.Bool("autostart", getEnvBoolOrDefault("ARENA_AUTOSTART", false), "Start a game with the flag settings immediately")
	if err := fs.Parse(args); err != nil {
		return err
	}

	log, closeLog, err := g.logger()
	if err != nil {
		return err
	}
	defer closeLog()

	d := engine.NewDriver(g.engine(log))
	if *autostart {
		settings, err := g.settings()
		if err != nil {
			return err
		}
		if err := d.Start(settings); err != nil {
			return err
		}
	}

	srv := server.New(d, log)
	go func() { _ = d.Run(ctx) }()
	go func() { _ = srv.Run(ctx) }()

	httpSrv := &http.Server{Addr: *addr, Handler: srv, ReadHeaderTimeout: 5 * time.Second}
	errc := make(chan error, 1)
	go func() {
		log.Infow("arena listening", "addr", *addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Infow("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

func runSim(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("sim", flag.ContinueOnError)
	g := addGameFlags(fs, "ai,ai,ai,ai", "")
	maxTurns := fs.Int("turns", getEnvIntOrDefault("ARENA_TURNS", 5000), "Stop after this many turns if nobody has won")
	if err := fs.Parse(args); err != nil {
		return err
	}
	settings, err := g.settings()
	if err != nil {
		return err
	}

	log, closeLog, err := g.logger()
	if err != nil {
		return err
	}
	defer closeLog()

	e := g.engine(log)
	if err := e.Start(settings); err != nil {
		return err
	}

	start := time.Now()
	for e.Status() == engine.Running && e.Snapshot().Turn < *maxTurns {
		if err := ctx.Err(); err != nil {
			return err
		}
		e.Tick()
	}
	snap := e.Snapshot()

	fmt.Fprintf(stdout, "game %s on %s: %d turns in %s\n", snap.GameID, snap.Map, snap.Turn, time.Since(start).Round(time.Millisecond))
	switch {
	case !snap.Over():
		fmt.Fprintln(stdout, "result: turn limit reached")
	case snap.Winner < 0:
		fmt.Fprintln(stdout, "result: tie")
	default:
		fmt.Fprintf(stdout, "result: player %d wins\n", snap.Winner+1)
	}
	for _, p := range snap.Players {
		state := "alive"
		if !p.Alive {
			state = p.DeathCause
		}
		fmt.Fprintf(stdout, "  P%d %-5s %-7s score %3d  length %3d  %s\n", p.Index+1, p.Control, p.Color, p.Score, len(p.Body), state)
	}
	return nil
}
