// main runs the terminal student registration client.
//
//	go run ./cmd/students-client --config=config/local.yaml
//
// With no config file the client talks to http://localhost:5000 and logs
// to students-client.log; stdout is taken by the screen.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aanand-mishra/student-registration/internal/client"
	"github.com/aanand-mishra/student-registration/internal/config"
	"github.com/aanand-mishra/student-registration/internal/logging"
	"github.com/aanand-mishra/student-registration/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "students-client:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.MustLoad()

	out, err := logging.OpenFile(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer out.Close()

	log := logging.Setup(cfg.Env, out)
	log.Info("starting students-client",
		slog.String("env", cfg.Env),
		slog.String("backend", cfg.BaseURL),
	)

	// Cancelled on SIGTERM so in-flight requests stop with the program.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	backend := client.New(cfg.BaseURL,
		client.WithTimeout(cfg.Backend.Timeout),
		client.WithLogger(log),
	)

	p := tea.NewProgram(tui.New(ctx, backend, log), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("run: %w", err)
	}

	log.Info("students-client stopped")
	return nil
}
