package tui

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Iron-Ham/hubview/internal/tui/styles"
	tea "github.com/charmbracelet/bubbletea"
)

// App wraps the Bubbletea program
type App struct {
	program *tea.Program
	model   Model
	cancel  context.CancelFunc
}

// New creates a new TUI application around model. Extra program options
// are passed to tea.NewProgram after the defaults.
func New(model Model, opts ...tea.ProgramOption) *App {
	ctx, cancel := context.WithCancel(context.Background())
	model.ctx = ctx

	programOpts := append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	return &App{
		program: tea.NewProgram(model, programOpts...),
		model:   model,
		cancel:  cancel,
	}
}

// Run starts the TUI application and blocks until the user quits.
// In-flight fetches are canceled when it returns.
func (a *App) Run() error {
	defer a.cancel()

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	go func() {
		if _, ok := <-sigChan; ok {
			a.program.Send(tea.Quit())
		}
	}()

	final, err := a.program.Run()

	// Clean up signal handler
	signal.Stop(sigChan)
	close(sigChan)

	if m, ok := final.(Model); ok {
		a.model = m
	}
	return err
}

// SetTheme switches the running program to the named theme. It is safe to
// call from any goroutine, such as a config file watcher.
func (a *App) SetTheme(name string) {
	a.program.Send(themeChangedMsg{theme: styles.ThemeName(name)})
}

// Model returns the model as it was when Run returned.
func (a *App) Model() Model {
	return a.model
}
