package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/dunelark/tunecast/internal/player"
	"github.com/dunelark/tunecast/internal/server"
	"github.com/dunelark/tunecast/internal/shared"
	"github.com/dunelark/tunecast/internal/store"
	"github.com/dunelark/tunecast/internal/ui"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config *shared.Config
	logger *log.Logger
	output io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	Logger *log.Logger
	Output io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	return &Runner{config: opts.Config, logger: opts.Logger, output: opts.Output}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		serveCommand, connectCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}
	return commands
}

// loadConfig reloads configuration from the --config flag when the file
// exists, falling back to the config the Runner was built with.
func (r *Runner) loadConfig(cmd *cli.Command) *shared.Config {
	path := cmd.String("config")
	if path == "" {
		return r.config
	}
	config, err := shared.LoadConfig(path)
	if err != nil {
		r.logger.Warn("could not load config, using defaults", "path", path, "err", err)
		return r.config
	}
	return config
}

// Serve boots the catalogue store and the playback controller, then serves
// the command protocol until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("verbose") {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}
	config := r.loadConfig(cmd)

	catalogue := store.NewFileStore(config.Library, shared.WithLogger(r.logger, "component", "store"))
	controller := player.NewController(
		player.LogOutput{Logger: shared.WithLogger(r.logger, "component", "player")},
		shared.WithLogger(r.logger, "component", "player"),
	)
	srv := server.New(config, catalogue, controller, shared.WithLogger(r.logger, "component", "server"))

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-sigCtx.Done()
		if err := srv.Shutdown(); err != nil {
			r.logger.Error("shutdown failed", "err", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, shared.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Connect runs the interactive console client against the configured server.
func (r *Runner) Connect(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)
	addr := cmd.String("addr")
	if addr == "" {
		addr = config.Server.Addr()
	}
	return ui.Run(addr)
}

// Setup writes the example config and creates the library directories so a
// fresh checkout can serve immediately.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")
	if err := shared.CreateConfigFile(path); err != nil {
		r.logger.Warn("config file not created", "path", path, "err", err)
	} else {
		fmt.Fprintf(r.output, "Created %s\n", path)
	}

	config := r.loadConfig(cmd)
	for _, dir := range []string{
		config.Library.SongsDir,
		config.Library.DataDir,
		config.Library.PlaylistsDir(),
	} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
		fmt.Fprintf(r.output, "Created %s\n", dir)
	}
	return nil
}
