package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli"
	"github.com/valerio/go-chip8/chip8"
	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/backend/sdl2"
	"github.com/valerio/go-chip8/chip8/backend/terminal"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		slog.Error("Error running emulator", "error", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "chip8"
	app.Description = "A CHIP-8 emulator frontend"
	app.Usage = "chip8 <program file>"
	app.ArgsUsage = "<program file>"
	app.Version = "1.0.0"
	app.Action = runEmulator
	return app
}

func runEmulator(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.ShowAppHelp(c)
	}
	path := c.Args().Get(0)

	rom, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read program: %w", err)
	}
	slog.Info("Loaded program", "path", path, "bytes", len(rom))

	machine := chip8.NewPatternMachine()
	if err := machine.Load(rom); err != nil {
		return fmt.Errorf("failed to load program: %w", err)
	}

	config := chip8.DefaultConfig()
	host, err := initHost(config, machine, sdl2.New(), terminal.New())
	if err != nil {
		return err
	}
	defer func() {
		if err := host.Cleanup(); err != nil {
			slog.Warn("Cleanup failed", "error", err)
		}
	}()

	return host.Run()
}

// initHost starts the host on the primary backend. The fallback is only used
// when the binary was built without SDL2; any other startup failure is fatal.
func initHost(config chip8.Config, machine chip8.Machine, primary, fallback backend.Backend) (*chip8.Host, error) {
	host := chip8.New(config, machine, primary)
	err := host.Init()
	if err == nil {
		return host, nil
	}
	if !errors.Is(err, sdl2.ErrNotAvailable) {
		return nil, err
	}
	slog.Warn("SDL2 backend unavailable, falling back to terminal", "error", err)

	host = chip8.New(config, machine, fallback)
	if err := host.Init(); err != nil {
		return nil, err
	}
	return host, nil
}
