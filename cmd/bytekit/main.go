package main

import (
	"os"

	"bytekit/internal/cli"
	"bytekit/internal/config"
	"bytekit/internal/modules"
	"bytekit/pkg/logger"
)

func main() {
	// Parse global flags (lightweight) and strip them from args
	globals, args := cli.ParseGlobals(os.Args)

	// Initialize logging
	logger.Initialize(globals.Verbose, globals.Debug)
	defer logger.Close()

	handler := cli.NewErrorHandler(globals.Verbose, globals.Debug)
	// Install a panic recoverer to avoid raw panics
	var ph cli.PanicHandler
	defer ph.Recover()

	cfg, err := config.Load(globals.ConfigPath)
	if err != nil {
		// Run with built-in defaults; a broken config never blocks a command
		handler.Warn(err)
		cfg = nil
	}
	cli.ApplyColor(globals, cfg)

	app := cli.New(modules.NewRegistry(), cfg)
	if err := app.Run(args); err != nil {
		handler.Handle(err)
	}
}
