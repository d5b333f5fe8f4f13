package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	args := os.Args[1:]

	var cli CLI
	parser, err := newParser(&cli, configCandidates(findUserConfig(args))...)
	if err != nil {
		panic(err)
	}
	_, err = parser.Parse(args)
	parser.FatalIfErrorf(err)

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "campus",
	})
	level, err := log.ParseLevel(cli.LogLevel)
	if err != nil {
		logger.Fatal("bad log level", "level", cli.LogLevel, "error", err)
	}
	logger.SetLevel(level)

	if cli.BaseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	w, h := ebiten.Monitor().Size()
	ebiten.SetWindowSize(w*3/4, h*3/4)
	ebiten.SetWindowTitle("campus")

	game, err := NewGame(cli.options(), logger)
	if err != nil {
		logger.Fatal("failed to start", "error", err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		logger.Error("game exited", "error", err)
		game.Close()
		os.Exit(1)
	}
}
