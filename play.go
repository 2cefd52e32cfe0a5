package main

import (
	"fmt"

	"raycastmaze/internal/game"
	"raycastmaze/internal/terminal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the game window",
	Args:  cobra.NoArgs,
	RunE:  runPlay,
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Play inside the terminal",
	Long: `Render the maze into the terminal. Every character cell shows two
pixels stacked vertically, so a truecolor terminal gives the best result.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, lvl, err := loadLevel()
	if err != nil {
		return err
	}
	logger.Info("opening window", "size", fmt.Sprintf("%dx%d", cfg.GetScreenWidth(), cfg.GetScreenHeight()), "mode", cfg.Raycast.Mode, "workers", cfg.Raycast.Workers)
	return game.Run(cfg, lvl, logger.WithPrefix("game"))
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, lvl, err := loadLevel()
	if err != nil {
		return err
	}
	// The terminal owns stdout/stderr while the session runs
	logger.SetLevel(log.ErrorLevel)
	return terminal.Run(cfg, lvl, logger.WithPrefix("tui"))
}
