// raycastmaze renders a grid maze in first person, Wolfenstein style.
//
// Usage:
//
//	raycastmaze              - Open the game window (same as play)
//	raycastmaze play         - Open the game window
//	raycastmaze tui          - Play inside the terminal
//	raycastmaze render       - Write one frame to a PNG file
//
// Global flags:
//
//	--config <path>  - Config file (default: config.yaml)
//	--map <path>     - Maze file (default: world.map_file from the config)
//	--verbose        - Debug logging
package main

import (
	"errors"
	"io/fs"
	"os"

	"raycastmaze/internal/config"
	"raycastmaze/internal/level"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig  string
	flagMap     string
	flagVerbose bool

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "maze",
	})
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "raycastmaze",
	Short: "Grid raycasting maze renderer",
	Long: `raycastmaze walks a grid maze in first person. Walls are textured
stripes cast one per screen column, keys and goals are billboards, and an
inset minimap shows the traced view rays.

Controls:
  W/S or Up/Down     - Move forward/back
  A/D or Left/Right  - Turn
  Q/E                - Strafe
  Mouse              - Look around (window only)
  M                  - Toggle the top-down view
  Tab                - Toggle the minimap
  F3                 - Toggle perf logging (window only)
  Esc                - Quit`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
	RunE:              runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "config.yaml", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagMap, "map", "", "Path to maze file (default: world.map_file)")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(renderCmd)
}

func setupLogging(cmd *cobra.Command, args []string) error {
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return nil
}

// loadConfig reads the config file. A missing file falls back to the
// built-in defaults; a malformed one is an error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(flagConfig)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warn("config file not found, using defaults", "path", flagConfig)
		cfg = config.Default()
		config.GlobalConfig = cfg
		return cfg, nil
	}
	return cfg, err
}

// loadLevel loads the config and the selected maze.
func loadLevel() (*config.Config, *level.Level, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	lvl, err := level.Load(cfg, flagMap, logger)
	if err != nil {
		return nil, nil, err
	}
	return cfg, lvl, nil
}
