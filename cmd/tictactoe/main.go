package main

import (
	"fmt"
	"os"
	"path/filepath"

	app "github.com/rocketscienceinc/tictactoe-console/internal"
	"github.com/rocketscienceinc/tictactoe-console/internal/config"
)

// main - is the entry point of the console game. It initializes the configuration, logger, and runs one session.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	conf := initConfig()
	logger := app.NewLogger(conf.LogLevel, os.Stderr)

	if err := app.RunGame(logger, conf, os.Stdin, os.Stdout); err != nil {
		logger.Error("game failed", "error", err)
		os.Exit(1)
	}
}

// initialize config.
func initConfig() *config.Config {
	baseDir, err := os.Getwd()
	if err != nil {
		panic(fmt.Errorf("failed to get current directory: %w", err))
	}

	return config.MustLoad(filepath.Join(baseDir, "config.yml"))
}
