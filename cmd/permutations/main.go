package main

import (
	"fmt"
	"os"
	"path/filepath"

	app "github.com/rocketscienceinc/tictactoe-console/internal"
	"github.com/rocketscienceinc/tictactoe-console/internal/config"
)

// main - prints consecutive permutations of 1..N in lexicographic order.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	conf := initConfig()
	logger := app.NewLogger(conf.LogLevel, os.Stderr)

	if err := app.RunPermutations(logger, conf, os.Stdout); err != nil {
		panic(fmt.Errorf("permutations run failed: %w", err))
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
