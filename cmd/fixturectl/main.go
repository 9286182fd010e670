// Command fixturectl previews schedules and standings from local YAML files
// without a database or the HTTP API.
//
// Usage:
//
//	fixturectl schedule --file plan.yaml
//	fixturectl schedule --file plan.yaml --format json
//	fixturectl standings --file results.yaml
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/riskibarqy/matchday/internal/platform/logging"
)

func main() {
	_ = godotenv.Load()

	logger := logging.NewConsole(os.Stderr, logging.ParseLevel(os.Getenv("APP_LOG_LEVEL")))
	defer func() { _ = logger.Sync() }()

	if err := newRootCmd(logger, os.Stdout).Execute(); err != nil {
		logger.Error("fixturectl failed", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}
