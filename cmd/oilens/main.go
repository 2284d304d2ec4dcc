// OILens - Trading Log Extraction Tool
//
// OILens is a batch extraction tool that turns intraday trading logs into
// time-ordered series of ATM option open interest and strike selections.
package main

import (
	"os"

	"github.com/joho/godotenv"

	"oilens/internal/cli"
	"oilens/pkg/logger"
)

func main() {
	// Load environment variables from .env if present
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.GetLogger().WithError(err).Warn("Error loading .env file")
	}

	os.Exit(cli.Execute())
}
