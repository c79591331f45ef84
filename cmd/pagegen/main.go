// Command pagegen builds page drafts from the terminal: it prints templates,
// the block catalog and prompts, and runs or replays generations.
package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/momentouslyfe-web/funnelcart-sub001/pkg/logger"
)

func main() {
	logger.Init()
	logger.Logger.SetOutput(os.Stderr)
	_ = godotenv.Load()

	if err := newApp().Run(os.Args); err != nil {
		logger.Error(err, "pagegen failed", nil)
		os.Exit(1)
	}
}
