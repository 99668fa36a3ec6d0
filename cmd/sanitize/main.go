package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/supergoodsystems/supergood-sanitizer/cmd/sanitize/internal/commands"
)

func main() {
	// a missing .env file is fine
	_ = godotenv.Load()

	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
