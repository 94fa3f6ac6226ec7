package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"mp3-to-text/cmd/m2t/cmd"
	"mp3-to-text/internal/config"

	// Import engines to register them
	_ "mp3-to-text/internal/app/api/gemini"
	_ "mp3-to-text/internal/app/api/google"
	_ "mp3-to-text/internal/app/api/openai/whisper"
)

func main() {
	// A missing .env is fine; a broken one is only worth a warning.
	if _, err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "⚠️  Configuration Warning: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cmd.Execute(ctx)
	stop()
	os.Exit(code)
}
