package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/betterscore/scoreboard-service/internal/config"
	"github.com/betterscore/scoreboard-service/internal/logging"
	"github.com/betterscore/scoreboard-service/internal/server"
)

const (
	appName    = "scoreboard-service"
	appVersion = "dev"
)

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	envErr := godotenv.Load()

	logger := logging.NewLogger(logging.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		Service: appName,
		Version: appVersion,
	})
	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		logging.Warn(logger, "could not load .env file", "error", envErr)
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Error(logger, "invalid configuration", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, logger)
	srv.Run(ctx, stop)
}
