package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/aghannam/manassa/internal/admin/cli"
	"github.com/aghannam/manassa/internal/config"
	"github.com/aghannam/manassa/internal/logging"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}
	defer app.Close()

	app.Run(ctx)
}
