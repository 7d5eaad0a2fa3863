package main

import (
	"bufio"
	"context"
	"log"
	"os"

	"github.com/ymiyake/enquete/internal/client/cli"
	"github.com/ymiyake/enquete/internal/client/client"
	"github.com/ymiyake/enquete/internal/client/config"
	"github.com/ymiyake/enquete/internal/client/flow"
	"github.com/ymiyake/enquete/internal/client/services"
	"github.com/ymiyake/enquete/internal/logging"
)

func main() {
	cfg := config.LoadConfig()
	if cfg.APIKey == "" || cfg.DatabaseURL == "" {
		log.Fatal("an API key (-k) and a database URL (-d) are required")
	}

	logger := logging.NewDefault()

	api := client.NewRESTClient(cfg.APIKey, cfg.AuthEndpoint, cfg.DatabaseURL, cfg.HTTPTimeout)
	auth := services.NewAuthService(api)
	survey := services.NewSurveyService(api)

	reader := bufio.NewReader(os.Stdin)
	view := cli.NewConsoleView(reader, os.Stdout)

	opts := flow.Options{DefaultEmail: cfg.DefaultEmail, DefaultPassword: cfg.DefaultPassword}
	ctrl := flow.New(auth, survey, view, opts, logger)

	app := cli.NewApp(ctrl, reader, os.Stdout)
	if err := app.Run(context.Background()); err != nil {
		os.Exit(1)
	}
}
