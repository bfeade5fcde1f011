package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/storelab/shopfront/internal/api"
	"github.com/storelab/shopfront/internal/cart"
	"github.com/storelab/shopfront/internal/cli"
	"github.com/storelab/shopfront/internal/config"
	"github.com/storelab/shopfront/internal/session"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to config.yaml (defaults to the user config dir)")
		envFile    = flag.String("env", ".env", "path to an optional .env file")
		logLevel   = flag.String("log-level", "", "override log level (debug|info|warn|error)")
	)
	flag.Parse()

	// A .env file is a local development convenience only.
	_ = godotenv.Load(*envFile)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal(err)
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	tokenPath := cfg.TokenPath
	if tokenPath == "" {
		tokenPath, err = session.DefaultTokenPath()
		if err != nil {
			// No config dir available; the session lives in memory only.
			tokenPath = ""
		}
	}
	var storage session.TokenStorage
	if tokenPath != "" {
		storage = session.NewFileStorage(tokenPath)
	}
	sessions := session.NewStore(storage)

	client, err := api.New(api.Config{
		BaseURL:     cfg.BaseURL,
		HTTPClient:  &http.Client{Timeout: cfg.Timeout},
		TokenSource: sessions,
		Logger:      &log,
	})
	if err != nil {
		fatal(err)
	}
	client.SubscribeUnauthorized(sessions)

	app := &cli.App{
		API:     client,
		Session: sessions,
		Cart:    cart.NewStore(client, sessions),
		Out:     os.Stdout,
		Log:     log,
	}

	if err := app.Run(context.Background(), flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "✗ %s\n", cli.Message(err))
		os.Exit(1)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "shopfront: %v\n", err)
	os.Exit(1)
}
