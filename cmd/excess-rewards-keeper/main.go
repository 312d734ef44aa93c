package main

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/pyefi/excess-rewards-keeper/cmd/excess-rewards-keeper/cli"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("failed to load .env file")
	}
}

func main() {
	ctx := log.Logger.WithContext(context.Background())

	if err := cli.Setup(ctx); err != nil {
		log.Fatal().Err(err).Msg("excess-rewards-keeper failed")
	}
}
