package main

import (
	"context"
	"os"

	"spotfinder/internal/config"
	"spotfinder/internal/logging"
	"spotfinder/internal/repository"

	"github.com/rs/zerolog/log"
)

//	@title			SpotFinder API
//	@version		1.0
//	@description	Look up, add, move and delete named map locations.
//	@BasePath		/

func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logging.Setup(config.LogLevel, false, os.Stderr)

	// Location store
	repo, err := repository.Open(context.Background(), repository.Options{Path: config.DBPath})
	if err != nil {
		log.Fatal().Err(err).Str("path", config.DBPath).Msg("cannot open location store")
	}
	defer repo.Close()

	r := newRouter(config, repo)

	log.Info().Str("address", config.ServerAddress).Msg("starting server")
	if err := r.Run(config.ServerAddress); err != nil {
		log.Error().Err(err).Msg("server stopped")
	}
}
