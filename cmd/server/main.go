package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-brainstorm/internal/config"
	"github.com/MKhiriev/go-brainstorm/internal/crypto"
	"github.com/MKhiriev/go-brainstorm/internal/handler"
	"github.com/MKhiriev/go-brainstorm/internal/logger"
	"github.com/MKhiriev/go-brainstorm/internal/server"
	"github.com/MKhiriev/go-brainstorm/internal/service"
	"github.com/MKhiriev/go-brainstorm/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("brainstorm-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = cfg.ValidateServer(); err != nil {
		log.Fatal().Err(err).Msg("invalid server configs")
	}

	if cfg.App.Version == "" {
		cfg.App.Version = buildVersion
	}

	ctx := context.Background()

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	codec, err := crypto.NewFieldCodec(cfg.App.EncryptionKey)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating field codec")
	}

	storages := store.NewStorages(db, log)

	services, err := service.NewServices(ctx, storages, *cfg, codec, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
