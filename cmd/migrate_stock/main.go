// Comando migrate_stock mueve la cantidad guardada en productos (modelo anterior)
// al ledger de stock. Se puede correr varias veces.
package main

import (
	"context"
	"os"
	"time"

	"github.com/jhoicas/wms-catalog/internal/application/catalog"
	"github.com/jhoicas/wms-catalog/internal/bootstrap"
	"github.com/jhoicas/wms-catalog/pkg/config"
	"github.com/jhoicas/wms-catalog/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "migrate_stock"})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	store, err := bootstrap.OpenStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer store.Close()

	res, err := catalog.NewLegacyMigration(store.Legacy, store.Stock, store.Warehouses).Run(ctx)
	if err != nil {
		log.Error().Err(err).Int("migrated", res.Migrated).Msg("migración interrumpida")
		store.Close()
		cancel()
		os.Exit(1)
	}
	log.Info().
		Int("migrated", res.Migrated).
		Int("skipped", res.Skipped).
		Int("invalid", res.Invalid).
		Msg("migración de stock terminada")
}
