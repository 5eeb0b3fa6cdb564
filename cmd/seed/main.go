// seed carga un catálogo YAML (bodegas, productos y stock inicial) en el almacenamiento
// configurado (STORE_DRIVER) y ejecuta una pasada de reconciliación de alertas.
//
// Uso: go run ./cmd/seed [ruta/catalog.yaml]
// Por defecto busca catalog.yaml en el directorio actual.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/catalog"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/storage"
	"github.com/jhoicas/stock-ledger/pkg/config"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

func main() {
	path := "catalog.yaml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	if cfg.Store.Driver == config.StoreDriverMemory {
		fmt.Fprintln(os.Stderr, "STORE_DRIVER=memory no persiste; use postgres o file")
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Named("seed")

	c, err := catalog.Load(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("catálogo inválido")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	backend, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer backend.Close()

	if err := catalog.Apply(ctx, backend.TxRunner, c, time.Now().UTC()); err != nil {
		log.Fatal().Err(err).Msg("aplicar catálogo")
	}
	alerts, err := inventory.NewAlertReconciler(backend.TxRunner, log).ReconcileAlerts(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("reconciliar alertas")
	}

	log.Info().
		Int("warehouses", len(c.Warehouses)).
		Int("products", len(c.Products)).
		Int("stock_lines", len(c.Stock)).
		Int("alerts", len(alerts)).
		Msg("catálogo cargado")
}
