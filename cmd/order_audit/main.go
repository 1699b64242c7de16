// order_audit revisa las columnas de orden del catálogo buscando centinelas que quedaron
// tras un intercambio incompleto, órdenes repetidos y valores fuera de rango.
//
// Uso: go run ./cmd/order_audit [-fix]
// Con -fix cada centinela se mueve al final de su lista. Sale con código 1 si quedan hallazgos sin reparar.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/cardapio-api/internal/application/reorder"
	"github.com/jhoicas/cardapio-api/internal/infrastructure/postgres"
	"github.com/jhoicas/cardapio-api/pkg/config"
	"github.com/jhoicas/cardapio-api/pkg/logger"
)

func main() {
	fix := flag.Bool("fix", false, "mover los centinelas al final de su lista")
	timeout := flag.Duration("timeout", 2*time.Minute, "tiempo máximo de la auditoría")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB, log.Component("postgres"))
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	findings, err := reorder.Audit(ctx, postgres.NewOrderStore(pool), *fix, log.Component("order_audit"))
	pending := 0
	for _, f := range findings {
		fmt.Println(f)
		if !f.Fixed {
			pending++
		}
	}
	if err != nil {
		log.Error().Err(err).Msg("auditoría interrumpida")
		pool.Close()
		os.Exit(1)
	}

	log.Info().Int("hallazgos", len(findings)).Int("pendientes", pending).Bool("fix", *fix).Msg("auditoría terminada")
	if pending > 0 {
		pool.Close()
		os.Exit(1)
	}
}
