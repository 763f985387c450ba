// migrate aplica las migraciones SQL embebidas con goose.
//
// Uso: go run ./cmd/migrate [up|down|status|version|redo|reset] [args...]
// Sin argumentos ejecuta "up". Lee la conexión de las mismas variables que la API.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/Taller-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Taller-api/pkg/config"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

var commands = map[string]bool{
	"up": true, "down": true, "status": true, "version": true, "redo": true, "reset": true,
}

func main() {
	command := "up"
	var args []string
	if len(os.Args) > 1 {
		command = os.Args[1]
		args = os.Args[2:]
	}
	if !commands[command] {
		fmt.Fprintf(os.Stderr, "Comando desconocido %q (up, down, status, version, redo, reset)\n", command)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool, command, args...); err != nil {
		pool.Close()
		log.Fatal().Err(err).Str("command", command).Msg("migración fallida")
	}
	log.Info().Str("command", command).Msg("migración completada")
}
