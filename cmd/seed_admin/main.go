// seed_admin crea el primer usuario administrador. Es idempotente: si el email ya
// existe no hace nada.
//
// Uso: ADMIN_EMAIL=... ADMIN_PASSWORD=... go run ./cmd/seed_admin [-nombre "Administrador"]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/Taller-api/internal/application/auth"
	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Taller-api/pkg/config"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

func main() {
	nombre := flag.String("nombre", "Administrador", "nombre del administrador")
	email := flag.String("email", os.Getenv("ADMIN_EMAIL"), "email del administrador (ADMIN_EMAIL)")
	password := flag.String("password", os.Getenv("ADMIN_PASSWORD"), "contraseña inicial (ADMIN_PASSWORD)")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "ADMIN_EMAIL y ADMIN_PASSWORD son requeridos")
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

	authUC := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.Security.BcryptCost, log)

	user, err := authUC.Register(ctx, dto.RegisterRequest{
		Nombre:   *nombre,
		Email:    *email,
		Password: *password,
		Role:     entity.RoleAdmin,
	})
	switch {
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		log.Info().Str("email", *email).Msg("el administrador ya existe")
	case err != nil:
		pool.Close()
		log.Fatal().Err(err).Msg("crear administrador")
	default:
		log.Info().Str("id", user.ID).Str("email", user.Email).Msg("administrador creado")
	}
}
