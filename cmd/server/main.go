// The server command runs the reference forum backend.
package main

import (
	"context"
	"time"

	"foro_backend/internal/config"
	authadapters "foro_backend/internal/feature/auth/adapters"
	pubadapters "foro_backend/internal/feature/publications/adapters"
	"foro_backend/internal/platform/db"
	jwtmw "foro_backend/internal/platform/jwt"
	"foro_backend/internal/server"
	"foro_backend/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		l := logger.Get()
		l.Fatal().Err(err).Msg("config load failed")
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel})

	if cfg.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET not set; authenticated routes will reject every request")
	}

	conn, err := db.Open(cfg.DBDriver, cfg.DBDSN, log)
	if err != nil {
		log.Fatal().Err(err).Msg("database open failed")
	}
	if err := db.Migrate(conn); err != nil {
		log.Fatal().Err(err).Msg("database migration failed")
	}

	users := authadapters.NewUserRepository(conn)
	pubs := pubadapters.NewPublicationRepository(conn)
	tokens := jwtmw.NewGenerator(cfg.JWTSecret, cfg.TokenTTL)

	r := server.NewRouter(
		server.NewAuthHandler(users, tokens, log),
		server.NewUserHandler(users, log),
		server.NewPublicationHandler(pubs, users, log),
		cfg.JWTSecret,
		server.NewLimiter(10, time.Minute),
	)

	log.Info().Str("addr", cfg.Addr).Msg("server listening")
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
