// The app command wires the client core end to end: local store, remote
// gateway, form containers and the admin console, then tails the
// publication feed until interrupted.
package main

import (
	"context"
	"os/signal"
	"syscall"

	redisv9 "github.com/redis/go-redis/v9"

	"foro_backend/internal/app/di"
	"foro_backend/internal/config"
	adminusecase "foro_backend/internal/feature/admin/usecase"
	authadapters "foro_backend/internal/feature/auth/adapters"
	authusecase "foro_backend/internal/feature/auth/usecase"
	"foro_backend/internal/feature/forms"
	pubadapters "foro_backend/internal/feature/publications/adapters"
	pubusecase "foro_backend/internal/feature/publications/usecase"
	"foro_backend/internal/platform/db"
	platformhttp "foro_backend/internal/platform/http"
	"foro_backend/internal/platform/remote"
	"foro_backend/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		l := logger.Get()
		l.Fatal().Err(err).Msg("config load failed")
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel})

	// Local store.
	conn, err := db.Open(cfg.DBDriver, cfg.DBDSN, log)
	if err != nil {
		log.Fatal().Err(err).Msg("database open failed")
	}
	if err := db.Migrate(conn); err != nil {
		log.Fatal().Err(err).Msg("database migration failed")
	}

	// Remote gateway.
	gateway := remote.NewClient(
		remote.Config{BaseURL: cfg.Remote.BaseURL, Timeout: cfg.Remote.Timeout},
		platformhttp.NewClient(cfg.Remote.Timeout),
		log,
	)

	// Optional redis cache in front of the remote user directory.
	var rdb *redisv9.Client
	if cfg.RedisAddr != "" {
		rdb = redisv9.NewClient(&redisv9.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis unavailable, directory cache disabled")
			rdb = nil
		} else {
			defer rdb.Close()
		}
	}
	directory, invalidator := di.NewDirectory(rdb, gateway, cfg.CacheTTL, log)

	// Session and content services over the local store.
	authSvc := authusecase.NewService(authadapters.NewUserRepository(conn), log)
	pubSvc := pubusecase.NewService(pubadapters.NewPublicationRepository(conn), log)

	// Form containers.
	registerForm := forms.NewRegisterForm(di.NewRegistrar(authSvc))
	loginForm := forms.NewLoginForm(di.NewAuthenticator(authSvc))
	createForm := forms.NewAdminCreateForm(di.NewAccountCreator(gateway, invalidator))

	watch := func(name string, f interface{ OnStatus(func(forms.Status)) }) {
		f.OnStatus(func(s forms.Status) {
			log.Info().Str("form", name).Stringer("state", s.State).Str("message", s.Message).Msg("form status")
		})
	}
	watch("register", registerForm)
	watch("login", loginForm)
	watch("create", createForm)

	console := adminusecase.NewConsole(directory, createForm, log)
	console.LoadUsers(ctx)

	feed, err := pubSvc.Subscribe(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("feed subscription failed")
	}
	log.Info().Msg("client core ready, tailing publication feed")
	for snapshot := range feed {
		log.Info().Int("publications", len(snapshot)).Msg("feed snapshot")
	}
}
