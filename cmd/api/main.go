package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"hostel_pms/internal/adapters/genai"
	server "hostel_pms/internal/adapters/http_server"
	"hostel_pms/internal/adapters/observability"
	redisad "hostel_pms/internal/adapters/redis"
	"hostel_pms/internal/adapters/tokens"
	"hostel_pms/internal/app"
	"hostel_pms/internal/domain"
	"hostel_pms/internal/shared"
	"hostel_pms/internal/storage/memory"
	mysqlrepo "hostel_pms/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	observability.Serve(cfg.MetricsAddr)

	// state
	store := memory.NewSeeded()

	gw, err := genai.Select(cfg.AIBase, cfg.AIKey, genai.Options{
		TextModel:      cfg.AITextModel,
		ImageModel:     cfg.AIImageModel,
		RPS:            cfg.AIRPS,
		MaxConcurrency: cfg.AIMaxConcurrency,
		Timeout:        cfg.AITimeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("ai gateway")
	}
	log.Info().Str("mode", gw.Mode()).Msg("ai gateway ready")

	sessions := openSessions(ctx, cfg)
	audit, closeAudit := openAudit(ctx, cfg)
	defer closeAudit()

	// deps
	tk := tokens.NewService(cfg.JWTSecret, cfg.SessionTTL)
	h := &server.Handlers{
		Store:  store,
		Auth:   app.NewAuthService(store, sessions, tk, cfg.SessionTTL),
		Desk:   app.NewFrontDesk(store),
		Office: app.NewBackOffice(store),
		AI:     app.NewAssistant(store, gw, audit),
	}

	// http
	srv := server.New(server.Options{
		CORSOrigins:    cfg.CORSOrigins,
		RequestTimeout: cfg.AITimeout + 5*time.Second,
	})
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(h)

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
}

// openSessions uses Redis when REDIS_ADDR is set and the server answers,
// otherwise sessions live in process memory.
func openSessions(ctx context.Context, cfg shared.Config) domain.SessionStore {
	if cfg.RedisAddr == "" {
		log.Info().Msg("sessions kept in memory")
		return memory.NewSessions()
	}
	rs := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rs.Ping(pingCtx); err != nil {
		log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("redis ping failed")
	}
	log.Info().Str("addr", cfg.RedisAddr).Msg("sessions kept in redis")
	return rs
}

// openAudit records AI invocations in MySQL when MYSQL_DSN is set.
func openAudit(ctx context.Context, cfg shared.Config) (domain.InvocationLog, func()) {
	if cfg.MySQLDSN == "" {
		return mysqlrepo.Nop{}, func() {}
	}
	db, err := mysqlrepo.Open(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("open mysql")
	}
	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	repo := mysqlrepo.New(db)
	if err := repo.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("migrate ai_invocations")
	}
	log.Info().Msg("database connection ok")
	return repo, func() { _ = db.Close() }
}
