package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/barefootbuddy/backend/internal/config"
	"github.com/barefootbuddy/backend/internal/handler"
	"github.com/barefootbuddy/backend/internal/model/festival"
	locationmodel "github.com/barefootbuddy/backend/internal/model/location"
	"github.com/barefootbuddy/backend/internal/realtime"
	"github.com/barefootbuddy/backend/internal/service/ai"
	chatservice "github.com/barefootbuddy/backend/internal/service/chat"
	locationservice "github.com/barefootbuddy/backend/internal/service/location"
	"github.com/barefootbuddy/backend/internal/service/search"
	"github.com/barefootbuddy/backend/internal/service/tools"
	weatherservice "github.com/barefootbuddy/backend/internal/service/weather"
	"github.com/barefootbuddy/backend/internal/store/postgres"
	"github.com/barefootbuddy/backend/internal/store/redislive"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	if err := godotenv.Load(); err != nil {
		log.WithError(err).Warn("no .env file loaded, continuing with system environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	store, err := postgres.Open(cfg.Database.DSN)
	if err != nil {
		log.WithError(err).Fatal("failed to open durable store")
	}

	if err := store.ReplaceArtists(ctx, festival.Seed()); err != nil {
		log.WithError(err).Fatal("failed to seed festival lineup")
	}
	log.WithField("artists", len(festival.Seed())).Info("festival lineup seeded")

	// The Redis mirror is optional; group reads fall back to Postgres
	// without it.
	var live locationmodel.LiveStore
	if cfg.Redis.Enabled() {
		liveStore, err := redislive.New(cfg.Redis.URL)
		if err != nil {
			log.WithError(err).Warn("live store unavailable, group reads will hit postgres")
		} else {
			live = liveStore
			log.Info("live location store connected")
		}
	} else {
		log.Info("REDIS_URL not set, skipping live location store")
	}

	hub := realtime.NewHub()
	locationSvc := locationservice.NewService(store, live, hub)
	weatherSvc := weatherservice.NewService(cfg.Weather)
	searchSvc := search.NewService(cfg.Search)
	toolRegistry := tools.NewRegistry(weatherSvc, locationSvc, searchSvc)

	// Without Ark credentials the bot still answers, via the fallback.
	var provider chatservice.CompletionProvider
	if cfg.AI.Enabled() {
		aiSvc, err := ai.NewService(ctx, cfg.AI, toolRegistry.Infos())
		if err != nil {
			log.WithError(err).Warn("failed to initialize completion provider, chat will serve fallbacks")
		} else {
			provider = aiSvc
			log.Info("completion provider initialized")
		}
	} else {
		log.Warn("ark credentials not configured, chat will serve fallbacks")
	}

	chatSvc := chatservice.NewService(store, provider, toolRegistry)

	router := handler.NewRouter(chatSvc, locationSvc, weatherSvc, store, hub)
	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.WithField("addr", serverCfg.Addr).Info("Barefoot Buddy backend listening")
	if err := runServer(ctx, srv); err != nil {
		log.WithError(err).Fatal("server error")
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
