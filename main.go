package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"artpulse-app/config"
	"artpulse-app/database"
	artworksapi "artpulse-app/internal/api/artworks"
	authapi "artpulse-app/internal/api/auth"
	curatorapi "artpulse-app/internal/api/curator"
	exhibitionsapi "artpulse-app/internal/api/exhibitions"
	viewsapi "artpulse-app/internal/api/views"
	routes "artpulse-app/internal/app/http"
	"artpulse-app/internal/app/jobs"
	"artpulse-app/internal/curation"
	"artpulse-app/internal/domain/works"
	"artpulse-app/internal/gallery"
	"artpulse-app/internal/infra/gemini"
	"artpulse-app/internal/infra/logging"
	"artpulse-app/internal/infra/storage"
	"artpulse-app/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/pflag"
)

const (
	curationLockTTL = 5 * time.Minute
	curationTimeout = 3 * time.Minute
)

func main() {
	fs := config.NewFlagSet(os.Args[0])
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := run(fs); err != nil {
		slog.Error("artpulse stopped", "error", err)
		os.Exit(1)
	}
}

func run(fs *pflag.FlagSet) error {
	if err := config.LoadEnv(fs); err != nil {
		return err
	}

	logger := logging.New(os.Stderr, config.LOG_LEVEL, config.LOG_FORMAT)
	slog.SetDefault(logger)
	gin.SetMode(config.GIN_MODE)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var rdb *redis.Client
	if config.REDIS_URL != "" {
		opts, err := redis.ParseURL(config.REDIS_URL)
		if err != nil {
			return fmt.Errorf("parse REDIS_URL: %w", err)
		}
		rdb = redis.NewClient(opts)
		defer rdb.Close()
	}

	backend, err := openBackend(rdb)
	if err != nil {
		return err
	}

	seed, err := works.DefaultSeed(time.Now())
	if err != nil {
		return err
	}
	st := store.New(backend, seed, logger)

	var gen curation.Generator
	if config.API_KEY != "" {
		client, err := gemini.NewClient(ctx, gemini.Config{
			APIKey:  config.API_KEY,
			Model:   config.GEMINI_MODEL,
			BaseURL: config.GEMINI_BASE_URL,
			Timeout: config.GEMINI_TIMEOUT,
		})
		if err != nil {
			return err
		}
		gen = client
		logger.Info("curation enabled", "model", client.Model())
	} else {
		logger.Warn("API_KEY is not set; curation requests will fail")
	}
	requester := curation.NewRequester(gen, logger)

	var locker gallery.Locker = &gallery.LocalLocker{}
	if rdb != nil {
		locker = gallery.NewRedisLocker(rdb, config.STORE_KEY_PREFIX+":curation-lock", curationLockTTL, logger)
	}

	g := gallery.New(st, requester, locker, gallery.Options{MaxImageBytes: config.MAX_IMAGE_BYTES}, logger)
	snap, err := g.Reload(ctx)
	if err != nil {
		return err
	}
	logger.Info("gallery loaded", "artworks", len(snap.Artworks), "exhibitions", len(snap.Exhibitions))

	if config.CURATION_SCHEDULE != "" {
		c, err := jobs.Schedule(config.CURATION_SCHEDULE, jobs.NewCurationJob(g, curationTimeout, logger))
		if err != nil {
			return err
		}
		c.Start()
		defer c.Stop()
		logger.Info("scheduled curation enabled", "schedule", config.CURATION_SCHEDULE)
	}

	r := gin.Default()

	// ✅ Add CORS middleware BEFORE registering routes
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, routes.Handlers{
		Artworks:    artworksapi.NewHandler(g, logger),
		Exhibitions: exhibitionsapi.NewHandler(g, logger),
		Views:       viewsapi.NewHandler(g),
		Curator:     curatorapi.NewHandler(g, logger),
		Auth:        authapi.NewHandler(config.CURATOR_PASSWORD_HASH, config.JWT_SECRET, logger),
		JWTSecret:   config.JWT_SECRET,
		// base64 inflates an image by a third
		MaxBodyBytes: int64(config.MAX_IMAGE_BYTES)*4/3 + 64<<10,
	})

	srv := &http.Server{Addr: ":" + config.PORT, Handler: r}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}()

	logger.Info("listening", "port", config.PORT, "store", config.STORE_BACKEND)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func openBackend(rdb *redis.Client) (storage.Backend, error) {
	switch config.STORE_BACKEND {
	case "memory":
		return storage.NewMemoryBackend(), nil
	case "redis":
		if rdb == nil {
			return nil, errors.New("redis backend needs REDIS_URL")
		}
		return storage.NewRedisBackend(rdb, config.STORE_KEY_PREFIX), nil
	default:
		if err := database.InitDB(config.STORE_BACKEND, config.DB_URL); err != nil {
			return nil, err
		}
		return storage.NewGormBackend(database.DB), nil
	}
}
