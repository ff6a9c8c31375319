package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	database "github.com/gnkhotels/go-hotel-curation/app/db"
	"github.com/gnkhotels/go-hotel-curation/app/observability/metrics"
	"github.com/gnkhotels/go-hotel-curation/app/tracer"
	"github.com/gnkhotels/go-hotel-curation/config"
	"github.com/gnkhotels/go-hotel-curation/internal/api/articles"
	"github.com/gnkhotels/go-hotel-curation/internal/api/auth"
	"github.com/gnkhotels/go-hotel-curation/internal/api/groups"
	"github.com/gnkhotels/go-hotel-curation/internal/api/hotels"
	"github.com/gnkhotels/go-hotel-curation/internal/api/media"
	"github.com/gnkhotels/go-hotel-curation/internal/api/pricetags"
	"github.com/gnkhotels/go-hotel-curation/internal/api/restaurants"
	"github.com/gnkhotels/go-hotel-curation/internal/api/searchterms"
	"github.com/gnkhotels/go-hotel-curation/internal/api/seo"
	"github.com/gnkhotels/go-hotel-curation/internal/api/suggest"
	"github.com/gnkhotels/go-hotel-curation/internal/api/tags"
	"github.com/gnkhotels/go-hotel-curation/internal/router"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		slog.Warn("No .env file found, relying on environment variables")
	}

	cfg, err := config.InitConfig()
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	var handler slog.Handler
	if cfg.Mode == "development" {
		handler = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
		})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	log := slog.New(handler)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbCfg, err := database.NewDatabaseConfig(&cfg, log)
	if err != nil {
		log.Error("Failed to build database config", slog.Any("error", err))
		os.Exit(1)
	}
	if err := database.RunMigrations(dbCfg.ConnectionURL, log); err != nil {
		log.Error("Failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	pool, err := database.Init(dbCfg.ConnectionURL, log)
	if err != nil {
		log.Error("Failed to initialize database pool", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if !database.WaitForDB(ctx, pool, log) {
		log.Error("Database is unreachable")
		os.Exit(1)
	}

	tracer.InitTracingAndMetrics()
	metrics.InitAppMetrics()

	hotelRepo := hotels.NewPostgresHotelRepo(pool, log)
	hotelService := hotels.NewService(hotelRepo, log)
	hotelHandler := hotels.NewHandler(hotelService, log)

	groupRepo := groups.NewPostgresGroupRepo(pool, log)
	groupService := groups.NewService(groupRepo, log)
	groupHandler := groups.NewHandler(groupService, log)

	tagRepo := tags.NewPostgresTagRepo(pool, log)
	tagService := tags.NewService(tagRepo, log)
	tagHandler := tags.NewHandler(tagService, log)

	priceTagRepo := pricetags.NewPostgresPriceTagRepo(pool, log)
	priceTagService := pricetags.NewService(priceTagRepo, log)
	priceTagHandler := pricetags.NewHandler(priceTagService, log)

	searchTermRepo := searchterms.NewPostgresSearchTermRepo(pool, log)
	searchTermService := searchterms.NewService(searchTermRepo, log)
	searchTermHandler := searchterms.NewHandler(searchTermService, log)

	articleRepo := articles.NewPostgresArticleRepo(pool, log)
	articleService := articles.NewService(articleRepo, log)
	articleHandler := articles.NewHandler(articleService, log)

	restaurantRepo := restaurants.NewPostgresRestaurantRepo(pool, log)
	restaurantService := restaurants.NewService(restaurantRepo, log)
	restaurantHandler := restaurants.NewHandler(restaurantService, log)

	suggestService := suggest.NewService(hotelRepo, tagRepo, log)
	suggestHandler := suggest.NewHandler(suggestService, log)

	mediaClient := media.NewClient(cfg.Storage.BaseURL, cfg.Storage.ServiceKey, log)
	mediaHandler := media.NewHandler(mediaClient, cfg.Storage.ImageBucket, cfg.Storage.VideoBucket, log)

	seoHandler := seo.NewHandler(cfg.SiteBaseURL, hotelRepo, log)

	authRepo := auth.NewPostgresAuthRepo(pool, log)
	authService := auth.NewService(authRepo, cfg.JWT, log)
	authHandler := auth.NewHandler(authService, log)

	mux := router.New(router.Handlers{
		Hotels:      hotelHandler,
		Groups:      groupHandler,
		Tags:        tagHandler,
		PriceTags:   priceTagHandler,
		SearchTerms: searchTermHandler,
		Articles:    articleHandler,
		Restaurants: restaurantHandler,
		Suggest:     suggestHandler,
		Media:       mediaHandler,
		Seo:         seoHandler,
		Auth:        authHandler,
		AuthService: authService,
	}, cfg.Server.Timeout, log)

	server := &http.Server{
		Addr:         ":" + cfg.Server.HTTPPort,
		Handler:      mux,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  2 * cfg.Server.Timeout,
	}

	go func() {
		log.Info("HTTP server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server failed", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", slog.Any("error", err))
	}
	log.Info("Server stopped")
}
