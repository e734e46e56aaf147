package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/pawelapps/ecommerce/internal/config"
	"github.com/pawelapps/ecommerce/internal/db"
	"github.com/pawelapps/ecommerce/internal/es"
	"github.com/pawelapps/ecommerce/internal/handlers"
	"github.com/pawelapps/ecommerce/internal/logging"
	"github.com/pawelapps/ecommerce/internal/middleware/auth"
	"github.com/pawelapps/ecommerce/internal/mykafka"
	"github.com/pawelapps/ecommerce/internal/repo"
	"github.com/pawelapps/ecommerce/internal/service"
	httpserver "github.com/pawelapps/ecommerce/internal/transport/http"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	config.MustNonEmpty(cfg.JWT_SECRET, "JWT_SECRET")
	config.MustNonEmpty(cfg.REFRESH_SECRET, "REFRESH_SECRET")
	config.MustNonEmpty(cfg.KAFKA_ADDRESS, "KAFKA_ADDRESS")
	config.MustNonEmpty(cfg.ES_URL, "ES_URL")

	logger := logging.New(cfg.LOG_LEVEL)

	ctx := context.Background()

	gormDB, err := db.Open(ctx, cfg.DSN())
	if err != nil {
		log.Fatalf("db open error: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("db migrate error: %v", err)
	}

	prod, err := mykafka.NewProducer([]string{cfg.KAFKA_ADDRESS})
	if err != nil {
		log.Fatalf("kafka producer error: %v", err)
	}

	esClient, err := es.NewClient(cfg)
	if err != nil {
		log.Fatalf("elasticsearch error: %v", err)
	}

	gormRepo := repo.New(gormDB)
	tokens := &service.TokenService{
		DB:            gormDB,
		JWTSecret:     []byte(cfg.JWT_SECRET),
		RefreshSecret: []byte(cfg.REFRESH_SECRET),
	}
	catalogSvc := &service.CatalogService{Repo: gormRepo}
	cartSvc := &service.CartService{Repo: gormRepo}
	orderSvc := &service.OrderService{Repo: gormRepo}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(logging.RequestLogger(logger))

	deps := httpserver.Deps{
		AuthHandler:     &handlers.AuthHandler{Repo: gormRepo, Tokens: tokens, Producer: prod},
		ProductHandler:  &handlers.ProductHandler{Svc: catalogSvc, Producer: prod, Indexer: es.NewIndexer(esClient, cfg.ES_INDEX)},
		CategoryHandler: &handlers.CategoryHandler{Svc: catalogSvc, Producer: prod},
		CartHandler:     &handlers.CartHandler{Svc: cartSvc, Producer: prod},
		OrderHandler:    &handlers.OrderHandler{Svc: orderSvc, Producer: prod},
		SearchHandler:   handlers.NewSearchHandler(esClient, cfg.ES_INDEX),
		Guard:           &auth.Guard{Tokens: tokens},
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         cfg.HTTP_ADDR,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := gormDB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := prod.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
