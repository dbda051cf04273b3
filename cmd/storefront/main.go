package main

import (
	"context"
	"database/sql"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	_ "github.com/jackc/pgx/v5/stdlib"

	"CorpMart/internal/catalog"
	"CorpMart/internal/store"
	"CorpMart/internal/storefront"
	"CorpMart/pkg/kit"
)

func main() {
	service := "storefront"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	port := getenv("PORT", "8080")
	catalogURL := getenv("CATALOG_URL", "https://fakestoreapi.com")
	limit := getenvInt(log, "CATALOG_LIMIT", 30)

	st := newStore(log)

	c, err := storefront.NewController(storefront.Config{
		Catalog: catalog.NewClient(catalogURL),
		Limit:   limit,
		Store:   st,
		Log:     log,
	})
	if err != nil {
		log.Fatal("controller init failed", zap.Error(err))
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := c.Refresh(ctx); err != nil {
		// Pages render the inline fetch error; a later /refresh can recover.
		log.Warn("initial catalog fetch failed", zap.Error(err))
	}
	cancel()

	s := &storefront.Server{C: c, Log: log}

	h := storefront.NewHandler(s, storefront.HTTPDeps{
		Log:             log,
		Service:         service,
		Registry:        prometheus.NewRegistry(),
		MetricsEnabled:  getenv("METRICS_ENABLED", "") == "true",
		MetricsToken:    os.Getenv("METRICS_TOKEN"),
		RateLimit:       getenvInt(log, "RATE_LIMIT", 0),
		RateLimitWindow: time.Duration(getenvInt(log, "RATE_WINDOW_SECONDS", 60)) * time.Second,
	})

	if err := kit.RunHTTPServer(":"+port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func newStore(log *zap.Logger) store.Store {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Info("using in-memory client state store")
		return store.NewMemStore()
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatal("open database failed", zap.Error(err))
	}

	pg := store.NewPostgresStore(db)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := pg.Init(ctx); err != nil {
		log.Fatal("init client state schema failed", zap.Error(err))
	}

	log.Info("using postgres client state store")
	return pg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(log *zap.Logger, k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn("bad integer env value", zap.String("key", k), zap.String("value", v))
		return def
	}
	return n
}
