package main

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"ShopList/internal/api"
	"ShopList/internal/catalog"
	"ShopList/internal/db"
	"ShopList/internal/wishlist"
	"ShopList/pkg/kit"
)

func main() {
	_ = godotenv.Load()

	service := "shoplist"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	port := getenv("PORT", "8080")
	dsn := os.Getenv("DATABASE_URL")

	var (
		catalogStore  catalog.Store
		wishlistStore wishlist.Store
	)
	if dsn == "" {
		log.Warn("DATABASE_URL not set, using in-memory stores")
		catalogStore = catalog.NewMemStore()
		wishlistStore = wishlist.NewMemStore()
	} else {
		sqlDB, err := db.Open(dsn)
		if err != nil {
			log.Fatal("database unavailable", zap.Error(err))
		}
		defer func() { _ = sqlDB.Close() }()

		catalogStore = catalog.NewPostgresStore(sqlDB)
		wishlistStore = wishlist.NewPostgresStore(sqlDB)
	}

	h := api.NewHandler(
		api.Deps{
			Catalog:  &catalog.Server{Store: catalogStore, Log: log},
			Wishlist: &wishlist.Server{Store: wishlistStore, Products: catalogStore, Log: log},
		},
		api.HTTPDeps{
			Log:              log,
			Service:          service,
			Registry:         prometheus.NewRegistry(),
			MetricsEnabled:   getenv("METRICS_ENABLED", "false") == "true",
			MetricsToken:     os.Getenv("METRICS_TOKEN"),
			WriteLimitPerMin: getenvInt("WRITE_RATE_LIMIT_PER_MIN", 120),
		},
	)

	if err := kit.RunHTTPServer(":"+port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
