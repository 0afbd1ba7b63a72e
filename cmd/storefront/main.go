package main

import (
	"context"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/nmoreira/storefront-core/internal/cart"
	"github.com/nmoreira/storefront-core/internal/catalog"
	"github.com/nmoreira/storefront-core/pkg/config"
	"github.com/nmoreira/storefront-core/pkg/logger"
	"github.com/nmoreira/storefront-core/pkg/metrics"
	"github.com/nmoreira/storefront-core/pkg/redis"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	ownerID := cfg.Cart.OwnerID
	if ownerID == "" {
		ownerID = uuid.NewString()
	}
	ctx := logg.WithOwnerID(context.Background(), ownerID)

	m := metrics.NewStorefrontMetrics(prometheus.DefaultRegisterer)

	persistence, err := cart.NewRedisPersistence(redisClient, ownerID, logg)
	if err != nil {
		logg.Error(ctx, "failed to build cart persistence", err)
		os.Exit(1)
	}
	cartStore, err := cart.NewStore(persistence, logg, m)
	if err != nil {
		logg.Error(ctx, "failed to build cart store", err)
		os.Exit(1)
	}
	cartStore.Init(ctx)
	defer cartStore.Flush()

	source, err := catalog.NewSource(cfg.Catalog.BaseURL,
		catalog.WithPageSize(cfg.Catalog.PageSize),
		catalog.WithHTTPClient(httpClient(cfg)),
	)
	if err != nil {
		logg.Error(ctx, "failed to build catalog source", err)
		os.Exit(1)
	}
	feed, err := catalog.NewFeed(source, logg, m)
	if err != nil {
		logg.Error(ctx, "failed to build catalog feed", err)
		os.Exit(1)
	}

	logg.Info(logg.WithFields(ctx, map[string]any{
		"env":       cfg.App.Env,
		"base_url":  cfg.Catalog.BaseURL,
		"page_size": cfg.Catalog.PageSize,
	}), "starting storefront session")

	if err := feed.LoadFirst(ctx); err != nil {
		logg.Error(ctx, "initial catalog load failed", err)
		os.Exit(1)
	}
	if err := feed.LoadMore(ctx); err != nil {
		logg.Warn(ctx, "load more failed, showing first page only")
	}

	visible := feed.Visible()
	logg.Info(logg.WithFields(ctx, map[string]any{
		"cached":     feed.Len(),
		"visible":    len(visible),
		"categories": feed.Categories(),
		"has_more":   feed.HasMore(),
	}), "catalog loaded")

	if len(visible) > 0 {
		cartStore.AddItem(visible[0], 1)
	}
	logg.Info(logg.WithFields(ctx, map[string]any{
		"lines":    len(cartStore.Items()),
		"quantity": cartStore.TotalQuantity(),
		"subtotal": cartStore.Subtotal().StringFixed(2),
	}), "cart state")
}

func httpClient(cfg *config.Config) *http.Client {
	return &http.Client{Timeout: cfg.Catalog.RequestTimeout}
}
