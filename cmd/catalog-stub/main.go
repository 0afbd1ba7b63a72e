package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/nmoreira/storefront-core/internal/catalog"
	"github.com/nmoreira/storefront-core/pkg/env"
	"github.com/nmoreira/storefront-core/pkg/logger"
	"github.com/shopspring/decimal"
)

// catalog-stub emulates the remote products endpoint for local development:
// GET /products?limit=<n>&skip=<n> over a fixed in-memory catalog.
func main() {
	logg := logger.New(logger.Options{ServiceName: "catalog-stub"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	products := seedProducts(60)

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Get("/products", listProducts(products))

	addr := ":" + env.Get("STOREFRONT_STUB_PORT", "4010")
	ctx := logg.WithField(context.Background(), "addr", addr)
	logg.Info(ctx, "starting catalog stub")

	if err := http.ListenAndServe(addr, router); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "catalog stub stopped unexpectedly", err)
		os.Exit(1)
	}
}

type envelope struct {
	Products []catalog.Product `json:"products"`
	Total    int               `json:"total"`
	Skip     int               `json:"skip"`
	Limit    int               `json:"limit"`
}

func listProducts(products []catalog.Product) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := queryInt(r, "limit", 10)
		skip := queryInt(r, "skip", 0)

		end := skip + limit
		if skip > len(products) {
			skip = len(products)
		}
		if end > len(products) {
			end = len(products)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(envelope{
			Products: products[skip:end],
			Total:    len(products),
			Skip:     skip,
			Limit:    limit,
		})
	}
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}

func seedProducts(count int) []catalog.Product {
	categories := []string{"smartphones", "laptops", "fragrances", "groceries", "home-decoration"}
	products := make([]catalog.Product, 0, count)
	for i := 1; i <= count; i++ {
		products = append(products, catalog.Product{
			ID:        int64(i),
			Title:     "Sample Product " + strconv.Itoa(i),
			Price:     decimal.NewFromInt(int64(5 + (i*7)%200)),
			Rating:    decimal.NewFromFloat(float64(1+(i%9)) / 2),
			Category:  categories[i%len(categories)],
			Thumbnail: "https://cdn.example.com/thumbs/" + strconv.Itoa(i) + ".webp",
		})
	}
	return products
}
