package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	domainErrors "github.com/minseo-cho/gomall/internal/domain/errors"
	"github.com/minseo-cho/gomall/internal/domain/model"
	"github.com/minseo-cho/gomall/internal/logger"
	"github.com/minseo-cho/gomall/internal/storage/postgres"
)

// productDump is one entry of the JSON catalog dump.
type productDump struct {
	Category    string `json:"category"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Status      string `json:"status"`
	PhotoURL    string `json:"photo_url"`
}

func main() {
	_ = godotenv.Load()

	var (
		source      = flag.String("source", "", "URL of the JSON product dump")
		databaseURI = flag.String("d", os.Getenv("DATABASE_URI"), "PostgreSQL connection URI")
	)
	flag.Parse()

	log := logger.New()

	if *source == "" || *databaseURI == "" {
		fmt.Fprintln(os.Stderr, "usage: loadproducts -source <dump url> -d <database uri>")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *source, *databaseURI, log); err != nil {
		log.Error("load failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, source, databaseURI string, log *slog.Logger) error {
	dump, err := fetchDump(ctx, source)
	if err != nil {
		return fmt.Errorf("fetch dump: %w", err)
	}
	log.Info("dump fetched", slog.Int("products", len(dump)))

	storage, err := postgres.New(ctx, databaseURI, log)
	if err != nil {
		return fmt.Errorf("connect storage: %w", err)
	}
	defer storage.Close()

	categories := storage.Categories()
	products := storage.Products()

	var created, skipped int
	for _, entry := range dump {
		categoryName := entry.Category
		if categoryName == "" {
			categoryName = "uncategorized"
		}
		category, err := categories.GetOrCreate(ctx, categoryName)
		if err != nil {
			return fmt.Errorf("category %q: %w", categoryName, err)
		}

		if _, err := products.GetByName(ctx, category.ID, entry.Name); err == nil {
			skipped++
			continue
		} else if !errors.Is(err, domainErrors.ErrNotFound) {
			return fmt.Errorf("lookup product %q: %w", entry.Name, err)
		}

		status := model.ProductStatus(entry.Status)
		if !status.Valid() {
			status = model.ProductStatusActive
		}
		if entry.Price < 0 {
			log.Warn("skipping product with negative price", slog.String("name", entry.Name))
			continue
		}

		if _, err := products.Create(ctx, &model.Product{
			CategoryID:  category.ID,
			Name:        entry.Name,
			Description: entry.Description,
			Price:       entry.Price,
			Status:      status,
			PhotoURL:    entry.PhotoURL,
		}); err != nil {
			return fmt.Errorf("create product %q: %w", entry.Name, err)
		}
		created++
	}

	log.Info("load finished", slog.Int("created", created), slog.Int("skipped", skipped))
	return nil
}

func fetchDump(ctx context.Context, source string) ([]productDump, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	var dump []productDump
	if err := json.NewDecoder(resp.Body).Decode(&dump); err != nil {
		return nil, err
	}
	return dump, nil
}
