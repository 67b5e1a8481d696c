// Command order-export dumps the archived orders and the product
// catalog as gzip-compressed NDJSON files, one record per line. Both
// exports stream concurrently; a failure in either aborts the run.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/go-faster/errors"
	pgzip "github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/mlde/checkout-api/internal/domain/order"
	"github.com/mlde/checkout-api/internal/storage/postgres"
)

type orderLine struct {
	ID          string          `json:"id"`
	Product     string          `json:"product"`
	Dosage      string          `json:"dosage"`
	Channel     string          `json:"channel"`
	CryptoAsset string          `json:"cryptoAsset,omitempty"`
	ProofFile   string          `json:"proofFile,omitempty"`
	Priority    bool            `json:"priority,omitempty"`
	Customer    order.Customer  `json:"customer"`
	Address     order.Address   `json:"address"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Discount    decimal.Decimal `json:"discount"`
	Total       decimal.Decimal `json:"total"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func main() {
	var (
		databaseURL string
		outDir      string
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&outDir, "out-dir", "export", "directory for the export files")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL, outDir); err != nil {
		slog.Error("export failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("export completed successfully")
}

func run(ctx context.Context, databaseURL, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return errors.Wrap(err, "create output directory")
	}

	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return exportOrders(ctx, postgres.NewOrderRepository(pool), filepath.Join(outDir, "orders.ndjson.gz"))
	})
	g.Go(func() error {
		return exportProducts(ctx, postgres.NewProductRepository(pool), filepath.Join(outDir, "products.ndjson.gz"))
	})
	return g.Wait()
}

// withGzWriter opens path, wraps it in a pgzip writer, runs fn, and
// flushes everything on success.
func withGzWriter(path string, fn func(w *bufio.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer func() { _ = f.Close() }()

	gz := pgzip.NewWriter(f)
	w := bufio.NewWriter(gz)

	if err := fn(w); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return errors.Wrap(err, "flush buffer")
	}
	if err := gz.Close(); err != nil {
		return errors.Wrap(err, "close gzip writer")
	}
	return f.Close()
}

func exportOrders(ctx context.Context, repo *postgres.OrderRepository, path string) error {
	slog.Info("exporting orders", slog.String("path", path))

	var count int
	err := withGzWriter(path, func(w *bufio.Writer) error {
		enc := json.NewEncoder(w)
		return repo.ForEach(ctx, func(rec *order.Record) error {
			count++
			return enc.Encode(orderLine{
				ID:          rec.ID,
				Product:     rec.Product,
				Dosage:      rec.Dosage,
				Channel:     string(rec.Channel),
				CryptoAsset: rec.CryptoAsset,
				ProofFile:   rec.ProofFile,
				Priority:    rec.Priority,
				Customer:    rec.Customer,
				Address:     rec.Address,
				Subtotal:    rec.Subtotal,
				Discount:    rec.Discount,
				Total:       rec.Total,
				CreatedAt:   rec.CreatedAt,
			})
		})
	})
	if err != nil {
		return errors.Wrap(err, "export orders")
	}

	slog.Info("orders exported", slog.Int("count", count))
	return nil
}

func exportProducts(ctx context.Context, repo *postgres.ProductRepository, path string) error {
	slog.Info("exporting products", slog.String("path", path))

	products, err := repo.List(ctx)
	if err != nil {
		return errors.Wrap(err, "list products")
	}

	err = withGzWriter(path, func(w *bufio.Writer) error {
		enc := json.NewEncoder(w)
		for _, p := range products {
			if err := enc.Encode(p); err != nil {
				return errors.Wrapf(err, "encode product %s", p.ID)
			}
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "export products")
	}

	slog.Info("products exported", slog.Int("count", len(products)))
	return nil
}
