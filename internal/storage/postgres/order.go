package postgres

import (
	"context"
	"encoding/json"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mlde/checkout-api/internal/domain/order"
)

var _ order.Archive = (*OrderRepository)(nil)

// OrderRepository archives submitted checkouts. Customer and address
// sub-records are stored as JSONB.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository using the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create persists an archived order. CreatedAt is assigned by the
// database.
func (r *OrderRepository) Create(ctx context.Context, rec *order.Record) error {
	customer, err := json.Marshal(rec.Customer)
	if err != nil {
		return errors.Wrap(err, "marshal customer")
	}
	address, err := json.Marshal(rec.Address)
	if err != nil {
		return errors.Wrap(err, "marshal address")
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO orders (
			id, product, dosage, channel, crypto_asset, proof_file, priority,
			customer, address, subtotal, discount, total
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		rec.ID, rec.Product, rec.Dosage, string(rec.Channel),
		rec.CryptoAsset, rec.ProofFile, rec.Priority,
		customer, address,
		rec.Subtotal, rec.Discount, rec.Total,
	)
	if err != nil {
		return errors.Wrapf(err, "create order %q", rec.ID)
	}
	return nil
}

// ForEach streams every archived order in creation sequence to fn,
// stopping on the first error. Used by the export tool.
func (r *OrderRepository) ForEach(ctx context.Context, fn func(rec *order.Record) error) error {
	rows, err := r.pool.Query(ctx, `
		SELECT id, product, dosage, channel, crypto_asset, proof_file, priority,
		       customer, address, subtotal, discount, total, created_at
		FROM orders ORDER BY created_at`)
	if err != nil {
		return errors.Wrap(err, "query orders")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			rec               order.Record
			channel           string
			customer, address []byte
		)
		err := rows.Scan(
			&rec.ID, &rec.Product, &rec.Dosage, &channel,
			&rec.CryptoAsset, &rec.ProofFile, &rec.Priority,
			&customer, &address,
			&rec.Subtotal, &rec.Discount, &rec.Total, &rec.CreatedAt,
		)
		if err != nil {
			return errors.Wrap(err, "scan order")
		}
		rec.Channel = order.Channel(channel)
		if err := json.Unmarshal(customer, &rec.Customer); err != nil {
			return errors.Wrapf(err, "unmarshal customer of %q", rec.ID)
		}
		if err := json.Unmarshal(address, &rec.Address); err != nil {
			return errors.Wrapf(err, "unmarshal address of %q", rec.ID)
		}

		if err := fn(&rec); err != nil {
			return err
		}
	}
	return rows.Err()
}
