package postgres

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mlde/checkout-api/internal/domain/catalog"
)

var _ catalog.Repository = (*ProductRepository)(nil)

// ProductRepository implements catalog.Repository backed by PostgreSQL.
type ProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository returns a ProductRepository using the given pool.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

const productColumns = `id, name, dosage, price, original_price, discount_pct, tag, image`

// List returns all dosage tiers ordered by price.
func (r *ProductRepository) List(ctx context.Context) ([]catalog.Product, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY price`)
	if err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	defer rows.Close()

	var products []catalog.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan product")
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// GetByDosage returns the tier for a dosage label, or ErrNotFound.
func (r *ProductRepository) GetByDosage(ctx context.Context, dosage string) (*catalog.Product, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE dosage = $1`, dosage)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrNotFound
		}
		return nil, errors.Wrapf(err, "get product %q", dosage)
	}
	return &p, nil
}

// Upsert inserts or refreshes a tier. Used by the seeding tool; the API
// itself never writes the catalog.
func (r *ProductRepository) Upsert(ctx context.Context, p catalog.Product) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO products (id, name, dosage, price, original_price, discount_pct, tag, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			dosage = EXCLUDED.dosage,
			price = EXCLUDED.price,
			original_price = EXCLUDED.original_price,
			discount_pct = EXCLUDED.discount_pct,
			tag = EXCLUDED.tag,
			image = EXCLUDED.image`,
		p.ID, p.Name, p.Dosage, p.Price, p.OriginalPrice, p.DiscountPct, p.Tag, p.Image,
	)
	if err != nil {
		return errors.Wrapf(err, "upsert product %q", p.ID)
	}
	return nil
}

func scanProduct(row pgx.Row) (catalog.Product, error) {
	var p catalog.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Dosage,
		&p.Price, &p.OriginalPrice, &p.DiscountPct,
		&p.Tag, &p.Image,
	)
	return p, err
}
