// internal/repository/postgres/product_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"bookstore-service/internal/domain/catalog"
	xerrors "bookstore-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type ProductRepository struct {
	db *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{db: db}
}

// ListPublished retrieves the storefront listing, newest first.
func (r *ProductRepository) ListPublished(ctx context.Context, limit, offset int) ([]catalog.Product, error) {
	if limit < 1 || limit > 100 {
		limit = 24
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT id, title, slug, description, main_image, product_type,
		       price, sell_price, stock, tags, status, created_at
		FROM products
		WHERE status = 'published'
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []catalog.Product{}
	for rows.Next() {
		var p catalog.Product
		err := rows.Scan(
			&p.ID, &p.Title, &p.Slug, &p.Description, &p.MainImage, &p.ProductType,
			&p.ListPrice, &p.SellPrice, &p.Stock, pq.Array(&p.Tags), &p.Status, &p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	return products, nil
}

// FindBySlug retrieves a published product with its optional ebook pricing.
func (r *ProductRepository) FindBySlug(ctx context.Context, slug string) (*catalog.ProductDetail, error) {
	query := `
		SELECT p.id, p.title, p.slug, p.description, p.main_image, p.product_type,
		       p.price, p.sell_price, p.stock, p.tags, p.status, p.created_at,
		       e.price AS ebook_price, e.sell_price AS ebook_sell_price
		FROM products p
		LEFT JOIN ebooks e ON e.product_id = p.id
		WHERE p.slug = $1 AND p.status = 'published'
	`

	var d catalog.ProductDetail
	err := r.db.QueryRow(ctx, query, slug).Scan(
		&d.ID, &d.Title, &d.Slug, &d.Description, &d.MainImage, &d.ProductType,
		&d.ListPrice, &d.SellPrice, &d.Stock, pq.Array(&d.Tags), &d.Status, &d.CreatedAt,
		&d.EbookListPrice, &d.EbookSellPrice,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find product: %w", err)
	}

	return &d, nil
}
