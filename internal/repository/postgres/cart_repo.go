// internal/repository/postgres/cart_repo.go
package postgres

import (
	"context"
	"fmt"

	"bookstore-service/internal/domain/cart"
	xerrors "bookstore-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CartRepository struct {
	db *pgxpool.Pool
}

func NewCartRepository(db *pgxpool.Pool) *CartRepository {
	return &CartRepository{db: db}
}

// Upsert adds a line or merges into the existing (user, product, format) row.
// Ebook lines stay pinned to quantity 1; paperback quantities accumulate.
func (r *CartRepository) Upsert(ctx context.Context, line *cart.Line) error {
	query := `
		INSERT INTO cart (user_id, product_id, format, quantity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, product_id, format) DO UPDATE SET
			quantity = CASE
				WHEN cart.format = 'ebook' THEN 1
				ELSE cart.quantity + EXCLUDED.quantity
			END
	`

	_, err := r.db.Exec(ctx, query, line.UserID, line.ProductID, line.Format, line.Quantity)
	if err != nil {
		return fmt.Errorf("failed to add to cart: %w", err)
	}

	return nil
}

// ListWithPricing retrieves the user's cart with unit prices resolved: ebook
// lines price from the ebook asset, paperback lines from the product.
func (r *CartRepository) ListWithPricing(ctx context.Context, userID int64) ([]cart.PricedItem, error) {
	query := `
		SELECT c.id, c.product_id, c.format, c.quantity,
		       p.title, p.slug, p.main_image,
		       CASE
		           WHEN c.format = 'ebook' THEN e.sell_price
		           ELSE p.sell_price
		       END AS price
		FROM cart c
		JOIN products p ON p.id = c.product_id
		LEFT JOIN ebooks e ON e.product_id = p.id
		WHERE c.user_id = $1
		ORDER BY c.id
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart: %w", err)
	}
	defer rows.Close()

	items := []cart.PricedItem{}
	for rows.Next() {
		var item cart.PricedItem
		err := rows.Scan(
			&item.ID, &item.ProductID, &item.Format, &item.Quantity,
			&item.Title, &item.Slug, &item.MainImage, &item.UnitPrice,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, item)
	}

	return items, nil
}

// UpdateQuantity changes a paperback line's quantity; ebook lines are not
// updatable.
func (r *CartRepository) UpdateQuantity(ctx context.Context, lineID, userID int64, quantity int) error {
	query := `
		UPDATE cart SET quantity = $1
		WHERE id = $2 AND user_id = $3 AND format = 'paperback'
	`

	result, err := r.db.Exec(ctx, query, quantity, lineID, userID)
	if err != nil {
		return fmt.Errorf("failed to update cart quantity: %w", err)
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// Remove deletes a line owned by the user.
func (r *CartRepository) Remove(ctx context.Context, lineID, userID int64) error {
	query := `DELETE FROM cart WHERE id = $1 AND user_id = $2`

	result, err := r.db.Exec(ctx, query, lineID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// Count sums the stored quantities across the user's cart.
func (r *CartRepository) Count(ctx context.Context, userID int64) (int, error) {
	query := `SELECT COALESCE(SUM(quantity), 0) FROM cart WHERE user_id = $1`

	var count int
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count cart: %w", err)
	}

	return count, nil
}

// ClearByUser empties the user's cart.
func (r *CartRepository) ClearByUser(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM cart WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// ClearByUserWithTx empties the user's cart within a transaction.
func (r *CartRepository) ClearByUserWithTx(ctx context.Context, tx pgx.Tx, userID int64) error {
	_, err := tx.Exec(ctx, `DELETE FROM cart WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
