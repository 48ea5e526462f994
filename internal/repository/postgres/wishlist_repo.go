// internal/repository/postgres/wishlist_repo.go
package postgres

import (
	"context"
	"fmt"

	"bookstore-service/internal/domain/wishlist"

	"github.com/jackc/pgx/v5/pgxpool"
)

type WishlistRepository struct {
	db *pgxpool.Pool
}

func NewWishlistRepository(db *pgxpool.Pool) *WishlistRepository {
	return &WishlistRepository{db: db}
}

// Exists reports whether the product is on the user's wishlist.
func (r *WishlistRepository) Exists(ctx context.Context, userID, productID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM wishlist WHERE user_id = $1 AND product_id = $2
		)
	`

	var exists bool
	if err := r.db.QueryRow(ctx, query, userID, productID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check wishlist: %w", err)
	}

	return exists, nil
}

func (r *WishlistRepository) Add(ctx context.Context, userID, productID int64) error {
	query := `
		INSERT INTO wishlist (user_id, product_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, product_id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query, userID, productID)
	if err != nil {
		return fmt.Errorf("failed to add to wishlist: %w", err)
	}

	return nil
}

func (r *WishlistRepository) Remove(ctx context.Context, userID, productID int64) error {
	query := `DELETE FROM wishlist WHERE user_id = $1 AND product_id = $2`

	_, err := r.db.Exec(ctx, query, userID, productID)
	if err != nil {
		return fmt.Errorf("failed to remove from wishlist: %w", err)
	}

	return nil
}

// ListByUser retrieves the user's wishlisted products, newest first.
func (r *WishlistRepository) ListByUser(ctx context.Context, userID int64) ([]wishlist.Item, error) {
	query := `
		SELECT p.id, p.title, p.slug, p.main_image, p.sell_price
		FROM wishlist w
		JOIN products p ON p.id = w.product_id
		WHERE w.user_id = $1
		ORDER BY w.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist: %w", err)
	}
	defer rows.Close()

	items := []wishlist.Item{}
	for rows.Next() {
		var item wishlist.Item
		err := rows.Scan(&item.ProductID, &item.Title, &item.Slug, &item.MainImage, &item.SellPrice)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wishlist item: %w", err)
		}
		items = append(items, item)
	}

	return items, nil
}
