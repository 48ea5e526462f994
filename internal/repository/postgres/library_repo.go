// internal/repository/postgres/library_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"bookstore-service/internal/domain/library"
	xerrors "bookstore-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LibraryRepository struct {
	db *pgxpool.Pool
}

func NewLibraryRepository(db *pgxpool.Pool) *LibraryRepository {
	return &LibraryRepository{db: db}
}

// PurchasedEbooks lists the ebooks the user bought through paid orders.
func (r *LibraryRepository) PurchasedEbooks(ctx context.Context, userID int64) ([]library.PurchasedBook, error) {
	query := `
		SELECT DISTINCT oi.product_id, p.title, p.slug, p.main_image,
		       oi.price, o.created_at
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		JOIN products p ON p.id = oi.product_id
		WHERE o.user_id = $1
		  AND o.payment_status = 'success'
		  AND oi.format = 'ebook'
		ORDER BY o.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchased ebooks: %w", err)
	}
	defer rows.Close()

	books := []library.PurchasedBook{}
	for rows.Next() {
		var b library.PurchasedBook
		err := rows.Scan(&b.ProductID, &b.Title, &b.Slug, &b.MainImage, &b.Price, &b.PurchasedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan purchased ebook: %w", err)
		}
		books = append(books, b)
	}

	return books, nil
}

// ListEbooks lists every published ebook-capable title for the subscription
// library.
func (r *LibraryRepository) ListEbooks(ctx context.Context) ([]library.Book, error) {
	query := `
		SELECT p.id, p.title, p.slug, p.main_image, p.description
		FROM products p
		JOIN ebooks e ON e.product_id = p.id
		WHERE p.status = 'published'
		ORDER BY p.title
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list ebooks: %w", err)
	}
	defer rows.Close()

	books := []library.Book{}
	for rows.Next() {
		var b library.Book
		err := rows.Scan(&b.ID, &b.Title, &b.Slug, &b.MainImage, &b.Description)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ebook: %w", err)
		}
		books = append(books, b)
	}

	return books, nil
}

// HasPurchasedEbook reports whether the user owns the ebook through a paid
// order.
func (r *LibraryRepository) HasPurchasedEbook(ctx context.Context, userID, productID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM orders o
			JOIN order_items oi ON oi.order_id = o.id
			WHERE o.user_id = $1
			  AND oi.product_id = $2
			  AND oi.format = 'ebook'
			  AND o.payment_status = 'success'
		)
	`

	var exists bool
	if err := r.db.QueryRow(ctx, query, userID, productID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check purchase: %w", err)
	}

	return exists, nil
}

// EbookFileBySlug retrieves the product id and stored file path for a
// published ebook.
func (r *LibraryRepository) EbookFileBySlug(ctx context.Context, slug string) (int64, string, error) {
	query := `
		SELECT p.id, e.file_path
		FROM products p
		JOIN ebooks e ON e.product_id = p.id
		WHERE p.slug = $1 AND p.status = 'published'
	`

	var productID int64
	var filePath string
	err := r.db.QueryRow(ctx, query, slug).Scan(&productID, &filePath)

	if errors.Is(err, pgx.ErrNoRows) {
		return 0, "", xerrors.ErrNotFound
	}
	if err != nil {
		return 0, "", fmt.Errorf("failed to find ebook: %w", err)
	}

	return productID, filePath, nil
}

// UpsertProgress saves the user's last reading position for a book.
func (r *LibraryRepository) UpsertProgress(ctx context.Context, userID, productID int64, cfi string) error {
	query := `
		INSERT INTO reading_progress (user_id, product_id, last_cfi, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, product_id) DO UPDATE SET
			last_cfi   = EXCLUDED.last_cfi,
			updated_at = NOW()
	`

	_, err := r.db.Exec(ctx, query, userID, productID, cfi)
	if err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}

	return nil
}

// GetProgress retrieves the saved position for one book, empty when none.
func (r *LibraryRepository) GetProgress(ctx context.Context, userID, productID int64) (string, error) {
	query := `
		SELECT last_cfi FROM reading_progress
		WHERE user_id = $1 AND product_id = $2
	`

	var cfi string
	err := r.db.QueryRow(ctx, query, userID, productID).Scan(&cfi)

	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get progress: %w", err)
	}

	return cfi, nil
}

// ContinueReading lists books with saved positions, most recent first.
func (r *LibraryRepository) ContinueReading(ctx context.Context, userID int64) ([]library.Progress, error) {
	query := `
		SELECT p.id, p.title, p.slug, p.main_image, rp.last_cfi, rp.updated_at
		FROM reading_progress rp
		JOIN products p ON p.id = rp.product_id
		WHERE rp.user_id = $1
		ORDER BY rp.updated_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reading progress: %w", err)
	}
	defer rows.Close()

	progress := []library.Progress{}
	for rows.Next() {
		var p library.Progress
		err := rows.Scan(&p.ProductID, &p.Title, &p.Slug, &p.MainImage, &p.LastCFI, &p.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan progress: %w", err)
		}
		progress = append(progress, p)
	}

	return progress, nil
}

// AddBookmark saves a position bookmark for a book.
func (r *LibraryRepository) AddBookmark(ctx context.Context, userID, productID int64, cfi, label string) error {
	query := `
		INSERT INTO bookmarks (user_id, product_id, cfi, label)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(ctx, query, userID, productID, cfi, label)
	if err != nil {
		return fmt.Errorf("failed to add bookmark: %w", err)
	}

	return nil
}

// ListBookmarks retrieves a book's bookmarks for the user, newest first.
func (r *LibraryRepository) ListBookmarks(ctx context.Context, userID, productID int64) ([]library.Bookmark, error) {
	query := `
		SELECT id, cfi, label, created_at
		FROM bookmarks
		WHERE user_id = $1 AND product_id = $2
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	defer rows.Close()

	bookmarks := []library.Bookmark{}
	for rows.Next() {
		var b library.Bookmark
		err := rows.Scan(&b.ID, &b.CFI, &b.Label, &b.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bookmark: %w", err)
		}
		bookmarks = append(bookmarks, b)
	}

	return bookmarks, nil
}

// DeleteBookmark removes one bookmark by position.
func (r *LibraryRepository) DeleteBookmark(ctx context.Context, userID, productID int64, cfi string) error {
	query := `DELETE FROM bookmarks WHERE user_id = $1 AND product_id = $2 AND cfi = $3`

	result, err := r.db.Exec(ctx, query, userID, productID, cfi)
	if err != nil {
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// AllBookmarks retrieves every bookmark of the user across books.
func (r *LibraryRepository) AllBookmarks(ctx context.Context, userID int64) ([]library.BookBookmark, error) {
	query := `
		SELECT p.title, p.slug, b.cfi, b.label, b.created_at
		FROM bookmarks b
		JOIN products p ON p.id = b.product_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	defer rows.Close()

	bookmarks := []library.BookBookmark{}
	for rows.Next() {
		var b library.BookBookmark
		err := rows.Scan(&b.Title, &b.Slug, &b.CFI, &b.Label, &b.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bookmark: %w", err)
		}
		bookmarks = append(bookmarks, b)
	}

	return bookmarks, nil
}

// IsFavorite reports whether the user has favorited the book.
func (r *LibraryRepository) IsFavorite(ctx context.Context, userID, productID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM favorites WHERE user_id = $1 AND product_id = $2
		)
	`

	var exists bool
	if err := r.db.QueryRow(ctx, query, userID, productID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}

	return exists, nil
}

// AddFavorite marks a book as favorite, idempotently.
func (r *LibraryRepository) AddFavorite(ctx context.Context, userID, productID int64) error {
	query := `
		INSERT INTO favorites (user_id, product_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, product_id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query, userID, productID)
	if err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}

	return nil
}

// RemoveFavorite unmarks a favorite book.
func (r *LibraryRepository) RemoveFavorite(ctx context.Context, userID, productID int64) error {
	query := `DELETE FROM favorites WHERE user_id = $1 AND product_id = $2`

	_, err := r.db.Exec(ctx, query, userID, productID)
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}

	return nil
}

// ListFavorites retrieves the user's favorited books.
func (r *LibraryRepository) ListFavorites(ctx context.Context, userID int64) ([]library.Book, error) {
	query := `
		SELECT p.id, p.title, p.slug, p.main_image, p.description
		FROM favorites f
		JOIN products p ON p.id = f.product_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	books := []library.Book{}
	for rows.Next() {
		var b library.Book
		err := rows.Scan(&b.ID, &b.Title, &b.Slug, &b.MainImage, &b.Description)
		if err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		books = append(books, b)
	}

	return books, nil
}
