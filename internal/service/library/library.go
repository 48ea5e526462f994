// internal/service/library/library.go
package library

import (
	"context"

	"bookstore-service/internal/domain/library"
	"bookstore-service/internal/domain/subscription"
	xerrors "bookstore-service/internal/pkg/errors"

	"go.uber.org/zap"
)

// Repository is the library persistence surface this service needs.
type Repository interface {
	PurchasedEbooks(ctx context.Context, userID int64) ([]library.PurchasedBook, error)
	ListEbooks(ctx context.Context) ([]library.Book, error)
	HasPurchasedEbook(ctx context.Context, userID, productID int64) (bool, error)
	EbookFileBySlug(ctx context.Context, slug string) (int64, string, error)
	UpsertProgress(ctx context.Context, userID, productID int64, cfi string) error
	GetProgress(ctx context.Context, userID, productID int64) (string, error)
	ContinueReading(ctx context.Context, userID int64) ([]library.Progress, error)
	AddBookmark(ctx context.Context, userID, productID int64, cfi, label string) error
	ListBookmarks(ctx context.Context, userID, productID int64) ([]library.Bookmark, error)
	DeleteBookmark(ctx context.Context, userID, productID int64, cfi string) error
	AllBookmarks(ctx context.Context, userID int64) ([]library.BookBookmark, error)
	IsFavorite(ctx context.Context, userID, productID int64) (bool, error)
	AddFavorite(ctx context.Context, userID, productID int64) error
	RemoveFavorite(ctx context.Context, userID, productID int64) error
	ListFavorites(ctx context.Context, userID int64) ([]library.Book, error)
}

// AccessChecker resolves subscription entitlement.
type AccessChecker interface {
	CheckAccess(ctx context.Context, userID int64) (*subscription.AccessStatus, error)
}

type Service struct {
	repo   Repository
	access AccessChecker
	logger *zap.Logger
}

func NewService(repo Repository, access AccessChecker, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		access: access,
		logger: logger,
	}
}

// PurchasedBooks lists the ebooks the user owns outright.
func (s *Service) PurchasedBooks(ctx context.Context, userID int64) ([]library.PurchasedBook, error) {
	return s.repo.PurchasedEbooks(ctx, userID)
}

// SubscriptionLibrary lists every ebook when the user holds active
// entitlement; ErrAccessDenied otherwise.
func (s *Service) SubscriptionLibrary(ctx context.Context, userID int64) ([]library.Book, error) {
	status, err := s.access.CheckAccess(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !status.Active {
		return nil, xerrors.ErrAccessDenied
	}
	return s.repo.ListEbooks(ctx)
}

// CanRead reports whether the user may open the ebook: a direct purchase or
// active subscription entitlement both grant access.
func (s *Service) CanRead(ctx context.Context, userID, productID int64) (bool, error) {
	purchased, err := s.repo.HasPurchasedEbook(ctx, userID, productID)
	if err != nil {
		return false, err
	}
	if purchased {
		return true, nil
	}

	status, err := s.access.CheckAccess(ctx, userID)
	if err != nil {
		return false, err
	}
	return status.Active, nil
}

// ReadEbook resolves the stored file path for a readable ebook, gating on
// entitlement.
func (s *Service) ReadEbook(ctx context.Context, userID int64, slug string) (string, error) {
	productID, filePath, err := s.repo.EbookFileBySlug(ctx, slug)
	if err != nil {
		return "", err
	}

	allowed, err := s.CanRead(ctx, userID, productID)
	if err != nil {
		return "", err
	}
	if !allowed {
		s.logger.Warn("ebook access denied",
			zap.Int64("user_id", userID),
			zap.String("slug", slug),
		)
		return "", xerrors.ErrAccessDenied
	}

	return filePath, nil
}

// SaveProgress stores the reader's position, gated on entitlement.
func (s *Service) SaveProgress(ctx context.Context, userID, productID int64, cfi string) error {
	allowed, err := s.CanRead(ctx, userID, productID)
	if err != nil {
		return err
	}
	if !allowed {
		return xerrors.ErrAccessDenied
	}
	return s.repo.UpsertProgress(ctx, userID, productID, cfi)
}

// GetProgress retrieves the saved position for one book, empty when none.
func (s *Service) GetProgress(ctx context.Context, userID, productID int64) (string, error) {
	return s.repo.GetProgress(ctx, userID, productID)
}

// ContinueReading lists books with saved positions.
func (s *Service) ContinueReading(ctx context.Context, userID int64) ([]library.Progress, error) {
	return s.repo.ContinueReading(ctx, userID)
}

// AddBookmark saves a position bookmark, gated on entitlement.
func (s *Service) AddBookmark(ctx context.Context, userID, productID int64, cfi, label string) error {
	allowed, err := s.CanRead(ctx, userID, productID)
	if err != nil {
		return err
	}
	if !allowed {
		return xerrors.ErrAccessDenied
	}
	return s.repo.AddBookmark(ctx, userID, productID, cfi, label)
}

// Bookmarks lists a book's bookmarks for the user.
func (s *Service) Bookmarks(ctx context.Context, userID, productID int64) ([]library.Bookmark, error) {
	return s.repo.ListBookmarks(ctx, userID, productID)
}

// RemoveBookmark deletes one bookmark by position.
func (s *Service) RemoveBookmark(ctx context.Context, userID, productID int64, cfi string) error {
	return s.repo.DeleteBookmark(ctx, userID, productID, cfi)
}

// AllBookmarks lists every bookmark of the user across books.
func (s *Service) AllBookmarks(ctx context.Context, userID int64) ([]library.BookBookmark, error) {
	return s.repo.AllBookmarks(ctx, userID)
}

// IsFavorite reports whether the user has favorited the book.
func (s *Service) IsFavorite(ctx context.Context, userID, productID int64) (bool, error) {
	return s.repo.IsFavorite(ctx, userID, productID)
}

// SetFavorite marks or unmarks a favorite.
func (s *Service) SetFavorite(ctx context.Context, userID, productID int64, favorite bool) error {
	if favorite {
		return s.repo.AddFavorite(ctx, userID, productID)
	}
	return s.repo.RemoveFavorite(ctx, userID, productID)
}

// Favorites lists the user's favorited books.
func (s *Service) Favorites(ctx context.Context, userID int64) ([]library.Book, error) {
	return s.repo.ListFavorites(ctx, userID)
}
