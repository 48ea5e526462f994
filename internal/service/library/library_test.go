// internal/service/library/library_test.go
package library

import (
	"context"
	"testing"
	"time"

	"bookstore-service/internal/domain/library"
	"bookstore-service/internal/domain/subscription"
	xerrors "bookstore-service/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeLibraryRepo struct {
	purchased map[int64]bool
	files     map[string]struct {
		id   int64
		path string
	}
	progress map[int64]string
}

func newFakeLibraryRepo() *fakeLibraryRepo {
	return &fakeLibraryRepo{
		purchased: map[int64]bool{},
		files: map[string]struct {
			id   int64
			path string
		}{},
		progress: map[int64]string{},
	}
}

func (f *fakeLibraryRepo) PurchasedEbooks(_ context.Context, _ int64) ([]library.PurchasedBook, error) {
	return nil, nil
}

func (f *fakeLibraryRepo) ListEbooks(_ context.Context) ([]library.Book, error) {
	return []library.Book{{ID: 1, Title: "Book One"}}, nil
}

func (f *fakeLibraryRepo) HasPurchasedEbook(_ context.Context, _, productID int64) (bool, error) {
	return f.purchased[productID], nil
}

func (f *fakeLibraryRepo) EbookFileBySlug(_ context.Context, slug string) (int64, string, error) {
	file, ok := f.files[slug]
	if !ok {
		return 0, "", xerrors.ErrNotFound
	}
	return file.id, file.path, nil
}

func (f *fakeLibraryRepo) UpsertProgress(_ context.Context, _, productID int64, cfi string) error {
	f.progress[productID] = cfi
	return nil
}

func (f *fakeLibraryRepo) GetProgress(_ context.Context, _, productID int64) (string, error) {
	return f.progress[productID], nil
}

func (f *fakeLibraryRepo) ContinueReading(_ context.Context, _ int64) ([]library.Progress, error) {
	return nil, nil
}

func (f *fakeLibraryRepo) AddBookmark(_ context.Context, _, _ int64, _, _ string) error {
	return nil
}

func (f *fakeLibraryRepo) ListBookmarks(_ context.Context, _, _ int64) ([]library.Bookmark, error) {
	return nil, nil
}

func (f *fakeLibraryRepo) DeleteBookmark(_ context.Context, _, _ int64, _ string) error {
	return nil
}

func (f *fakeLibraryRepo) AllBookmarks(_ context.Context, _ int64) ([]library.BookBookmark, error) {
	return nil, nil
}

func (f *fakeLibraryRepo) IsFavorite(_ context.Context, _, _ int64) (bool, error) { return false, nil }
func (f *fakeLibraryRepo) AddFavorite(_ context.Context, _, _ int64) error        { return nil }
func (f *fakeLibraryRepo) RemoveFavorite(_ context.Context, _, _ int64) error     { return nil }

func (f *fakeLibraryRepo) ListFavorites(_ context.Context, _ int64) ([]library.Book, error) {
	return nil, nil
}

type fakeAccess struct {
	active  bool
	expires time.Time
}

func (f *fakeAccess) CheckAccess(_ context.Context, _ int64) (*subscription.AccessStatus, error) {
	if !f.active {
		return &subscription.AccessStatus{}, nil
	}
	return &subscription.AccessStatus{Active: true, ExpiresAt: &f.expires}, nil
}

func newTestService(repo *fakeLibraryRepo, access *fakeAccess) *Service {
	return NewService(repo, access, zap.NewNop())
}

func TestCanReadPurchasedEbook(t *testing.T) {
	repo := newFakeLibraryRepo()
	repo.purchased[4] = true
	svc := newTestService(repo, &fakeAccess{})

	allowed, err := svc.CanRead(context.Background(), 7, 4)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestCanReadViaSubscription(t *testing.T) {
	svc := newTestService(newFakeLibraryRepo(), &fakeAccess{active: true, expires: time.Now().Add(time.Hour)})

	allowed, err := svc.CanRead(context.Background(), 7, 4)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestCanReadDeniedWithoutEntitlement(t *testing.T) {
	svc := newTestService(newFakeLibraryRepo(), &fakeAccess{})

	allowed, err := svc.CanRead(context.Background(), 7, 4)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestReadEbookReturnsFilePath(t *testing.T) {
	repo := newFakeLibraryRepo()
	repo.files["go-in-practice"] = struct {
		id   int64
		path string
	}{id: 4, path: "ebooks/go-in-practice.epub"}
	repo.purchased[4] = true
	svc := newTestService(repo, &fakeAccess{})

	path, err := svc.ReadEbook(context.Background(), 7, "go-in-practice")
	require.NoError(t, err)
	assert.Equal(t, "ebooks/go-in-practice.epub", path)
}

func TestReadEbookDenied(t *testing.T) {
	repo := newFakeLibraryRepo()
	repo.files["go-in-practice"] = struct {
		id   int64
		path string
	}{id: 4, path: "ebooks/go-in-practice.epub"}
	svc := newTestService(repo, &fakeAccess{})

	_, err := svc.ReadEbook(context.Background(), 7, "go-in-practice")
	assert.ErrorIs(t, err, xerrors.ErrAccessDenied)
}

func TestReadEbookUnknownSlug(t *testing.T) {
	svc := newTestService(newFakeLibraryRepo(), &fakeAccess{})

	_, err := svc.ReadEbook(context.Background(), 7, "missing")
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
}

func TestSubscriptionLibraryRequiresAccess(t *testing.T) {
	svc := newTestService(newFakeLibraryRepo(), &fakeAccess{})

	_, err := svc.SubscriptionLibrary(context.Background(), 7)
	assert.ErrorIs(t, err, xerrors.ErrAccessDenied)
}

func TestSaveProgressGated(t *testing.T) {
	repo := newFakeLibraryRepo()
	svc := newTestService(repo, &fakeAccess{})

	err := svc.SaveProgress(context.Background(), 7, 4, "epubcfi(/6/4!/4/2)")
	assert.ErrorIs(t, err, xerrors.ErrAccessDenied)
	assert.Empty(t, repo.progress)

	repo.purchased[4] = true
	err = svc.SaveProgress(context.Background(), 7, 4, "epubcfi(/6/4!/4/2)")
	require.NoError(t, err)
	assert.Equal(t, "epubcfi(/6/4!/4/2)", repo.progress[4])
}
