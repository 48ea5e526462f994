// internal/handlers/library/library_handler.go
package library

import (
	"net/http"
	"strconv"

	"bookstore-service/internal/domain/library"
	"bookstore-service/internal/middleware"
	"bookstore-service/internal/pkg/response"
	libUsecase "bookstore-service/internal/service/library"

	"github.com/gin-gonic/gin"
)

type LibraryHandler struct {
	libService *libUsecase.Service
}

func NewLibraryHandler(libService *libUsecase.Service) *LibraryHandler {
	return &LibraryHandler{libService: libService}
}

// MyBooks lists the ebooks the user owns outright (requires auth)
func (h *LibraryHandler) MyBooks(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	books, err := h.libService.PurchasedBooks(c.Request.Context(), userID)
	if err != nil {
		response.ErrorFrom(c, "failed to load purchased books", err)
		return
	}

	response.Success(c, http.StatusOK, "books retrieved", books)
}

// Library lists every ebook for active subscribers (requires auth)
func (h *LibraryHandler) Library(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	books, err := h.libService.SubscriptionLibrary(c.Request.Context(), userID)
	if err != nil {
		response.ErrorFrom(c, "failed to load library", err)
		return
	}

	response.Success(c, http.StatusOK, "library retrieved", books)
}

// Read streams the ebook file when the user is entitled (requires auth)
func (h *LibraryHandler) Read(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	filePath, err := h.libService.ReadEbook(c.Request.Context(), userID, c.Param("slug"))
	if err != nil {
		response.ErrorFrom(c, "failed to open ebook", err)
		return
	}

	c.File(filePath)
}

// Access reports whether the user may open one book (requires auth)
func (h *LibraryHandler) Access(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid book id", err)
		return
	}

	allowed, err := h.libService.CanRead(c.Request.Context(), userID, productID)
	if err != nil {
		response.ErrorFrom(c, "failed to check access", err)
		return
	}

	response.Success(c, http.StatusOK, "access checked", library.AccessResponse{Access: allowed})
}

// SaveProgress stores the reading position (requires auth)
func (h *LibraryHandler) SaveProgress(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid book id", err)
		return
	}

	var req library.SaveProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	if err := h.libService.SaveProgress(c.Request.Context(), userID, productID, req.CFI); err != nil {
		response.ErrorFrom(c, "failed to save progress", err)
		return
	}

	response.Success(c, http.StatusOK, "progress saved", nil)
}

// GetProgress returns the saved position for one book (requires auth)
func (h *LibraryHandler) GetProgress(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid book id", err)
		return
	}

	cfi, err := h.libService.GetProgress(c.Request.Context(), userID, productID)
	if err != nil {
		response.ErrorFrom(c, "failed to load progress", err)
		return
	}

	response.Success(c, http.StatusOK, "progress retrieved", gin.H{"cfi": cfi})
}

// ContinueReading lists books with saved positions (requires auth)
func (h *LibraryHandler) ContinueReading(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	books, err := h.libService.ContinueReading(c.Request.Context(), userID)
	if err != nil {
		response.ErrorFrom(c, "failed to load reading list", err)
		return
	}

	response.Success(c, http.StatusOK, "reading list retrieved", books)
}

// AddBookmark saves a position bookmark (requires auth)
func (h *LibraryHandler) AddBookmark(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid book id", err)
		return
	}

	var req library.AddBookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	if err := h.libService.AddBookmark(c.Request.Context(), userID, productID, req.CFI, req.Label); err != nil {
		response.ErrorFrom(c, "failed to add bookmark", err)
		return
	}

	response.Success(c, http.StatusCreated, "bookmark added", nil)
}

// Bookmarks lists one book's bookmarks (requires auth)
func (h *LibraryHandler) Bookmarks(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid book id", err)
		return
	}

	bookmarks, err := h.libService.Bookmarks(c.Request.Context(), userID, productID)
	if err != nil {
		response.ErrorFrom(c, "failed to list bookmarks", err)
		return
	}

	response.Success(c, http.StatusOK, "bookmarks retrieved", bookmarks)
}

// RemoveBookmark deletes one bookmark by position (requires auth)
func (h *LibraryHandler) RemoveBookmark(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid book id", err)
		return
	}

	var req library.RemoveBookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	if err := h.libService.RemoveBookmark(c.Request.Context(), userID, productID, req.CFI); err != nil {
		response.ErrorFrom(c, "failed to remove bookmark", err)
		return
	}

	response.Success(c, http.StatusOK, "bookmark removed", nil)
}

// AllBookmarks lists every bookmark across books (requires auth)
func (h *LibraryHandler) AllBookmarks(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	bookmarks, err := h.libService.AllBookmarks(c.Request.Context(), userID)
	if err != nil {
		response.ErrorFrom(c, "failed to list bookmarks", err)
		return
	}

	response.Success(c, http.StatusOK, "bookmarks retrieved", bookmarks)
}

// IsFavorite reports whether the book is favorited (requires auth)
func (h *LibraryHandler) IsFavorite(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid book id", err)
		return
	}

	favorite, err := h.libService.IsFavorite(c.Request.Context(), userID, productID)
	if err != nil {
		response.ErrorFrom(c, "failed to check favorite", err)
		return
	}

	response.Success(c, http.StatusOK, "favorite checked", gin.H{"favorite": favorite})
}

// AddFavorite marks a book as favorite (requires auth)
func (h *LibraryHandler) AddFavorite(c *gin.Context) {
	h.setFavorite(c, true)
}

// RemoveFavorite unmarks a favorite book (requires auth)
func (h *LibraryHandler) RemoveFavorite(c *gin.Context) {
	h.setFavorite(c, false)
}

func (h *LibraryHandler) setFavorite(c *gin.Context, favorite bool) {
	userID := middleware.MustGetUserID(c)

	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid book id", err)
		return
	}

	if err := h.libService.SetFavorite(c.Request.Context(), userID, productID, favorite); err != nil {
		response.ErrorFrom(c, "failed to update favorite", err)
		return
	}

	response.Success(c, http.StatusOK, "favorite updated", nil)
}

// Favorites lists the user's favorited books (requires auth)
func (h *LibraryHandler) Favorites(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	books, err := h.libService.Favorites(c.Request.Context(), userID)
	if err != nil {
		response.ErrorFrom(c, "failed to list favorites", err)
		return
	}

	response.Success(c, http.StatusOK, "favorites retrieved", books)
}
