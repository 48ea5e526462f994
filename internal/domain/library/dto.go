// internal/domain/library/dto.go
package library

type SaveProgressRequest struct {
	CFI string `json:"cfi" binding:"required"`
}

type AddBookmarkRequest struct {
	CFI   string `json:"cfi" binding:"required"`
	Label string `json:"label"`
}

type RemoveBookmarkRequest struct {
	CFI string `json:"cfi" binding:"required"`
}

type AccessResponse struct {
	Access    bool   `json:"access"`
	ExpiresAt string `json:"expires_at,omitempty"`
}
