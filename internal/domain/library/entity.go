// internal/domain/library/entity.go
package library

import (
	"database/sql"
	"time"
)

// PurchasedBook is an ebook the user owns through a successful order.
type PurchasedBook struct {
	ProductID   int64          `json:"product_id"`
	Title       string         `json:"title"`
	Slug        string         `json:"slug"`
	MainImage   sql.NullString `json:"main_image,omitempty"`
	Price       float64        `json:"price"`
	PurchasedAt time.Time      `json:"purchased_at"`
}

// Book is a library listing entry; subscription access covers every
// published ebook-capable title.
type Book struct {
	ID          int64          `json:"id"`
	Title       string         `json:"title"`
	Slug        string         `json:"slug"`
	MainImage   sql.NullString `json:"main_image,omitempty"`
	Description sql.NullString `json:"description,omitempty"`
}

type Progress struct {
	ProductID int64          `json:"id"`
	Title     string         `json:"title"`
	Slug      string         `json:"slug"`
	MainImage sql.NullString `json:"main_image,omitempty"`
	LastCFI   string         `json:"last_cfi"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type Bookmark struct {
	ID        int64     `json:"id"`
	CFI       string    `json:"cfi"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"created_at"`
}

// BookBookmark is a bookmark joined with its book for the all-bookmarks view.
type BookBookmark struct {
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	CFI       string    `json:"cfi"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"created_at"`
}
