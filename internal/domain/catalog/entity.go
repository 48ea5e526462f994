// internal/domain/catalog/entity.go
package catalog

import (
	"database/sql"
	"time"
)

type ProductType string

const (
	TypePhysical ProductType = "physical"
	TypeEbook    ProductType = "ebook"
	TypeBoth     ProductType = "both"

	StatusPublished = "published"
	StatusDraft     = "draft"
)

type Product struct {
	ID          int64          `json:"id"`
	Title       string         `json:"title"`
	Slug        string         `json:"slug"`
	Description sql.NullString `json:"description,omitempty"`
	MainImage   sql.NullString `json:"main_image,omitempty"`
	ProductType ProductType    `json:"product_type"`

	// Pricing (paperback)
	ListPrice float64 `json:"price"`
	SellPrice float64 `json:"sell_price"`

	// Physical stock; null for ebook-only titles
	Stock sql.NullInt32 `json:"stock,omitempty"`

	Tags   []string `json:"tags,omitempty"`
	Status string   `json:"status"`

	CreatedAt time.Time `json:"created_at"`
}

// HasEbook reports whether the product can carry an ebook asset.
func (p *Product) HasEbook() bool {
	return p.ProductType == TypeEbook || p.ProductType == TypeBoth
}

type Ebook struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"product_id"`
	FilePath  string  `json:"file_path"`
	ListPrice float64 `json:"price"`
	SellPrice float64 `json:"sell_price"`
}

// ProductDetail is a product joined with its optional ebook pricing.
type ProductDetail struct {
	Product
	EbookListPrice sql.NullFloat64 `json:"ebook_price,omitempty"`
	EbookSellPrice sql.NullFloat64 `json:"ebook_sell_price,omitempty"`
}
