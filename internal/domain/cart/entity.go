// internal/domain/cart/entity.go
package cart

import "database/sql"

type Format string

const (
	FormatEbook     Format = "ebook"
	FormatPaperback Format = "paperback"
)

type Line struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	ProductID int64  `json:"product_id"`
	Format    Format `json:"format"`
	Quantity  int    `json:"quantity"`
}

// PricedItem is a cart line joined against the catalog: unit price already
// resolved to the ebook sell price for ebook lines, the product sell price
// otherwise.
type PricedItem struct {
	ID        int64          `json:"id"`
	ProductID int64          `json:"product_id"`
	Format    Format         `json:"format"`
	Quantity  int            `json:"quantity"`
	Title     string         `json:"title"`
	Slug      string         `json:"slug"`
	MainImage sql.NullString `json:"main_image,omitempty"`
	UnitPrice float64        `json:"price"`
}

// EffectiveQuantity pins ebook lines to a single copy regardless of the
// stored quantity.
func (i *PricedItem) EffectiveQuantity() int {
	if i.Format == FormatEbook {
		return 1
	}
	return i.Quantity
}

// Quote is the priced snapshot of a cart, computed at checkout time.
type Quote struct {
	Items    []PricedItem `json:"items"`
	Subtotal float64      `json:"subtotal"`
	Shipping float64      `json:"shipping"`
	Total    float64      `json:"total"`
}
