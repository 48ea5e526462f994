// internal/domain/wishlist/entity.go
package wishlist

import "database/sql"

type Item struct {
	ProductID int64          `json:"id"`
	Title     string         `json:"title"`
	Slug      string         `json:"slug"`
	MainImage sql.NullString `json:"main_image,omitempty"`
	SellPrice float64        `json:"sell_price"`
}

type ToggleResponse struct {
	Status string `json:"status"` // added, removed
}
