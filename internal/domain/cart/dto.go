// internal/domain/cart/dto.go
package cart

type AddToCartRequest struct {
	ProductID int64  `json:"product_id" binding:"required"`
	Format    Format `json:"format" binding:"required,oneof=ebook paperback"`
	Quantity  int    `json:"quantity"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

type CountResponse struct {
	Count int `json:"count"`
}
