// internal/handlers/catalog/catalog_handler.go
package catalog

import (
	"net/http"
	"strconv"

	"bookstore-service/internal/pkg/response"
	catalogUsecase "bookstore-service/internal/service/catalog"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogService *catalogUsecase.Service
}

func NewCatalogHandler(catalogService *catalogUsecase.Service) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// List returns the published storefront listing (public endpoint)
func (h *CatalogHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "24"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	products, err := h.catalogService.List(c.Request.Context(), limit, offset)
	if err != nil {
		response.ErrorFrom(c, "failed to list products", err)
		return
	}

	response.Success(c, http.StatusOK, "products retrieved", products)
}

// BySlug returns one published product (public endpoint)
func (h *CatalogHandler) BySlug(c *gin.Context) {
	product, err := h.catalogService.BySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.ErrorFrom(c, "failed to load product", err)
		return
	}

	response.Success(c, http.StatusOK, "product retrieved", product)
}
