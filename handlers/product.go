package handlers

import (
	"log"
	"net/http"

	"farmstand-backend/cache"
	"farmstand-backend/models"
	"farmstand-backend/store"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	Products ProductCatalog
	Shops    ShopGetter
	Cache    *cache.Cache
}

// GetProducts lists the catalog, cache-first. A failed store read degrades
// to an empty listing rather than an error screen.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	ctx := c.Request.Context()

	if products, ok := h.Cache.GetProducts(ctx); ok {
		c.JSON(http.StatusOK, products)
		return
	}

	products, err := h.Products.List(ctx)
	if err != nil {
		log.Printf("Error fetching products: %v", err)
		c.JSON(http.StatusOK, []models.Product{})
		return
	}
	if products == nil {
		products = []models.Product{}
	}

	h.Cache.SetProducts(ctx, products)
	c.JSON(http.StatusOK, products)
}

// GetProduct returns one product with its shop resolved via a secondary
// lookup. A missing or unreadable shop record is omitted, never an error.
func (h *ProductHandler) GetProduct(c *gin.Context) {
	ctx := c.Request.Context()

	product, err := h.Products.Get(ctx, c.Param("id"))
	if err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}

	resp := gin.H{"product": product}
	if product.ShopID != "" {
		if shop, err := h.Shops.Get(ctx, product.ShopID); err == nil {
			resp["shop"] = shop
		} else if err != store.ErrNotFound {
			log.Printf("Error resolving shop %s: %v", product.ShopID, err)
		}
	}

	c.JSON(http.StatusOK, resp)
}
