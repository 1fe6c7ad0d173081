package handlers

import (
	"net/http"

	"farmstand-backend/store"

	"github.com/gin-gonic/gin"
)

type ShopHandler struct {
	Shops ShopGetter
}

func (h *ShopHandler) GetShop(c *gin.Context) {
	shop, err := h.Shops.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Shop not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch shop"})
		return
	}

	c.JSON(http.StatusOK, shop)
}
