package handlers

import (
	"net/http"

	"farmstand-backend/cart"
	"farmstand-backend/models"
	"farmstand-backend/utils"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	Cart *cart.Manager
}

func (h *CartHandler) cartResponse(c *gin.Context, userID string) gin.H {
	items := h.Cart.Items(c.Request.Context(), userID)
	if items == nil {
		items = []models.CartItem{}
	}
	return gin.H{
		"items": items,
		"total": models.CartTotal(items),
	}
}

func (h *CartHandler) GetCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	c.JSON(http.StatusOK, h.cartResponse(c, userID))
}

// AddToCart adds one unit of a product. Repeated adds of the same product
// increment the existing line.
func (h *CartHandler) AddToCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		ID       string  `json:"id" binding:"required"`
		Name     string  `json:"name" binding:"required"`
		Price    float64 `json:"price" binding:"gte=0"`
		Unit     string  `json:"unit"`
		Image    string  `json:"image"`
		ShopID   string  `json:"shop_id"`
		ShopName string  `json:"shop_name"`
		FarmerID string  `json:"farmer_id"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	h.Cart.AddItem(c.Request.Context(), userID, models.CartItem{
		ID:       req.ID,
		Name:     req.Name,
		Price:    req.Price,
		Unit:     req.Unit,
		Image:    req.Image,
		ShopID:   req.ShopID,
		ShopName: req.ShopName,
		FarmerID: req.FarmerID,
	})

	c.JSON(http.StatusOK, h.cartResponse(c, userID))
}

// UpdateCartItem sets a line's quantity. A quantity below 1 removes the line.
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		Quantity *int `json:"quantity" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	h.Cart.UpdateQuantity(c.Request.Context(), userID, c.Param("id"), *req.Quantity)

	c.JSON(http.StatusOK, h.cartResponse(c, userID))
}

func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	h.Cart.RemoveItem(c.Request.Context(), userID, c.Param("id"))

	c.JSON(http.StatusOK, h.cartResponse(c, userID))
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	h.Cart.Clear(c.Request.Context(), userID)

	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
