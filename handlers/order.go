package handlers

import (
	"fmt"
	"log"
	"net/http"

	"farmstand-backend/checkout"
	"farmstand-backend/models"
	"farmstand-backend/store"
	"farmstand-backend/utils"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	Checkout *checkout.Service
	Orders   AdminOrderStore
	Users    UserStore
	Notify   StatusNotifier // optional
}

// CreateOrder places an order from the user's current cart. Validation
// failures (empty cart) come back as 400; a failed store write means the
// order was not placed and the cart is untouched.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	order, err := h.Checkout.PlaceOrder(c.Request.Context(), userID, c.GetString("user_email"))
	if err != nil {
		if checkout.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Error placing order for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		return
	}

	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) GetOrders(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	orders, err := h.Checkout.History(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Error fetching orders for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID := c.GetString("user_id")
	role := c.GetString("user_role")

	order, err := h.Orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	// Customers only see their own orders.
	if role != "admin" && order.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// UpdateOrderStatus is the fulfillment hook: admin-only, validated against
// the order status state machine. The order snapshot itself never changes.
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	var req struct {
		Status models.OrderStatus `json:"status" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	order, err := h.Orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if !models.IsValidTransition(order.Status, req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Invalid status transition from '%s' to '%s'", order.Status, req.Status),
		})
		return
	}

	if err := h.Orders.UpdateStatus(c.Request.Context(), order.ID, req.Status); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
		return
	}
	order.Status = req.Status

	// Push the update to the order's owner (non-blocking, best-effort).
	if h.Notify != nil && h.Users != nil {
		if user, err := h.Users.Get(c.Request.Context(), order.UserID); err == nil {
			h.Notify.OrderStatusChanged(user, order)
		} else if err != store.ErrNotFound {
			log.Printf("Error fetching user %s for status push: %v", order.UserID, err)
		}
	}

	c.JSON(http.StatusOK, order)
}
