package models

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// AddressPlaceholder is stored when the user has no saved delivery address
// or contact number at checkout time.
const AddressPlaceholder = "To be specified"

// Order is an immutable snapshot of a cart at the moment of purchase.
// Items and Total are copied from the cart, never referenced; later catalog
// price changes do not affect placed orders.
type Order struct {
	ID              string      `json:"id" firestore:"-"`
	UserID          string      `json:"user_id" firestore:"userId"`
	UserEmail       string      `json:"user_email" firestore:"userEmail"`
	Items           []OrderItem `json:"items" firestore:"items"`
	Total           float64     `json:"total" firestore:"total"`
	Status          OrderStatus `json:"status" firestore:"status"`
	CreatedAt       time.Time   `json:"created_at" firestore:"createdAt"`
	DeliveryAddress string      `json:"delivery_address" firestore:"deliveryAddress"`
	ContactNumber   string      `json:"contact_number" firestore:"contactNumber"`
}

// OrderItem is one line of an order. ShopName and FarmerID are denormalized
// display data: snapshotted at placement time and re-resolved from the shops
// collection when listing order history.
type OrderItem struct {
	ID       string  `json:"id" firestore:"id"`
	Name     string  `json:"name" firestore:"name"`
	Price    float64 `json:"price" firestore:"price"`
	Quantity int     `json:"quantity" firestore:"quantity"`
	Unit     string  `json:"unit" firestore:"unit"`
	Image    string  `json:"image" firestore:"image"`
	ShopID   string  `json:"shop_id" firestore:"shopId"`
	ShopName string  `json:"shop_name" firestore:"shopName"`
	FarmerID string  `json:"farmer_id" firestore:"farmerId"`
}

// AllowedTransitions defines the valid order status state machine. The
// storefront creates orders as pending; only the fulfillment side advances
// them.
var AllowedTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusCompleted:  {},
	OrderStatusCancelled:  {},
}

// IsValidTransition checks if a status transition is allowed.
func IsValidTransition(from, to OrderStatus) bool {
	allowed, exists := AllowedTransitions[from]
	if !exists {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}
