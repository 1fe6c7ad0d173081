package models

// CartItem is one product line in a user's cart. ID is the product id;
// a cart never holds two lines for the same product.
type CartItem struct {
	ID       string  `json:"id" firestore:"id"`
	Name     string  `json:"name" firestore:"name"`
	Price    float64 `json:"price" firestore:"price"`
	Quantity int     `json:"quantity" firestore:"quantity"`
	Unit     string  `json:"unit" firestore:"unit"`
	Image    string  `json:"image,omitempty" firestore:"image"`
	ShopID   string  `json:"shop_id" firestore:"shopId"`
	ShopName string  `json:"shop_name,omitempty" firestore:"shopName"`
	FarmerID string  `json:"farmer_id,omitempty" firestore:"farmerId"`
}

// Cart is the stored shape of the carts/<userID> document. The document is
// fully replaced on every persist; there is no per-line update.
type Cart struct {
	Items []CartItem `json:"items" firestore:"items"`
}

// CartTotal sums price*quantity over the given lines. The total is always
// derived, never stored.
func CartTotal(items []CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
