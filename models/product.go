package models

// Product is a catalog entry. Products are written by external admin
// tooling; this service only reads them.
type Product struct {
	ID          string  `json:"id" firestore:"-"`
	Name        string  `json:"name" firestore:"name"`
	Price       float64 `json:"price" firestore:"price"`
	Image       string  `json:"image" firestore:"image"`
	Unit        string  `json:"unit" firestore:"unit"`
	ShopID      string  `json:"shop_id" firestore:"shopId"`
	Description string  `json:"description,omitempty" firestore:"description"`
}
