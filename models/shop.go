package models

// Shop display name fallbacks used when a shop record is missing or a
// lookup fails. Lookups degrade to these sentinels, never to an error.
const (
	UnknownShopName = "Unknown Shop"
	UnknownFarmerID = "unknown"
	UnknownShopID   = "unknown"
)

type Shop struct {
	ID            string  `json:"id" firestore:"-"`
	Name          string  `json:"name" firestore:"name"`
	FarmerID      string  `json:"farmer_id" firestore:"farmerId"`
	Location      string  `json:"location" firestore:"location"`
	Image         string  `json:"image,omitempty" firestore:"image"`
	Rating        float64 `json:"rating,omitempty" firestore:"rating"`
	ProductsCount int     `json:"products_count,omitempty" firestore:"productsCount"`
}
