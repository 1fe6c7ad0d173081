package store

import (
	"context"

	"farmstand-backend/models"

	"cloud.google.com/go/firestore"
)

// Carts reads and writes the carts collection: one document per user id,
// fully replaced on every save.
type Carts struct {
	Client *firestore.Client
}

func NewCarts(client *firestore.Client) *Carts {
	return &Carts{Client: client}
}

func (c *Carts) col() *firestore.CollectionRef {
	return c.Client.Collection("carts")
}

// Load returns the user's stored cart lines. A missing document is an empty
// cart, not an error.
func (c *Carts) Load(ctx context.Context, userID string) ([]models.CartItem, error) {
	snap, err := c.col().Doc(userID).Get(ctx)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	var cart models.Cart
	if err := snap.DataTo(&cart); err != nil {
		return nil, err
	}

	// Older cart documents may predate the shop fields.
	for i := range cart.Items {
		if cart.Items[i].ShopID == "" {
			cart.Items[i].ShopID = models.UnknownShopID
		}
		if cart.Items[i].ShopName == "" {
			cart.Items[i].ShopName = models.UnknownShopName
		}
		if cart.Items[i].FarmerID == "" {
			cart.Items[i].FarmerID = models.UnknownFarmerID
		}
	}
	return cart.Items, nil
}

// Save replaces the user's cart document with the given lines.
func (c *Carts) Save(ctx context.Context, userID string, items []models.CartItem) error {
	if items == nil {
		items = []models.CartItem{}
	}
	_, err := c.col().Doc(userID).Set(ctx, models.Cart{Items: items})
	return err
}
