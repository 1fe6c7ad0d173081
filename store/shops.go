package store

import (
	"context"

	"farmstand-backend/models"

	"cloud.google.com/go/firestore"
)

// Shops reads the shops collection, written by external admin tooling.
type Shops struct {
	Client *firestore.Client
}

func NewShops(client *firestore.Client) *Shops {
	return &Shops{Client: client}
}

func (s *Shops) Get(ctx context.Context, id string) (models.Shop, error) {
	snap, err := s.Client.Collection("shops").Doc(id).Get(ctx)
	if err != nil {
		if IsNotFound(err) {
			return models.Shop{}, ErrNotFound
		}
		return models.Shop{}, err
	}

	var shop models.Shop
	if err := snap.DataTo(&shop); err != nil {
		return models.Shop{}, err
	}
	shop.ID = snap.Ref.ID
	return shop, nil
}
