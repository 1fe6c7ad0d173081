package store

import (
	"context"

	"farmstand-backend/models"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

// Products reads the products collection, written by external admin tooling.
type Products struct {
	Client *firestore.Client
}

func NewProducts(client *firestore.Client) *Products {
	return &Products{Client: client}
}

func (p *Products) col() *firestore.CollectionRef {
	return p.Client.Collection("products")
}

func (p *Products) Get(ctx context.Context, id string) (models.Product, error) {
	snap, err := p.col().Doc(id).Get(ctx)
	if err != nil {
		if IsNotFound(err) {
			return models.Product{}, ErrNotFound
		}
		return models.Product{}, err
	}

	var product models.Product
	if err := snap.DataTo(&product); err != nil {
		return models.Product{}, err
	}
	product.ID = snap.Ref.ID
	return product, nil
}

func (p *Products) List(ctx context.Context) ([]models.Product, error) {
	iter := p.col().Documents(ctx)
	defer iter.Stop()

	var products []models.Product
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var product models.Product
		if err := snap.DataTo(&product); err != nil {
			return nil, err
		}
		product.ID = snap.Ref.ID
		products = append(products, product)
	}
	return products, nil
}
