package handlers

import (
	"context"

	"farmstand-backend/models"
)

// Store interfaces consumed by the handlers. Satisfied by the Firestore
// repositories in the store package and by in-memory fakes in tests.

type UserStore interface {
	Get(ctx context.Context, id string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	Create(ctx context.Context, user models.User) (models.User, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
}

type ProductCatalog interface {
	Get(ctx context.Context, id string) (models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
}

type ShopGetter interface {
	Get(ctx context.Context, id string) (models.Shop, error)
}

type AdminOrderStore interface {
	Get(ctx context.Context, id string) (models.Order, error)
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error
}

// StatusNotifier pushes fulfillment updates to the order's owner.
type StatusNotifier interface {
	OrderStatusChanged(user models.User, order models.Order)
}
