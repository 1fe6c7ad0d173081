package store

import (
	"context"
	"time"

	"farmstand-backend/models"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

// Orders reads and writes the orders collection. Documents get store-assigned
// ids and are never deleted by this service.
type Orders struct {
	Client *firestore.Client
}

func NewOrders(client *firestore.Client) *Orders {
	return &Orders{Client: client}
}

func (o *Orders) col() *firestore.CollectionRef {
	return o.Client.Collection("orders")
}

// Create writes a new order document and returns it with the assigned id.
func (o *Orders) Create(ctx context.Context, order models.Order) (models.Order, error) {
	if order.Status == "" {
		order.Status = models.OrderStatusPending
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}

	ref := o.col().NewDoc()
	if _, err := ref.Create(ctx, order); err != nil {
		return models.Order{}, err
	}
	order.ID = ref.ID
	return order, nil
}

// ListByUser returns the user's orders. With ordered set, the query asks the
// store to sort by creation time descending, which requires a provisioned
// composite index and fails with a precondition error without one; callers
// fall back to an unordered fetch plus their own sort in that case.
func (o *Orders) ListByUser(ctx context.Context, userID string, ordered bool) ([]models.Order, error) {
	q := o.col().Where("userId", "==", userID)
	if ordered {
		q = q.OrderBy("createdAt", firestore.Desc)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var orders []models.Order
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var order models.Order
		if err := snap.DataTo(&order); err != nil {
			return nil, err
		}
		order.ID = snap.Ref.ID
		if order.Status == "" {
			order.Status = models.OrderStatusPending
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func (o *Orders) Get(ctx context.Context, id string) (models.Order, error) {
	snap, err := o.col().Doc(id).Get(ctx)
	if err != nil {
		if IsNotFound(err) {
			return models.Order{}, ErrNotFound
		}
		return models.Order{}, err
	}

	var order models.Order
	if err := snap.DataTo(&order); err != nil {
		return models.Order{}, err
	}
	order.ID = snap.Ref.ID
	return order, nil
}

// UpdateStatus sets only the status field; the order snapshot itself stays
// immutable.
func (o *Orders) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error {
	_, err := o.col().Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: status},
	})
	if IsNotFound(err) {
		return ErrNotFound
	}
	return err
}
