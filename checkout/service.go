package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"farmstand-backend/cart"
	"farmstand-backend/models"
	"farmstand-backend/store"
)

// ValidationError marks failures the user can fix (empty cart, not signed
// in). They are checked before any write and map to 4xx responses.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

const (
	ErrNotSignedIn = ValidationError("no authenticated user")
	ErrEmptyCart   = ValidationError("cart is empty")
)

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v ValidationError
	return errors.As(err, &v)
}

type OrderStore interface {
	Create(ctx context.Context, order models.Order) (models.Order, error)
	ListByUser(ctx context.Context, userID string, ordered bool) ([]models.Order, error)
}

type ShopDirectory interface {
	Get(ctx context.Context, id string) (models.Shop, error)
}

type ProfileStore interface {
	Get(ctx context.Context, id string) (models.User, error)
}

// Notifier delivers best-effort push notifications. Implementations must
// not block the caller.
type Notifier interface {
	OrderPlaced(user models.User, order models.Order)
}

// Service converts cart state into durable order records and projects order
// history back out.
type Service struct {
	Orders OrderStore
	Shops  ShopDirectory
	Users  ProfileStore
	Cart   *cart.Manager
	Notify Notifier // optional
}

// PlaceOrder snapshots the user's cart into a new pending order, then resets
// the cart. The order is created first; the cart is cleared only after the
// create is confirmed, so a failed create never loses cart contents. A
// failed clear after a successful create is logged and tolerated: the order
// stands and the stale cart is the lesser harm.
func (s *Service) PlaceOrder(ctx context.Context, userID, userEmail string) (models.Order, error) {
	if userID == "" {
		return models.Order{}, ErrNotSignedIn
	}

	items := s.Cart.Items(ctx, userID)
	if len(items) == 0 {
		return models.Order{}, ErrEmptyCart
	}

	// Delivery details come from the saved profile; a failed read degrades
	// to the placeholder sentinels rather than blocking the order.
	profile, err := s.Users.Get(ctx, userID)
	if err != nil {
		log.Printf("Error fetching user details for %s: %v", userID, err)
		profile = models.User{ID: userID, Email: userEmail}
	}

	order := models.Order{
		UserID:          userID,
		UserEmail:       userEmail,
		Items:           orderLines(items),
		Total:           models.CartTotal(items),
		Status:          models.OrderStatusPending,
		DeliveryAddress: orPlaceholder(profile.DeliveryAddress),
		ContactNumber:   orPlaceholder(profile.ContactNumber),
	}

	created, err := s.Orders.Create(ctx, order)
	if err != nil {
		return models.Order{}, fmt.Errorf("create order: %w", err)
	}

	if err := s.Cart.ClearAndPersist(ctx, userID); err != nil {
		log.Printf("Error clearing cart for user %s after order %s: %v", userID, created.ID, err)
	}

	if s.Notify != nil {
		s.Notify.OrderPlaced(profile, created)
	}

	return created, nil
}

// History returns the user's orders, most recent first, with shop display
// names re-resolved per line. When the ordered query fails with a
// precondition-class error (sort index not provisioned), it falls back to an
// unordered fetch sorted in memory.
func (s *Service) History(ctx context.Context, userID string) ([]models.Order, error) {
	if userID == "" {
		return nil, ErrNotSignedIn
	}

	orders, err := s.Orders.ListByUser(ctx, userID, true)
	if err != nil {
		if !store.IsPrecondition(err) {
			return nil, err
		}
		log.Printf("Ordered query unavailable for user %s, falling back to in-memory sort: %v", userID, err)
		orders, err = s.Orders.ListByUser(ctx, userID, false)
		if err != nil {
			return nil, err
		}
		sort.SliceStable(orders, func(i, j int) bool {
			return orders[i].CreatedAt.After(orders[j].CreatedAt)
		})
	}

	s.resolveShops(ctx, orders)
	return orders, nil
}

// resolveShops fills in per-line shop name and farmer id from the shops
// collection. These are presentation data, not part of the order snapshot;
// a missing shop or failed lookup yields the unknown sentinels and never
// aborts the listing.
func (s *Service) resolveShops(ctx context.Context, orders []models.Order) {
	resolved := make(map[string]models.Shop)
	failed := make(map[string]bool)

	for oi := range orders {
		for ii := range orders[oi].Items {
			item := &orders[oi].Items[ii]
			if item.ShopID == "" {
				item.ShopID = models.UnknownShopID
				item.ShopName = models.UnknownShopName
				item.FarmerID = models.UnknownFarmerID
				continue
			}

			shop, ok := resolved[item.ShopID]
			if !ok && !failed[item.ShopID] {
				var err error
				shop, err = s.Shops.Get(ctx, item.ShopID)
				if err != nil {
					if !errors.Is(err, store.ErrNotFound) {
						log.Printf("Error resolving shop %s: %v", item.ShopID, err)
					}
					failed[item.ShopID] = true
				} else {
					resolved[item.ShopID] = shop
					ok = true
				}
			}

			if ok {
				item.ShopName = shop.Name
				item.FarmerID = shop.FarmerID
			} else {
				item.ShopName = models.UnknownShopName
				item.FarmerID = models.UnknownFarmerID
			}
		}
	}
}

// orderLines deep-copies cart lines into order lines.
func orderLines(items []models.CartItem) []models.OrderItem {
	lines := make([]models.OrderItem, len(items))
	for i, item := range items {
		lines[i] = models.OrderItem{
			ID:       item.ID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
			Unit:     item.Unit,
			Image:    item.Image,
			ShopID:   item.ShopID,
			ShopName: item.ShopName,
			FarmerID: item.FarmerID,
		}
	}
	return lines
}

func orPlaceholder(v string) string {
	if v == "" {
		return models.AddressPlaceholder
	}
	return v
}
