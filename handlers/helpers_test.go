package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"farmstand-backend/cart"
	"farmstand-backend/checkout"
	"farmstand-backend/models"
	"farmstand-backend/routes"
	"farmstand-backend/store"
	"farmstand-backend/utils"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", "test-secret-key-for-unit-tests")
	os.Exit(m.Run())
}

// In-memory fakes standing in for the Firestore repositories.

type memUsers struct {
	mu     sync.Mutex
	users  map[string]models.User
	nextID int
}

func newMemUsers() *memUsers {
	return &memUsers{users: make(map[string]models.User)}
}

func (s *memUsers) Get(ctx context.Context, id string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return models.User{}, store.ErrNotFound
	}
	return u, nil
}

func (s *memUsers) GetByEmail(ctx context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, store.ErrNotFound
}

func (s *memUsers) Create(ctx context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	user.ID = fmt.Sprintf("user-%d", s.nextID)
	user.CreatedAt = time.Now().UTC()
	s.users[user.ID] = user
	return user, nil
}

func (s *memUsers) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return store.ErrNotFound
	}
	for k, v := range fields {
		val, _ := v.(string)
		switch k {
		case "name":
			u.Name = val
		case "profileImage":
			u.ProfileImage = val
		case "deliveryAddress":
			u.DeliveryAddress = val
		case "paymentMethod":
			u.PaymentMethod = val
		case "shippingAddress":
			u.ShippingAddress = val
		case "contactNumber":
			u.ContactNumber = val
		case "fcmToken":
			u.FCMToken = val
		}
	}
	s.users[id] = u
	return nil
}

type memProducts struct {
	products []models.Product
	err      error
}

func (s *memProducts) Get(ctx context.Context, id string) (models.Product, error) {
	if s.err != nil {
		return models.Product{}, s.err
	}
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, store.ErrNotFound
}

func (s *memProducts) List(ctx context.Context) ([]models.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.products, nil
}

type memShops struct {
	shops map[string]models.Shop
}

func (s *memShops) Get(ctx context.Context, id string) (models.Shop, error) {
	shop, ok := s.shops[id]
	if !ok {
		return models.Shop{}, store.ErrNotFound
	}
	return shop, nil
}

type memOrders struct {
	mu     sync.Mutex
	orders map[string]models.Order
	nextID int
}

func newMemOrders() *memOrders {
	return &memOrders{orders: make(map[string]models.Order)}
}

func (s *memOrders) Create(ctx context.Context, order models.Order) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	order.ID = fmt.Sprintf("order-%d", s.nextID)
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}
	s.orders[order.ID] = order
	return order, nil
}

func (s *memOrders) ListByUser(ctx context.Context, userID string, ordered bool) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *memOrders) Get(ctx context.Context, id string) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return models.Order{}, store.ErrNotFound
	}
	return o, nil
}

func (s *memOrders) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return store.ErrNotFound
	}
	o.Status = status
	s.orders[id] = o
	return nil
}

type memCartStore struct {
	mu    sync.Mutex
	items map[string][]models.CartItem
}

func newMemCartStore() *memCartStore {
	return &memCartStore{items: make(map[string][]models.CartItem)}
}

func (s *memCartStore) Load(ctx context.Context, userID string) ([]models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items[userID], nil
}

func (s *memCartStore) Save(ctx context.Context, userID string, items []models.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[userID] = items
	return nil
}

// testApp wires the full router against in-memory stores.
type testApp struct {
	router   *gin.Engine
	users    *memUsers
	products *memProducts
	shops    *memShops
	orders   *memOrders
	cart     *cart.Manager
}

func newTestApp() *testApp {
	app := &testApp{
		users:    newMemUsers(),
		products: &memProducts{},
		shops:    &memShops{shops: make(map[string]models.Shop)},
		orders:   newMemOrders(),
	}
	app.cart = cart.New(newMemCartStore())

	r := gin.New()
	routes.SetupRoutes(r, routes.Deps{
		Users:    app.users,
		Products: app.products,
		Shops:    app.shops,
		Orders:   app.orders,
		Cart:     app.cart,
		Checkout: &checkout.Service{
			Orders: app.orders,
			Shops:  app.shops,
			Users:  app.users,
			Cart:   app.cart,
		},
	})
	app.router = r
	return app
}

// seedUser inserts a user with a bcrypt password and returns it with a token.
func (app *testApp) seedUser(t *testing.T, email, password, role string) (models.User, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user, err := app.users.Create(context.Background(), models.User{
		Email:    email,
		Password: string(hash),
		Name:     "Test User",
		Role:     role,
	})
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	token, err := utils.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return user, token
}

func (app *testApp) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
}
