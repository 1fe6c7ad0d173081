package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"farmstand-backend/models"
)

func TestRegister(t *testing.T) {
	app := newTestApp()

	w := app.request(t, "POST", "/api/auth/register", "", gin.H{
		"email":    "new@test.com",
		"password": "password123",
		"name":     "New User",
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Token        string      `json:"token"`
		RefreshToken string      `json:"refresh_token"`
		User         models.User `json:"user"`
	}
	decode(t, w, &resp)

	if resp.Token == "" || resp.RefreshToken == "" {
		t.Error("expected both tokens in response")
	}
	if resp.User.Email != "new@test.com" {
		t.Errorf("expected email new@test.com, got %s", resp.User.Email)
	}
	if resp.User.Role != "customer" {
		t.Errorf("expected role customer, got %s", resp.User.Role)
	}
	if resp.User.Password != "" {
		t.Error("password must not appear in the response")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app := newTestApp()
	app.seedUser(t, "taken@test.com", "password123", "customer")

	w := app.request(t, "POST", "/api/auth/register", "", gin.H{
		"email":    "taken@test.com",
		"password": "password123",
	})

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
}

func TestRegisterShortPassword(t *testing.T) {
	app := newTestApp()

	w := app.request(t, "POST", "/api/auth/register", "", gin.H{
		"email":    "short@test.com",
		"password": "short",
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestLogin(t *testing.T) {
	app := newTestApp()
	app.seedUser(t, "login@test.com", "password123", "customer")

	w := app.request(t, "POST", "/api/auth/login", "", gin.H{
		"email":    "login@test.com",
		"password": "password123",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}
	decode(t, w, &resp)
	if resp.Token == "" {
		t.Error("expected token in response")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	app := newTestApp()
	app.seedUser(t, "login@test.com", "password123", "customer")

	w := app.request(t, "POST", "/api/auth/login", "", gin.H{
		"email":    "login@test.com",
		"password": "wrong-password",
	})

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	app := newTestApp()

	w := app.request(t, "POST", "/api/auth/login", "", gin.H{
		"email":    "nobody@test.com",
		"password": "password123",
	})

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestGetProfile(t *testing.T) {
	app := newTestApp()
	user, token := app.seedUser(t, "profile@test.com", "password123", "customer")

	w := app.request(t, "GET", "/api/auth/profile", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var got models.User
	decode(t, w, &got)
	if got.ID != user.ID {
		t.Errorf("expected user %s, got %s", user.ID, got.ID)
	}
}

func TestGetProfileUnauthenticated(t *testing.T) {
	app := newTestApp()

	w := app.request(t, "GET", "/api/auth/profile", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestUpdateProfile(t *testing.T) {
	app := newTestApp()
	user, token := app.seedUser(t, "update@test.com", "password123", "customer")

	w := app.request(t, "PUT", "/api/auth/profile", token, gin.H{
		"delivery_address": "12 Orchard Lane",
		"contact_number":   "555-0101",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var got models.User
	decode(t, w, &got)
	if got.DeliveryAddress != "12 Orchard Lane" {
		t.Errorf("expected updated address, got %q", got.DeliveryAddress)
	}
	if got.ContactNumber != "555-0101" {
		t.Errorf("expected updated contact, got %q", got.ContactNumber)
	}

	stored, err := app.users.Get(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("failed to read back user: %v", err)
	}
	if stored.Name != "Test User" {
		t.Errorf("expected untouched fields preserved, got name %q", stored.Name)
	}
}

func TestUpdateProfileNoFields(t *testing.T) {
	app := newTestApp()
	_, token := app.seedUser(t, "empty@test.com", "password123", "customer")

	w := app.request(t, "PUT", "/api/auth/profile", token, gin.H{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestLogoutDropsCartSession(t *testing.T) {
	app := newTestApp()
	user, token := app.seedUser(t, "logout@test.com", "password123", "customer")

	app.request(t, "POST", "/api/cart", token, gin.H{"id": "p1", "name": "Apples", "price": 10})
	app.cart.Flush()

	w := app.request(t, "POST", "/api/auth/logout", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	// The mirror survives logout and is reloaded on the next session
	items := app.cart.Items(context.Background(), user.ID)
	if len(items) != 1 || items[0].ID != "p1" {
		t.Errorf("expected cart reloaded from mirror after logout, got %+v", items)
	}
}
