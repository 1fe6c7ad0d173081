package cache

import (
	"context"
	"os"
	"testing"

	"farmstand-backend/models"
)

// A nil cache must behave as an always-miss no-op so the server can run
// without Redis.
func TestNilCacheIsNoOp(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	c.SetUser(ctx, models.User{ID: "u1"})
	if _, ok := c.GetUser(ctx, "u1"); ok {
		t.Error("expected miss from nil cache")
	}
	c.DeleteUser(ctx, "u1")

	c.SetProducts(ctx, []models.Product{{ID: "p1"}})
	if _, ok := c.GetProducts(ctx); ok {
		t.Error("expected miss from nil cache")
	}

	if err := c.Close(); err != nil {
		t.Errorf("expected nil close error, got %v", err)
	}
}

func TestConnectRequiresAddr(t *testing.T) {
	os.Unsetenv("REDIS_ADDR")

	if _, err := Connect(context.Background()); err == nil {
		t.Error("expected error when REDIS_ADDR is unset")
	}
}
