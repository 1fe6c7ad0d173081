package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"farmstand-backend/models"

	"github.com/redis/go-redis/v9"
)

const (
	UserCacheTTL    = 15 * time.Minute
	ProductCacheTTL = 10 * time.Minute

	productsKey = "products"
)

// Cache is a pass-through key-value cache in front of the document store.
// Every method is best-effort: a nil *Cache or an unreachable server turns
// each call into a no-op / miss, and errors are logged, never returned.
type Cache struct {
	client *redis.Client
}

// Connect opens a Redis client from REDIS_ADDR / REDIS_PASSWORD. Returns an
// error when REDIS_ADDR is unset or the server does not answer a ping; the
// caller may run without a cache.
func Connect(ctx context.Context) (*Cache, error) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil, fmt.Errorf("REDIS_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     os.Getenv("REDIS_PASSWORD"),
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	log.Println("Redis connected at", addr)
	return &Cache{client: client}, nil
}

func (c *Cache) enabled() bool {
	return c != nil && c.client != nil
}

// SetUser caches the session's user record, the server-side analogue of the
// client keeping a serialized user in local storage.
func (c *Cache) SetUser(ctx context.Context, user models.User) {
	if !c.enabled() {
		return
	}
	data, err := json.Marshal(user)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, "user:"+user.ID, data, UserCacheTTL).Err(); err != nil {
		log.Printf("Error caching user %s: %v", user.ID, err)
	}
}

func (c *Cache) GetUser(ctx context.Context, id string) (models.User, bool) {
	if !c.enabled() {
		return models.User{}, false
	}
	data, err := c.client.Get(ctx, "user:"+id).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Error reading cached user %s: %v", id, err)
		}
		return models.User{}, false
	}

	var user models.User
	if err := json.Unmarshal([]byte(data), &user); err != nil {
		return models.User{}, false
	}
	return user, true
}

func (c *Cache) DeleteUser(ctx context.Context, id string) {
	if !c.enabled() {
		return
	}
	if err := c.client.Del(ctx, "user:"+id).Err(); err != nil {
		log.Printf("Error evicting cached user %s: %v", id, err)
	}
}

// SetProducts caches the catalog listing as one JSON blob.
func (c *Cache) SetProducts(ctx context.Context, products []models.Product) {
	if !c.enabled() {
		return
	}
	data, err := json.Marshal(products)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, productsKey, data, ProductCacheTTL).Err(); err != nil {
		log.Printf("Error caching products: %v", err)
	}
}

func (c *Cache) GetProducts(ctx context.Context) ([]models.Product, bool) {
	if !c.enabled() {
		return nil, false
	}
	data, err := c.client.Get(ctx, productsKey).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Error reading cached products: %v", err)
		}
		return nil, false
	}

	var products []models.Product
	if err := json.Unmarshal([]byte(data), &products); err != nil {
		return nil, false
	}
	return products, true
}

func (c *Cache) Close() error {
	if !c.enabled() {
		return nil
	}
	return c.client.Close()
}
