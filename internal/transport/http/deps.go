package http

import (
	"context"
	"io"
	"time"

	"github.com/thread-heaven/storefront-api/internal/domain"
)

// OrderRepository is the minimal interface the router requires from the
// orders table.
type OrderRepository interface {
	Put(ctx context.Context, o *domain.Order) error
	Get(ctx context.Context, orderID string) (*domain.Order, error)
	ScanPage(ctx context.Context, limit int32, cursor string) ([]domain.Order, string, error)
	ListByEmail(ctx context.Context, email string) ([]domain.Order, error)
}

// UserRepository is the minimal interface the router requires from the
// users table.
type UserRepository interface {
	Put(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

// ProductRepository is the minimal interface the router requires from the
// products table.
type ProductRepository interface {
	Put(ctx context.Context, p *domain.Product) error
	Get(ctx context.Context, productID string) (*domain.Product, error)
	Scan(ctx context.Context) ([]domain.Product, error)
	Update(ctx context.Context, productID string, updates map[string]interface{}) error
	Delete(ctx context.Context, productID string) error
}

// ImageStore is the minimal interface the router requires from the object
// storage backend.
type ImageStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}
