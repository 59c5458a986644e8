package catalog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/thread-heaven/storefront-api/internal/domain"
	"github.com/thread-heaven/storefront-api/internal/pkg/id"
	"github.com/thread-heaven/storefront-api/internal/pkg/validate"
)

// Image URLs handed to the storefront are presigned for this long.
const imageURLTTL = 1 * time.Hour

type Service interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, productID string) (*domain.Product, error)
	Create(ctx context.Context, req domain.CreateProductRequest) (*domain.Product, error)
	Update(ctx context.Context, productID string, req domain.UpdateProductRequest) (*domain.Product, error)
	Delete(ctx context.Context, productID string) error
	// UploadImage stores the image and records its key on the product.
	UploadImage(ctx context.Context, productID, filename string, r io.Reader) (*domain.Product, error)
}

type productStore interface {
	Put(ctx context.Context, p *domain.Product) error
	Get(ctx context.Context, productID string) (*domain.Product, error)
	Scan(ctx context.Context) ([]domain.Product, error)
	Update(ctx context.Context, productID string, updates map[string]interface{}) error
	Delete(ctx context.Context, productID string) error
}

type imageStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

type contentTyper func(filename string) string

type service struct {
	repo        productStore
	images      imageStore
	contentType contentTyper
}

type ServiceDeps struct {
	ProductRepo productStore
	ImageStore  imageStore
	ContentType contentTyper
}

func NewService(deps ServiceDeps) Service {
	return &service{
		repo:        deps.ProductRepo,
		images:      deps.ImageStore,
		contentType: deps.ContentType,
	}
}

func (s *service) List(ctx context.Context) ([]domain.Product, error) {
	products, err := s.repo.Scan(ctx)
	if err != nil {
		return nil, err
	}
	visible := products[:0]
	for i := range products {
		if !products[i].Enable {
			continue
		}
		s.attachImageURL(ctx, &products[i])
		visible = append(visible, products[i])
	}
	return visible, nil
}

func (s *service) Get(ctx context.Context, productID string) (*domain.Product, error) {
	p, err := s.repo.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	s.attachImageURL(ctx, p)
	return p, nil
}

func (s *service) Create(ctx context.Context, req domain.CreateProductRequest) (*domain.Product, error) {
	if err := validate.Struct(&req); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), domain.ErrValidation)
	}
	now := time.Now().UTC()
	p := &domain.Product{
		ProductID:   id.New(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Sizes:       req.Sizes,
		Enable:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Put(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Update(ctx context.Context, productID string, req domain.UpdateProductRequest) (*domain.Product, error) {
	if err := validate.Struct(&req); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), domain.ErrValidation)
	}
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Sizes != nil {
		updates["sizes"] = req.Sizes
	}
	if req.Enable != nil {
		updates["enable"] = *req.Enable
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update: %w", domain.ErrValidation)
	}
	if err := s.repo.Update(ctx, productID, updates); err != nil {
		return nil, err
	}
	return s.Get(ctx, productID)
}

func (s *service) Delete(ctx context.Context, productID string) error {
	p, err := s.repo.Get(ctx, productID)
	if err != nil {
		return err
	}
	if p.ImageKey != "" {
		if err := s.images.Delete(ctx, p.ImageKey); err != nil {
			slog.Warn("failed to delete product image", "product_id", productID, "err", err)
		}
	}
	return s.repo.Delete(ctx, productID)
}

func (s *service) UploadImage(ctx context.Context, productID, filename string, r io.Reader) (*domain.Product, error) {
	if _, err := s.repo.Get(ctx, productID); err != nil {
		return nil, err
	}
	key := fmt.Sprintf("products/%s/%s", productID, filename)
	if _, err := s.images.Upload(ctx, key, r, s.contentType(filename)); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, productID, map[string]interface{}{"image_key": key}); err != nil {
		return nil, err
	}
	return s.Get(ctx, productID)
}

// attachImageURL resolves the stored key into a presigned URL. Failures leave
// the product without an image URL rather than failing the read.
func (s *service) attachImageURL(ctx context.Context, p *domain.Product) {
	if p.ImageKey == "" {
		return
	}
	url, err := s.images.PresignedURL(ctx, p.ImageKey, imageURLTTL)
	if err != nil {
		slog.Warn("failed to presign product image", "product_id", p.ProductID, "err", err)
		return
	}
	p.ImageURL = url
}
