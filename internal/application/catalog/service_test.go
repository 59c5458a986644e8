package catalog

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/thread-heaven/storefront-api/internal/domain"
)

// --- mocks ---

type mockProductStore struct{ mock.Mock }

func (m *mockProductStore) Put(ctx context.Context, p *domain.Product) error {
	return m.Called(ctx, p).Error(0)
}
func (m *mockProductStore) Get(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if p, _ := args.Get(0).(*domain.Product); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockProductStore) Scan(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Product), args.Error(1)
}
func (m *mockProductStore) Update(ctx context.Context, productID string, updates map[string]interface{}) error {
	return m.Called(ctx, productID, updates).Error(0)
}
func (m *mockProductStore) Delete(ctx context.Context, productID string) error {
	return m.Called(ctx, productID).Error(0)
}

type mockImageStore struct{ mock.Mock }

func (m *mockImageStore) Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	args := m.Called(ctx, key, r, contentType)
	return args.String(0), args.Error(1)
}
func (m *mockImageStore) PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, key, ttl)
	return args.String(0), args.Error(1)
}
func (m *mockImageStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func newTestService(repo *mockProductStore, img *mockImageStore) Service {
	return NewService(ServiceDeps{
		ProductRepo: repo,
		ImageStore:  img,
		ContentType: func(string) string { return "image/png" },
	})
}

// --- tests ---

func TestList_FiltersDisabledAndAttachesImageURLs(t *testing.T) {
	repo := &mockProductStore{}
	img := &mockImageStore{}
	repo.On("Scan", mock.Anything).Return([]domain.Product{
		{ProductID: "p1", Name: "Heavy Tee", Enable: true, ImageKey: "products/p1/tee.png"},
		{ProductID: "p2", Name: "Retired Tee", Enable: false},
	}, nil)
	img.On("PresignedURL", mock.Anything, "products/p1/tee.png", mock.Anything).
		Return("https://s3/signed/tee.png", nil)

	svc := newTestService(repo, img)
	products, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "p1", products[0].ProductID)
	assert.Equal(t, "https://s3/signed/tee.png", products[0].ImageURL)
}

func TestList_PresignFailure_NonFatal(t *testing.T) {
	repo := &mockProductStore{}
	img := &mockImageStore{}
	repo.On("Scan", mock.Anything).Return([]domain.Product{
		{ProductID: "p1", Enable: true, ImageKey: "k"},
	}, nil)
	img.On("PresignedURL", mock.Anything, "k", mock.Anything).Return("", errors.New("s3 down"))

	svc := newTestService(repo, img)
	products, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Empty(t, products[0].ImageURL)
}

func TestCreate_Validates(t *testing.T) {
	svc := newTestService(&mockProductStore{}, &mockImageStore{})
	_, err := svc.Create(context.Background(), domain.CreateProductRequest{Price: 10})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreate_HappyPath(t *testing.T) {
	repo := &mockProductStore{}
	repo.On("Put", mock.Anything, mock.MatchedBy(func(p *domain.Product) bool {
		return p.Name == "Heavy Tee" && p.Enable && p.ProductID != ""
	})).Return(nil)

	svc := newTestService(repo, &mockImageStore{})
	p, err := svc.Create(context.Background(), domain.CreateProductRequest{
		Name: "Heavy Tee", Price: 29.99, Sizes: []string{"S", "M", "L"},
	})

	require.NoError(t, err)
	assert.Equal(t, 29.99, p.Price)
	repo.AssertExpectations(t)
}

func TestUpdate_NoFields(t *testing.T) {
	svc := newTestService(&mockProductStore{}, &mockImageStore{})
	_, err := svc.Update(context.Background(), "p1", domain.UpdateProductRequest{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUploadImage_RecordsKey(t *testing.T) {
	repo := &mockProductStore{}
	img := &mockImageStore{}
	repo.On("Get", mock.Anything, "p1").Return(&domain.Product{ProductID: "p1", Enable: true}, nil)
	img.On("Upload", mock.Anything, "products/p1/tee.png", mock.Anything, "image/png").
		Return("products/p1/tee.png", nil)
	repo.On("Update", mock.Anything, "p1", map[string]interface{}{"image_key": "products/p1/tee.png"}).
		Return(nil)

	svc := newTestService(repo, img)
	_, err := svc.UploadImage(context.Background(), "p1", "tee.png", strings.NewReader("png-bytes"))

	require.NoError(t, err)
	repo.AssertExpectations(t)
	img.AssertExpectations(t)
}

func TestUploadImage_UnknownProduct(t *testing.T) {
	repo := &mockProductStore{}
	repo.On("Get", mock.Anything, "nope").Return(nil, domain.ErrNotFound)

	svc := newTestService(repo, &mockImageStore{})
	_, err := svc.UploadImage(context.Background(), "nope", "tee.png", strings.NewReader("x"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
