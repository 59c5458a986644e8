package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/thread-heaven/storefront-api/internal/application/order"
	"github.com/thread-heaven/storefront-api/internal/domain"
)

// --- mock ---

type mockOrderSvc struct{ mock.Mock }

func (m *mockOrderSvc) Create(ctx context.Context, req domain.CreateOrderRequest) (*order.CreateResult, error) {
	args := m.Called(ctx, req)
	if r, _ := args.Get(0).(*order.CreateResult); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrderSvc) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	if o, _ := args.Get(0).(*domain.Order); o != nil {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrderSvc) List(ctx context.Context, limit int, cursor string) ([]domain.Order, string, error) {
	args := m.Called(ctx, limit, cursor)
	return args.Get(0).([]domain.Order), args.String(1), args.Error(2)
}

func (m *mockOrderSvc) ListByEmail(ctx context.Context, email string) ([]domain.Order, error) {
	args := m.Called(ctx, email)
	return args.Get(0).([]domain.Order), args.Error(1)
}

// withChiID injects a chi URL param "id" into the request context.
func withChiID(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func checkoutBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(domain.CreateOrderRequest{
		Customer: domain.Customer{
			Name: "Alice Smith", Email: "alice@example.com",
			Address: "1 Main St", City: "Springfield", Zip: "12345", Country: "US",
		},
		Items: []domain.Item{
			{ID: "p1", Name: "Vintage Tee", Price: 20, Quantity: 2, Size: "M"},
		},
		PayPalTransactionID: "PAY-123",
	})
	require.NoError(t, err)
	return body
}

// --- Create tests ---

func TestOrderCreate_InvalidBody(t *testing.T) {
	svc := &mockOrderSvc{}
	h := NewOrderHandler(svc)
	r := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewBufferString("not-json"))
	rr := httptest.NewRecorder()
	h.Create(rr, r)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	svc.AssertNotCalled(t, "Create")
}

func TestOrderCreate_ValidationError(t *testing.T) {
	svc := &mockOrderSvc{}
	svc.On("Create", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("items are required: %w", domain.ErrValidation))
	h := NewOrderHandler(svc)
	r := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewBufferString(`{"customer":{}}`))
	rr := httptest.NewRecorder()
	h.Create(rr, r)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	svc.AssertExpectations(t)
}

func TestOrderCreate_UnexpectedErrorIsOpaque(t *testing.T) {
	svc := &mockOrderSvc{}
	svc.On("Create", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("dynamo exploded"))
	h := NewOrderHandler(svc)
	r := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader(checkoutBody(t)))
	rr := httptest.NewRecorder()
	h.Create(rr, r)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "dynamo")
	svc.AssertExpectations(t)
}

func TestOrderCreate_HappyPath(t *testing.T) {
	svc := &mockOrderSvc{}
	svc.On("Create", mock.Anything, mock.Anything).
		Return(&order.CreateResult{OrderID: "TH-1700000000", EmailSent: true}, nil)
	h := NewOrderHandler(svc)
	r := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader(checkoutBody(t)))
	rr := httptest.NewRecorder()
	h.Create(rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp OrderEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "TH-1700000000", resp.OrderID)
	assert.True(t, resp.EmailSent)
	svc.AssertExpectations(t)
}

func TestOrderCreate_ReportsEmailNotSent(t *testing.T) {
	svc := &mockOrderSvc{}
	svc.On("Create", mock.Anything, mock.Anything).
		Return(&order.CreateResult{OrderID: "TH-1700000001", EmailSent: false}, nil)
	h := NewOrderHandler(svc)
	r := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader(checkoutBody(t)))
	rr := httptest.NewRecorder()
	h.Create(rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp OrderEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.False(t, resp.EmailSent)
	svc.AssertExpectations(t)
}

// --- Get tests ---

func TestOrderGet_NotFound(t *testing.T) {
	svc := &mockOrderSvc{}
	svc.On("Get", mock.Anything, "TH-404").Return(nil, domain.ErrNotFound)
	h := NewOrderHandler(svc)
	r := withChiID(httptest.NewRequest(http.MethodGet, "/api/orders/TH-404", nil), "TH-404")
	rr := httptest.NewRecorder()
	h.Get(rr, r)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	svc.AssertExpectations(t)
}

func TestOrderGet_HappyPath(t *testing.T) {
	svc := &mockOrderSvc{}
	svc.On("Get", mock.Anything, "TH-1700000000").Return(&domain.Order{
		OrderID: "TH-1700000000", CustomerEmail: "alice@example.com", Total: 40, Status: "paid",
	}, nil)
	h := NewOrderHandler(svc)
	r := withChiID(httptest.NewRequest(http.MethodGet, "/api/orders/TH-1700000000", nil), "TH-1700000000")
	rr := httptest.NewRecorder()
	h.Get(rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp domain.Order
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "TH-1700000000", resp.OrderID)
	assert.Equal(t, "paid", resp.Status)
	svc.AssertExpectations(t)
}

// --- List tests ---

func TestOrderList_PassesPagination(t *testing.T) {
	svc := &mockOrderSvc{}
	svc.On("List", mock.Anything, 10, "abc").
		Return([]domain.Order{{OrderID: "TH-1"}, {OrderID: "TH-2"}}, "next", nil)
	h := NewOrderHandler(svc)
	r := httptest.NewRequest(http.MethodGet, "/api/admin/orders?limit=10&cursor=abc", nil)
	rr := httptest.NewRecorder()
	h.List(rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp struct {
		Data       []domain.Order `json:"data"`
		NextCursor string         `json:"nextCursor"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, "next", resp.NextCursor)
	svc.AssertExpectations(t)
}

func TestOrderList_FiltersByEmail(t *testing.T) {
	svc := &mockOrderSvc{}
	svc.On("ListByEmail", mock.Anything, "alice@example.com").
		Return([]domain.Order{{OrderID: "TH-1"}}, nil)
	h := NewOrderHandler(svc)
	r := httptest.NewRequest(http.MethodGet, "/api/admin/orders?email=alice@example.com", nil)
	rr := httptest.NewRecorder()
	h.List(rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp struct {
		Data []domain.Order `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Len(t, resp.Data, 1)
	svc.AssertNotCalled(t, "List")
	svc.AssertExpectations(t)
}
