package order

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/thread-heaven/storefront-api/internal/domain"
	"github.com/thread-heaven/storefront-api/internal/infrastructure/resend"
	"github.com/thread-heaven/storefront-api/internal/pkg/validate"
)

// CreateResult is returned to the checkout client. EmailSent reports the
// confirmation-email outcome without ever failing the order itself.
type CreateResult struct {
	OrderID   string `json:"orderId"`
	EmailSent bool   `json:"emailSent"`
}

type Service interface {
	// Create validates, prices and records a completed checkout. Persistence,
	// the back-office event and the confirmation email are all best-effort;
	// only validation can fail the request.
	Create(ctx context.Context, req domain.CreateOrderRequest) (*CreateResult, error)
	// Get returns the stored order summary.
	Get(ctx context.Context, orderID string) (*domain.Order, error)
	// List returns a page of orders for the admin dashboard.
	List(ctx context.Context, limit int, cursor string) ([]domain.Order, string, error)
	// ListByEmail returns every order placed with the given address.
	ListByEmail(ctx context.Context, email string) ([]domain.Order, error)
}

type orderStore interface {
	Put(ctx context.Context, o *domain.Order) error
	Get(ctx context.Context, orderID string) (*domain.Order, error)
	ScanPage(ctx context.Context, limit int32, cursor string) ([]domain.Order, string, error)
	ListByEmail(ctx context.Context, email string) ([]domain.Order, error)
}

type eventPublisher interface {
	PublishOrderCreated(ctx context.Context, o *domain.Order) error
}

type service struct {
	repo       orderStore
	dispatcher resend.Dispatcher
	events     eventPublisher // nil when no topic is configured
}

type ServiceDeps struct {
	OrderRepo  orderStore
	Dispatcher resend.Dispatcher
	Events     eventPublisher
}

func NewService(deps ServiceDeps) Service {
	return &service{
		repo:       deps.OrderRepo,
		dispatcher: deps.Dispatcher,
		events:     deps.Events,
	}
}

func (s *service) Create(ctx context.Context, req domain.CreateOrderRequest) (*CreateResult, error) {
	if err := validate.Struct(&req); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), domain.ErrValidation)
	}

	now := time.Now().UTC()
	o := &domain.Order{
		OrderID:             fmt.Sprintf("TH-%d", now.Unix()),
		CustomerEmail:       strings.ToLower(strings.TrimSpace(req.Customer.Email)),
		CustomerName:        req.Customer.Name,
		ShippingAddress:     composeAddress(req.Customer),
		Items:               req.Items,
		Total:               total(req.Items),
		PayPalTransactionID: req.PayPalTransactionID,
		Status:              domain.OrderStatusPaid,
		CreatedAt:           now,
	}

	if err := s.repo.Put(ctx, o); err != nil {
		slog.Warn("failed to persist order", "order_id", o.OrderID, "err", err)
	}

	if s.events != nil {
		if err := s.events.PublishOrderCreated(ctx, o); err != nil {
			slog.Warn("failed to publish order event", "order_id", o.OrderID, "err", err)
		}
	}

	emailSent := s.sendConfirmation(ctx, o)
	return &CreateResult{OrderID: o.OrderID, EmailSent: emailSent}, nil
}

func (s *service) sendConfirmation(ctx context.Context, o *domain.Order) bool {
	html, err := resend.RenderOrderConfirmation(o)
	if err != nil {
		slog.Warn("failed to render order confirmation", "order_id", o.OrderID, "err", err)
		return false
	}
	subject := fmt.Sprintf("Order %s confirmed", o.OrderID)
	if _, err := s.dispatcher.Send(ctx, o.CustomerEmail, subject, html); err != nil {
		slog.Warn("failed to send order confirmation", "order_id", o.OrderID, "err", err)
		return false
	}
	return true
}

func (s *service) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.repo.Get(ctx, orderID)
}

func (s *service) List(ctx context.Context, limit int, cursor string) ([]domain.Order, string, error) {
	if limit < 1 || limit > 100 {
		limit = 50
	}
	return s.repo.ScanPage(ctx, int32(limit), cursor)
}

func (s *service) ListByEmail(ctx context.Context, email string) ([]domain.Order, error) {
	return s.repo.ListByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

func total(items []domain.Item) float64 {
	var sum float64
	for _, it := range items {
		sum += it.Price * float64(it.Quantity)
	}
	return sum
}

func composeAddress(c domain.Customer) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{c.Address, c.City, c.Zip, c.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
