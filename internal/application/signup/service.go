package signup

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/thread-heaven/storefront-api/internal/domain"
	"github.com/thread-heaven/storefront-api/internal/infrastructure/resend"
	"github.com/thread-heaven/storefront-api/internal/pkg/id"
	"golang.org/x/crypto/bcrypt"
)

// VerifyResult carries everything the verification page needs to finish the
// flow client-side: a one-shot login token the page script exchanges for the
// stored credentials before signing in against the identity provider.
type VerifyResult struct {
	Email      string
	Name       string
	LoginToken string
}

type Service interface {
	// Signup stores a pending verification and emails the confirmation link.
	// An email dispatch failure is returned to the caller even though the
	// pending record remains stored; the sweeper reclaims it after the TTL.
	Signup(ctx context.Context, req domain.SignupRequest) error
	// Verify consumes the emailed token, persists the durable user
	// (best-effort) and mints the auto-login token.
	Verify(ctx context.Context, token string) (*VerifyResult, error)
	// ExchangeLoginToken consumes the one-shot login token minted by Verify.
	ExchangeLoginToken(ctx context.Context, token string) (*domain.PendingLogin, error)
}

type userStore interface {
	Put(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type service struct {
	store      *Store
	userRepo   userStore
	dispatcher resend.Dispatcher
	baseURL    string
}

type ServiceDeps struct {
	Store      *Store
	UserRepo   userStore
	Dispatcher resend.Dispatcher
	BaseURL    string
}

func NewService(deps ServiceDeps) Service {
	return &service{
		store:      deps.Store,
		userRepo:   deps.UserRepo,
		dispatcher: deps.Dispatcher,
		baseURL:    deps.BaseURL,
	}
}

func (s *service) Signup(ctx context.Context, req domain.SignupRequest) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	tok, err := s.store.CreateVerification(req.Email, string(hash), req.Name)
	if err != nil {
		return err
	}

	verifyURL := fmt.Sprintf("%s/verify?token=%s", s.baseURL, tok)
	html, err := resend.RenderVerification(req.Name, verifyURL)
	if err != nil {
		return err
	}
	if _, err := s.dispatcher.Send(ctx, NormalizeEmail(req.Email), "Verify your Thread Heaven account", html); err != nil {
		// The pending record stays stored; a retry for the same email hits
		// ErrDuplicatePending until the sweeper reclaims it.
		return fmt.Errorf("send verification email: %w", err)
	}
	return nil
}

func (s *service) Verify(ctx context.Context, token string) (*VerifyResult, error) {
	v, err := s.store.ConsumeVerification(token)
	if err != nil {
		return nil, err
	}

	s.materializeUser(ctx, v)

	loginTok, err := s.store.CreateLogin(v.Email, v.PasswordHash)
	if err != nil {
		return nil, err
	}
	return &VerifyResult{Email: v.Email, Name: v.Name, LoginToken: loginTok}, nil
}

// materializeUser writes the durable user record. Persistence is best-effort:
// the verification still completes when the document store is down, the user
// just signs in without a stored profile until a later write succeeds.
func (s *service) materializeUser(ctx context.Context, v *domain.PendingVerification) {
	if existing, err := s.userRepo.GetByEmail(ctx, v.Email); err == nil {
		err = s.userRepo.Update(ctx, existing.UserID, map[string]interface{}{
			"name":          v.Name,
			"password_hash": v.PasswordHash,
			"verified":      true,
		})
		if err != nil {
			slog.Warn("failed to update verified user", "email", v.Email, "err", err)
		}
		return
	}

	now := time.Now().UTC()
	err := s.userRepo.Put(ctx, &domain.User{
		UserID:       id.New(),
		Email:        v.Email,
		Name:         v.Name,
		PasswordHash: v.PasswordHash,
		Verified:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		slog.Warn("failed to persist verified user", "email", v.Email, "err", err)
	}
}

func (s *service) ExchangeLoginToken(_ context.Context, token string) (*domain.PendingLogin, error) {
	return s.store.ConsumeLogin(token)
}
