package signup

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/thread-heaven/storefront-api/internal/domain"
	pkgtoken "github.com/thread-heaven/storefront-api/internal/pkg/token"
)

// ErrStoreFull is returned when the pending-verification cap is reached.
// The cap bounds memory growth under sustained signup abuse.
var ErrStoreFull = errors.New("too many pending verifications")

const defaultMaxPending = 10000

// Store holds the process-wide pending-verification and pending-login
// records. All access goes through the mutex; Consume* are single atomic
// remove-and-return operations so a token can never materialize two users.
type Store struct {
	mu            sync.Mutex
	verifications map[string]*domain.PendingVerification // keyed by token
	byEmail       map[string]string                      // normalized email -> live token
	logins        map[string]*domain.PendingLogin

	maxPending int
	now        func() time.Time
}

// NewStore creates the store and starts the background sweeper that evicts
// expired records.
func NewStore() *Store {
	s := &Store{
		verifications: make(map[string]*domain.PendingVerification),
		byEmail:       make(map[string]string),
		logins:        make(map[string]*domain.PendingLogin),
		maxPending:    defaultMaxPending,
		now:           time.Now,
	}
	go s.sweep()
	return s
}

// NormalizeEmail is the canonical form used for duplicate suppression.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateVerification registers a pending signup and returns its token.
// At most one live record may exist per email; a second signup for the same
// address fails with domain.ErrDuplicatePending until the first is consumed
// or swept.
func (s *Store) CreateVerification(email, passwordHash, name string) (string, error) {
	email = NormalizeEmail(email)
	tok, err := pkgtoken.New()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[email]; exists {
		return "", domain.ErrDuplicatePending
	}
	if len(s.verifications) >= s.maxPending {
		return "", ErrStoreFull
	}
	s.verifications[tok] = &domain.PendingVerification{
		Token:        tok,
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		CreatedAt:    s.now(),
	}
	s.byEmail[email] = tok
	return tok, nil
}

// ConsumeVerification removes and returns the record for tok. The removal is
// unconditional: an expired token is reported as domain.ErrTokenExpired on
// its first consumption and domain.ErrTokenNotFound on every one after, so
// "expired" is only ever observable once per token.
func (s *Store) ConsumeVerification(tok string) (*domain.PendingVerification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.verifications[tok]
	if !ok {
		return nil, domain.ErrTokenNotFound
	}
	delete(s.verifications, tok)
	delete(s.byEmail, v.Email)

	if s.now().Sub(v.CreatedAt) > domain.VerificationTTL {
		return nil, domain.ErrTokenExpired
	}
	return v, nil
}

// CreateLogin mints a one-shot auto-login record for a just-verified signup.
func (s *Store) CreateLogin(email, passwordHash string) (string, error) {
	tok, err := pkgtoken.New()
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logins[tok] = &domain.PendingLogin{
		Token:        tok,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    s.now(),
	}
	return tok, nil
}

// ConsumeLogin removes and returns the login record for tok, with the same
// remove-then-check ordering as ConsumeVerification.
func (s *Store) ConsumeLogin(tok string) (*domain.PendingLogin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.logins[tok]
	if !ok {
		return nil, domain.ErrTokenNotFound
	}
	delete(s.logins, tok)

	if s.now().Sub(l.CreatedAt) > domain.LoginTokenTTL {
		return nil, domain.ErrTokenExpired
	}
	return l, nil
}

// PendingCount reports the number of live verification records.
func (s *Store) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.verifications)
}

// sweep evicts expired records every 10 minutes so abandoned signups don't
// accumulate until process restart.
func (s *Store) sweep() {
	for {
		time.Sleep(10 * time.Minute)
		s.evictExpired()
	}
}

func (s *Store) evictExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for tok, v := range s.verifications {
		if now.Sub(v.CreatedAt) > domain.VerificationTTL {
			delete(s.verifications, tok)
			delete(s.byEmail, v.Email)
		}
	}
	for tok, l := range s.logins {
		if now.Sub(l.CreatedAt) > domain.LoginTokenTTL {
			delete(s.logins, tok)
		}
	}
}
