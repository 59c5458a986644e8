package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/thread-heaven/storefront-api/internal/application/signup"
	"github.com/thread-heaven/storefront-api/internal/domain"
	"github.com/thread-heaven/storefront-api/internal/pkg/validate"
)

// AuthHandler handles signup, email verification and the auto-login exchange.
type AuthHandler struct {
	svc            signup.Service
	firebaseAPIKey string
}

func NewAuthHandler(svc signup.Service, firebaseAPIKey string) *AuthHandler {
	return &AuthHandler{svc: svc, firebaseAPIKey: firebaseAPIKey}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req domain.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.Signup(r.Context(), req); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{
		Success: true,
		Message: "check your inbox for a verification link",
	})
}

// Verify renders the verification result as HTML: a success page whose script
// completes the identity-provider login, or an error page for a bad token.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		renderVerifyError(w, "The verification link is missing its token.")
		return
	}
	res, err := h.svc.Verify(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTokenExpired):
			renderVerifyError(w, "This verification link has expired. Please sign up again.")
		default:
			renderVerifyError(w, "This verification link is invalid or was already used.")
		}
		return
	}
	renderVerifySuccess(w, verifyPageData{
		Name:           res.Name,
		Email:          res.Email,
		LoginToken:     res.LoginToken,
		FirebaseAPIKey: h.firebaseAPIKey,
	})
}

// ExchangeLoginToken trades the one-shot token minted by Verify for the
// stored credentials the page script signs in with.
func (h *AuthHandler) ExchangeLoginToken(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Token == "" {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	l, err := h.svc.ExchangeLoginToken(r.Context(), body.Token)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"email":    l.Email,
		"password": l.PasswordHash,
	})
}
