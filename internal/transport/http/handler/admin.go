package handler

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	jwtinfra "github.com/thread-heaven/storefront-api/internal/infrastructure/jwt"
)

// AdminHandler issues bearer tokens for the admin dashboard API.
type AdminHandler struct {
	password    string
	jwtProvider *jwtinfra.Provider
}

func NewAdminHandler(password string, jwtProvider *jwtinfra.Provider) *AdminHandler {
	return &AdminHandler{password: password, jwtProvider: jwtProvider}
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h.password == "" || h.jwtProvider == nil {
		writeError(w, http.StatusServiceUnavailable, "admin access not configured")
		return
	}
	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.password)) != 1 {
		writeError(w, http.StatusUnauthorized, "invalid password")
		return
	}
	token, err := h.jwtProvider.Sign("admin")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}
