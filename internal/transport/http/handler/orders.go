package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/thread-heaven/storefront-api/internal/application/order"
	"github.com/thread-heaven/storefront-api/internal/domain"
)

// OrderHandler handles checkout-submission and order-read endpoints.
type OrderHandler struct {
	svc order.Service
}

func NewOrderHandler(svc order.Service) *OrderHandler { return &OrderHandler{svc: svc} }

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res, err := h.svc.Create(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, OrderEnvelope{
		Success:   true,
		OrderID:   res.OrderID,
		EmailSent: res.EmailSent,
	})
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	o, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// List is the admin dashboard's order view: paginated by default, or every
// order for one customer when ?email= is given.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	if email := r.URL.Query().Get("email"); email != "" {
		orders, err := h.svc.ListByEmail(r.Context(), email)
		if err != nil {
			httpError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, struct {
			Data []domain.Order `json:"data"`
		}{Data: orders})
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	cursor := r.URL.Query().Get("cursor")
	orders, next, err := h.svc.List(r.Context(), limit, cursor)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Data       []domain.Order `json:"data"`
		NextCursor string         `json:"nextCursor,omitempty"`
	}{Data: orders, NextCursor: next})
}
