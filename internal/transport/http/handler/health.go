package handler

import "net/http"

// HealthHandler handles liveness and public client-config endpoints.
type HealthHandler struct {
	checkoutURL string
}

func NewHealthHandler(checkoutURL string) *HealthHandler {
	return &HealthHandler{checkoutURL: checkoutURL}
}

func (h *HealthHandler) Ping(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, MessageEnvelope{Success: true, Message: "ok"})
}

// ClientConfig hands the storefront the opaque hosted-checkout link. There is
// no callback contract with the checkout provider; the client redirects and
// posts the completed order back to /api/orders.
func (h *HealthHandler) ClientConfig(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"checkoutUrl": h.checkoutURL})
}
