package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/thread-heaven/storefront-api/internal/domain"
	"github.com/thread-heaven/storefront-api/internal/infrastructure/resend"
)

// EmailHandler exposes the direct send endpoint the storefront uses for
// templated notifications. Unlike order/signup flows, dispatch failure here
// is the operation's failure.
type EmailHandler struct {
	dispatcher resend.Dispatcher
	baseURL    string
}

func NewEmailHandler(dispatcher resend.Dispatcher, baseURL string) *EmailHandler {
	return &EmailHandler{dispatcher: dispatcher, baseURL: baseURL}
}

type sendEmailRequest struct {
	To       string          `json:"to"`
	Template string          `json:"template"`
	Data     json.RawMessage `json:"data"`
}

func (h *EmailHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req sendEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.To == "" {
		writeError(w, http.StatusBadRequest, "field 'to' is required")
		return
	}

	subject, html, err := h.render(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.dispatcher.Send(r.Context(), req.To, subject, html)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrEmailNotConfigured) {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, EmailEnvelope{Success: false, Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, EmailEnvelope{Success: true, ID: id})
}

func (h *EmailHandler) render(req sendEmailRequest) (subject, html string, err error) {
	switch req.Template {
	case "order_confirmation":
		var o domain.Order
		if err := json.Unmarshal(req.Data, &o); err != nil {
			return "", "", errors.New("invalid order data")
		}
		html, err = resend.RenderOrderConfirmation(&o)
		if err != nil {
			return "", "", err
		}
		return "Order " + o.OrderID + " confirmed", html, nil
	case "verification":
		var d struct {
			Name  string `json:"name"`
			Token string `json:"token"`
		}
		if err := json.Unmarshal(req.Data, &d); err != nil || d.Token == "" {
			return "", "", errors.New("invalid verification data")
		}
		html, err = resend.RenderVerification(d.Name, h.baseURL+"/verify?token="+d.Token)
		if err != nil {
			return "", "", err
		}
		return "Verify your Thread Heaven account", html, nil
	default:
		return "", "", errors.New("unknown template")
	}
}
