package handler

import (
	"encoding/json"
	"fmt"
	"html"
	"net/http"

	"github.com/thread-heaven/storefront-api/internal/infrastructure/resend"
	"github.com/thread-heaven/storefront-api/internal/pkg/validate"
)

// ContactHandler relays the storefront contact form to the store inbox.
type ContactHandler struct {
	dispatcher resend.Dispatcher
	inbox      string
}

func NewContactHandler(dispatcher resend.Dispatcher, inbox string) *ContactHandler {
	return &ContactHandler{dispatcher: dispatcher, inbox: inbox}
}

type contactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,max=5000"`
}

func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	body := fmt.Sprintf("<p><strong>%s</strong> (%s) wrote:</p><p>%s</p>",
		html.EscapeString(req.Name), html.EscapeString(req.Email), html.EscapeString(req.Message))
	if _, err := h.dispatcher.Send(r.Context(), h.inbox, "Contact form: "+req.Name, body); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Success: true, Message: "thanks, we'll get back to you"})
}
