package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/thread-heaven/storefront-api/internal/config"
	"github.com/thread-heaven/storefront-api/internal/domain"
)

const defaultAPIURL = "https://api.resend.com/emails"

// Dispatcher sends transactional email. A send failure is never fatal to the
// caller's request; callers decide whether to surface it.
type Dispatcher interface {
	Send(ctx context.Context, to, subject, html string) (id string, err error)
}

type dispatcher struct {
	client *http.Client
	apiURL string
	apiKey string
	from   string
}

// NewDispatcher creates a Resend-backed dispatcher. With an empty API key the
// dispatcher stays inert and every Send reports ErrEmailNotConfigured without
// network I/O.
func NewDispatcher(cfg *config.Config) Dispatcher {
	return &dispatcher{
		client: &http.Client{Timeout: 10 * time.Second},
		apiURL: defaultAPIURL,
		apiKey: cfg.ResendAPIKey,
		from:   cfg.EmailFrom,
	}
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type sendResponse struct {
	ID string `json:"id"`
}

func (d *dispatcher) Send(ctx context.Context, to, subject, html string) (string, error) {
	if d.apiKey == "" {
		return "", domain.ErrEmailNotConfigured
	}

	body, err := json.Marshal(sendRequest{
		From:    d.from,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return "", fmt.Errorf("encode email request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+d.apiKey)

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send email request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("email provider returned %d: %s", resp.StatusCode, detail)
	}

	var out sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode email response: %w", err)
	}
	return out.ID, nil
}
