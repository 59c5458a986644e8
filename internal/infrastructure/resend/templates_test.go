package resend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thread-heaven/storefront-api/internal/domain"
)

func TestRenderOrderConfirmation(t *testing.T) {
	o := &domain.Order{
		OrderID:         "TH-1700000000",
		CustomerName:    "Alice",
		ShippingAddress: "1 Main St, Springfield, 12345, US",
		Items: []domain.Item{
			{Name: "Heavy Tee", Size: "M", Price: 20, Quantity: 2},
			{Name: "Sticker Pack", Price: 5, Quantity: 3},
		},
		Total:     55,
		CreatedAt: time.Now(),
	}

	html, err := RenderOrderConfirmation(o)
	require.NoError(t, err)

	assert.Contains(t, html, "TH-1700000000")
	assert.Contains(t, html, "Heavy Tee")
	assert.Contains(t, html, "$40.00") // 20 x 2 line total
	assert.Contains(t, html, "$15.00") // 5 x 3 line total
	assert.Contains(t, html, "$55.00")
	assert.Contains(t, html, "1 Main St")
}

func TestRenderVerification_ExpiryMatchesStoreTTL(t *testing.T) {
	html, err := RenderVerification("Alice", "https://threadheaven.store/verify?token=abc")
	require.NoError(t, err)

	assert.Contains(t, html, "Alice")
	assert.Contains(t, html, "https://threadheaven.store/verify?token=abc")
	// The copy must advertise the same window the token store enforces.
	assert.Contains(t, html, "24 hours")
}

func TestRenderVerification_EscapesName(t *testing.T) {
	html, err := RenderVerification("<script>x</script>", "https://threadheaven.store/verify?token=abc")
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}
