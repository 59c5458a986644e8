package resend

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/thread-heaven/storefront-api/internal/domain"
)

// Render functions are pure: same input, same output, no I/O.

var orderConfirmationTmpl = template.Must(template.New("order_confirmation").Funcs(template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("$%.2f", v) },
	"line":  func(i domain.Item) float64 { return i.Price * float64(i.Quantity) },
}).Parse(`<h2>Thanks for your order, {{.CustomerName}}!</h2>
<p>Order <strong>{{.OrderID}}</strong> is confirmed.</p>
<table cellpadding="6" cellspacing="0" border="0">
  <tr><th align="left">Item</th><th align="left">Size</th><th>Qty</th><th align="right">Price</th></tr>
{{- range .Items}}
  <tr>
    <td>{{.Name}}</td>
    <td>{{if .Size}}{{.Size}}{{else}}-{{end}}</td>
    <td align="center">{{.Quantity}}</td>
    <td align="right">{{money (line .)}}</td>
  </tr>
{{- end}}
  <tr><td colspan="3" align="right"><strong>Total</strong></td><td align="right"><strong>{{money .Total}}</strong></td></tr>
</table>
<p>We'll email you again when it ships. Shipping to:<br>{{.ShippingAddress}}</p>`))

var verificationTmpl = template.Must(template.New("verification").Parse(`<h2>Welcome to Thread Heaven{{if .Name}}, {{.Name}}{{end}}!</h2>
<p>Confirm your email address to finish creating your account:</p>
<p><a href="{{.VerifyURL}}" style="display:inline-block;padding:12px 24px;background:#111;color:#fff;text-decoration:none">Verify my email</a></p>
<p>This link expires in {{.ExpiryHours}} hours. If you didn't sign up, you can ignore this email.</p>`))

// RenderOrderConfirmation renders the order-confirmation email body.
func RenderOrderConfirmation(o *domain.Order) (string, error) {
	var b strings.Builder
	if err := orderConfirmationTmpl.Execute(&b, o); err != nil {
		return "", fmt.Errorf("render order confirmation: %w", err)
	}
	return b.String(), nil
}

// RenderVerification renders the verification-link email body. The expiry
// copy is derived from domain.VerificationTTL so it always matches what the
// token store enforces.
func RenderVerification(name, verifyURL string) (string, error) {
	var b strings.Builder
	err := verificationTmpl.Execute(&b, struct {
		Name        string
		VerifyURL   string
		ExpiryHours int
	}{
		Name:        name,
		VerifyURL:   verifyURL,
		ExpiryHours: int(domain.VerificationTTL.Hours()),
	})
	if err != nil {
		return "", fmt.Errorf("render verification email: %w", err)
	}
	return b.String(), nil
}
