package email

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/shopsignal/engagement/internal/domain"
)

// campaigns that carry a discount offer knock 10% off the listed price
const discountPercent = 10

type templateData struct {
	Username           string
	ProductName        string
	ProductImage       string
	ProductDescription string
	OriginalPrice      string
	DiscountedPrice    string
	DiscountPercent    int
}

func newTemplateData(e domain.AudienceEntry) templateData {
	discounted := e.ProductPrice * (1 - float64(discountPercent)/100)
	username := e.Username
	if username == "" {
		username = "there"
	}
	return templateData{
		Username:           username,
		ProductName:        e.ProductName,
		ProductImage:       e.ProductImage,
		ProductDescription: e.ProductDescription,
		OriginalPrice:      fmt.Sprintf("$%.2f", e.ProductPrice),
		DiscountedPrice:    fmt.Sprintf("$%.2f", discounted),
		DiscountPercent:    discountPercent,
	}
}

const productCardHTML = `
			<div style="border: 1px solid #eee; border-radius: 8px; padding: 16px; margin: 20px 0;">
				<img src="{{.ProductImage}}" alt="{{.ProductName}}" style="max-width: 100%; border-radius: 4px;">
				<h3 style="margin: 12px 0 4px;">{{.ProductName}}</h3>
				<p style="color: #666; margin: 0 0 12px;">{{.ProductDescription}}</p>
				<span style="text-decoration: line-through; color: #999;">{{.OriginalPrice}}</span>
				<span style="color: #E53935; font-weight: bold; margin-left: 8px;">{{.DiscountedPrice}}</span>
				<span style="background: #E53935; color: white; padding: 2px 8px; border-radius: 4px; font-size: 12px; margin-left: 8px;">SAVE {{.DiscountPercent}}%</span>
			</div>`

// RenderAbandonedCart renders the cart-recovery email.
func RenderAbandonedCart(e domain.AudienceEntry) (subject, text, html string, err error) {
	subject = "Don't Miss Out! Your Cart is Waiting - 10% OFF Inside!"
	data := newTemplateData(e)
	text = fmt.Sprintf(
		"Hi %s, we noticed you left %s in your cart. Complete your purchase now and get %d%% off!",
		data.Username, data.ProductName, data.DiscountPercent,
	)

	html, err = renderHTML("abandoned_cart", `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>Your Cart is Waiting</title></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<h1 style="color: #E53935;">Your cart is waiting!</h1>
		<p>Hi {{.Username}},</p>
		<p>We noticed you left something special in your cart but didn't complete your purchase.</p>`+
		productCardHTML+`
		<div style="text-align: center; margin: 30px 0;">
			<a href="https://shop.shopsignal.dev/cart" style="background-color: #E53935; color: white; padding: 12px 30px; text-decoration: none; border-radius: 5px; display: inline-block;">Complete My Purchase</a>
		</div>
		<p>Happy shopping!</p>
		<hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
		<p style="color: #999; font-size: 12px;">This is an automated message, please do not reply.</p>
	</div>
</body>
</html>`, data)
	return subject, text, html, err
}

// RenderFrequentViewer renders the personal-offer email for a product the
// user keeps coming back to.
func RenderFrequentViewer(e domain.AudienceEntry) (subject, text, html string, err error) {
	subject = "Special Offer Just for You!"
	data := newTemplateData(e)
	text = fmt.Sprintf(
		"Hi %s, we noticed you're interested in %s. Here's a special offer just for you!",
		data.Username, data.ProductName,
	)

	html, err = renderHTML("frequent_viewer", `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>Special Offer</title></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<h1 style="color: #2196F3;">Special offer just for you!</h1>
		<p>Hi {{.Username}},</p>
		<p>We noticed you're interested in <strong>{{.ProductName}}</strong>. Here's a special offer just for you!</p>`+
		productCardHTML+`
		<div style="text-align: center; margin: 30px 0;">
			<a href="https://shop.shopsignal.dev/cart" style="background-color: #2196F3; color: white; padding: 12px 30px; text-decoration: none; border-radius: 5px; display: inline-block;">Claim My Offer</a>
		</div>
		<p>Happy shopping!</p>
		<hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
		<p style="color: #999; font-size: 12px;">This is an automated message, please do not reply.</p>
	</div>
</body>
</html>`, data)
	return subject, text, html, err
}

// RenderPurchaseConfirmation renders the order confirmation email. No
// discount framing here.
func RenderPurchaseConfirmation(e domain.AudienceEntry) (subject, text, html string, err error) {
	subject = "Thanks for your purchase!"
	data := newTemplateData(e)
	text = fmt.Sprintf(
		"Hi %s, thanks for buying %s. We're getting your order ready now.",
		data.Username, data.ProductName,
	)

	html, err = renderHTML("purchase_confirmation", `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>Order Confirmed</title></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<h1 style="color: #4CAF50;">Order confirmed</h1>
		<p>Hi {{.Username}},</p>
		<p>Thanks for your purchase! We're getting your order ready now.</p>
		<div style="border: 1px solid #eee; border-radius: 8px; padding: 16px; margin: 20px 0;">
			<img src="{{.ProductImage}}" alt="{{.ProductName}}" style="max-width: 100%; border-radius: 4px;">
			<h3 style="margin: 12px 0 4px;">{{.ProductName}}</h3>
			<p style="color: #666; margin: 0 0 12px;">{{.ProductDescription}}</p>
			<span style="font-weight: bold;">{{.OriginalPrice}}</span>
		</div>
		<p>We'll let you know as soon as it ships.</p>
		<hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
		<p style="color: #999; font-size: 12px;">This is an automated message, please do not reply.</p>
	</div>
</body>
</html>`, data)
	return subject, text, html, err
}

func renderHTML(name, tmpl string, data templateData) (string, error) {
	t, err := template.New(name).Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	var buf strings.Builder
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return buf.String(), nil
}
