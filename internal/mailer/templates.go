package mailer

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/omaradel73/zamazon-v2/internal/domain"
)

var orderConfirmationTmpl = template.Must(template.New("order_confirmation").Parse(`
<div style="font-family: Arial, sans-serif; padding: 20px; background: #f4f4f4;">
  <div style="background: white; padding: 20px; border-radius: 10px;">
    <h1 style="color: #6d28d9;">Thank you for your order!</h1>
    <p>Your order <b>#{{.ID}}</b> is confirmed.</p>

    <div style="background: #f9fafb; padding: 15px; margin: 15px 0; border-radius: 8px;">
      <h3>Shipping Details</h3>
      <p><b>Address:</b> {{.Shipping.Address}}, {{.Shipping.City}}</p>
      <p><b>Phone:</b> {{.Shipping.Phone}}</p>
      <p><b>Estimated Delivery:</b> {{.DeliveryDate}}</p>
    </div>

    <h3>Total: EGP {{printf "%.2f" .Total}}</h3>
    <ul>
      {{range .Items}}<li>{{.Name}} - EGP {{printf "%.2f" .Price}} x {{.Quantity}}</li>{{end}}
    </ul>
  </div>
</div>`))

var codeTmpl = template.Must(template.New("code").Parse(`
<div style="font-family: Arial, sans-serif; padding: 20px;">
  <h2>{{.Heading}}</h2>
  <p>{{.Intro}}</p>
  <p style="font-size: 2rem; font-weight: bold; letter-spacing: 0.3rem;">{{.Code}}</p>
  <p>{{.Outro}}</p>
</div>`))

func OrderConfirmation(order *domain.Order) Message {
	var html strings.Builder
	// Template execution over our own struct cannot fail at runtime.
	_ = orderConfirmationTmpl.Execute(&html, order)

	text := fmt.Sprintf("Thank you for your order! Total: EGP %.2f. Shipping to: %s",
		order.Total, order.Shipping.Address)

	return Message{
		To:       order.Email,
		Subject:  fmt.Sprintf("Order Confirmation #%s", order.ID),
		TextBody: text,
		HTMLBody: html.String(),
	}
}

func VerificationCode(to, code string) Message {
	return codeMessage(to, "Verify your Zamazon account", codeData{
		Heading: "Welcome to Zamazon!",
		Intro:   "Enter this code to verify your account:",
		Code:    code,
		Outro:   "If you didn't create an account, you can ignore this email.",
	})
}

func PasswordResetCode(to, code string) Message {
	return codeMessage(to, "Reset your Zamazon password", codeData{
		Heading: "Password reset requested",
		Intro:   "Enter this code to reset your password. It expires in one hour:",
		Code:    code,
		Outro:   "If you didn't request a reset, you can ignore this email.",
	})
}

type codeData struct {
	Heading string
	Intro   string
	Code    string
	Outro   string
}

func codeMessage(to, subject string, data codeData) Message {
	var html strings.Builder
	_ = codeTmpl.Execute(&html, data)

	return Message{
		To:       to,
		Subject:  subject,
		TextBody: fmt.Sprintf("%s %s", data.Intro, data.Code),
		HTMLBody: html.String(),
	}
}
