// internal/pkg/email/service.go
package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/your-org/glowing-legacy-backend/internal/config"
	"github.com/your-org/glowing-legacy-backend/internal/domain/message"
	"github.com/your-org/glowing-legacy-backend/internal/domain/order"
	"github.com/your-org/glowing-legacy-backend/internal/pkg/money"
)

// Service handles outbound email: delivery notifications, order
// confirmations and shipping updates
type Service struct {
	config    *config.Config
	templates map[string]*template.Template
	client    *http.Client
}

// NewService creates a new email service
func NewService(cfg *config.Config) *Service {
	service := &Service{
		config:    cfg,
		templates: make(map[string]*template.Template),
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	if err := service.loadTemplates(); err != nil {
		logrus.WithError(err).Warn("Failed to load email templates")
	}

	return service
}

// SendEmail sends an email using the configured provider
func (s *Service) SendEmail(ctx context.Context, email *Email) error {
	switch s.config.Email.Provider {
	case "smtp":
		return s.sendSMTPEmail(email)
	case "resend":
		return s.sendResendEmail(email)
	case "sendgrid":
		return s.sendSendGridEmail(email)
	default:
		return fmt.Errorf("unsupported email provider: %s", s.config.Email.Provider)
	}
}

// SendDeliveryNotification notifies a recipient that a scheduled
// delivery has come due. Satisfies the dispatcher's notifier.
func (s *Service) SendDeliveryNotification(ctx context.Context, delivery *message.ScheduledDelivery) error {
	data := DeliveryNotificationData{
		EmailTemplateData: GetBaseTemplateData(
			s.config.Email.FromName,
			s.config.App.CompanyWebsite,
			delivery.RecipientName,
			delivery.RecipientEmail,
		),
		RecipientName: delivery.RecipientName,
	}

	htmlContent, err := s.renderTemplate("delivery_notification", data)
	if err != nil {
		return fmt.Errorf("failed to render delivery notification template: %w", err)
	}

	email := &Email{
		To:          []string{delivery.RecipientEmail},
		Subject:     fmt.Sprintf("A message from %s is waiting for you", s.config.Email.FromName),
		HTMLContent: htmlContent,
		Type:        EmailTypeDeliveryNotification,
		Data: map[string]interface{}{
			"delivery_id": delivery.ID.String(),
		},
	}

	return s.SendEmail(ctx, email)
}

// SendOrderConfirmation sends the order confirmation email after an
// order is placed
func (s *Service) SendOrderConfirmation(ctx context.Context, placed *order.Order) error {
	data := OrderConfirmationData{
		EmailTemplateData: GetBaseTemplateData(
			s.config.Email.FromName,
			s.config.App.CompanyWebsite,
			placed.ShippingAddress.FirstName,
			placed.Email,
		),
		OrderNumber: placed.OrderNumber,
		OrderDate:   placed.CreatedAt.Format("January 2, 2006"),
		OrderTotal:  money.FormatPrice(placed.Total),
	}
	for _, item := range placed.Items {
		data.Items = append(data.Items, OrderItem{
			Name:     item.ProductName,
			Quantity: item.Quantity,
			Total:    money.FormatPrice(item.Subtotal),
		})
	}

	htmlContent, err := s.renderTemplate("order_confirmation", data)
	if err != nil {
		return fmt.Errorf("failed to render order confirmation template: %w", err)
	}

	email := &Email{
		To:          []string{placed.Email},
		Subject:     fmt.Sprintf("Order Confirmation - %s", placed.OrderNumber),
		HTMLContent: htmlContent,
		Type:        EmailTypeOrderConfirmation,
		Data: map[string]interface{}{
			"order_number": placed.OrderNumber,
			"order_total":  placed.Total,
		},
	}

	return s.SendEmail(ctx, email)
}

// SendShippingUpdate notifies the buyer that an order has shipped
func (s *Service) SendShippingUpdate(ctx context.Context, shipped *order.Order) error {
	data := ShippingUpdateData{
		EmailTemplateData: GetBaseTemplateData(
			s.config.Email.FromName,
			s.config.App.CompanyWebsite,
			shipped.ShippingAddress.FirstName,
			shipped.Email,
		),
		OrderNumber:    shipped.OrderNumber,
		TrackingNumber: shipped.TrackingNumber,
	}

	htmlContent, err := s.renderTemplate("shipping_update", data)
	if err != nil {
		return fmt.Errorf("failed to render shipping update template: %w", err)
	}

	email := &Email{
		To:          []string{shipped.Email},
		Subject:     fmt.Sprintf("Your order %s is on its way", shipped.OrderNumber),
		HTMLContent: htmlContent,
		Type:        EmailTypeShippingUpdate,
	}

	return s.SendEmail(ctx, email)
}

// loadTemplates loads all email templates
func (s *Service) loadTemplates() error {
	templateDir := s.config.Email.TemplateDir
	if templateDir == "" {
		templateDir = "./templates/emails"
	}

	templates := []string{
		"delivery_notification",
		"order_confirmation",
		"shipping_update",
	}

	for _, name := range templates {
		templatePath := filepath.Join(templateDir, name+".html")
		tmpl, err := template.ParseFiles(templatePath)
		if err != nil {
			logrus.WithField("template", name).WithError(err).
				Warn("Could not load template, using fallback")
			s.templates[name] = s.createFallbackTemplate(name)
		} else {
			s.templates[name] = tmpl
		}
	}

	return nil
}

// renderTemplate renders an email template with data
func (s *Service) renderTemplate(templateName string, data interface{}) (string, error) {
	tmpl, exists := s.templates[templateName]
	if !exists {
		return "", fmt.Errorf("template %s not found", templateName)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}

	return buf.String(), nil
}

// createFallbackTemplate creates a basic HTML template as fallback
func (s *Service) createFallbackTemplate(name string) *template.Template {
	basicTemplate := `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.SiteName}}</title>
</head>
<body style="font-family: Georgia, serif; margin: 0; padding: 20px; background-color: #faf7f2;">
    <div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 24px; border-radius: 8px;">
        <h1 style="color: #3b3228;">{{.SiteName}}</h1>
        <p>Hello {{.UserName}},</p>
        <p>This is a notification from {{.SiteName}}.</p>
        <p>With warmth,<br>The {{.SiteName}} Team</p>
        <hr>
        <p style="font-size: 12px; color: #8a7f72;">
            &copy; {{.Year}} {{.SiteName}}. All rights reserved.
        </p>
    </div>
</body>
</html>`

	tmpl, _ := template.New(name).Parse(basicTemplate)
	return tmpl
}
