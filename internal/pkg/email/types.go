// internal/pkg/email/types.go
package email

import (
	"time"
)

// EmailType represents the type of email being sent
type EmailType string

const (
	EmailTypeDeliveryNotification EmailType = "delivery_notification"
	EmailTypeOrderConfirmation    EmailType = "order_confirmation"
	EmailTypeShippingUpdate       EmailType = "shipping_update"
)

// Email represents an email message
type Email struct {
	To          []string               `json:"to"`
	CC          []string               `json:"cc,omitempty"`
	BCC         []string               `json:"bcc,omitempty"`
	Subject     string                 `json:"subject"`
	HTMLContent string                 `json:"html_content"`
	TextContent string                 `json:"text_content,omitempty"`
	Type        EmailType              `json:"type"`
	Data        map[string]interface{} `json:"data,omitempty"`
}

// EmailTemplateData contains common data for all email templates
type EmailTemplateData struct {
	SiteName  string `json:"site_name"`
	SiteURL   string `json:"site_url"`
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
	Year      int    `json:"year"`
}

// DeliveryNotificationData contains data for a scheduled-delivery
// notification sent to the recipient
type DeliveryNotificationData struct {
	EmailTemplateData
	RecipientName string `json:"recipient_name"`
	SenderName    string `json:"sender_name"`
	MessageTitle  string `json:"message_title,omitempty"`
	Occasion      string `json:"occasion,omitempty"`
	ViewURL       string `json:"view_url,omitempty"`
}

// OrderConfirmationData contains data for the order confirmation email
type OrderConfirmationData struct {
	EmailTemplateData
	OrderNumber string      `json:"order_number"`
	OrderDate   string      `json:"order_date"`
	OrderTotal  string      `json:"order_total"`
	Items       []OrderItem `json:"items"`
}

// OrderItem represents a line in the order confirmation email
type OrderItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Total    string `json:"total"`
}

// ShippingUpdateData contains data for a shipping update email
type ShippingUpdateData struct {
	EmailTemplateData
	OrderNumber    string `json:"order_number"`
	TrackingNumber string `json:"tracking_number,omitempty"`
}

// GetBaseTemplateData returns common template data
func GetBaseTemplateData(siteName, siteURL, userName, userEmail string) EmailTemplateData {
	return EmailTemplateData{
		SiteName:  siteName,
		SiteURL:   siteURL,
		UserName:  userName,
		UserEmail: userEmail,
		Year:      time.Now().Year(),
	}
}
