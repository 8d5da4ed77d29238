// internal/domain/message/entity.go
package message

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessageStatus represents the lifecycle of a video message
type MessageStatus string

const (
	MessageStatusDraft     MessageStatus = "draft"
	MessageStatusRecorded  MessageStatus = "recorded"
	MessageStatusScheduled MessageStatus = "scheduled"
	MessageStatusDelivered MessageStatus = "delivered"
)

// IsValid checks whether the status is one of the known lifecycle states
func (s MessageStatus) IsValid() bool {
	switch s {
	case MessageStatusDraft, MessageStatusRecorded, MessageStatusScheduled, MessageStatusDelivered:
		return true
	}
	return false
}

// DeliveryStatus represents the lifecycle of a scheduled delivery
type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "pending"
	DeliveryStatusSent      DeliveryStatus = "sent"
	DeliveryStatusCancelled DeliveryStatus = "cancelled"
)

// VideoMessage is a recorded or planned message a user leaves for a
// loved one. The recording itself lives in external storage; only the
// URL reference is kept here.
type VideoMessage struct {
	ID          uuid.UUID     `json:"id" gorm:"type:uuid;primary_key"`
	UserID      uuid.UUID     `json:"user_id" gorm:"type:uuid;not null;index"`
	Title       string        `json:"title" gorm:"not null"`
	Occasion    string        `json:"occasion"`
	RecipientID *uuid.UUID    `json:"recipient_id,omitempty" gorm:"type:uuid"`
	StorageURL  string        `json:"storage_url"`
	DurationSec int           `json:"duration_seconds"`
	Status      MessageStatus `json:"status" gorm:"not null;default:'draft';index"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// TableName returns the table name for VideoMessage model
func (VideoMessage) TableName() string {
	return "video_messages"
}

// BeforeCreate hook to generate UUID
func (m *VideoMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// GiftPlan is an intentional gift a user plans to accompany a message
type GiftPlan struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primary_key"`
	UserID      uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description"`
	Occasion    string     `json:"occasion"`
	ProductID   *uuid.UUID `json:"product_id,omitempty" gorm:"type:uuid"`
	Budget      float64    `json:"budget"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName returns the table name for GiftPlan model
func (GiftPlan) TableName() string {
	return "gift_plans"
}

// BeforeCreate hook to generate UUID
func (g *GiftPlan) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// ScheduledDelivery binds a message (and optionally a gift plan) to a
// recipient and a future delivery time
type ScheduledDelivery struct {
	ID             uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	UserID         uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;index"`
	MessageID      *uuid.UUID     `json:"message_id,omitempty" gorm:"type:uuid"`
	GiftPlanID     *uuid.UUID     `json:"gift_plan_id,omitempty" gorm:"type:uuid"`
	RecipientName  string         `json:"recipient_name" gorm:"not null"`
	RecipientEmail string         `json:"recipient_email" gorm:"not null"`
	DeliverAt      time.Time      `json:"deliver_at" gorm:"not null;index"`
	Status         DeliveryStatus `json:"status" gorm:"not null;default:'pending';index"`
	SentAt         *time.Time     `json:"sent_at,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// TableName returns the table name for ScheduledDelivery model
func (ScheduledDelivery) TableName() string {
	return "scheduled_deliveries"
}

// BeforeCreate hook to generate UUID
func (d *ScheduledDelivery) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// IsDue reports whether a pending delivery has reached its delivery time
func (d *ScheduledDelivery) IsDue(now time.Time) bool {
	return d.Status == DeliveryStatusPending && !d.DeliverAt.After(now)
}

// EmergencyContact is the person notified to trigger delivery if the
// user can no longer do it themselves
type EmergencyContact struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"not null"`
	Phone     string    `json:"phone"`
	Relation  string    `json:"relation"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for EmergencyContact model
func (EmergencyContact) TableName() string {
	return "emergency_contacts"
}

// BeforeCreate hook to generate UUID
func (c *EmergencyContact) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
