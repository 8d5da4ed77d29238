// internal/domain/message/service.go
package message

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/your-org/glowing-legacy-backend/internal/config"
)

var (
	// ErrMessageNotFound indicates the video message does not exist or
	// belongs to another user
	ErrMessageNotFound = errors.New("video message not found")
	// ErrGiftPlanNotFound indicates the gift plan does not exist or
	// belongs to another user
	ErrGiftPlanNotFound = errors.New("gift plan not found")
	// ErrDeliveryNotFound indicates the scheduled delivery does not
	// exist or belongs to another user
	ErrDeliveryNotFound = errors.New("scheduled delivery not found")
	// ErrContactNotFound indicates the emergency contact does not exist
	// or belongs to another user
	ErrContactNotFound = errors.New("emergency contact not found")
	// ErrDeliveryInPast indicates a delivery scheduled for a time that
	// has already passed
	ErrDeliveryInPast = errors.New("delivery time must be in the future")
	// ErrDeliveryNotPending indicates a state transition on a delivery
	// that has already been sent or cancelled
	ErrDeliveryNotPending = errors.New("delivery is not pending")
)

// DeliveryNotifier sends the outbound notification when a scheduled
// delivery comes due
type DeliveryNotifier interface {
	SendDeliveryNotification(ctx context.Context, delivery *ScheduledDelivery) error
}

// Service handles legacy content: video messages, gift plans,
// scheduled deliveries and emergency contacts
type Service struct {
	db       *gorm.DB
	config   *config.Config
	notifier DeliveryNotifier
}

// NewService creates a new legacy content service
func NewService(db *gorm.DB, cfg *config.Config, notifier DeliveryNotifier) *Service {
	return &Service{
		db:       db,
		config:   cfg,
		notifier: notifier,
	}
}

// CreateMessageRequest represents a request to create a video message
type CreateMessageRequest struct {
	Title       string     `json:"title" binding:"required"`
	Occasion    string     `json:"occasion"`
	RecipientID *uuid.UUID `json:"recipient_id"`
	StorageURL  string     `json:"storage_url"`
	DurationSec int        `json:"duration_seconds" binding:"min=0"`
}

// UpdateMessageRequest represents a partial update to a video message
type UpdateMessageRequest struct {
	Title       *string        `json:"title"`
	Occasion    *string        `json:"occasion"`
	StorageURL  *string        `json:"storage_url"`
	DurationSec *int           `json:"duration_seconds"`
	Status      *MessageStatus `json:"status"`
}

// CreateMessage creates a video message for the user. A message with a
// storage URL starts recorded, otherwise it starts as a draft.
func (s *Service) CreateMessage(ctx context.Context, userID uuid.UUID, req *CreateMessageRequest) (*VideoMessage, error) {
	status := MessageStatusDraft
	if req.StorageURL != "" {
		status = MessageStatusRecorded
	}

	msg := &VideoMessage{
		UserID:      userID,
		Title:       req.Title,
		Occasion:    req.Occasion,
		RecipientID: req.RecipientID,
		StorageURL:  req.StorageURL,
		DurationSec: req.DurationSec,
		Status:      status,
	}

	if err := s.db.WithContext(ctx).Create(msg).Error; err != nil {
		return nil, fmt.Errorf("failed to create video message: %w", err)
	}
	return msg, nil
}

// GetMessages returns the user's video messages, newest first
func (s *Service) GetMessages(ctx context.Context, userID uuid.UUID) ([]VideoMessage, error) {
	var messages []VideoMessage
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list video messages: %w", err)
	}
	return messages, nil
}

// GetMessage returns one of the user's video messages by ID
func (s *Service) GetMessage(ctx context.Context, userID, messageID uuid.UUID) (*VideoMessage, error) {
	var msg VideoMessage
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", messageID, userID).
		First(&msg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, fmt.Errorf("failed to get video message: %w", err)
	}
	return &msg, nil
}

// UpdateMessage applies a partial update to one of the user's messages
func (s *Service) UpdateMessage(ctx context.Context, userID, messageID uuid.UUID, req *UpdateMessageRequest) (*VideoMessage, error) {
	msg, err := s.GetMessage(ctx, userID, messageID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		msg.Title = *req.Title
	}
	if req.Occasion != nil {
		msg.Occasion = *req.Occasion
	}
	if req.StorageURL != nil {
		msg.StorageURL = *req.StorageURL
		if msg.Status == MessageStatusDraft && *req.StorageURL != "" {
			msg.Status = MessageStatusRecorded
		}
	}
	if req.DurationSec != nil {
		msg.DurationSec = *req.DurationSec
	}
	if req.Status != nil {
		if !req.Status.IsValid() {
			return nil, fmt.Errorf("invalid message status: %s", *req.Status)
		}
		msg.Status = *req.Status
	}

	if err := s.db.WithContext(ctx).Save(msg).Error; err != nil {
		return nil, fmt.Errorf("failed to update video message: %w", err)
	}
	return msg, nil
}

// DeleteMessage removes one of the user's video messages
func (s *Service) DeleteMessage(ctx context.Context, userID, messageID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", messageID, userID).
		Delete(&VideoMessage{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete video message: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrMessageNotFound
	}
	return nil
}

// CreateGiftPlanRequest represents a request to create a gift plan
type CreateGiftPlanRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Occasion    string     `json:"occasion"`
	ProductID   *uuid.UUID `json:"product_id"`
	Budget      float64    `json:"budget" binding:"min=0"`
}

// CreateGiftPlan creates a gift plan for the user
func (s *Service) CreateGiftPlan(ctx context.Context, userID uuid.UUID, req *CreateGiftPlanRequest) (*GiftPlan, error) {
	plan := &GiftPlan{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Occasion:    req.Occasion,
		ProductID:   req.ProductID,
		Budget:      req.Budget,
	}

	if err := s.db.WithContext(ctx).Create(plan).Error; err != nil {
		return nil, fmt.Errorf("failed to create gift plan: %w", err)
	}
	return plan, nil
}

// GetGiftPlans returns the user's gift plans, newest first
func (s *Service) GetGiftPlans(ctx context.Context, userID uuid.UUID) ([]GiftPlan, error) {
	var plans []GiftPlan
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&plans).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list gift plans: %w", err)
	}
	return plans, nil
}

// DeleteGiftPlan removes one of the user's gift plans
func (s *Service) DeleteGiftPlan(ctx context.Context, userID, planID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", planID, userID).
		Delete(&GiftPlan{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete gift plan: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrGiftPlanNotFound
	}
	return nil
}

// ScheduleDeliveryRequest represents a request to schedule a delivery
type ScheduleDeliveryRequest struct {
	MessageID      *uuid.UUID `json:"message_id"`
	GiftPlanID     *uuid.UUID `json:"gift_plan_id"`
	RecipientName  string     `json:"recipient_name" binding:"required"`
	RecipientEmail string     `json:"recipient_email" binding:"required,email"`
	DeliverAt      time.Time  `json:"deliver_at" binding:"required"`
}

// ScheduleDelivery schedules a future delivery for the user. The
// delivery time must be in the future; a linked message moves to the
// scheduled state.
func (s *Service) ScheduleDelivery(ctx context.Context, userID uuid.UUID, req *ScheduleDeliveryRequest) (*ScheduledDelivery, error) {
	if !req.DeliverAt.After(time.Now()) {
		return nil, ErrDeliveryInPast
	}

	if req.MessageID != nil {
		if _, err := s.GetMessage(ctx, userID, *req.MessageID); err != nil {
			return nil, err
		}
	}

	delivery := &ScheduledDelivery{
		UserID:         userID,
		MessageID:      req.MessageID,
		GiftPlanID:     req.GiftPlanID,
		RecipientName:  req.RecipientName,
		RecipientEmail: req.RecipientEmail,
		DeliverAt:      req.DeliverAt,
		Status:         DeliveryStatusPending,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(delivery).Error; err != nil {
			return fmt.Errorf("failed to create scheduled delivery: %w", err)
		}
		if req.MessageID != nil {
			err := tx.Model(&VideoMessage{}).
				Where("id = ? AND user_id = ?", *req.MessageID, userID).
				Update("status", MessageStatusScheduled).Error
			if err != nil {
				return fmt.Errorf("failed to mark message scheduled: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return delivery, nil
}

// GetDeliveries returns the user's scheduled deliveries ordered by
// delivery time
func (s *Service) GetDeliveries(ctx context.Context, userID uuid.UUID) ([]ScheduledDelivery, error) {
	var deliveries []ScheduledDelivery
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("deliver_at ASC").
		Find(&deliveries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list scheduled deliveries: %w", err)
	}
	return deliveries, nil
}

// CancelDelivery cancels one of the user's pending deliveries
func (s *Service) CancelDelivery(ctx context.Context, userID, deliveryID uuid.UUID) (*ScheduledDelivery, error) {
	var delivery ScheduledDelivery
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", deliveryID, userID).
		First(&delivery).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeliveryNotFound
		}
		return nil, fmt.Errorf("failed to get scheduled delivery: %w", err)
	}

	if delivery.Status != DeliveryStatusPending {
		return nil, ErrDeliveryNotPending
	}

	delivery.Status = DeliveryStatusCancelled
	if err := s.db.WithContext(ctx).Save(&delivery).Error; err != nil {
		return nil, fmt.Errorf("failed to cancel scheduled delivery: %w", err)
	}
	return &delivery, nil
}

// UpsertEmergencyContactRequest represents a request to set the user's
// emergency contact
type UpsertEmergencyContactRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Relation string `json:"relation"`
}

// UpsertEmergencyContact creates or replaces the user's emergency
// contact. A user keeps at most one.
func (s *Service) UpsertEmergencyContact(ctx context.Context, userID uuid.UUID, req *UpsertEmergencyContactRequest) (*EmergencyContact, error) {
	var contact EmergencyContact
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&contact).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to get emergency contact: %w", err)
	}

	contact.UserID = userID
	contact.Name = req.Name
	contact.Email = req.Email
	contact.Phone = req.Phone
	contact.Relation = req.Relation

	if err := s.db.WithContext(ctx).Save(&contact).Error; err != nil {
		return nil, fmt.Errorf("failed to save emergency contact: %w", err)
	}
	return &contact, nil
}

// GetEmergencyContact returns the user's emergency contact
func (s *Service) GetEmergencyContact(ctx context.Context, userID uuid.UUID) (*EmergencyContact, error) {
	var contact EmergencyContact
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&contact).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("failed to get emergency contact: %w", err)
	}
	return &contact, nil
}

// DeleteEmergencyContact removes the user's emergency contact
func (s *Service) DeleteEmergencyContact(ctx context.Context, userID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&EmergencyContact{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete emergency contact: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrContactNotFound
	}
	return nil
}

// ReadinessCounters holds the raw preparation counters derived from
// the user's legacy content records
type ReadinessCounters struct {
	MessageCount       int
	GiftPlanCount      int
	ScheduledMoments   int
	HasEmergencyBackup bool
}

// GetReadinessCounters derives the four preparation counters for a
// user. Messages count once recorded (drafts do not). Scheduled
// moments are the whole months between now and the furthest pending
// delivery.
func (s *Service) GetReadinessCounters(ctx context.Context, userID uuid.UUID) (*ReadinessCounters, error) {
	var counters ReadinessCounters

	var messageCount int64
	err := s.db.WithContext(ctx).Model(&VideoMessage{}).
		Where("user_id = ? AND status <> ?", userID, MessageStatusDraft).
		Count(&messageCount).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count video messages: %w", err)
	}
	counters.MessageCount = int(messageCount)

	var giftCount int64
	err = s.db.WithContext(ctx).Model(&GiftPlan{}).
		Where("user_id = ?", userID).
		Count(&giftCount).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count gift plans: %w", err)
	}
	counters.GiftPlanCount = int(giftCount)

	var furthest ScheduledDelivery
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, DeliveryStatusPending).
		Order("deliver_at DESC").
		First(&furthest).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to find furthest delivery: %w", err)
	}
	if err == nil {
		counters.ScheduledMoments = monthsAhead(time.Now(), furthest.DeliverAt)
	}

	var contactCount int64
	err = s.db.WithContext(ctx).Model(&EmergencyContact{}).
		Where("user_id = ?", userID).
		Count(&contactCount).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count emergency contacts: %w", err)
	}
	counters.HasEmergencyBackup = contactCount > 0

	return &counters, nil
}

// monthsAhead counts whole 30-day months between now and a future time
func monthsAhead(now, future time.Time) int {
	if !future.After(now) {
		return 0
	}
	return int(future.Sub(now).Hours() / (24 * 30))
}

// DispatchDueDeliveries finds pending deliveries whose time has come,
// notifies the recipient and marks them sent. Returns the number
// dispatched. Deliveries that fail to send stay pending and are
// retried on the next tick.
func (s *Service) DispatchDueDeliveries(ctx context.Context, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = 50
	}

	var due []ScheduledDelivery
	err := s.db.WithContext(ctx).
		Where("status = ? AND deliver_at <= ?", DeliveryStatusPending, time.Now()).
		Order("deliver_at ASC").
		Limit(batchSize).
		Find(&due).Error
	if err != nil {
		return 0, fmt.Errorf("failed to find due deliveries: %w", err)
	}

	dispatched := 0
	for i := range due {
		delivery := &due[i]

		if s.notifier != nil {
			if err := s.notifier.SendDeliveryNotification(ctx, delivery); err != nil {
				logrus.WithError(err).WithField("delivery_id", delivery.ID).
					Warn("Failed to notify recipient, will retry")
				continue
			}
		}

		now := time.Now()
		delivery.Status = DeliveryStatusSent
		delivery.SentAt = &now
		if err := s.db.WithContext(ctx).Save(delivery).Error; err != nil {
			return dispatched, fmt.Errorf("failed to mark delivery sent: %w", err)
		}

		if delivery.MessageID != nil {
			err := s.db.WithContext(ctx).Model(&VideoMessage{}).
				Where("id = ?", *delivery.MessageID).
				Update("status", MessageStatusDelivered).Error
			if err != nil {
				return dispatched, fmt.Errorf("failed to mark message delivered: %w", err)
			}
		}

		dispatched++
	}

	return dispatched, nil
}
