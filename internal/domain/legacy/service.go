// internal/domain/legacy/service.go
package legacy

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/your-org/glowing-legacy-backend/internal/domain/message"
)

// CounterSource supplies the raw preparation counters for a user
type CounterSource interface {
	GetReadinessCounters(ctx context.Context, userID uuid.UUID) (*message.ReadinessCounters, error)
}

// Service scores a user's legacy readiness from their stored records
type Service struct {
	counters CounterSource
}

// NewService creates a new readiness service
func NewService(counters CounterSource) *Service {
	return &Service{counters: counters}
}

// Evaluate scores raw counters without touching storage. Used by the
// interactive calculator endpoint.
func (s *Service) Evaluate(input ReadinessInput) ReadinessResult {
	return CalculateLegacyReadiness(input)
}

// EvaluateForUser derives the counters from the user's messages, gift
// plans, deliveries and emergency contact, then scores them
func (s *Service) EvaluateForUser(ctx context.Context, userID uuid.UUID) (*ReadinessResult, error) {
	counters, err := s.counters.GetReadinessCounters(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to derive readiness counters: %w", err)
	}

	result := CalculateLegacyReadiness(ReadinessInput{
		MessageCount:       counters.MessageCount,
		GiftPlanCount:      counters.GiftPlanCount,
		ScheduledMoments:   counters.ScheduledMoments,
		HasEmergencyBackup: counters.HasEmergencyBackup,
	})
	return &result, nil
}
