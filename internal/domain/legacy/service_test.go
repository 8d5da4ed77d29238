package legacy

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/glowing-legacy-backend/internal/domain/message"
)

type stubCounters struct {
	counters message.ReadinessCounters
	err      error
}

func (s *stubCounters) GetReadinessCounters(ctx context.Context, userID uuid.UUID) (*message.ReadinessCounters, error) {
	if s.err != nil {
		return nil, s.err
	}
	c := s.counters
	return &c, nil
}

func TestEvaluateForUser(t *testing.T) {
	svc := NewService(&stubCounters{counters: message.ReadinessCounters{
		MessageCount:       4,
		GiftPlanCount:      2,
		ScheduledMoments:   12,
		HasEmergencyBackup: true,
	}})

	result, err := svc.EvaluateForUser(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, TierBuildingMomentum, result.Tier)
	assert.Contains(t, result.Recommendations, RecommendMoreMessages)
}

func TestEvaluateForUserPropagatesError(t *testing.T) {
	svc := NewService(&stubCounters{err: assert.AnError})

	_, err := svc.EvaluateForUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, assert.AnError)
}

func TestEvaluateMatchesPureFunction(t *testing.T) {
	svc := NewService(&stubCounters{})
	input := ReadinessInput{MessageCount: 7, GiftPlanCount: 3, ScheduledMoments: 9}
	assert.Equal(t, CalculateLegacyReadiness(input), svc.Evaluate(input))
}
