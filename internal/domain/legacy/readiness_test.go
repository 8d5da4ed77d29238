package legacy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateLegacyReadinessFullyPrepared(t *testing.T) {
	result := CalculateLegacyReadiness(ReadinessInput{
		MessageCount:       12,
		GiftPlanCount:      8,
		ScheduledMoments:   24,
		HasEmergencyBackup: true,
	})

	assert.GreaterOrEqual(t, result.Score, 90)
	assert.Equal(t, TierLegacyReady, result.Tier)
	assert.Contains(t, result.Recommendations, RecommendKeepRefining)
	assert.Len(t, result.Recommendations, 1)
}

func TestCalculateLegacyReadinessJustStarting(t *testing.T) {
	result := CalculateLegacyReadiness(ReadinessInput{
		MessageCount:       1,
		GiftPlanCount:      0,
		ScheduledMoments:   0,
		HasEmergencyBackup: false,
	})

	assert.Less(t, result.Score, 40)
	assert.Equal(t, TierStartingOut, result.Tier)
	assert.Equal(t, []string{
		RecommendRecordMessages,
		RecommendPlanGifts,
		RecommendScheduleAhead,
		RecommendEmergencyContact,
	}, result.Recommendations)
}

func TestCalculateLegacyReadinessMidway(t *testing.T) {
	result := CalculateLegacyReadiness(ReadinessInput{
		MessageCount:       4,
		GiftPlanCount:      2,
		ScheduledMoments:   12,
		HasEmergencyBackup: true,
	})

	assert.Equal(t, TierBuildingMomentum, result.Tier)
	assert.Contains(t, result.Recommendations, RecommendMoreMessages)
}

func TestCalculateLegacyReadinessExactWeights(t *testing.T) {
	// Each dimension alone contributes exactly its weight at the cap.
	assert.Equal(t, 40, CalculateLegacyReadiness(ReadinessInput{MessageCount: 12}).Score)
	assert.Equal(t, 25, CalculateLegacyReadiness(ReadinessInput{GiftPlanCount: 8}).Score)
	assert.Equal(t, 20, CalculateLegacyReadiness(ReadinessInput{ScheduledMoments: 24}).Score)
	assert.Equal(t, 15, CalculateLegacyReadiness(ReadinessInput{HasEmergencyBackup: true}).Score)
	assert.Equal(t, 100, CalculateLegacyReadiness(ReadinessInput{
		MessageCount:       12,
		GiftPlanCount:      8,
		ScheduledMoments:   24,
		HasEmergencyBackup: true,
	}).Score)
}

func TestCalculateLegacyReadinessClampsInput(t *testing.T) {
	capped := CalculateLegacyReadiness(ReadinessInput{
		MessageCount:     12,
		GiftPlanCount:    8,
		ScheduledMoments: 24,
	})
	over := CalculateLegacyReadiness(ReadinessInput{
		MessageCount:     500,
		GiftPlanCount:    500,
		ScheduledMoments: 500,
	})
	assert.Equal(t, capped.Score, over.Score)

	// Negative counters floor at zero rather than subtracting.
	negative := CalculateLegacyReadiness(ReadinessInput{
		MessageCount:     -3,
		GiftPlanCount:    -1,
		ScheduledMoments: -10,
	})
	assert.Zero(t, negative.Score)
	assert.Equal(t, TierStartingOut, negative.Tier)
}

func TestCalculateLegacyReadinessBounds(t *testing.T) {
	inputs := []ReadinessInput{
		{},
		{MessageCount: -100, GiftPlanCount: -100, ScheduledMoments: -100},
		{MessageCount: 1000, GiftPlanCount: 1000, ScheduledMoments: 1000, HasEmergencyBackup: true},
		{MessageCount: 7, GiftPlanCount: 3, ScheduledMoments: 9},
	}
	for _, input := range inputs {
		result := CalculateLegacyReadiness(input)
		assert.GreaterOrEqual(t, result.Score, 0)
		assert.LessOrEqual(t, result.Score, 100)
		require.NotEmpty(t, result.Recommendations)
	}
}

func TestCalculateLegacyReadinessMonotonic(t *testing.T) {
	// Increasing any counter never lowers the score.
	base := ReadinessInput{MessageCount: 2, GiftPlanCount: 1, ScheduledMoments: 3}
	baseScore := CalculateLegacyReadiness(base).Score

	more := base
	more.MessageCount++
	assert.GreaterOrEqual(t, CalculateLegacyReadiness(more).Score, baseScore)

	more = base
	more.GiftPlanCount++
	assert.GreaterOrEqual(t, CalculateLegacyReadiness(more).Score, baseScore)

	more = base
	more.ScheduledMoments++
	assert.GreaterOrEqual(t, CalculateLegacyReadiness(more).Score, baseScore)

	more = base
	more.HasEmergencyBackup = true
	assert.GreaterOrEqual(t, CalculateLegacyReadiness(more).Score, baseScore)
}

func TestCalculateLegacyReadinessRecommendationOrder(t *testing.T) {
	// Recommendations always follow the fixed evaluation order.
	result := CalculateLegacyReadiness(ReadinessInput{
		MessageCount:       4,
		GiftPlanCount:      0,
		ScheduledMoments:   2,
		HasEmergencyBackup: false,
	})
	assert.Equal(t, []string{
		RecommendMoreMessages,
		RecommendPlanGifts,
		RecommendScheduleAhead,
		RecommendEmergencyContact,
	}, result.Recommendations)
}

func TestCalculateLegacyReadinessTierBoundaries(t *testing.T) {
	// 12 messages + 8 gifts + backup = 40+25+15 = 80, the Legacy Ready floor.
	atEighty := CalculateLegacyReadiness(ReadinessInput{
		MessageCount:       12,
		GiftPlanCount:      8,
		HasEmergencyBackup: true,
	})
	require.Equal(t, 80, atEighty.Score)
	assert.Equal(t, TierLegacyReady, atEighty.Tier)

	// 12 messages alone = 40, the Building Momentum floor.
	atForty := CalculateLegacyReadiness(ReadinessInput{MessageCount: 12})
	require.Equal(t, 40, atForty.Score)
	assert.Equal(t, TierBuildingMomentum, atForty.Tier)
}
