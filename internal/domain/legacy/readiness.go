// internal/domain/legacy/readiness.go
package legacy

import "math"

// Tier classifies a readiness score into one of three bands
type Tier string

const (
	TierStartingOut      Tier = "Starting Out"
	TierBuildingMomentum Tier = "Building Momentum"
	TierLegacyReady      Tier = "Legacy Ready"
)

// Scoring caps and weights. Each counter saturates at its cap; the four
// weights sum to 100.
const (
	messageCap  = 12
	giftCap     = 8
	scheduleCap = 24

	messageWeight  = 40
	giftWeight     = 25
	scheduleWeight = 20
	backupWeight   = 15
)

// Recommendation texts, in evaluation order
const (
	RecommendRecordMessages   = "Record at least three milestone messages to anchor your story."
	RecommendMoreMessages     = "Consider adding more messages for birthdays and anniversaries."
	RecommendPlanGifts        = "Plan at least two intentional gifts to accompany your messages."
	RecommendScheduleAhead    = "Schedule deliveries at least six months into the future."
	RecommendEmergencyContact = "Add an emergency contact to guarantee timely delivery."
	RecommendKeepRefining     = "You are in great shape. Keep refining your legacy details."
)

// ReadinessInput carries the four preparation counters for one user
type ReadinessInput struct {
	MessageCount       int  `json:"message_count" binding:"min=0"`
	GiftPlanCount      int  `json:"gift_plan_count" binding:"min=0"`
	ScheduledMoments   int  `json:"scheduled_moments" binding:"min=0"` // months scheduled ahead
	HasEmergencyBackup bool `json:"has_emergency_backup"`
}

// ReadinessResult is the scored outcome: a 0-100 score, its tier, and
// an ordered, non-empty list of recommendations
type ReadinessResult struct {
	Score           int      `json:"score"`
	Tier            Tier     `json:"tier"`
	Recommendations []string `json:"recommendations"`
}

// CalculateLegacyReadiness converts the four raw counters into a
// bounded score, a tier and prioritized recommendations. Deterministic,
// no I/O; safe to call concurrently.
func CalculateLegacyReadiness(input ReadinessInput) ReadinessResult {
	// Each counter saturates at its cap and floors at zero; the partial
	// scores are summed at full precision and rounded once.
	messageScore := float64(clamp(input.MessageCount, messageCap)) / messageCap * messageWeight
	giftScore := float64(clamp(input.GiftPlanCount, giftCap)) / giftCap * giftWeight
	scheduleScore := float64(clamp(input.ScheduledMoments, scheduleCap)) / scheduleCap * scheduleWeight
	backupScore := 0.0
	if input.HasEmergencyBackup {
		backupScore = backupWeight
	}

	score := int(math.Round(messageScore + giftScore + scheduleScore + backupScore))

	var tier Tier
	switch {
	case score >= 80:
		tier = TierLegacyReady
	case score >= 40:
		tier = TierBuildingMomentum
	default:
		tier = TierStartingOut
	}

	// Each dimension is checked independently, in fixed order, against
	// the raw input. Only the two message rules are mutually exclusive.
	recommendations := []string{}

	if input.MessageCount < 3 {
		recommendations = append(recommendations, RecommendRecordMessages)
	} else if input.MessageCount < 6 {
		recommendations = append(recommendations, RecommendMoreMessages)
	}

	if input.GiftPlanCount < 2 {
		recommendations = append(recommendations, RecommendPlanGifts)
	}

	if input.ScheduledMoments < 6 {
		recommendations = append(recommendations, RecommendScheduleAhead)
	}

	if !input.HasEmergencyBackup {
		recommendations = append(recommendations, RecommendEmergencyContact)
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations, RecommendKeepRefining)
	}

	return ReadinessResult{
		Score:           score,
		Tier:            tier,
		Recommendations: recommendations,
	}
}

func clamp(value, max int) int {
	if value < 0 {
		return 0
	}
	if value > max {
		return max
	}
	return value
}
