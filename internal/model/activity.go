package model

import "activity-suggestion-bff/internal/upstream"

// AccessibilityRating is the three-tier label derived from an accessibility score.
type AccessibilityRating string

const (
	AccessibilityEasy         AccessibilityRating = "Easy"
	AccessibilityIntermediate AccessibilityRating = "Intermediate"
	AccessibilityHard         AccessibilityRating = "Hard"
)

// Thresholds are exclusive: a score equal to a threshold falls into the lower tier.
const (
	hardThreshold         = 0.66
	intermediateThreshold = 0.33
)

// SuggestedActivity is the activity shape served to front-end clients.
// It is decoupled from upstream.Activity so upstream schema changes do not
// leak to consumers.
type SuggestedActivity struct {
	ID                  string              `json:"id"`
	Description         string              `json:"description"`
	Category            string              `json:"category"`
	ParticipantCount    int                 `json:"participantCount"`
	Cost                float64             `json:"cost"`
	URI                 string              `json:"uri"`
	AccessibilityScore  float64             `json:"accessibilityScore"`
	AccessibilityRating AccessibilityRating `json:"accessibilityRating"`
}

// NewSuggestedActivity maps an upstream activity to its front-end shape.
func NewSuggestedActivity(a upstream.Activity) SuggestedActivity {
	return SuggestedActivity{
		ID:                  a.Key,
		Description:         a.Activity,
		Category:            a.Type,
		ParticipantCount:    a.Participants,
		Cost:                a.Price,
		URI:                 a.Link,
		AccessibilityScore:  a.Accessibility,
		AccessibilityRating: RateAccessibility(a.Accessibility),
	}
}

// RateAccessibility buckets an accessibility score (0 easiest, 1 hardest).
func RateAccessibility(score float64) AccessibilityRating {
	switch {
	case score > hardThreshold:
		return AccessibilityHard
	case score > intermediateThreshold:
		return AccessibilityIntermediate
	default:
		return AccessibilityEasy
	}
}
