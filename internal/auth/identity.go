package auth

import "flashdeck/internal/model"

// Entitlement is a boolean capability flag derived from the caller's plan.
type Entitlement string

const (
	PlanPro               Entitlement = "pro"
	FeatureUnlimitedDecks Entitlement = "unlimited_decks"
	FeatureThreeDeckLimit Entitlement = "three_deck_limit"
	FeatureAIGeneration   Entitlement = "ai_flashcard_generation"
)

// Identity is the resolved caller: the opaque subject plus entitlement lookup.
// A nil Identity means unauthenticated.
type Identity struct {
	UserID string
	Plan   string
}

func (i *Identity) Has(e Entitlement) bool {
	if i == nil {
		return false
	}
	switch e {
	case PlanPro, FeatureUnlimitedDecks, FeatureAIGeneration:
		return i.Plan == model.PlanPro
	case FeatureThreeDeckLimit:
		return i.Plan != model.PlanPro
	}
	return false
}
