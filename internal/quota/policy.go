package quota

import (
	"fmt"

	"flashdeck/internal/auth"
)

// FreePlanDeckLimit is the number of decks a free-plan user may own.
const FreePlanDeckLimit = 3

// Decision is the outcome of the deck-creation policy.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

// Decide is a pure function of the caller's entitlements and current owned
// deck count. It is called both by the UI-facing quota endpoint and again at
// insert time; the check-then-insert pair is not transactionally guarded, so
// the limit is soft under concurrent requests.
func Decide(ident *auth.Identity, ownedDecks int64) Decision {
	if ident == nil || ident.UserID == "" {
		return Decision{Allowed: false, Reason: "unauthorized"}
	}
	if ident.Has(auth.FeatureUnlimitedDecks) {
		return Decision{Allowed: true}
	}
	if ident.Has(auth.FeatureThreeDeckLimit) && ownedDecks >= FreePlanDeckLimit {
		return Decision{
			Allowed: false,
			Reason:  fmt.Sprintf("Free plan is limited to %d decks. Upgrade to create more.", FreePlanDeckLimit),
		}
	}
	return Decision{Allowed: true}
}
