package model

import (
	"time"
)

// Deck is a named collection of flashcards with exactly one owner. UserID is
// the authenticated subject string; it never changes after creation.
type Deck struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"not null;size:100"`
	Description string `gorm:"size:500"`
	UserID      string `gorm:"not null;size:255;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Cards []Card `gorm:"foreignKey:DeckID;constraint:OnDelete:CASCADE"`
}
