package model

import (
	"time"
)

// Card carries no owner of its own; ownership is transitive through the deck.
type Card struct {
	ID        uint   `gorm:"primaryKey"`
	DeckID    uint   `gorm:"not null;index"`
	Front     string `gorm:"type:text;not null"`
	Back      string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Deck Deck `gorm:"foreignKey:DeckID" json:"-"`
}
