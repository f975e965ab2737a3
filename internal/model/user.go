package model

import (
	"time"

	"github.com/google/uuid"
)

// Subscription plans. The plan travels as a token claim and is resolved into
// entitlement flags by the auth package.
const (
	PlanFree = "free"
	PlanPro  = "pro"
)

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Email          string    `gorm:"uniqueIndex;not null"`
	HashedPassword string    `gorm:"not null"`
	Name           string    `gorm:"not null"`
	Plan           string    `gorm:"not null;default:'free'"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}
