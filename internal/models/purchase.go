package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Purchase is a user's time-bounded entitlement to view a movie.
// ExpiryDate is always PurchaseDate plus the configured retention window.
type Purchase struct {
	ID           string     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uint       `gorm:"not null;index" json:"user_id"`
	MovieID      string     `gorm:"type:uuid;not null;index" json:"movie_id"`
	PurchaseDate time.Time  `gorm:"not null;index" json:"purchase_date"`
	ExpiryDate   time.Time  `gorm:"not null" json:"expiry_date"`
	LastViewed   *time.Time `json:"last_viewed"`
	ViewCount    int        `gorm:"default:0" json:"view_count"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Relationships
	User  User  `gorm:"foreignKey:UserID" json:"-"`
	Movie Movie `gorm:"foreignKey:MovieID" json:"movie"`
}

func (p *Purchase) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// IsExpired reports whether the entitlement has lapsed at the given time.
func (p *Purchase) IsExpired(now time.Time) bool {
	return p.ExpiryDate.Before(now)
}

type PurchaseRequest struct {
	MovieID string `json:"movie_id" binding:"required"`
}
