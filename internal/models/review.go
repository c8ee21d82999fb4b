package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Review struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	MovieID   string    `gorm:"type:uuid;not null;index" json:"movie_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Name      string    `gorm:"type:varchar(255)" json:"name"`
	Rating    float64   `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text;not null" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

type ReviewRequest struct {
	Rating  float64 `json:"rating" binding:"required,min=1,max=10"`
	Comment string  `json:"comment" binding:"required"`
}
