package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// package models/movie.go
type Movie struct {
	ID          string         `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title"`
	Director    string         `gorm:"type:varchar(255);not null" json:"director"`
	Year        int            `gorm:"default:0" json:"year"`
	Genre       pq.StringArray `gorm:"type:text[]" json:"genre"`
	Rating      float64        `gorm:"default:0" json:"rating"`
	NumReviews  int            `gorm:"default:0" json:"num_reviews"`
	Duration    int            `gorm:"default:0" json:"duration"`
	Price       float64        `gorm:"default:0" json:"price"`
	Description string         `gorm:"type:text" json:"description"`
	Image       string         `json:"image"`
	Trailer     string         `json:"trailer"`
	Actors      pq.StringArray `gorm:"type:text[]" json:"actors"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`

	// Relationships
	Reviews []Review `gorm:"foreignKey:MovieID" json:"reviews,omitempty"`
}

func (m *Movie) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// HasGenre reports whether the movie carries the given genre tag.
func (m *Movie) HasGenre(genre string) bool {
	for _, g := range m.Genre {
		if g == genre {
			return true
		}
	}
	return false
}

// GenreWeight is one entry of a user's genre preference vector.
// The vector is computed fresh per request and never persisted.
type GenreWeight struct {
	Genre  string `json:"genre"`
	Weight int    `json:"weight"`
}
