package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/sanbil2024/e-videoteka/internal/database"
	"github.com/sanbil2024/e-videoteka/internal/models"
)

var ErrReviewNotFound = errors.New("review not found")

type ReviewRepository interface {
	CreateReview(review *models.Review) error
	GetReviewByID(id string) (*models.Review, error)
	GetReviewsByMovie(movieID string) ([]models.Review, error)
	GetReviewByUserAndMovie(userID uint, movieID string) (*models.Review, error)
	DeleteReview(id string) error
}

type reviewRepo struct {
	db *gorm.DB
}

func NewReviewRepository() ReviewRepository {
	return &reviewRepo{db: database.DB}
}

func (r *reviewRepo) CreateReview(review *models.Review) error {
	return r.db.Create(review).Error
}

func (r *reviewRepo) GetReviewByID(id string) (*models.Review, error) {
	var review models.Review
	err := r.db.First(&review, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepo) GetReviewsByMovie(movieID string) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Where("movie_id = ?", movieID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	return reviews, nil
}

func (r *reviewRepo) GetReviewByUserAndMovie(userID uint, movieID string) (*models.Review, error) {
	var review models.Review
	err := r.db.Where("user_id = ? AND movie_id = ?", userID, movieID).First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // not reviewed yet, not an error
		}
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepo) DeleteReview(id string) error {
	result := r.db.Delete(&models.Review{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}
