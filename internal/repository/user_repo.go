package repository

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sanbil2024/e-videoteka/internal/database"
	"github.com/sanbil2024/e-videoteka/internal/models"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrAlreadyFavorite  = errors.New("movie already in favorites")
	ErrFavoriteNotFound = errors.New("favorite not found")
)

type UserRepository interface {
	CreateUser(user *models.User) error
	FindUserByEmail(email string) (*models.User, error)
	FindUserByID(id uint) (*models.User, error)
	UpdateUser(user *models.User) error
	HashPassword(password string) (string, error)
	VerifyPassword(hashedPassword, password string) error

	AddFavorite(userID uint, movieID string) error
	RemoveFavorite(userID uint, movieID string) error
	GetFavoriteMovieIDs(userID uint) ([]string, error)
	RecordWatch(userID uint, movieID string) error
	GetWatchHistoryIDs(userID uint) ([]string, error)
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepository() UserRepository {
	return &userRepo{db: database.DB}
}

func (r *userRepo) CreateUser(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *userRepo) FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // not found is not an error here
		}
		return nil, err
	}

	return &user, nil
}

func (r *userRepo) FindUserByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) UpdateUser(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *userRepo) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func (r *userRepo) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func (r *userRepo) AddFavorite(userID uint, movieID string) error {
	var count int64
	err := r.db.Model(&models.UserFavorite{}).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrAlreadyFavorite
	}

	return r.db.Create(&models.UserFavorite{
		UserID:  userID,
		MovieID: movieID,
	}).Error
}

func (r *userRepo) RemoveFavorite(userID uint, movieID string) error {
	result := r.db.Where("user_id = ? AND movie_id = ?", userID, movieID).
		Delete(&models.UserFavorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

func (r *userRepo) GetFavoriteMovieIDs(userID uint) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.UserFavorite{}).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Pluck("movie_id", &ids).Error
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// RecordWatch inserts a watch event, or bumps WatchedAt when the movie was
// already watched so it moves to the end of the history.
func (r *userRepo) RecordWatch(userID uint, movieID string) error {
	var event models.WatchEvent
	err := r.db.Where("user_id = ? AND movie_id = ?", userID, movieID).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return r.db.Create(&models.WatchEvent{
				UserID:    userID,
				MovieID:   movieID,
				WatchedAt: time.Now(),
			}).Error
		}
		return err
	}

	event.WatchedAt = time.Now()
	return r.db.Save(&event).Error
}

// GetWatchHistoryIDs returns movie ids ordered oldest first, so the last
// entry is the most recently watched.
func (r *userRepo) GetWatchHistoryIDs(userID uint) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.WatchEvent{}).
		Where("user_id = ?", userID).
		Order("watched_at ASC").
		Pluck("movie_id", &ids).Error
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}
