package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/sanbil2024/e-videoteka/internal/database"
	"github.com/sanbil2024/e-videoteka/internal/models"
)

var ErrPurchaseNotFound = errors.New("purchase not found")

type PurchaseRepository interface {
	CreatePurchase(purchase *models.Purchase) error
	GetPurchaseByID(id string) (*models.Purchase, error)
	GetPurchasesByUser(userID uint) ([]models.Purchase, error)
	GetActivePurchase(userID uint, movieID string, now time.Time) (*models.Purchase, error)
	GetPurchasesSince(since time.Time) ([]models.Purchase, error)
	UpdatePurchase(purchase *models.Purchase) error
}

type purchaseRepo struct {
	db *gorm.DB
}

func NewPurchaseRepository() PurchaseRepository {
	return &purchaseRepo{db: database.DB}
}

func (r *purchaseRepo) CreatePurchase(purchase *models.Purchase) error {
	return r.db.Create(purchase).Error
}

func (r *purchaseRepo) GetPurchaseByID(id string) (*models.Purchase, error) {
	var purchase models.Purchase
	err := r.db.First(&purchase, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPurchaseNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

func (r *purchaseRepo) GetPurchasesByUser(userID uint) ([]models.Purchase, error) {
	var purchases []models.Purchase
	err := r.db.Preload("Movie").
		Where("user_id = ?", userID).
		Order("purchase_date DESC").
		Find(&purchases).Error
	if err != nil {
		return nil, err
	}
	if purchases == nil {
		purchases = []models.Purchase{}
	}
	return purchases, nil
}

// GetActivePurchase returns the user's unexpired purchase of the movie,
// or nil when there is none.
func (r *purchaseRepo) GetActivePurchase(userID uint, movieID string, now time.Time) (*models.Purchase, error) {
	var purchase models.Purchase
	err := r.db.Where("user_id = ? AND movie_id = ? AND expiry_date > ?", userID, movieID, now).
		First(&purchase).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &purchase, nil
}

func (r *purchaseRepo) GetPurchasesSince(since time.Time) ([]models.Purchase, error) {
	var purchases []models.Purchase
	err := r.db.Where("purchase_date >= ?", since).
		Order("purchase_date ASC, id ASC").
		Find(&purchases).Error
	if err != nil {
		return nil, err
	}
	if purchases == nil {
		purchases = []models.Purchase{}
	}
	return purchases, nil
}

func (r *purchaseRepo) UpdatePurchase(purchase *models.Purchase) error {
	return r.db.Save(purchase).Error
}
