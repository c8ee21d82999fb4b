package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sanbil2024/e-videoteka/internal/config"
	"github.com/sanbil2024/e-videoteka/internal/models"
	"github.com/sanbil2024/e-videoteka/internal/repository"
)

type PurchaseHandler struct {
	purchaseRepo repository.PurchaseRepository
	movieRepo    repository.MovieRepository
	config       *config.Config
}

func NewPurchaseHandler(purchaseRepo repository.PurchaseRepository, movieRepo repository.MovieRepository) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseRepo: purchaseRepo,
		movieRepo:    movieRepo,
		config:       config.GlobalConfig,
	}
}

// CreatePurchase grants a time-limited entitlement. The purchase itself is
// simulated, there is no payment step.
func (h *PurchaseHandler) CreatePurchase(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req models.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	if _, err := h.movieRepo.GetMovieByID(req.MovieID); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Movie not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to fetch movie",
		})
		return
	}

	now := time.Now()

	// An unexpired purchase of the same movie blocks a re-purchase.
	existing, err := h.purchaseRepo.GetActivePurchase(userID, req.MovieID, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to check purchases",
		})
		return
	}
	if existing != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Movie already purchased and available for viewing",
		})
		return
	}

	purchase := &models.Purchase{
		UserID:       userID,
		MovieID:      req.MovieID,
		PurchaseDate: now,
		ExpiryDate:   now.AddDate(0, 0, h.config.PurchaseRetentionDays),
	}

	if err := h.purchaseRepo.CreatePurchase(purchase); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to create purchase",
			"error":   err.Error(),
		})
		return
	}

	log.Printf("[CreatePurchase] User %d purchased movie %s", userID, req.MovieID)

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Movie purchased",
		"data":    purchase,
	})
}

func (h *PurchaseHandler) GetUserPurchases(c *gin.Context) {
	userID := c.GetUint("user_id")

	purchases, err := h.purchaseRepo.GetPurchasesByUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to fetch purchases",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"purchases": purchases,
			"total":     len(purchases),
		},
	})
}

// RecordView bumps the view counter on an entitlement the caller owns and
// that has not expired yet.
func (h *PurchaseHandler) RecordView(c *gin.Context) {
	userID := c.GetUint("user_id")

	purchase, err := h.purchaseRepo.GetPurchaseByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrPurchaseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Purchase not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to fetch purchase",
		})
		return
	}

	if purchase.UserID != userID {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Not authorized",
		})
		return
	}

	now := time.Now()
	if purchase.IsExpired(now) {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Movie access has expired",
		})
		return
	}

	purchase.LastViewed = &now
	purchase.ViewCount++

	if err := h.purchaseRepo.UpdatePurchase(purchase); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to record view",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "View recorded",
		"data":    purchase,
	})
}
