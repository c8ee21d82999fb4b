package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sanbil2024/e-videoteka/internal/repository"
	"github.com/sanbil2024/e-videoteka/internal/services"
)

type RecommendationHandler struct {
	personalizedService services.PersonalizedService
	similarityService   services.SimilarityService
	trendingService     services.TrendingService
	profileService      services.ProfileService
	userRepo            repository.UserRepository
}

func NewRecommendationHandler(
	personalized services.PersonalizedService,
	similarity services.SimilarityService,
	trending services.TrendingService,
	profile services.ProfileService,
	userRepo repository.UserRepository,
) *RecommendationHandler {
	return &RecommendationHandler{
		personalizedService: personalized,
		similarityService:   similarity,
		trendingService:     trending,
		profileService:      profile,
		userRepo:            userRepo,
	}
}

// resolveUser confirms the token's user still exists. A token can outlive its
// account, and a vanished user must get a not-found response rather than the
// empty-history fallback.
func (h *RecommendationHandler) resolveUser(c *gin.Context) (uint, bool) {
	userID := c.GetUint("user_id")

	if _, err := h.userRepo.FindUserByID(userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "User not found",
			})
			return 0, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to fetch user data",
		})
		return 0, false
	}

	return userID, true
}

// GetPersonalRecommendations returns up to 5 movies picked from the caller's
// purchase history genre profile.
func (h *RecommendationHandler) GetPersonalRecommendations(c *gin.Context) {
	userID, ok := h.resolveUser(c)
	if !ok {
		return
	}

	movies, err := h.personalizedService.GetPersonalRecommendations(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to generate recommendations",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Personal recommendations fetched",
		"data": gin.H{
			"movies": movies,
			"count":  len(movies),
			"type":   "personalized",
		},
	})
}

func (h *RecommendationHandler) GetSimilarMovies(c *gin.Context) {
	movieID := c.Param("movie_id")

	movies, err := h.similarityService.GetSimilarMovies(movieID)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Movie not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to generate recommendations",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Similar movies fetched",
		"data": gin.H{
			"movie_id": movieID,
			"movies":   movies,
			"count":    len(movies),
			"type":     "similarity",
		},
	})
}

func (h *RecommendationHandler) GetTrendingMovies(c *gin.Context) {
	movies, err := h.trendingService.GetTrendingMovies()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to fetch trending movies",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Trending movies fetched",
		"data": gin.H{
			"movies": movies,
			"count":  len(movies),
			"type":   "trending",
		},
	})
}

// GetProfileRecommendations ranks up to 6 unseen movies against the genre
// profile built from the caller's watch history and favorites.
func (h *RecommendationHandler) GetProfileRecommendations(c *gin.Context) {
	userID, ok := h.resolveUser(c)
	if !ok {
		return
	}

	historyIDs, err := h.userRepo.GetWatchHistoryIDs(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to fetch watch history",
		})
		return
	}

	favoriteIDs, err := h.userRepo.GetFavoriteMovieIDs(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to fetch favorites",
		})
		return
	}

	movies, err := h.profileService.GetProfileRecommendations(historyIDs, favoriteIDs, services.ProfileRecommendationLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to generate recommendations",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Profile recommendations fetched",
		"data": gin.H{
			"movies": movies,
			"count":  len(movies),
			"type":   "profile",
		},
	})
}
