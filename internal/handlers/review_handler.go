package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sanbil2024/e-videoteka/internal/models"
	"github.com/sanbil2024/e-videoteka/internal/repository"
)

type ReviewHandler struct {
	reviewRepo repository.ReviewRepository
	movieRepo  repository.MovieRepository
	userRepo   repository.UserRepository
}

func NewReviewHandler(
	reviewRepo repository.ReviewRepository,
	movieRepo repository.MovieRepository,
	userRepo repository.UserRepository,
) *ReviewHandler {
	return &ReviewHandler{
		reviewRepo: reviewRepo,
		movieRepo:  movieRepo,
		userRepo:   userRepo,
	}
}

// AddReview creates one review per user per movie and recomputes the movie
// rating as the mean of its reviews.
func (h *ReviewHandler) AddReview(c *gin.Context) {
	userID := c.GetUint("user_id")
	movieID := c.Param("id")

	var req models.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Rating and comment are required",
			"error":   err.Error(),
		})
		return
	}

	movie, err := h.movieRepo.GetMovieByID(movieID)
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
			"message": "Failed to fetch movie",
		})
		return
	}

	existing, err := h.reviewRepo.GetReviewByUserAndMovie(userID, movieID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to check reviews",
		})
		return
	}
	if existing != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Movie already reviewed",
		})
		return
	}

	user, err := h.userRepo.FindUserByID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to fetch user",
		})
		return
	}

	review := &models.Review{
		MovieID: movieID,
		UserID:  userID,
		Name:    user.Name,
		Rating:  req.Rating,
		Comment: req.Comment,
	}

	if err := h.reviewRepo.CreateReview(review); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to create review",
		})
		return
	}

	if err := h.recalculateRating(movie); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to update movie rating",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Review added",
		"data":    review,
	})
}

func (h *ReviewHandler) GetMovieReviews(c *gin.Context) {
	movieID := c.Param("id")

	if _, err := h.movieRepo.GetMovieByID(movieID); err != nil {
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

	reviews, err := h.reviewRepo.GetReviewsByMovie(movieID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to fetch reviews",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"reviews": reviews,
			"total":   len(reviews),
		},
	})
}

// DeleteReview removes a review owned by the caller (admins may remove any)
// and recomputes the movie rating, resetting it to 0 when no reviews remain.
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	userID := c.GetUint("user_id")
	movieID := c.Param("id")
	reviewID := c.Param("review_id")

	movie, err := h.movieRepo.GetMovieByID(movieID)
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
			"message": "Failed to fetch movie",
		})
		return
	}

	review, err := h.reviewRepo.GetReviewByID(reviewID)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Review not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to fetch review",
		})
		return
	}

	// The review must belong to the movie in the path, otherwise the rating
	// recalculation would run against the wrong movie.
	if review.MovieID != movie.ID {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Review not found",
		})
		return
	}

	if review.UserID != userID {
		user, err := h.userRepo.FindUserByID(userID)
		if err != nil || user.Role != "admin" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Not authorized",
			})
			return
		}
	}

	if err := h.reviewRepo.DeleteReview(reviewID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to delete review",
		})
		return
	}

	if err := h.recalculateRating(movie); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to update movie rating",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Review deleted",
	})
}

func (h *ReviewHandler) recalculateRating(movie *models.Movie) error {
	reviews, err := h.reviewRepo.GetReviewsByMovie(movie.ID)
	if err != nil {
		return err
	}

	if len(reviews) == 0 {
		movie.Rating = 0
		movie.NumReviews = 0
	} else {
		sum := 0.0
		for _, r := range reviews {
			sum += r.Rating
		}
		movie.Rating = sum / float64(len(reviews))
		movie.NumReviews = len(reviews)
	}

	return h.movieRepo.UpdateMovie(movie)
}
