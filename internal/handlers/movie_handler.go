package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"

	"github.com/sanbil2024/e-videoteka/internal/models"
	"github.com/sanbil2024/e-videoteka/internal/repository"
	"github.com/sanbil2024/e-videoteka/internal/services"
)

type MovieHandler struct {
	movieRepo    repository.MovieRepository
	userRepo     repository.UserRepository
	purchaseRepo repository.PurchaseRepository
}

func NewMovieHandler(
	movieRepo repository.MovieRepository,
	userRepo repository.UserRepository,
	purchaseRepo repository.PurchaseRepository,
) *MovieHandler {
	return &MovieHandler{
		movieRepo:    movieRepo,
		userRepo:     userRepo,
		purchaseRepo: purchaseRepo,
	}
}

func (h *MovieHandler) GetAllMovies(c *gin.Context) {
	movies, err := h.movieRepo.GetAllMovies()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to fetch movies",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"movies": movies,
			"total":  len(movies),
		},
	})
}

func (h *MovieHandler) SearchMovies(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Search query is required",
		})
		return
	}

	limitStr := c.DefaultQuery("limit", "20")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}

	movies, err := h.movieRepo.SearchMovies(query, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Search failed",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"movies": movies,
			"query":  query,
			"total":  len(movies),
		},
	})
}

func (h *MovieHandler) GetTopRatedMovies(c *gin.Context) {
	movies, err := h.movieRepo.GetTopRatedMovies(services.RecommendationLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to fetch top rated movies",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"movies": movies,
			"total":  len(movies),
		},
	})
}

// GetMovieByID serves the movie detail page. When the request carries a valid
// token, the response also says whether the caller favorited the movie and
// whether an unexpired purchase exists.
func (h *MovieHandler) GetMovieByID(c *gin.Context) {
	movie, err := h.movieRepo.GetMovieByID(c.Param("id"))
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
			"error":   err.Error(),
		})
		return
	}

	data := gin.H{"movie": movie}

	if userID := c.GetUint("user_id"); userID != 0 {
		favoriteIDs, err := h.userRepo.GetFavoriteMovieIDs(userID)
		if err == nil {
			favorite := false
			for _, id := range favoriteIDs {
				if id == movie.ID {
					favorite = true
					break
				}
			}
			data["favorite"] = favorite
		}

		purchase, err := h.purchaseRepo.GetActivePurchase(userID, movie.ID, time.Now())
		if err == nil {
			data["owned"] = purchase != nil
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   data,
	})
}

// GetMoviesByGenre lists the best-rated movies carrying one genre tag.
func (h *MovieHandler) GetMoviesByGenre(c *gin.Context) {
	genre := c.Param("genre")

	limitStr := c.DefaultQuery("limit", "20")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}

	movies, err := h.movieRepo.GetMoviesByGenre(genre, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to fetch movies",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"genre":  genre,
			"movies": movies,
			"total":  len(movies),
		},
	})
}

// ---------- FAVORITES & WATCH HISTORY ----------

func (h *MovieHandler) AddFavorite(c *gin.Context) {
	userID := c.GetUint("user_id")
	movieID := c.Param("movie_id")

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

	if err := h.userRepo.AddFavorite(userID, movieID); err != nil {
		if errors.Is(err, repository.ErrAlreadyFavorite) {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "Movie already in favorites",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to add favorite",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Movie added to favorites",
	})
}

func (h *MovieHandler) RemoveFavorite(c *gin.Context) {
	userID := c.GetUint("user_id")
	movieID := c.Param("movie_id")

	if err := h.userRepo.RemoveFavorite(userID, movieID); err != nil {
		if errors.Is(err, repository.ErrFavoriteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Favorite not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to remove favorite",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Movie removed from favorites",
	})
}

func (h *MovieHandler) GetFavorites(c *gin.Context) {
	userID := c.GetUint("user_id")

	ids, err := h.userRepo.GetFavoriteMovieIDs(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to fetch favorites",
		})
		return
	}

	movies, err := h.movieRepo.GetMoviesByIDs(ids)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to fetch movies",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"movies": movies,
			"total":  len(movies),
		},
	})
}

// RecordWatch appends a movie to the user's watch history. A re-watch moves
// the movie to the most-recent position instead of duplicating it.
func (h *MovieHandler) RecordWatch(c *gin.Context) {
	userID := c.GetUint("user_id")
	movieID := c.Param("movie_id")

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

	if err := h.userRepo.RecordWatch(userID, movieID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to record watch",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Watch recorded",
	})
}

func (h *MovieHandler) GetWatchHistory(c *gin.Context) {
	userID := c.GetUint("user_id")

	ids, err := h.userRepo.GetWatchHistoryIDs(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to fetch watch history",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"movie_ids": ids,
			"total":     len(ids),
		},
	})
}

// ---------- SEED ----------

// SeedMovies loads the sample catalog into an empty database.
func (h *MovieHandler) SeedMovies(c *gin.Context) {
	count, err := h.movieRepo.CountMovies()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to check catalog",
		})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Catalog already seeded",
		})
		return
	}

	for i := range sampleMovies {
		if err := h.movieRepo.CreateMovie(&sampleMovies[i]); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"message": "Failed to seed catalog",
				"error":   err.Error(),
			})
			return
		}
	}

	log.Printf("[SeedMovies] Seeded %d movies", len(sampleMovies))

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Catalog seeded",
		"data": gin.H{
			"total": len(sampleMovies),
		},
	})
}

var sampleMovies = []models.Movie{
	{
		Title:       "Ponoćni vlak",
		Director:    "Ivana Marić",
		Year:        2019,
		Genre:       pq.StringArray{"Thriller", "Drama"},
		Rating:      8.2,
		Duration:    124,
		Price:       4.99,
		Description: "Detektivka prati trag nestalog putnika kroz noćne vlakove Europe.",
		Image:       "/images/ponocni-vlak.jpg",
		Trailer:     "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		Actors:      pq.StringArray{"Ana Begić", "Goran Višnjić"},
	},
	{
		Title:       "Smijeh do suza",
		Director:    "Marko Petrović",
		Year:        2021,
		Genre:       pq.StringArray{"Comedy"},
		Rating:      7.4,
		Duration:    98,
		Price:       3.99,
		Description: "Dva brata naslijede propali kafić i pokušaju ga spasiti stand-up večerima.",
		Image:       "/images/smijeh-do-suza.jpg",
		Trailer:     "https://www.youtube.com/watch?v=oHg5SJYRHA0",
		Actors:      pq.StringArray{"Rene Bitorajac", "Tarik Filipović"},
	},
	{
		Title:       "Tamna šuma",
		Director:    "Petra Kovač",
		Year:        2018,
		Genre:       pq.StringArray{"Horror", "Thriller"},
		Rating:      6.9,
		Duration:    105,
		Price:       3.49,
		Description: "Grupa planinara zaluta u šumu u kojoj noću nitko nije sam.",
		Image:       "/images/tamna-suma.jpg",
		Trailer:     "https://www.youtube.com/watch?v=ScMzIvxBSi4",
		Actors:      pq.StringArray{"Zrinka Cvitešić", "Janko Popović"},
	},
	{
		Title:       "Zvijezde iznad grada",
		Director:    "Luka Horvat",
		Year:        2022,
		Genre:       pq.StringArray{"Romance", "Drama"},
		Rating:      8.7,
		Duration:    132,
		Price:       5.49,
		Description: "Astronomkinja i ulični svirač dijele jedno ljeto na zagrebačkim krovovima.",
		Image:       "/images/zvijezde-iznad-grada.jpg",
		Trailer:     "https://www.youtube.com/watch?v=kJQP7kiw5Fk",
		Actors:      pq.StringArray{"Tihana Lazović", "Slavko Sobin"},
	},
	{
		Title:       "Operacija Jadran",
		Director:    "Ivana Marić",
		Year:        2020,
		Genre:       pq.StringArray{"Action", "Thriller"},
		Rating:      7.8,
		Duration:    141,
		Price:       4.49,
		Description: "Specijalna jedinica razotkriva krijumčarsku mrežu duž obale.",
		Image:       "/images/operacija-jadran.jpg",
		Trailer:     "https://www.youtube.com/watch?v=9bZkp7q19f0",
		Actors:      pq.StringArray{"Goran Bogdan", "Ksenija Marinković"},
	},
	{
		Title:       "Mali veliki svijet",
		Director:    "Ana Jurić",
		Year:        2023,
		Genre:       pq.StringArray{"Animation", "Family"},
		Rating:      8.0,
		Duration:    89,
		Price:       3.99,
		Description: "Mrav i pčela kreću na put preko livade kako bi spasili svoju košnicu.",
		Image:       "/images/mali-veliki-svijet.jpg",
		Trailer:     "https://www.youtube.com/watch?v=JGwWNGJdvx8",
		Actors:      pq.StringArray{"Ozren Grabarić", "Nina Violić"},
	},
	{
		Title:       "Posljednja predstava",
		Director:    "Marko Petrović",
		Year:        2017,
		Genre:       pq.StringArray{"Drama"},
		Rating:      9.1,
		Duration:    118,
		Price:       5.99,
		Description: "Ostarjeli glumac priprema oproštajnu izvedbu Hamleta u provincijskome kazalištu.",
		Image:       "/images/posljednja-predstava.jpg",
		Trailer:     "https://www.youtube.com/watch?v=fJ9rUzIMcZQ",
		Actors:      pq.StringArray{"Mustafa Nadarević", "Alma Prica"},
	},
	{
		Title:       "Kod kuće za Božić",
		Director:    "Luka Horvat",
		Year:        2021,
		Genre:       pq.StringArray{"Comedy", "Family", "Romance"},
		Rating:      6.5,
		Duration:    102,
		Price:       2.99,
		Description: "Troje braće i sestara vraća se u rodni dom na prvi Božić bez roditelja.",
		Image:       "/images/kod-kuce-za-bozic.jpg",
		Trailer:     "https://www.youtube.com/watch?v=2Vv-BfVoq4g",
		Actors:      pq.StringArray{"Jadranka Đokić", "Živko Anočić"},
	},
}
