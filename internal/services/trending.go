package services

import (
	"sort"
	"time"

	"github.com/sanbil2024/e-videoteka/internal/config"
	"github.com/sanbil2024/e-videoteka/internal/models"
	"github.com/sanbil2024/e-videoteka/internal/repository"
)

// TrendingService ranks movies by purchase frequency inside the rolling
// trending window.
type TrendingService interface {
	GetTrendingMovies() ([]models.Movie, error)
}

type trendingService struct {
	movieRepo    repository.MovieRepository
	purchaseRepo repository.PurchaseRepository
	config       *config.Config
}

func NewTrendingService(
	movieRepo repository.MovieRepository,
	purchaseRepo repository.PurchaseRepository,
) TrendingService {
	return &trendingService{
		movieRepo:    movieRepo,
		purchaseRepo: purchaseRepo,
		config:       config.GlobalConfig,
	}
}

// GetTrendingMovies counts purchases per movie within the window and returns
// up to 5 movies in frequency order. Ties keep the order in which a movie
// first appeared in the purchase log. When fewer than 5 movies trended the
// partial list is returned as-is, so an empty log yields an empty list.
func (s *trendingService) GetTrendingMovies() ([]models.Movie, error) {
	since := time.Now().AddDate(0, 0, -s.config.TrendingWindowDays)

	purchases, err := s.purchaseRepo.GetPurchasesSince(since)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	order := make([]string, 0)
	for _, p := range purchases {
		if counts[p.MovieID] == 0 {
			order = append(order, p.MovieID)
		}
		counts[p.MovieID]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > RecommendationLimit {
		order = order[:RecommendationLimit]
	}

	movies, err := s.movieRepo.GetMoviesByIDs(order)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*models.Movie, len(movies))
	for i := range movies {
		byID[movies[i].ID] = &movies[i]
	}

	// Resolve in ranked order; a movie deleted since purchase is dropped,
	// not replaced.
	result := make([]models.Movie, 0, len(order))
	for _, id := range order {
		if movie, ok := byID[id]; ok {
			result = append(result, *movie)
		}
	}

	return result, nil
}
