package services

import (
	"sort"

	"github.com/sanbil2024/e-videoteka/internal/config"
	"github.com/sanbil2024/e-videoteka/internal/models"
	"github.com/sanbil2024/e-videoteka/internal/repository"
)

// ProfileService builds a user's genre preference vector from watch history
// and favorites, and derives catalog recommendations from it. The vector is
// recomputed from the interaction ids on every call and never cached.
type ProfileService interface {
	BuildGenreProfile(historyIDs, favoriteIDs []string) ([]models.GenreWeight, error)
	GetProfileRecommendations(historyIDs, favoriteIDs []string, limit int) ([]models.Movie, error)
}

type profileService struct {
	movieRepo repository.MovieRepository
	config    *config.Config
}

func NewProfileService(movieRepo repository.MovieRepository) ProfileService {
	return &profileService{
		movieRepo: movieRepo,
		config:    config.GlobalConfig,
	}
}

// BuildGenreProfile accumulates genre weights: 1 per genre for every watched
// movie, FavoriteGenreWeight (2 by default) per genre for every favorite.
// Ids that no longer resolve in the catalog are skipped silently. The result
// is sorted by weight descending; ties keep first-encountered genre order.
func (s *profileService) BuildGenreProfile(historyIDs, favoriteIDs []string) ([]models.GenreWeight, error) {
	allIDs := make([]string, 0, len(historyIDs)+len(favoriteIDs))
	allIDs = append(allIDs, historyIDs...)
	allIDs = append(allIDs, favoriteIDs...)

	movies, err := s.movieRepo.GetMoviesByIDs(allIDs)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*models.Movie, len(movies))
	for i := range movies {
		byID[movies[i].ID] = &movies[i]
	}

	favoriteWeight := s.config.FavoriteGenreWeight

	weights := []models.GenreWeight{}
	index := make(map[string]int)

	add := func(ids []string, weight int) {
		for _, id := range ids {
			movie, ok := byID[id]
			if !ok {
				continue // deleted movie, not an error
			}
			for _, genre := range movie.Genre {
				i, seen := index[genre]
				if !seen {
					index[genre] = len(weights)
					weights = append(weights, models.GenreWeight{Genre: genre})
					i = index[genre]
				}
				weights[i].Weight += weight
			}
		}
	}

	add(historyIDs, 1)
	add(favoriteIDs, favoriteWeight)

	// Stable sort keeps first-encountered order for equal weights, which
	// determines downstream top-genre selection.
	sort.SliceStable(weights, func(i, j int) bool {
		return weights[i].Weight > weights[j].Weight
	})

	return weights, nil
}

// GetProfileRecommendations ranks unseen movies by how well they match the
// profile: each matching genre earns points by its preference rank, plus
// rating/2 as a quality signal. An empty profile falls back to the top-rated
// catalog ranking.
func (s *profileService) GetProfileRecommendations(historyIDs, favoriteIDs []string, limit int) ([]models.Movie, error) {
	if limit <= 0 {
		limit = ProfileRecommendationLimit
	}

	if len(historyIDs) == 0 && len(favoriteIDs) == 0 {
		return s.movieRepo.GetTopRatedMovies(limit)
	}

	profile, err := s.BuildGenreProfile(historyIDs, favoriteIDs)
	if err != nil {
		return nil, err
	}

	genreRank := make(map[string]int, len(profile))
	for i, gw := range profile {
		genreRank[gw.Genre] = i
	}

	catalog, err := s.movieRepo.GetAllMovies()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(historyIDs)+len(favoriteIDs))
	for _, id := range historyIDs {
		seen[id] = true
	}
	for _, id := range favoriteIDs {
		seen[id] = true
	}

	type scored struct {
		movie models.Movie
		score float64
	}

	candidates := make([]scored, 0, len(catalog))
	for _, movie := range catalog {
		if seen[movie.ID] {
			continue
		}

		score := 0.0
		for _, genre := range movie.Genre {
			if rank, ok := genreRank[genre]; ok {
				score += float64(len(profile) - rank)
			}
		}
		score += movie.Rating / 2

		candidates = append(candidates, scored{movie: movie, score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	result := make([]models.Movie, 0, limit)
	for _, c := range candidates {
		if len(result) == limit {
			break
		}
		result = append(result, c.movie)
	}

	return result, nil
}
