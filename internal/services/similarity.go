package services

import (
	"math"
	"sort"

	"github.com/sanbil2024/e-videoteka/internal/models"
	"github.com/sanbil2024/e-videoteka/internal/repository"
)

// defaultYear substitutes for a missing release year on either side of a
// similarity comparison.
const defaultYear = 2000

// SimilarityService scores every other catalog movie against one reference
// movie on genre overlap, rating proximity and release-year proximity.
type SimilarityService interface {
	GetSimilarMovies(movieID string) ([]models.Movie, error)
	ScoreSimilarity(reference, candidate *models.Movie) (score float64, matches int)
}

type similarityService struct {
	movieRepo repository.MovieRepository
}

func NewSimilarityService(movieRepo repository.MovieRepository) SimilarityService {
	return &similarityService{movieRepo: movieRepo}
}

// ScoreSimilarity computes the composite score:
//
//	genre:  10 points per shared genre, unbounded
//	rating: 10 - |Δrating|, not clamped, so a rating gap above 10 turns the
//	        term negative
//	year:   5 - min(5, |Δyear|/5), zero beyond a 25-year gap
func (s *similarityService) ScoreSimilarity(reference, candidate *models.Movie) (float64, int) {
	matches := genreMatches(reference, candidate)
	genreScore := float64(matches * 10)

	ratingScore := 10 - math.Abs(reference.Rating-candidate.Rating)

	refYear := reference.Year
	if refYear == 0 {
		refYear = defaultYear
	}
	candYear := candidate.Year
	if candYear == 0 {
		candYear = defaultYear
	}
	yearScore := 5 - math.Min(5, math.Abs(float64(refYear-candYear))/5)

	return genreScore + ratingScore + yearScore, matches
}

// GetSimilarMovies returns up to 5 movies similar to the reference, never
// including the reference itself. Movies sharing no genre with the reference
// are excluded no matter how close their rating or year.
func (s *similarityService) GetSimilarMovies(movieID string) ([]models.Movie, error) {
	reference, err := s.movieRepo.GetMovieByID(movieID)
	if err != nil {
		return nil, err
	}

	catalog, err := s.movieRepo.GetAllMovies()
	if err != nil {
		return nil, err
	}

	type scored struct {
		movie models.Movie
		score float64
	}

	candidates := make([]scored, 0, len(catalog))
	for _, movie := range catalog {
		if movie.ID == reference.ID {
			continue
		}

		score, matches := s.ScoreSimilarity(reference, &movie)
		if matches == 0 {
			continue
		}

		candidates = append(candidates, scored{movie: movie, score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	result := make([]models.Movie, 0, RecommendationLimit)
	for _, c := range candidates {
		if len(result) == RecommendationLimit {
			break
		}
		result = append(result, c.movie)
	}

	return result, nil
}
