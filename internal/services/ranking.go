package services

import (
	"sort"

	"github.com/sanbil2024/e-videoteka/internal/models"
)

const (
	// RecommendationLimit caps personalized, similarity and trending results.
	RecommendationLimit = 5
	// ProfileRecommendationLimit caps the generic profile-based recommender.
	ProfileRecommendationLimit = 6
)

// sortByRatingDesc orders movies by rating descending. The sort is stable so
// equal ratings keep their incoming (catalog) order, which keeps repeated
// calls over the same snapshot byte-identical.
func sortByRatingDesc(movies []models.Movie) {
	sort.SliceStable(movies, func(i, j int) bool {
		return movies[i].Rating > movies[j].Rating
	})
}

// limitMovies returns at most limit movies, never nil.
func limitMovies(movies []models.Movie, limit int) []models.Movie {
	if movies == nil {
		return []models.Movie{}
	}
	if len(movies) > limit {
		return movies[:limit]
	}
	return movies
}

// genreMatches counts the genres present on both movies.
func genreMatches(a, b *models.Movie) int {
	matches := 0
	for _, g := range a.Genre {
		if b.HasGenre(g) {
			matches++
		}
	}
	return matches
}
