package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanbil2024/e-videoteka/internal/models"
)

func trendingPurchases(movieID string, count, daysAgo int) []models.Purchase {
	out := make([]models.Purchase, 0, count)
	for i := 0; i < count; i++ {
		p := purchaseOf(uint(i+1), movieID, daysAgo)
		p.ID = ""
		out = append(out, p)
	}
	return out
}

func TestTrendingWindowExcludesOldPurchases(t *testing.T) {
	movieRepo := newFakeMovieRepo(
		testMovie("x", []string{"Horror"}, 8, 2020),
		testMovie("y", []string{"Drama"}, 9, 2019),
	)
	purchases := append(
		trendingPurchases("x", 6, 3),
		trendingPurchases("y", 2, 40)...,
	)
	purchaseRepo := newFakePurchaseRepo(purchases...)
	svc := NewTrendingService(movieRepo, purchaseRepo)

	movies, err := svc.GetTrendingMovies()
	require.NoError(t, err)

	// y falls outside the 30-day window; the partial list comes back
	// without top-rated backfill.
	require.Len(t, movies, 1)
	assert.Equal(t, "x", movies[0].ID)
}

func TestTrendingRanksByPurchaseCount(t *testing.T) {
	movieRepo := newFakeMovieRepo(
		testMovie("x", []string{"Horror"}, 5, 2020),
		testMovie("y", []string{"Drama"}, 9, 2019),
		testMovie("z", []string{"Comedy"}, 7, 2021),
	)
	purchases := append(
		trendingPurchases("y", 2, 5),
		trendingPurchases("x", 4, 4)...,
	)
	purchases = append(purchases, trendingPurchases("z", 3, 2)...)
	purchaseRepo := newFakePurchaseRepo(purchases...)
	svc := NewTrendingService(movieRepo, purchaseRepo)

	movies, err := svc.GetTrendingMovies()
	require.NoError(t, err)

	require.Len(t, movies, 3)
	assert.Equal(t, "x", movies[0].ID)
	assert.Equal(t, "z", movies[1].ID)
	assert.Equal(t, "y", movies[2].ID)
}

func TestTrendingTieKeepsFirstAppearanceOrder(t *testing.T) {
	movieRepo := newFakeMovieRepo(
		testMovie("x", []string{"Horror"}, 2, 2020),
		testMovie("y", []string{"Drama"}, 9, 2019),
	)
	// Same count; y entered the log first (older purchase sorts first).
	purchases := append(
		trendingPurchases("y", 2, 10),
		trendingPurchases("x", 2, 5)...,
	)
	purchaseRepo := newFakePurchaseRepo(purchases...)
	svc := NewTrendingService(movieRepo, purchaseRepo)

	movies, err := svc.GetTrendingMovies()
	require.NoError(t, err)

	require.Len(t, movies, 2)
	assert.Equal(t, "y", movies[0].ID)
	assert.Equal(t, "x", movies[1].ID)
}

func TestTrendingDropsDeletedMovies(t *testing.T) {
	movieRepo := newFakeMovieRepo(
		testMovie("x", []string{"Horror"}, 8, 2020),
	)
	purchases := append(
		trendingPurchases("gone", 5, 3),
		trendingPurchases("x", 2, 2)...,
	)
	purchaseRepo := newFakePurchaseRepo(purchases...)
	svc := NewTrendingService(movieRepo, purchaseRepo)

	movies, err := svc.GetTrendingMovies()
	require.NoError(t, err)

	// The deleted movie is dropped from the result, not replaced.
	require.Len(t, movies, 1)
	assert.Equal(t, "x", movies[0].ID)
}

func TestTrendingTopKBound(t *testing.T) {
	ids := []string{"m1", "m2", "m3", "m4", "m5", "m6", "m7"}
	movies := make([]models.Movie, 0, len(ids))
	purchases := []models.Purchase{}
	for i, id := range ids {
		movies = append(movies, testMovie(id, []string{"Horror"}, 5, 2020))
		purchases = append(purchases, trendingPurchases(id, len(ids)-i, 3)...)
	}
	movieRepo := newFakeMovieRepo(movies...)
	purchaseRepo := newFakePurchaseRepo(purchases...)
	svc := NewTrendingService(movieRepo, purchaseRepo)

	result, err := svc.GetTrendingMovies()
	require.NoError(t, err)

	require.Len(t, result, RecommendationLimit)
	assert.Equal(t, "m1", result[0].ID)
	assert.Equal(t, "m5", result[4].ID)
}

func TestTrendingEmptyLogYieldsEmptyList(t *testing.T) {
	movieRepo := newFakeMovieRepo(
		testMovie("x", []string{"Horror"}, 8, 2020),
	)
	purchaseRepo := newFakePurchaseRepo()
	svc := NewTrendingService(movieRepo, purchaseRepo)

	movies, err := svc.GetTrendingMovies()
	require.NoError(t, err)
	assert.Empty(t, movies)
}
