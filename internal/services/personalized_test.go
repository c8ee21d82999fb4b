package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanbil2024/e-videoteka/internal/models"
)

func purchaseOf(userID uint, movieID string, daysAgo int) models.Purchase {
	purchased := time.Now().AddDate(0, 0, -daysAgo)
	return models.Purchase{
		ID:           movieID + "-purchase",
		UserID:       userID,
		MovieID:      movieID,
		PurchaseDate: purchased,
		ExpiryDate:   purchased.AddDate(0, 0, 30),
	}
}

func newPersonalized(movieRepo *fakeMovieRepo, purchaseRepo *fakePurchaseRepo) PersonalizedService {
	return NewPersonalizedService(movieRepo, purchaseRepo, NewProfileService(movieRepo))
}

func TestPersonalRecommendationsGenreMatchWithBackfill(t *testing.T) {
	movieRepo := newFakeMovieRepo(
		testMovie("a", []string{"Horror", "Drama"}, 8, 2020),
		testMovie("b", []string{"Horror"}, 6, 2018),
		testMovie("c", []string{"Comedy"}, 9, 2021),
	)
	purchaseRepo := newFakePurchaseRepo(purchaseOf(1, "a", 3))
	svc := newPersonalized(movieRepo, purchaseRepo)

	movies, err := svc.GetPersonalRecommendations(1)
	require.NoError(t, err)

	// Only b matches the Horror/Drama profile; with fewer than 3 genre
	// matches the backfill adds c by rating.
	require.Len(t, movies, 2)
	assert.Equal(t, "b", movies[0].ID)
	assert.Equal(t, "c", movies[1].ID)
}

func TestPersonalRecommendationsEmptyHistoryEqualsTopRated(t *testing.T) {
	movieRepo := newFakeMovieRepo(
		testMovie("a", []string{"Horror"}, 8, 2020),
		testMovie("b", []string{"Drama"}, 6, 2018),
		testMovie("c", []string{"Comedy"}, 9, 2021),
		testMovie("d", []string{"Action"}, 7, 2019),
		testMovie("e", []string{"Romance"}, 5, 2017),
		testMovie("f", []string{"Thriller"}, 4, 2016),
	)
	purchaseRepo := newFakePurchaseRepo()
	svc := newPersonalized(movieRepo, purchaseRepo)

	movies, err := svc.GetPersonalRecommendations(1)
	require.NoError(t, err)

	topRated, err := movieRepo.GetTopRatedMovies(RecommendationLimit)
	require.NoError(t, err)
	assert.Equal(t, topRated, movies)
}

func TestPersonalRecommendationsNeverIncludePurchased(t *testing.T) {
	movieRepo := newFakeMovieRepo(
		testMovie("a", []string{"Horror"}, 8, 2020),
		testMovie("b", []string{"Horror"}, 6, 2018),
		testMovie("c", []string{"Horror"}, 9, 2021),
		testMovie("d", []string{"Horror"}, 7, 2019),
	)
	purchaseRepo := newFakePurchaseRepo(
		purchaseOf(1, "a", 3),
		purchaseOf(1, "c", 5),
	)
	svc := newPersonalized(movieRepo, purchaseRepo)

	movies, err := svc.GetPersonalRecommendations(1)
	require.NoError(t, err)

	for _, m := range movies {
		assert.NotEqual(t, "a", m.ID)
		assert.NotEqual(t, "c", m.ID)
	}
}

func TestPersonalRecommendationsTopKBound(t *testing.T) {
	movieRepo := newFakeMovieRepo(
		testMovie("a", []string{"Horror"}, 8, 2020),
		testMovie("b", []string{"Horror"}, 6, 2018),
		testMovie("c", []string{"Horror"}, 9, 2021),
		testMovie("d", []string{"Horror"}, 7, 2019),
		testMovie("e", []string{"Horror"}, 5, 2017),
		testMovie("f", []string{"Horror"}, 4, 2016),
		testMovie("g", []string{"Horror"}, 3, 2015),
	)
	purchaseRepo := newFakePurchaseRepo(purchaseOf(1, "a", 3))
	svc := newPersonalized(movieRepo, purchaseRepo)

	movies, err := svc.GetPersonalRecommendations(1)
	require.NoError(t, err)
	assert.Len(t, movies, RecommendationLimit)

	// Ranked by rating among the Horror matches.
	assert.Equal(t, "c", movies[0].ID)
	assert.Equal(t, "d", movies[1].ID)
	assert.Equal(t, "b", movies[2].ID)
}

func TestPersonalRecommendationsUnresolvablePurchasesBackfill(t *testing.T) {
	movieRepo := newFakeMovieRepo(
		testMovie("b", []string{"Horror"}, 6, 2018),
		testMovie("c", []string{"Comedy"}, 9, 2021),
	)
	// The purchased movie was deleted from the catalog; the profile comes
	// out empty and the backfill serves top-rated unpurchased movies.
	purchaseRepo := newFakePurchaseRepo(purchaseOf(1, "gone", 3))
	svc := newPersonalized(movieRepo, purchaseRepo)

	movies, err := svc.GetPersonalRecommendations(1)
	require.NoError(t, err)

	require.Len(t, movies, 2)
	assert.Equal(t, "c", movies[0].ID)
	assert.Equal(t, "b", movies[1].ID)
}

func TestPersonalRecommendationsDeterministic(t *testing.T) {
	movieRepo := newFakeMovieRepo(
		testMovie("a", []string{"Horror", "Drama"}, 8, 2020),
		testMovie("b", []string{"Horror"}, 8, 2018),
		testMovie("c", []string{"Drama"}, 8, 2019),
		testMovie("d", []string{"Comedy"}, 8, 2021),
	)
	purchaseRepo := newFakePurchaseRepo(purchaseOf(1, "a", 3))
	svc := newPersonalized(movieRepo, purchaseRepo)

	first, err := svc.GetPersonalRecommendations(1)
	require.NoError(t, err)
	second, err := svc.GetPersonalRecommendations(1)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
