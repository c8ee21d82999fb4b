package services

import (
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanbil2024/e-videoteka/internal/models"
)

func testMovie(id string, genres []string, rating float64, year int) models.Movie {
	return models.Movie{
		ID:     id,
		Title:  "Movie " + id,
		Genre:  pq.StringArray(genres),
		Rating: rating,
		Year:   year,
	}
}

func TestBuildGenreProfileWeights(t *testing.T) {
	repo := newFakeMovieRepo(
		testMovie("a", []string{"Horror", "Drama"}, 8, 2020),
		testMovie("b", []string{"Horror"}, 6, 2018),
		testMovie("c", []string{"Comedy"}, 9, 2021),
	)
	svc := NewProfileService(repo)

	profile, err := svc.BuildGenreProfile([]string{"a", "b"}, []string{"c"})
	require.NoError(t, err)

	// Horror 2 (a+b), Comedy 2 (favorite weight), Drama 1. Horror was
	// encountered first, so it stays ahead of Comedy on the tie.
	require.Len(t, profile, 3)
	assert.Equal(t, models.GenreWeight{Genre: "Horror", Weight: 2}, profile[0])
	assert.Equal(t, models.GenreWeight{Genre: "Comedy", Weight: 2}, profile[1])
	assert.Equal(t, models.GenreWeight{Genre: "Drama", Weight: 1}, profile[2])
}

func TestBuildGenreProfileSkipsDeletedMovies(t *testing.T) {
	repo := newFakeMovieRepo(
		testMovie("a", []string{"Horror"}, 8, 2020),
	)
	svc := NewProfileService(repo)

	profile, err := svc.BuildGenreProfile([]string{"a", "gone-1"}, []string{"gone-2"})
	require.NoError(t, err)

	require.Len(t, profile, 1)
	assert.Equal(t, "Horror", profile[0].Genre)
	assert.Equal(t, 1, profile[0].Weight)
}

func TestBuildGenreProfileEmptyInput(t *testing.T) {
	repo := newFakeMovieRepo(
		testMovie("a", []string{"Horror"}, 8, 2020),
	)
	svc := NewProfileService(repo)

	profile, err := svc.BuildGenreProfile(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, profile)
}

func TestBuildGenreProfileTieKeepsGenreOrder(t *testing.T) {
	repo := newFakeMovieRepo(
		testMovie("a", []string{"Horror", "Drama"}, 8, 2020),
	)
	svc := NewProfileService(repo)

	profile, err := svc.BuildGenreProfile([]string{"a"}, nil)
	require.NoError(t, err)

	require.Len(t, profile, 2)
	assert.Equal(t, "Horror", profile[0].Genre)
	assert.Equal(t, "Drama", profile[1].Genre)
}

func TestProfileRecommendationsFallsBackToTopRated(t *testing.T) {
	repo := newFakeMovieRepo(
		testMovie("a", []string{"Horror"}, 5, 2020),
		testMovie("b", []string{"Drama"}, 9, 2019),
		testMovie("c", []string{"Comedy"}, 7, 2021),
	)
	svc := NewProfileService(repo)

	movies, err := svc.GetProfileRecommendations(nil, nil, ProfileRecommendationLimit)
	require.NoError(t, err)

	topRated, err := repo.GetTopRatedMovies(ProfileRecommendationLimit)
	require.NoError(t, err)
	assert.Equal(t, topRated, movies)
}

func TestProfileRecommendationsExcludeSeenMovies(t *testing.T) {
	repo := newFakeMovieRepo(
		testMovie("a", []string{"Horror"}, 8, 2020),
		testMovie("b", []string{"Horror"}, 6, 2018),
		testMovie("c", []string{"Horror"}, 7, 2021),
		testMovie("d", []string{"Comedy"}, 9, 2022),
	)
	svc := NewProfileService(repo)

	movies, err := svc.GetProfileRecommendations([]string{"a"}, []string{"d"}, ProfileRecommendationLimit)
	require.NoError(t, err)

	for _, m := range movies {
		assert.NotEqual(t, "a", m.ID)
		assert.NotEqual(t, "d", m.ID)
	}
	require.Len(t, movies, 2)
	// Both candidates match Horror; c wins on rating.
	assert.Equal(t, "c", movies[0].ID)
	assert.Equal(t, "b", movies[1].ID)
}

func TestProfileRecommendationsTopKBound(t *testing.T) {
	repo := newFakeMovieRepo(
		testMovie("a", []string{"Horror"}, 8, 2020),
		testMovie("b", []string{"Horror"}, 7, 2018),
		testMovie("c", []string{"Horror"}, 6, 2019),
		testMovie("d", []string{"Horror"}, 5, 2017),
		testMovie("e", []string{"Horror"}, 9, 2021),
		testMovie("f", []string{"Horror"}, 4, 2016),
		testMovie("g", []string{"Horror"}, 3, 2015),
		testMovie("h", []string{"Horror"}, 2, 2014),
	)
	svc := NewProfileService(repo)

	movies, err := svc.GetProfileRecommendations([]string{"a"}, nil, ProfileRecommendationLimit)
	require.NoError(t, err)
	assert.Len(t, movies, ProfileRecommendationLimit)
}

func TestProfileRecommendationsDeterministic(t *testing.T) {
	repo := newFakeMovieRepo(
		testMovie("a", []string{"Horror", "Drama"}, 8, 2020),
		testMovie("b", []string{"Horror"}, 8, 2018),
		testMovie("c", []string{"Drama"}, 8, 2019),
		testMovie("d", []string{"Comedy"}, 8, 2021),
	)
	svc := NewProfileService(repo)

	first, err := svc.GetProfileRecommendations([]string{"a"}, nil, ProfileRecommendationLimit)
	require.NoError(t, err)
	second, err := svc.GetProfileRecommendations([]string{"a"}, nil, ProfileRecommendationLimit)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
