package services

import (
	"os"
	"sort"
	"testing"
	"time"

	"github.com/sanbil2024/e-videoteka/internal/config"
	"github.com/sanbil2024/e-videoteka/internal/models"
	"github.com/sanbil2024/e-videoteka/internal/repository"
)

func TestMain(m *testing.M) {
	if err := config.LoadConfig(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// fakeMovieRepo serves a fixed catalog from memory, preserving insertion
// order the way the real repository preserves creation order.
type fakeMovieRepo struct {
	movies []models.Movie
}

func newFakeMovieRepo(movies ...models.Movie) *fakeMovieRepo {
	return &fakeMovieRepo{movies: movies}
}

func (r *fakeMovieRepo) CreateMovie(movie *models.Movie) error {
	r.movies = append(r.movies, *movie)
	return nil
}

func (r *fakeMovieRepo) GetMovieByID(id string) (*models.Movie, error) {
	for i := range r.movies {
		if r.movies[i].ID == id {
			movie := r.movies[i]
			return &movie, nil
		}
	}
	return nil, repository.ErrMovieNotFound
}

func (r *fakeMovieRepo) GetAllMovies() ([]models.Movie, error) {
	out := make([]models.Movie, len(r.movies))
	copy(out, r.movies)
	return out, nil
}

func (r *fakeMovieRepo) GetMoviesByIDs(ids []string) ([]models.Movie, error) {
	out := []models.Movie{}
	seen := map[string]bool{}
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		for i := range r.movies {
			if r.movies[i].ID == id {
				out = append(out, r.movies[i])
			}
		}
	}
	return out, nil
}

func (r *fakeMovieRepo) GetTopRatedMovies(limit int) ([]models.Movie, error) {
	out := make([]models.Movie, len(r.movies))
	copy(out, r.movies)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rating > out[j].Rating
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeMovieRepo) SearchMovies(query string, limit int) ([]models.Movie, error) {
	return []models.Movie{}, nil
}

func (r *fakeMovieRepo) GetMoviesByGenre(genre string, limit int) ([]models.Movie, error) {
	out := []models.Movie{}
	for i := range r.movies {
		if r.movies[i].HasGenre(genre) {
			out = append(out, r.movies[i])
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeMovieRepo) UpdateMovie(movie *models.Movie) error {
	for i := range r.movies {
		if r.movies[i].ID == movie.ID {
			r.movies[i] = *movie
			return nil
		}
	}
	return repository.ErrMovieNotFound
}

func (r *fakeMovieRepo) CountMovies() (int64, error) {
	return int64(len(r.movies)), nil
}

type fakePurchaseRepo struct {
	purchases []models.Purchase
}

func newFakePurchaseRepo(purchases ...models.Purchase) *fakePurchaseRepo {
	return &fakePurchaseRepo{purchases: purchases}
}

func (r *fakePurchaseRepo) CreatePurchase(purchase *models.Purchase) error {
	r.purchases = append(r.purchases, *purchase)
	return nil
}

func (r *fakePurchaseRepo) GetPurchaseByID(id string) (*models.Purchase, error) {
	for i := range r.purchases {
		if r.purchases[i].ID == id {
			purchase := r.purchases[i]
			return &purchase, nil
		}
	}
	return nil, repository.ErrPurchaseNotFound
}

func (r *fakePurchaseRepo) GetPurchasesByUser(userID uint) ([]models.Purchase, error) {
	out := []models.Purchase{}
	for i := range r.purchases {
		if r.purchases[i].UserID == userID {
			out = append(out, r.purchases[i])
		}
	}
	return out, nil
}

func (r *fakePurchaseRepo) GetActivePurchase(userID uint, movieID string, now time.Time) (*models.Purchase, error) {
	for i := range r.purchases {
		p := r.purchases[i]
		if p.UserID == userID && p.MovieID == movieID && p.ExpiryDate.After(now) {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *fakePurchaseRepo) GetPurchasesSince(since time.Time) ([]models.Purchase, error) {
	out := []models.Purchase{}
	for i := range r.purchases {
		if !r.purchases[i].PurchaseDate.Before(since) {
			out = append(out, r.purchases[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PurchaseDate.Before(out[j].PurchaseDate)
	})
	return out, nil
}

func (r *fakePurchaseRepo) UpdatePurchase(purchase *models.Purchase) error {
	for i := range r.purchases {
		if r.purchases[i].ID == purchase.ID {
			r.purchases[i] = *purchase
			return nil
		}
	}
	return repository.ErrPurchaseNotFound
}
