package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/sanbil2024/e-videoteka/internal/database"
	"github.com/sanbil2024/e-videoteka/internal/models"
)

var ErrMovieNotFound = errors.New("movie not found")

type MovieRepository interface {
	CreateMovie(movie *models.Movie) error
	GetMovieByID(id string) (*models.Movie, error)
	GetAllMovies() ([]models.Movie, error)
	GetMoviesByIDs(ids []string) ([]models.Movie, error)
	GetTopRatedMovies(limit int) ([]models.Movie, error)
	SearchMovies(query string, limit int) ([]models.Movie, error)
	GetMoviesByGenre(genre string, limit int) ([]models.Movie, error)
	UpdateMovie(movie *models.Movie) error
	CountMovies() (int64, error)
}

type movieRepo struct {
	db *gorm.DB
}

func NewMovieRepository() MovieRepository {
	return &movieRepo{db: database.DB}
}

func (r *movieRepo) CreateMovie(movie *models.Movie) error {
	return r.db.Create(movie).Error
}

func (r *movieRepo) GetMovieByID(id string) (*models.Movie, error) {
	var movie models.Movie
	err := r.db.First(&movie, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return &movie, nil
}

func (r *movieRepo) GetAllMovies() ([]models.Movie, error) {
	var movies []models.Movie
	err := r.db.Order("created_at ASC, id ASC").Find(&movies).Error
	if err != nil {
		return nil, err
	}
	if movies == nil {
		movies = []models.Movie{}
	}
	return movies, nil
}

// GetMoviesByIDs returns the movies that still exist; ids that no longer
// resolve are simply omitted.
func (r *movieRepo) GetMoviesByIDs(ids []string) ([]models.Movie, error) {
	if len(ids) == 0 {
		return []models.Movie{}, nil
	}
	var movies []models.Movie
	err := r.db.Where("id IN ?", ids).Find(&movies).Error
	return movies, err
}

func (r *movieRepo) GetTopRatedMovies(limit int) ([]models.Movie, error) {
	var movies []models.Movie
	// Secondary sort keys keep the ordering stable across calls.
	err := r.db.Order("rating DESC, created_at ASC, id ASC").Limit(limit).Find(&movies).Error
	if err != nil {
		return nil, err
	}
	if movies == nil {
		movies = []models.Movie{}
	}
	return movies, nil
}

func (r *movieRepo) SearchMovies(query string, limit int) ([]models.Movie, error) {
	var movies []models.Movie
	pattern := "%" + query + "%"
	err := r.db.Where(
		"title ILIKE ? OR director ILIKE ? OR array_to_string(genre, ' ') ILIKE ? OR array_to_string(actors, ' ') ILIKE ?",
		pattern, pattern, pattern, pattern,
	).
		Limit(limit).
		Find(&movies).Error
	return movies, err
}

func (r *movieRepo) GetMoviesByGenre(genre string, limit int) ([]models.Movie, error) {
	var movies []models.Movie
	err := r.db.Where("? = ANY(genre)", genre).
		Order("rating DESC").
		Limit(limit).
		Find(&movies).Error
	return movies, err
}

func (r *movieRepo) UpdateMovie(movie *models.Movie) error {
	return r.db.Save(movie).Error
}

func (r *movieRepo) CountMovies() (int64, error) {
	var count int64
	err := r.db.Model(&models.Movie{}).Count(&count).Error
	return count, err
}
