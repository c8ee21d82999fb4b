package services

import (
	"github.com/sanbil2024/e-videoteka/internal/models"
	"github.com/sanbil2024/e-videoteka/internal/repository"
)

// topGenreCount is how many of the user's strongest genres drive the
// candidate filter.
const topGenreCount = 3

// minGenreCandidates: found fewer than this and the backfill kicks in.
const minGenreCandidates = 3

// PersonalizedService ranks unpurchased movies against the genre profile of
// a user's purchase history.
type PersonalizedService interface {
	GetPersonalRecommendations(userID uint) ([]models.Movie, error)
}

type personalizedService struct {
	movieRepo      repository.MovieRepository
	purchaseRepo   repository.PurchaseRepository
	profileService ProfileService
}

func NewPersonalizedService(
	movieRepo repository.MovieRepository,
	purchaseRepo repository.PurchaseRepository,
	profileService ProfileService,
) PersonalizedService {
	return &personalizedService{
		movieRepo:      movieRepo,
		purchaseRepo:   purchaseRepo,
		profileService: profileService,
	}
}

// GetPersonalRecommendations returns up to 5 movies the user has not
// purchased, preferring the user's top 3 genres and ranking by rating.
// A user with no purchase history gets the global top-rated list, so the
// fallback is identical to the top-rated endpoint.
func (s *personalizedService) GetPersonalRecommendations(userID uint) ([]models.Movie, error) {
	purchases, err := s.purchaseRepo.GetPurchasesByUser(userID)
	if err != nil {
		return nil, err
	}

	if len(purchases) == 0 {
		return s.movieRepo.GetTopRatedMovies(RecommendationLimit)
	}

	purchasedIDs := make([]string, 0, len(purchases))
	purchased := make(map[string]bool, len(purchases))
	for _, p := range purchases {
		if !purchased[p.MovieID] {
			purchased[p.MovieID] = true
			purchasedIDs = append(purchasedIDs, p.MovieID)
		}
	}

	// Purchase history plays the watch role here; there is no separate
	// favorites signal in this path.
	profile, err := s.profileService.BuildGenreProfile(purchasedIDs, nil)
	if err != nil {
		return nil, err
	}

	topGenres := make(map[string]bool, topGenreCount)
	for i, gw := range profile {
		if i == topGenreCount {
			break
		}
		topGenres[gw.Genre] = true
	}

	catalog, err := s.movieRepo.GetAllMovies()
	if err != nil {
		return nil, err
	}

	candidates := make([]models.Movie, 0, len(catalog))
	for _, movie := range catalog {
		if purchased[movie.ID] {
			continue
		}
		for _, genre := range movie.Genre {
			if topGenres[genre] {
				candidates = append(candidates, movie)
				break
			}
		}
	}

	sortByRatingDesc(candidates)
	result := limitMovies(candidates, RecommendationLimit)

	// Too few genre matches: backfill with the highest-rated movies the
	// user does not own yet until 5 or the catalog runs out.
	if len(result) < minGenreCandidates {
		selected := make(map[string]bool, len(result))
		for _, movie := range result {
			selected[movie.ID] = true
		}

		rest := make([]models.Movie, 0, len(catalog))
		for _, movie := range catalog {
			if purchased[movie.ID] || selected[movie.ID] {
				continue
			}
			rest = append(rest, movie)
		}
		sortByRatingDesc(rest)

		for _, movie := range rest {
			if len(result) == RecommendationLimit {
				break
			}
			result = append(result, movie)
		}
	}

	return result, nil
}
