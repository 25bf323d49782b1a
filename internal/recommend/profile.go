package recommend

import (
	"strings"

	"github.com/suhruthkrishna/bookpal/internal/embedding"
	"github.com/suhruthkrishna/bookpal/internal/models"
)

// NormalizeGenre canonicalizes a genre label for grouping and lookup.
// "sci-fi" and "Sci-Fi" contribute to the same profile.
func NormalizeGenre(genre string) string {
	return strings.ToLower(strings.TrimSpace(genre))
}

// BuildProfiles groups favorites by genre and computes the mean embedding
// of each group. The mean is re-normalized to a unit vector so profiles
// live in the same space as individual embeddings.
//
// A genre with zero favorites simply has no entry in the returned map;
// callers must treat "no profile for this genre" as a distinct outcome
// from "profile exists but scores low". The computation is pure: the same
// favorites sequence always yields equal profiles.
func BuildProfiles(favorites []models.FavoriteEntry) (map[string]models.GenreProfile, error) {
	profiles := make(map[string]models.GenreProfile)

	for _, fav := range favorites {
		if len(fav.Embedding) == 0 {
			continue
		}

		key := NormalizeGenre(fav.Book.Genre)
		profile, exists := profiles[key]
		if !exists {
			profile = models.GenreProfile{
				Genre:     fav.Book.Genre,
				Embedding: make([]float32, len(fav.Embedding)),
			}
		}
		if len(profile.Embedding) != len(fav.Embedding) {
			return nil, &DimensionMismatchError{WantDim: len(profile.Embedding), GotDim: len(fav.Embedding)}
		}

		for i, v := range fav.Embedding {
			profile.Embedding[i] += v
		}
		profile.Count++
		profiles[key] = profile
	}

	for key, profile := range profiles {
		n := float32(profile.Count)
		for i := range profile.Embedding {
			profile.Embedding[i] /= n
		}
		embedding.Normalize(profile.Embedding)
		profiles[key] = profile
	}

	return profiles, nil
}
