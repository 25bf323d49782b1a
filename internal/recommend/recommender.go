package recommend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/suhruthkrishna/bookpal/internal/embedding"
	"github.com/suhruthkrishna/bookpal/internal/models"
)

// DefaultTopK is the number of alternative suggestions returned when the
// candidate is not a strong match
const DefaultTopK = 3

// Options configures a Recommender
type Options struct {
	Thresholds Thresholds
	TopK       int
}

// DefaultOptions returns the standard thresholds and suggestion count
func DefaultOptions() Options {
	return Options{Thresholds: DefaultThresholds(), TopK: DefaultTopK}
}

// Recommender evaluates candidate books against a user's favorites.
// Each evaluation is a stateless computation over the favorites snapshot
// passed in, so independent evaluations can run concurrently as long as
// the snapshot is not mutated mid-call.
type Recommender struct {
	embedder embedding.Embedder
	opts     Options
}

// New creates a Recommender. Returns ErrInvalidConfiguration (wrapped) if
// the thresholds or top-k are out of range.
func New(embedder embedding.Embedder, opts Options) (*Recommender, error) {
	if err := opts.Thresholds.Validate(); err != nil {
		return nil, err
	}
	if opts.TopK < 1 {
		return nil, fmt.Errorf("%w: top-k must be >= 1, got %d", ErrInvalidConfiguration, opts.TopK)
	}
	return &Recommender{embedder: embedder, opts: opts}, nil
}

// Evaluate embeds the candidate, scores it against the genre profiles
// derived from favorites, and classifies the result into a match tier.
// When the tier is not a strong match, the top-k individually most similar
// favorites are returned as suggestions.
//
// Fails with ErrEmptyLibrary when favorites is empty.
func (r *Recommender) Evaluate(ctx context.Context, candidate models.BookRecord, favorites []models.FavoriteEntry) (*models.MatchVerdict, error) {
	if len(favorites) == 0 {
		return nil, ErrEmptyLibrary
	}

	candEmbedding, err := r.embedCandidate(ctx, candidate)
	if err != nil {
		return nil, err
	}

	profiles, err := BuildProfiles(favorites)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, ErrEmptyLibrary
	}

	genre, score, err := r.scoreProfiles(candidate, candEmbedding, profiles)
	if err != nil {
		return nil, err
	}

	tier := r.opts.Thresholds.Classify(score)
	slog.Debug("Scored candidate against profiles",
		"isbn", candidate.ISBN, "genre", genre, "score", score, "tier", tier)

	verdict := &models.MatchVerdict{
		ISBN:  candidate.ISBN,
		Genre: genre,
		Score: score,
		Tier:  tier,
	}

	if tier != models.TierStrong {
		suggestions, err := r.rankFavorites(candEmbedding, favorites)
		if err != nil {
			return nil, err
		}
		verdict.Suggestions = suggestions
	}

	return verdict, nil
}

// embedCandidate embeds the candidate's metadata text, retrying once on a
// transient failure. Unusable input is not retried: embedding the same
// empty text twice cannot succeed.
func (r *Recommender) embedCandidate(ctx context.Context, candidate models.BookRecord) ([]float32, error) {
	text, err := embedding.BookText(candidate)
	if err != nil {
		return nil, err
	}

	vec, err := r.embedder.Embed(ctx, text)
	if err != nil {
		if errors.Is(err, embedding.ErrEmptyInput) || ctx.Err() != nil {
			return nil, err
		}
		slog.Warn("Embedding failed, retrying once", "isbn", candidate.ISBN, "err", err)
		vec, err = r.embedder.Embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("failed to embed candidate %s: %w", candidate.ISBN, err)
		}
	}
	return vec, nil
}

// scoreProfiles scores the candidate against its own genre's profile when
// one exists, otherwise against every profile, selecting the maximum.
// Ties break toward the genre with more contributing favorites, then
// lexicographically by label, so the outcome is deterministic.
func (r *Recommender) scoreProfiles(candidate models.BookRecord, candEmbedding []float32, profiles map[string]models.GenreProfile) (string, float64, error) {
	if profile, ok := profiles[NormalizeGenre(candidate.Genre)]; ok {
		score, err := Cosine(candEmbedding, profile.Embedding)
		if err != nil {
			return "", 0, err
		}
		return profile.Genre, score, nil
	}

	var (
		bestProfile models.GenreProfile
		bestScore   float64
		found       bool
		lastErr     error
	)
	for _, profile := range profiles {
		score, err := Cosine(candEmbedding, profile.Embedding)
		if err != nil {
			// A dimension mismatch is a hard failure; an undefined
			// similarity only disqualifies this one profile.
			if errors.Is(err, ErrUndefinedSimilarity) {
				lastErr = err
				continue
			}
			return "", 0, err
		}

		if !found || score > bestScore || (score == bestScore && betterTie(profile, bestProfile)) {
			bestProfile = profile
			bestScore = score
			found = true
		}
	}

	if !found {
		return "", 0, lastErr
	}
	return bestProfile.Genre, bestScore, nil
}

func betterTie(a, b models.GenreProfile) bool {
	if a.Count != b.Count {
		return a.Count > b.Count
	}
	return NormalizeGenre(a.Genre) < NormalizeGenre(b.Genre)
}

// rankFavorites scores every favorite individually against the candidate
// and returns the top-k by descending similarity. Ties keep insertion
// order (stable sort).
func (r *Recommender) rankFavorites(candEmbedding []float32, favorites []models.FavoriteEntry) ([]models.Suggestion, error) {
	scored := make([]models.Suggestion, 0, len(favorites))
	for _, fav := range favorites {
		score, err := Cosine(candEmbedding, fav.Embedding)
		if err != nil {
			if errors.Is(err, ErrUndefinedSimilarity) {
				continue
			}
			return nil, err
		}
		scored = append(scored, models.Suggestion{Book: fav.Book, Score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > r.opts.TopK {
		scored = scored[:r.opts.TopK]
	}
	return scored, nil
}
