package metadata

import "strings"

// DefaultGenre is assigned when no category keyword matches
const DefaultGenre = "Fiction"

// genreKeywords maps each genre to the category keywords that imply it
var genreKeywords = map[string][]string{
	"Fantasy":         {"fantasy", "magic", "epic", "sword", "dragon", "wizard", "middle-earth", "thrones", "westeros", "mythical"},
	"Science Fiction": {"science fiction", "sci-fi", "space", "future", "dystopian", "cyberpunk", "alien", "galaxy"},
	"Mystery":         {"mystery", "crime", "detective", "thriller", "suspense", "murder", "investigation"},
	"Romance":         {"romance", "love", "relationship", "contemporary romance", "historical romance"},
	"Horror":          {"horror", "ghost", "supernatural", "terror", "haunted", "zombie", "vampire"},
	"Biography":       {"biography", "memoir", "autobiography", "life story"},
	"History":         {"history", "historical", "ancient", "medieval", "world war"},
	"Science":         {"science", "technology", "physics", "biology", "chemistry", "mathematics"},
	"Self-Help":       {"self-help", "personal development", "motivational", "psychology"},
	"Young Adult":     {"young adult", "ya", "teen", "adolescent", "coming of age"},
	"Classic":         {"classic", "literature", "classic literature"},
}

// DetectGenre infers the primary genre from the category labels supplied
// by a metadata source. The genre whose keywords match the most wins;
// ties keep the first-seen winner stable by checking genres in a fixed
// order.
func DetectGenre(categories []string) string {
	if len(categories) == 0 {
		return DefaultGenre
	}

	text := strings.ToLower(strings.Join(categories, " "))
	if strings.TrimSpace(text) == "" || text == "unknown" {
		return DefaultGenre
	}

	// Fixed iteration order for deterministic tie-breaking
	genres := []string{
		"Fantasy", "Science Fiction", "Mystery", "Romance", "Horror",
		"Biography", "History", "Science", "Self-Help", "Young Adult", "Classic",
	}

	best := DefaultGenre
	maxMatches := 0
	for _, genre := range genres {
		matches := 0
		for _, keyword := range genreKeywords[genre] {
			if strings.Contains(text, keyword) {
				matches++
			}
		}
		if matches > maxMatches {
			maxMatches = matches
			best = genre
		}
	}

	return best
}
