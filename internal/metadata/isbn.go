package metadata

import (
	"fmt"
	"strings"
)

// CleanISBN strips hyphens, spaces and any other separators from a raw
// ISBN, keeping only digits and X (the ISBN-10 check character).
func CleanISBN(raw string) (string, error) {
	var b strings.Builder
	for _, r := range strings.ToUpper(raw) {
		if (r >= '0' && r <= '9') || r == 'X' {
			b.WriteRune(r)
		}
	}

	cleaned := b.String()
	if cleaned == "" {
		return "", fmt.Errorf("%w: %q contains no digits", ErrInvalidISBN, raw)
	}
	return cleaned, nil
}
