package lang

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Default is the site language used when none is configured.
const Default = "nb"

var errEmptyCode = errors.New("language code cannot be empty")

// Normalize validates a BCP 47 language tag and returns its canonical form,
// for example "nb-no" becomes "nb-NO".
func Normalize(code string) (string, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return "", errEmptyCode
	}

	tag, err := language.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("invalid language code %q: %w", code, err)
	}
	return tag.String(), nil
}

// OrDefault returns the normalized code, or Default when code is invalid.
func OrDefault(code string) string {
	normalized, err := Normalize(code)
	if err != nil {
		return Default
	}
	return normalized
}
