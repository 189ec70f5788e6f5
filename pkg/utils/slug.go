package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugPattern      = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	whitespaceRun    = regexp.MustCompile(`\s+`)
	hyphenRun        = regexp.MustCompile(`-{2,}`)
	nonSlugCharacter = regexp.MustCompile(`[^a-z0-9-]`)
)

var norwegianReplacer = strings.NewReplacer(
	"æ", "ae",
	"ø", "o",
	"å", "a",
)

// GenerateSlug derives a URL path segment from a document title.
//
// Only æ, ø and å are transliterated. Other accented Latin letters lose their
// combining marks, anything else outside [a-z0-9_-] and whitespace is dropped.
// Underscores are kept as-is, so the result can fail ValidateSlug; callers
// that need a strict slug run it through NormalizeSlug.
func GenerateSlug(text string) string {
	text = strings.ToLower(text)
	text = norwegianReplacer.Replace(text)
	text = stripMarks(text)

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}

	text = whitespaceRun.ReplaceAllString(b.String(), "-")
	text = hyphenRun.ReplaceAllString(text, "-")

	return strings.Trim(text, "-")
}

// ValidateSlug reports whether slug is lowercase ASCII alphanumeric segments
// separated by single hyphens.
func ValidateSlug(slug string) bool {
	return slugPattern.MatchString(slug)
}

// NormalizeSlug repairs a hand-edited slug. Every character outside
// [a-z0-9-] becomes a hyphen. The result is empty or passes ValidateSlug.
func NormalizeSlug(slug string) string {
	slug = strings.ToLower(slug)
	slug = nonSlugCharacter.ReplaceAllString(slug, "-")
	slug = hyphenRun.ReplaceAllString(slug, "-")

	return strings.Trim(slug, "-")
}

func stripMarks(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return result
}
