package parser

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	slugSeparators = regexp.MustCompile(`[^a-z0-9]+`)
	slugPattern    = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// Slugify turns a workspace name into its URL slug:
// "Acme Interiors & Co." -> "acme-interiors-co"
func Slugify(text string) string {
	slug := slugSeparators.ReplaceAllString(strings.ToLower(text), "-")
	return strings.Trim(slug, "-")
}

// NormalizeSlug lowercases and validates a user supplied slug
func NormalizeSlug(slug string) (string, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if !slugPattern.MatchString(slug) {
		return "", fmt.Errorf("invalid slug %q. Use lowercase letters, digits and dashes", slug)
	}
	return slug, nil
}
