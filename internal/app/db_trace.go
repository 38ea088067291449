package app

import (
	"regexp"
	"strings"
)

const maxTracedQueryLength = 512

var (
	queryWhitespaceRegex = regexp.MustCompile(`\s+`)
	// player names and other text values stay out of spans
	queryStringLiteralRegex = regexp.MustCompile(`'(?:[^']|'')*'`)
	// a batched insert repeats one placeholder group per row
	repeatedValuesRegex = regexp.MustCompile(`(\([^()]*\))(?:, ?\([^()]*\))+`)
)

func formatDBQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	normalized := queryWhitespaceRegex.ReplaceAllString(query, " ")
	normalized = queryStringLiteralRegex.ReplaceAllString(normalized, "?")
	normalized = repeatedValuesRegex.ReplaceAllString(normalized, "$1, ...")
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}

	return normalized[:maxTracedQueryLength] + "..."
}
