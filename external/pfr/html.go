package pfr

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Parser turns raw site pages into domain records. It holds no mutable state and is
// safe for concurrent use.
type Parser struct {
	baseURL string
}

func NewParser(baseURL string) *Parser {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Parser{baseURL: baseURL}
}

// ParseHTML builds a queryable document from a raw page.
func ParseHTML(page []byte) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, wrapExtraction(err, "parse html")
	}
	return doc, nil
}

// cleanText collapses whitespace, non-breaking spaces included, to single spaces.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
