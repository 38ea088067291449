package pfr

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/cockroachdb/errors"
)

// PlayerListURL is the index of every player whose last name starts with letter.
func PlayerListURL(baseURL, letter string) string {
	return fmt.Sprintf("%s/players/%s/", strings.TrimRight(baseURL, "/"), strings.ToUpper(letter))
}

// GameLogURL derives a season game log address from a profile address such as
// .../players/B/BradTo00.htm.
func GameLogURL(profileURL string, year int) string {
	return fmt.Sprintf("%s/gamelog/%d/", strings.TrimSuffix(profileURL, ".htm"), year)
}

// resolveURL turns a site-relative href into an absolute URL on baseURL.
func resolveURL(baseURL, href string) (string, error) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", errors.New("empty href")
	}
	base, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(ref).String(), nil
}

func (p *Parser) PlayerListURL(letter string) string {
	return PlayerListURL(p.baseURL, letter)
}

func (p *Parser) GameLogURL(profileURL string, year int) string {
	return GameLogURL(profileURL, year)
}
