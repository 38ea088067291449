package pfr

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/riskibarqy/pfr-scraper/internal/domain/player"
)

// SeasonIndex reads the game log navigation of a profile page. The index is only
// trusted when its first entry is the career marker; anything else means the
// player has no logged games and yields an empty list.
func (p *Parser) SeasonIndex(page []byte) ([]player.SeasonRef, error) {
	doc, err := ParseHTML(page)
	if err != nil {
		return nil, err
	}

	lists := doc.Find("div#inner_nav ul")
	if lists.Length() < 2 {
		return []player.SeasonRef{}, nil
	}
	links := lists.Eq(1).Find("li > a")
	if links.Length() == 0 || cleanText(links.First().Text()) != player.SeasonLabelCareer {
		return []player.SeasonRef{}, nil
	}

	refs := make([]player.SeasonRef, 0, links.Length())
	var linkErr error
	links.EachWithBreak(func(_ int, a *goquery.Selection) bool {
		label := cleanText(a.Text())
		href, _ := a.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" {
			// caller derives the game log address from the profile URL
			refs = append(refs, player.SeasonRef{Label: label})
			return true
		}
		abs, err := resolveURL(p.baseURL, href)
		if err != nil {
			linkErr = wrapExtraction(err, "season index: entry %q", label)
			return false
		}
		refs = append(refs, player.SeasonRef{Label: label, URL: abs})
		return true
	})
	if linkErr != nil {
		return nil, linkErr
	}
	return refs, nil
}
