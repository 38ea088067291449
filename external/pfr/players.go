package pfr

import (
	"github.com/PuerkitoBio/goquery"
)

// PlayerURLs lists the absolute profile URL of every player on a letter index page,
// in page order.
func (p *Parser) PlayerURLs(page []byte) ([]string, error) {
	doc, err := ParseHTML(page)
	if err != nil {
		return nil, err
	}

	list := doc.Find("div#div_players")
	if list.Length() == 0 {
		return nil, extractionErrorf("player list: div#div_players not found")
	}

	var (
		urls    []string
		linkErr error
	)
	list.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, ok := a.Attr("href")
		if !ok || href == "" {
			return true
		}
		abs, err := resolveURL(p.baseURL, href)
		if err != nil {
			linkErr = wrapExtraction(err, "player list: resolve %q", href)
			return false
		}
		urls = append(urls, abs)
		return true
	})
	if linkErr != nil {
		return nil, linkErr
	}
	return urls, nil
}
