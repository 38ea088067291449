package pfr

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/riskibarqy/pfr-scraper/internal/domain/player"
)

// Profile extracts the biographical record from a player page.
//
// The paragraphs under div#meta are read with a single cursor that starts after the
// display-name block. profileRules is walked in order; a rule consumes the block under
// the cursor only when its presence check matches, so an optional block that is
// missing for this player leaves the cursor in place for the next rule. Getting a
// presence check wrong shifts every later read, which is why each check looks for
// the block's own structure or label instead of assuming a position.
func (p *Parser) Profile(page []byte, playerID int64) (player.Profile, error) {
	doc, err := ParseHTML(page)
	if err != nil {
		return player.Profile{}, err
	}

	meta := doc.Find("div#meta")
	if meta.Length() == 0 {
		return player.Profile{}, extractionErrorf("profile %d: div#meta not found", playerID)
	}
	blocks := meta.Find("p")

	name := cleanText(meta.Find("h1[itemprop=name]").First().Text())
	if name == "" && blocks.Length() > 0 {
		name = cleanText(blocks.First().Text())
	}
	if name == "" {
		return player.Profile{}, extractionErrorf("profile %d: player name not found", playerID)
	}

	profile := player.NewProfile(playerID, name)
	if err := scanProfileBlocks(blocks, &profile); err != nil {
		return player.Profile{}, wrapExtraction(err, "profile %d (%s)", playerID, name)
	}
	return profile, nil
}

func scanProfileBlocks(blocks *goquery.Selection, profile *player.Profile) error {
	cursor := 1
	for _, rule := range profileRules {
		if cursor >= blocks.Length() {
			break
		}
		block := blocks.Eq(cursor)
		if rule.present != nil && !rule.present(block) {
			continue
		}
		if rule.write != nil {
			if err := rule.write(block, profile); err != nil {
				return wrapExtraction(err, "%s block", rule.kind)
			}
		}
		cursor++
	}
	return nil
}
