package pfr

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/pfr-scraper/internal/domain/gamelog"
)

var boxscorePattern = regexp.MustCompile(`/boxscores/([^/.]+)\.htm`)

// GameLog extracts one season of games. The bool is false when the page has no
// regular-season table, meaning there is nothing to collect for that year.
// Postseason rows are appended to the regular-season rows untagged.
func (p *Parser) GameLog(page []byte, playerID int64, year int) ([]gamelog.GameStat, bool, error) {
	doc, err := ParseHTML(page)
	if err != nil {
		return nil, false, err
	}

	regular := doc.Find("table#stats")
	if regular.Length() == 0 {
		return nil, false, nil
	}

	rows := regular.Find("tbody tr").AddSelection(doc.Find("table#stats_playoffs tbody tr"))
	games := make([]gamelog.GameStat, 0, rows.Length())

	var rowErr error
	rows.EachWithBreak(func(i int, row *goquery.Selection) bool {
		if skipRow(row) {
			return true
		}
		game, err := parseGameRow(row, playerID, year)
		if err != nil {
			rowErr = wrapExtraction(err, "game log %d/%d row %d", playerID, year, i)
			return false
		}
		games = append(games, game)
		return true
	})
	if rowErr != nil {
		return nil, true, rowErr
	}
	return games, true, nil
}

func skipRow(row *goquery.Selection) bool {
	return row.HasClass("thead") || row.HasClass("spacer") || row.Find("[data-stat=game_date]").Length() == 0
}

func parseGameRow(row *goquery.Selection, playerID int64, year int) (gamelog.GameStat, error) {
	game := gamelog.GameStat{PlayerID: playerID, Year: year}

	dateCell := row.Find("[data-stat=game_date]").First()
	game.Date = cleanText(dateCell.Text())
	if href, ok := dateCell.Find("a").Attr("href"); ok {
		if m := boxscorePattern.FindStringSubmatch(href); len(m) == 2 {
			game.GameID = m[1]
		}
	}
	if game.GameID == "" {
		return game, errors.Newf("no boxscore link for game on %q", game.Date)
	}

	gameNumber, _, err := intCell(row, "game_num")
	if err != nil {
		return game, err
	}
	game.GameNumber = gameNumber
	game.Age = cellText(row, "age")
	game.Team = cellText(row, "team")
	game.GameLocation = gamelog.LocationFromMarker(cellText(row, "game_location"))
	game.Opponent = cellText(row, "opp")

	if err := applyResult(&game, cellText(row, "game_result")); err != nil {
		return game, err
	}

	for _, col := range intColumns {
		v, ok, err := intCell(row, col.tag)
		if err != nil {
			return game, err
		}
		if ok {
			*col.field(&game) = v
		}
	}
	for _, col := range floatColumns {
		v, ok, err := floatCell(row, col.tag)
		if err != nil {
			return game, err
		}
		if ok {
			*col.field(&game) = v
		}
	}
	return game, nil
}

// applyResult reads "W 27-20" into the win flag and both scores. An empty result
// (a game not yet played) leaves them zero.
func applyResult(game *gamelog.GameStat, result string) error {
	fields := strings.Fields(result)
	if len(fields) == 0 {
		return nil
	}
	game.GameWon = fields[0] == "W"
	if len(fields) < 2 {
		return nil
	}

	scores := strings.SplitN(fields[1], "-", 2)
	if len(scores) != 2 {
		return errors.Newf("game result %q", result)
	}
	own, err := strconv.Atoi(scores[0])
	if err != nil {
		return errors.Wrapf(err, "game result %q", result)
	}
	opp, err := strconv.Atoi(scores[1])
	if err != nil {
		return errors.Wrapf(err, "game result %q", result)
	}
	game.PlayerTeamScore, game.OpponentScore = own, opp
	return nil
}

func cellText(row *goquery.Selection, tag string) string {
	return cleanText(row.Find("[data-stat=" + tag + "]").First().Text())
}

// intCell reports ok=false when the column is missing from the row or its cell is
// empty; both mean zero.
func intCell(row *goquery.Selection, tag string) (int, bool, error) {
	raw := cellText(row, tag)
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, errors.Wrapf(err, "column %s value %q", tag, raw)
	}
	return v, true, nil
}

func floatCell(row *goquery.Selection, tag string) (float64, bool, error) {
	raw := cellText(row, tag)
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, errors.Wrapf(err, "column %s value %q", tag, raw)
	}
	return v, true, nil
}
