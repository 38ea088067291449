package pfr

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/pfr-scraper/internal/domain/player"
)

type blockKind string

const (
	blockPosition    blockKind = "position"
	blockBody        blockKind = "height/weight"
	blockTeam        blockKind = "team"
	blockBirth       blockKind = "birth"
	blockDeath       blockKind = "death"
	blockCollege     blockKind = "college"
	blockCareerValue blockKind = "career value"
	blockHighSchool  blockKind = "high school"
	blockDraft       blockKind = "draft"
	blockSalary      blockKind = "salary"
	blockHallOfFame  blockKind = "hall of fame"
)

const collegeStatsLabel = "College Stats"

// blockRule describes one biographical paragraph. A nil present always matches; a
// nil write consumes the block without recording anything.
type blockRule struct {
	kind    blockKind
	present func(*goquery.Selection) bool
	write   func(*goquery.Selection, *player.Profile) error
}

// profileRules lists the blocks in the order the site renders them.
var profileRules = []blockRule{
	{kind: blockPosition, present: hasLabel("Position"), write: writePosition},
	{kind: blockBody, present: hasAny("span[itemprop=height]", "span[itemprop=weight]"), write: writeBody},
	{kind: blockTeam, present: hasAny("span[itemprop=affiliation]"), write: writeTeam},
	{kind: blockBirth, present: hasAny("span[itemprop=birthDate]", "span[itemprop=birthPlace]"), write: writeBirth},
	{kind: blockDeath, present: hasAny("span[itemprop=deathDate]"), write: writeDeath},
	{kind: blockCollege, present: hasLabel("College"), write: writeCollege},
	{kind: blockCareerValue},
	{kind: blockHighSchool, present: hasLabel("High School"), write: writeHighSchool},
	{kind: blockDraft, present: hasLabel("Draft"), write: writeDraft},
	{kind: blockSalary, present: hasLabel("Current salary", "Current cap hit"), write: writeSalary},
	{kind: blockHallOfFame, present: hasLabel("Hall of Fame"), write: writeHallOfFame},
}

var (
	teamHrefPattern = regexp.MustCompile(`/teams/([A-Za-z0-9]+)/`)
	yearPattern     = regexp.MustCompile(`\b\d{4}\b`)
	nonDigits       = regexp.MustCompile(`\D+`)
	salaryPattern   = regexp.MustCompile(`\$\s*(\d[\d,]*)`)
)

func hasAny(selectors ...string) func(*goquery.Selection) bool {
	return func(block *goquery.Selection) bool {
		for _, selector := range selectors {
			if block.Find(selector).Length() > 0 {
				return true
			}
		}
		return false
	}
}

func hasLabel(labels ...string) func(*goquery.Selection) bool {
	return func(block *goquery.Selection) bool {
		got := blockLabel(block)
		for _, label := range labels {
			if strings.EqualFold(got, label) {
				return true
			}
		}
		return false
	}
}

// blockLabel is the text of the block's leading <strong>, without the colon.
func blockLabel(block *goquery.Selection) string {
	return strings.TrimSpace(strings.TrimSuffix(cleanText(block.Find("strong").First().Text()), ":"))
}

// textAfterLabel returns the block text that follows its label.
func textAfterLabel(block *goquery.Selection) string {
	text := cleanText(block.Text())
	label := cleanText(block.Find("strong").First().Text())
	if label != "" {
		if idx := strings.Index(text, label); idx >= 0 {
			text = text[idx+len(label):]
		}
	}
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), ":"))
}

func writePosition(block *goquery.Selection, profile *player.Profile) error {
	if fields := strings.Fields(textAfterLabel(block)); len(fields) > 0 {
		profile.Position = player.Ptr(fields[0])
	}
	return nil
}

func writeBody(block *goquery.Selection, profile *player.Profile) error {
	if height := cleanText(block.Find("span[itemprop=height]").First().Text()); height != "" {
		profile.Height = player.Ptr(height)
	}

	raw := cleanText(block.Find("span[itemprop=weight]").First().Text())
	raw = strings.TrimSpace(strings.TrimSuffix(raw, "lb"))
	if raw == "" {
		return nil
	}
	weight, err := strconv.Atoi(raw)
	if err != nil {
		return errors.Wrapf(err, "weight %q", raw)
	}
	profile.Weight = player.Ptr(weight)
	return nil
}

func writeTeam(block *goquery.Selection, profile *player.Profile) error {
	if team := teamCode(block.Find("span[itemprop=affiliation] a").First()); team != "" {
		profile.CurrentTeam = player.Ptr(team)
	}
	return nil
}

func writeBirth(block *goquery.Selection, profile *player.Profile) error {
	if date, ok := block.Find("span[itemprop=birthDate]").Attr("data-birth"); ok && strings.TrimSpace(date) != "" {
		profile.BirthDate = player.Ptr(strings.TrimSpace(date))
	}
	if place := birthPlace(block.Find("span[itemprop=birthPlace]").First()); place != "" {
		profile.BirthPlace = player.Ptr(place)
	}
	return nil
}

func writeDeath(block *goquery.Selection, profile *player.Profile) error {
	if date, ok := block.Find("span[itemprop=deathDate]").Attr("data-death"); ok && strings.TrimSpace(date) != "" {
		profile.DeathDate = player.Ptr(strings.TrimSpace(date))
	}
	return nil
}

func writeCollege(block *goquery.Selection, profile *player.Profile) error {
	var schools []string
	block.Find("a").Each(func(_ int, a *goquery.Selection) {
		name := cleanText(a.Text())
		if name == "" || strings.Contains(name, collegeStatsLabel) {
			return
		}
		schools = append(schools, name)
	})

	college := strings.Join(schools, ", ")
	if college == "" {
		college = textAfterLabel(block)
	}
	if college != "" {
		profile.College = player.Ptr(college)
	}
	return nil
}

func writeHighSchool(block *goquery.Selection, profile *player.Profile) error {
	if school := textAfterLabel(block); school != "" {
		profile.HighSchool = player.Ptr(school)
	}
	return nil
}

// writeDraft decomposes "<team> in the 3rd round (90th overall) of the 2012 NFL Draft."
// by token position. The draft group is recorded only when every part parses.
func writeDraft(block *goquery.Selection, profile *player.Profile) error {
	teamLink := block.Find("a").First()
	team := teamCode(teamLink)
	if team == "" {
		return errors.New("draft team link not found")
	}

	text := textAfterLabel(block)
	if name := cleanText(teamLink.Text()); name != "" {
		if idx := strings.Index(text, name); idx >= 0 {
			text = text[idx+len(name):]
		}
	}
	tokens := strings.Fields(text)

	round, err := ordinalToken(tokens, 2)
	if err != nil {
		return errors.Wrap(err, "draft round")
	}
	pick, err := ordinalToken(tokens, 4)
	if err != nil {
		return errors.Wrap(err, "draft pick")
	}
	year, err := ordinalToken(tokens, 8)
	if err != nil {
		return errors.Wrap(err, "draft year")
	}

	profile.DraftTeam = player.Ptr(team)
	profile.DraftRound = player.Ptr(round)
	profile.DraftPosition = player.Ptr(pick)
	profile.DraftYear = player.Ptr(year)
	return nil
}

func writeSalary(block *goquery.Selection, profile *player.Profile) error {
	// only the first dollar amount counts; annotations such as "(2024)" follow it
	m := salaryPattern.FindStringSubmatch(textAfterLabel(block))
	if m == nil {
		return nil
	}
	digits := strings.ReplaceAll(m[1], ",", "")
	salary, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return errors.Wrapf(err, "salary %q", digits)
	}
	profile.CurrentSalary = player.Ptr(salary)
	return nil
}

func writeHallOfFame(block *goquery.Selection, profile *player.Profile) error {
	years := yearPattern.FindAllString(textAfterLabel(block), -1)
	if len(years) == 0 {
		return errors.New("induction year not found")
	}
	year, err := strconv.Atoi(years[len(years)-1])
	if err != nil {
		return errors.Wrapf(err, "induction year %q", years[len(years)-1])
	}
	profile.HOFInductionYear = player.Ptr(year)
	return nil
}

// teamCode reads the team abbreviation from a /teams/<code>/ link, falling back to
// the link text.
func teamCode(link *goquery.Selection) string {
	if link.Length() == 0 {
		return ""
	}
	if href, ok := link.Attr("href"); ok {
		if m := teamHrefPattern.FindStringSubmatch(href); len(m) == 2 {
			return strings.ToUpper(m[1])
		}
	}
	return cleanText(link.Text())
}

// birthPlace renders "in San Mateo, CA" as "San Mateo, CA".
func birthPlace(span *goquery.Selection) string {
	if span.Length() == 0 {
		return ""
	}
	place := cleanText(span.Text())
	place = strings.TrimSpace(strings.TrimPrefix(place, "in "))
	if place == "in" {
		return ""
	}
	return strings.Join(strings.Fields(strings.ReplaceAll(place, " ,", ",")), " ")
}

func ordinalToken(tokens []string, idx int) (int, error) {
	if idx >= len(tokens) {
		return 0, errors.Newf("token %d missing in %q", idx, strings.Join(tokens, " "))
	}
	digits := nonDigits.ReplaceAllString(tokens[idx], "")
	if digits == "" {
		return 0, errors.Newf("token %q is not numeric", tokens[idx])
	}
	return strconv.Atoi(digits)
}
