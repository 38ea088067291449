package player

import (
	"fmt"
	"strconv"
	"strings"
)

// Season index labels that point at aggregate pages instead of a single season.
const (
	SeasonLabelCareer     = "Career"
	SeasonLabelPostseason = "Postseason"
)

// Profile is the biographical record of one scraped player. Everything except
// PlayerID and Name is optional and stays nil unless the profile page carries it.
type Profile struct {
	PlayerID         int64   `json:"player_id"`
	Name             string  `json:"name"`
	Position         *string `json:"position"`
	Height           *string `json:"height"`
	Weight           *int    `json:"weight"`
	CurrentTeam      *string `json:"current_team"`
	BirthDate        *string `json:"birth_date"`
	BirthPlace       *string `json:"birth_place"`
	DeathDate        *string `json:"death_date"`
	College          *string `json:"college"`
	HighSchool       *string `json:"high_school"`
	DraftTeam        *string `json:"draft_team"`
	DraftRound       *int    `json:"draft_round"`
	DraftPosition    *int    `json:"draft_position"`
	DraftYear        *int    `json:"draft_year"`
	CurrentSalary    *int64  `json:"current_salary"`
	HOFInductionYear *int    `json:"hof_induction_year"`
}

// NewProfile returns an empty profile for a freshly visited player.
func NewProfile(playerID int64, name string) Profile {
	return Profile{PlayerID: playerID, Name: strings.TrimSpace(name)}
}

func (p Profile) Validate() error {
	if p.PlayerID <= 0 {
		return fmt.Errorf("player id must be greater than zero")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}
	drafted := 0
	for _, set := range []bool{p.DraftTeam != nil, p.DraftRound != nil, p.DraftPosition != nil, p.DraftYear != nil} {
		if set {
			drafted++
		}
	}
	if drafted != 0 && drafted != 4 {
		return fmt.Errorf("draft fields must be set together, got %d of 4", drafted)
	}

	return nil
}

// SeasonRef points at one entry of a player's season index.
type SeasonRef struct {
	Label string
	URL   string
}

// IsMarker reports whether the entry is an aggregate page (career or postseason).
func (s SeasonRef) IsMarker() bool {
	return s.Label == SeasonLabelCareer || s.Label == SeasonLabelPostseason
}

// Year parses the season label as a calendar year.
func (s SeasonRef) Year() (int, error) {
	year, err := strconv.Atoi(strings.TrimSpace(s.Label))
	if err != nil {
		return 0, fmt.Errorf("season label %q is not a year", s.Label)
	}
	return year, nil
}

// Ptr is a small helper for building optional profile fields.
func Ptr[T any](v T) *T {
	return &v
}
