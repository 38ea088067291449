package gamelog

import "fmt"

// Location is where a game was played relative to the player's team.
type Location string

const (
	LocationHome    Location = "Home"
	LocationAway    Location = "Away"
	LocationNeutral Location = "Neutral"
)

// LocationFromMarker maps the site's single-character location cell to a Location.
func LocationFromMarker(marker string) Location {
	switch marker {
	case "@":
		return LocationAway
	case "N":
		return LocationNeutral
	default:
		return LocationHome
	}
}

// GameStat is one game appearance of one player. Counting fields are zero when the
// source table lacks the column or leaves the cell empty.
type GameStat struct {
	PlayerID        int64    `json:"player_id"`
	Year            int      `json:"year"`
	GameID          string   `json:"game_id"`
	Date            string   `json:"date"`
	GameNumber      int      `json:"game_number"`
	Age             string   `json:"age"`
	Team            string   `json:"team"`
	GameLocation    Location `json:"game_location"`
	Opponent        string   `json:"opponent"`
	GameWon         bool     `json:"game_won"`
	PlayerTeamScore int      `json:"player_team_score"`
	OpponentScore   int      `json:"opponent_score"`

	PassingAttempts       int     `json:"passing_attempts"`
	PassingCompletions    int     `json:"passing_completions"`
	PassingYards          int     `json:"passing_yards"`
	PassingRating         float64 `json:"passing_rating"`
	PassingTouchdowns     int     `json:"passing_touchdowns"`
	PassingInterceptions  int     `json:"passing_interceptions"`
	PassingSacks          int     `json:"passing_sacks"`
	PassingSacksYardsLost int     `json:"passing_sacks_yards_lost"`

	RushingAttempts   int `json:"rushing_attempts"`
	RushingYards      int `json:"rushing_yards"`
	RushingTouchdowns int `json:"rushing_touchdowns"`

	ReceivingTargets    int `json:"receiving_targets"`
	ReceivingReceptions int `json:"receiving_receptions"`
	ReceivingYards      int `json:"receiving_yards"`
	ReceivingTouchdowns int `json:"receiving_touchdowns"`

	KickReturnAttempts   int `json:"kick_return_attempts"`
	KickReturnYards      int `json:"kick_return_yards"`
	KickReturnTouchdowns int `json:"kick_return_touchdowns"`

	PuntReturnAttempts   int `json:"punt_return_attempts"`
	PuntReturnYards      int `json:"punt_return_yards"`
	PuntReturnTouchdowns int `json:"punt_return_touchdowns"`

	DefenseSacks                  float64 `json:"defense_sacks"`
	DefenseTackles                int     `json:"defense_tackles"`
	DefenseTackleAssists          int     `json:"defense_tackle_assists"`
	DefenseInterceptions          int     `json:"defense_interceptions"`
	DefenseInterceptionYards      int     `json:"defense_interception_yards"`
	DefenseInterceptionTouchdowns int     `json:"defense_interception_touchdowns"`
	DefenseSafeties               int     `json:"defense_safeties"`

	PointAfterAttempts int `json:"point_after_attempts"`
	PointAfterMakes    int `json:"point_after_makes"`
	FieldGoalAttempts  int `json:"field_goal_attempts"`
	FieldGoalMakes     int `json:"field_goal_makes"`

	PuntingAttempts int `json:"punting_attempts"`
	PuntingYards    int `json:"punting_yards"`
	PuntingBlocked  int `json:"punting_blocked"`
}

// Key identifies a game appearance.
func (g GameStat) Key() string {
	return fmt.Sprintf("%d:%s", g.PlayerID, g.GameID)
}

// PlayerGames is the persisted game list of a single player.
type PlayerGames struct {
	PlayerID int64
	// Source names the artifact the games were read from.
	Source string
	Games  []GameStat
}

// Dedupe keeps the first record of every game id, preserving order.
func Dedupe(games []GameStat) []GameStat {
	seen := make(map[string]struct{}, len(games))
	out := make([]GameStat, 0, len(games))
	for _, g := range games {
		if _, ok := seen[g.Key()]; ok {
			continue
		}
		seen[g.Key()] = struct{}{}
		out = append(out, g)
	}
	return out
}
