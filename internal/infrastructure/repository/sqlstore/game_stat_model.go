package sqlstore

import "github.com/riskibarqy/pfr-scraper/internal/domain/gamelog"

type gameStatTableModel struct {
	PlayerID        int64  `db:"player_id"`
	GameID          string `db:"game_id"`
	Year            int    `db:"year"`
	Date            string `db:"date"`
	GameNumber      int    `db:"game_number"`
	Age             string `db:"age"`
	Team            string `db:"team"`
	GameLocation    string `db:"game_location"`
	Opponent        string `db:"opponent"`
	GameWon         bool   `db:"game_won"`
	PlayerTeamScore int    `db:"player_team_score"`
	OpponentScore   int    `db:"opponent_score"`

	PassingAttempts       int     `db:"passing_attempts"`
	PassingCompletions    int     `db:"passing_completions"`
	PassingYards          int     `db:"passing_yards"`
	PassingRating         float64 `db:"passing_rating"`
	PassingTouchdowns     int     `db:"passing_touchdowns"`
	PassingInterceptions  int     `db:"passing_interceptions"`
	PassingSacks          int     `db:"passing_sacks"`
	PassingSacksYardsLost int     `db:"passing_sacks_yards_lost"`

	RushingAttempts   int `db:"rushing_attempts"`
	RushingYards      int `db:"rushing_yards"`
	RushingTouchdowns int `db:"rushing_touchdowns"`

	ReceivingTargets    int `db:"receiving_targets"`
	ReceivingReceptions int `db:"receiving_receptions"`
	ReceivingYards      int `db:"receiving_yards"`
	ReceivingTouchdowns int `db:"receiving_touchdowns"`

	KickReturnAttempts   int `db:"kick_return_attempts"`
	KickReturnYards      int `db:"kick_return_yards"`
	KickReturnTouchdowns int `db:"kick_return_touchdowns"`

	PuntReturnAttempts   int `db:"punt_return_attempts"`
	PuntReturnYards      int `db:"punt_return_yards"`
	PuntReturnTouchdowns int `db:"punt_return_touchdowns"`

	DefenseSacks                  float64 `db:"defense_sacks"`
	DefenseTackles                int     `db:"defense_tackles"`
	DefenseTackleAssists          int     `db:"defense_tackle_assists"`
	DefenseInterceptions          int     `db:"defense_interceptions"`
	DefenseInterceptionYards      int     `db:"defense_interception_yards"`
	DefenseInterceptionTouchdowns int     `db:"defense_interception_touchdowns"`
	DefenseSafeties               int     `db:"defense_safeties"`

	PointAfterAttempts int `db:"point_after_attempts"`
	PointAfterMakes    int `db:"point_after_makes"`
	FieldGoalAttempts  int `db:"field_goal_attempts"`
	FieldGoalMakes     int `db:"field_goal_makes"`

	PuntingAttempts int `db:"punting_attempts"`
	PuntingYards    int `db:"punting_yards"`
	PuntingBlocked  int `db:"punting_blocked"`
}

func gameStatToRow(g gamelog.GameStat) gameStatTableModel {
	return gameStatTableModel{
		PlayerID:                      g.PlayerID,
		GameID:                        g.GameID,
		Year:                          g.Year,
		Date:                          g.Date,
		GameNumber:                    g.GameNumber,
		Age:                           g.Age,
		Team:                          g.Team,
		GameLocation:                  string(g.GameLocation),
		Opponent:                      g.Opponent,
		GameWon:                       g.GameWon,
		PlayerTeamScore:               g.PlayerTeamScore,
		OpponentScore:                 g.OpponentScore,
		PassingAttempts:               g.PassingAttempts,
		PassingCompletions:            g.PassingCompletions,
		PassingYards:                  g.PassingYards,
		PassingRating:                 g.PassingRating,
		PassingTouchdowns:             g.PassingTouchdowns,
		PassingInterceptions:          g.PassingInterceptions,
		PassingSacks:                  g.PassingSacks,
		PassingSacksYardsLost:         g.PassingSacksYardsLost,
		RushingAttempts:               g.RushingAttempts,
		RushingYards:                  g.RushingYards,
		RushingTouchdowns:             g.RushingTouchdowns,
		ReceivingTargets:              g.ReceivingTargets,
		ReceivingReceptions:           g.ReceivingReceptions,
		ReceivingYards:                g.ReceivingYards,
		ReceivingTouchdowns:           g.ReceivingTouchdowns,
		KickReturnAttempts:            g.KickReturnAttempts,
		KickReturnYards:               g.KickReturnYards,
		KickReturnTouchdowns:          g.KickReturnTouchdowns,
		PuntReturnAttempts:            g.PuntReturnAttempts,
		PuntReturnYards:               g.PuntReturnYards,
		PuntReturnTouchdowns:          g.PuntReturnTouchdowns,
		DefenseSacks:                  g.DefenseSacks,
		DefenseTackles:                g.DefenseTackles,
		DefenseTackleAssists:          g.DefenseTackleAssists,
		DefenseInterceptions:          g.DefenseInterceptions,
		DefenseInterceptionYards:      g.DefenseInterceptionYards,
		DefenseInterceptionTouchdowns: g.DefenseInterceptionTouchdowns,
		DefenseSafeties:               g.DefenseSafeties,
		PointAfterAttempts:            g.PointAfterAttempts,
		PointAfterMakes:               g.PointAfterMakes,
		FieldGoalAttempts:             g.FieldGoalAttempts,
		FieldGoalMakes:                g.FieldGoalMakes,
		PuntingAttempts:               g.PuntingAttempts,
		PuntingYards:                  g.PuntingYards,
		PuntingBlocked:                g.PuntingBlocked,
	}
}

func (row gameStatTableModel) toDomain() gamelog.GameStat {
	return gamelog.GameStat{
		PlayerID:                      row.PlayerID,
		GameID:                        row.GameID,
		Year:                          row.Year,
		Date:                          row.Date,
		GameNumber:                    row.GameNumber,
		Age:                           row.Age,
		Team:                          row.Team,
		GameLocation:                  gamelog.Location(row.GameLocation),
		Opponent:                      row.Opponent,
		GameWon:                       row.GameWon,
		PlayerTeamScore:               row.PlayerTeamScore,
		OpponentScore:                 row.OpponentScore,
		PassingAttempts:               row.PassingAttempts,
		PassingCompletions:            row.PassingCompletions,
		PassingYards:                  row.PassingYards,
		PassingRating:                 row.PassingRating,
		PassingTouchdowns:             row.PassingTouchdowns,
		PassingInterceptions:          row.PassingInterceptions,
		PassingSacks:                  row.PassingSacks,
		PassingSacksYardsLost:         row.PassingSacksYardsLost,
		RushingAttempts:               row.RushingAttempts,
		RushingYards:                  row.RushingYards,
		RushingTouchdowns:             row.RushingTouchdowns,
		ReceivingTargets:              row.ReceivingTargets,
		ReceivingReceptions:           row.ReceivingReceptions,
		ReceivingYards:                row.ReceivingYards,
		ReceivingTouchdowns:           row.ReceivingTouchdowns,
		KickReturnAttempts:            row.KickReturnAttempts,
		KickReturnYards:               row.KickReturnYards,
		KickReturnTouchdowns:          row.KickReturnTouchdowns,
		PuntReturnAttempts:            row.PuntReturnAttempts,
		PuntReturnYards:               row.PuntReturnYards,
		PuntReturnTouchdowns:          row.PuntReturnTouchdowns,
		DefenseSacks:                  row.DefenseSacks,
		DefenseTackles:                row.DefenseTackles,
		DefenseTackleAssists:          row.DefenseTackleAssists,
		DefenseInterceptions:          row.DefenseInterceptions,
		DefenseInterceptionYards:      row.DefenseInterceptionYards,
		DefenseInterceptionTouchdowns: row.DefenseInterceptionTouchdowns,
		DefenseSafeties:               row.DefenseSafeties,
		PointAfterAttempts:            row.PointAfterAttempts,
		PointAfterMakes:               row.PointAfterMakes,
		FieldGoalAttempts:             row.FieldGoalAttempts,
		FieldGoalMakes:                row.FieldGoalMakes,
		PuntingAttempts:               row.PuntingAttempts,
		PuntingYards:                  row.PuntingYards,
		PuntingBlocked:                row.PuntingBlocked,
	}
}
