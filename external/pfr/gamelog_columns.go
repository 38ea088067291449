package pfr

import "github.com/riskibarqy/pfr-scraper/internal/domain/gamelog"

type intColumn struct {
	tag   string
	field func(*gamelog.GameStat) *int
}

type floatColumn struct {
	tag   string
	field func(*gamelog.GameStat) *float64
}

// Stat columns keyed by the site's data-stat attribute. Table variants differ by era
// and position, so any of these may be missing from a given season.
var intColumns = []intColumn{
	{"pass_att", func(g *gamelog.GameStat) *int { return &g.PassingAttempts }},
	{"pass_cmp", func(g *gamelog.GameStat) *int { return &g.PassingCompletions }},
	{"pass_yds", func(g *gamelog.GameStat) *int { return &g.PassingYards }},
	{"pass_td", func(g *gamelog.GameStat) *int { return &g.PassingTouchdowns }},
	{"pass_int", func(g *gamelog.GameStat) *int { return &g.PassingInterceptions }},
	{"pass_sacked", func(g *gamelog.GameStat) *int { return &g.PassingSacks }},
	{"pass_sacked_yds", func(g *gamelog.GameStat) *int { return &g.PassingSacksYardsLost }},

	{"rush_att", func(g *gamelog.GameStat) *int { return &g.RushingAttempts }},
	{"rush_yds", func(g *gamelog.GameStat) *int { return &g.RushingYards }},
	{"rush_td", func(g *gamelog.GameStat) *int { return &g.RushingTouchdowns }},

	{"targets", func(g *gamelog.GameStat) *int { return &g.ReceivingTargets }},
	{"rec", func(g *gamelog.GameStat) *int { return &g.ReceivingReceptions }},
	{"rec_yds", func(g *gamelog.GameStat) *int { return &g.ReceivingYards }},
	{"rec_td", func(g *gamelog.GameStat) *int { return &g.ReceivingTouchdowns }},

	{"kick_ret", func(g *gamelog.GameStat) *int { return &g.KickReturnAttempts }},
	{"kick_ret_yds", func(g *gamelog.GameStat) *int { return &g.KickReturnYards }},
	{"kick_ret_td", func(g *gamelog.GameStat) *int { return &g.KickReturnTouchdowns }},

	{"punt_ret", func(g *gamelog.GameStat) *int { return &g.PuntReturnAttempts }},
	{"punt_ret_yds", func(g *gamelog.GameStat) *int { return &g.PuntReturnYards }},
	{"punt_ret_td", func(g *gamelog.GameStat) *int { return &g.PuntReturnTouchdowns }},

	{"tackles_solo", func(g *gamelog.GameStat) *int { return &g.DefenseTackles }},
	{"tackles_assists", func(g *gamelog.GameStat) *int { return &g.DefenseTackleAssists }},
	{"def_int", func(g *gamelog.GameStat) *int { return &g.DefenseInterceptions }},
	{"def_int_yds", func(g *gamelog.GameStat) *int { return &g.DefenseInterceptionYards }},
	{"def_int_td", func(g *gamelog.GameStat) *int { return &g.DefenseInterceptionTouchdowns }},
	{"safety_md", func(g *gamelog.GameStat) *int { return &g.DefenseSafeties }},

	{"xpa", func(g *gamelog.GameStat) *int { return &g.PointAfterAttempts }},
	{"xpm", func(g *gamelog.GameStat) *int { return &g.PointAfterMakes }},
	{"fga", func(g *gamelog.GameStat) *int { return &g.FieldGoalAttempts }},
	{"fgm", func(g *gamelog.GameStat) *int { return &g.FieldGoalMakes }},

	{"punt", func(g *gamelog.GameStat) *int { return &g.PuntingAttempts }},
	{"punt_yds", func(g *gamelog.GameStat) *int { return &g.PuntingYards }},
	{"punt_blocked", func(g *gamelog.GameStat) *int { return &g.PuntingBlocked }},
}

var floatColumns = []floatColumn{
	{"pass_rating", func(g *gamelog.GameStat) *float64 { return &g.PassingRating }},
	{"sacks", func(g *gamelog.GameStat) *float64 { return &g.DefenseSacks }},
}
