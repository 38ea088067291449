package pfr

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/pfr-scraper/internal/domain/gamelog"
	"github.com/stretchr/testify/require"
)

const seasonPage = `<html><body>
<table id="stats">
<thead><tr><th data-stat="game_date">Date</th></tr></thead>
<tbody>
<tr id="stats.1">
	<td data-stat="game_date"><a href="/boxscores/200709090nwe.htm">2007-09-09</a></td>
	<td data-stat="game_num">1</td>
	<td data-stat="age">30.037</td>
	<td data-stat="team"><a href="/teams/nwe/2007.htm">NWE</a></td>
	<td data-stat="game_location">@</td>
	<td data-stat="opp"><a href="/teams/nyj/2007.htm">NYJ</a></td>
	<td data-stat="game_result"><a href="/boxscores/200709090nwe.htm">W 38-14</a></td>
	<td data-stat="pass_cmp">22</td>
	<td data-stat="pass_att">28</td>
	<td data-stat="pass_yds">297</td>
	<td data-stat="pass_td">3</td>
	<td data-stat="pass_int">0</td>
	<td data-stat="pass_rating">145.4</td>
	<td data-stat="pass_sacked">1</td>
	<td data-stat="pass_sacked_yds">6</td>
	<td data-stat="rush_att">2</td>
	<td data-stat="rush_yds"></td>
	<td data-stat="rush_td">0</td>
</tr>
<tr class="thead"><th data-stat="game_date">Date</th></tr>
<tr class="spacer"><td colspan="10"></td></tr>
<tr id="stats.2">
	<td data-stat="game_date"><a href="/boxscores/200709160sdg.htm">2007-09-16</a></td>
	<td data-stat="game_num">2</td>
	<td data-stat="age">30.044</td>
	<td data-stat="team">NWE</td>
	<td data-stat="game_location"></td>
	<td data-stat="opp">SDG</td>
	<td data-stat="game_result">L 14-24</td>
	<td data-stat="pass_att">31</td>
	<td data-stat="sacks">1.5</td>
</tr>
<tr><td data-stat="opp">Did Not Play</td></tr>
</tbody>
</table>
<table id="stats_playoffs">
<tbody>
<tr>
	<td data-stat="game_date"><a href="/boxscores/200801120nwe.htm">2008-01-12</a></td>
	<td data-stat="game_num">17</td>
	<td data-stat="team">NWE</td>
	<td data-stat="game_location">N</td>
	<td data-stat="opp">JAX</td>
	<td data-stat="game_result">W 31-20</td>
	<td data-stat="pass_att">28</td>
</tr>
</tbody>
</table>
</body></html>`

func TestGameLog_RegularAndPlayoffRows(t *testing.T) {
	parser := NewParser(DefaultBaseURL)

	games, ok, err := parser.GameLog([]byte(seasonPage), 42, 2007)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, games, 3)

	first := games[0]
	require.Equal(t, "200709090nwe", first.GameID)
	require.Equal(t, "2007-09-09", first.Date)
	require.Equal(t, int64(42), first.PlayerID)
	require.Equal(t, 2007, first.Year)
	require.Equal(t, 1, first.GameNumber)
	require.Equal(t, "30.037", first.Age)
	require.Equal(t, "NWE", first.Team)
	require.Equal(t, gamelog.LocationAway, first.GameLocation)
	require.Equal(t, "NYJ", first.Opponent)
	require.True(t, first.GameWon)
	require.Equal(t, 38, first.PlayerTeamScore)
	require.Equal(t, 14, first.OpponentScore)
	require.Equal(t, 28, first.PassingAttempts)
	require.Equal(t, 22, first.PassingCompletions)
	require.Equal(t, 297, first.PassingYards)
	require.InDelta(t, 145.4, first.PassingRating, 1e-9)
	require.Equal(t, 1, first.PassingSacks)
	require.Equal(t, 6, first.PassingSacksYardsLost)
	require.Equal(t, 2, first.RushingAttempts)
	require.Zero(t, first.RushingYards, "empty cell is zero")
	require.Zero(t, first.ReceivingTargets, "absent column is zero")

	second := games[1]
	require.Equal(t, gamelog.LocationHome, second.GameLocation)
	require.False(t, second.GameWon)
	require.Equal(t, 14, second.PlayerTeamScore)
	require.Equal(t, 24, second.OpponentScore)
	require.InDelta(t, 1.5, second.DefenseSacks, 1e-9)

	playoff := games[2]
	require.Equal(t, "200801120nwe", playoff.GameID)
	require.Equal(t, gamelog.LocationNeutral, playoff.GameLocation)
	require.Equal(t, 17, playoff.GameNumber)
	require.Empty(t, playoff.Age)
}

func TestGameLog_NoStatsTableIsSentinel(t *testing.T) {
	parser := NewParser(DefaultBaseURL)

	games, ok, err := parser.GameLog([]byte(`<html><body><table id="stats_playoffs"></table></body></html>`), 1, 1999)
	require.NoError(t, err)
	require.False(t, ok)
	require.Empty(t, games)
}

func TestGameLog_AbsentColumnEqualsEmptyCell(t *testing.T) {
	parser := NewParser(DefaultBaseURL)

	row := func(extra string) []byte {
		return []byte(`<table id="stats"><tbody><tr>
			<td data-stat="game_date"><a href="/boxscores/201209090buf.htm">2012-09-09</a></td>
			<td data-stat="game_result">T 20-20</td>` + extra + `</tr></tbody></table>`)
	}

	absent, _, err := parser.GameLog(row(""), 7, 2012)
	require.NoError(t, err)
	empty, _, err := parser.GameLog(row(`<td data-stat="fgm"></td><td data-stat="pass_rating"></td>`), 7, 2012)
	require.NoError(t, err)
	present, _, err := parser.GameLog(row(`<td data-stat="fgm">3</td><td data-stat="pass_rating">88.0</td>`), 7, 2012)
	require.NoError(t, err)

	require.Equal(t, absent, empty)
	require.Equal(t, 3, present[0].FieldGoalMakes)
	require.InDelta(t, 88.0, present[0].PassingRating, 1e-9)
	require.False(t, present[0].GameWon)
	require.Equal(t, 20, present[0].OpponentScore)
}

func TestGameLog_BadNumericCellFails(t *testing.T) {
	parser := NewParser(DefaultBaseURL)

	page := []byte(`<table id="stats"><tbody><tr>
		<td data-stat="game_date"><a href="/boxscores/201209090buf.htm">2012-09-09</a></td>
		<td data-stat="rush_yds">lots</td>
	</tr></tbody></table>`)

	_, ok, err := parser.GameLog(page, 7, 2012)
	require.True(t, ok)
	require.True(t, errors.Is(err, ErrExtraction))
	require.Contains(t, err.Error(), "rush_yds")
}

func TestLocationFromMarker(t *testing.T) {
	require.Equal(t, gamelog.LocationAway, gamelog.LocationFromMarker("@"))
	require.Equal(t, gamelog.LocationNeutral, gamelog.LocationFromMarker("N"))
	require.Equal(t, gamelog.LocationHome, gamelog.LocationFromMarker(""))
}
