package sqlstore

import (
	"database/sql"

	"github.com/riskibarqy/pfr-scraper/internal/domain/player"
)

type profileTableModel struct {
	PlayerID         int64          `db:"player_id"`
	Name             string         `db:"name"`
	Position         sql.NullString `db:"position"`
	Height           sql.NullString `db:"height"`
	Weight           sql.NullInt64  `db:"weight"`
	CurrentTeam      sql.NullString `db:"current_team"`
	BirthDate        sql.NullString `db:"birth_date"`
	BirthPlace       sql.NullString `db:"birth_place"`
	DeathDate        sql.NullString `db:"death_date"`
	College          sql.NullString `db:"college"`
	HighSchool       sql.NullString `db:"high_school"`
	DraftTeam        sql.NullString `db:"draft_team"`
	DraftRound       sql.NullInt64  `db:"draft_round"`
	DraftPosition    sql.NullInt64  `db:"draft_position"`
	DraftYear        sql.NullInt64  `db:"draft_year"`
	CurrentSalary    sql.NullInt64  `db:"current_salary"`
	HOFInductionYear sql.NullInt64  `db:"hof_induction_year"`
}

func profileToRow(p player.Profile) profileTableModel {
	return profileTableModel{
		PlayerID:         p.PlayerID,
		Name:             p.Name,
		Position:         nullString(p.Position),
		Height:           nullString(p.Height),
		Weight:           nullInt(p.Weight),
		CurrentTeam:      nullString(p.CurrentTeam),
		BirthDate:        nullString(p.BirthDate),
		BirthPlace:       nullString(p.BirthPlace),
		DeathDate:        nullString(p.DeathDate),
		College:          nullString(p.College),
		HighSchool:       nullString(p.HighSchool),
		DraftTeam:        nullString(p.DraftTeam),
		DraftRound:       nullInt(p.DraftRound),
		DraftPosition:    nullInt(p.DraftPosition),
		DraftYear:        nullInt(p.DraftYear),
		CurrentSalary:    nullInt64(p.CurrentSalary),
		HOFInductionYear: nullInt(p.HOFInductionYear),
	}
}

func (row profileTableModel) toDomain() player.Profile {
	return player.Profile{
		PlayerID:         row.PlayerID,
		Name:             row.Name,
		Position:         stringPtr(row.Position),
		Height:           stringPtr(row.Height),
		Weight:           intPtr(row.Weight),
		CurrentTeam:      stringPtr(row.CurrentTeam),
		BirthDate:        stringPtr(row.BirthDate),
		BirthPlace:       stringPtr(row.BirthPlace),
		DeathDate:        stringPtr(row.DeathDate),
		College:          stringPtr(row.College),
		HighSchool:       stringPtr(row.HighSchool),
		DraftTeam:        stringPtr(row.DraftTeam),
		DraftRound:       intPtr(row.DraftRound),
		DraftPosition:    intPtr(row.DraftPosition),
		DraftYear:        intPtr(row.DraftYear),
		CurrentSalary:    int64Ptr(row.CurrentSalary),
		HOFInductionYear: intPtr(row.HOFInductionYear),
	}
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	out := int(v.Int64)
	return &out
}

func int64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	return &v.Int64
}
