package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/pfr-scraper/internal/domain/gamelog"
	"github.com/riskibarqy/pfr-scraper/internal/domain/player"
	"github.com/riskibarqy/pfr-scraper/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

type CondenseResult struct {
	ProfilesWritten int    `json:"profiles_written"`
	GamesWritten    int    `json:"games_written"`
	ProfilesPath    string `json:"profiles_path"`
	GamesPath       string `json:"games_path"`
}

// CondenseService merges every per-player artifact into the two corpus files.
type CondenseService struct {
	profiles player.Repository
	games    gamelog.Repository
	writer   CorpusWriter
	logger   *logging.Logger
}

func NewCondenseService(profiles player.Repository, games gamelog.Repository, writer CorpusWriter, logger *logging.Logger) *CondenseService {
	if logger == nil {
		logger = logging.Default()
	}
	return &CondenseService{
		profiles: profiles,
		games:    games,
		writer:   writer,
		logger:   logger,
	}
}

func (s *CondenseService) Run(ctx context.Context, runAt time.Time) (CondenseResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CondenseService.Run")
	defer span.End()

	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return CondenseResult{}, errors.Wrap(err, "read profile artifacts")
	}
	perPlayer, err := s.games.ListAll(ctx)
	if err != nil {
		return CondenseResult{}, errors.Wrap(err, "read stats artifacts")
	}

	// Ids repeat when an earlier run was not cleared; ties fall back to the name.
	sort.Slice(profiles, func(i, j int) bool {
		if profiles[i].PlayerID != profiles[j].PlayerID {
			return profiles[i].PlayerID < profiles[j].PlayerID
		}
		return profiles[i].Name < profiles[j].Name
	})
	sort.Slice(perPlayer, func(i, j int) bool {
		if perPlayer[i].PlayerID != perPlayer[j].PlayerID {
			return perPlayer[i].PlayerID < perPlayer[j].PlayerID
		}
		return perPlayer[i].Source < perPlayer[j].Source
	})

	total := 0
	for _, pg := range perPlayer {
		total += len(pg.Games)
	}
	games := make([]gamelog.GameStat, 0, total)
	for _, pg := range perPlayer {
		games = append(games, pg.Games...)
	}

	if err := ctx.Err(); err != nil {
		return CondenseResult{}, err
	}

	profilesPath, gamesPath, err := s.writer.Write(runAt, profiles, games)
	if err != nil {
		return CondenseResult{}, err
	}

	result := CondenseResult{
		ProfilesWritten: len(profiles),
		GamesWritten:    len(games),
		ProfilesPath:    profilesPath,
		GamesPath:       gamesPath,
	}
	span.SetAttributes(
		attribute.Int("condense.profiles", result.ProfilesWritten),
		attribute.Int("condense.games", result.GamesWritten),
	)
	s.logger.InfoContext(ctx, "corpus condensed",
		"profiles", result.ProfilesWritten,
		"games", result.GamesWritten,
		"profiles_path", result.ProfilesPath,
		"games_path", result.GamesPath,
	)
	return result, nil
}
