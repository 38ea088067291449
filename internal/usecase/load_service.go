package usecase

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/pfr-scraper/internal/domain/gamelog"
	"github.com/riskibarqy/pfr-scraper/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

// LoadInput names the corpus files to load. Empty paths select the newest corpus.
type LoadInput struct {
	ProfilesPath string
	GamesPath    string
}

type LoadResult struct {
	ProfilesPath   string `json:"profiles_path"`
	GamesPath      string `json:"games_path"`
	ProfilesLoaded int    `json:"profiles_loaded"`
	GamesLoaded    int    `json:"games_loaded"`
	GamesDropped   int    `json:"games_dropped"`
}

// LoadService copies a condensed corpus into the relational store, replacing what was there.
type LoadService struct {
	reader CorpusReader
	loader CorpusLoader
	logger *logging.Logger
}

func NewLoadService(reader CorpusReader, loader CorpusLoader, logger *logging.Logger) *LoadService {
	if logger == nil {
		logger = logging.Default()
	}
	return &LoadService{reader: reader, loader: loader, logger: logger}
}

func (s *LoadService) Run(ctx context.Context, input LoadInput) (LoadResult, error) {
	ctx, span := startRunSpan(ctx, "usecase.LoadService.Run")
	defer span.End()

	if s.reader == nil || s.loader == nil {
		return LoadResult{}, errors.Mark(errors.New("load service is not fully configured"), ErrDependencyUnavailable)
	}

	profilesPath := strings.TrimSpace(input.ProfilesPath)
	gamesPath := strings.TrimSpace(input.GamesPath)
	if (profilesPath == "") != (gamesPath == "") {
		return LoadResult{}, invalidInput(errors.New("profiles and games paths must be given together"))
	}
	if profilesPath == "" {
		var err error
		profilesPath, gamesPath, err = s.reader.Latest()
		if err != nil {
			return LoadResult{}, errors.Mark(err, ErrNotFound)
		}
	}

	profiles, err := s.reader.ReadProfiles(profilesPath)
	if err != nil {
		return LoadResult{}, err
	}
	games, err := s.reader.ReadGames(gamesPath)
	if err != nil {
		return LoadResult{}, err
	}

	// the corpus may span runs that revisited a player
	unique := gamelog.Dedupe(games)

	if err := s.loader.Replace(ctx, profiles, unique); err != nil {
		return LoadResult{}, errors.Wrap(err, "load corpus")
	}

	result := LoadResult{
		ProfilesPath:   profilesPath,
		GamesPath:      gamesPath,
		ProfilesLoaded: len(profiles),
		GamesLoaded:    len(unique),
		GamesDropped:   len(games) - len(unique),
	}
	span.SetAttributes(
		attribute.Int("load.profiles", result.ProfilesLoaded),
		attribute.Int("load.games", result.GamesLoaded),
	)
	s.logger.InfoContext(ctx, "corpus loaded",
		"profiles", result.ProfilesLoaded,
		"games", result.GamesLoaded,
		"duplicates_dropped", result.GamesDropped,
	)
	return result, nil
}
