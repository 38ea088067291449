package usecase

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/pfr-scraper/internal/domain/gamelog"
	"github.com/riskibarqy/pfr-scraper/internal/domain/player"
	"github.com/riskibarqy/pfr-scraper/internal/platform/logging"
	"github.com/stretchr/testify/require"
)

type stubReader struct {
	latestProfiles, latestGames string
	latestErr                   error
	profiles                    map[string][]player.Profile
	games                       map[string][]gamelog.GameStat
}

func (r *stubReader) Latest() (string, string, error) {
	return r.latestProfiles, r.latestGames, r.latestErr
}

func (r *stubReader) ReadProfiles(path string) ([]player.Profile, error) {
	out, ok := r.profiles[path]
	if !ok {
		return nil, errors.Newf("open %s: no such file", path)
	}
	return out, nil
}

func (r *stubReader) ReadGames(path string) ([]gamelog.GameStat, error) {
	out, ok := r.games[path]
	if !ok {
		return nil, errors.Newf("open %s: no such file", path)
	}
	return out, nil
}

type recordingLoader struct {
	profiles []player.Profile
	games    []gamelog.GameStat
	err      error
	calls    int
}

func (l *recordingLoader) Replace(_ context.Context, profiles []player.Profile, games []gamelog.GameStat) error {
	l.calls++
	l.profiles, l.games = profiles, games
	return l.err
}

func newStubReader() *stubReader {
	return &stubReader{
		latestProfiles: "profiles_2.json",
		latestGames:    "games_2.json",
		profiles: map[string][]player.Profile{
			"profiles_1.json": {player.NewProfile(1, "Old")},
			"profiles_2.json": {player.NewProfile(1, "A"), player.NewProfile(2, "B")},
		},
		games: map[string][]gamelog.GameStat{
			"games_1.json": {},
			"games_2.json": {
				{PlayerID: 1, GameID: "g1"},
				{PlayerID: 1, GameID: "g1", PassingYards: 99},
				{PlayerID: 2, GameID: "g1"},
			},
		},
	}
}

func TestLoadService_Run_LatestCorpus(t *testing.T) {
	loader := &recordingLoader{}
	svc := NewLoadService(newStubReader(), loader, logging.NewNop())

	result, err := svc.Run(context.Background(), LoadInput{})
	require.NoError(t, err)
	require.Equal(t, LoadResult{
		ProfilesPath:   "profiles_2.json",
		GamesPath:      "games_2.json",
		ProfilesLoaded: 2,
		GamesLoaded:    2,
		GamesDropped:   1,
	}, result)

	require.Len(t, loader.games, 2)
	require.Zero(t, loader.games[0].PassingYards, "first record of a game wins")
}

func TestLoadService_Run_ExplicitPaths(t *testing.T) {
	loader := &recordingLoader{}
	svc := NewLoadService(newStubReader(), loader, logging.NewNop())

	result, err := svc.Run(context.Background(), LoadInput{ProfilesPath: "profiles_1.json", GamesPath: "games_1.json"})
	require.NoError(t, err)
	require.Equal(t, 1, result.ProfilesLoaded)
	require.Equal(t, "Old", loader.profiles[0].Name)
}

func TestLoadService_Run_Errors(t *testing.T) {
	t.Run("half a pair", func(t *testing.T) {
		loader := &recordingLoader{}
		_, err := NewLoadService(newStubReader(), loader, logging.NewNop()).
			Run(context.Background(), LoadInput{ProfilesPath: "profiles_1.json"})
		require.True(t, errors.Is(err, ErrInvalidInput))
		require.Zero(t, loader.calls)
	})

	t.Run("no corpus", func(t *testing.T) {
		reader := newStubReader()
		reader.latestErr = errors.New("no corpus in out")
		_, err := NewLoadService(reader, &recordingLoader{}, logging.NewNop()).Run(context.Background(), LoadInput{})
		require.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewLoadService(newStubReader(), &recordingLoader{}, logging.NewNop()).
			Run(context.Background(), LoadInput{ProfilesPath: "x.json", GamesPath: "y.json"})
		require.ErrorContains(t, err, "x.json")
	})

	t.Run("loader failure", func(t *testing.T) {
		loader := &recordingLoader{err: errors.New("connection refused")}
		_, err := NewLoadService(newStubReader(), loader, logging.NewNop()).Run(context.Background(), LoadInput{})
		require.ErrorContains(t, err, "load corpus")
	})

	t.Run("unconfigured", func(t *testing.T) {
		_, err := NewLoadService(nil, nil, logging.NewNop()).Run(context.Background(), LoadInput{})
		require.True(t, errors.Is(err, ErrDependencyUnavailable))
	})
}
