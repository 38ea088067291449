package filestore

import (
	"context"
	"os"
	"path/filepath"
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/pfr-scraper/internal/domain/gamelog"
	"github.com/sourcegraph/conc/pool"
)

// GameStore keeps one JSON array of games per player under <dataDir>/stats.
type GameStore struct {
	dir string
}

func NewGameStore(dataDir string) *GameStore {
	return &GameStore{dir: filepath.Join(dataDir, StatsDirName)}
}

func (s *GameStore) Dir() string {
	return s.dir
}

func (s *GameStore) Save(ctx context.Context, playerID int64, playerName string, games []gamelog.GameStat) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if games == nil {
		games = []gamelog.GameStat{}
	}

	path := filepath.Join(s.dir, ArtifactName(playerID, playerName))
	if err := WriteJSON(path, games); err != nil {
		return errors.Wrapf(err, "save games of player %d", playerID)
	}
	return nil
}

// Delete removes the game list of one player. A missing file is not an error.
func (s *GameStore) Delete(ctx context.Context, playerID int64, playerName string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := filepath.Join(s.dir, ArtifactName(playerID, playerName))
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.Wrapf(err, "delete games of player %d", playerID)
	}
	return nil
}

// ListAll decodes every stored game list, keyed by the id in the file name.
func (s *GameStore) ListAll(ctx context.Context) ([]gamelog.PlayerGames, error) {
	paths, err := listArtifacts(s.dir)
	if err != nil {
		return nil, err
	}

	p := pool.NewWithResults[gamelog.PlayerGames]().
		WithContext(ctx).
		WithCancelOnError().
		WithMaxGoroutines(runtime.GOMAXPROCS(0))
	for _, path := range paths {
		path := path
		p.Go(func(ctx context.Context) (gamelog.PlayerGames, error) {
			if err := ctx.Err(); err != nil {
				return gamelog.PlayerGames{}, err
			}
			playerID, err := playerIDFromName(path)
			if err != nil {
				return gamelog.PlayerGames{}, err
			}
			var games []gamelog.GameStat
			if err := ReadJSON(path, &games); err != nil {
				return gamelog.PlayerGames{}, err
			}
			return gamelog.PlayerGames{PlayerID: playerID, Source: filepath.Base(path), Games: games}, nil
		})
	}

	all, err := p.Wait()
	if err != nil {
		return nil, errors.Wrap(err, "list games")
	}
	return all, nil
}
