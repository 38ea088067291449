package filestore

import (
	"context"
	"path/filepath"
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/pfr-scraper/internal/domain/player"
	"github.com/sourcegraph/conc/pool"
)

// ProfileStore keeps one JSON document per player under <dataDir>/profile.
type ProfileStore struct {
	dir string
}

func NewProfileStore(dataDir string) *ProfileStore {
	return &ProfileStore{dir: filepath.Join(dataDir, ProfileDirName)}
}

func (s *ProfileStore) Dir() string {
	return s.dir
}

func (s *ProfileStore) Save(ctx context.Context, profile player.Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := profile.Validate(); err != nil {
		return errors.Wrap(err, "validate profile")
	}

	path := filepath.Join(s.dir, ArtifactName(profile.PlayerID, profile.Name))
	if err := WriteJSON(path, profile); err != nil {
		return errors.Wrapf(err, "save profile %d", profile.PlayerID)
	}
	return nil
}

// List decodes every stored profile. A single unreadable file fails the whole call.
func (s *ProfileStore) List(ctx context.Context) ([]player.Profile, error) {
	paths, err := listArtifacts(s.dir)
	if err != nil {
		return nil, err
	}

	p := pool.NewWithResults[player.Profile]().
		WithContext(ctx).
		WithCancelOnError().
		WithMaxGoroutines(runtime.GOMAXPROCS(0))
	for _, path := range paths {
		path := path
		p.Go(func(ctx context.Context) (player.Profile, error) {
			if err := ctx.Err(); err != nil {
				return player.Profile{}, err
			}
			var profile player.Profile
			if err := ReadJSON(path, &profile); err != nil {
				return player.Profile{}, err
			}
			return profile, nil
		})
	}

	profiles, err := p.Wait()
	if err != nil {
		return nil, errors.Wrap(err, "list profiles")
	}
	return profiles, nil
}
