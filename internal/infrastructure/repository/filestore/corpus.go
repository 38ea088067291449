package filestore

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/pfr-scraper/internal/domain/gamelog"
	"github.com/riskibarqy/pfr-scraper/internal/domain/player"
)

const (
	profilesCorpusPrefix = "profiles_"
	gamesCorpusPrefix    = "games_"
)

// ErrNoCorpus is returned when the output directory holds no condensed corpus.
var ErrNoCorpus = errors.New("no condensed corpus found")

// CorpusTimestamp renders t as Unix seconds with a six digit microsecond fraction.
func CorpusTimestamp(t time.Time) string {
	return fmt.Sprintf("%d.%06d", t.Unix(), t.Nanosecond()/int(time.Microsecond))
}

// CorpusPaths names the two files of one condensation run.
type CorpusPaths struct {
	Profiles string
	Games    string
}

type CorpusWriter struct {
	dir string
}

func NewCorpusWriter(outputDir string) *CorpusWriter {
	return &CorpusWriter{dir: outputDir}
}

func (w *CorpusWriter) PathsFor(runAt time.Time) CorpusPaths {
	ts := CorpusTimestamp(runAt)
	return CorpusPaths{
		Profiles: filepath.Join(w.dir, profilesCorpusPrefix+ts+jsonExt),
		Games:    filepath.Join(w.dir, gamesCorpusPrefix+ts+jsonExt),
	}
}

// Write stores both corpus arrays for the run started at runAt and returns their paths.
func (w *CorpusWriter) Write(runAt time.Time, profiles []player.Profile, games []gamelog.GameStat) (string, string, error) {
	if profiles == nil {
		profiles = []player.Profile{}
	}
	if games == nil {
		games = []gamelog.GameStat{}
	}

	paths := w.PathsFor(runAt)
	if err := WriteJSON(paths.Profiles, profiles); err != nil {
		return "", "", errors.Wrap(err, "write profile corpus")
	}
	if err := WriteJSON(paths.Games, games); err != nil {
		return "", "", errors.Wrap(err, "write game corpus")
	}
	return paths.Profiles, paths.Games, nil
}

// LatestCorpus finds the newest profiles/games pair in dir.
func LatestCorpus(dir string) (CorpusPaths, error) {
	entries, err := os.ReadDir(dir)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return CorpusPaths{}, errors.Wrapf(err, "list %s", dir)
	}

	stamps := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, profilesCorpusPrefix) || filepath.Ext(name) != jsonExt {
			continue
		}
		ts := strings.TrimSuffix(strings.TrimPrefix(name, profilesCorpusPrefix), jsonExt)
		if _, err := os.Stat(filepath.Join(dir, gamesCorpusPrefix+ts+jsonExt)); err != nil {
			continue
		}
		stamps = append(stamps, ts)
	}
	if len(stamps) == 0 {
		return CorpusPaths{}, errors.Mark(errors.Newf("no corpus in %s", dir), ErrNoCorpus)
	}

	sort.Slice(stamps, func(i, j int) bool { return stampLess(stamps[i], stamps[j]) })
	latest := stamps[len(stamps)-1]
	return CorpusPaths{
		Profiles: filepath.Join(dir, profilesCorpusPrefix+latest+jsonExt),
		Games:    filepath.Join(dir, gamesCorpusPrefix+latest+jsonExt),
	}, nil
}

// stampLess orders "<sec>.<usec>" stamps numerically on the seconds part.
func stampLess(a, b string) bool {
	as, af, _ := strings.Cut(a, ".")
	bs, bf, _ := strings.Cut(b, ".")
	if len(as) != len(bs) {
		return len(as) < len(bs)
	}
	if as != bs {
		return as < bs
	}
	return af < bf
}

// CorpusReader reads condensed corpus files back for export.
type CorpusReader struct {
	dir string
}

func NewCorpusReader(outputDir string) *CorpusReader {
	return &CorpusReader{dir: outputDir}
}

func (r *CorpusReader) Latest() (string, string, error) {
	paths, err := LatestCorpus(r.dir)
	if err != nil {
		return "", "", err
	}
	return paths.Profiles, paths.Games, nil
}

func (r *CorpusReader) ReadProfiles(path string) ([]player.Profile, error) {
	var out []player.Profile
	if err := ReadJSON(path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CorpusReader) ReadGames(path string) ([]gamelog.GameStat, error) {
	var out []gamelog.GameStat
	if err := ReadJSON(path, &out); err != nil {
		return nil, err
	}
	return out, nil
}
