package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/pfr-scraper/internal/domain/gamelog"
	"github.com/riskibarqy/pfr-scraper/internal/domain/player"
)

// PageFetcher downloads one page. Implementations are owned by a single worker at a time.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// FetcherFactory builds an independent fetch session for one worker.
type FetcherFactory func() (PageFetcher, error)

// PageParser extracts records from site pages and knows the site's address layout.
type PageParser interface {
	PlayerListURL(letter string) string
	GameLogURL(profileURL string, year int) string
	PlayerURLs(page []byte) ([]string, error)
	Profile(page []byte, playerID int64) (player.Profile, error)
	SeasonIndex(page []byte) ([]player.SeasonRef, error)
	GameLog(page []byte, playerID int64, year int) ([]gamelog.GameStat, bool, error)
}

// DataCleaner wipes the per-player artifacts of earlier runs.
type DataCleaner interface {
	Clear() error
}

type CorpusWriter interface {
	Write(runAt time.Time, profiles []player.Profile, games []gamelog.GameStat) (profilesPath, gamesPath string, err error)
}

type CorpusReader interface {
	Latest() (profilesPath, gamesPath string, err error)
	ReadProfiles(path string) ([]player.Profile, error)
	ReadGames(path string) ([]gamelog.GameStat, error)
}

// CorpusLoader replaces the relational copy of the corpus.
type CorpusLoader interface {
	Replace(ctx context.Context, profiles []player.Profile, games []gamelog.GameStat) error
}

type RecordFile interface {
	ReadRecords(path string) ([]map[string]any, error)
	WriteRecords(path string, records any) error
}

// Condenser merges per-player artifacts into the corpus.
type Condenser interface {
	Run(ctx context.Context, runAt time.Time) (CondenseResult, error)
}
