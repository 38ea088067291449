package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/pfr-scraper/internal/domain/gamelog"
	"github.com/riskibarqy/pfr-scraper/internal/domain/player"
	"github.com/riskibarqy/pfr-scraper/internal/platform/id"
	"github.com/riskibarqy/pfr-scraper/internal/platform/logging"
	"github.com/sourcegraph/conc/panics"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type ScrapeInput struct {
	Letters      []string `validate:"required,min=1,max=26,dive,len=1,uppercase,alpha"`
	Workers      int      `validate:"min=1,max=64"`
	StartID      int64    `validate:"min=1"`
	ClearOldData bool
	SkipCondense bool
}

type ScrapeResult struct {
	RunID          string          `json:"run_id"`
	LettersScraped int             `json:"letters_scraped"`
	LettersFailed  int             `json:"letters_failed"`
	PlayersQueued  int             `json:"players_queued"`
	PlayersDone    int             `json:"players_done"`
	PlayersFailed  int             `json:"players_failed"`
	GamesSaved     int             `json:"games_saved"`
	NextPlayerID   int64           `json:"next_player_id"`
	StartedAt      time.Time       `json:"started_at"`
	Duration       time.Duration   `json:"duration"`
	Condense       *CondenseResult `json:"condense,omitempty"`
}

// ScrapeService walks the player index letter by letter and runs one pipeline per player
// on a bounded worker pool.
type ScrapeService struct {
	newFetcher FetcherFactory
	parser     PageParser
	profiles   player.Repository
	games      gamelog.Repository
	cleaner    DataCleaner
	condenser  Condenser
	logger     *logging.Logger
	validator  *validator.Validate
	runIDs     id.Generator
	now        func() time.Time
}

func NewScrapeService(
	newFetcher FetcherFactory,
	parser PageParser,
	profiles player.Repository,
	games gamelog.Repository,
	cleaner DataCleaner,
	condenser Condenser,
	logger *logging.Logger,
) *ScrapeService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ScrapeService{
		newFetcher: newFetcher,
		parser:     parser,
		profiles:   profiles,
		games:      games,
		cleaner:    cleaner,
		condenser:  condenser,
		logger:     logger,
		validator:  validator.New(),
		runIDs:     id.NewRunIDGenerator(),
		now:        time.Now,
	}
}

type scrapeCounters struct {
	done   atomic.Int64
	failed atomic.Int64
	games  atomic.Int64
}

// Run scrapes every requested letter. On cancellation it waits for in-flight players and
// returns the context error without condensing.
func (s *ScrapeService) Run(ctx context.Context, input ScrapeInput) (ScrapeResult, error) {
	if err := s.validator.StructCtx(ctx, input); err != nil {
		return ScrapeResult{}, invalidInput(err)
	}
	if s.newFetcher == nil || s.parser == nil || s.profiles == nil || s.games == nil {
		return ScrapeResult{}, errors.Mark(errors.New("scrape service is not fully configured"), ErrDependencyUnavailable)
	}

	runID, err := s.runIDs.NewID()
	if err != nil {
		return ScrapeResult{}, errors.Wrap(err, "create run id")
	}
	logger := s.logger.With("run_id", runID)

	startedAt := s.now()
	ctx, span := startRunSpan(ctx, "usecase.ScrapeService.Run")
	defer span.End()
	span.SetAttributes(
		attribute.String("scrape.run_id", runID),
		attribute.StringSlice("scrape.letters", input.Letters),
		attribute.Int("scrape.workers", input.Workers),
		attribute.Int64("scrape.start_id", input.StartID),
	)

	if input.ClearOldData && s.cleaner != nil {
		if err := s.cleaner.Clear(); err != nil {
			return ScrapeResult{}, errors.Wrap(err, "clear old data")
		}
		logger.InfoContext(ctx, "old data cleared")
	}

	sessions := make(chan PageFetcher, input.Workers)
	for i := 0; i < input.Workers; i++ {
		fetcher, err := s.newFetcher()
		if err != nil {
			return ScrapeResult{}, errors.Wrap(err, "create fetch session")
		}
		sessions <- fetcher
	}

	pool, err := ants.NewPool(input.Workers)
	if err != nil {
		return ScrapeResult{}, errors.Wrap(err, "create worker pool")
	}
	defer pool.Release()

	result := ScrapeResult{RunID: runID, StartedAt: startedAt}
	var (
		counters scrapeCounters
		workers  sync.WaitGroup
		nextID   = input.StartID
	)

letters:
	for _, letter := range input.Letters {
		if ctx.Err() != nil {
			break
		}

		urls, err := s.listPlayers(ctx, sessions, letter)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			result.LettersFailed++
			logger.WarnContext(ctx, "skipping letter", "letter", letter, "error", err)
			continue
		}
		result.LettersScraped++
		logger.InfoContext(ctx, "letter indexed", "letter", letter, "players", len(urls))

		for _, url := range urls {
			if ctx.Err() != nil {
				break letters
			}
			job := playerJob{ID: nextID, Letter: letter, ProfileURL: url}
			nextID++
			result.PlayersQueued++

			workers.Add(1)
			if err := pool.Submit(func() {
				defer workers.Done()
				s.runJob(ctx, logger, sessions, job, &counters)
			}); err != nil {
				workers.Done()
				workers.Wait()
				return result, errors.Wrap(err, "submit player to worker pool")
			}
		}
	}

	workers.Wait()

	result.PlayersDone = int(counters.done.Load())
	result.PlayersFailed = int(counters.failed.Load())
	result.GamesSaved = int(counters.games.Load())
	result.NextPlayerID = nextID
	result.Duration = s.now().Sub(startedAt)

	if err := ctx.Err(); err != nil {
		span.SetStatus(codes.Error, "cancelled")
		logger.WarnContext(ctx, "scrape cancelled, corpus not written",
			"players_done", result.PlayersDone,
			"players_queued", result.PlayersQueued,
		)
		return result, err
	}

	logger.InfoContext(ctx, "scrape finished",
		"letters", result.LettersScraped,
		"letters_failed", result.LettersFailed,
		"players_done", result.PlayersDone,
		"players_failed", result.PlayersFailed,
		"games", result.GamesSaved,
		"duration", result.Duration.String(),
	)

	if input.SkipCondense || s.condenser == nil {
		return result, nil
	}
	condensed, err := s.condenser.Run(ctx, startedAt)
	if err != nil {
		span.RecordError(err)
		return result, errors.Wrap(err, "condense corpus")
	}
	result.Condense = &condensed
	return result, nil
}

func (s *ScrapeService) listPlayers(ctx context.Context, sessions chan PageFetcher, letter string) ([]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScrapeService.listPlayers")
	defer span.End()

	fetcher := <-sessions
	defer func() { sessions <- fetcher }()

	page, err := fetcher.Fetch(ctx, s.parser.PlayerListURL(letter))
	if err != nil {
		return nil, err
	}
	return s.parser.PlayerURLs(page)
}

func (s *ScrapeService) runJob(ctx context.Context, logger *logging.Logger, sessions chan PageFetcher, job playerJob, counters *scrapeCounters) {
	if ctx.Err() != nil {
		return
	}

	fetcher := <-sessions
	defer func() { sessions <- fetcher }()

	ctx, span := startUsecaseSpan(ctx, "usecase.ScrapeService.runJob")
	defer span.End()

	pipeline := &playerPipeline{
		fetcher:  fetcher,
		parser:   s.parser,
		profiles: s.profiles,
		games:    s.games,
	}

	var (
		outcome PlayerOutcome
		catcher panics.Catcher
	)
	catcher.Try(func() {
		outcome = pipeline.run(ctx, job)
	})
	if recovered := catcher.Recovered(); recovered != nil {
		outcome = PlayerOutcome{PlayerID: job.ID, State: pipeline.state, Err: recovered.AsError()}
	}

	if outcome.Err == nil {
		counters.done.Add(1)
		counters.games.Add(int64(outcome.Games))
		logger.DebugContext(ctx, "player scraped",
			"player_id", job.ID,
			"name", outcome.Name,
			"games", outcome.Games,
		)
		return
	}

	if ctx.Err() != nil {
		// cancelled mid-flight, not a player failure
		return
	}

	counters.failed.Add(1)
	span.RecordError(outcome.Err)
	span.SetStatus(codes.Error, string(outcome.State))
	logger.WarnContext(ctx, "player failed",
		"player_id", job.ID,
		"letter", job.Letter,
		"url", job.ProfileURL,
		"state", string(StateFailed),
		"failed_at", string(outcome.State),
		"error", outcome.Err,
	)
}
