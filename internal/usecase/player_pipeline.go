package usecase

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/pfr-scraper/internal/domain/gamelog"
	"github.com/riskibarqy/pfr-scraper/internal/domain/player"
)

// PlayerState is the step a player pipeline is in, or ended in.
type PlayerState string

const (
	StateFetchingProfile   PlayerState = "fetching_profile"
	StateExtractingProfile PlayerState = "extracting_profile"
	StateFetchingSeasons   PlayerState = "fetching_seasons"
	StateExtractingGames   PlayerState = "extracting_games"
	StatePersisting        PlayerState = "persisting"
	StateDone              PlayerState = "done"
	StateFailed            PlayerState = "failed"
)

type playerJob struct {
	ID         int64
	Letter     string
	ProfileURL string
}

// PlayerOutcome reports how far one player's pipeline got.
type PlayerOutcome struct {
	PlayerID int64
	Name     string
	// State is StateDone on success, otherwise the step that failed.
	State PlayerState
	Games int
	Err   error
}

// playerPipeline runs fetch, extract and persist for one player using a single fetch session.
type playerPipeline struct {
	fetcher  PageFetcher
	parser   PageParser
	profiles player.Repository
	games    gamelog.Repository

	state PlayerState
}

func (p *playerPipeline) run(ctx context.Context, job playerJob) PlayerOutcome {
	out := PlayerOutcome{PlayerID: job.ID}

	profile, seasons, err := p.loadProfile(ctx, job)
	if err != nil {
		out.State, out.Err = p.state, err
		return out
	}
	out.Name = profile.Name

	games, err := p.loadGames(ctx, job, seasons)
	if err != nil {
		out.State, out.Err = p.state, err
		return out
	}

	p.state = StatePersisting
	if err := p.persist(ctx, profile, games); err != nil {
		out.State, out.Err = p.state, err
		return out
	}

	p.state = StateDone
	out.State = StateDone
	out.Games = len(games)
	return out
}

// persist writes the profile last so a player only becomes visible to the
// condenser once both artifacts exist.
func (p *playerPipeline) persist(ctx context.Context, profile player.Profile, games []gamelog.GameStat) error {
	if err := p.games.Save(ctx, profile.PlayerID, profile.Name, games); err != nil {
		return err
	}
	if err := p.profiles.Save(ctx, profile); err != nil {
		if delErr := p.games.Delete(context.WithoutCancel(ctx), profile.PlayerID, profile.Name); delErr != nil {
			err = errors.CombineErrors(err, delErr)
		}
		return err
	}
	return nil
}

func (p *playerPipeline) loadProfile(ctx context.Context, job playerJob) (player.Profile, []player.SeasonRef, error) {
	p.state = StateFetchingProfile
	page, err := p.fetcher.Fetch(ctx, job.ProfileURL)
	if err != nil {
		return player.Profile{}, nil, err
	}

	p.state = StateExtractingProfile
	profile, err := p.parser.Profile(page, job.ID)
	if err != nil {
		return player.Profile{}, nil, err
	}
	seasons, err := p.parser.SeasonIndex(page)
	if err != nil {
		return player.Profile{}, nil, err
	}
	return profile, seasons, nil
}

func (p *playerPipeline) loadGames(ctx context.Context, job playerJob, seasons []player.SeasonRef) ([]gamelog.GameStat, error) {
	var games []gamelog.GameStat
	for _, ref := range seasons {
		if ref.IsMarker() {
			continue
		}

		p.state = StateFetchingSeasons
		year, err := ref.Year()
		if err != nil {
			return nil, errors.Wrapf(err, "season index of player %d", job.ID)
		}
		url := ref.URL
		if url == "" {
			url = p.parser.GameLogURL(job.ProfileURL, year)
		}
		page, err := p.fetcher.Fetch(ctx, url)
		if err != nil {
			return nil, err
		}

		p.state = StateExtractingGames
		season, ok, err := p.parser.GameLog(page, job.ID, year)
		if err != nil {
			return nil, errors.Wrapf(err, "season %d", year)
		}
		if !ok {
			continue
		}
		games = append(games, season...)
	}
	return gamelog.Dedupe(games), nil
}
