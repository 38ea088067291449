package gamelog

import "context"

// Repository describes per-player game log persistence needs from use cases.
type Repository interface {
	Save(ctx context.Context, playerID int64, playerName string, games []GameStat) error
	ListAll(ctx context.Context) ([]PlayerGames, error)
	Delete(ctx context.Context, playerID int64, playerName string) error
}
