package player

import "context"

// Repository describes per-player profile persistence needs from use cases.
type Repository interface {
	Save(ctx context.Context, profile Profile) error
	List(ctx context.Context) ([]Profile, error)
}
