package penalty

import "context"

type Repository interface {
	// Create inserts a penalty; a (user, type, due date) collision is
	// reported as ErrDuplicate.
	Create(ctx context.Context, p *Penalty) error
	FindByID(ctx context.Context, id string) (*Penalty, error)
	ByUser(ctx context.Context, userID uint64) ([]Penalty, error)
	Save(ctx context.Context, p *Penalty) error
}
