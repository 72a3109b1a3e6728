package penaltymock

import (
	"context"

	domain "sacco-backend/internal/domain/penalty"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn   func(ctx context.Context, p *domain.Penalty) error
	FindByIDFn func(ctx context.Context, id string) (*domain.Penalty, error)
	ByUserFn   func(ctx context.Context, userID uint64) ([]domain.Penalty, error)
	SaveFn     func(ctx context.Context, p *domain.Penalty) error
}

func (m *Repo) Create(ctx context.Context, p *domain.Penalty) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) FindByID(ctx context.Context, id string) (*domain.Penalty, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) ByUser(ctx context.Context, userID uint64) ([]domain.Penalty, error) {
	if m.ByUserFn != nil {
		return m.ByUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *Repo) Save(ctx context.Context, p *domain.Penalty) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}
