package workflowmock

import (
	"context"

	domain "sacco-backend/internal/domain/workflow"
)

var _ domain.Repository = (*Repo)(nil)

// Repo serves static catalog rows, or defers to the functions when set.
type Repo struct {
	Defs  []domain.Definition
	Rows  []domain.Step
	DefsE error
	RowsE error

	DefinitionsFn func(ctx context.Context) ([]domain.Definition, error)
	StepsFn       func(ctx context.Context) ([]domain.Step, error)
}

func (m *Repo) Definitions(ctx context.Context) ([]domain.Definition, error) {
	if m.DefinitionsFn != nil {
		return m.DefinitionsFn(ctx)
	}
	return m.Defs, m.DefsE
}

func (m *Repo) Steps(ctx context.Context) ([]domain.Step, error) {
	if m.StepsFn != nil {
		return m.StepsFn(ctx)
	}
	return m.Rows, m.RowsE
}
