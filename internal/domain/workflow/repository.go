package workflow

import "context"

type Repository interface {
	Definitions(ctx context.Context) ([]Definition, error)
	Steps(ctx context.Context) ([]Step, error)
}
