package authzmock

import (
	"context"

	"sacco-backend/internal/domain/authz"
)

var _ authz.RoleChecker = (*Checker)(nil)

// Checker grants roles from a static actor→role map, or defers to the
// function when set.
type Checker struct {
	RolesByActor   map[uint64]uint64
	ActorHasRoleFn func(ctx context.Context, actorID, roleID uint64) (bool, error)
}

func (m *Checker) ActorHasRole(ctx context.Context, actorID, roleID uint64) (bool, error) {
	if m.ActorHasRoleFn != nil {
		return m.ActorHasRoleFn(ctx, actorID, roleID)
	}
	return m.RolesByActor[actorID] == roleID, nil
}
