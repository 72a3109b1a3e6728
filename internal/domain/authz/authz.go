// Package authz is the authorization contract consumed by the approval
// state machine. Session and token handling live outside this core.
package authz

import "context"

type RoleChecker interface {
	ActorHasRole(ctx context.Context, actorID, roleID uint64) (bool, error)
}
