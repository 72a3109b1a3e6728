package http

import (
	"errors"
	"net/http"

	"sacco-backend/internal/domain/approval"
	"sacco-backend/internal/domain/guarantor"
	"sacco-backend/internal/domain/loan"
	"sacco-backend/internal/domain/penalty"
	"sacco-backend/internal/domain/workflow"
	"sacco-backend/internal/usecase/coverage"
	"sacco-backend/internal/usecase/loanrequest"
)

// statusFor maps domain errors to HTTP status codes. Unknown errors are
// treated as internal.
func statusFor(err error) int {
	var overPledge *coverage.OverPledgeError
	var insufficient *coverage.InsufficientCoverageError
	switch {
	case errors.Is(err, loan.ErrNotFound),
		errors.Is(err, guarantor.ErrNotFound),
		errors.Is(err, penalty.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, approval.ErrUnauthorizedRole),
		errors.Is(err, approval.ErrSelfApproval),
		errors.Is(err, guarantor.ErrNotOwner),
		errors.Is(err, loan.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, approval.ErrDuplicateApproval),
		errors.Is(err, guarantor.ErrAlreadyResponded),
		errors.Is(err, guarantor.ErrDuplicateRequest),
		errors.Is(err, loan.ErrAlreadyAssigned),
		errors.Is(err, penalty.ErrDuplicate):
		return http.StatusConflict
	case errors.As(err, &overPledge),
		errors.As(err, &insufficient),
		errors.Is(err, loan.ErrInvalidStatus),
		errors.Is(err, loan.ErrNoWorkflow),
		errors.Is(err, approval.ErrInvalidDecision),
		errors.Is(err, penalty.ErrInvalidStatus),
		errors.Is(err, guarantor.ErrSelfGuarantee),
		errors.Is(err, loanrequest.ErrInvalidAmount),
		errors.Is(err, loanrequest.ErrInvalidTerm),
		errors.Is(err, loanrequest.ErrInvalidPledge):
		return http.StatusUnprocessableEntity
	case errors.Is(err, workflow.ErrConfiguration),
		errors.Is(err, workflow.ErrNoSteps):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
