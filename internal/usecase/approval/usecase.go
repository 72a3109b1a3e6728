// Package approval drives a loan through its assigned workflow: role-gated
// votes, per-step quorum, step advance, and the terminal reject path.
package approval

import (
	"context"
	"fmt"
	"time"

	domainApproval "sacco-backend/internal/domain/approval"
	"sacco-backend/internal/domain/authz"
	domainLoan "sacco-backend/internal/domain/loan"
	"sacco-backend/internal/domain/uow"
	"sacco-backend/internal/domain/workflow"
)

// AssignWorkflow selects a workflow for the loan's amount and points the
// loan at its first step. Must be called at most once per loan.
func AssignWorkflow(l *domainLoan.Loan, cat *workflow.Catalog) error {
	if l.WorkflowID != nil {
		return domainLoan.ErrAlreadyAssigned
	}
	def, err := cat.Select(workflow.EntityLoan, l.RequestedAmount)
	if err != nil {
		return err
	}
	first, err := cat.FirstStep(def.ID)
	if err != nil {
		return fmt.Errorf("workflow %d: %w", def.ID, err)
	}
	wfID, stepID := def.ID, first.ID
	l.WorkflowID = &wfID
	l.CurrentStepID = &stepID
	l.Status = domainLoan.StatusPendingApproval
	l.StatusUpdatedAt = time.Now().UTC()
	return nil
}

type Usecase struct {
	uow     uow.UnitOfWork
	roles   authz.RoleChecker
	catalog *workflow.Holder
}

func NewUsecase(tx uow.UnitOfWork, roles authz.RoleChecker, catalog *workflow.Holder) *Usecase {
	return &Usecase{uow: tx, roles: roles, catalog: catalog}
}

type DecideInput struct {
	LoanID   string
	ActorID  uint64
	Decision domainApproval.Decision
	Comments string
}

type DecideResult struct {
	LoanID            string            `json:"loan_id"`
	Status            domainLoan.Status `json:"status"`
	StepName          string            `json:"step_name,omitempty"`
	ApprovalsCount    int64             `json:"approvals_count"`
	ApproversRequired int               `json:"approvers_required"`
	Message           string            `json:"message"`
}

// Decide records one vote. The whole read-count-advance sequence runs
// under a row lock on the loan so racing approvers serialize and quorum
// cannot be double-counted or double-advanced.
func (u *Usecase) Decide(ctx context.Context, in DecideInput) (*DecideResult, error) {
	if in.Decision != domainApproval.DecisionApproved && in.Decision != domainApproval.DecisionRejected {
		return nil, domainApproval.ErrInvalidDecision
	}

	var out *DecideResult
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domainLoan.Loan) error {
		if l.Status != domainLoan.StatusPendingApproval {
			return domainLoan.ErrInvalidStatus
		}
		if l.WorkflowID == nil || l.CurrentStepID == nil {
			return domainLoan.ErrNoWorkflow
		}
		if l.BorrowerID == in.ActorID {
			return domainApproval.ErrSelfApproval
		}

		cat := u.catalog.Current()
		step, ok := cat.StepByID(*l.CurrentStepID)
		if !ok {
			return fmt.Errorf("%w: loan %s points at unknown step %d", workflow.ErrConfiguration, l.LoanID, *l.CurrentStepID)
		}
		hasRole, err := u.roles.ActorHasRole(ctx, in.ActorID, step.RoleID)
		if err != nil {
			return err
		}
		if !hasRole {
			return domainApproval.ErrUnauthorizedRole
		}
		voted, err := r.Approvals.HasVoted(ctx, in.ActorID, l.ID, step.ID)
		if err != nil {
			return err
		}
		if voted {
			return domainApproval.ErrDuplicateApproval
		}

		act := &domainApproval.Action{
			EntityType: string(workflow.EntityLoan),
			LoanID:     l.ID,
			WorkflowID: *l.WorkflowID,
			StepID:     step.ID,
			ApproverID: in.ActorID,
			Decision:   in.Decision,
			Comments:   in.Comments,
		}
		if err := r.Approvals.Create(ctx, act); err != nil {
			return err
		}

		if in.Decision == domainApproval.DecisionRejected {
			l.Status = domainLoan.StatusRejected
			l.StatusUpdatedAt = time.Now().UTC()
			if err := r.Guarantees.ReleaseByLoan(ctx, l.ID); err != nil {
				return err
			}
			if err := r.Loans.Save(ctx, l); err != nil {
				return err
			}
			out = &DecideResult{LoanID: l.LoanID, Status: l.Status, Message: "loan rejected, guarantor shares released"}
			return nil
		}

		count, err := r.Approvals.CountApprovals(ctx, l.ID, step.ID)
		if err != nil {
			return err
		}
		if count < int64(step.ApproversRequired) {
			out = &DecideResult{
				LoanID:            l.LoanID,
				Status:            l.Status,
				StepName:          step.StepName,
				ApprovalsCount:    count,
				ApproversRequired: step.ApproversRequired,
				Message:           fmt.Sprintf("approval recorded, %d more needed for this step", int64(step.ApproversRequired)-count),
			}
			return nil
		}

		if next, ok := cat.NextStep(step.WorkflowID, step.StepOrder); ok {
			nextID := next.ID
			l.CurrentStepID = &nextID
			l.StatusUpdatedAt = time.Now().UTC()
			if err := r.Loans.Save(ctx, l); err != nil {
				return err
			}
			out = &DecideResult{
				LoanID:            l.LoanID,
				Status:            l.Status,
				StepName:          next.StepName,
				ApprovalsCount:    count,
				ApproversRequired: step.ApproversRequired,
				Message:           "step complete, moving to " + next.StepName,
			}
			return nil
		}

		// Final step satisfied. The step pointer stays on the last step as
		// a historical marker.
		l.Status = domainLoan.StatusActive
		l.StatusUpdatedAt = time.Now().UTC()
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		out = &DecideResult{
			LoanID:            l.LoanID,
			Status:            l.Status,
			StepName:          step.StepName,
			ApprovalsCount:    count,
			ApproversRequired: step.ApproversRequired,
			Message:           "all approvals complete, loan is active",
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
