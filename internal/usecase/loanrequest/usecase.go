// Package loanrequest owns the submission flow (coverage gate, pending
// guarantees, workflow assignment) and the guarantor accept/decline path.
package loanrequest

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"sacco-backend/internal/domain/guarantor"
	domainLoan "sacco-backend/internal/domain/loan"
	"sacco-backend/internal/domain/uow"
	"sacco-backend/internal/domain/workflow"
	approvaluc "sacco-backend/internal/usecase/approval"
	"sacco-backend/internal/usecase/coverage"
	"sacco-backend/pkg/id"
)

// MaxRepaymentMonths mirrors the cooperative's six month repayment cap.
const MaxRepaymentMonths = 6

var (
	ErrInvalidAmount = errors.New("requested amount must be positive")
	ErrInvalidTerm   = errors.New("repayment term must be between 1 and 6 months")
	ErrInvalidPledge = errors.New("shares requested must be positive")
)

type Usecase struct {
	uow        uow.UnitOfWork
	loans      domainLoan.Repository
	guarantees guarantor.Repository
	calc       *coverage.Calculator
	catalog    *workflow.Holder
}

func NewUsecase(tx uow.UnitOfWork, loans domainLoan.Repository, guarantees guarantor.Repository, calc *coverage.Calculator, catalog *workflow.Holder) *Usecase {
	return &Usecase{uow: tx, loans: loans, guarantees: guarantees, calc: calc, catalog: catalog}
}

type SubmitInput struct {
	BorrowerID      uint64
	Amount          float64
	RepaymentMonths int
	Guarantors      []coverage.Selection
}

type LoanDTO struct {
	LoanID          string            `json:"loan_id"`
	BorrowerID      uint64            `json:"borrower_id"`
	RequestedAmount float64           `json:"requested_amount"`
	RepaymentMonths int               `json:"repayment_months"`
	Status          domainLoan.Status `json:"status"`
	WorkflowID      *uint64           `json:"workflow_id"`
	CurrentStepID   *uint64           `json:"current_step_id"`
	CreatedAt       time.Time         `json:"created_at"`
}

func toDTO(l *domainLoan.Loan) *LoanDTO {
	return &LoanDTO{
		LoanID:          l.LoanID,
		BorrowerID:      l.BorrowerID,
		RequestedAmount: l.RequestedAmount,
		RepaymentMonths: l.RepaymentMonths,
		Status:          l.Status,
		WorkflowID:      l.WorkflowID,
		CurrentStepID:   l.CurrentStepID,
		CreatedAt:       l.CreatedAt,
	}
}

// Submit validates coverage, creates the loan with its pending guarantee
// rows in one transaction, and assigns a workflow immediately when no
// guarantors are needed. Availability is read through the transaction's
// ledger view so concurrent submissions naming the same guarantor cannot
// both pass on a stale pledge count.
func (u *Usecase) Submit(ctx context.Context, in SubmitInput) (*LoanDTO, error) {
	if in.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if in.RepaymentMonths < 1 || in.RepaymentMonths > MaxRepaymentMonths {
		return nil, ErrInvalidTerm
	}

	now := time.Now().UTC()
	l := &domainLoan.Loan{
		LoanID:           id.NewID32(),
		BorrowerID:       in.BorrowerID,
		RequestedAmount:  in.Amount,
		RepaymentMonths:  in.RepaymentMonths,
		Status:           domainLoan.StatusPendingGuarantors,
		BalanceRemaining: in.Amount,
		StatusUpdatedAt:  now,
	}

	shareValue := u.calc.ShareValue()
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		res, err := u.calc.WithFacts(r.Facts).ValidateSelection(ctx, in.BorrowerID, in.Amount, in.Guarantors)
		if err != nil {
			return err
		}
		if !res.Covered {
			return &coverage.InsufficientCoverageError{
				Requested:     in.Amount,
				TotalCoverage: res.TotalCoverage,
				Shortfall:     res.Shortfall,
			}
		}
		if len(in.Guarantors) == 0 {
			if err := approvaluc.AssignWorkflow(l, u.catalog.Current()); err != nil {
				return err
			}
		}
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		for _, sel := range in.Guarantors {
			g := &guarantor.Guarantee{
				ID:            uuid.NewString(),
				LoanID:        l.ID,
				GuarantorID:   sel.GuarantorID,
				SharesPledged: sel.SharesPledged,
				AmountCovered: float64(sel.SharesPledged) * float64(shareValue),
				Status:        guarantor.StatusPending,
			}
			if err := r.Guarantees.Create(ctx, g); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toDTO(l), nil
}

type LoanDetailDTO struct {
	LoanDTO
	Guarantors []guarantor.Guarantee `json:"guarantors"`
}

// Get returns a loan with its guarantee rows.
func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDetailDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	gs, err := u.guarantees.ByLoan(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	return &LoanDetailDTO{LoanDTO: *toDTO(l), Guarantors: gs}, nil
}

type RespondInput struct {
	RequestID   string
	GuarantorID uint64
	Accept      bool
	// SharesPledged optionally adjusts the pledge on acceptance; zero keeps
	// the requested amount.
	SharesPledged int64
}

type RespondResult struct {
	RequestID string            `json:"request_id"`
	Status    guarantor.Status  `json:"status"`
	Loan      *LoanDTO          `json:"loan,omitempty"`
	Message   string            `json:"message"`
}

// Respond records a guarantor's accept/decline. Availability is re-checked
// inside the transaction so concurrent pledges cannot overspend shares.
// Once no pending requests remain and coverage holds, the loan gets its
// workflow and moves to pending approval.
func (u *Usecase) Respond(ctx context.Context, in RespondInput) (*RespondResult, error) {
	var out *RespondResult
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		g, err := r.Guarantees.FindByID(ctx, in.RequestID)
		if err != nil {
			return err
		}
		if g.GuarantorID != in.GuarantorID {
			return guarantor.ErrNotOwner
		}
		if g.Status != guarantor.StatusPending {
			return guarantor.ErrAlreadyResponded
		}

		now := time.Now().UTC()
		if !in.Accept {
			g.Status = guarantor.StatusDeclined
			g.RespondedAt = &now
			if err := r.Guarantees.Save(ctx, g); err != nil {
				return err
			}
			out = &RespondResult{RequestID: g.ID, Status: g.Status, Message: "guarantor request declined"}

			// A declined guarantor may have been redundant; the remaining
			// accepted pledges can still carry the loan into approval.
			l, short, err := u.settleLoan(ctx, r, g.LoanID)
			if err != nil {
				return err
			}
			switch {
			case l != nil:
				out.Loan = toDTO(l)
				out.Message = "guarantor request declined, remaining coverage sufficient, loan entered approval"
			case short:
				out.Message = "guarantor request declined, coverage now short"
			}
			return nil
		}

		pledge := g.SharesPledged
		if in.SharesPledged > 0 {
			pledge = in.SharesPledged
		}
		own, err := r.Facts.OwnedShares(ctx, g.GuarantorID)
		if err != nil {
			return err
		}
		pledgedElsewhere, err := r.Facts.PledgedShares(ctx, g.GuarantorID, g.LoanID)
		if err != nil {
			return err
		}
		available := own - pledgedElsewhere
		if pledge > available {
			return &coverage.OverPledgeError{GuarantorID: g.GuarantorID, Available: available, Requested: pledge}
		}

		g.SharesPledged = pledge
		g.AmountCovered = float64(pledge) * float64(u.calc.ShareValue())
		g.Status = guarantor.StatusAccepted
		g.RespondedAt = &now
		if err := r.Guarantees.Save(ctx, g); err != nil {
			return err
		}
		out = &RespondResult{RequestID: g.ID, Status: g.Status, Message: "guarantor request accepted"}

		l, short, err := u.settleLoan(ctx, r, g.LoanID)
		if err != nil {
			return err
		}
		switch {
		case l != nil:
			out.Loan = toDTO(l)
			out.Message = "all guarantors accepted, loan entered approval"
		case short:
			out.Message = "guarantor request accepted, coverage still short"
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// settleLoan re-evaluates a loan after a guarantor response lands. When no
// pending requests remain and accepted coverage plus the borrower's own
// shares meet the amount, the workflow is assigned and the updated loan is
// returned. stillShort reports that everyone answered but coverage is
// missing, which waits on a replacement guarantor via AddGuarantor.
func (u *Usecase) settleLoan(ctx context.Context, r uow.Repos, loanID uint64) (l *domainLoan.Loan, stillShort bool, err error) {
	pending, err := r.Guarantees.CountByLoanAndStatus(ctx, loanID, guarantor.StatusPending)
	if err != nil {
		return nil, false, err
	}
	if pending > 0 {
		return nil, false, nil
	}

	l, err = r.Loans.GetByIDForUpdate(ctx, loanID)
	if err != nil {
		return nil, false, err
	}
	if l.Status != domainLoan.StatusPendingGuarantors {
		return nil, false, nil
	}
	accepted, err := r.Guarantees.AcceptedShares(ctx, l.ID)
	if err != nil {
		return nil, false, err
	}
	own, err := r.Facts.OwnedShares(ctx, l.BorrowerID)
	if err != nil {
		return nil, false, err
	}
	borrowerPledged, err := r.Facts.PledgedShares(ctx, l.BorrowerID, 0)
	if err != nil {
		return nil, false, err
	}
	self := own - borrowerPledged
	if self < 0 {
		self = 0
	}
	total := float64(self+accepted) * float64(u.calc.ShareValue())
	if total < l.RequestedAmount {
		return nil, true, nil
	}

	if err := approvaluc.AssignWorkflow(l, u.catalog.Current()); err != nil {
		return nil, false, err
	}
	if err := r.Loans.Save(ctx, l); err != nil {
		return nil, false, err
	}
	return l, false, nil
}

type AddGuarantorInput struct {
	LoanID      string
	BorrowerID  uint64
	GuarantorID uint64
	Shares      int64
}

// AddGuarantor lets the borrower request one more guarantor on a loan that
// is still collecting pledges, typically to replace one who declined.
func (u *Usecase) AddGuarantor(ctx context.Context, in AddGuarantorInput) (*guarantor.Guarantee, error) {
	if in.Shares <= 0 {
		return nil, ErrInvalidPledge
	}
	if in.GuarantorID == in.BorrowerID {
		return nil, guarantor.ErrSelfGuarantee
	}

	var out *guarantor.Guarantee
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByLoanIDForUpdate(ctx, in.LoanID)
		if err != nil {
			return err
		}
		if l.BorrowerID != in.BorrowerID {
			return domainLoan.ErrNotOwner
		}
		if l.Status != domainLoan.StatusPendingGuarantors {
			return domainLoan.ErrInvalidStatus
		}

		existing, err := r.Guarantees.ByLoan(ctx, l.ID)
		if err != nil {
			return err
		}
		for _, g := range existing {
			if g.GuarantorID == in.GuarantorID &&
				(g.Status == guarantor.StatusPending || g.Status == guarantor.StatusAccepted) {
				return guarantor.ErrDuplicateRequest
			}
		}

		own, err := r.Facts.OwnedShares(ctx, in.GuarantorID)
		if err != nil {
			return err
		}
		pledged, err := r.Facts.PledgedShares(ctx, in.GuarantorID, 0)
		if err != nil {
			return err
		}
		available := own - pledged
		if in.Shares > available {
			return &coverage.OverPledgeError{GuarantorID: in.GuarantorID, Available: available, Requested: in.Shares}
		}

		g := &guarantor.Guarantee{
			ID:            uuid.NewString(),
			LoanID:        l.ID,
			GuarantorID:   in.GuarantorID,
			SharesPledged: in.Shares,
			AmountCovered: float64(in.Shares) * float64(u.calc.ShareValue()),
			Status:        guarantor.StatusPending,
		}
		if err := r.Guarantees.Create(ctx, g); err != nil {
			return err
		}
		out = g
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
