package mysql

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "sacco-backend/internal/domain/loan"
	"sacco-backend/pkg/id"
)

func makeLoan(loanID string, borrowerID uint64) *domain.Loan {
	return &domain.Loan{
		LoanID:           loanID,
		BorrowerID:       borrowerID,
		RequestedAmount:  75000,
		RepaymentMonths:  6,
		Status:           domain.StatusPendingGuarantors,
		BalanceRemaining: 75000,
	}
}

func TestLoanCreateAndGetByLoanID(t *testing.T) {
	conn := openTestDB(t)
	repo := NewLoanRepository(conn)
	ctx := context.Background()

	loanID := id.NewID32()
	l := makeLoan(loanID, 1)
	require.NoError(t, repo.Create(ctx, l))
	require.NotZero(t, l.ID, "Create must set the auto-increment ID")

	got, err := repo.GetByLoanID(ctx, loanID)
	require.NoError(t, err)
	assert.Equal(t, loanID, got.LoanID)
	assert.Equal(t, uint64(1), got.BorrowerID)
	assert.Equal(t, domain.StatusPendingGuarantors, got.Status)
}

func TestLoanGetByLoanID_NotFound(t *testing.T) {
	conn := openTestDB(t)
	repo := NewLoanRepository(conn)

	_, err := repo.GetByLoanID(context.Background(), id.NewID32())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.GetByID(context.Background(), 9999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLoanSavePersistsStatusAndStep(t *testing.T) {
	conn := openTestDB(t)
	repo := NewLoanRepository(conn)
	ctx := context.Background()

	l := makeLoan(id.NewID32(), 1)
	require.NoError(t, repo.Create(ctx, l))

	wfID, stepID := uint64(2), uint64(21)
	l.WorkflowID = &wfID
	l.CurrentStepID = &stepID
	l.Status = domain.StatusPendingApproval
	require.NoError(t, repo.Save(ctx, l))

	got, err := repo.GetByID(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPendingApproval, got.Status)
	require.NotNil(t, got.WorkflowID)
	assert.Equal(t, uint64(2), *got.WorkflowID)
	require.NotNil(t, got.CurrentStepID)
	assert.Equal(t, uint64(21), *got.CurrentStepID)
}

func TestLoanForUpdateVariants(t *testing.T) {
	conn := openTestDB(t)
	repo := NewLoanRepository(conn)
	ctx := context.Background()

	loanID := id.NewID32()
	l := makeLoan(loanID, 1)
	require.NoError(t, repo.Create(ctx, l))

	got, err := repo.GetByLoanIDForUpdate(ctx, loanID)
	require.NoError(t, err)
	assert.Equal(t, l.ID, got.ID)

	got, err = repo.GetByIDForUpdate(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, loanID, got.LoanID)

	_, err = repo.GetByLoanIDForUpdate(ctx, id.NewID32())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
