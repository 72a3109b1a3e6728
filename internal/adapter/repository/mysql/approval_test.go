package mysql

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "sacco-backend/internal/domain/approval"
)

func vote(t *testing.T, repo *ApprovalRepository, loanID, stepID, approverID uint64, d domain.Decision) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &domain.Action{
		EntityType: "loan",
		LoanID:     loanID,
		WorkflowID: 2,
		StepID:     stepID,
		ApproverID: approverID,
		Decision:   d,
	}))
}

func TestApprovalCountAndHasVoted(t *testing.T) {
	conn := openTestDB(t)
	repo := NewApprovalRepository(conn)
	ctx := context.Background()

	vote(t, repo, 1, 21, 10, domain.DecisionApproved)
	vote(t, repo, 1, 21, 11, domain.DecisionApproved)
	vote(t, repo, 1, 21, 12, domain.DecisionRejected) // rejections never count toward quorum
	vote(t, repo, 1, 22, 13, domain.DecisionApproved) // different step
	vote(t, repo, 2, 21, 10, domain.DecisionApproved) // different loan

	n, err := repo.CountApprovals(ctx, 1, 21)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	voted, err := repo.HasVoted(ctx, 12, 1, 21)
	require.NoError(t, err)
	assert.True(t, voted, "a rejection still counts as having voted")

	voted, err = repo.HasVoted(ctx, 10, 1, 22)
	require.NoError(t, err)
	assert.False(t, voted)
}

func TestApprovalHistoryByLoan(t *testing.T) {
	conn := openTestDB(t)
	repo := NewApprovalRepository(conn)
	ctx := context.Background()

	vote(t, repo, 1, 21, 10, domain.DecisionApproved)
	vote(t, repo, 1, 22, 20, domain.DecisionApproved)
	vote(t, repo, 2, 21, 10, domain.DecisionApproved)

	hist, err := repo.HistoryByLoan(ctx, 1)
	require.NoError(t, err)
	require.Len(t, hist, 2)
	for _, a := range hist {
		assert.Equal(t, uint64(1), a.LoanID)
	}
}
