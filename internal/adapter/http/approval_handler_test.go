package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	domainApproval "sacco-backend/internal/domain/approval"
	domainLoan "sacco-backend/internal/domain/loan"
	approvaluc "sacco-backend/internal/usecase/approval"

	"github.com/labstack/echo/v4"
)

type stubDecider struct {
	decideFn func(ctx context.Context, in approvaluc.DecideInput) (*approvaluc.DecideResult, error)
}

func (s *stubDecider) Decide(ctx context.Context, in approvaluc.DecideInput) (*approvaluc.DecideResult, error) {
	return s.decideFn(ctx, in)
}

func decideRequest(t *testing.T, h *ApprovalHandler, loanID, actor string, body any) *httptest.ResponseRecorder {
	t.Helper()
	e := newEchoWithValidator()
	req := httptest.NewRequest(stdhttp.MethodPost, "/loans/"+loanID+"/decision", mustJSON(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if actor != "" {
		req.Header.Set("X-User-Id", actor)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("loan_id")
	c.SetParamValues(loanID)
	if err := h.DecideStep(c); err != nil {
		t.Fatalf("DecideStep error: %v", err)
	}
	return rec
}

func TestDecideStep_Success(t *testing.T) {
	loanID := strings.Repeat("l", 32)
	var got approvaluc.DecideInput
	h := NewApprovalHandler(&stubDecider{
		decideFn: func(ctx context.Context, in approvaluc.DecideInput) (*approvaluc.DecideResult, error) {
			got = in
			return &approvaluc.DecideResult{
				LoanID:            in.LoanID,
				Status:            domainLoan.StatusPendingApproval,
				StepName:          "Finance Review",
				ApprovalsCount:    1,
				ApproversRequired: 1,
				Message:           "step complete, moving to Finance Review",
			}, nil
		},
	})

	rec := decideRequest(t, h, loanID, "10", map[string]any{"decision": "approved", "comments": "looks fine"})
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", rec.Code, rec.Body.String())
	}
	if got.LoanID != loanID || got.ActorID != 10 || got.Decision != domainApproval.DecisionApproved || got.Comments != "looks fine" {
		t.Fatalf("unexpected input: %+v", got)
	}
	var res approvaluc.DecideResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if res.StepName != "Finance Review" {
		t.Fatalf("step_name = %q", res.StepName)
	}
}

func TestDecideStep_InvalidDecisionValue(t *testing.T) {
	h := NewApprovalHandler(&stubDecider{}) // won't be called

	rec := decideRequest(t, h, strings.Repeat("l", 32), "10", map[string]any{"decision": "maybe"})
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	var er ErrorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &er)
	if !containsFieldMsg(er.Details, "Decision", "must be one of approved rejected") {
		t.Fatalf("missing oneof detail: %+v", er.Details)
	}
}

func TestDecideStep_MissingActor(t *testing.T) {
	h := NewApprovalHandler(&stubDecider{})

	rec := decideRequest(t, h, strings.Repeat("l", 32), "", map[string]any{"decision": "approved"})
	if rec.Code != stdhttp.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestDecideStep_DomainErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unauthorized role", domainApproval.ErrUnauthorizedRole, stdhttp.StatusForbidden},
		{"self approval", domainApproval.ErrSelfApproval, stdhttp.StatusForbidden},
		{"duplicate vote", domainApproval.ErrDuplicateApproval, stdhttp.StatusConflict},
		{"loan not found", domainLoan.ErrNotFound, stdhttp.StatusNotFound},
		{"not pending approval", domainLoan.ErrInvalidStatus, stdhttp.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewApprovalHandler(&stubDecider{
				decideFn: func(ctx context.Context, in approvaluc.DecideInput) (*approvaluc.DecideResult, error) {
					return nil, tt.err
				},
			})
			rec := decideRequest(t, h, strings.Repeat("l", 32), "10", map[string]any{"decision": "approved"})
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}
