package workflow

import (
	"errors"
	"testing"
)

func f(v float64) *float64 { return &v }

// Three bands as seeded in production: Small, Medium (default), Large.
func seedDefs() []Definition {
	return []Definition{
		{ID: 1, Name: "Small Loan Approval", EntityType: EntityLoan, MinAmount: f(0), MaxAmount: f(49999.99), IsActive: true},
		{ID: 2, Name: "Medium Loan Approval", EntityType: EntityLoan, MinAmount: f(50000), MaxAmount: f(200000), IsDefault: true, IsActive: true},
		{ID: 3, Name: "Large Loan Approval", EntityType: EntityLoan, MinAmount: f(200000.01), IsActive: true},
	}
}

func seedSteps() []Step {
	return []Step{
		{ID: 11, WorkflowID: 1, StepOrder: 1, StepName: "Risk Review", RoleID: 100, ApproversRequired: 1},
		{ID: 21, WorkflowID: 2, StepOrder: 1, StepName: "Risk Review", RoleID: 100, ApproversRequired: 1},
		{ID: 22, WorkflowID: 2, StepOrder: 2, StepName: "Finance Review", RoleID: 200, ApproversRequired: 1},
		{ID: 31, WorkflowID: 3, StepOrder: 1, StepName: "Risk Review", RoleID: 100, ApproversRequired: 1},
		{ID: 32, WorkflowID: 3, StepOrder: 2, StepName: "Finance Review", RoleID: 200, ApproversRequired: 2},
		{ID: 33, WorkflowID: 3, StepOrder: 3, StepName: "Board Approval", RoleID: 300, ApproversRequired: 1},
	}
}

func mustCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog(seedDefs(), seedSteps())
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return c
}

func TestSelectBandCoverage(t *testing.T) {
	c := mustCatalog(t)

	tests := []struct {
		name   string
		amount float64
		wantID uint64
	}{
		{"inside small band", 10000, 1},
		{"small band upper edge", 49999.99, 1},
		{"medium band lower edge", 50000, 2},
		{"inside medium band", 75000, 2},
		{"medium band upper edge", 200000, 2},
		{"inside large band", 500000, 3},
		{"gap falls back to default", 49999.995, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := c.Select(EntityLoan, tt.amount)
			if err != nil {
				t.Fatalf("Select(%v): %v", tt.amount, err)
			}
			if d.ID != tt.wantID {
				t.Fatalf("Select(%v) = workflow %d, want %d", tt.amount, d.ID, tt.wantID)
			}
		})
	}
}

func TestSelectNoDefaultNoMatch(t *testing.T) {
	defs := seedDefs()
	defs[1].IsDefault = false
	c, err := NewCatalog(defs, seedSteps())
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	if _, err := c.Select(EntityLoan, 49999.995); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("want ErrConfiguration, got %v", err)
	}
}

func TestSelectAmbiguousBands(t *testing.T) {
	defs := seedDefs()
	// Widen Large downward so it collides with Medium. Medium is the
	// default, so load-time overlap validation does not see the pair; the
	// selector still must refuse to guess.
	defs[2].MinAmount = f(150000)
	c, err := NewCatalog(defs, seedSteps())
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	if _, err := c.Select(EntityLoan, 180000); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("want ErrConfiguration for ambiguous amount, got %v", err)
	}
}

func TestSelectUnknownEntityType(t *testing.T) {
	c := mustCatalog(t)
	if _, err := c.Select("welfare", 100); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("want ErrConfiguration, got %v", err)
	}
}

func TestNewCatalogValidation(t *testing.T) {
	tests := []struct {
		name  string
		defs  func() []Definition
		steps func() []Step
	}{
		{
			name: "duplicate default",
			defs: func() []Definition {
				d := seedDefs()
				d[0].IsDefault = true
				return d
			},
			steps: seedSteps,
		},
		{
			name: "overlapping non-default bands",
			defs: func() []Definition {
				d := seedDefs()
				d[0].MaxAmount = f(250000)
				return d
			},
			steps: seedSteps,
		},
		{
			name: "non-contiguous step order",
			defs: seedDefs,
			steps: func() []Step {
				s := seedSteps()
				s[2].StepOrder = 3
				return s
			},
		},
		{
			name: "zero approvers required",
			defs: seedDefs,
			steps: func() []Step {
				s := seedSteps()
				s[0].ApproversRequired = 0
				return s
			},
		},
		{
			name: "orphan step",
			defs: seedDefs,
			steps: func() []Step {
				s := seedSteps()
				s[0].WorkflowID = 99
				return s
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewCatalog(tt.defs(), tt.steps()); !errors.Is(err, ErrConfiguration) {
				t.Fatalf("want ErrConfiguration, got %v", err)
			}
		})
	}
}

func TestStepTraversal(t *testing.T) {
	c := mustCatalog(t)

	first, err := c.FirstStep(3)
	if err != nil {
		t.Fatalf("FirstStep: %v", err)
	}
	if first.StepOrder != 1 || first.StepName != "Risk Review" {
		t.Fatalf("unexpected first step: %+v", first)
	}

	next, ok := c.NextStep(3, 1)
	if !ok || next.ID != 32 {
		t.Fatalf("NextStep(3,1) = %+v, %v", next, ok)
	}
	if _, ok := c.NextStep(3, 3); ok {
		t.Fatalf("expected no step after the last")
	}
}

func TestFirstStepEmptyWorkflow(t *testing.T) {
	defs := []Definition{{ID: 7, Name: "Empty", EntityType: EntityLoan, IsDefault: true, IsActive: true}}
	c, err := NewCatalog(defs, nil)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	if _, err := c.FirstStep(7); !errors.Is(err, ErrNoSteps) {
		t.Fatalf("want ErrNoSteps, got %v", err)
	}
}

func TestHolderReplace(t *testing.T) {
	a := mustCatalog(t)
	h := NewHolder(a)
	if h.Current() != a {
		t.Fatalf("holder must return the stored snapshot")
	}
	b := mustCatalog(t)
	h.Replace(b)
	if h.Current() != b {
		t.Fatalf("holder must return the replaced snapshot")
	}
}
