// Package coverage computes how much of a requested loan amount is backed
// by the borrower's own shares plus committed guarantor shares.
package coverage

import (
	"context"
	"fmt"
	"math"

	"sacco-backend/internal/domain/ledger"
)

// Selection is one proposed guarantor and the shares asked of them.
type Selection struct {
	GuarantorID   uint64 `json:"guarantor_id"`
	SharesPledged int64  `json:"shares_requested"`
}

// OverPledgeError names the guarantor whose pledge exceeds their
// available shares.
type OverPledgeError struct {
	GuarantorID uint64
	Available   int64
	Requested   int64
}

func (e *OverPledgeError) Error() string {
	return fmt.Sprintf("guarantor %d has %d shares available, %d requested", e.GuarantorID, e.Available, e.Requested)
}

// InsufficientCoverageError reports the remaining shortfall to the
// submitting member.
type InsufficientCoverageError struct {
	Requested     float64
	TotalCoverage float64
	Shortfall     float64
}

func (e *InsufficientCoverageError) Error() string {
	return fmt.Sprintf("insufficient coverage: requested %.2f, covered %.2f, shortfall %.2f", e.Requested, e.TotalCoverage, e.Shortfall)
}

// RequiredGuarantorShares returns how many guarantor shares are needed on
// top of the borrower's own. Zero when self-coverage suffices.
func RequiredGuarantorShares(requestedAmount float64, ownShares, shareValue int64) int64 {
	maxSelf := float64(ownShares) * float64(shareValue)
	if requestedAmount <= maxSelf {
		return 0
	}
	shortfall := requestedAmount - maxSelf
	return int64(math.Ceil(shortfall / float64(shareValue)))
}

// Result of a selection validation.
type Result struct {
	Covered       bool    `json:"covered"`
	SelfCoverage  float64 `json:"self_coverage"`
	TotalCoverage float64 `json:"total_coverage"`
	Shortfall     float64 `json:"shortfall"`
}

// Calculator validates guarantor selections against the ledger.
type Calculator struct {
	facts      ledger.Facts
	shareValue int64
}

func NewCalculator(facts ledger.Facts, shareValue int64) *Calculator {
	return &Calculator{facts: facts, shareValue: shareValue}
}

func (c *Calculator) ShareValue() int64 { return c.shareValue }

func (c *Calculator) Facts() ledger.Facts { return c.facts }

// WithFacts returns a calculator bound to a different ledger view, used to
// validate against transaction-scoped reads.
func (c *Calculator) WithFacts(facts ledger.Facts) *Calculator {
	return &Calculator{facts: facts, shareValue: c.shareValue}
}

// ValidateSelection checks each pledge against the guarantor's available
// shares and sums total coverage. It only reads; persisting pending
// guarantee rows happens at loan submission.
func (c *Calculator) ValidateSelection(ctx context.Context, borrowerID uint64, requestedAmount float64, selections []Selection) (*Result, error) {
	own, err := c.facts.OwnedShares(ctx, borrowerID)
	if err != nil {
		return nil, err
	}
	pledged, err := c.facts.PledgedShares(ctx, borrowerID, 0)
	if err != nil {
		return nil, err
	}
	available := own - pledged
	if available < 0 {
		available = 0
	}
	self := float64(available) * float64(c.shareValue)

	total := self
	for _, sel := range selections {
		gOwn, err := c.facts.OwnedShares(ctx, sel.GuarantorID)
		if err != nil {
			return nil, err
		}
		gPledged, err := c.facts.PledgedShares(ctx, sel.GuarantorID, 0)
		if err != nil {
			return nil, err
		}
		gAvail := gOwn - gPledged
		if sel.SharesPledged > gAvail {
			return nil, &OverPledgeError{GuarantorID: sel.GuarantorID, Available: gAvail, Requested: sel.SharesPledged}
		}
		total += float64(sel.SharesPledged) * float64(c.shareValue)
	}

	res := &Result{
		Covered:       total >= requestedAmount,
		SelfCoverage:  self,
		TotalCoverage: total,
	}
	if !res.Covered {
		res.Shortfall = requestedAmount - total
	}
	return res, nil
}
