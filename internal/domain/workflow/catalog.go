package workflow

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"
)

// Catalog is an immutable snapshot of the workflow definitions and their
// steps. It is validated once at construction; selection and step lookups
// are pure reads after that.
type Catalog struct {
	defs      []Definition
	defByID   map[uint64]Definition
	stepsByWF map[uint64][]Step
	stepByID  map[uint64]Step
}

// NewCatalog validates the loaded rows and builds a snapshot.
// Violations are reported as ErrConfiguration so that misconfiguration
// fails at load, not at first use.
func NewCatalog(defs []Definition, steps []Step) (*Catalog, error) {
	c := &Catalog{
		defs:      defs,
		defByID:   make(map[uint64]Definition, len(defs)),
		stepsByWF: make(map[uint64][]Step),
		stepByID:  make(map[uint64]Step, len(steps)),
	}
	for _, d := range defs {
		c.defByID[d.ID] = d
	}
	for _, s := range steps {
		if _, ok := c.defByID[s.WorkflowID]; !ok {
			return nil, fmt.Errorf("%w: step %d references unknown workflow %d", ErrConfiguration, s.ID, s.WorkflowID)
		}
		if s.ApproversRequired < 1 {
			return nil, fmt.Errorf("%w: step %d requires %d approvers", ErrConfiguration, s.ID, s.ApproversRequired)
		}
		c.stepsByWF[s.WorkflowID] = append(c.stepsByWF[s.WorkflowID], s)
		c.stepByID[s.ID] = s
	}
	for wfID, ss := range c.stepsByWF {
		sort.Slice(ss, func(i, j int) bool { return ss[i].StepOrder < ss[j].StepOrder })
		for i, s := range ss {
			if s.StepOrder != i+1 {
				return nil, fmt.Errorf("%w: workflow %d step orders are not contiguous from 1", ErrConfiguration, wfID)
			}
		}
	}

	defaults := map[EntityType]uint64{}
	for _, d := range defs {
		if !d.IsActive || !d.IsDefault {
			continue
		}
		if prev, ok := defaults[d.EntityType]; ok {
			return nil, fmt.Errorf("%w: workflows %d and %d are both default for %q", ErrConfiguration, prev, d.ID, d.EntityType)
		}
		defaults[d.EntityType] = d.ID
	}
	for i := 0; i < len(defs); i++ {
		for j := i + 1; j < len(defs); j++ {
			a, b := defs[i], defs[j]
			if a.EntityType != b.EntityType || !a.IsActive || !b.IsActive || a.IsDefault || b.IsDefault {
				continue
			}
			if bandsOverlap(a, b) {
				return nil, fmt.Errorf("%w: workflows %d and %d have overlapping amount bands", ErrConfiguration, a.ID, b.ID)
			}
		}
	}
	return c, nil
}

func bandsOverlap(a, b Definition) bool {
	if a.MinAmount != nil && b.MaxAmount != nil && *a.MinAmount > *b.MaxAmount {
		return false
	}
	if b.MinAmount != nil && a.MaxAmount != nil && *b.MinAmount > *a.MaxAmount {
		return false
	}
	return true
}

// Select maps a requested amount to exactly one workflow. Zero band
// matches fall back to the entity type's default; an ambiguous match or a
// missing default is ErrConfiguration.
func (c *Catalog) Select(entityType EntityType, amount float64) (Definition, error) {
	var matches []Definition
	var fallback *Definition
	for _, d := range c.defs {
		if d.EntityType != entityType || !d.IsActive {
			continue
		}
		if d.IsDefault {
			d := d
			fallback = &d
		}
		if d.contains(amount) {
			matches = append(matches, d)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		if fallback != nil {
			return *fallback, nil
		}
		return Definition{}, fmt.Errorf("%w: no %q workflow band matches amount %.2f and no default exists", ErrConfiguration, entityType, amount)
	default:
		return Definition{}, fmt.Errorf("%w: %d %q workflow bands match amount %.2f", ErrConfiguration, len(matches), entityType, amount)
	}
}

// Steps returns the ordered steps of a workflow.
func (c *Catalog) Steps(workflowID uint64) []Step { return c.stepsByWF[workflowID] }

func (c *Catalog) Definition(id uint64) (Definition, bool) {
	d, ok := c.defByID[id]
	return d, ok
}

func (c *Catalog) StepByID(id uint64) (Step, bool) {
	s, ok := c.stepByID[id]
	return s, ok
}

// FirstStep returns the step with order 1, or ErrNoSteps.
func (c *Catalog) FirstStep(workflowID uint64) (Step, error) {
	ss := c.stepsByWF[workflowID]
	if len(ss) == 0 {
		return Step{}, ErrNoSteps
	}
	return ss[0], nil
}

// NextStep returns the step following currentOrder, if any.
func (c *Catalog) NextStep(workflowID uint64, currentOrder int) (Step, bool) {
	for _, s := range c.stepsByWF[workflowID] {
		if s.StepOrder == currentOrder+1 {
			return s, true
		}
	}
	return Step{}, false
}

// Holder keeps the current catalog snapshot. Admin-triggered reloads swap
// the snapshot; in-flight operations keep the one they started with.
type Holder struct{ v atomic.Pointer[Catalog] }

func NewHolder(c *Catalog) *Holder {
	h := &Holder{}
	h.v.Store(c)
	return h
}

func (h *Holder) Current() *Catalog  { return h.v.Load() }
func (h *Holder) Replace(c *Catalog) { h.v.Store(c) }

// Load reads all definitions and steps through the repository and builds a
// validated snapshot.
func Load(ctx context.Context, repo Repository) (*Catalog, error) {
	defs, err := repo.Definitions(ctx)
	if err != nil {
		return nil, err
	}
	steps, err := repo.Steps(ctx)
	if err != nil {
		return nil, err
	}
	return NewCatalog(defs, steps)
}
