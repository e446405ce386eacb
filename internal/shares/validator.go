// Package shares enforces the stakeholder equity invariant: the shares
// of a project's stakeholders may never sum past 100 percent.
package shares

import (
	"context"
	"errors"
	"fmt"

	"project-tracker/internal/models"
)

// Store provides the current stakeholder rows of one project.
type Store interface {
	StakeholdersByProject(ctx context.Context, projectID uint) ([]models.Stakeholder, error)
}

// ErrShareExceeded rejects a write that would allocate more than 100%
// of a project's equity.
var ErrShareExceeded = errors.New("stakeholder shares exceed 100% of project equity")

type Validator struct {
	store Store
}

func NewValidator(store Store) *Validator {
	return &Validator{store: store}
}

// AvailableShare returns the unallocated percentage for the project,
// in [0, 100]. It is recomputed from current rows on every call and is
// 100 for a project with no stakeholders.
func (v *Validator) AvailableShare(ctx context.Context, projectID uint) (int, error) {
	total, err := v.allocated(ctx, projectID, 0)
	if err != nil {
		return 0, err
	}
	if avail := 100 - total; avail > 0 {
		return avail, nil
	}
	return 0, nil
}

// Check rejects newShare when it would push the project's cumulative
// share past 100. excludeID removes the stakeholder being updated from
// the sum; pass 0 for a create.
//
// Check reads current rows and decides; callers that persist the result
// must run Check and the write inside one store transaction, or two
// concurrent writers can both pass and jointly exceed 100.
func (v *Validator) Check(ctx context.Context, projectID uint, newShare int, excludeID uint) error {
	total, err := v.allocated(ctx, projectID, excludeID)
	if err != nil {
		return err
	}
	if total+newShare > 100 {
		return fmt.Errorf("%w: %d%% requested, %d%% available", ErrShareExceeded, newShare, 100-total)
	}
	return nil
}

func (v *Validator) allocated(ctx context.Context, projectID, excludeID uint) (int, error) {
	stakeholders, err := v.store.StakeholdersByProject(ctx, projectID)
	if err != nil {
		return 0, fmt.Errorf("fetch stakeholders of project %d: %w", projectID, err)
	}

	total := 0
	for _, s := range stakeholders {
		if excludeID != 0 && s.ID == excludeID {
			continue
		}
		total += s.Share
	}
	return total, nil
}
