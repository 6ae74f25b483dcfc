package clinic

import (
	"errors"

	"github.com/google/uuid"

	"github.com/vetcare/backend/internal/domain/shared"
)

// Practitioner is a clinical employee assigned to exactly one branch.
// The branch assignment is the only field this engine mutates, and only
// through the transfer workflow.
type Practitioner struct {
	shared.BaseEntity
	FullName string
	BranchID uuid.UUID
	IsActive bool
}

// CanTransferTo checks the stateless transfer preconditions. Preconditions
// that need collaborator lookups (target branch existence, same-day visits)
// are checked by the transfer service.
func (p *Practitioner) CanTransferTo(targetBranchID uuid.UUID) error {
	if !p.IsActive {
		return errors.New("practitioner is not active")
	}
	if targetBranchID == uuid.Nil {
		return errors.New("target branch id is required")
	}
	if p.BranchID == targetBranchID {
		return errors.New("practitioner is already assigned to the target branch")
	}
	return nil
}

// AssignBranch moves the practitioner to a new branch. Callers must hold
// the per-practitioner transfer exclusion before calling this.
func (p *Practitioner) AssignBranch(branchID uuid.UUID) {
	p.BranchID = branchID
}
