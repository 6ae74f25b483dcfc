package staffing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vetcare/backend/internal/domain/clinic"
	"github.com/vetcare/backend/internal/domain/ledger"
	"github.com/vetcare/backend/internal/domain/shared"
)

// TransferService validates and commits practitioner branch reassignments.
// Each request runs a short state machine: Idle, then Validating while the
// per-employee exclusion is held, ending in Committed or Rejected. At most
// one transfer per employee is in validation at a time; transfers for
// different employees proceed in parallel. Validation never blocks, so the
// exclusion is always released synchronously.
type TransferService struct {
	practitioners clinic.PractitionerRepository
	branches      clinic.BranchRepository
	reader        ledger.Reader
	locks         *keyedMutex
	logger        *zap.Logger
	now           func() time.Time
}

// NewTransferService creates a new TransferService.
func NewTransferService(
	practitioners clinic.PractitionerRepository,
	branches clinic.BranchRepository,
	reader ledger.Reader,
	logger *zap.Logger,
) *TransferService {
	return &TransferService{
		practitioners: practitioners,
		branches:      branches,
		reader:        reader,
		locks:         newKeyedMutex(),
		logger:        logger,
		now:           time.Now,
	}
}

// TransferRequest asks to move one employee to a new branch.
type TransferRequest struct {
	EmployeeID  uuid.UUID `json:"employeeId" binding:"required"`
	NewBranchID uuid.UUID `json:"newBranchId" binding:"required"`
}

// TransferResult reports the outcome of a transfer request. A rejected
// transfer carries the reason and leaves the assignment untouched.
type TransferResult struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	NewBranchID string `json:"newBranchId,omitempty"`
}

func rejected(reason string) *TransferResult {
	return &TransferResult{Success: false, Message: reason}
}

// RequestTransfer runs the transfer state machine for one employee.
// Missing employee or branch ids surface as NotFound errors; a concurrent
// duplicate surfaces as Conflict; business rule violations resolve to a
// rejected result with no mutation.
func (s *TransferService) RequestTransfer(ctx context.Context, req TransferRequest) (*TransferResult, error) {
	if !s.locks.TryLock(req.EmployeeID) {
		return nil, shared.NewDomainError(shared.ErrConflict.Code,
			"transfer already in progress for this employee")
	}
	defer s.locks.Unlock(req.EmployeeID)

	practitioner, err := s.practitioners.FetchPractitioner(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}
	if _, err := s.branches.FetchBranch(ctx, req.NewBranchID); err != nil {
		return nil, err
	}

	if err := practitioner.CanTransferTo(req.NewBranchID); err != nil {
		return rejected(err.Error()), nil
	}

	// a transfer mid-shift is rejected: any visit assigned at the current
	// branch on the current calendar day blocks the move
	scope := ledger.Scope{BranchID: practitioner.BranchID, PractitionerID: practitioner.ID}
	visits, err := s.reader.FetchVisits(ctx, scope, ledger.CalendarDay(s.now()))
	if err != nil {
		return nil, err
	}
	if len(visits) > 0 {
		return rejected("practitioner has visits assigned at the current branch today"), nil
	}

	if err := s.practitioners.CommitPractitionerBranch(ctx, practitioner.ID, req.NewBranchID); err != nil {
		return nil, err
	}

	s.logger.Info("practitioner transferred",
		zap.String("employee_id", req.EmployeeID.String()),
		zap.String("from_branch", practitioner.BranchID.String()),
		zap.String("to_branch", req.NewBranchID.String()))
	return &TransferResult{
		Success:     true,
		Message:     "transfer committed",
		NewBranchID: req.NewBranchID.String(),
	}, nil
}
