package clinic

import (
	"github.com/google/uuid"

	"github.com/vetcare/backend/internal/domain/shared"
)

// Pet is an animal under care, owned by a customer. Read-only reference
// data used when rendering schedules.
type Pet struct {
	shared.BaseEntity
	Name       string
	Species    string
	Breed      string
	CustomerID uuid.UUID
}
