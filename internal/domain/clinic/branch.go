package clinic

import (
	"github.com/vetcare/backend/internal/domain/shared"
)

// Branch represents a clinic location. Branches are reference data:
// other entities point at them, nothing in this engine creates or edits them.
type Branch struct {
	shared.BaseEntity
	Name    string
	Address string
	Phone   string
}
