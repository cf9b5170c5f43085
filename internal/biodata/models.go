package biodata

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Biodata is a matrimonial profile record. ID is the storage key; BiodataID is
// the public sequential identifier allocated at creation and immutable after.
// Profile carries the caller-supplied document verbatim; its shape is not
// validated.
type Biodata struct {
	ID         uuid.UUID       `json:"id"`
	BiodataID  int64           `json:"biodataId"`
	OwnerEmail string          `json:"ownerEmail"`
	Profile    json.RawMessage `json:"profile"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}
