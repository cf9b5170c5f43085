package favourites

import (
	"time"

	"github.com/google/uuid"
)

// Favourite marks a biodata record as a favourite of a user. The pair
// (UserEmail, BiodataID) is unique; BiodataID references the public sequential
// identifier of the biodata record, not its storage key.
type Favourite struct {
	ID        uuid.UUID `json:"id"`
	UserEmail string    `json:"userEmail"`
	BiodataID int64     `json:"biodataUserBiodataId"`
	CreatedAt time.Time `json:"createdAt"`
}
