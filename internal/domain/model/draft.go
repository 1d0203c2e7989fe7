package model

import (
	"time"

	"github.com/rentaldesk/rental-bff/internal/contractform"
)

// ContractDraft is a contract wizard in progress, kept server side between
// steps. Drafts belong to the identity that created them and expire.
type ContractDraft struct {
	ID        string             `bson:"_id" json:"id"`
	Owner     string             `bson:"owner" json:"-"`
	Step      contractform.Step  `bson:"step" json:"step"`
	State     contractform.State `bson:"state" json:"state"`
	Version   int                `bson:"version" json:"version"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
	ExpiresAt time.Time          `bson:"expires_at" json:"expires_at"`
}

// Expired reports whether the draft is past its expiry. The TTL monitor
// removes expired drafts lazily, so readers check this too.
func (d *ContractDraft) Expired(now time.Time) bool {
	return !d.ExpiresAt.IsZero() && !now.Before(d.ExpiresAt)
}
