package models

import (
	"time"

	"github.com/google/uuid"
)

// Vote is a user's single live choice on a proposal. Re-voting overwrites in place.
type Vote struct {
	ProposalID uuid.UUID `gorm:"type:uuid;primaryKey" json:"proposalId"`
	UserID     uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"userId"`
	OptionID   uuid.UUID `gorm:"type:uuid;not null;index" json:"optionId"`
	CastAt     time.Time `gorm:"not null" json:"castAt"`
}

func (Vote) TableName() string {
	return "votes"
}
