package models

import (
	"time"

	"github.com/google/uuid"
)

type Team struct {
	Base
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	CreatorID   uuid.UUID `gorm:"type:uuid;not null;index" json:"creatorId"`
	ShareID     string    `gorm:"size:12;uniqueIndex;not null" json:"shareId"`

	// Relationships
	Creator *User        `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Members []TeamMember `gorm:"foreignKey:TeamID" json:"members,omitempty"`
}

func (Team) TableName() string {
	return "teams"
}

// TeamMember is one row of a team's member set. The composite key makes joins idempotent.
type TeamMember struct {
	TeamID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"teamId"`
	UserID   uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"userId"`
	JoinedAt time.Time `gorm:"not null" json:"joinedAt"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (TeamMember) TableName() string {
	return "team_members"
}
