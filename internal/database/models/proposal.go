package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Proposal options: at least two, at most five, fixed after creation.
const (
	MinOptions = 2
	MaxOptions = 5
)

type Proposal struct {
	Base
	TeamID      uuid.UUID `gorm:"type:uuid;not null;index" json:"teamId"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	CreatorID   uuid.UUID `gorm:"type:uuid;not null;index" json:"creatorId"`

	// Relationships
	Options []Option `gorm:"foreignKey:ProposalID" json:"options"`
	Creator *User    `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
}

func (Proposal) TableName() string {
	return "proposals"
}

// Option is a voting choice. Position keeps declaration order.
type Option struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProposalID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Position   int       `gorm:"not null" json:"position"`
	Text       string    `gorm:"not null" json:"text"`
}

func (Option) TableName() string {
	return "proposal_options"
}

func (o *Option) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

type Comment struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProposalID uuid.UUID `gorm:"type:uuid;not null;index" json:"proposalId"`
	AuthorID   uuid.UUID `gorm:"type:uuid;not null;index" json:"authorId"`
	Text       string    `gorm:"not null" json:"text"`
	CreatedAt  time.Time `json:"createdAt"`

	Author *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

func (Comment) TableName() string {
	return "comments"
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
