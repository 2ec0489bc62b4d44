package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationInfo, NotificationSuccess, NotificationWarning, NotificationError:
		return true
	}
	return false
}

// Related entity kinds a notification can point at.
const (
	RelatedProposal = "proposal"
	RelatedTeam     = "team"
	RelatedComment  = "comment"
)

type Notification struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID        `gorm:"type:uuid;not null;index:idx_notifications_user_created" json:"userId"`
	Type        NotificationType `gorm:"not null;default:'info'" json:"type"`
	Title       string           `gorm:"not null" json:"title"`
	Message     string           `gorm:"not null" json:"message"`
	Link        string           `json:"link,omitempty"`
	RelatedID   *uuid.UUID       `gorm:"type:uuid" json:"relatedId,omitempty"`
	RelatedType string           `json:"relatedType,omitempty"`
	Read        bool             `gorm:"not null;default:false" json:"read"`
	CreatedAt   time.Time        `gorm:"index:idx_notifications_user_created" json:"createdAt"`
}

func (Notification) TableName() string {
	return "notifications"
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
