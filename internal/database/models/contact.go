package models

type ContactStatus string

const (
	ContactNew       ContactStatus = "new"
	ContactRead      ContactStatus = "read"
	ContactResponded ContactStatus = "responded"
)

func (s ContactStatus) Valid() bool {
	return s == ContactNew || s == ContactRead || s == ContactResponded
}

type ContactMessage struct {
	Base
	Name    string        `gorm:"not null" json:"name"`
	Email   string        `gorm:"not null" json:"email"`
	Subject string        `gorm:"not null" json:"subject"`
	Message string        `gorm:"type:text;not null" json:"message"`
	Status  ContactStatus `gorm:"not null;default:'new'" json:"status"`
}

func (ContactMessage) TableName() string {
	return "contact_messages"
}
