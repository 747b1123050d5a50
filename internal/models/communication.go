package models

import "time"

const (
	MessageTypeSMS      = "sms"
	MessageTypeWhatsApp = "whatsapp"

	RecipientGroupAll    = "all_contacts"
	RecipientGroupTagged = "tagged"
	RecipientGroupCustom = "custom"

	// A communication is sendable only while draft. It ends up sent even
	// when every delivery failed; the counts carry the outcome.
	CommunicationStatusDraft = "draft"
	CommunicationStatusSent  = "sent"
)

type Communication struct {
	ID             int        `json:"id"`
	MessageType    string     `json:"message_type"`
	RecipientGroup string     `json:"recipient_group"`
	Subject        string     `json:"subject"`
	Message        string     `json:"message"`
	ScheduledAt    *time.Time `json:"scheduled_at"`
	SentAt         *time.Time `json:"sent_at"`
	Status         string     `json:"status"`
	SentCount      int        `json:"sent_count"`
	FailedCount    int        `json:"failed_count"`
	CreatedBy      *int       `json:"created_by"`
	CreatedAt      time.Time  `json:"created_at"`
}

type CommunicationRepository interface {
	Save(communication *Communication) error
	GetByID(id int) (*Communication, error)
	// GetAll returns communications newest first, optionally filtered by
	// creator.
	GetAll(createdBy int) ([]*Communication, error)
	TotalSent() (int, error)
	TotalFailed() (int, error)
	CountByType() (map[string]int, error)
	Update(communication *Communication) error
	Delete(id int) error
}
