package models

import "time"

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=super_admin secretary it_admin"`
	IsActive *bool  `json:"is_active"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type ContactCreateRequest struct {
	Name           string   `json:"name"`
	Phone          string   `json:"phone" validate:"required"`
	Status         string   `json:"status" validate:"omitempty,oneof=active inactive"`
	Tags           []string `json:"tags"`
	OptOutSMS      bool     `json:"opt_out_sms"`
	OptOutWhatsApp bool     `json:"opt_out_whatsapp"`
}

// ContactUpdateRequest uses pointers so absent fields are left untouched.
type ContactUpdateRequest struct {
	Name           *string   `json:"name"`
	Phone          *string   `json:"phone"`
	Status         *string   `json:"status" validate:"omitempty,oneof=active inactive"`
	Tags           *[]string `json:"tags"`
	OptOutSMS      *bool     `json:"opt_out_sms"`
	OptOutWhatsApp *bool     `json:"opt_out_whatsapp"`
}

type ContactImportRequest struct {
	Contacts []ContactCreateRequest `json:"contacts" validate:"required,min=1,dive"`
}

type AttendanceRecordRequest struct {
	ContactID   int       `json:"contact_id" validate:"required"`
	Phone       string    `json:"phone"`
	ServiceType string    `json:"service_type" validate:"required"`
	ServiceDate time.Time `json:"service_date" validate:"required"`
	RecordedBy  *int      `json:"recorded_by"`
}

type ScenarioCreateRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	FilterTags  []string `json:"filter_tags" validate:"required,min=1"`
	CreatedBy   *int     `json:"created_by"`
}

type CompleteTaskRequest struct {
	CompletedBy int `json:"completed_by" validate:"required"`
}

type CommunicationCreateRequest struct {
	MessageType    string     `json:"message_type" validate:"required,oneof=sms whatsapp"`
	RecipientGroup string     `json:"recipient_group" validate:"required,oneof=all_contacts tagged custom"`
	Subject        string     `json:"subject"`
	Message        string     `json:"message" validate:"required"`
	ScheduledAt    *time.Time `json:"scheduled_at"`
}

type CommunicationUpdateRequest struct {
	Subject     *string    `json:"subject"`
	Message     *string    `json:"message"`
	ScheduledAt *time.Time `json:"scheduled_at"`
}

// SendRequest carries the optional per-send parameters: a provider override
// and, for the tagged recipient group, the tag filter.
type SendRequest struct {
	Provider string   `json:"provider"`
	Tags     []string `json:"tags"`
}

type BulkSMSRequest struct {
	CommunicationID int      `json:"communication_id" validate:"required"`
	PhoneNumbers    []string `json:"phone_numbers"`
	Provider        string   `json:"provider"`
}
