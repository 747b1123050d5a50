package models

import "time"

const (
	ContactStatusActive   = "active"
	ContactStatusInactive = "inactive"
)

type Contact struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone"`
	Status         string    `json:"status"`
	Tags           []string  `json:"tags"`
	OptOutSMS      bool      `json:"opt_out_sms"`
	OptOutWhatsApp bool      `json:"opt_out_whatsapp"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// DisplayName falls back to the phone number for contacts imported without
// a name.
func (c *Contact) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Phone
}

// HasAnyTag reports whether the contact's tag set intersects the given tags.
// One shared tag is enough.
func (c *Contact) HasAnyTag(tags []string) bool {
	for _, want := range tags {
		for _, have := range c.Tags {
			if want == have {
				return true
			}
		}
	}
	return false
}

type ContactFilter struct {
	Skip   int
	Limit  int
	Search string
	Status string
}

type ContactRepository interface {
	Save(contact *Contact) error
	GetByID(id int) (*Contact, error)
	GetByPhone(phone string) (*Contact, error)
	GetAll(filter ContactFilter) ([]*Contact, error)
	GetByStatus(status string) ([]*Contact, error)
	Count() (int, error)
	Update(contact *Contact) error
	Delete(id int) error
}
