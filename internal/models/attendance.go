package models

import "time"

const (
	ServiceSunday  = "Sunday Service"
	ServiceTuesday = "Tuesday Service"
	ServiceSpecial = "Special Event"
)

// ValidServiceType reports whether the given service type is one of the
// known categories.
func ValidServiceType(serviceType string) bool {
	switch serviceType {
	case ServiceSunday, ServiceTuesday, ServiceSpecial:
		return true
	}
	return false
}

type Attendance struct {
	ID          int       `json:"id"`
	ContactID   int       `json:"contact_id"`
	Phone       string    `json:"phone"`
	ServiceType string    `json:"service_type"`
	ServiceDate time.Time `json:"service_date"`
	RecordedBy  *int      `json:"recorded_by"`
	RecordedAt  time.Time `json:"recorded_at"`
}

type AttendanceFilter struct {
	DateFrom    *time.Time
	DateTo      *time.Time
	ServiceType string
	ContactID   int
}

type AttendanceRepository interface {
	Save(attendance *Attendance) error
	GetByID(id int) (*Attendance, error)
	// Exists checks for a record with the same contact, service type and
	// calendar day. Pre-insert duplicate guard, not atomic with Save.
	Exists(contactID int, serviceType string, day time.Time) (bool, error)
	GetAll(filter AttendanceFilter) ([]*Attendance, error)
	GetByContact(contactID int) ([]*Attendance, error)
	CountByServiceType(dateFrom, dateTo *time.Time) (int, map[string]int, error)
	Delete(id int) error
}
