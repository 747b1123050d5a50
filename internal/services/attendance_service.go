package services

import (
	"fmt"
	"time"

	"church-admin/internal/models"
	"church-admin/internal/utils"

	"go.uber.org/zap"
)

type AttendanceService struct {
	attendance models.AttendanceRepository
}

func NewAttendanceService(attendance models.AttendanceRepository) *AttendanceService {
	return &AttendanceService{attendance: attendance}
}

// Record appends one attendance fact. At most one record may exist per
// (contact, service type, calendar day); the guard is a pre-insert existence
// check, not a database constraint, so concurrent identical requests can
// race past it.
func (s *AttendanceService) Record(req *models.AttendanceRecordRequest) (*models.Attendance, error) {
	if !models.ValidServiceType(req.ServiceType) {
		return nil, models.NewValidationError(fmt.Sprintf(
			"Invalid service type: '%s'. Must be one of: %s, %s, %s",
			req.ServiceType, models.ServiceSunday, models.ServiceTuesday, models.ServiceSpecial))
	}

	exists, err := s.attendance.Exists(req.ContactID, req.ServiceType, req.ServiceDate)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.NewConflictError(fmt.Sprintf(
			"Attendance already recorded for this contact on %s for %s",
			req.ServiceDate.Format("2006-01-02"), req.ServiceType))
	}

	attendance := &models.Attendance{
		ContactID:   req.ContactID,
		Phone:       req.Phone,
		ServiceType: req.ServiceType,
		ServiceDate: req.ServiceDate,
		RecordedBy:  req.RecordedBy,
	}
	if err := s.attendance.Save(attendance); err != nil {
		return nil, err
	}

	utils.Log.Info("attendance recorded",
		zap.Int("contact_id", req.ContactID),
		zap.String("service_type", req.ServiceType))

	return attendance, nil
}

func (s *AttendanceService) GetRecords(filter models.AttendanceFilter) ([]*models.Attendance, error) {
	return s.attendance.GetAll(filter)
}

func (s *AttendanceService) GetByContact(contactID int) ([]*models.Attendance, error) {
	return s.attendance.GetByContact(contactID)
}

func (s *AttendanceService) GetSummary(dateFrom, dateTo *time.Time) (*models.AttendanceSummary, error) {
	total, byType, err := s.attendance.CountByServiceType(dateFrom, dateTo)
	if err != nil {
		return nil, err
	}
	return &models.AttendanceSummary{
		TotalAttendance: total,
		ByServiceType:   byType,
	}, nil
}

func (s *AttendanceService) Delete(id int) error {
	record, err := s.attendance.GetByID(id)
	if err != nil {
		return err
	}
	if record == nil {
		return models.NewNotFoundError("Attendance record not found")
	}
	return s.attendance.Delete(record.ID)
}
