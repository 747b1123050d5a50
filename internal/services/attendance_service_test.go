package services

import (
	"testing"
	"time"

	"church-admin/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAttendance(t *testing.T) {
	service := NewAttendanceService(newFakeAttendanceRepo())

	attendance, err := service.Record(&models.AttendanceRecordRequest{
		ContactID:   1,
		Phone:       "+27821110001",
		ServiceType: models.ServiceSunday,
		ServiceDate: time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.NotZero(t, attendance.ID)
	assert.Equal(t, models.ServiceSunday, attendance.ServiceType)
}

func TestRecordAttendanceRejectsInvalidServiceType(t *testing.T) {
	service := NewAttendanceService(newFakeAttendanceRepo())

	_, err := service.Record(&models.AttendanceRecordRequest{
		ContactID:   1,
		ServiceType: "Friday Vigil",
		ServiceDate: time.Now(),
	})
	require.Error(t, err)
	assert.True(t, models.IsValidation(err))
	assert.Contains(t, err.Error(), "Invalid service type")
}

func TestRecordAttendanceDuplicateSameDayIsConflict(t *testing.T) {
	service := NewAttendanceService(newFakeAttendanceRepo())
	day := time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC)

	_, err := service.Record(&models.AttendanceRecordRequest{
		ContactID:   1,
		ServiceType: models.ServiceSunday,
		ServiceDate: day,
	})
	require.NoError(t, err)

	// Same contact, type and calendar day at a different time of day.
	_, err = service.Record(&models.AttendanceRecordRequest{
		ContactID:   1,
		ServiceType: models.ServiceSunday,
		ServiceDate: day.Add(3 * time.Hour),
	})
	require.Error(t, err)
	assert.True(t, models.IsConflict(err))
	assert.Contains(t, err.Error(), "already recorded")
	assert.Contains(t, err.Error(), "2025-03-02")
}

func TestRecordAttendanceDifferentServiceTypeSameDay(t *testing.T) {
	service := NewAttendanceService(newFakeAttendanceRepo())
	day := time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC)

	_, err := service.Record(&models.AttendanceRecordRequest{
		ContactID:   1,
		ServiceType: models.ServiceSunday,
		ServiceDate: day,
	})
	require.NoError(t, err)

	_, err = service.Record(&models.AttendanceRecordRequest{
		ContactID:   1,
		ServiceType: models.ServiceSpecial,
		ServiceDate: day,
	})
	assert.NoError(t, err)
}

func TestRecordAttendanceNextDaySucceeds(t *testing.T) {
	service := NewAttendanceService(newFakeAttendanceRepo())
	day := time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC)

	_, err := service.Record(&models.AttendanceRecordRequest{
		ContactID:   1,
		ServiceType: models.ServiceSunday,
		ServiceDate: day,
	})
	require.NoError(t, err)

	_, err = service.Record(&models.AttendanceRecordRequest{
		ContactID:   1,
		ServiceType: models.ServiceSunday,
		ServiceDate: day.AddDate(0, 0, 7),
	})
	assert.NoError(t, err)
}

func TestDeleteAttendance(t *testing.T) {
	repo := newFakeAttendanceRepo()
	service := NewAttendanceService(repo)

	attendance, err := service.Record(&models.AttendanceRecordRequest{
		ContactID:   1,
		ServiceType: models.ServiceSunday,
		ServiceDate: time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	require.NoError(t, service.Delete(attendance.ID))
	assert.Empty(t, repo.records)
}

func TestDeleteAttendanceUnknownIDIsNotFound(t *testing.T) {
	service := NewAttendanceService(newFakeAttendanceRepo())

	err := service.Delete(42)
	require.Error(t, err)
	assert.True(t, models.IsNotFound(err))
	assert.Equal(t, "Attendance record not found", err.Error())
}

func TestAttendanceSummary(t *testing.T) {
	repo := newFakeAttendanceRepo()
	service := NewAttendanceService(repo)
	day := time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC)

	for contactID := 1; contactID <= 3; contactID++ {
		_, err := service.Record(&models.AttendanceRecordRequest{
			ContactID:   contactID,
			ServiceType: models.ServiceSunday,
			ServiceDate: day,
		})
		require.NoError(t, err)
	}
	_, err := service.Record(&models.AttendanceRecordRequest{
		ContactID:   1,
		ServiceType: models.ServiceTuesday,
		ServiceDate: day.AddDate(0, 0, 2),
	})
	require.NoError(t, err)

	summary, err := service.GetSummary(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, summary.TotalAttendance)
	assert.Equal(t, 3, summary.ByServiceType[models.ServiceSunday])
	assert.Equal(t, 1, summary.ByServiceType[models.ServiceTuesday])
}

func TestAttendanceSummaryDateWindow(t *testing.T) {
	service := NewAttendanceService(newFakeAttendanceRepo())
	march := time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC)
	april := time.Date(2025, 4, 6, 9, 0, 0, 0, time.UTC)

	_, err := service.Record(&models.AttendanceRecordRequest{
		ContactID: 1, ServiceType: models.ServiceSunday, ServiceDate: march,
	})
	require.NoError(t, err)
	_, err = service.Record(&models.AttendanceRecordRequest{
		ContactID: 1, ServiceType: models.ServiceSunday, ServiceDate: april,
	})
	require.NoError(t, err)

	from := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	summary, err := service.GetSummary(&from, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TotalAttendance)
}
