package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"church-admin/internal/middleware"
	"church-admin/internal/models"
	"church-admin/internal/services"

	"github.com/go-playground/validator/v10"
)

type AttendanceHandler struct {
	attendanceService *services.AttendanceService
	validate          *validator.Validate
}

func NewAttendanceHandler(attendanceService *services.AttendanceService, validate *validator.Validate) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService, validate: validate}
}

// @Summary Record attendance
// @Description Record a contact as present at a service; one record per contact, service type and day
// @Tags attendance
// @Accept json
// @Produce json
// @Param request body models.AttendanceRecordRequest true "Attendance details"
// @Success 201 {object} models.Attendance
// @Failure 400 {object} models.ErrorResponse
// @Router /attendance/record [post]
func (h *AttendanceHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req models.AttendanceRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.RespondWithError(w, http.StatusBadRequest, "Could not decode request: "+err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		models.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.RecordedBy == nil {
		if user := middleware.UserFromContext(r.Context()); user != nil {
			req.RecordedBy = &user.ID
		}
	}

	attendance, err := h.attendanceService.Record(&req)
	if err != nil {
		models.RespondWithDomainError(w, err)
		return
	}
	models.RespondWithJSON(w, http.StatusCreated, attendance)
}

// @Summary List attendance records
// @Description List records filtered by date window, service type and contact
// @Tags attendance
// @Produce json
// @Param date_from query string false "RFC 3339 timestamp or YYYY-MM-DD; bare dates bind to midnight"
// @Param date_to query string false "RFC 3339 timestamp or YYYY-MM-DD; bare dates bind to midnight, so pass the day after to cover a full day"
// @Param service_type query string false "Service type"
// @Param contact_id query int false "Contact ID"
// @Success 200 {array} models.Attendance
// @Router /attendance/records [get]
func (h *AttendanceHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := models.AttendanceFilter{
		ServiceType: r.URL.Query().Get("service_type"),
		ContactID:   queryInt(r, "contact_id", 0),
	}

	var err error
	if filter.DateFrom, err = queryTime(r, "date_from"); err != nil {
		models.RespondWithError(w, http.StatusBadRequest, "Invalid date_from: "+err.Error())
		return
	}
	if filter.DateTo, err = queryTime(r, "date_to"); err != nil {
		models.RespondWithError(w, http.StatusBadRequest, "Invalid date_to: "+err.Error())
		return
	}

	records, err := h.attendanceService.GetRecords(filter)
	if err != nil {
		models.RespondWithDomainError(w, err)
		return
	}
	if records == nil {
		records = []*models.Attendance{}
	}
	models.RespondWithJSON(w, http.StatusOK, records)
}

// @Summary Attendance summary
// @Description Total attendance and a per-service-type breakdown for an optional date window
// @Tags attendance
// @Produce json
// @Param date_from query string false "RFC 3339 timestamp or YYYY-MM-DD; bare dates bind to midnight"
// @Param date_to query string false "RFC 3339 timestamp or YYYY-MM-DD; bare dates bind to midnight, so pass the day after to cover a full day"
// @Success 200 {object} models.AttendanceSummary
// @Router /attendance/summary [get]
func (h *AttendanceHandler) Summary(w http.ResponseWriter, r *http.Request) {
	dateFrom, err := queryTime(r, "date_from")
	if err != nil {
		models.RespondWithError(w, http.StatusBadRequest, "Invalid date_from: "+err.Error())
		return
	}
	dateTo, err := queryTime(r, "date_to")
	if err != nil {
		models.RespondWithError(w, http.StatusBadRequest, "Invalid date_to: "+err.Error())
		return
	}

	summary, err := h.attendanceService.GetSummary(dateFrom, dateTo)
	if err != nil {
		models.RespondWithDomainError(w, err)
		return
	}
	models.RespondWithJSON(w, http.StatusOK, summary)
}

// @Summary Attendance history for a contact
// @Tags attendance
// @Produce json
// @Param id path int true "Contact ID"
// @Success 200 {array} models.Attendance
// @Router /attendance/contacts/{id} [get]
func (h *AttendanceHandler) ByContact(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		models.RespondWithError(w, http.StatusBadRequest, "Invalid contact ID")
		return
	}

	records, err := h.attendanceService.GetByContact(id)
	if err != nil {
		models.RespondWithDomainError(w, err)
		return
	}
	if records == nil {
		records = []*models.Attendance{}
	}
	models.RespondWithJSON(w, http.StatusOK, records)
}

// @Summary Delete an attendance record
// @Tags attendance
// @Produce json
// @Param id path int true "Attendance record ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /attendance/{id} [delete]
func (h *AttendanceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		models.RespondWithError(w, http.StatusBadRequest, "Invalid attendance record ID")
		return
	}

	if err := h.attendanceService.Delete(id); err != nil {
		models.RespondWithDomainError(w, err)
		return
	}
	models.RespondWithJSON(w, http.StatusOK, &models.MessageResponse{Message: "Attendance record deleted successfully"})
}

func queryTime(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	// Accept full timestamps and bare dates.
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
