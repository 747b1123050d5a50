package models

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the error envelope for every non-2xx response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
}

type RegisterResponse struct {
	ID          int    `json:"id"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	IsActive    bool   `json:"is_active"`
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type CompleteTaskResult struct {
	Message           string `json:"message"`
	ScenarioCompleted bool   `json:"scenario_completed"`
}

type ScenarioStatistics struct {
	ScenarioID           int     `json:"scenario_id"`
	ScenarioName         string  `json:"scenario_name"`
	TotalTasks           int     `json:"total_tasks"`
	CompletedTasks       int     `json:"completed_tasks"`
	PendingTasks         int     `json:"pending_tasks"`
	CompletionPercentage float64 `json:"completion_percentage"`
}

type ContactCountStats struct {
	TotalContacts int `json:"total_contacts"`
}

type ProviderStats struct {
	TotalProviders int      `json:"total_providers"`
	Providers      []string `json:"providers"`
}

type SentCountStats struct {
	TotalMessagesSent int `json:"total_messages_sent"`
}

type FailedCountStats struct {
	TotalMessagesFailed int `json:"total_messages_failed"`
}

type CommunicationTypeStats struct {
	CountsByType map[string]int `json:"counts_by_type"`
}

type AttendanceSummary struct {
	TotalAttendance int            `json:"total_attendance"`
	ByServiceType   map[string]int `json:"by_service_type"`
}

type ImportResult struct {
	Success       bool          `json:"success"`
	ImportedCount int           `json:"imported_count"`
	SkippedCount  int           `json:"skipped_count"`
	TotalInList   int           `json:"total_contacts_in_list"`
	Errors        []ImportError `json:"errors"`
	Message       string        `json:"message"`
}

type ImportError struct {
	Contact string `json:"contact"`
	Error   string `json:"error"`
}

func RespondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func RespondWithError(w http.ResponseWriter, statusCode int, detail string) {
	RespondWithJSON(w, statusCode, &ErrorResponse{Detail: detail})
}

// RespondWithDomainError maps the domain error taxonomy onto HTTP statuses.
func RespondWithDomainError(w http.ResponseWriter, err error) {
	switch {
	case IsNotFound(err):
		RespondWithError(w, http.StatusNotFound, err.Error())
	case IsConflict(err), IsValidation(err):
		RespondWithError(w, http.StatusBadRequest, err.Error())
	case IsUnauthorized(err):
		w.Header().Set("WWW-Authenticate", "Bearer")
		RespondWithError(w, http.StatusUnauthorized, err.Error())
	default:
		RespondWithError(w, http.StatusInternalServerError, err.Error())
	}
}
