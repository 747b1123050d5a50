package handlers

import (
	"net/http"

	"church-admin/internal/models"
	"church-admin/internal/services"
)

type StatsHandler struct {
	statsService *services.StatsService
}

func NewStatsHandler(statsService *services.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// @Summary Total contact count
// @Tags statistics
// @Produce json
// @Success 200 {object} models.ContactCountStats
// @Router /stats/contacts/count [get]
func (h *StatsHandler) ContactCount(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsService.ContactCount()
	if err != nil {
		models.RespondWithDomainError(w, err)
		return
	}
	models.RespondWithJSON(w, http.StatusOK, stats)
}

// @Summary Registered message providers
// @Tags statistics
// @Produce json
// @Success 200 {object} models.ProviderStats
// @Router /stats/sms/providers [get]
func (h *StatsHandler) Providers(w http.ResponseWriter, r *http.Request) {
	models.RespondWithJSON(w, http.StatusOK, h.statsService.Providers())
}

// @Summary Total messages sent
// @Tags statistics
// @Produce json
// @Success 200 {object} models.SentCountStats
// @Router /stats/communications/sent-count [get]
func (h *StatsHandler) SentCount(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsService.SentCount()
	if err != nil {
		models.RespondWithDomainError(w, err)
		return
	}
	models.RespondWithJSON(w, http.StatusOK, stats)
}

// @Summary Total messages failed
// @Tags statistics
// @Produce json
// @Success 200 {object} models.FailedCountStats
// @Router /stats/communications/failed-count [get]
func (h *StatsHandler) FailedCount(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsService.FailedCount()
	if err != nil {
		models.RespondWithDomainError(w, err)
		return
	}
	models.RespondWithJSON(w, http.StatusOK, stats)
}

// @Summary Communication counts by message type
// @Tags statistics
// @Produce json
// @Success 200 {object} models.CommunicationTypeStats
// @Router /stats/communications/by-type [get]
func (h *StatsHandler) ByType(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsService.CommunicationsByType()
	if err != nil {
		models.RespondWithDomainError(w, err)
		return
	}
	models.RespondWithJSON(w, http.StatusOK, stats)
}
