package handlers

import (
	"encoding/json"
	"net/http"

	"church-admin/internal/middleware"
	"church-admin/internal/models"
	"church-admin/internal/services"

	"github.com/go-playground/validator/v10"
)

type CommunicationHandler struct {
	communicationService *services.CommunicationService
	validate             *validator.Validate
}

func NewCommunicationHandler(communicationService *services.CommunicationService, validate *validator.Validate) *CommunicationHandler {
	return &CommunicationHandler{communicationService: communicationService, validate: validate}
}

// @Summary Create a communication draft
// @Tags communications
// @Accept json
// @Produce json
// @Param request body models.CommunicationCreateRequest true "Draft details"
// @Success 201 {object} models.Communication
// @Failure 400 {object} models.ErrorResponse
// @Router /communications [post]
func (h *CommunicationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CommunicationCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.RespondWithError(w, http.StatusBadRequest, "Could not decode request: "+err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		models.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var userID *int
	if user := middleware.UserFromContext(r.Context()); user != nil {
		userID = &user.ID
	}

	communication, err := h.communicationService.Create(&req, userID)
	if err != nil {
		models.RespondWithDomainError(w, err)
		return
	}
	models.RespondWithJSON(w, http.StatusCreated, communication)
}

// @Summary List the caller's communications
// @Tags communications
// @Produce json
// @Success 200 {array} models.Communication
// @Router /communications [get]
func (h *CommunicationHandler) List(w http.ResponseWriter, r *http.Request) {
	createdBy := 0
	if user := middleware.UserFromContext(r.Context()); user != nil {
		createdBy = user.ID
	}

	communications, err := h.communicationService.GetAll(createdBy)
	if err != nil {
		models.RespondWithDomainError(w, err)
		return
	}
	if communications == nil {
		communications = []*models.Communication{}
	}
	models.RespondWithJSON(w, http.StatusOK, communications)
}

// @Summary Get a communication
// @Tags communications
// @Produce json
// @Param id path int true "Communication ID"
// @Success 200 {object} models.Communication
// @Failure 404 {object} models.ErrorResponse
// @Router /communications/{id} [get]
func (h *CommunicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		models.RespondWithError(w, http.StatusBadRequest, "Invalid communication ID")
		return
	}

	communication, err := h.communicationService.Get(id)
	if err != nil {
		models.RespondWithDomainError(w, err)
		return
	}
	models.RespondWithJSON(w, http.StatusOK, communication)
}

// @Summary Update a communication draft
// @Tags communications
// @Accept json
// @Produce json
// @Param id path int true "Communication ID"
// @Param request body models.CommunicationUpdateRequest true "Fields to change"
// @Success 200 {object} models.Communication
// @Failure 404 {object} models.ErrorResponse
// @Router /communications/{id} [put]
func (h *CommunicationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		models.RespondWithError(w, http.StatusBadRequest, "Invalid communication ID")
		return
	}

	var req models.CommunicationUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.RespondWithError(w, http.StatusBadRequest, "Could not decode request: "+err.Error())
		return
	}

	communication, err := h.communicationService.Update(id, &req)
	if err != nil {
		models.RespondWithDomainError(w, err)
		return
	}
	models.RespondWithJSON(w, http.StatusOK, communication)
}

// @Summary Send a communication
// @Description Dispatch a draft to its recipient group; the draft becomes sent with delivery tallies
// @Tags communications
// @Accept json
// @Produce json
// @Param id path int true "Communication ID"
// @Param request body models.SendRequest false "Provider override and tag filter"
// @Success 200 {object} models.Communication
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /communications/{id}/send [post]
func (h *CommunicationHandler) Send(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		models.RespondWithError(w, http.StatusBadRequest, "Invalid communication ID")
		return
	}

	var req models.SendRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			models.RespondWithError(w, http.StatusBadRequest, "Could not decode request: "+err.Error())
			return
		}
	}

	communication, err := h.communicationService.Send(r.Context(), id, req.Provider, req.Tags)
	if err != nil {
		models.RespondWithDomainError(w, err)
		return
	}
	models.RespondWithJSON(w, http.StatusOK, communication)
}

// @Summary Send a communication to an explicit phone list
// @Tags communications
// @Accept json
// @Produce json
// @Param request body models.BulkSMSRequest true "Communication and recipients"
// @Success 200 {object} models.Communication
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /communications/send-bulk [post]
func (h *CommunicationHandler) SendBulk(w http.ResponseWriter, r *http.Request) {
	var req models.BulkSMSRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.RespondWithError(w, http.StatusBadRequest, "Could not decode request: "+err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		models.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	communication, err := h.communicationService.SendBulk(r.Context(), req.CommunicationID, req.PhoneNumbers, req.Provider)
	if err != nil {
		models.RespondWithDomainError(w, err)
		return
	}
	models.RespondWithJSON(w, http.StatusOK, communication)
}

// @Summary Communication delivery status
// @Description Current status and delivery tallies for a communication
// @Tags communications
// @Produce json
// @Param id path int true "Communication ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} models.ErrorResponse
// @Router /communications/{id}/status [get]
func (h *CommunicationHandler) Status(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		models.RespondWithError(w, http.StatusBadRequest, "Invalid communication ID")
		return
	}

	communication, err := h.communicationService.Get(id)
	if err != nil {
		models.RespondWithDomainError(w, err)
		return
	}
	models.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"id":           communication.ID,
		"status":       communication.Status,
		"sent_count":   communication.SentCount,
		"failed_count": communication.FailedCount,
		"sent_at":      communication.SentAt,
	})
}

// @Summary Delete a communication
// @Tags communications
// @Produce json
// @Param id path int true "Communication ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /communications/{id} [delete]
func (h *CommunicationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		models.RespondWithError(w, http.StatusBadRequest, "Invalid communication ID")
		return
	}

	if err := h.communicationService.Delete(id); err != nil {
		models.RespondWithDomainError(w, err)
		return
	}
	models.RespondWithJSON(w, http.StatusOK, &models.MessageResponse{Message: "Communication deleted successfully"})
}
