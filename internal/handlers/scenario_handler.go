package handlers

import (
	"encoding/json"
	"net/http"

	"church-admin/internal/middleware"
	"church-admin/internal/models"
	"church-admin/internal/services"

	"github.com/go-playground/validator/v10"
)

type ScenarioHandler struct {
	scenarioService *services.ScenarioService
	validate        *validator.Validate
}

func NewScenarioHandler(scenarioService *services.ScenarioService, validate *validator.Validate) *ScenarioHandler {
	return &ScenarioHandler{scenarioService: scenarioService, validate: validate}
}

// @Summary Create a scenario
// @Description Create a scenario and generate one task per active contact matching the filter tags
// @Tags scenarios
// @Accept json
// @Produce json
// @Param request body models.ScenarioCreateRequest true "Scenario details"
// @Success 201 {object} models.Scenario
// @Failure 400 {object} models.ErrorResponse
// @Router /scenarios [post]
func (h *ScenarioHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.ScenarioCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.RespondWithError(w, http.StatusBadRequest, "Could not decode request: "+err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		models.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.CreatedBy == nil {
		if user := middleware.UserFromContext(r.Context()); user != nil {
			req.CreatedBy = &user.ID
		}
	}

	scenario, err := h.scenarioService.CreateScenario(&req)
	if err != nil {
		models.RespondWithDomainError(w, err)
		return
	}
	models.RespondWithJSON(w, http.StatusCreated, scenario)
}

// @Summary List scenarios
// @Description List non-deleted scenarios, newest first, optionally filtered by status
// @Tags scenarios
// @Produce json
// @Param status query string false "active or completed"
// @Success 200 {array} models.Scenario
// @Router /scenarios [get]
func (h *ScenarioHandler) List(w http.ResponseWriter, r *http.Request) {
	scenarios, err := h.scenarioService.GetScenarios(r.URL.Query().Get("status"))
	if err != nil {
		models.RespondWithDomainError(w, err)
		return
	}
	if scenarios == nil {
		scenarios = []*models.Scenario{}
	}
	models.RespondWithJSON(w, http.StatusOK, scenarios)
}

// @Summary Get a scenario
// @Tags scenarios
// @Produce json
// @Param id path int true "Scenario ID"
// @Success 200 {object} models.Scenario
// @Failure 404 {object} models.ErrorResponse
// @Router /scenarios/{id} [get]
func (h *ScenarioHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		models.RespondWithError(w, http.StatusBadRequest, "Invalid scenario ID")
		return
	}

	scenario, err := h.scenarioService.GetScenario(id)
	if err != nil {
		models.RespondWithDomainError(w, err)
		return
	}
	models.RespondWithJSON(w, http.StatusOK, scenario)
}

// @Summary List scenario tasks
// @Tags scenarios
// @Produce json
// @Param id path int true "Scenario ID"
// @Success 200 {array} models.ScenarioTask
// @Failure 404 {object} models.ErrorResponse
// @Router /scenarios/{id}/tasks [get]
func (h *ScenarioHandler) Tasks(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		models.RespondWithError(w, http.StatusBadRequest, "Invalid scenario ID")
		return
	}

	if _, err := h.scenarioService.GetScenario(id); err != nil {
		models.RespondWithDomainError(w, err)
		return
	}

	tasks, err := h.scenarioService.GetScenarioTasks(id)
	if err != nil {
		models.RespondWithDomainError(w, err)
		return
	}
	if tasks == nil {
		tasks = []*models.ScenarioTask{}
	}
	models.RespondWithJSON(w, http.StatusOK, tasks)
}

// @Summary Complete a task
// @Description Mark a task complete; the scenario auto-closes when its last task completes
// @Tags scenarios
// @Accept json
// @Produce json
// @Param id path int true "Scenario ID"
// @Param task_id path int true "Task ID"
// @Param request body models.CompleteTaskRequest true "Completing user"
// @Success 200 {object} models.CompleteTaskResult
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /scenarios/{id}/tasks/{task_id}/complete [put]
func (h *ScenarioHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		models.RespondWithError(w, http.StatusBadRequest, "Invalid scenario ID")
		return
	}
	taskID, err := pathInt(r, "task_id")
	if err != nil {
		models.RespondWithError(w, http.StatusBadRequest, "Invalid task ID")
		return
	}

	var req models.CompleteTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.RespondWithError(w, http.StatusBadRequest, "Could not decode request: "+err.Error())
		return
	}
	if req.CompletedBy == 0 {
		if user := middleware.UserFromContext(r.Context()); user != nil {
			req.CompletedBy = user.ID
		}
	}
	if err := h.validate.Struct(&req); err != nil {
		models.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.scenarioService.CompleteTask(id, taskID, req.CompletedBy)
	if err != nil {
		models.RespondWithDomainError(w, err)
		return
	}
	models.RespondWithJSON(w, http.StatusOK, result)
}

// @Summary Scenario statistics
// @Description Task totals and completion percentage for a scenario
// @Tags scenarios
// @Produce json
// @Param id path int true "Scenario ID"
// @Success 200 {object} models.ScenarioStatistics
// @Failure 404 {object} models.ErrorResponse
// @Router /scenarios/{id}/statistics [get]
func (h *ScenarioHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		models.RespondWithError(w, http.StatusBadRequest, "Invalid scenario ID")
		return
	}

	stats, err := h.scenarioService.GetStatistics(id)
	if err != nil {
		models.RespondWithDomainError(w, err)
		return
	}
	models.RespondWithJSON(w, http.StatusOK, stats)
}

// @Summary Delete a scenario
// @Description Soft-delete a scenario; its tasks are kept for history
// @Tags scenarios
// @Produce json
// @Param id path int true "Scenario ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /scenarios/{id} [delete]
func (h *ScenarioHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		models.RespondWithError(w, http.StatusBadRequest, "Invalid scenario ID")
		return
	}

	if err := h.scenarioService.DeleteScenario(id); err != nil {
		models.RespondWithDomainError(w, err)
		return
	}
	models.RespondWithJSON(w, http.StatusOK, &models.MessageResponse{Message: "Scenario deleted successfully"})
}
