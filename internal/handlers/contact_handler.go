package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"church-admin/internal/models"
	"church-admin/internal/services"
	"church-admin/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type ContactHandler struct {
	contactService *services.ContactService
	validate       *validator.Validate
}

func NewContactHandler(contactService *services.ContactService, validate *validator.Validate) *ContactHandler {
	return &ContactHandler{contactService: contactService, validate: validate}
}

// @Summary Create a contact
// @Description Register a contact with a normalized South African phone number
// @Tags contacts
// @Accept json
// @Produce json
// @Param request body models.ContactCreateRequest true "Contact details"
// @Success 201 {object} models.Contact
// @Failure 400 {object} models.ErrorResponse
// @Router /contacts [post]
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.ContactCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.RespondWithError(w, http.StatusBadRequest, "Could not decode request: "+err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		models.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	contact, err := h.contactService.Create(&req)
	if err != nil {
		models.RespondWithDomainError(w, err)
		return
	}
	models.RespondWithJSON(w, http.StatusCreated, contact)
}

// @Summary List contacts
// @Description List contacts with pagination, free-text search and status filter
// @Tags contacts
// @Produce json
// @Param skip query int false "Rows to skip"
// @Param limit query int false "Max rows to return"
// @Param search query string false "Match against name or phone"
// @Param status query string false "active or inactive"
// @Success 200 {array} models.Contact
// @Router /contacts [get]
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := models.ContactFilter{
		Skip:   queryInt(r, "skip", 0),
		Limit:  queryInt(r, "limit", 100),
		Search: r.URL.Query().Get("search"),
		Status: r.URL.Query().Get("status"),
	}

	contacts, err := h.contactService.GetAll(filter)
	if err != nil {
		utils.Log.Error("error listing contacts", zap.Error(err))
		models.RespondWithDomainError(w, err)
		return
	}
	if contacts == nil {
		contacts = []*models.Contact{}
	}
	models.RespondWithJSON(w, http.StatusOK, contacts)
}

// @Summary Get a contact
// @Tags contacts
// @Produce json
// @Param id path int true "Contact ID"
// @Success 200 {object} models.Contact
// @Failure 404 {object} models.ErrorResponse
// @Router /contacts/{id} [get]
func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		models.RespondWithError(w, http.StatusBadRequest, "Invalid contact ID")
		return
	}

	contact, err := h.contactService.Get(id)
	if err != nil {
		models.RespondWithDomainError(w, err)
		return
	}
	models.RespondWithJSON(w, http.StatusOK, contact)
}

// @Summary Update a contact
// @Description Partially update a contact; absent fields are left unchanged
// @Tags contacts
// @Accept json
// @Produce json
// @Param id path int true "Contact ID"
// @Param request body models.ContactUpdateRequest true "Fields to change"
// @Success 200 {object} models.Contact
// @Failure 404 {object} models.ErrorResponse
// @Router /contacts/{id} [put]
func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		models.RespondWithError(w, http.StatusBadRequest, "Invalid contact ID")
		return
	}

	var req models.ContactUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.RespondWithError(w, http.StatusBadRequest, "Could not decode request: "+err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		models.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	contact, err := h.contactService.Update(id, &req)
	if err != nil {
		models.RespondWithDomainError(w, err)
		return
	}
	models.RespondWithJSON(w, http.StatusOK, contact)
}

// @Summary Delete a contact
// @Tags contacts
// @Produce json
// @Param id path int true "Contact ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /contacts/{id} [delete]
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		models.RespondWithError(w, http.StatusBadRequest, "Invalid contact ID")
		return
	}

	if err := h.contactService.Delete(id); err != nil {
		models.RespondWithDomainError(w, err)
		return
	}
	models.RespondWithJSON(w, http.StatusOK, &models.MessageResponse{Message: "Contact deleted successfully"})
}

// @Summary Delete contacts in bulk
// @Description Delete contacts by ID; reports IDs that could not be deleted
// @Tags contacts
// @Accept json
// @Produce json
// @Param request body []int true "Contact IDs"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /contacts/mass-delete [delete]
func (h *ContactHandler) MassDelete(w http.ResponseWriter, r *http.Request) {
	var ids []int
	if err := json.NewDecoder(r.Body).Decode(&ids); err != nil {
		models.RespondWithError(w, http.StatusBadRequest, "Could not decode request: "+err.Error())
		return
	}

	deleted, failed := h.contactService.MassDelete(ids)
	if len(failed) > 0 {
		models.RespondWithError(w, http.StatusBadRequest, fmt.Sprintf(
			"Successfully deleted %d contacts. Failed to delete contacts with IDs: %v", deleted, failed))
		return
	}
	models.RespondWithJSON(w, http.StatusOK, &models.MessageResponse{
		Message: fmt.Sprintf("Successfully deleted %d contacts.", deleted),
	})
}

// @Summary Import contacts from a JSON list
// @Description Create contacts in bulk; per-row failures are reported, not fatal
// @Tags contacts
// @Accept json
// @Produce json
// @Param request body models.ContactImportRequest true "Contacts to import"
// @Success 200 {object} models.ImportResult
// @Failure 400 {object} models.ErrorResponse
// @Router /contacts/add-list [post]
func (h *ContactHandler) AddList(w http.ResponseWriter, r *http.Request) {
	var req models.ContactImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.RespondWithError(w, http.StatusBadRequest, "Could not decode request: "+err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		models.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := h.contactService.ImportList(req.Contacts)
	models.RespondWithJSON(w, http.StatusOK, result)
}

// @Summary Import contacts from a CSV file
// @Description Upload a CSV with name, phone and optional tags columns
// @Tags contacts
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Success 200 {object} models.ImportResult
// @Failure 400 {object} models.ErrorResponse
// @Router /contacts/import [post]
func (h *ContactHandler) ImportCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		models.RespondWithError(w, http.StatusBadRequest, "File too large. 10MB limit")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		models.RespondWithError(w, http.StatusBadRequest, "Could not read uploaded file")
		return
	}
	defer file.Close()

	result, err := h.contactService.ImportCSV(file)
	if err != nil {
		models.RespondWithDomainError(w, err)
		return
	}
	models.RespondWithJSON(w, http.StatusOK, result)
}

// @Summary Export contacts as CSV
// @Tags contacts
// @Produce text/csv
// @Success 200 {string} string
// @Router /contacts/export/csv [get]
func (h *ContactHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="contacts.csv"`)
	if err := h.contactService.ExportCSV(w); err != nil {
		utils.Log.Error("error exporting contacts as CSV", zap.Error(err))
	}
}

// @Summary Export contacts as vCard
// @Tags contacts
// @Produce text/vcard
// @Success 200 {string} string
// @Router /contacts/export/vcf [get]
func (h *ContactHandler) ExportVCF(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/vcard")
	w.Header().Set("Content-Disposition", `attachment; filename="contacts.vcf"`)
	if err := h.contactService.ExportVCF(w); err != nil {
		utils.Log.Error("error exporting contacts as VCF", zap.Error(err))
	}
}

// @Summary Export contacts as an XLSX workbook
// @Tags contacts
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {string} string
// @Router /contacts/export/xlsx [get]
func (h *ContactHandler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	f, err := h.contactService.ExportXLSX()
	if err != nil {
		models.RespondWithDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="contacts.xlsx"`)
	if err := f.Write(w); err != nil {
		utils.Log.Error("error writing XLSX export", zap.Error(err))
	}
}

func pathInt(r *http.Request, name string) (int, error) {
	return strconv.Atoi(mux.Vars(r)[name])
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
