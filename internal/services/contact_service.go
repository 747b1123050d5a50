package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"church-admin/internal/models"
	"church-admin/internal/utils"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type ContactService struct {
	contacts models.ContactRepository
}

func NewContactService(contacts models.ContactRepository) *ContactService {
	return &ContactService{contacts: contacts}
}

func (s *ContactService) Create(req *models.ContactCreateRequest) (*models.Contact, error) {
	phone, err := utils.NormalizePhone(req.Phone)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	existing, err := s.contacts.GetByPhone(phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError(fmt.Sprintf("Contact with phone %s already exists", phone))
	}

	status := req.Status
	if status == "" {
		status = models.ContactStatusActive
	}
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	contact := &models.Contact{
		Name:           req.Name,
		Phone:          phone,
		Status:         status,
		Tags:           tags,
		OptOutSMS:      req.OptOutSMS,
		OptOutWhatsApp: req.OptOutWhatsApp,
	}
	if err := s.contacts.Save(contact); err != nil {
		return nil, err
	}
	return contact, nil
}

func (s *ContactService) GetAll(filter models.ContactFilter) ([]*models.Contact, error) {
	return s.contacts.GetAll(filter)
}

func (s *ContactService) Get(id int) (*models.Contact, error) {
	contact, err := s.contacts.GetByID(id)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, models.NewNotFoundError("Contact not found")
	}
	return contact, nil
}

func (s *ContactService) Update(id int, req *models.ContactUpdateRequest) (*models.Contact, error) {
	contact, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if req.Phone != nil {
		phone, err := utils.NormalizePhone(*req.Phone)
		if err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		if phone != contact.Phone {
			existing, err := s.contacts.GetByPhone(phone)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, models.NewConflictError(fmt.Sprintf("Contact with phone %s already exists", phone))
			}
		}
		contact.Phone = phone
	}
	if req.Name != nil {
		contact.Name = *req.Name
	}
	if req.Status != nil {
		contact.Status = *req.Status
	}
	if req.Tags != nil {
		contact.Tags = *req.Tags
	}
	if req.OptOutSMS != nil {
		contact.OptOutSMS = *req.OptOutSMS
	}
	if req.OptOutWhatsApp != nil {
		contact.OptOutWhatsApp = *req.OptOutWhatsApp
	}

	if err := s.contacts.Update(contact); err != nil {
		return nil, err
	}
	return contact, nil
}

func (s *ContactService) Delete(id int) error {
	return s.contacts.Delete(id)
}

// MassDelete removes contacts one by one and reports the IDs that could not
// be deleted.
func (s *ContactService) MassDelete(ids []int) (int, []int) {
	deleted := 0
	var failed []int
	for _, id := range ids {
		if err := s.contacts.Delete(id); err != nil {
			failed = append(failed, id)
			continue
		}
		deleted++
	}
	return deleted, failed
}

// ImportList creates contacts from a JSON list, collecting per-row errors
// instead of aborting the batch.
func (s *ContactService) ImportList(contacts []models.ContactCreateRequest) *models.ImportResult {
	result := &models.ImportResult{
		Success:     true,
		TotalInList: len(contacts),
		Errors:      []models.ImportError{},
	}

	for _, req := range contacts {
		if _, err := s.Create(&req); err != nil {
			result.SkippedCount++
			label := req.Name
			if label == "" {
				label = req.Phone
			}
			result.Errors = append(result.Errors, models.ImportError{
				Contact: label,
				Error:   err.Error(),
			})
			continue
		}
		result.ImportedCount++
	}

	if len(result.Errors) > 0 {
		result.Message = fmt.Sprintf("Imported %d contacts, skipped %d due to errors or duplicates.",
			result.ImportedCount, result.SkippedCount)
	} else {
		result.Message = fmt.Sprintf("Successfully imported %d contacts. Skipped %d duplicates.",
			result.ImportedCount, result.SkippedCount)
	}

	utils.Log.Info("contact import finished",
		zap.Int("imported", result.ImportedCount),
		zap.Int("skipped", result.SkippedCount))

	return result
}

// ImportCSV reads a CSV with a header row. Columns name and phone are
// required; an optional tags column holds values separated by ';'.
func (s *ContactService) ImportCSV(r io.Reader) (*models.ImportResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, models.NewValidationError("Could not read CSV header: " + err.Error())
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"name", "phone"} {
		if _, ok := columns[required]; !ok {
			return nil, models.NewValidationError(fmt.Sprintf("Missing required column: %s", required))
		}
	}

	var requests []models.ContactCreateRequest
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, models.NewValidationError("Could not parse CSV: " + err.Error())
		}

		req := models.ContactCreateRequest{
			Name:  field(record, columns, "name"),
			Phone: field(record, columns, "phone"),
		}
		if rawTags := field(record, columns, "tags"); rawTags != "" {
			for _, tag := range strings.Split(rawTags, ";") {
				if tag = strings.TrimSpace(tag); tag != "" {
					req.Tags = append(req.Tags, tag)
				}
			}
		}
		requests = append(requests, req)
	}

	return s.ImportList(requests), nil
}

func field(record []string, columns map[string]int, name string) string {
	i, ok := columns[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func (s *ContactService) ExportCSV(w io.Writer) error {
	contacts, err := s.contacts.GetAll(models.ContactFilter{})
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"name", "phone", "status", "tags", "opt_out_sms", "opt_out_whatsapp"}); err != nil {
		return fmt.Errorf("error writing CSV header: %v", err)
	}

	for _, contact := range contacts {
		row := []string{
			contact.DisplayName(),
			contact.Phone,
			contact.Status,
			strings.Join(contact.Tags, ";"),
			fmt.Sprintf("%t", contact.OptOutSMS),
			fmt.Sprintf("%t", contact.OptOutWhatsApp),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("error writing CSV row: %v", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func (s *ContactService) ExportVCF(w io.Writer) error {
	contacts, err := s.contacts.GetAll(models.ContactFilter{})
	if err != nil {
		return err
	}

	for _, contact := range contacts {
		fmt.Fprintf(w, "BEGIN:VCARD\r\nVERSION:3.0\r\nFN:%s\r\nTEL;TYPE=CELL:%s\r\nEND:VCARD\r\n",
			contact.DisplayName(), contact.Phone)
	}
	return nil
}

func (s *ContactService) ExportXLSX() (*excelize.File, error) {
	contacts, err := s.contacts.GetAll(models.ContactFilter{})
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const sheet = "Contacts"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Name", "Phone", "Status", "Tags", "Opt-out SMS", "Opt-out WhatsApp"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, contact := range contacts {
		values := []interface{}{
			contact.DisplayName(),
			contact.Phone,
			contact.Status,
			strings.Join(contact.Tags, ";"),
			contact.OptOutSMS,
			contact.OptOutWhatsApp,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	return f, nil
}
