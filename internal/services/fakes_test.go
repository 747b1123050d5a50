package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"church-admin/internal/models"
)

// In-memory repository fakes so service behavior is tested without a
// database.

type fakeContactRepo struct {
	contacts map[int]*models.Contact
	nextID   int
}

func newFakeContactRepo() *fakeContactRepo {
	return &fakeContactRepo{contacts: map[int]*models.Contact{}, nextID: 1}
}

func (r *fakeContactRepo) Save(contact *models.Contact) error {
	contact.ID = r.nextID
	r.nextID++
	contact.CreatedAt = time.Now()
	r.contacts[contact.ID] = contact
	return nil
}

func (r *fakeContactRepo) GetByID(id int) (*models.Contact, error) {
	return r.contacts[id], nil
}

func (r *fakeContactRepo) GetByPhone(phone string) (*models.Contact, error) {
	for _, c := range r.contacts {
		if c.Phone == phone {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeContactRepo) GetAll(filter models.ContactFilter) ([]*models.Contact, error) {
	var out []*models.Contact
	for _, c := range r.contacts {
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		if filter.Search != "" &&
			!strings.Contains(strings.ToLower(c.Name), strings.ToLower(filter.Search)) &&
			!strings.Contains(c.Phone, filter.Search) {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeContactRepo) GetByStatus(status string) ([]*models.Contact, error) {
	return r.GetAll(models.ContactFilter{Status: status})
}

func (r *fakeContactRepo) Count() (int, error) {
	return len(r.contacts), nil
}

func (r *fakeContactRepo) Update(contact *models.Contact) error {
	if _, ok := r.contacts[contact.ID]; !ok {
		return models.NewNotFoundError("Contact not found")
	}
	r.contacts[contact.ID] = contact
	return nil
}

func (r *fakeContactRepo) Delete(id int) error {
	if _, ok := r.contacts[id]; !ok {
		return models.NewNotFoundError("Contact not found")
	}
	delete(r.contacts, id)
	return nil
}

type fakeScenarioRepo struct {
	scenarios  map[int]*models.Scenario
	tasks      map[int]*models.ScenarioTask
	nextID     int
	nextTaskID int
}

func newFakeScenarioRepo() *fakeScenarioRepo {
	return &fakeScenarioRepo{
		scenarios:  map[int]*models.Scenario{},
		tasks:      map[int]*models.ScenarioTask{},
		nextID:     1,
		nextTaskID: 1,
	}
}

func (r *fakeScenarioRepo) Save(scenario *models.Scenario) error {
	scenario.ID = r.nextID
	r.nextID++
	scenario.CreatedAt = time.Now()
	r.scenarios[scenario.ID] = scenario
	return nil
}

func (r *fakeScenarioRepo) GetByID(id int) (*models.Scenario, error) {
	scenario, ok := r.scenarios[id]
	if !ok || scenario.IsDeleted {
		return nil, nil
	}
	return scenario, nil
}

func (r *fakeScenarioRepo) GetAll(status string) ([]*models.Scenario, error) {
	var out []*models.Scenario
	for _, s := range r.scenarios {
		if s.IsDeleted {
			continue
		}
		if status != "" && s.Status != status {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeScenarioRepo) MarkCompleted(id int, completedAt time.Time) error {
	scenario, ok := r.scenarios[id]
	if !ok {
		return models.NewNotFoundError("Scenario not found")
	}
	scenario.Status = models.ScenarioStatusCompleted
	scenario.CompletedAt = &completedAt
	return nil
}

func (r *fakeScenarioRepo) SoftDelete(id int) error {
	scenario, ok := r.scenarios[id]
	if !ok || scenario.IsDeleted {
		return models.NewNotFoundError("Scenario not found")
	}
	scenario.IsDeleted = true
	return nil
}

func (r *fakeScenarioRepo) SaveTask(task *models.ScenarioTask) error {
	task.ID = r.nextTaskID
	r.nextTaskID++
	r.tasks[task.ID] = task
	return nil
}

func (r *fakeScenarioRepo) GetTask(scenarioID, taskID int) (*models.ScenarioTask, error) {
	task, ok := r.tasks[taskID]
	if !ok || task.ScenarioID != scenarioID {
		return nil, nil
	}
	return task, nil
}

func (r *fakeScenarioRepo) GetTasks(scenarioID int) ([]*models.ScenarioTask, error) {
	var out []*models.ScenarioTask
	for _, t := range r.tasks {
		if t.ScenarioID == scenarioID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeScenarioRepo) CompleteTask(taskID int, completedBy int, completedAt time.Time) error {
	task, ok := r.tasks[taskID]
	if !ok {
		return models.NewNotFoundError("Task not found")
	}
	task.IsCompleted = true
	task.CompletedBy = &completedBy
	task.CompletedAt = &completedAt
	return nil
}

type fakeAttendanceRepo struct {
	records map[int]*models.Attendance
	nextID  int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: map[int]*models.Attendance{}, nextID: 1}
}

func (r *fakeAttendanceRepo) Save(attendance *models.Attendance) error {
	attendance.ID = r.nextID
	r.nextID++
	attendance.RecordedAt = time.Now()
	r.records[attendance.ID] = attendance
	return nil
}

func (r *fakeAttendanceRepo) GetByID(id int) (*models.Attendance, error) {
	return r.records[id], nil
}

func (r *fakeAttendanceRepo) Exists(contactID int, serviceType string, day time.Time) (bool, error) {
	for _, a := range r.records {
		if a.ContactID == contactID && a.ServiceType == serviceType && sameDay(a.ServiceDate, day) {
			return true, nil
		}
	}
	return false, nil
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func (r *fakeAttendanceRepo) GetAll(filter models.AttendanceFilter) ([]*models.Attendance, error) {
	var out []*models.Attendance
	for _, a := range r.records {
		if filter.ServiceType != "" && a.ServiceType != filter.ServiceType {
			continue
		}
		if filter.ContactID != 0 && a.ContactID != filter.ContactID {
			continue
		}
		if filter.DateFrom != nil && a.ServiceDate.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && a.ServiceDate.After(*filter.DateTo) {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ServiceDate.After(out[j].ServiceDate) })
	return out, nil
}

func (r *fakeAttendanceRepo) GetByContact(contactID int) ([]*models.Attendance, error) {
	return r.GetAll(models.AttendanceFilter{ContactID: contactID})
}

func (r *fakeAttendanceRepo) CountByServiceType(dateFrom, dateTo *time.Time) (int, map[string]int, error) {
	records, _ := r.GetAll(models.AttendanceFilter{DateFrom: dateFrom, DateTo: dateTo})
	byType := map[string]int{}
	for _, a := range records {
		byType[a.ServiceType]++
	}
	return len(records), byType, nil
}

func (r *fakeAttendanceRepo) Delete(id int) error {
	if _, ok := r.records[id]; !ok {
		return models.NewNotFoundError("Attendance record not found")
	}
	delete(r.records, id)
	return nil
}

type fakeCommunicationRepo struct {
	communications map[int]*models.Communication
	nextID         int
}

func newFakeCommunicationRepo() *fakeCommunicationRepo {
	return &fakeCommunicationRepo{communications: map[int]*models.Communication{}, nextID: 1}
}

func (r *fakeCommunicationRepo) Save(communication *models.Communication) error {
	communication.ID = r.nextID
	r.nextID++
	communication.CreatedAt = time.Now()
	r.communications[communication.ID] = communication
	return nil
}

func (r *fakeCommunicationRepo) GetByID(id int) (*models.Communication, error) {
	return r.communications[id], nil
}

func (r *fakeCommunicationRepo) GetAll(createdBy int) ([]*models.Communication, error) {
	var out []*models.Communication
	for _, c := range r.communications {
		if createdBy != 0 && (c.CreatedBy == nil || *c.CreatedBy != createdBy) {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeCommunicationRepo) TotalSent() (int, error) {
	total := 0
	for _, c := range r.communications {
		total += c.SentCount
	}
	return total, nil
}

func (r *fakeCommunicationRepo) TotalFailed() (int, error) {
	total := 0
	for _, c := range r.communications {
		total += c.FailedCount
	}
	return total, nil
}

func (r *fakeCommunicationRepo) CountByType() (map[string]int, error) {
	counts := map[string]int{}
	for _, c := range r.communications {
		counts[c.MessageType]++
	}
	return counts, nil
}

func (r *fakeCommunicationRepo) Update(communication *models.Communication) error {
	if _, ok := r.communications[communication.ID]; !ok {
		return models.NewNotFoundError("Communication not found")
	}
	r.communications[communication.ID] = communication
	return nil
}

func (r *fakeCommunicationRepo) Delete(id int) error {
	if _, ok := r.communications[id]; !ok {
		return models.NewNotFoundError("Communication not found")
	}
	delete(r.communications, id)
	return nil
}

// fakeProvider records every delivery attempt and fails the phones listed
// in failFor.
type fakeProvider struct {
	name    string
	sent    []string
	failFor map[string]bool
}

func newFakeProvider(name string) *fakeProvider {
	return &fakeProvider{name: name, failFor: map[string]bool{}}
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) Send(ctx context.Context, phone, message string) error {
	p.sent = append(p.sent, phone)
	if p.failFor[phone] {
		return fmt.Errorf("delivery to %s failed", phone)
	}
	return nil
}
