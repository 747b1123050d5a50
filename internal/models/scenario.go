package models

import "time"

// Scenario lifecycle: active -> completed, flipped exactly once when the
// last task completes. No transition out of completed.
const (
	ScenarioStatusActive    = "active"
	ScenarioStatusCompleted = "completed"
)

type Scenario struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	FilterTags  []string   `json:"filter_tags"`
	Status      string     `json:"status"`
	IsDeleted   bool       `json:"-"`
	CreatedBy   *int       `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

// ScenarioTask snapshots the contact's phone and name at scenario creation
// time so later contact edits do not rewrite history. Completion is one-way.
type ScenarioTask struct {
	ID          int        `json:"id"`
	ScenarioID  int        `json:"scenario_id"`
	ContactID   int        `json:"contact_id"`
	Phone       string     `json:"phone"`
	Name        string     `json:"name"`
	IsCompleted bool       `json:"is_completed"`
	CompletedBy *int       `json:"completed_by"`
	CompletedAt *time.Time `json:"completed_at"`
}

type ScenarioRepository interface {
	Save(scenario *Scenario) error
	// GetByID returns only scenarios that are not soft-deleted.
	GetByID(id int) (*Scenario, error)
	// GetAll returns non-deleted scenarios newest first, optionally
	// filtered by status.
	GetAll(status string) ([]*Scenario, error)
	MarkCompleted(id int, completedAt time.Time) error
	SoftDelete(id int) error

	SaveTask(task *ScenarioTask) error
	GetTask(scenarioID, taskID int) (*ScenarioTask, error)
	// GetTasks returns all tasks for a scenario in id order.
	GetTasks(scenarioID int) ([]*ScenarioTask, error)
	CompleteTask(taskID int, completedBy int, completedAt time.Time) error
}
