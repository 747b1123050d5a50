package services

import (
	"time"

	"church-admin/internal/models"
	"church-admin/internal/utils"

	"go.uber.org/zap"
)

// ScenarioService drives the scenario/task workflow: a scenario is expanded
// into one task per tag-matched contact at creation time, and auto-closes
// when its last task completes.
type ScenarioService struct {
	scenarios models.ScenarioRepository
	contacts  models.ContactRepository
}

func NewScenarioService(scenarios models.ScenarioRepository, contacts models.ContactRepository) *ScenarioService {
	return &ScenarioService{scenarios: scenarios, contacts: contacts}
}

// CreateScenario persists the scenario and generates one task per active
// contact whose tag set intersects the filter tags. Matching happens once,
// against the contact population as it exists now; contacts added or tagged
// later are never retroactively included. Zero matches still creates the
// scenario.
func (s *ScenarioService) CreateScenario(req *models.ScenarioCreateRequest) (*models.Scenario, error) {
	if len(req.FilterTags) == 0 {
		return nil, models.NewValidationError("filter_tags must not be empty")
	}

	scenario := &models.Scenario{
		Name:        req.Name,
		Description: req.Description,
		FilterTags:  req.FilterTags,
		Status:      models.ScenarioStatusActive,
		CreatedBy:   req.CreatedBy,
	}
	if err := s.scenarios.Save(scenario); err != nil {
		return nil, err
	}

	contacts, err := s.contacts.GetByStatus(models.ContactStatusActive)
	if err != nil {
		return nil, err
	}

	created := 0
	for _, contact := range contacts {
		if !contact.HasAnyTag(req.FilterTags) {
			continue
		}
		task := &models.ScenarioTask{
			ScenarioID: scenario.ID,
			ContactID:  contact.ID,
			Phone:      contact.Phone,
			Name:       contact.Name,
		}
		if err := s.scenarios.SaveTask(task); err != nil {
			return nil, err
		}
		created++
	}

	utils.Log.Info("scenario created",
		zap.Int("scenario_id", scenario.ID),
		zap.Strings("filter_tags", req.FilterTags),
		zap.Int("tasks_created", created))

	return scenario, nil
}

func (s *ScenarioService) GetScenarios(status string) ([]*models.Scenario, error) {
	return s.scenarios.GetAll(status)
}

func (s *ScenarioService) GetScenario(id int) (*models.Scenario, error) {
	scenario, err := s.scenarios.GetByID(id)
	if err != nil {
		return nil, err
	}
	if scenario == nil {
		return nil, models.NewNotFoundError("Scenario not found")
	}
	return scenario, nil
}

func (s *ScenarioService) GetScenarioTasks(scenarioID int) ([]*models.ScenarioTask, error) {
	return s.scenarios.GetTasks(scenarioID)
}

// CompleteTask marks a task complete and closes the scenario when it was the
// last pending one. Completion is not idempotent: a second call on the same
// task is an error. The all-complete check re-reads the full task set, O(N)
// per completion.
func (s *ScenarioService) CompleteTask(scenarioID, taskID, completedBy int) (*models.CompleteTaskResult, error) {
	task, err := s.scenarios.GetTask(scenarioID, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, models.NewNotFoundError("Task not found")
	}
	if task.IsCompleted {
		return nil, models.NewConflictError("Task is already completed")
	}

	now := time.Now()
	if err := s.scenarios.CompleteTask(taskID, completedBy, now); err != nil {
		return nil, err
	}

	tasks, err := s.scenarios.GetTasks(scenarioID)
	if err != nil {
		return nil, err
	}

	allCompleted := true
	for _, t := range tasks {
		if !t.IsCompleted {
			allCompleted = false
			break
		}
	}

	scenarioCompleted := false
	if allCompleted {
		scenario, err := s.scenarios.GetByID(scenarioID)
		if err != nil {
			return nil, err
		}
		if scenario != nil && scenario.Status != models.ScenarioStatusCompleted {
			if err := s.scenarios.MarkCompleted(scenarioID, now); err != nil {
				return nil, err
			}
			scenarioCompleted = true
			utils.Log.Info("scenario auto-completed", zap.Int("scenario_id", scenarioID))
		}
	}

	return &models.CompleteTaskResult{
		Message:           "Task completed successfully",
		ScenarioCompleted: scenarioCompleted,
	}, nil
}

// DeleteScenario soft-deletes the scenario. Tasks are kept; they stay
// reachable for history but list endpoints only surface them through
// non-deleted scenarios.
func (s *ScenarioService) DeleteScenario(id int) error {
	return s.scenarios.SoftDelete(id)
}

func (s *ScenarioService) GetStatistics(scenarioID int) (*models.ScenarioStatistics, error) {
	scenario, err := s.GetScenario(scenarioID)
	if err != nil {
		return nil, err
	}

	tasks, err := s.scenarios.GetTasks(scenarioID)
	if err != nil {
		return nil, err
	}

	total := len(tasks)
	completed := 0
	for _, t := range tasks {
		if t.IsCompleted {
			completed++
		}
	}

	// Guard the zero-task scenario: percentage is 0, not a division error.
	percentage := 0.0
	if total > 0 {
		percentage = float64(completed) / float64(total) * 100
	}

	return &models.ScenarioStatistics{
		ScenarioID:           scenarioID,
		ScenarioName:         scenario.Name,
		TotalTasks:           total,
		CompletedTasks:       completed,
		PendingTasks:         total - completed,
		CompletionPercentage: percentage,
	}, nil
}
