package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"church-admin/internal/models"
	"church-admin/internal/utils"

	"github.com/lib/pq"
)

type PostgresScenarioRepository struct {
	db *sql.DB
}

func NewPostgresScenarioRepository(db *sql.DB) *PostgresScenarioRepository {
	return &PostgresScenarioRepository{db: db}
}

func (r *PostgresScenarioRepository) Save(scenario *models.Scenario) error {
	query := `
		INSERT INTO scenarios (
			name, description, filter_tags, status, is_deleted, created_by, created_at
		) VALUES ($1, $2, $3, $4, FALSE, $5, now())
		RETURNING id, created_at`

	err := r.db.QueryRow(query,
		scenario.Name,
		utils.NullString(scenario.Description),
		pq.Array(scenario.FilterTags),
		scenario.Status,
		utils.NullIntPtr(scenario.CreatedBy),
	).Scan(&scenario.ID, &scenario.CreatedAt)

	if err != nil {
		return fmt.Errorf("error saving scenario: %v", err)
	}
	return nil
}

const scenarioColumns = `
	id, name, description, filter_tags, status, is_deleted,
	created_by, created_at, completed_at`

func (r *PostgresScenarioRepository) GetByID(id int) (*models.Scenario, error) {
	query := `SELECT ` + scenarioColumns + `
		FROM scenarios
		WHERE id = $1 AND is_deleted = FALSE`

	scenario, err := r.scanScenario(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return scenario, err
}

func (r *PostgresScenarioRepository) GetAll(status string) ([]*models.Scenario, error) {
	query := `SELECT ` + scenarioColumns + `
		FROM scenarios
		WHERE is_deleted = FALSE`
	args := []interface{}{}

	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}

	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying scenarios: %v", err)
	}
	defer rows.Close()

	var scenarios []*models.Scenario
	for rows.Next() {
		scenario, err := r.scanScenario(rows)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, scenario)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scenarios: %v", err)
	}
	return scenarios, nil
}

func (r *PostgresScenarioRepository) MarkCompleted(id int, completedAt time.Time) error {
	query := `
		UPDATE scenarios
		SET status = $1, completed_at = $2
		WHERE id = $3`

	if _, err := r.db.Exec(query, models.ScenarioStatusCompleted, completedAt, id); err != nil {
		return fmt.Errorf("error completing scenario: %v", err)
	}
	return nil
}

func (r *PostgresScenarioRepository) SoftDelete(id int) error {
	result, err := r.db.Exec(`UPDATE scenarios SET is_deleted = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting scenario: %v", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %v", err)
	}
	if rows == 0 {
		return models.NewNotFoundError("Scenario not found")
	}
	return nil
}

func (r *PostgresScenarioRepository) SaveTask(task *models.ScenarioTask) error {
	query := `
		INSERT INTO scenario_tasks (
			scenario_id, contact_id, phone, name, is_completed
		) VALUES ($1, $2, $3, $4, FALSE)
		RETURNING id`

	err := r.db.QueryRow(query,
		task.ScenarioID,
		task.ContactID,
		task.Phone,
		utils.NullString(task.Name),
	).Scan(&task.ID)

	if err != nil {
		return fmt.Errorf("error saving scenario task: %v", err)
	}
	return nil
}

const taskColumns = `
	id, scenario_id, contact_id, phone, name,
	is_completed, completed_by, completed_at`

func (r *PostgresScenarioRepository) GetTask(scenarioID, taskID int) (*models.ScenarioTask, error) {
	query := `SELECT ` + taskColumns + `
		FROM scenario_tasks
		WHERE id = $1 AND scenario_id = $2`

	task, err := r.scanTask(r.db.QueryRow(query, taskID, scenarioID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return task, err
}

func (r *PostgresScenarioRepository) GetTasks(scenarioID int) ([]*models.ScenarioTask, error) {
	query := `SELECT ` + taskColumns + `
		FROM scenario_tasks
		WHERE scenario_id = $1
		ORDER BY id`

	rows, err := r.db.Query(query, scenarioID)
	if err != nil {
		return nil, fmt.Errorf("error querying scenario tasks: %v", err)
	}
	defer rows.Close()

	var tasks []*models.ScenarioTask
	for rows.Next() {
		task, err := r.scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scenario tasks: %v", err)
	}
	return tasks, nil
}

func (r *PostgresScenarioRepository) CompleteTask(taskID int, completedBy int, completedAt time.Time) error {
	query := `
		UPDATE scenario_tasks
		SET is_completed = TRUE, completed_by = $1, completed_at = $2
		WHERE id = $3`

	if _, err := r.db.Exec(query, completedBy, completedAt, taskID); err != nil {
		return fmt.Errorf("error completing scenario task: %v", err)
	}
	return nil
}

func (r *PostgresScenarioRepository) scanScenario(row rowScanner) (*models.Scenario, error) {
	scenario := &models.Scenario{}
	var description sql.NullString
	var filterTags pq.StringArray
	var createdBy sql.NullInt64
	var completedAt sql.NullTime

	err := row.Scan(
		&scenario.ID,
		&scenario.Name,
		&description,
		&filterTags,
		&scenario.Status,
		&scenario.IsDeleted,
		&createdBy,
		&scenario.CreatedAt,
		&completedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("error scanning scenario: %v", err)
	}

	scenario.Description = description.String
	scenario.FilterTags = []string(filterTags)
	scenario.CreatedBy = utils.IntPtr(createdBy)
	scenario.CompletedAt = utils.TimePtr(completedAt)
	return scenario, nil
}

func (r *PostgresScenarioRepository) scanTask(row rowScanner) (*models.ScenarioTask, error) {
	task := &models.ScenarioTask{}
	var name sql.NullString
	var completedBy sql.NullInt64
	var completedAt sql.NullTime

	err := row.Scan(
		&task.ID,
		&task.ScenarioID,
		&task.ContactID,
		&task.Phone,
		&name,
		&task.IsCompleted,
		&completedBy,
		&completedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("error scanning scenario task: %v", err)
	}

	task.Name = name.String
	task.CompletedBy = utils.IntPtr(completedBy)
	task.CompletedAt = utils.TimePtr(completedAt)
	return task, nil
}
