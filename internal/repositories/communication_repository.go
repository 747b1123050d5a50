package repositories

import (
	"database/sql"
	"fmt"

	"church-admin/internal/models"
	"church-admin/internal/utils"
)

type PostgresCommunicationRepository struct {
	db *sql.DB
}

func NewPostgresCommunicationRepository(db *sql.DB) *PostgresCommunicationRepository {
	return &PostgresCommunicationRepository{db: db}
}

const communicationColumns = `
	id, message_type, recipient_group, subject, message,
	scheduled_at, sent_at, status, sent_count, failed_count,
	created_by, created_at`

func (r *PostgresCommunicationRepository) Save(communication *models.Communication) error {
	query := `
		INSERT INTO communications (
			message_type, recipient_group, subject, message,
			scheduled_at, status, sent_count, failed_count, created_by, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, 0, 0, $7, now())
		RETURNING id, created_at`

	err := r.db.QueryRow(query,
		communication.MessageType,
		communication.RecipientGroup,
		utils.NullString(communication.Subject),
		communication.Message,
		utils.NullTime(communication.ScheduledAt),
		communication.Status,
		utils.NullIntPtr(communication.CreatedBy),
	).Scan(&communication.ID, &communication.CreatedAt)

	if err != nil {
		return fmt.Errorf("error saving communication: %v", err)
	}
	return nil
}

func (r *PostgresCommunicationRepository) GetByID(id int) (*models.Communication, error) {
	query := `SELECT ` + communicationColumns + ` FROM communications WHERE id = $1`

	communication, err := r.scanCommunication(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return communication, err
}

func (r *PostgresCommunicationRepository) GetAll(createdBy int) ([]*models.Communication, error) {
	query := `SELECT ` + communicationColumns + ` FROM communications WHERE 1=1`
	args := []interface{}{}

	if createdBy != 0 {
		args = append(args, createdBy)
		query += fmt.Sprintf(" AND created_by = $%d", len(args))
	}

	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying communications: %v", err)
	}
	defer rows.Close()

	var communications []*models.Communication
	for rows.Next() {
		communication, err := r.scanCommunication(rows)
		if err != nil {
			return nil, err
		}
		communications = append(communications, communication)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating communications: %v", err)
	}
	return communications, nil
}

func (r *PostgresCommunicationRepository) TotalSent() (int, error) {
	return r.sumColumn("sent_count")
}

func (r *PostgresCommunicationRepository) TotalFailed() (int, error) {
	return r.sumColumn("failed_count")
}

func (r *PostgresCommunicationRepository) sumColumn(column string) (int, error) {
	query := fmt.Sprintf(`SELECT COALESCE(SUM(%s), 0) FROM communications`, column)

	var total int
	if err := r.db.QueryRow(query).Scan(&total); err != nil {
		return 0, fmt.Errorf("error summing communication %s: %v", column, err)
	}
	return total, nil
}

func (r *PostgresCommunicationRepository) CountByType() (map[string]int, error) {
	rows, err := r.db.Query(`SELECT message_type, count(id) FROM communications GROUP BY message_type`)
	if err != nil {
		return nil, fmt.Errorf("error counting communications by type: %v", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var messageType string
		var count int
		if err := rows.Scan(&messageType, &count); err != nil {
			return nil, fmt.Errorf("error scanning communication counts: %v", err)
		}
		counts[messageType] = count
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating communication counts: %v", err)
	}
	return counts, nil
}

func (r *PostgresCommunicationRepository) Update(communication *models.Communication) error {
	query := `
		UPDATE communications
		SET subject = $1,
			message = $2,
			scheduled_at = $3,
			sent_at = $4,
			status = $5,
			sent_count = $6,
			failed_count = $7
		WHERE id = $8`

	result, err := r.db.Exec(query,
		utils.NullString(communication.Subject),
		communication.Message,
		utils.NullTime(communication.ScheduledAt),
		utils.NullTime(communication.SentAt),
		communication.Status,
		communication.SentCount,
		communication.FailedCount,
		communication.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating communication: %v", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %v", err)
	}
	if rows == 0 {
		return models.NewNotFoundError("Communication not found")
	}
	return nil
}

func (r *PostgresCommunicationRepository) Delete(id int) error {
	result, err := r.db.Exec(`DELETE FROM communications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting communication: %v", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %v", err)
	}
	if rows == 0 {
		return models.NewNotFoundError("Communication not found")
	}
	return nil
}

func (r *PostgresCommunicationRepository) scanCommunication(row rowScanner) (*models.Communication, error) {
	communication := &models.Communication{}
	var subject sql.NullString
	var scheduledAt, sentAt sql.NullTime
	var createdBy sql.NullInt64

	err := row.Scan(
		&communication.ID,
		&communication.MessageType,
		&communication.RecipientGroup,
		&subject,
		&communication.Message,
		&scheduledAt,
		&sentAt,
		&communication.Status,
		&communication.SentCount,
		&communication.FailedCount,
		&createdBy,
		&communication.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("error scanning communication: %v", err)
	}

	communication.Subject = subject.String
	communication.ScheduledAt = utils.TimePtr(scheduledAt)
	communication.SentAt = utils.TimePtr(sentAt)
	communication.CreatedBy = utils.IntPtr(createdBy)
	return communication, nil
}
