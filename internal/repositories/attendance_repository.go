package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"church-admin/internal/models"
	"church-admin/internal/utils"
)

type PostgresAttendanceRepository struct {
	db *sql.DB
}

func NewPostgresAttendanceRepository(db *sql.DB) *PostgresAttendanceRepository {
	return &PostgresAttendanceRepository{db: db}
}

func (r *PostgresAttendanceRepository) Save(attendance *models.Attendance) error {
	query := `
		INSERT INTO attendance (
			contact_id, phone, service_type, service_date, recorded_by, recorded_at
		) VALUES ($1, $2, $3, $4, $5, now())
		RETURNING id, recorded_at`

	err := r.db.QueryRow(query,
		attendance.ContactID,
		attendance.Phone,
		attendance.ServiceType,
		attendance.ServiceDate,
		utils.NullIntPtr(attendance.RecordedBy),
	).Scan(&attendance.ID, &attendance.RecordedAt)

	if err != nil {
		return fmt.Errorf("error saving attendance: %v", err)
	}
	return nil
}

func (r *PostgresAttendanceRepository) GetByID(id int) (*models.Attendance, error) {
	query := `
		SELECT id, contact_id, phone, service_type, service_date, recorded_by, recorded_at
		FROM attendance
		WHERE id = $1`

	attendance := &models.Attendance{}
	var recordedBy sql.NullInt64

	err := r.db.QueryRow(query, id).Scan(
		&attendance.ID,
		&attendance.ContactID,
		&attendance.Phone,
		&attendance.ServiceType,
		&attendance.ServiceDate,
		&recordedBy,
		&attendance.RecordedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error getting attendance: %v", err)
	}

	attendance.RecordedBy = utils.IntPtr(recordedBy)
	return attendance, nil
}

func (r *PostgresAttendanceRepository) Exists(contactID int, serviceType string, day time.Time) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM attendance
			WHERE contact_id = $1
			AND service_type = $2
			AND date(service_date) = date($3)
		)`

	var exists bool
	if err := r.db.QueryRow(query, contactID, serviceType, day).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking attendance: %v", err)
	}
	return exists, nil
}

func (r *PostgresAttendanceRepository) GetAll(filter models.AttendanceFilter) ([]*models.Attendance, error) {
	query := `
		SELECT id, contact_id, phone, service_type, service_date, recorded_by, recorded_at
		FROM attendance
		WHERE 1=1`
	args := []interface{}{}

	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		query += fmt.Sprintf(" AND service_date >= $%d", len(args))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		query += fmt.Sprintf(" AND service_date <= $%d", len(args))
	}
	if filter.ServiceType != "" {
		args = append(args, filter.ServiceType)
		query += fmt.Sprintf(" AND service_type = $%d", len(args))
	}
	if filter.ContactID != 0 {
		args = append(args, filter.ContactID)
		query += fmt.Sprintf(" AND contact_id = $%d", len(args))
	}

	query += " ORDER BY service_date DESC"

	return r.fetchRecords(query, args...)
}

func (r *PostgresAttendanceRepository) GetByContact(contactID int) ([]*models.Attendance, error) {
	query := `
		SELECT id, contact_id, phone, service_type, service_date, recorded_by, recorded_at
		FROM attendance
		WHERE contact_id = $1
		ORDER BY service_date DESC`

	return r.fetchRecords(query, contactID)
}

func (r *PostgresAttendanceRepository) CountByServiceType(dateFrom, dateTo *time.Time) (int, map[string]int, error) {
	query := `SELECT service_type, count(id) FROM attendance WHERE 1=1`
	args := []interface{}{}

	if dateFrom != nil {
		args = append(args, *dateFrom)
		query += fmt.Sprintf(" AND service_date >= $%d", len(args))
	}
	if dateTo != nil {
		args = append(args, *dateTo)
		query += fmt.Sprintf(" AND service_date <= $%d", len(args))
	}

	query += " GROUP BY service_type"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return 0, nil, fmt.Errorf("error querying attendance summary: %v", err)
	}
	defer rows.Close()

	total := 0
	byType := make(map[string]int)
	for rows.Next() {
		var serviceType string
		var count int
		if err := rows.Scan(&serviceType, &count); err != nil {
			return 0, nil, fmt.Errorf("error scanning attendance summary: %v", err)
		}
		byType[serviceType] = count
		total += count
	}

	if err = rows.Err(); err != nil {
		return 0, nil, fmt.Errorf("error iterating attendance summary: %v", err)
	}
	return total, byType, nil
}

func (r *PostgresAttendanceRepository) Delete(id int) error {
	result, err := r.db.Exec(`DELETE FROM attendance WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting attendance: %v", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %v", err)
	}
	if rows == 0 {
		return models.NewNotFoundError("Attendance record not found")
	}
	return nil
}

func (r *PostgresAttendanceRepository) fetchRecords(query string, args ...interface{}) ([]*models.Attendance, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying attendance: %v", err)
	}
	defer rows.Close()

	var records []*models.Attendance
	for rows.Next() {
		attendance := &models.Attendance{}
		var recordedBy sql.NullInt64

		err := rows.Scan(
			&attendance.ID,
			&attendance.ContactID,
			&attendance.Phone,
			&attendance.ServiceType,
			&attendance.ServiceDate,
			&recordedBy,
			&attendance.RecordedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning attendance: %v", err)
		}

		attendance.RecordedBy = utils.IntPtr(recordedBy)
		records = append(records, attendance)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attendance: %v", err)
	}
	return records, nil
}
