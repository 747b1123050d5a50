package repositories

import (
	"database/sql"
	"fmt"

	"church-admin/internal/models"
	"church-admin/internal/utils"

	"github.com/lib/pq"
)

type PostgresContactRepository struct {
	db *sql.DB
}

func NewPostgresContactRepository(db *sql.DB) *PostgresContactRepository {
	return &PostgresContactRepository{db: db}
}

const contactColumns = `
	id, name, phone, status, tags,
	opt_out_sms, opt_out_whatsapp, created_at, updated_at`

func (r *PostgresContactRepository) Save(contact *models.Contact) error {
	query := `
		INSERT INTO contacts (
			name, phone, status, tags,
			opt_out_sms, opt_out_whatsapp, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(query,
		utils.NullString(contact.Name),
		contact.Phone,
		contact.Status,
		pq.Array(contact.Tags),
		contact.OptOutSMS,
		contact.OptOutWhatsApp,
	).Scan(&contact.ID, &contact.CreatedAt, &contact.UpdatedAt)

	if err != nil {
		return fmt.Errorf("error saving contact: %v", err)
	}
	return nil
}

func (r *PostgresContactRepository) GetByID(id int) (*models.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = $1`
	return r.scanOne(r.db.QueryRow(query, id))
}

func (r *PostgresContactRepository) GetByPhone(phone string) (*models.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE phone = $1`
	return r.scanOne(r.db.QueryRow(query, phone))
}

func (r *PostgresContactRepository) GetAll(filter models.ContactFilter) ([]*models.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE 1=1`
	args := []interface{}{}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		query += fmt.Sprintf(" AND (name ILIKE $%d OR phone ILIKE $%d)", n, n)
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}

	query += " ORDER BY id"

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Skip > 0 {
		args = append(args, filter.Skip)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	return r.fetchContacts(query, args...)
}

func (r *PostgresContactRepository) GetByStatus(status string) ([]*models.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE status = $1 ORDER BY id`
	return r.fetchContacts(query, status)
}

func (r *PostgresContactRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT count(id) FROM contacts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting contacts: %v", err)
	}
	return count, nil
}

func (r *PostgresContactRepository) Update(contact *models.Contact) error {
	query := `
		UPDATE contacts
		SET name = $1,
			phone = $2,
			status = $3,
			tags = $4,
			opt_out_sms = $5,
			opt_out_whatsapp = $6,
			updated_at = now()
		WHERE id = $7`

	result, err := r.db.Exec(query,
		utils.NullString(contact.Name),
		contact.Phone,
		contact.Status,
		pq.Array(contact.Tags),
		contact.OptOutSMS,
		contact.OptOutWhatsApp,
		contact.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating contact: %v", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %v", err)
	}
	if rows == 0 {
		return models.NewNotFoundError("Contact not found")
	}
	return nil
}

func (r *PostgresContactRepository) Delete(id int) error {
	result, err := r.db.Exec(`DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting contact: %v", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %v", err)
	}
	if rows == 0 {
		return models.NewNotFoundError("Contact not found")
	}
	return nil
}

func (r *PostgresContactRepository) fetchContacts(query string, args ...interface{}) ([]*models.Contact, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying contacts: %v", err)
	}
	defer rows.Close()

	var contacts []*models.Contact
	for rows.Next() {
		contact, err := r.scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, contact)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contacts: %v", err)
	}
	return contacts, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *PostgresContactRepository) scanOne(row *sql.Row) (*models.Contact, error) {
	contact, err := r.scanContact(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return contact, err
}

func (r *PostgresContactRepository) scanContact(row rowScanner) (*models.Contact, error) {
	contact := &models.Contact{}
	var name sql.NullString
	var tags pq.StringArray

	err := row.Scan(
		&contact.ID,
		&name,
		&contact.Phone,
		&contact.Status,
		&tags,
		&contact.OptOutSMS,
		&contact.OptOutWhatsApp,
		&contact.CreatedAt,
		&contact.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("error scanning contact: %v", err)
	}

	contact.Name = name.String
	contact.Tags = []string(tags)
	return contact, nil
}
