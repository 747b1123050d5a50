package repositories

import (
	"database/sql"
	"fmt"

	"church-admin/internal/models"
)

type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Save(user *models.User) error {
	query := `
		INSERT INTO users (email, password_hash, role, is_active, created_at)
		VALUES ($1, $2, $3, $4, now())
		RETURNING id, created_at`

	err := r.db.QueryRow(query,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.IsActive,
	).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		return fmt.Errorf("error saving user: %v", err)
	}
	return nil
}

func (r *PostgresUserRepository) GetByID(id int) (*models.User, error) {
	return r.getBy("id = $1", id)
}

func (r *PostgresUserRepository) GetByEmail(email string) (*models.User, error) {
	return r.getBy("email = $1", email)
}

func (r *PostgresUserRepository) getBy(where string, arg interface{}) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, role, is_active, created_at
		FROM users
		WHERE ` + where

	user := &models.User{}
	err := r.db.QueryRow(query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.IsActive,
		&user.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error getting user: %v", err)
	}
	return user, nil
}
