package repository

import (
	"database/sql"
	"fmt"

	"github.com/teenbudget/backend/internal/models"
)

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(user *models.User) error {
	query := `
		INSERT INTO teenbudget.users (name, email, password_hash, email_verified, verification_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query, user.Name, user.Email, user.PasswordHash, user.EmailVerified, user.VerificationCode).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, name, email, password_hash, email_verified, verification_code, reset_code, created_at, updated_at
		FROM teenbudget.users
		WHERE email = $1`
	err := r.db.QueryRow(query, email).
		Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.EmailVerified,
			&user.VerificationCode, &user.ResetCode, &user.CreatedAt, &user.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// FindUserByID retrieves a user by id
func (r *Repository) FindUserByID(id int64) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, name, email, password_hash, email_verified, verification_code, reset_code, created_at, updated_at
		FROM teenbudget.users
		WHERE id = $1`
	err := r.db.QueryRow(query, id).
		Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.EmailVerified,
			&user.VerificationCode, &user.ResetCode, &user.CreatedAt, &user.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// SetVerificationCode stores a fresh email verification code
func (r *Repository) SetVerificationCode(email, code string) error {
	query := `
		UPDATE teenbudget.users
		SET verification_code = $2, updated_at = CURRENT_TIMESTAMP
		WHERE email = $1`
	if err := r.execOne(query, email, code); err != nil {
		return fmt.Errorf("failed to set verification code: %w", err)
	}
	return nil
}

// MarkEmailVerified flags the user as verified and clears the code
func (r *Repository) MarkEmailVerified(email string) error {
	query := `
		UPDATE teenbudget.users
		SET email_verified = TRUE, verification_code = '', updated_at = CURRENT_TIMESTAMP
		WHERE email = $1`
	if err := r.execOne(query, email); err != nil {
		return fmt.Errorf("failed to mark email verified: %w", err)
	}
	return nil
}

// SetResetCode stores a password reset code
func (r *Repository) SetResetCode(email, code string) error {
	query := `
		UPDATE teenbudget.users
		SET reset_code = $2, updated_at = CURRENT_TIMESTAMP
		WHERE email = $1`
	if err := r.execOne(query, email, code); err != nil {
		return fmt.Errorf("failed to set reset code: %w", err)
	}
	return nil
}

// UpdatePassword replaces the password hash and clears the reset code
func (r *Repository) UpdatePassword(email, passwordHash string) error {
	query := `
		UPDATE teenbudget.users
		SET password_hash = $2, reset_code = '', updated_at = CURRENT_TIMESTAMP
		WHERE email = $1`
	if err := r.execOne(query, email, passwordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// execOne runs a statement that must affect exactly one row
func (r *Repository) execOne(query string, args ...any) error {
	res, err := r.db.Exec(query, args...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
