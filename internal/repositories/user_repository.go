package repositories

import (
	"database/sql"
	"errors"

	"backend/internal/domain"
	"backend/internal/domain/models"

	"github.com/lib/pq"
)

// UserRepository wraps DB access for accounts. Uniqueness of email and name
// is enforced by the users_email_key / users_name_key constraints; the insert
// path translates a violation into a field-level conflict instead of
// pre-checking (which would race).
type UserRepository struct {
	DB *sql.DB
}

const uniqueViolation = "23505"

// Create inserts the account and returns it with generated columns filled in.
func (r UserRepository) Create(u models.User, passwordHash string) (models.User, error) {
	err := r.DB.QueryRow(`
        INSERT INTO users (email, name, password_hash, role, created_at, updated_at)
        VALUES ($1, $2, $3, $4, NOW(), NOW())
        RETURNING id, created_at, updated_at
    `, u.Email, u.Name, passwordHash, u.Role).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			switch pqErr.Constraint {
			case "users_name_key":
				return models.User{}, domain.ConflictError{Field: "name", Msg: "name already in use", Err: err}
			default:
				return models.User{}, domain.ConflictError{Field: "email", Msg: "email already in use", Err: err}
			}
		}
		return models.User{}, err
	}
	return u, nil
}

// GetByEmail loads the account plus its password hash for verification.
func (r UserRepository) GetByEmail(email string) (models.User, string, error) {
	var (
		u     models.User
		hash  string
		image sql.NullString
	)
	err := r.DB.QueryRow(`
        SELECT id, email, name, password_hash, role, image, created_at, updated_at
        FROM users
        WHERE email = $1
    `, email).Scan(&u.ID, &u.Email, &u.Name, &hash, &u.Role, &image, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, "", domain.NotFoundError{Resource: "user", Field: "email", Err: err}
		}
		return models.User{}, "", err
	}
	u.Image = image.String
	return u, hash, nil
}
