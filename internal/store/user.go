// Package store provides database access methods for all inkpress
// entities. Each store struct wraps a *sql.DB and exposes typed query methods.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"inkpress/internal/models"
)

// IsUniqueViolation reports whether err is a PostgreSQL unique
// constraint violation (duplicate email, name, or slug).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// UserStore handles all user-related database operations.
type UserStore struct {
	db *sql.DB
}

// NewUserStore creates a new UserStore with the given database connection.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

const userColumns = `id, name, email, password_hash, role, bio, website,
	avatar_url, avatar_key, reset_token_hash, reset_token_expires,
	created_at, updated_at`

// scanUser scans a row into a User struct.
func scanUser(scanner interface{ Scan(...any) error }) (*models.User, error) {
	u := &models.User{}
	err := scanner.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Bio, &u.Website,
		&u.Avatar.URL, &u.Avatar.Key, &u.ResetTokenHash, &u.ResetTokenExpires,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// FindByEmail retrieves a user by their email address. Returns nil if not found.
func (s *UserStore) FindByEmail(email string) (*models.User, error) {
	row := s.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

// FindByID retrieves a user by their UUID. Returns nil if not found.
func (s *UserStore) FindByID(id uuid.UUID) (*models.User, error) {
	row := s.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

// Create inserts a new user with a bcrypt-hashed password.
func (s *UserStore) Create(name, email, password string, role models.Role) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	row := s.db.QueryRow(`
		INSERT INTO users (name, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns,
		name, email, string(hash), role,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// UpdateDetails modifies a user's profile fields and returns the
// updated row.
func (s *UserStore) UpdateDetails(id uuid.UUID, name, email, bio, website string) (*models.User, error) {
	row := s.db.QueryRow(`
		UPDATE users SET
			name = $1, email = $2, bio = $3, website = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING `+userColumns,
		name, email, bio, website, id,
	)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update user details: %w", err)
	}
	return u, nil
}

// UpdateAvatar replaces the stored avatar reference.
func (s *UserStore) UpdateAvatar(id uuid.UUID, img models.Image) error {
	_, err := s.db.Exec(`
		UPDATE users SET avatar_url = $1, avatar_key = $2, updated_at = NOW()
		WHERE id = $3
	`, img.URL, img.Key, id)
	if err != nil {
		return fmt.Errorf("update avatar: %w", err)
	}
	return nil
}

// UpdatePassword stores a new bcrypt hash for the user.
func (s *UserStore) UpdatePassword(id uuid.UUID, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	_, err = s.db.Exec(`
		UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2
	`, string(hash), id)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// SetResetToken stores the hashed single-use reset token with its expiry.
func (s *UserStore) SetResetToken(id uuid.UUID, tokenHash string, expires time.Time) error {
	_, err := s.db.Exec(`
		UPDATE users SET reset_token_hash = $1, reset_token_expires = $2, updated_at = NOW()
		WHERE id = $3
	`, tokenHash, expires, id)
	if err != nil {
		return fmt.Errorf("set reset token: %w", err)
	}
	return nil
}

// FindByValidResetToken retrieves the user holding an unexpired reset
// token with the given hash. Returns nil if no match.
func (s *UserStore) FindByValidResetToken(tokenHash string) (*models.User, error) {
	row := s.db.QueryRow(`
		SELECT `+userColumns+` FROM users
		WHERE reset_token_hash = $1 AND reset_token_expires > NOW()
	`, tokenHash)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by reset token: %w", err)
	}
	return u, nil
}

// ClearResetToken invalidates any outstanding reset token (single use).
func (s *UserStore) ClearResetToken(id uuid.UUID) error {
	_, err := s.db.Exec(`
		UPDATE users SET reset_token_hash = NULL, reset_token_expires = NULL, updated_at = NOW()
		WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("clear reset token: %w", err)
	}
	return nil
}

// CheckPassword verifies a plaintext password against the user's stored hash.
func (s *UserStore) CheckPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}
