package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data: a default
// admin account and the "Uncategorized" fallback category. It is a
// no-op when users already exist.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	var adminID string
	err = db.QueryRow(`
		INSERT INTO users (name, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, "Admin", "admin@inkpress.local", string(hash), "admin").Scan(&adminID)
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	// The fallback category that orphaned posts are reassigned to.
	_, err = db.Exec(`
		INSERT INTO categories (name, slug, description, created_by)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (slug) DO NOTHING
	`, "Uncategorized", "uncategorized", "Posts without a category", adminID)
	if err != nil {
		return fmt.Errorf("seed insert fallback category: %w", err)
	}

	slog.Info("database seeded with default admin user",
		"email", "admin@inkpress.local",
		"password", "admin",
	)

	return nil
}
