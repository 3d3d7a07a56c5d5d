// store_test.go provides shared test infrastructure for store
// integration tests. Tests are skipped when PostgreSQL is unavailable.
package store

import (
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"inkpress/internal/database"
	"inkpress/internal/models"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "inkpress")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "inkpress")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testUser creates a throwaway user and registers cleanup.
func testUser(t *testing.T, db *sql.DB, email string, role models.Role) *models.User {
	t.Helper()
	s := NewUserStore(db)
	u, err := s.Create("Store Test", email, "testpass123", role)
	if err != nil {
		t.Fatalf("create test user: %v", err)
	}
	t.Cleanup(func() { cleanUsers(t, db, email) })
	return u
}

// testCategory creates a throwaway category and registers cleanup.
func testCategory(t *testing.T, db *sql.DB, name, slug string, createdBy uuid.UUID) *models.Category {
	t.Helper()
	s := NewCategoryStore(db)
	c, err := s.Create(&models.Category{Name: name, Slug: slug, CreatedBy: createdBy})
	if err != nil {
		t.Fatalf("create test category: %v", err)
	}
	t.Cleanup(func() { cleanCategories(t, db, slug) })
	return c
}

func cleanUsers(t *testing.T, db *sql.DB, emails ...string) {
	t.Helper()
	for _, e := range emails {
		if _, err := db.Exec(`DELETE FROM users WHERE email = $1`, e); err != nil {
			t.Logf("cleanup user %s: %v", e, err)
		}
	}
}

func cleanCategories(t *testing.T, db *sql.DB, slugs ...string) {
	t.Helper()
	for _, s := range slugs {
		if _, err := db.Exec(`DELETE FROM categories WHERE slug = $1`, s); err != nil {
			t.Logf("cleanup category %s: %v", s, err)
		}
	}
}

func cleanPosts(t *testing.T, db *sql.DB, slugs ...string) {
	t.Helper()
	for _, s := range slugs {
		if _, err := db.Exec(`DELETE FROM posts WHERE slug = $1`, s); err != nil {
			t.Logf("cleanup post %s: %v", s, err)
		}
	}
}
