// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"inkpress/internal/models"
)

// Fallback category posts are reassigned to when their own category is
// deleted. Created lazily inside the deletion transaction if absent.
const (
	FallbackCategoryName = "Uncategorized"
	FallbackCategorySlug = "uncategorized"
)

// CategoryStore manages categories in the database.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, name, slug, description, featured_image_url,
	featured_image_key, is_featured, created_by, updated_by, created_at, updated_at`

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	err := scanner.Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description, &c.FeaturedImage.URL,
		&c.FeaturedImage.Key, &c.IsFeatured, &c.CreatedBy, &c.UpdatedBy,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns categories ordered by name, with post counts. An empty
// search matches everything; featuredOnly restricts to featured rows.
// Search matches name and description case-insensitively.
func (s *CategoryStore) List(search string, featuredOnly bool) ([]models.Category, error) {
	query := `
		SELECT c.id, c.name, c.slug, c.description, c.featured_image_url,
		       c.featured_image_key, c.is_featured, c.created_by, c.updated_by,
		       c.created_at, c.updated_at,
		       COUNT(p.id) AS post_count
		FROM categories c
		LEFT JOIN posts p ON p.category_id = c.id
	`
	var args []any
	var where []string
	if search != "" {
		args = append(args, "%"+search+"%")
		where = append(where, fmt.Sprintf("(c.name ILIKE $%d OR c.description ILIKE $%d)", len(args), len(args)))
	}
	if featuredOnly {
		where = append(where, "c.is_featured")
	}
	for i, w := range where {
		if i == 0 {
			query += " WHERE " + w
		} else {
			query += " AND " + w
		}
	}
	query += " GROUP BY c.id ORDER BY c.name"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		var c models.Category
		err := rows.Scan(
			&c.ID, &c.Name, &c.Slug, &c.Description, &c.FeaturedImage.URL,
			&c.FeaturedImage.Key, &c.IsFeatured, &c.CreatedBy, &c.UpdatedBy,
			&c.CreatedAt, &c.UpdatedAt, &c.PostCount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// FindByID retrieves a category by ID. Returns nil if not found.
func (s *CategoryStore) FindByID(id uuid.UUID) (*models.Category, error) {
	row := s.db.QueryRow(`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// FindBySlug retrieves a category by slug. Returns nil if not found.
func (s *CategoryStore) FindBySlug(slug string) (*models.Category, error) {
	row := s.db.QueryRow(`SELECT `+categoryColumns+` FROM categories WHERE slug = $1`, slug)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by slug: %w", err)
	}
	return c, nil
}

// SlugExists reports whether another category already uses the slug.
// excludeID skips the row being renamed; pass uuid.Nil on create.
func (s *CategoryStore) SlugExists(slug string, excludeID uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS (SELECT 1 FROM categories WHERE slug = $1 AND id <> $2)
	`, slug, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("category slug exists: %w", err)
	}
	return exists, nil
}

// Create inserts a new category and returns it.
func (s *CategoryStore) Create(c *models.Category) (*models.Category, error) {
	row := s.db.QueryRow(`
		INSERT INTO categories (name, slug, description, featured_image_url,
		                        featured_image_key, is_featured, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+categoryColumns,
		c.Name, c.Slug, c.Description, c.FeaturedImage.URL,
		c.FeaturedImage.Key, c.IsFeatured, c.CreatedBy,
	)
	result, err := scanCategory(row)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return result, nil
}

// Update modifies an existing category and returns the updated row.
func (s *CategoryStore) Update(c *models.Category) (*models.Category, error) {
	row := s.db.QueryRow(`
		UPDATE categories SET
			name = $1, slug = $2, description = $3, featured_image_url = $4,
			featured_image_key = $5, is_featured = $6, updated_by = $7,
			updated_at = NOW()
		WHERE id = $8
		RETURNING `+categoryColumns,
		c.Name, c.Slug, c.Description, c.FeaturedImage.URL,
		c.FeaturedImage.Key, c.IsFeatured, c.UpdatedBy, c.ID,
	)
	result, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return result, nil
}

// DeleteReassigning removes a category after re-homing every post that
// references it to the fallback category, all in one transaction. The
// fallback is created on the fly (owned by actorID) if it does not
// exist yet. Returns the number of reassigned posts.
func (s *CategoryStore) DeleteReassigning(id uuid.UUID, actorID uuid.UUID) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var fallbackID uuid.UUID
	err = tx.QueryRow(`SELECT id FROM categories WHERE slug = $1`, FallbackCategorySlug).Scan(&fallbackID)
	if err == sql.ErrNoRows {
		err = tx.QueryRow(`
			INSERT INTO categories (name, slug, description, created_by)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, FallbackCategoryName, FallbackCategorySlug, "Posts without a category", actorID).Scan(&fallbackID)
	}
	if err != nil {
		return 0, fmt.Errorf("ensure fallback category: %w", err)
	}

	res, err := tx.Exec(`
		UPDATE posts SET category_id = $1, updated_at = NOW()
		WHERE category_id = $2
	`, fallbackID, id)
	if err != nil {
		return 0, fmt.Errorf("reassign posts: %w", err)
	}
	reassigned, _ := res.RowsAffected()

	if _, err := tx.Exec(`DELETE FROM categories WHERE id = $1`, id); err != nil {
		return 0, fmt.Errorf("delete category: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit delete category: %w", err)
	}
	return reassigned, nil
}
