// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"inkpress/internal/models"
)

// PostStore handles all post-related database operations.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

// postSelect joins author and category so list and detail responses can
// carry their display fields without extra round trips.
const postSelect = `
	SELECT p.id, p.title, p.slug, p.content, p.excerpt, p.tags, p.status,
	       p.featured_image_url, p.featured_image_key, p.category_id,
	       p.author_id, p.view_count, p.created_at, p.updated_at,
	       u.name, u.email, c.name, c.slug
	FROM posts p
	JOIN users u ON u.id = p.author_id
	JOIN categories c ON c.id = p.category_id
`

// scanPost scans a joined row into a Post struct, decoding the JSONB
// tags column.
func scanPost(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	p := &models.Post{}
	var tags []byte
	err := scanner.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Content, &p.Excerpt, &tags, &p.Status,
		&p.FeaturedImage.URL, &p.FeaturedImage.Key, &p.CategoryID,
		&p.AuthorID, &p.ViewCount, &p.CreatedAt, &p.UpdatedAt,
		&p.AuthorName, &p.AuthorEmail, &p.CategoryName, &p.CategorySlug,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(tags, &p.Tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	return p, nil
}

// List returns one page of posts ordered newest-created-first, plus the
// total count matching the filter. page is 1-indexed. An empty status
// matches all statuses.
func (s *PostStore) List(page, limit int, status models.PostStatus) ([]models.Post, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	countQuery := `SELECT COUNT(*) FROM posts`
	query := postSelect
	var args []any
	if status != "" {
		args = append(args, status)
		countQuery += ` WHERE status = $1`
		query += ` WHERE p.status = $1`
	}

	var total int
	if err := s.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	args = append(args, limit, (page-1)*limit)
	query += fmt.Sprintf(" ORDER BY p.created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var items []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan post: %w", err)
		}
		items = append(items, *p)
	}
	return items, total, rows.Err()
}

// FindByID retrieves a post by its UUID. Returns nil if not found.
func (s *PostStore) FindByID(id uuid.UUID) (*models.Post, error) {
	row := s.db.QueryRow(postSelect+` WHERE p.id = $1`, id)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return p, nil
}

// FindByIDIncrementViews retrieves a post and bumps its view counter in
// a single atomic statement, so concurrent reads never lose increments.
// Returns nil if not found.
func (s *PostStore) FindByIDIncrementViews(id uuid.UUID) (*models.Post, error) {
	row := s.db.QueryRow(`
		WITH bumped AS (
			UPDATE posts SET view_count = view_count + 1
			WHERE id = $1
			RETURNING *
		)
		SELECT p.id, p.title, p.slug, p.content, p.excerpt, p.tags, p.status,
		       p.featured_image_url, p.featured_image_key, p.category_id,
		       p.author_id, p.view_count, p.created_at, p.updated_at,
		       u.name, u.email, c.name, c.slug
		FROM bumped p
		JOIN users u ON u.id = p.author_id
		JOIN categories c ON c.id = p.category_id
	`, id)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post incrementing views: %w", err)
	}
	return p, nil
}

// SlugExists reports whether another post already uses the slug.
// excludeID skips the row being renamed; pass uuid.Nil on create.
func (s *PostStore) SlugExists(slug string, excludeID uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS (SELECT 1 FROM posts WHERE slug = $1 AND id <> $2)
	`, slug, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("post slug exists: %w", err)
	}
	return exists, nil
}

// Create inserts a new post and returns it with the generated ID.
func (s *PostStore) Create(p *models.Post) (*models.Post, error) {
	tags, err := json.Marshal(tagsOrEmpty(p.Tags))
	if err != nil {
		return nil, fmt.Errorf("encode tags: %w", err)
	}

	var id uuid.UUID
	err = s.db.QueryRow(`
		INSERT INTO posts (title, slug, content, excerpt, tags, status,
		                   featured_image_url, featured_image_key,
		                   category_id, author_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`, p.Title, p.Slug, p.Content, p.Excerpt, tags, p.Status,
		p.FeaturedImage.URL, p.FeaturedImage.Key, p.CategoryID, p.AuthorID,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return s.FindByID(id)
}

// Update modifies an existing post and returns the updated row.
func (s *PostStore) Update(p *models.Post) (*models.Post, error) {
	tags, err := json.Marshal(tagsOrEmpty(p.Tags))
	if err != nil {
		return nil, fmt.Errorf("encode tags: %w", err)
	}

	res, err := s.db.Exec(`
		UPDATE posts SET
			title = $1, slug = $2, content = $3, excerpt = $4, tags = $5,
			status = $6, featured_image_url = $7, featured_image_key = $8,
			category_id = $9, updated_at = NOW()
		WHERE id = $10
	`, p.Title, p.Slug, p.Content, p.Excerpt, tags, p.Status,
		p.FeaturedImage.URL, p.FeaturedImage.Key, p.CategoryID, p.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil
	}
	return s.FindByID(p.ID)
}

// Delete removes a post by ID.
func (s *PostStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// CountByCategory returns the number of posts referencing a category.
func (s *PostStore) CountByCategory(categoryID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM posts WHERE category_id = $1`, categoryID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count posts by category: %w", err)
	}
	return count, nil
}

// tagsOrEmpty normalizes nil tag slices so the JSONB column always
// holds an array, never null.
func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
