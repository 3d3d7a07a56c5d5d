// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package mocks provides in-memory fakes of the store and storage
// surfaces so service and handler tests run without PostgreSQL, Valkey,
// or an object store.
package mocks

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"inkpress/internal/models"
)

// uniqueViolation mimics the error the real stores surface when a
// unique constraint fires.
func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

// UserStore is an in-memory implementation of service.UserStore.
type UserStore struct {
	Users map[uuid.UUID]*models.User

	// CreateErr, when set, is returned by Create.
	CreateErr error
}

func NewUserStore() *UserStore {
	return &UserStore{Users: make(map[uuid.UUID]*models.User)}
}

func (m *UserStore) FindByEmail(email string) (*models.User, error) {
	for _, u := range m.Users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *UserStore) FindByID(id uuid.UUID) (*models.User, error) {
	u, ok := m.Users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *UserStore) Create(name, email, password string, role models.Role) (*models.User, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	for _, u := range m.Users {
		if u.Email == email {
			return nil, uniqueViolation("users_email_key")
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	u := &models.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	m.Users[u.ID] = u
	cp := *u
	return &cp, nil
}

func (m *UserStore) UpdateDetails(id uuid.UUID, name, email, bio, website string) (*models.User, error) {
	u, ok := m.Users[id]
	if !ok {
		return nil, nil
	}
	for _, other := range m.Users {
		if other.ID != id && other.Email == email {
			return nil, uniqueViolation("users_email_key")
		}
	}
	u.Name, u.Email, u.Bio, u.Website = name, email, bio, website
	u.UpdatedAt = time.Now()
	cp := *u
	return &cp, nil
}

func (m *UserStore) UpdateAvatar(id uuid.UUID, img models.Image) error {
	if u, ok := m.Users[id]; ok {
		u.Avatar = img
	}
	return nil
}

func (m *UserStore) UpdatePassword(id uuid.UUID, password string) error {
	u, ok := m.Users[id]
	if !ok {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

func (m *UserStore) SetResetToken(id uuid.UUID, tokenHash string, expires time.Time) error {
	if u, ok := m.Users[id]; ok {
		u.ResetTokenHash = &tokenHash
		u.ResetTokenExpires = &expires
	}
	return nil
}

func (m *UserStore) FindByValidResetToken(tokenHash string) (*models.User, error) {
	for _, u := range m.Users {
		if u.ResetTokenHash != nil && *u.ResetTokenHash == tokenHash &&
			u.ResetTokenExpires != nil && u.ResetTokenExpires.After(time.Now()) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *UserStore) ClearResetToken(id uuid.UUID) error {
	if u, ok := m.Users[id]; ok {
		u.ResetTokenHash = nil
		u.ResetTokenExpires = nil
	}
	return nil
}

func (m *UserStore) CheckPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

// CategoryStore is an in-memory implementation of service.CategoryStore.
type CategoryStore struct {
	Categories map[uuid.UUID]*models.Category
	// Posts, when set, is consulted for reassignment on delete.
	Posts *PostStore
}

func NewCategoryStore() *CategoryStore {
	return &CategoryStore{Categories: make(map[uuid.UUID]*models.Category)}
}

// Add seeds a category and returns it.
func (m *CategoryStore) Add(name, slug string, createdBy uuid.UUID) *models.Category {
	now := time.Now()
	c := &models.Category{
		ID:        uuid.New(),
		Name:      name,
		Slug:      slug,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.Categories[c.ID] = c
	return c
}

func (m *CategoryStore) List(search string, featuredOnly bool) ([]models.Category, error) {
	out := make([]models.Category, 0, len(m.Categories))
	for _, c := range m.Categories {
		if featuredOnly && !c.IsFeatured {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(c.Name), strings.ToLower(search)) &&
			!strings.Contains(strings.ToLower(c.Description), strings.ToLower(search)) {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *CategoryStore) FindByID(id uuid.UUID) (*models.Category, error) {
	c, ok := m.Categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *CategoryStore) SlugExists(slug string, excludeID uuid.UUID) (bool, error) {
	for _, c := range m.Categories {
		if c.Slug == slug && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *CategoryStore) Create(c *models.Category) (*models.Category, error) {
	for _, other := range m.Categories {
		if other.Slug == c.Slug || other.Name == c.Name {
			return nil, uniqueViolation("categories_slug_key")
		}
	}
	cp := *c
	cp.ID = uuid.New()
	now := time.Now()
	cp.CreatedAt, cp.UpdatedAt = now, now
	m.Categories[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *CategoryStore) Update(c *models.Category) (*models.Category, error) {
	if _, ok := m.Categories[c.ID]; !ok {
		return nil, nil
	}
	cp := *c
	cp.UpdatedAt = time.Now()
	m.Categories[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *CategoryStore) DeleteReassigning(id, actorID uuid.UUID) (int64, error) {
	if _, ok := m.Categories[id]; !ok {
		return 0, nil
	}

	var fallback *models.Category
	for _, c := range m.Categories {
		if c.Slug == "uncategorized" {
			fallback = c
			break
		}
	}
	if fallback == nil {
		fallback = m.Add("Uncategorized", "uncategorized", actorID)
	}

	var moved int64
	if m.Posts != nil {
		for _, p := range m.Posts.Posts {
			if p.CategoryID == id {
				p.CategoryID = fallback.ID
				moved++
			}
		}
	}
	delete(m.Categories, id)
	return moved, nil
}

// PostStore is an in-memory implementation of service.PostStore.
type PostStore struct {
	Posts map[uuid.UUID]*models.Post
}

func NewPostStore() *PostStore {
	return &PostStore{Posts: make(map[uuid.UUID]*models.Post)}
}

func (m *PostStore) List(page, limit int, status models.PostStatus) ([]models.Post, int, error) {
	all := make([]models.Post, 0, len(m.Posts))
	for _, p := range m.Posts {
		if status != "" && p.Status != status {
			continue
		}
		all = append(all, *p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	total := len(all)
	start := (page - 1) * limit
	if start >= total {
		return []models.Post{}, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

func (m *PostStore) FindByID(id uuid.UUID) (*models.Post, error) {
	p, ok := m.Posts[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *PostStore) FindByIDIncrementViews(id uuid.UUID) (*models.Post, error) {
	p, ok := m.Posts[id]
	if !ok {
		return nil, nil
	}
	p.ViewCount++
	cp := *p
	return &cp, nil
}

func (m *PostStore) SlugExists(slug string, excludeID uuid.UUID) (bool, error) {
	for _, p := range m.Posts {
		if p.Slug == slug && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *PostStore) Create(p *models.Post) (*models.Post, error) {
	for _, other := range m.Posts {
		if other.Slug == p.Slug {
			return nil, uniqueViolation("posts_slug_key")
		}
	}
	cp := *p
	cp.ID = uuid.New()
	now := time.Now()
	cp.CreatedAt, cp.UpdatedAt = now, now
	if cp.Tags == nil {
		cp.Tags = []string{}
	}
	m.Posts[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *PostStore) Update(p *models.Post) (*models.Post, error) {
	if _, ok := m.Posts[p.ID]; !ok {
		return nil, nil
	}
	cp := *p
	cp.UpdatedAt = time.Now()
	m.Posts[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *PostStore) Delete(id uuid.UUID) error {
	delete(m.Posts, id)
	return nil
}
