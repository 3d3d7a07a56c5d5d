// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"inkpress/internal/cache"
	"inkpress/internal/imaging"
	"inkpress/internal/markdown"
	"inkpress/internal/models"
	"inkpress/internal/slug"
	"inkpress/internal/storage"
	appstore "inkpress/internal/store"
)

// Pagination bounds for post listings.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Post field limits, counted in runes.
const (
	maxTitleLen   = 300
	maxContentLen = 100_000
	maxExcerptLen = 1_000
	maxTagCount   = 20
	maxTagLen     = 50
)

// categoryCacheKey is the invalidation prefix for cached category lists.
const categoryCacheKey = "categories"

// CategoryStore is the persistence surface ContentService needs for
// categories.
type CategoryStore interface {
	List(search string, featuredOnly bool) ([]models.Category, error)
	FindByID(id uuid.UUID) (*models.Category, error)
	SlugExists(slug string, excludeID uuid.UUID) (bool, error)
	Create(c *models.Category) (*models.Category, error)
	Update(c *models.Category) (*models.Category, error)
	DeleteReassigning(id, actorID uuid.UUID) (int64, error)
}

// PostStore is the persistence surface ContentService needs for posts.
type PostStore interface {
	List(page, limit int, status models.PostStatus) ([]models.Post, int, error)
	FindByID(id uuid.UUID) (*models.Post, error)
	FindByIDIncrementViews(id uuid.UUID) (*models.Post, error)
	SlugExists(slug string, excludeID uuid.UUID) (bool, error)
	Create(p *models.Post) (*models.Post, error)
	Update(p *models.Post) (*models.Post, error)
	Delete(id uuid.UUID) error
}

// ContentService implements category and post operations.
type ContentService struct {
	categories CategoryStore
	posts      PostStore
	storage    storage.Storage
	lists      *cache.ListCache
}

// NewContentService wires a ContentService. lists may be nil to
// disable caching.
func NewContentService(categories CategoryStore, posts PostStore, store storage.Storage, lists *cache.ListCache) *ContentService {
	return &ContentService{
		categories: categories,
		posts:      posts,
		storage:    store,
		lists:      lists,
	}
}

// ---- Categories ----

// CategoryInput carries category create/update fields.
type CategoryInput struct {
	Name        string
	Description string
	IsFeatured  bool

	ImageData        []byte
	ImageContentType string
}

// ListCategories returns categories with post counts, optionally
// filtered by a search term and the featured flag. Results are served
// from the list cache when possible.
func (s *ContentService) ListCategories(ctx context.Context, search string, featuredOnly bool) ([]models.Category, error) {
	key := fmt.Sprintf("%s:s=%s:f=%t", categoryCacheKey, search, featuredOnly)
	if payload, ok := s.lists.Get(ctx, key); ok {
		var cats []models.Category
		if err := json.Unmarshal(payload, &cats); err == nil {
			return cats, nil
		}
		// Corrupt entry; fall through to the database.
	}

	cats, err := s.categories.List(search, featuredOnly)
	if err != nil {
		return nil, internal(fmt.Errorf("list categories: %w", err))
	}

	if payload, err := json.Marshal(cats); err == nil {
		s.lists.Set(ctx, key, payload)
	}
	return cats, nil
}

// GetCategory returns one category by id.
func (s *ContentService) GetCategory(id uuid.UUID) (*models.Category, error) {
	cat, err := s.categories.FindByID(id)
	if err != nil {
		return nil, internal(fmt.Errorf("find category: %w", err))
	}
	if cat == nil {
		return nil, notFound("category not found")
	}
	return cat, nil
}

// CreateCategory creates a category. Admin only; the slug is derived
// from the name and must be unique.
func (s *ContentService) CreateCategory(ctx context.Context, actor *models.User, in CategoryInput) (*models.Category, error) {
	if !actor.IsAdmin() {
		return nil, forbidden("admin role required")
	}
	name := strings.TrimSpace(in.Name)
	if err := validateCategoryFields(name, in.Description); err != nil {
		return nil, err
	}

	catSlug := slug.Generate(name)
	if taken, err := s.categories.SlugExists(catSlug, uuid.Nil); err != nil {
		return nil, internal(fmt.Errorf("check slug: %w", err))
	} else if taken {
		return nil, invalid("a category with this name already exists")
	}

	cat := &models.Category{
		Name:        name,
		Slug:        catSlug,
		Description: strings.TrimSpace(in.Description),
		IsFeatured:  in.IsFeatured,
		CreatedBy:   actor.ID,
	}

	if len(in.ImageData) > 0 {
		img, err := storeImage(ctx, s.storage, "categories", in.ImageData, in.ImageContentType, imaging.CategoryMaxWidth)
		if err != nil {
			return nil, err
		}
		cat.FeaturedImage = img
	}

	created, err := s.categories.Create(cat)
	if err != nil {
		if !cat.FeaturedImage.Empty() {
			_ = s.storage.Delete(ctx, cat.FeaturedImage.Key)
		}
		if isUniqueViolation(err) {
			return nil, invalid("a category with this name already exists")
		}
		return nil, internal(fmt.Errorf("create category: %w", err))
	}

	s.lists.Invalidate(ctx, categoryCacheKey)
	slog.Info("category created", "id", created.ID, "slug", created.Slug)
	return created, nil
}

// UpdateCategory updates a category. A name change recomputes the
// slug, which must stay unique.
func (s *ContentService) UpdateCategory(ctx context.Context, actor *models.User, id uuid.UUID, in CategoryInput) (*models.Category, error) {
	if !actor.IsAdmin() {
		return nil, forbidden("admin role required")
	}

	cat, err := s.categories.FindByID(id)
	if err != nil {
		return nil, internal(fmt.Errorf("find category: %w", err))
	}
	if cat == nil {
		return nil, notFound("category not found")
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = cat.Name
	}
	desc := strings.TrimSpace(in.Description)
	if err := validateCategoryFields(name, desc); err != nil {
		return nil, err
	}

	if name != cat.Name {
		newSlug := slug.Generate(name)
		if taken, err := s.categories.SlugExists(newSlug, cat.ID); err != nil {
			return nil, internal(fmt.Errorf("check slug: %w", err))
		} else if taken {
			return nil, invalid("a category with this name already exists")
		}
		cat.Slug = newSlug
	}

	cat.Name = name
	cat.Description = desc
	cat.IsFeatured = in.IsFeatured
	cat.UpdatedBy = &actor.ID

	oldImage := cat.FeaturedImage
	if len(in.ImageData) > 0 {
		img, err := storeImage(ctx, s.storage, "categories", in.ImageData, in.ImageContentType, imaging.CategoryMaxWidth)
		if err != nil {
			return nil, err
		}
		cat.FeaturedImage = img
	}

	updated, err := s.categories.Update(cat)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, invalid("a category with this name already exists")
		}
		return nil, internal(fmt.Errorf("update category: %w", err))
	}
	if updated == nil {
		return nil, notFound("category not found")
	}

	if len(in.ImageData) > 0 && !oldImage.Empty() {
		if err := s.storage.Delete(ctx, oldImage.Key); err != nil {
			slog.Warn("delete old category image failed", "key", oldImage.Key, "error", err)
		}
	}

	s.lists.Invalidate(ctx, categoryCacheKey)
	slog.Info("category updated", "id", updated.ID, "slug", updated.Slug)
	return updated, nil
}

// DeleteCategory removes a category after re-homing its posts to the
// "Uncategorized" fallback. The fallback itself cannot be deleted.
// Returns the number of posts reassigned.
func (s *ContentService) DeleteCategory(ctx context.Context, actor *models.User, id uuid.UUID) (int64, error) {
	if !actor.IsAdmin() {
		return 0, forbidden("admin role required")
	}

	cat, err := s.categories.FindByID(id)
	if err != nil {
		return 0, internal(fmt.Errorf("find category: %w", err))
	}
	if cat == nil {
		return 0, notFound("category not found")
	}
	if cat.Slug == appstore.FallbackCategorySlug {
		return 0, invalid("the fallback category cannot be deleted")
	}

	reassigned, err := s.categories.DeleteReassigning(cat.ID, actor.ID)
	if err != nil {
		return 0, internal(fmt.Errorf("delete category: %w", err))
	}

	if !cat.FeaturedImage.Empty() {
		if err := s.storage.Delete(ctx, cat.FeaturedImage.Key); err != nil {
			slog.Warn("delete category image failed", "key", cat.FeaturedImage.Key, "error", err)
		}
	}

	s.lists.Invalidate(ctx, categoryCacheKey)
	slog.Info("category deleted", "id", cat.ID, "reassigned", reassigned)
	return reassigned, nil
}

// validatePostFields enforces length limits on whatever post fields
// are present; empty strings and nil tags pass untouched.
func validatePostFields(title, content, excerpt string, tags []string) error {
	if utf8.RuneCountInString(title) > maxTitleLen {
		return invalid(fmt.Sprintf("title must be at most %d characters", maxTitleLen))
	}
	if utf8.RuneCountInString(content) > maxContentLen {
		return invalid(fmt.Sprintf("content must be at most %d characters", maxContentLen))
	}
	if utf8.RuneCountInString(excerpt) > maxExcerptLen {
		return invalid(fmt.Sprintf("excerpt must be at most %d characters", maxExcerptLen))
	}
	if len(tags) > maxTagCount {
		return invalid(fmt.Sprintf("at most %d tags are allowed", maxTagCount))
	}
	for _, tag := range tags {
		if utf8.RuneCountInString(tag) > maxTagLen {
			return invalid(fmt.Sprintf("tags must be at most %d characters", maxTagLen))
		}
	}
	return nil
}

func validateCategoryFields(name, description string) error {
	if n := utf8.RuneCountInString(name); n < models.CategoryNameMin || n > models.CategoryNameMax {
		return invalid(fmt.Sprintf("category name must be %d to %d characters",
			models.CategoryNameMin, models.CategoryNameMax))
	}
	if utf8.RuneCountInString(description) > models.CategoryDescMax {
		return invalid(fmt.Sprintf("description must be at most %d characters", models.CategoryDescMax))
	}
	return nil
}

// ---- Posts ----

// PostInput carries post create/update fields. On update, zero values
// mean "keep existing" except Tags, where a non-nil empty slice clears
// the tags.
type PostInput struct {
	Title      string
	Content    string
	Excerpt    string
	Tags       []string
	Status     models.PostStatus
	CategoryID uuid.UUID

	ImageData        []byte
	ImageContentType string
}

// ListPosts returns a page of posts, newest first, optionally filtered
// by status. Returns the posts, the total match count, and the total
// number of pages.
func (s *ContentService) ListPosts(page, limit int, status models.PostStatus) ([]models.Post, int, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if status != "" && !models.ValidPostStatus(status) {
		return nil, 0, 0, invalid("invalid status filter")
	}

	posts, total, err := s.posts.List(page, limit, status)
	if err != nil {
		return nil, 0, 0, internal(fmt.Errorf("list posts: %w", err))
	}

	totalPages := (total + limit - 1) / limit
	return posts, total, totalPages, nil
}

// GetPost returns one post with its rendered HTML body. When
// countView is set the read also increments the view counter
// atomically.
func (s *ContentService) GetPost(id uuid.UUID, countView bool) (*models.Post, error) {
	var (
		post *models.Post
		err  error
	)
	if countView {
		post, err = s.posts.FindByIDIncrementViews(id)
	} else {
		post, err = s.posts.FindByID(id)
	}
	if err != nil {
		return nil, internal(fmt.Errorf("find post: %w", err))
	}
	if post == nil {
		return nil, notFound("post not found")
	}

	html, err := markdown.ToHTML(post.Content)
	if err != nil {
		slog.Warn("render post content failed", "id", post.ID, "error", err)
	} else {
		post.ContentHTML = html
	}
	return post, nil
}

// CreatePost creates a post authored by actor. The author is always
// the caller; it cannot be set from input.
func (s *ContentService) CreatePost(ctx context.Context, actor *models.User, in PostInput) (*models.Post, error) {
	if !actor.CanAuthor() {
		return nil, forbidden("author or admin role required")
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, invalid("title is required")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, invalid("content is required")
	}
	if in.CategoryID == uuid.Nil {
		return nil, invalid("category is required")
	}
	if err := validatePostFields(title, in.Content, in.Excerpt, in.Tags); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = models.PostStatusDraft
	}
	if !models.ValidPostStatus(status) {
		return nil, invalid("invalid status")
	}

	if cat, err := s.categories.FindByID(in.CategoryID); err != nil {
		return nil, internal(fmt.Errorf("find category: %w", err))
	} else if cat == nil {
		return nil, invalid("category does not exist")
	}

	postSlug := slug.Generate(title)
	if taken, err := s.posts.SlugExists(postSlug, uuid.Nil); err != nil {
		return nil, internal(fmt.Errorf("check slug: %w", err))
	} else if taken {
		return nil, invalid("a post with this title already exists")
	}

	post := &models.Post{
		Title:      title,
		Slug:       postSlug,
		Content:    in.Content,
		Excerpt:    strings.TrimSpace(in.Excerpt),
		Tags:       in.Tags,
		Status:     status,
		CategoryID: in.CategoryID,
		AuthorID:   actor.ID,
	}

	if len(in.ImageData) > 0 {
		img, err := storeImage(ctx, s.storage, "posts", in.ImageData, in.ImageContentType, imaging.PostMaxWidth)
		if err != nil {
			return nil, err
		}
		post.FeaturedImage = img
	}

	created, err := s.posts.Create(post)
	if err != nil {
		if !post.FeaturedImage.Empty() {
			_ = s.storage.Delete(ctx, post.FeaturedImage.Key)
		}
		if isUniqueViolation(err) {
			return nil, invalid("a post with this title already exists")
		}
		return nil, internal(fmt.Errorf("create post: %w", err))
	}

	slog.Info("post created", "id", created.ID, "slug", created.Slug, "author", actor.ID)
	return created, nil
}

// UpdatePost updates a post. Only the post's author or an admin may
// modify it; a title change recomputes the slug.
func (s *ContentService) UpdatePost(ctx context.Context, actor *models.User, id uuid.UUID, in PostInput) (*models.Post, error) {
	post, err := s.posts.FindByID(id)
	if err != nil {
		return nil, internal(fmt.Errorf("find post: %w", err))
	}
	if post == nil {
		return nil, notFound("post not found")
	}
	if !post.CanModify(actor) {
		return nil, forbidden("not allowed to modify this post")
	}
	if err := validatePostFields(strings.TrimSpace(in.Title), in.Content, in.Excerpt, in.Tags); err != nil {
		return nil, err
	}

	if title := strings.TrimSpace(in.Title); title != "" && title != post.Title {
		newSlug := slug.Generate(title)
		if taken, err := s.posts.SlugExists(newSlug, post.ID); err != nil {
			return nil, internal(fmt.Errorf("check slug: %w", err))
		} else if taken {
			return nil, invalid("a post with this title already exists")
		}
		post.Title = title
		post.Slug = newSlug
	}

	if in.Content != "" {
		post.Content = in.Content
	}
	if in.Excerpt != "" {
		post.Excerpt = strings.TrimSpace(in.Excerpt)
	}
	if in.Tags != nil {
		post.Tags = in.Tags
	}
	if in.Status != "" {
		if !models.ValidPostStatus(in.Status) {
			return nil, invalid("invalid status")
		}
		post.Status = in.Status
	}
	if in.CategoryID != uuid.Nil && in.CategoryID != post.CategoryID {
		if cat, err := s.categories.FindByID(in.CategoryID); err != nil {
			return nil, internal(fmt.Errorf("find category: %w", err))
		} else if cat == nil {
			return nil, invalid("category does not exist")
		}
		post.CategoryID = in.CategoryID
	}

	oldImage := post.FeaturedImage
	if len(in.ImageData) > 0 {
		img, err := storeImage(ctx, s.storage, "posts", in.ImageData, in.ImageContentType, imaging.PostMaxWidth)
		if err != nil {
			return nil, err
		}
		post.FeaturedImage = img
	}

	updated, err := s.posts.Update(post)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, invalid("a post with this title already exists")
		}
		return nil, internal(fmt.Errorf("update post: %w", err))
	}
	if updated == nil {
		return nil, notFound("post not found")
	}

	if len(in.ImageData) > 0 && !oldImage.Empty() {
		if err := s.storage.Delete(ctx, oldImage.Key); err != nil {
			slog.Warn("delete old post image failed", "key", oldImage.Key, "error", err)
		}
	}

	slog.Info("post updated", "id", updated.ID, "slug", updated.Slug)
	return updated, nil
}

// DeletePost removes a post. Only the post's author or an admin may
// delete it.
func (s *ContentService) DeletePost(ctx context.Context, actor *models.User, id uuid.UUID) error {
	post, err := s.posts.FindByID(id)
	if err != nil {
		return internal(fmt.Errorf("find post: %w", err))
	}
	if post == nil {
		return notFound("post not found")
	}
	if !post.CanModify(actor) {
		return forbidden("not allowed to delete this post")
	}

	if err := s.posts.Delete(post.ID); err != nil {
		return internal(fmt.Errorf("delete post: %w", err))
	}

	if !post.FeaturedImage.Empty() {
		if err := s.storage.Delete(ctx, post.FeaturedImage.Key); err != nil {
			slog.Warn("delete post image failed", "key", post.FeaturedImage.Key, "error", err)
		}
	}

	slog.Info("post deleted", "id", post.ID, "by", actor.ID)
	return nil
}
