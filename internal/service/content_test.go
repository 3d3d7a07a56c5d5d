// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"

	"inkpress/internal/mocks"
	"inkpress/internal/models"
	"inkpress/internal/service"
)

type contentFixture struct {
	svc        *service.ContentService
	categories *mocks.CategoryStore
	posts      *mocks.PostStore
	storage    *mocks.Storage
	admin      *models.User
	author     *models.User
	reader     *models.User
}

func newContentFixture(t *testing.T) *contentFixture {
	t.Helper()
	categories := mocks.NewCategoryStore()
	posts := mocks.NewPostStore()
	categories.Posts = posts
	st := mocks.NewStorage()
	return &contentFixture{
		svc:        service.NewContentService(categories, posts, st, nil),
		categories: categories,
		posts:      posts,
		storage:    st,
		admin:      &models.User{ID: uuid.New(), Role: models.RoleAdmin},
		author:     &models.User{ID: uuid.New(), Role: models.RoleAuthor},
		reader:     &models.User{ID: uuid.New(), Role: models.RoleReader},
	}
}

func TestCreateCategory(t *testing.T) {
	f := newContentFixture(t)

	cat, err := f.svc.CreateCategory(context.Background(), f.admin, service.CategoryInput{
		Name:        "Tech & Science!",
		Description: "news and essays",
	})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if cat.Slug != "tech-science" {
		t.Errorf("slug = %q, want tech-science", cat.Slug)
	}
	if cat.CreatedBy != f.admin.ID {
		t.Errorf("createdBy = %v, want admin", cat.CreatedBy)
	}

	// Same name again collides on the slug.
	_, err = f.svc.CreateCategory(context.Background(), f.admin, service.CategoryInput{Name: "Tech & Science"})
	if service.KindOf(err) != service.KindValidation {
		t.Errorf("duplicate kind = %v, want validation", service.KindOf(err))
	}
}

func TestCreateCategoryAuthorization(t *testing.T) {
	f := newContentFixture(t)

	for _, actor := range []*models.User{f.author, f.reader} {
		_, err := f.svc.CreateCategory(context.Background(), actor, service.CategoryInput{Name: "Culture"})
		if service.KindOf(err) != service.KindForbidden {
			t.Errorf("role %s: kind = %v, want forbidden", actor.Role, service.KindOf(err))
		}
	}
	if len(f.categories.Categories) != 0 {
		t.Error("forbidden create must not change state")
	}
}

func TestCreateCategoryValidation(t *testing.T) {
	f := newContentFixture(t)

	tests := []struct {
		name string
		in   service.CategoryInput
	}{
		{"too short", service.CategoryInput{Name: "ab"}},
		{"too long", service.CategoryInput{Name: strings.Repeat("x", 51)}},
		{"long description", service.CategoryInput{Name: "Valid", Description: strings.Repeat("d", 201)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.CreateCategory(context.Background(), f.admin, tt.in)
			if service.KindOf(err) != service.KindValidation {
				t.Errorf("kind = %v, want validation", service.KindOf(err))
			}
		})
	}
}

func TestUpdateCategoryRenameRecomputesSlug(t *testing.T) {
	f := newContentFixture(t)
	cat, err := f.svc.CreateCategory(context.Background(), f.admin, service.CategoryInput{Name: "Old News"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := f.svc.UpdateCategory(context.Background(), f.admin, cat.ID, service.CategoryInput{Name: "Fresh Takes"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Slug != "fresh-takes" {
		t.Errorf("slug = %q, want fresh-takes", updated.Slug)
	}
	if updated.UpdatedBy == nil || *updated.UpdatedBy != f.admin.ID {
		t.Error("updatedBy not recorded")
	}

	// Renaming onto an existing category's slug fails.
	other, err := f.svc.CreateCategory(context.Background(), f.admin, service.CategoryInput{Name: "Culture"})
	if err != nil {
		t.Fatalf("create other: %v", err)
	}
	_, err = f.svc.UpdateCategory(context.Background(), f.admin, other.ID, service.CategoryInput{Name: "Fresh Takes"})
	if service.KindOf(err) != service.KindValidation {
		t.Errorf("slug collision kind = %v, want validation", service.KindOf(err))
	}
}

func TestDeleteCategoryReassignsPosts(t *testing.T) {
	f := newContentFixture(t)
	cat, err := f.svc.CreateCategory(context.Background(), f.admin, service.CategoryInput{Name: "Doomed"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	for _, title := range []string{"First", "Second"} {
		if _, err := f.svc.CreatePost(context.Background(), f.author, service.PostInput{
			Title: title, Content: "body", CategoryID: cat.ID,
		}); err != nil {
			t.Fatalf("create post %q: %v", title, err)
		}
	}

	moved, err := f.svc.DeleteCategory(context.Background(), f.admin, cat.ID)
	if err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}
	if moved != 2 {
		t.Errorf("reassigned = %d, want 2", moved)
	}

	var fallback *models.Category
	for _, c := range f.categories.Categories {
		if c.Slug == "uncategorized" {
			fallback = c
		}
	}
	if fallback == nil {
		t.Fatal("fallback category was not created")
	}
	for _, p := range f.posts.Posts {
		if p.CategoryID != fallback.ID {
			t.Errorf("post %q still references %v", p.Title, p.CategoryID)
		}
	}
}

func TestDeleteFallbackCategoryRefused(t *testing.T) {
	f := newContentFixture(t)
	fallback := f.categories.Add("Uncategorized", "uncategorized", f.admin.ID)

	_, err := f.svc.DeleteCategory(context.Background(), f.admin, fallback.ID)
	if service.KindOf(err) != service.KindValidation {
		t.Errorf("kind = %v, want validation", service.KindOf(err))
	}
	if _, ok := f.categories.Categories[fallback.ID]; !ok {
		t.Error("fallback category must survive")
	}
}

func TestCreatePost(t *testing.T) {
	f := newContentFixture(t)
	cat := f.categories.Add("Tech", "tech", f.admin.ID)

	post, err := f.svc.CreatePost(context.Background(), f.author, service.PostInput{
		Title:      "Hello, World!",
		Content:    "# Heading\n\nbody",
		Tags:       []string{"go", "intro"},
		Status:     models.PostStatusPublished,
		CategoryID: cat.ID,
		// AuthorID is not an input field: it always comes from the actor.
	})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if post.Slug != "hello-world" {
		t.Errorf("slug = %q, want hello-world", post.Slug)
	}
	if post.AuthorID != f.author.ID {
		t.Errorf("authorID = %v, want actor %v", post.AuthorID, f.author.ID)
	}

	// Duplicate title collides on the slug.
	_, err = f.svc.CreatePost(context.Background(), f.author, service.PostInput{
		Title: "Hello World", Content: "x", CategoryID: cat.ID,
	})
	if service.KindOf(err) != service.KindValidation {
		t.Errorf("duplicate kind = %v, want validation", service.KindOf(err))
	}
}

func TestCreatePostValidation(t *testing.T) {
	f := newContentFixture(t)
	cat := f.categories.Add("Tech", "tech", f.admin.ID)

	tests := []struct {
		name string
		in   service.PostInput
		kind service.Kind
	}{
		{"reader forbidden", service.PostInput{Title: "T", Content: "c", CategoryID: cat.ID}, service.KindForbidden},
		{"missing title", service.PostInput{Content: "c", CategoryID: cat.ID}, service.KindValidation},
		{"missing content", service.PostInput{Title: "T", CategoryID: cat.ID}, service.KindValidation},
		{"missing category", service.PostInput{Title: "T", Content: "c"}, service.KindValidation},
		{"unknown category", service.PostInput{Title: "T", Content: "c", CategoryID: uuid.New()}, service.KindValidation},
		{"bad status", service.PostInput{Title: "T", Content: "c", CategoryID: cat.ID, Status: "archived"}, service.KindValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actor := f.author
			if tt.kind == service.KindForbidden {
				actor = f.reader
			}
			_, err := f.svc.CreatePost(context.Background(), actor, tt.in)
			if service.KindOf(err) != tt.kind {
				t.Errorf("kind = %v, want %v (err: %v)", service.KindOf(err), tt.kind, err)
			}
		})
	}
	if len(f.posts.Posts) != 0 {
		t.Error("failed creates must not change state")
	}
}

func TestUpdatePostOwnership(t *testing.T) {
	f := newContentFixture(t)
	cat := f.categories.Add("Tech", "tech", f.admin.ID)
	post, err := f.svc.CreatePost(context.Background(), f.author, service.PostInput{
		Title: "Mine", Content: "body", CategoryID: cat.ID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	otherAuthor := &models.User{ID: uuid.New(), Role: models.RoleAuthor}
	_, err = f.svc.UpdatePost(context.Background(), otherAuthor, post.ID, service.PostInput{Title: "Stolen"})
	if service.KindOf(err) != service.KindForbidden {
		t.Errorf("other author kind = %v, want forbidden", service.KindOf(err))
	}
	if f.posts.Posts[post.ID].Title != "Mine" {
		t.Error("forbidden update must not change state")
	}

	// Admin may modify anyone's post.
	updated, err := f.svc.UpdatePost(context.Background(), f.admin, post.ID, service.PostInput{Title: "Edited by admin"})
	if err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if updated.Slug != "edited-by-admin" {
		t.Errorf("slug = %q, want edited-by-admin", updated.Slug)
	}
}

func TestUpdatePostPartial(t *testing.T) {
	f := newContentFixture(t)
	cat := f.categories.Add("Tech", "tech", f.admin.ID)
	post, err := f.svc.CreatePost(context.Background(), f.author, service.PostInput{
		Title: "Keep Title", Content: "original", Tags: []string{"a"}, CategoryID: cat.ID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := f.svc.UpdatePost(context.Background(), f.author, post.ID, service.PostInput{
		Content: "rewritten",
		Status:  models.PostStatusPublished,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Keep Title" || updated.Slug != "keep-title" {
		t.Errorf("title/slug should be unchanged, got %q/%q", updated.Title, updated.Slug)
	}
	if updated.Content != "rewritten" || updated.Status != models.PostStatusPublished {
		t.Errorf("content/status not applied: %+v", updated)
	}
	if len(updated.Tags) != 1 || updated.Tags[0] != "a" {
		t.Errorf("nil tags should keep existing, got %v", updated.Tags)
	}
}

func TestDeletePost(t *testing.T) {
	f := newContentFixture(t)
	cat := f.categories.Add("Tech", "tech", f.admin.ID)
	post, err := f.svc.CreatePost(context.Background(), f.author, service.PostInput{
		Title: "Short lived", Content: "body", CategoryID: cat.ID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := f.svc.DeletePost(context.Background(), f.reader, post.ID); service.KindOf(err) != service.KindForbidden {
		t.Errorf("reader delete kind = %v, want forbidden", service.KindOf(err))
	}
	if err := f.svc.DeletePost(context.Background(), f.author, post.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if err := f.svc.DeletePost(context.Background(), f.author, post.ID); service.KindOf(err) != service.KindNotFound {
		t.Errorf("second delete kind = %v, want not found", service.KindOf(err))
	}
}

func TestGetPostRendersAndCounts(t *testing.T) {
	f := newContentFixture(t)
	cat := f.categories.Add("Tech", "tech", f.admin.ID)
	post, err := f.svc.CreatePost(context.Background(), f.author, service.PostInput{
		Title: "Render me", Content: "# Title\n\n**bold**", CategoryID: cat.ID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := f.svc.GetPost(post.ID, true)
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if !strings.Contains(got.ContentHTML, "<strong>bold</strong>") {
		t.Errorf("contentHtml = %q", got.ContentHTML)
	}
	if got.ViewCount != 1 {
		t.Errorf("viewCount = %d, want 1", got.ViewCount)
	}

	// countView=false must not bump the counter.
	again, err := f.svc.GetPost(post.ID, false)
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if again.ViewCount != 1 {
		t.Errorf("viewCount = %d, want 1", again.ViewCount)
	}

	if _, err := f.svc.GetPost(uuid.New(), true); service.KindOf(err) != service.KindNotFound {
		t.Errorf("missing post kind = %v, want not found", service.KindOf(err))
	}
}

func TestListPostsPagination(t *testing.T) {
	f := newContentFixture(t)
	cat := f.categories.Add("Tech", "tech", f.admin.ID)
	for i := 0; i < 25; i++ {
		if _, err := f.svc.CreatePost(context.Background(), f.author, service.PostInput{
			Title:      "Post " + string(rune('A'+i)),
			Content:    "body",
			Status:     models.PostStatusPublished,
			CategoryID: cat.ID,
		}); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	posts, total, totalPages, err := f.svc.ListPosts(1, 10, "")
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if len(posts) != 10 || total != 25 || totalPages != 3 {
		t.Errorf("page 1: len=%d total=%d pages=%d, want 10/25/3", len(posts), total, totalPages)
	}

	posts, _, _, err = f.svc.ListPosts(3, 10, "")
	if err != nil {
		t.Fatalf("ListPosts page 3: %v", err)
	}
	if len(posts) != 5 {
		t.Errorf("page 3 len = %d, want 5", len(posts))
	}

	// Out-of-range pages return empty, not an error.
	posts, _, _, err = f.svc.ListPosts(9, 10, "")
	if err != nil || len(posts) != 0 {
		t.Errorf("page 9: len=%d err=%v, want empty and nil", len(posts), err)
	}

	if _, _, _, err := f.svc.ListPosts(1, 10, "archived"); service.KindOf(err) != service.KindValidation {
		t.Errorf("bad status kind = %v, want validation", service.KindOf(err))
	}
}

func TestListCategoriesFilters(t *testing.T) {
	f := newContentFixture(t)
	f.categories.Add("Tech", "tech", f.admin.ID)
	culture := f.categories.Add("Culture", "culture", f.admin.ID)
	culture.IsFeatured = true

	all, err := f.svc.ListCategories(context.Background(), "", false)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("len = %d, want 2", len(all))
	}

	featured, err := f.svc.ListCategories(context.Background(), "", true)
	if err != nil {
		t.Fatalf("featured: %v", err)
	}
	if len(featured) != 1 || featured[0].Name != "Culture" {
		t.Errorf("featured = %+v", featured)
	}

	matched, err := f.svc.ListCategories(context.Background(), "tec", false)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(matched) != 1 || matched[0].Name != "Tech" {
		t.Errorf("search = %+v", matched)
	}
}
