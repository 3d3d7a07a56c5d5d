package models

import (
	"testing"

	"github.com/google/uuid"
)

// TestPostIsPublished verifies that IsPublished returns true only for
// the "published" status.
func TestPostIsPublished(t *testing.T) {
	tests := []struct {
		name   string
		status PostStatus
		want   bool
	}{
		{name: "published", status: PostStatusPublished, want: true},
		{name: "draft", status: PostStatusDraft, want: false},
		{name: "empty status", status: PostStatus(""), want: false},
		{name: "unknown status", status: PostStatus("archived"), want: false},
		{name: "uppercase PUBLISHED", status: PostStatus("PUBLISHED"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Post{Status: tt.status}
			got := p.IsPublished()
			if got != tt.want {
				t.Errorf("Post{Status: %q}.IsPublished() = %v, want %v",
					tt.status, got, tt.want)
			}
		})
	}
}

// TestPostCanModify verifies the ownership rule: only the author or an
// admin may mutate a post.
func TestPostCanModify(t *testing.T) {
	authorID := uuid.New()
	otherID := uuid.New()

	tests := []struct {
		name  string
		actor *User
		want  bool
	}{
		{name: "nil actor", actor: nil, want: false},
		{name: "author themselves", actor: &User{ID: authorID, Role: RoleAuthor}, want: true},
		{name: "other author", actor: &User{ID: otherID, Role: RoleAuthor}, want: false},
		{name: "reader", actor: &User{ID: otherID, Role: RoleReader}, want: false},
		{name: "admin non-owner", actor: &User{ID: otherID, Role: RoleAdmin}, want: true},
		{name: "admin owner", actor: &User{ID: authorID, Role: RoleAdmin}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Post{AuthorID: authorID}
			got := p.CanModify(tt.actor)
			if got != tt.want {
				t.Errorf("CanModify() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestValidPostStatus checks the status whitelist.
func TestValidPostStatus(t *testing.T) {
	tests := []struct {
		name   string
		status PostStatus
		want   bool
	}{
		{name: "draft", status: PostStatusDraft, want: true},
		{name: "published", status: PostStatusPublished, want: true},
		{name: "empty", status: PostStatus(""), want: false},
		{name: "unknown", status: PostStatus("pending"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidPostStatus(tt.status); got != tt.want {
				t.Errorf("ValidPostStatus(%q) = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}
