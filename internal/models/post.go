// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// PostStatus represents the publishing state of a post.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

// ValidPostStatus reports whether s is a known status.
func ValidPostStatus(s PostStatus) bool {
	return s == PostStatusDraft || s == PostStatusPublished
}

// Post represents an authored content entry referencing a category
// and its author.
type Post struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Content       string     `json:"content"`
	Excerpt       string     `json:"excerpt,omitempty"`
	Tags          []string   `json:"tags"`
	Status        PostStatus `json:"status"`
	FeaturedImage Image      `json:"featuredImage"`
	CategoryID    uuid.UUID  `json:"category"`
	AuthorID      uuid.UUID  `json:"author"`
	ViewCount     int        `json:"viewCount"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`

	// Virtual fields populated by store joins.
	AuthorName   string `json:"authorName,omitempty"`
	AuthorEmail  string `json:"authorEmail,omitempty"`
	CategoryName string `json:"categoryName,omitempty"`
	CategorySlug string `json:"categorySlug,omitempty"`

	// ContentHTML is the rendered Markdown body, computed on detail
	// reads and never stored.
	ContentHTML string `json:"contentHtml,omitempty"`
}

// IsPublished returns true if the post is in published status.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// CanModify reports whether actor may update or delete this post:
// the author themselves, or any admin.
func (p *Post) CanModify(actor *User) bool {
	if actor == nil {
		return false
	}
	return actor.ID == p.AuthorID || actor.IsAdmin()
}
