// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Category name and description limits, enforced at the service layer.
const (
	CategoryNameMin = 3
	CategoryNameMax = 50
	CategoryDescMax = 200
)

// Category represents a named taxonomy entry. Every post references
// exactly one category; posts orphaned by a category deletion are
// re-homed to the "Uncategorized" fallback.
type Category struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Slug          string     `json:"slug"`
	Description   string     `json:"description,omitempty"`
	FeaturedImage Image      `json:"featuredImage"`
	IsFeatured    bool       `json:"isFeatured"`
	CreatedBy     uuid.UUID  `json:"createdBy"`
	UpdatedBy     *uuid.UUID `json:"updatedBy,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`

	// Virtual field populated by store list queries.
	PostCount int `json:"postCount"`
}

// URL returns the public path for this category, derived from the slug.
func (c *Category) URL() string {
	return "/categories/" + c.Slug
}
