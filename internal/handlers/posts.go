// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"inkpress/internal/middleware"
	"inkpress/internal/models"
	"inkpress/internal/service"
)

// Posts handles the /api/v1/posts endpoints.
type Posts struct {
	svc *service.ContentService
}

// NewPosts creates the post handler group.
func NewPosts(svc *service.ContentService) *Posts {
	return &Posts{svc: svc}
}

// List handles GET /posts?page=&limit=&status=.
func (h *Posts) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	status := models.PostStatus(q.Get("status"))

	posts, total, totalPages, err := h.svc.ListPosts(page, limit, status)
	if err != nil {
		respondError(w, err)
		return
	}
	if page < 1 {
		page = 1
	}
	respondPage(w, posts, total, totalPages, page)
}

// Get handles GET /posts/{id}. Every read counts one view.
func (h *Posts) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	post, err := h.svc.GetPost(id, true)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, post)
}

// Create handles POST /posts. Author or admin only.
func (h *Posts) Create(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromCtx(r.Context())

	in, ok := decodePostInput(w, r)
	if !ok {
		return
	}

	post, err := h.svc.CreatePost(r.Context(), actor, in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusCreated, post)
}

// Update handles PUT /posts/{id}. Owner or admin only.
func (h *Posts) Update(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromCtx(r.Context())
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	in, ok := decodePostInput(w, r)
	if !ok {
		return
	}

	post, err := h.svc.UpdatePost(r.Context(), actor, id, in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, post)
}

// Delete handles DELETE /posts/{id}. Owner or admin only.
func (h *Posts) Delete(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromCtx(r.Context())
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeletePost(r.Context(), actor, id); err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{})
}

// decodePostInput reads a post payload from either a multipart form
// (optional "featuredImage" file) or a JSON body.
func decodePostInput(w http.ResponseWriter, r *http.Request) (service.PostInput, bool) {
	var in service.PostInput
	if isMultipart(r) {
		if err := parseUploadForm(w, r); err != nil {
			badRequest(w, err.Error())
			return in, false
		}
		in.Title = r.FormValue("title")
		in.Content = r.FormValue("content")
		in.Excerpt = r.FormValue("excerpt")
		in.Status = models.PostStatus(r.FormValue("status"))
		if _, ok := r.MultipartForm.Value["tags"]; ok {
			in.Tags = parseTags(r.FormValue("tags"))
		}
		if raw := r.FormValue("category"); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				badRequest(w, "invalid category id")
				return in, false
			}
			in.CategoryID = id
		}

		data, contentType, err := imageFromForm(r, "featuredImage")
		if err != nil {
			badRequest(w, err.Error())
			return in, false
		}
		in.ImageData = data
		in.ImageContentType = contentType
		return in, true
	}

	var body struct {
		Title    string            `json:"title"`
		Content  string            `json:"content"`
		Excerpt  string            `json:"excerpt"`
		Tags     []string          `json:"tags"`
		Status   models.PostStatus `json:"status"`
		Category string            `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		badRequest(w, "invalid JSON body")
		return in, false
	}
	in.Title = body.Title
	in.Content = body.Content
	in.Excerpt = body.Excerpt
	in.Tags = body.Tags
	in.Status = body.Status
	if body.Category != "" {
		id, err := uuid.Parse(body.Category)
		if err != nil {
			badRequest(w, "invalid category id")
			return in, false
		}
		in.CategoryID = id
	}
	return in, true
}

// parseTags accepts either a JSON array string or a comma-separated
// list. An empty value clears the tags.
func parseTags(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}
	}
	if strings.HasPrefix(raw, "[") {
		var tags []string
		if err := json.Unmarshal([]byte(raw), &tags); err == nil {
			return tags
		}
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}
