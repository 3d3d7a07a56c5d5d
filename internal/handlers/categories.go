// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"inkpress/internal/middleware"
	"inkpress/internal/service"
)

// Categories handles the /api/v1/categories endpoints.
type Categories struct {
	svc *service.ContentService
}

// NewCategories creates the category handler group.
func NewCategories(svc *service.ContentService) *Categories {
	return &Categories{svc: svc}
}

// List handles GET /categories?search=&featured=.
func (h *Categories) List(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	featured, _ := strconv.ParseBool(r.URL.Query().Get("featured"))

	cats, err := h.svc.ListCategories(r.Context(), search, featured)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCount(w, cats, len(cats))
}

// Get handles GET /categories/{id}.
func (h *Categories) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	cat, err := h.svc.GetCategory(id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, cat)
}

// Create handles POST /categories. Admin only.
func (h *Categories) Create(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromCtx(r.Context())

	in, ok := decodeCategoryInput(w, r)
	if !ok {
		return
	}

	cat, err := h.svc.CreateCategory(r.Context(), actor, in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusCreated, cat)
}

// Update handles PUT /categories/{id}. Admin only.
func (h *Categories) Update(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromCtx(r.Context())
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	in, ok := decodeCategoryInput(w, r)
	if !ok {
		return
	}

	cat, err := h.svc.UpdateCategory(r.Context(), actor, id, in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, cat)
}

// Delete handles DELETE /categories/{id}. Admin only. Posts in the
// deleted category are re-homed to "Uncategorized".
func (h *Categories) Delete(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromCtx(r.Context())
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	reassigned, err := h.svc.DeleteCategory(r.Context(), actor, id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]int64{"reassignedPosts": reassigned})
}

// decodeCategoryInput reads a category payload from either a multipart
// form (optional "featuredImage" file) or a JSON body.
func decodeCategoryInput(w http.ResponseWriter, r *http.Request) (service.CategoryInput, bool) {
	var in service.CategoryInput
	if isMultipart(r) {
		if err := parseUploadForm(w, r); err != nil {
			badRequest(w, err.Error())
			return in, false
		}
		in.Name = r.FormValue("name")
		in.Description = r.FormValue("description")
		in.IsFeatured, _ = strconv.ParseBool(r.FormValue("isFeatured"))

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
		Name        string `json:"name"`
		Description string `json:"description"`
		IsFeatured  bool   `json:"isFeatured"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		badRequest(w, "invalid JSON body")
		return in, false
	}
	in.Name, in.Description, in.IsFeatured = body.Name, body.Description, body.IsFeatured
	return in, true
}

// idParam parses the {id} URL parameter as a UUID.
func idParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}
