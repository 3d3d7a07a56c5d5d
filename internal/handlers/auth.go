// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"inkpress/internal/middleware"
	"inkpress/internal/models"
	"inkpress/internal/service"
)

// Auth handles the /api/v1/auth endpoints.
type Auth struct {
	svc *service.AuthService
}

// NewAuth creates the auth handler group.
func NewAuth(svc *service.AuthService) *Auth {
	return &Auth{svc: svc}
}

// sessionPayload is the data shape returned by register, login, and
// the password endpoints: the account plus a bearer token.
type sessionPayload struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// Register handles POST /auth/register.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     string      `json:"name"`
		Email    string      `json:"email"`
		Password string      `json:"password"`
		Role     models.Role `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	user, tok, err := h.svc.Register(service.RegisterInput{
		Name:     body.Name,
		Email:    body.Email,
		Password: body.Password,
		Role:     body.Role,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusCreated, sessionPayload{User: user, Token: tok})
}

// Login handles POST /auth/login.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	user, tok, err := h.svc.Login(body.Email, body.Password)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, sessionPayload{User: user, Token: tok})
}

// Me handles GET /auth/me.
func (h *Auth) Me(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromCtx(r.Context())

	user, err := h.svc.CurrentUser(actor.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, user)
}

// UpdateDetails handles PUT /auth/updatedetails. Accepts either a JSON
// body or a multipart form with an optional "avatar" file field.
func (h *Auth) UpdateDetails(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromCtx(r.Context())

	var in service.DetailsInput
	if isMultipart(r) {
		if err := parseUploadForm(w, r); err != nil {
			badRequest(w, err.Error())
			return
		}
		in.Name = r.FormValue("name")
		in.Email = r.FormValue("email")
		in.Bio = r.FormValue("bio")
		in.Website = r.FormValue("website")

		data, contentType, err := imageFromForm(r, "avatar")
		if err != nil {
			badRequest(w, err.Error())
			return
		}
		in.AvatarData = data
		in.AvatarContentType = contentType
	} else {
		var body struct {
			Name    string `json:"name"`
			Email   string `json:"email"`
			Bio     string `json:"bio"`
			Website string `json:"website"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			badRequest(w, "invalid JSON body")
			return
		}
		in.Name, in.Email, in.Bio, in.Website = body.Name, body.Email, body.Bio, body.Website
	}

	user, err := h.svc.UpdateDetails(r.Context(), actor, in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, user)
}

// UpdatePassword handles PUT /auth/updatepassword.
func (h *Auth) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromCtx(r.Context())

	var body struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	tok, err := h.svc.UpdatePassword(actor, body.CurrentPassword, body.NewPassword)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, sessionPayload{User: actor, Token: tok})
}

// ForgotPassword handles POST /auth/forgotpassword. The response is
// the same whether or not the email is registered.
func (h *Auth) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	if err := h.svc.ForgotPassword(body.Email); err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]string{
		"message": "if that email is registered, a reset link has been sent",
	})
}

// ResetPassword handles PUT /auth/resetpassword/{token}.
func (h *Auth) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	user, tok, err := h.svc.ResetPassword(chi.URLParam(r, "token"), body.Password)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, sessionPayload{User: user, Token: tok})
}
