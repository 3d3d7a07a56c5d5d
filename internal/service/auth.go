// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"inkpress/internal/imaging"
	"inkpress/internal/models"
	"inkpress/internal/storage"
	"inkpress/internal/store"
	"inkpress/internal/token"
)

func isUniqueViolation(err error) bool { return store.IsUniqueViolation(err) }

const (
	passwordMinLen = 6
	resetTokenTTL  = 10 * time.Minute
)

// dummyHash is compared against when login hits an unknown email, so
// the request takes the same time as a wrong-password attempt.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("timing-equalizer"), bcrypt.DefaultCost)

// UserStore is the persistence surface AuthService needs.
type UserStore interface {
	FindByEmail(email string) (*models.User, error)
	FindByID(id uuid.UUID) (*models.User, error)
	Create(name, email, password string, role models.Role) (*models.User, error)
	UpdateDetails(id uuid.UUID, name, email, bio, website string) (*models.User, error)
	UpdateAvatar(id uuid.UUID, img models.Image) error
	UpdatePassword(id uuid.UUID, password string) error
	SetResetToken(id uuid.UUID, tokenHash string, expires time.Time) error
	FindByValidResetToken(tokenHash string) (*models.User, error)
	ClearResetToken(id uuid.UUID) error
	CheckPassword(user *models.User, password string) bool
}

// ResetMailer delivers password-reset links.
type ResetMailer interface {
	SendPasswordReset(toEmail, name, resetURL string) error
}

// AuthService implements registration, login, profile management, and
// the password reset flow.
type AuthService struct {
	users        UserStore
	tokens       *token.Manager
	storage      storage.Storage
	mailer       ResetMailer
	clientOrigin string
}

// NewAuthService wires an AuthService.
func NewAuthService(users UserStore, tokens *token.Manager, store storage.Storage, mailer ResetMailer, clientOrigin string) *AuthService {
	return &AuthService{
		users:        users,
		tokens:       tokens,
		storage:      store,
		mailer:       mailer,
		clientOrigin: clientOrigin,
	}
}

// RegisterInput carries the register request fields.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     models.Role
}

// Register creates an account and returns the user with a fresh token.
// The admin role cannot be self-assigned; an empty role defaults to
// reader.
func (s *AuthService) Register(in RegisterInput) (*models.User, string, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)

	if name == "" {
		return nil, "", invalid("name is required")
	}
	if err := validEmail(email); err != nil {
		return nil, "", err
	}
	if len(in.Password) < passwordMinLen {
		return nil, "", invalid(fmt.Sprintf("password must be at least %d characters", passwordMinLen))
	}

	role := in.Role
	if role == "" {
		role = models.RoleReader
	}
	if role == models.RoleAdmin {
		return nil, "", invalid("cannot register with admin role")
	}
	if !models.ValidRole(role) {
		return nil, "", invalid("invalid role")
	}

	user, err := s.users.Create(name, email, in.Password, role)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, "", invalid("an account with this email already exists")
		}
		return nil, "", internal(fmt.Errorf("create user: %w", err))
	}

	tok, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, "", internal(fmt.Errorf("issue token: %w", err))
	}

	slog.Info("user registered", "id", user.ID, "email", user.Email, "role", user.Role)
	return user, tok, nil
}

// Login verifies credentials and returns the user with a fresh token.
// Unknown email and wrong password produce the same error.
func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", invalid("email and password are required")
	}

	user, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, "", internal(fmt.Errorf("find user: %w", err))
	}
	if user == nil {
		// Burn a bcrypt compare so unknown emails are not timeable.
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, "", unauthorized("invalid credentials")
	}

	if !s.users.CheckPassword(user, password) {
		return nil, "", unauthorized("invalid credentials")
	}

	tok, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, "", internal(fmt.Errorf("issue token: %w", err))
	}

	slog.Info("user logged in", "id", user.ID)
	return user, tok, nil
}

// CurrentUser loads the authenticated user's profile.
func (s *AuthService) CurrentUser(id uuid.UUID) (*models.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		return nil, internal(fmt.Errorf("find user: %w", err))
	}
	if user == nil {
		return nil, unauthorized("account no longer exists")
	}
	return user, nil
}

// DetailsInput carries profile update fields. Avatar is optional; when
// set it is processed and replaces the previous image.
type DetailsInput struct {
	Name    string
	Email   string
	Bio     string
	Website string

	AvatarData        []byte
	AvatarContentType string
}

// UpdateDetails updates the caller's profile and, when avatar bytes
// are present, stores the new image before deleting the old one.
func (s *AuthService) UpdateDetails(ctx context.Context, actor *models.User, in DetailsInput) (*models.User, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" {
		name = actor.Name
	}
	if email == "" {
		email = actor.Email
	} else if err := validEmail(email); err != nil {
		return nil, err
	}

	user, err := s.users.UpdateDetails(actor.ID, name, email, strings.TrimSpace(in.Bio), strings.TrimSpace(in.Website))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, invalid("an account with this email already exists")
		}
		return nil, internal(fmt.Errorf("update details: %w", err))
	}
	if user == nil {
		return nil, unauthorized("account no longer exists")
	}

	if len(in.AvatarData) > 0 {
		img, err := storeImage(ctx, s.storage, "avatars", in.AvatarData, in.AvatarContentType, imaging.AvatarMaxWidth)
		if err != nil {
			return nil, err
		}
		if err := s.users.UpdateAvatar(user.ID, img); err != nil {
			// The user row is the source of truth; drop the orphan.
			_ = s.storage.Delete(ctx, img.Key)
			return nil, internal(fmt.Errorf("update avatar: %w", err))
		}
		if !user.Avatar.Empty() {
			if err := s.storage.Delete(ctx, user.Avatar.Key); err != nil {
				slog.Warn("delete old avatar failed", "key", user.Avatar.Key, "error", err)
			}
		}
		user.Avatar = img
	}

	return user, nil
}

// UpdatePassword changes the caller's password after verifying the
// current one, and returns a fresh token.
func (s *AuthService) UpdatePassword(actor *models.User, current, next string) (string, error) {
	if !s.users.CheckPassword(actor, current) {
		return "", unauthorized("current password is incorrect")
	}
	if len(next) < passwordMinLen {
		return "", invalid(fmt.Sprintf("password must be at least %d characters", passwordMinLen))
	}

	if err := s.users.UpdatePassword(actor.ID, next); err != nil {
		return "", internal(fmt.Errorf("update password: %w", err))
	}

	tok, err := s.tokens.Issue(actor.ID, actor.Role)
	if err != nil {
		return "", internal(fmt.Errorf("issue token: %w", err))
	}

	slog.Info("password changed", "id", actor.ID)
	return tok, nil
}

// ForgotPassword starts the reset flow. The response is identical
// whether or not the email exists, so accounts cannot be enumerated.
func (s *AuthService) ForgotPassword(email string) error {
	email = normalizeEmail(email)
	if err := validEmail(email); err != nil {
		return err
	}

	user, err := s.users.FindByEmail(email)
	if err != nil {
		return internal(fmt.Errorf("find user: %w", err))
	}
	if user == nil {
		slog.Info("password reset requested for unknown email")
		return nil
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return internal(fmt.Errorf("generate reset token: %w", err))
	}
	plaintext := hex.EncodeToString(raw)

	if err := s.users.SetResetToken(user.ID, hashResetToken(plaintext), time.Now().Add(resetTokenTTL)); err != nil {
		return internal(fmt.Errorf("store reset token: %w", err))
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", strings.TrimRight(s.clientOrigin, "/"), plaintext)
	if err := s.mailer.SendPasswordReset(user.Email, user.Name, resetURL); err != nil {
		// Undo so a token that was never delivered cannot linger.
		_ = s.users.ClearResetToken(user.ID)
		return internal(fmt.Errorf("send reset mail: %w", err))
	}

	slog.Info("password reset email queued", "id", user.ID)
	return nil
}

// ResetPassword consumes a reset token and sets the new password,
// returning the user with a fresh login token.
func (s *AuthService) ResetPassword(plaintext, newPassword string) (*models.User, string, error) {
	if plaintext == "" {
		return nil, "", invalid("reset token is required")
	}
	if len(newPassword) < passwordMinLen {
		return nil, "", invalid(fmt.Sprintf("password must be at least %d characters", passwordMinLen))
	}

	user, err := s.users.FindByValidResetToken(hashResetToken(plaintext))
	if err != nil {
		return nil, "", internal(fmt.Errorf("find reset token: %w", err))
	}
	if user == nil {
		return nil, "", invalid("invalid or expired reset token")
	}

	if err := s.users.UpdatePassword(user.ID, newPassword); err != nil {
		return nil, "", internal(fmt.Errorf("update password: %w", err))
	}
	if err := s.users.ClearResetToken(user.ID); err != nil {
		return nil, "", internal(fmt.Errorf("clear reset token: %w", err))
	}

	tok, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, "", internal(fmt.Errorf("issue token: %w", err))
	}

	slog.Info("password reset completed", "id", user.ID)
	return user, tok, nil
}

// hashResetToken returns the hex SHA-256 digest stored in place of the
// plaintext token.
func hashResetToken(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) error {
	if email == "" {
		return invalid("email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return invalid("invalid email address")
	}
	return nil
}
