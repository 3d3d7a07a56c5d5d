// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package token issues and verifies the signed bearer tokens used for
// API authentication. Tokens are HS256 JWTs carrying the user ID as the
// subject and the user's role as a custom claim.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"inkpress/internal/models"
)

// ErrInvalid is returned for malformed, tampered, or expired tokens.
var ErrInvalid = errors.New("invalid or expired token")

// Claims is the JWT payload: registered claims plus the user's role.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// Manager signs and parses bearer tokens with a shared HMAC key.
type Manager struct {
	key []byte
	ttl time.Duration
}

// NewManager returns a Manager signing with key, issuing tokens valid
// for ttl.
func NewManager(key string, ttl time.Duration) (*Manager, error) {
	if key == "" {
		return nil, errors.New("token: signing key is empty")
	}
	if ttl <= 0 {
		return nil, errors.New("token: ttl must be positive")
	}
	return &Manager{key: []byte(key), ttl: ttl}, nil
}

// Issue signs a token for the given user.
func (m *Manager) Issue(userID uuid.UUID, role models.Role) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		Role: string(role),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(m.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies a token string and returns the user ID and role it
// carries. Returns ErrInvalid for anything unverifiable.
func (m *Manager) Parse(tokenString string) (uuid.UUID, models.Role, error) {
	if tokenString == "" {
		return uuid.Nil, "", ErrInvalid
	}

	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.key, nil
	})
	if err != nil || !tok.Valid {
		return uuid.Nil, "", ErrInvalid
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, "", ErrInvalid
	}
	return id, models.Role(claims.Role), nil
}
