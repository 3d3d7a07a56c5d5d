// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package mocks

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Storage is an in-memory object store.
type Storage struct {
	mu      sync.Mutex
	Objects map[string][]byte

	// UploadErr, when set, is returned by Upload.
	UploadErr error
	Deleted   []string
}

func NewStorage() *Storage {
	return &Storage{Objects: make(map[string][]byte)}
}

func (m *Storage) Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	if m.UploadErr != nil {
		return "", m.UploadErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	m.Objects[key] = data
	m.mu.Unlock()
	return m.FileURL(key), nil
}

func (m *Storage) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.Objects, key)
	m.Deleted = append(m.Deleted, key)
	m.mu.Unlock()
	return nil
}

func (m *Storage) FileURL(key string) string {
	return fmt.Sprintf("/uploads/%s", key)
}

// Mailer records password-reset sends instead of delivering them.
type Mailer struct {
	Sent []ResetMail
	// SendErr, when set, is returned by SendPasswordReset.
	SendErr error
}

// ResetMail is one recorded password-reset message.
type ResetMail struct {
	To   string
	Name string
	URL  string
}

func (m *Mailer) SendPasswordReset(toEmail, name, resetURL string) error {
	if m.SendErr != nil {
		return m.SendErr
	}
	m.Sent = append(m.Sent, ResetMail{To: toEmail, Name: name, URL: resetURL})
	return nil
}
