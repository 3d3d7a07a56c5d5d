// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storage abstracts where uploaded images live. Production
// deployments use an S3-compatible bucket; development falls back to
// local disk served under /uploads.
package storage

import (
	"context"
	"io"
)

// Storage stores and deletes uploaded files by key and resolves their
// public URLs.
type Storage interface {
	// Upload stores an object under key and returns its public URL.
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)

	// Delete removes an object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// FileURL returns the public URL for a stored key.
	FileURL(key string) string
}
