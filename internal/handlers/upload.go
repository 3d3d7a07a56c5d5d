// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"
)

// maxUploadSize is the maximum allowed image upload size (10 MB).
const maxUploadSize = 10 << 20

// allowedImageTypes defines MIME types accepted for image upload.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// isMultipart reports whether the request carries a multipart form.
func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// parseUploadForm bounds the body and parses the multipart form.
func parseUploadForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+4096)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return errors.New("request too large or malformed form")
	}
	return nil
}

// imageFromForm reads an optional image file from the named form field.
// Returns nil data when the field is absent. The content type is
// sniffed from the file bytes, never trusted from the client.
func imageFromForm(r *http.Request, field string) ([]byte, string, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", errors.New("malformed file upload")
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		return nil, "", errors.New("file too large, maximum size is 10 MB")
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", errors.New("failed to read file")
	}

	contentType := sniffImageType(data)
	if !allowedImageTypes[contentType] {
		return nil, "", errors.New("unsupported file type, expected an image")
	}
	return data, contentType, nil
}

func sniffImageType(data []byte) string {
	n := len(data)
	if n > 512 {
		n = 512
	}
	return http.DetectContentType(data[:n])
}
