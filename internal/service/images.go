// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"

	"inkpress/internal/imaging"
	"inkpress/internal/models"
	"inkpress/internal/storage"
)

// storeImage processes raw upload bytes (validate, downscale to
// maxWidth) and uploads the result under a random key beneath prefix.
func storeImage(ctx context.Context, st storage.Storage, prefix string, data []byte, contentType string, maxWidth int) (models.Image, error) {
	res, err := imaging.Process(data, contentType, maxWidth)
	if err != nil {
		return models.Image{}, invalid("unsupported or corrupt image")
	}

	key := fmt.Sprintf("%s/%s%s", prefix, uuid.New().String(), extFor(res.ContentType))
	url, err := st.Upload(ctx, key, res.ContentType, bytes.NewReader(res.Data), int64(len(res.Data)))
	if err != nil {
		return models.Image{}, internal(fmt.Errorf("upload image: %w", err))
	}
	return models.Image{URL: url, Key: key}, nil
}

func extFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
