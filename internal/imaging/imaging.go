// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging normalizes uploaded images. Images wider than the
// target for their use are downscaled preserving aspect ratio and
// re-encoded as JPEG; smaller images pass through untouched.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	_ "image/png" // register PNG decoder

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

// Target widths per image use, matching how each is displayed.
const (
	AvatarMaxWidth   = 200
	CategoryMaxWidth = 800
	PostMaxWidth     = 1200
)

// jpegQuality is the encode quality for downscaled images.
const jpegQuality = 85

// maxImagePixels caps the number of pixels to prevent memory bombs.
// 10000x10000 = 100 million pixels, ~400 MB decoded in RGBA.
const maxImagePixels = 100_000_000

// Result is a processed image ready for storage.
type Result struct {
	Data        []byte
	ContentType string
}

// Process validates and, if needed, downscales an image to maxWidth.
// Unresized images keep their original bytes and content type; resized
// images come back JPEG-encoded.
func Process(data []byte, contentType string, maxWidth int) (*Result, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if int64(cfg.Width)*int64(cfg.Height) > maxImagePixels {
		return nil, fmt.Errorf("image too large: %dx%d exceeds %d pixels", cfg.Width, cfg.Height, maxImagePixels)
	}

	if cfg.Width <= maxWidth {
		return &Result{Data: data, ContentType: contentType}, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	ratio := float64(maxWidth) / float64(bounds.Dx())
	newHeight := int(float64(bounds.Dy()) * ratio)
	if newHeight < 1 {
		newHeight = 1
	}

	// CatmullRom gives the best quality for photographic downscales.
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}

	return &Result{Data: buf.Bytes(), ContentType: "image/jpeg"}, nil
}
