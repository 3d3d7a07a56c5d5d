// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func makeJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestProcessPassthrough(t *testing.T) {
	data := makeJPEG(t, 100, 80)

	res, err := Process(data, "image/jpeg", AvatarMaxWidth)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if !bytes.Equal(res.Data, data) {
		t.Error("small image should pass through unchanged")
	}
	if res.ContentType != "image/jpeg" {
		t.Errorf("content type = %q, want image/jpeg", res.ContentType)
	}
}

func TestProcessDownscale(t *testing.T) {
	data := makeJPEG(t, 1600, 900)

	res, err := Process(data, "image/jpeg", PostMaxWidth)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(res.Data))
	if err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if cfg.Width != PostMaxWidth {
		t.Errorf("width = %d, want %d", cfg.Width, PostMaxWidth)
	}
	// 1600x900 scaled to 1200 wide should be 675 tall.
	if cfg.Height != 675 {
		t.Errorf("height = %d, want 675", cfg.Height)
	}
	if format != "jpeg" {
		t.Errorf("format = %q, want jpeg", format)
	}
	if res.ContentType != "image/jpeg" {
		t.Errorf("content type = %q, want image/jpeg", res.ContentType)
	}
}

func TestProcessPNGInput(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 400, 400))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}

	res, err := Process(buf.Bytes(), "image/png", AvatarMaxWidth)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(res.Data))
	if err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if cfg.Width != AvatarMaxWidth {
		t.Errorf("width = %d, want %d", cfg.Width, AvatarMaxWidth)
	}
}

func TestProcessRejectsGarbage(t *testing.T) {
	if _, err := Process([]byte("not an image"), "image/jpeg", PostMaxWidth); err == nil {
		t.Error("expected error for non-image data")
	}
}
