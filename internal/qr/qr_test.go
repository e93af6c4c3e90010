package qr

import (
	"bytes"
	"image/png"
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	dataURL, raw, err := Generate("https://example.com/qr-verify-pass/A1B2C3")
	if err != nil {
		t.Fatal(err)
	}

	if !strings.HasPrefix(dataURL, "data:image/png;base64,") {
		t.Errorf("data URL prefix missing: %q", dataURL[:30])
	}

	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("raw bytes are not a valid PNG: %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != imageSize || bounds.Dy() != imageSize {
		t.Errorf("image is %dx%d, want %dx%d", bounds.Dx(), bounds.Dy(), imageSize, imageSize)
	}
}

func TestGenerateDistinctContent(t *testing.T) {
	_, a, err := Generate("https://example.com/qr-verify-pass/AAAAAA")
	if err != nil {
		t.Fatal(err)
	}
	_, b, err := Generate("https://example.com/qr-verify-pass/BBBBBB")
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(a, b) {
		t.Error("different contents produced identical images")
	}
}
