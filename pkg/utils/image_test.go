package utils

import (
	"errors"
	"testing"
)

func TestIsBase64Image(t *testing.T) {
	if !IsBase64Image("data:image/png;base64,aGVsbG8=") {
		t.Error("data uri should be recognized as base64 image")
	}
	if IsBase64Image("https://example.com/pic.png") {
		t.Error("plain url should not be recognized as base64 image")
	}
}

func TestDecodeBase64Image(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		raw, ext, err := DecodeBase64Image("data:image/png;base64,aGVsbG8=")
		if err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if ext != "png" {
			t.Errorf("expected ext png, got %s", ext)
		}
		if string(raw) != "hello" {
			t.Errorf("unexpected payload: %q", raw)
		}
	})

	invalid := []struct {
		name string
		data string
	}{
		{"MissingPrefix", "aGVsbG8="},
		{"MissingBase64Marker", "data:image/png,aGVsbG8="},
		{"UnsupportedExt", "data:image/tiff;base64,aGVsbG8="},
		{"BadPayload", "data:image/png;base64,@@@@"},
		{"EmptyPayload", "data:image/png;base64,"},
	}
	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := DecodeBase64Image(tc.data); !errors.Is(err, ErrInvalidImageData) {
				t.Errorf("expected ErrInvalidImageData, got %v", err)
			}
		})
	}
}
