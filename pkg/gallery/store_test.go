package gallery

import (
	"image"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func testImage(w, h int) image.Image {
	return image.NewNRGBA(image.Rect(0, 0, w, h))
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain name", "bicycle", "bicycle.png"},
		{"already suffixed", "bicycle.png", "bicycle.png"},
		{"upper case suffix", "bicycle.PNG", "bicycle.PNG"},
		{"nested", "trips/bicycle", "trips/bicycle.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Filename(tt.in); got != tt.want {
				t.Errorf("Filename(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFilenameEmpty(t *testing.T) {
	got := Filename("")
	if got == ".png" || !strings.HasSuffix(got, ".png") {
		t.Errorf("Filename(\"\") = %q, want generated name with extension", got)
	}
}

func TestStoreMissingRoot(t *testing.T) {
	if _, err := NewStore("/nonexistent/gallery/root", zap.NewNop()); err == nil {
		t.Error("NewStore() on missing dir: want error")
	}
}

func TestStoreSaveRoundtrip(t *testing.T) {
	s, err := NewStore(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	file, err := s.Save("bicycle", testImage(32, 24))
	if err != nil {
		t.Fatal(err)
	}
	if file != "bicycle.png" {
		t.Errorf("Save() = %q, want %q", file, "bicycle.png")
	}

	if exists, err := s.Exists("bicycle"); err != nil || !exists {
		t.Errorf("Exists() = %t, %v", exists, err)
	}

	img, err := s.LoadImage(file)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 24 {
		t.Errorf("loaded size = %dx%d, want 32x24", b.Dx(), b.Dy())
	}
}

func TestStoreSaveNested(t *testing.T) {
	s, err := NewStore(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	file, err := s.Save("trips/summer/bicycle", testImage(8, 8))
	if err != nil {
		t.Fatal(err)
	}

	if exists, err := s.Exists(file); err != nil || !exists {
		t.Errorf("Exists(%q) = %t, %v", file, exists, err)
	}
}

func TestStoreSaveGeneratedName(t *testing.T) {
	s, err := NewStore(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	file, err := s.Save("", testImage(8, 8))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(file, ".png") || len(file) <= len(".png") {
		t.Errorf("Save(\"\") = %q, want generated name", file)
	}
}
