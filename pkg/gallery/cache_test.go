package gallery

import (
	"testing"
)

func TestCacheDisabled(t *testing.T) {
	c, err := NewCache("")
	if err != nil {
		t.Fatal(err)
	}

	if exists, img, err := c.LoadImage("anything", 64, 64); exists || img != nil || err != nil {
		t.Errorf("LoadImage() on disabled cache = %t, %v, %v", exists, img, err)
	}

	if err := c.SaveImage("anything", testImage(64, 64)); err != nil {
		t.Errorf("SaveImage() on disabled cache: %v", err)
	}
}

func TestCacheMissThenHit(t *testing.T) {
	c, err := NewCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	const prompt = "a red bicycle"

	if exists, _, err := c.LoadImage(prompt, 64, 48); err != nil || exists {
		t.Fatalf("LoadImage() before save = %t, %v", exists, err)
	}

	if err := c.SaveImage(prompt, testImage(64, 48)); err != nil {
		t.Fatal(err)
	}

	exists, img, err := c.LoadImage(prompt, 64, 48)
	if err != nil || !exists {
		t.Fatalf("LoadImage() after save = %t, %v", exists, err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Errorf("cached size = %dx%d, want 64x48", b.Dx(), b.Dy())
	}

	// Another size keys separately.
	if exists, _, _ := c.LoadImage(prompt, 32, 32); exists {
		t.Error("LoadImage() with other size: want miss")
	}

	// Another prompt keys separately.
	if exists, _, _ := c.LoadImage("a blue bicycle", 64, 48); exists {
		t.Error("LoadImage() with other prompt: want miss")
	}
}
