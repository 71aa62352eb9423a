package gallery

import (
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCategory(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"interior_lobby.jpg", "Interior"},
		{"Interior_lobby.jpg", "Interior"}, // case-insensitive
		{"service_manicure.png", "Services"},
		{"transformation_before_after.jpg", "Transformations"},
		{"team_stylist.jpeg", "Team"},
		{"random.png", "General"},
		{"servicemanicure.png", "General"}, // prefix requires the underscore
	}
	for _, tc := range cases {
		if got := Category(tc.in); got != tc.want {
			t.Fatalf("Category(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestStoredName(t *testing.T) {
	got := StoredName("Team Photo.JPG")
	if !strings.HasPrefix(got, "team-photo_") {
		t.Fatalf("expected sanitized stem prefix, got %q", got)
	}
	if !strings.HasSuffix(got, ".jpg") {
		t.Fatalf("expected lowercased extension, got %q", got)
	}
	if got == StoredName("Team Photo.JPG") {
		t.Fatal("expected unique names for repeated uploads")
	}
}

func TestThumbPath(t *testing.T) {
	if got := ThumbPath("gallery/interior_lobby.jpg"); got != "gallery/interior_lobby_thumb.jpg" {
		t.Fatalf("unexpected thumb path %q", got)
	}
}

func TestWriteThumbnailAndList(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "interior_big.jpg")
	writeJPEG(t, src, 1600, 1200)

	if err := WriteThumbnail(src); err != nil {
		t.Fatalf("WriteThumbnail: %v", err)
	}

	f, err := os.Open(ThumbPath(src))
	if err != nil {
		t.Fatalf("open thumbnail: %v", err)
	}
	defer f.Close()
	cfg, err := jpeg.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode thumbnail: %v", err)
	}
	if cfg.Width > ThumbMaxWidth || cfg.Height > ThumbMaxHeight {
		t.Fatalf("thumbnail %dx%d exceeds bounds", cfg.Width, cfg.Height)
	}

	imgs, err := List(dir)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(imgs) != 1 {
		t.Fatalf("expected 1 image (thumb folded into original), got %d", len(imgs))
	}
	if imgs[0].Category != "Interior" {
		t.Fatalf("unexpected category %q", imgs[0].Category)
	}
	if imgs[0].Thumb == "" {
		t.Fatal("expected thumbnail to be attached")
	}
}

func TestListMissingDir(t *testing.T) {
	imgs, err := List(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("List on missing dir: %v", err)
	}
	if len(imgs) != 0 {
		t.Fatalf("expected empty list, got %d", len(imgs))
	}
}

func TestFit(t *testing.T) {
	if w, h := fit(1600, 1200, 800, 600); w != 800 || h != 600 {
		t.Fatalf("fit(1600,1200) = %dx%d", w, h)
	}
	if w, h := fit(400, 300, 800, 600); w != 400 || h != 300 {
		t.Fatalf("small images must not be upscaled, got %dx%d", w, h)
	}
	if w, h := fit(1200, 1600, 800, 600); w != 450 || h != 600 {
		t.Fatalf("portrait fit = %dx%d, want 450x600", w, h)
	}
}

func writeJPEG(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h)), nil); err != nil {
		t.Fatal(err)
	}
}
