// Package gallery manages the salon's image gallery on the local
// filesystem: prefix-based categorization, listing, and thumbnail
// generation for uploads.
package gallery

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

// Thumbnail bounding box. Images are scaled down to fit while keeping
// their aspect ratio; smaller images are left as-is.
const (
	ThumbMaxWidth  = 800
	ThumbMaxHeight = 600
)

const thumbSuffix = "_thumb"

// imageExts lists the extensions treated as gallery images.
var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true,
	".gif": true, ".bmp": true, ".webp": true,
}

// Image describes one gallery entry.
type Image struct {
	Name     string `json:"name"`     // file name within the gallery dir
	Category string `json:"category"` // derived from the filename prefix
	Path     string `json:"path"`     // path relative to the gallery dir
	Thumb    string `json:"thumb"`    // thumbnail path, empty if absent
}

// Category derives the display category from a filename prefix.
// Unrecognized prefixes fall into General.
func Category(filename string) string {
	name := strings.ToLower(filepath.Base(filename))
	switch {
	case strings.HasPrefix(name, "interior_"):
		return "Interior"
	case strings.HasPrefix(name, "service_"):
		return "Services"
	case strings.HasPrefix(name, "transformation_"):
		return "Transformations"
	case strings.HasPrefix(name, "team_"):
		return "Team"
	default:
		return "General"
	}
}

// List walks the gallery directory and returns all images with their
// categories. Thumbnail files are attached to their originals rather
// than listed on their own. A missing directory yields an empty list.
func List(dir string) ([]Image, error) {
	out := []Image{}
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if !imageExts[ext] {
			return nil
		}
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if strings.HasSuffix(base, thumbSuffix) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		img := Image{
			Name:     filepath.Base(path),
			Category: Category(path),
			Path:     rel,
		}
		if thumb := ThumbPath(path); fileExists(thumb) {
			relThumb, err := filepath.Rel(dir, thumb)
			if err != nil {
				return err
			}
			img.Thumb = relThumb
		}
		out = append(out, img)
		return nil
	})
	if os.IsNotExist(err) {
		return []Image{}, nil
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GroupByCategory buckets images for display.
func GroupByCategory(images []Image) map[string][]Image {
	out := map[string][]Image{}
	for _, img := range images {
		out[img.Category] = append(out[img.Category], img)
	}
	return out
}

// StoredName builds a collision-free filename for an upload while
// preserving the category prefix and extension of the original name.
func StoredName(original string) string {
	base := filepath.Base(original)
	ext := strings.ToLower(filepath.Ext(base))
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return fmt.Sprintf("%s_%s%s", sanitize(stem), uuid.NewString(), ext)
}

// ThumbPath returns the sibling thumbnail path for an image path.
func ThumbPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + thumbSuffix + ext
}

// WriteThumbnail decodes src and writes a scaled-down copy next to it
// following ThumbPath. JPEG and PNG sources are supported; other
// formats are skipped without error since the original remains
// servable.
func WriteThumbnail(src string) error {
	ext := strings.ToLower(filepath.Ext(src))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	img, _, err := image.Decode(in)
	if err != nil {
		return err
	}

	b := img.Bounds()
	w, h := fit(b.Dx(), b.Dy(), ThumbMaxWidth, ThumbMaxHeight)
	scaled := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, b, draw.Over, nil)

	out, err := os.Create(ThumbPath(src))
	if err != nil {
		return err
	}
	defer out.Close()

	if ext == ".png" {
		return png.Encode(out, scaled)
	}
	return jpeg.Encode(out, scaled, &jpeg.Options{Quality: 85})
}

// fit scales (w, h) down to fit inside (maxW, maxH) preserving the
// aspect ratio. Dimensions already inside the box are returned as-is.
func fit(w, h, maxW, maxH int) (int, int) {
	if w <= maxW && h <= maxH {
		return w, h
	}
	rw := float64(maxW) / float64(w)
	rh := float64(maxH) / float64(h)
	r := rw
	if rh < rw {
		r = rh
	}
	nw := int(float64(w) * r)
	nh := int(float64(h) * r)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	return nw, nh
}

func sanitize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return b.String()
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
