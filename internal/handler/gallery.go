package handler

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/salon-booking/internal/gallery"
)

// GalleryHandler serves the public gallery listing and the admin
// upload/delete operations. Dir is the directory images live in;
// files themselves are served statically by the router.
type GalleryHandler struct {
	Dir string
}

func NewGalleryHandler(dir string) *GalleryHandler {
	return &GalleryHandler{Dir: dir}
}

// List handles GET /v1/gallery and returns images grouped by category.
func (h *GalleryHandler) List(c echo.Context) error {
	images, err := gallery.List(h.Dir)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "gallery unavailable"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"total":      len(images),
		"categories": gallery.GroupByCategory(images),
	})
}

// Upload handles POST /v1/admin/gallery (multipart form, field "image").
// The stored filename keeps the original's category prefix so the image
// lands in the right gallery section.
func (h *GalleryHandler) Upload(c echo.Context) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing image file"})
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp":
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unsupported image type"})
	}

	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unreadable upload"})
	}
	defer src.Close()

	if err := os.MkdirAll(h.Dir, 0o755); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "gallery unavailable"})
	}
	name := gallery.StoredName(fh.Filename)
	dstPath := filepath.Join(h.Dir, name)
	dst, err := os.Create(dstPath)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store failed"})
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		_ = os.Remove(dstPath)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store failed"})
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(dstPath)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store failed"})
	}

	// Thumbnail failures are tolerated, the original still serves.
	_ = gallery.WriteThumbnail(dstPath)

	return c.JSON(http.StatusCreated, echo.Map{
		"name":     name,
		"category": gallery.Category(name),
	})
}

// Delete handles DELETE /v1/admin/gallery/:name and removes the image
// together with its thumbnail if one exists.
func (h *GalleryHandler) Delete(c echo.Context) error {
	name := filepath.Base(c.Param("name"))
	if name == "" || name == "." || name == ".." {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid image name"})
	}
	path := filepath.Join(h.Dir, name)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "image not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	if thumb := gallery.ThumbPath(path); fileExistsPath(thumb) {
		_ = os.Remove(thumb)
	}
	return c.NoContent(http.StatusNoContent)
}

func fileExistsPath(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
