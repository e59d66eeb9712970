package portfolio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"

	"github.com/Xav0929/portfolio/content"
)

const (
	maxThumbWidth = 800
	jpegQuality   = 80
)

var errBadImageName = errors.New("invalid image name")

// Thumbnailer scales images from one directory down to a maximum width and
// keeps the encoded JPEGs in memory. Assets are read-only for the life of
// the process, so entries never expire.
type Thumbnailer struct {
	dir   string
	width int

	mu    sync.RWMutex
	cache map[string][]byte
}

// NewThumbnailer creates a Thumbnailer serving images from dir.
func NewThumbnailer(dir string, width int) *Thumbnailer {
	return &Thumbnailer{dir: dir, width: width, cache: make(map[string][]byte)}
}

// Thumbnail returns the JPEG thumbnail for the image called name.
func (t *Thumbnailer) Thumbnail(name string) ([]byte, error) {
	if !validImageName(name) {
		return nil, fmt.Errorf("%w: %q", errBadImageName, name)
	}

	t.mu.RLock()
	data, ok := t.cache[name]
	t.mu.RUnlock()
	if ok {
		return data, nil
	}

	f, err := os.Open(filepath.Join(t.dir, name))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err = scaleImage(f, t.width)
	if err != nil {
		return nil, fmt.Errorf("thumbnail %s: %w", name, err)
	}

	t.mu.Lock()
	t.cache[name] = data
	t.mu.Unlock()
	return data, nil
}

// scaleImage decodes an image from src, resizes it to maxWidth if it is
// wider, and encodes it as JPEG.
func scaleImage(src io.Reader, maxWidth int) ([]byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxWidth {
		newH := h * maxWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// validImageName accepts a single path element that is not hidden.
func validImageName(name string) bool {
	return name != "" &&
		!strings.HasPrefix(name, ".") &&
		!strings.ContainsAny(name, `/\`)
}

// handleThumbnail serves a scaled project image. Any failure redirects to the
// fallback image; the visitor never sees an error.
func (a *App) handleThumbnail(c echo.Context) error {
	name, err := url.PathUnescape(c.Param("name"))
	if err == nil {
		var data []byte
		if data, err = a.thumbs.Thumbnail(name); err == nil {
			return c.Blob(http.StatusOK, "image/jpeg", data)
		}
	}
	c.Logger().Debugf("thumbnail fallback for %q: %v", c.Param("name"), err)
	return c.Redirect(http.StatusFound, content.FallbackImage)
}

// MissingAssets lists the local images referenced by cat that do not exist
// under staticDir.
func MissingAssets(staticDir string, cat *content.Catalog) []string {
	var missing []string
	for _, img := range cat.Images() {
		if _, err := os.Stat(filepath.Join(staticDir, filepath.FromSlash(img))); err != nil {
			missing = append(missing, img)
		}
	}
	return missing
}
