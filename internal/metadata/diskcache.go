package metadata

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/mediadex/mediadex/pkg/title"
)

// placeholderName is the reserved file in the cache directory used as
// the sentinel poster for unresolved titles.
const placeholderName = "placeholder.png"

// maxKeyFileLength bounds the cache filename (before the extension);
// the key otherwise carries an unbounded amount of the raw title.
const maxKeyFileLength = 100

var (
	keyStripRegex  = regexp.MustCompile(`[^\w\s-]+`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
)

// CacheKey derives the canonical cache key for a title and optional
// year (0 = none). Both cache tiers address entries with this key.
func CacheKey(t string, year int) string {
	key := title.FoldAccents(t)
	key = keyStripRegex.ReplaceAllString(key, "")
	key = strings.TrimSpace(key)
	if year > 0 {
		key += "_" + strconv.Itoa(year)
	}
	return key
}

// keyFileName turns a cache key into a filesystem-safe filename stem.
func keyFileName(key string) string {
	name := whitespaceRuns.ReplaceAllString(key, "_")
	name = strings.Trim(name, "_")
	if len(name) > maxKeyFileLength {
		name = name[:maxKeyFileLength]
	}
	return name
}

// DiskCache stores one poster image file per cache key under a
// dedicated directory, plus the reserved placeholder file. Entries
// never expire on their own; removal is always explicit.
type DiskCache struct {
	dir string
}

// NewDiskCache opens (creating if needed) the cache directory and
// materializes the placeholder image.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	c := &DiskCache{dir: dir}
	if err := c.ensurePlaceholder(); err != nil {
		return nil, err
	}
	return c, nil
}

// Placeholder returns the sentinel poster path.
func (c *DiskCache) Placeholder() string {
	return filepath.Join(c.dir, placeholderName)
}

// PosterPath returns where the poster for the given key lives on disk.
func (c *DiskCache) PosterPath(key string) string {
	return filepath.Join(c.dir, keyFileName(key)+".jpg")
}

// Lookup returns the on-disk poster path for the key, if one exists.
func (c *DiskCache) Lookup(key string) (string, bool) {
	path := c.PosterPath(key)
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}

// WritePoster persists image bytes for the key. The write goes
// through a temp file and rename, so readers never observe a partial
// image; a concurrent write to the same key is last-writer-wins.
func (c *DiskCache) WritePoster(key string, data []byte) (string, error) {
	dest := c.PosterPath(key)

	tmp, err := os.CreateTemp(c.dir, ".poster-*")
	if err != nil {
		return "", fmt.Errorf("create temp poster: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write poster: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("close poster: %w", err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("rename poster: %w", err)
	}
	return dest, nil
}

// ImportImage re-encodes a user-supplied image into the cache slot
// for the key. Oversized images are bounded to the provider's poster
// width. Nothing is replaced unless the whole import succeeds.
func (c *DiskCache) ImportImage(key, srcPath string) (string, error) {
	img, err := imaging.Open(srcPath)
	if err != nil {
		return "", fmt.Errorf("open override image %s: %w", srcPath, err)
	}
	if img.Bounds().Dx() > 500 {
		img = imaging.Resize(img, 500, 0, imaging.Lanczos)
	}

	tmp := filepath.Join(c.dir, ".override-"+keyFileName(key)+".jpg")
	if err := imaging.Save(img, tmp, imaging.JPEGQuality(90)); err != nil {
		return "", fmt.Errorf("encode override image: %w", err)
	}

	dest := c.PosterPath(key)
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("install override image: %w", err)
	}
	return dest, nil
}

// Remove deletes the cached poster for the key. Removing an absent
// entry is not an error.
func (c *DiskCache) Remove(key string) error {
	err := os.Remove(c.PosterPath(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove cached poster: %w", err)
	}
	return nil
}

// ensurePlaceholder writes the reserved placeholder image if missing.
func (c *DiskCache) ensurePlaceholder() error {
	path := c.Placeholder()
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	img := imaging.New(500, 750, color.NRGBA{R: 0x2b, G: 0x2b, B: 0x2b, A: 0xff})
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("write placeholder: %w", err)
	}
	return nil
}
