// Package imagecache stores downloaded source images on disk, keyed by URL,
// so repeated runs against the same URL skip the network.
package imagecache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
)

// DirName is the subdirectory of the output directory used for the cache.
const DirName = "images"

// Cache is a directory of downloaded images.
type Cache struct {
	// Dir is the directory where images are cached.
	Dir string
}

// New returns a cache rooted at dir.
func New(dir string) *Cache {
	return &Cache{Dir: dir}
}

// Filename derives a deterministic file name from a URL: the first 16 bytes
// of its SHA-256 as hex plus the URL path's extension, if it has a short one.
func Filename(rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))
	name := hex.EncodeToString(sum[:16])

	p := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		p = u.Path
	}
	if ext := path.Ext(p); ext != "" && len(ext) <= 5 {
		name += ext
	}
	return name
}

// Path returns where rawURL is cached.
func (c *Cache) Path(rawURL string) string {
	return filepath.Join(c.Dir, Filename(rawURL))
}

// Get returns the cached bytes for rawURL. A miss returns ok == false and
// no error.
func (c *Cache) Get(rawURL string) (data []byte, ok bool, err error) {
	data, err = os.ReadFile(c.Path(rawURL))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, false, nil
	case err != nil:
		return nil, false, fmt.Errorf("failed to read cached image: %w", err)
	}
	return data, true, nil
}

// Put stores data for rawURL and returns the file written.
func (c *Cache) Put(rawURL string, data []byte) (string, error) {
	if err := os.MkdirAll(c.Dir, 0o755); err != nil { // #nosec G301 -- cache directory needs standard permissions
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}
	p := c.Path(rawURL)
	if err := os.WriteFile(p, data, 0o644); err != nil { // #nosec G306 -- cached images are not secret
		return "", fmt.Errorf("failed to write cached image: %w", err)
	}
	return p, nil
}
