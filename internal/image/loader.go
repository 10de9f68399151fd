// Package image provides utilities for loading source images from files,
// directories and HTTP(S) URLs.
package image

import (
	"bytes"
	"context"
	"crypto/rand"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"math/big"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	_ "golang.org/x/image/webp" // Register WebP format

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/cpe/internal/compression"
	"github.com/jmylchreest/cpe/internal/security"
	"github.com/jmylchreest/cpe/internal/util/imagecache"
	httputil "github.com/jmylchreest/cpe/internal/util/http"
)

// Loader handles loading images from various sources.
type Loader interface {
	// Load loads an image from the given path.
	Load(ctx context.Context, path string) (image.Image, error)
}

// FileLoader loads images from the local filesystem.
type FileLoader struct{}

// NewFileLoader creates a new FileLoader instance.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load loads an image from a file path.
// Supported formats: JPEG, PNG, GIF, WebP, optionally xz, gzip or bzip2
// compressed.
func (l *FileLoader) Load(_ context.Context, path string) (image.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("image path cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("image file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to stat image file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	data, err := os.ReadFile(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to read image file: %w", err)
	}
	return decode(data, filepath.Base(path))
}

// decode unwraps any compression container and decodes the image.
func decode(data []byte, name string) (image.Image, error) {
	data, name, err := compression.Decompress(data, name)
	if err != nil {
		return nil, err
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s (format: %s): %w", name, format, err)
	}
	return img, nil
}

// SupportedImageExtensions returns a list of supported image file extensions.
func SupportedImageExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
}

// isImageFile checks if a file has a supported image extension, looking
// past a compression suffix.
func isImageFile(name string) bool {
	name = strings.ToLower(name)
	if compression.IsCompressedName(name) {
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	return slices.Contains(SupportedImageExtensions(), filepath.Ext(name))
}

// isURL reports whether path is an HTTP(S) URL.
func isURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// ValidateImagePath checks if the given path is a plausible image source:
// an HTTP(S) URL, an existing directory, or an existing file with a
// supported extension.
func ValidateImagePath(path string) error {
	if path == "" {
		return fmt.Errorf("image path cannot be empty")
	}
	if isURL(path) {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("image file or directory not found: %s", path)
		}
		return fmt.Errorf("failed to access image path: %w", err)
	}
	if info.IsDir() {
		return nil
	}
	if !isImageFile(path) {
		return fmt.Errorf("unsupported image extension %q (supported: %v, optionally compressed with %v)",
			filepath.Ext(path), SupportedImageExtensions(), compression.SupportedExtensions())
	}
	return nil
}

// ScanDirectoryForImages scans a directory and returns all valid image files
// in name order. It does not recurse into subdirectories, but follows
// symlinks.
func ScanDirectoryForImages(dirPath string) ([]string, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var imageFiles []string
	for _, entry := range entries {
		fullPath := filepath.Join(dirPath, entry.Name())

		// Stat the target so symlinks resolve; skip what we cannot stat.
		info, err := os.Stat(fullPath)
		if err != nil || info.IsDir() {
			continue
		}
		if isImageFile(entry.Name()) {
			imageFiles = append(imageFiles, fullPath)
		}
	}

	if len(imageFiles) == 0 {
		return nil, fmt.Errorf("no supported image files found in directory: %s", dirPath)
	}
	return imageFiles, nil
}

// SelectRandomImage selects a random image from a list of image paths.
func SelectRandomImage(imagePaths []string) (string, error) {
	if len(imagePaths) == 0 {
		return "", fmt.Errorf("image path list is empty")
	}

	idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(imagePaths))))
	if err != nil {
		return "", fmt.Errorf("failed to generate random number: %w", err)
	}
	return imagePaths[idx.Int64()], nil
}

// ResolveImagePath resolves a path that could be a file, directory or URL.
// Directories resolve to their first image in name order, or a random one
// when random is set. Files and URLs are returned as-is.
func ResolveImagePath(path string, random bool) (string, error) {
	if isURL(path) {
		return path, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to access path: %w", err)
	}
	if !info.IsDir() {
		return path, nil
	}

	imageFiles, err := ScanDirectoryForImages(path)
	if err != nil {
		return "", err
	}
	if random {
		return SelectRandomImage(imageFiles)
	}
	return imageFiles[0], nil
}

// SmartLoader loads images from both local files and HTTP(S) URLs.
type SmartLoader struct {
	fileLoader *FileLoader

	// FetchOptions configures remote fetches.
	FetchOptions httputil.FetchOptions

	// AllowPrivateHosts permits URLs on loopback and private networks.
	AllowPrivateHosts bool

	// Cache, when set, keeps downloaded images and serves repeat URLs
	// from disk.
	Cache *imagecache.Cache

	// Logger receives debug output. Nil discards it.
	Logger hclog.Logger
}

// NewSmartLoader creates a new SmartLoader instance.
func NewSmartLoader() *SmartLoader {
	return &SmartLoader{
		fileLoader: NewFileLoader(),
	}
}

func (l *SmartLoader) logger() hclog.Logger {
	if l.Logger == nil {
		return hclog.NewNullLogger()
	}
	return l.Logger
}

// Load loads an image from either a local file path or HTTP(S) URL.
func (l *SmartLoader) Load(ctx context.Context, source string) (image.Image, error) {
	if isURL(source) {
		return l.loadFromURL(ctx, source)
	}
	l.logger().Debug("loading image file", "path", source)
	return l.fileLoader.Load(ctx, source)
}

// loadFromURL fetches and decodes an image from an HTTP(S) URL.
func (l *SmartLoader) loadFromURL(ctx context.Context, url string) (image.Image, error) {
	if err := security.ValidateImageURL(url, l.AllowPrivateHosts); err != nil {
		return nil, err
	}

	if l.Cache != nil {
		data, ok, err := l.Cache.Get(url)
		if err != nil {
			return nil, err
		}
		if ok {
			l.logger().Debug("using cached image", "url", url, "path", l.Cache.Path(url))
			return decode(data, path.Base(url))
		}
	}

	l.logger().Debug("fetching image", "url", url)
	resp, err := httputil.Fetch(ctx, url, l.FetchOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image from URL: %w", err)
	}
	l.logger().Debug("fetched image", "bytes", len(resp.Data), "content_type", resp.ContentType)

	img, err := decode(resp.Data, path.Base(url))
	if err != nil {
		return nil, err
	}
	if l.Cache != nil {
		p, err := l.Cache.Put(url, resp.Data)
		if err != nil {
			return nil, err
		}
		l.logger().Debug("cached image", "path", p)
	}
	return img, nil
}
