// Package security provides input validation for image sources and
// rendered output paths.
package security

import (
	"errors"
	"fmt"
	"io"
	"net/netip"
	"net/url"
	"path/filepath"
	"strings"
)

// ErrSizeLimit is returned once a LimitedReader sees more bytes than its limit.
var ErrSizeLimit = errors.New("decompression size limit exceeded")

// ValidateImageURL validates an HTTP(S) URL before an image is fetched from
// it. Loopback, link-local and private hosts are rejected unless
// allowPrivate is set.
func ValidateImageURL(urlStr string, allowPrivate bool) error {
	if urlStr == "" {
		return fmt.Errorf("empty URL")
	}

	parsed, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return fmt.Errorf("only http:// and https:// image URLs are allowed (got %q)", parsed.Scheme)
	}

	if parsed.Host == "" {
		return fmt.Errorf("URL must have a hostname")
	}

	host := strings.ToLower(parsed.Hostname())
	if !allowPrivate && isLocalOrPrivateHost(host) {
		return fmt.Errorf("URL cannot point to local or private hosts: %s", host)
	}

	return nil
}

// ValidateOutputPath ensures a relative path stays inside baseDir once
// joined, and returns the joined path.
func ValidateOutputPath(relPath, baseDir string) (string, error) {
	if relPath == "" {
		return "", fmt.Errorf("empty output path")
	}
	if filepath.IsAbs(relPath) {
		return "", fmt.Errorf("absolute output paths are not allowed: %s", relPath)
	}

	cleanBase := filepath.Clean(baseDir)
	final := filepath.Clean(filepath.Join(cleanBase, relPath))
	if final != cleanBase && !strings.HasPrefix(final, cleanBase+string(filepath.Separator)) {
		return "", fmt.Errorf("output path would escape %s: %s", baseDir, relPath)
	}
	return final, nil
}

// LimitedReader wraps an io.Reader and limits the total bytes that can be read.
// This prevents decompression bombs in compressed image input. A stream of
// exactly the limit reads through to the wrapped reader's EOF; ErrSizeLimit
// is returned only once a byte past the limit actually arrives.
type LimitedReader struct {
	R         io.Reader
	Remaining int64
}

// Read implements io.Reader with size limits. It asks for at most one byte
// beyond the budget so an oversized stream is detected without being
// buffered.
func (l *LimitedReader) Read(p []byte) (int, error) {
	if l.Remaining < 0 {
		return 0, ErrSizeLimit
	}
	if int64(len(p)) > l.Remaining+1 {
		p = p[:l.Remaining+1]
	}
	n, err := l.R.Read(p)
	l.Remaining -= int64(n)
	if l.Remaining < 0 {
		// Only the byte past the budget is withheld.
		return n - 1, ErrSizeLimit
	}
	return n, err
}

// NewLimitedReader creates a new LimitedReader with the specified size limit.
func NewLimitedReader(r io.Reader, maxBytes int64) *LimitedReader {
	return &LimitedReader{
		R:         r,
		Remaining: maxBytes,
	}
}

// isLocalOrPrivateHost reports whether host is localhost or a loopback,
// link-local or private address.
func isLocalOrPrivateHost(host string) bool {
	if host == "localhost" || strings.HasSuffix(host, ".localhost") {
		return true
	}

	addr, err := netip.ParseAddr(strings.Trim(host, "[]"))
	if err != nil {
		return false
	}
	return addr.IsLoopback() || addr.IsPrivate() || addr.IsLinkLocalUnicast() ||
		addr.IsLinkLocalMulticast() || addr.IsUnspecified()
}
