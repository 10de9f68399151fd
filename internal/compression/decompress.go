// Package compression unwraps compressed image payloads before decoding.
package compression

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/jmylchreest/cpe/internal/security"
)

// MaxDecompressedSize caps the size of a decompressed image.
const MaxDecompressedSize = 256 * 1024 * 1024

// Format identifies a compression container.
type Format string

const (
	FormatNone  Format = ""
	FormatXz    Format = "xz"
	FormatGzip  Format = "gzip"
	FormatBzip2 Format = "bzip2"
)

var (
	magicXz    = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
	magicGzip  = []byte{0x1f, 0x8b}
	magicBzip2 = []byte("BZh")
)

// SupportedExtensions returns the file suffixes of the supported formats.
func SupportedExtensions() []string {
	return []string{".xz", ".gz", ".bz2"}
}

// IsCompressedName reports whether name ends in a supported suffix.
func IsCompressedName(name string) bool {
	return slices.Contains(SupportedExtensions(), strings.ToLower(filepath.Ext(name)))
}

// Detect identifies the container from its leading bytes.
func Detect(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, magicXz):
		return FormatXz
	case bytes.HasPrefix(data, magicGzip):
		return FormatGzip
	case bytes.HasPrefix(data, magicBzip2):
		return FormatBzip2
	default:
		return FormatNone
	}
}

// Decompress unwraps data when it carries a known container and returns the
// payload together with name minus its compression suffix. Uncompressed
// data is returned unchanged.
func Decompress(data []byte, name string) ([]byte, string, error) {
	return decompress(data, name, MaxDecompressedSize)
}

func decompress(data []byte, name string, limit int64) ([]byte, string, error) {
	format := Detect(data)
	if format == FormatNone {
		return data, name, nil
	}

	var r io.Reader
	switch format {
	case FormatXz:
		xzr, err := xz.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, "", fmt.Errorf("failed to create xz reader: %w", err)
		}
		r = xzr
	case FormatGzip:
		gzr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, "", fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gzr.Close()
		r = gzr
	case FormatBzip2:
		r = bzip2.NewReader(bytes.NewReader(data))
	}

	out, err := io.ReadAll(security.NewLimitedReader(r, limit))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decompress %s image: %w", format, err)
	}

	if IsCompressedName(name) {
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	return out, name, nil
}
