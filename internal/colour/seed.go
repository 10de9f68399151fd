package colour

import (
	"crypto/sha256"
	"encoding/binary"
)

// ContentSeed derives a k-means++ seed from the grid's pixels, so the same
// image content always produces the same palette regardless of file name.
func ContentSeed(g *PixelGrid) uint64 {
	hasher := sha256.New()

	dims := make([]byte, 8)
	binary.LittleEndian.PutUint32(dims[0:4], uint32(g.Width))  // #nosec G115 -- image dimensions are safe to convert
	binary.LittleEndian.PutUint32(dims[4:8], uint32(g.Height)) // #nosec G115 -- image dimensions are safe to convert
	hasher.Write(dims)

	// A grid sample is enough to tell images apart.
	step := max(g.Width/100, g.Height/100, 1)
	for y := 0; y < g.Height; y += step {
		for x := 0; x < g.Width; x += step {
			i := (y*g.Width + x) * 4
			hasher.Write(g.Pix[i : i+4])
		}
	}

	sum := hasher.Sum(nil)
	return binary.LittleEndian.Uint64(sum[:8])
}
