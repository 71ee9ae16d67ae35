package helper

import (
	"bytes"
	"fmt"
	"image"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	"cyberassess_backend/internals/configs"
)

// Image evidence is re-encoded to WebP before upload so screenshots and
// photos do not blow through the storage quota. Non-image payloads are
// passed through untouched.

func webpMaxDim() int { return configs.GetEnvInt("IMAGE_WEBP_MAX_DIM", 1600) }

func webpQuality() float32 {
	return float32(configs.GetEnvInt("IMAGE_WEBP_QUALITY", 80))
}

// IsImagePayload sniffs the content type of a payload.
func IsImagePayload(data []byte) bool {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	return strings.HasPrefix(http.DetectContentType(head), "image/")
}

// CompressImageToWebP decodes a jpeg/png/webp payload, bounds it to the
// configured max dimension (keeping aspect) and re-encodes lossy WebP.
// Returns the new payload and the ".webp" extension to use for the key.
func CompressImageToWebP(data []byte) ([]byte, string, error) {
	if len(data) == 0 {
		return nil, "", fmt.Errorf("empty file")
	}

	var src image.Image
	src, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		// webp input is not covered by imaging's decoders
		w, werr := webp.Decode(bytes.NewReader(data))
		if werr != nil {
			return nil, "", fmt.Errorf("decode image: %w", err)
		}
		src = w
	}

	maxDim := webpMaxDim()
	b := src.Bounds()
	if b.Dx() > maxDim || b.Dy() > maxDim {
		src = imaging.Fit(src, maxDim, maxDim, imaging.CatmullRom)
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, src, &webp.Options{Quality: webpQuality()}); err != nil {
		return nil, "", fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), ".webp", nil
}

// ReplaceExt swaps the extension of a file name, keeping the stem.
func ReplaceExt(name, newExt string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + newExt
}
