package service

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"log"
	"strings"

	"github.com/disintegration/imaging"

	// registered so logos uploaded as PNG/GIF decode
	_ "image/gif"
	_ "image/png"
)

const (
	// Logos ride inside the persisted snapshot, so uploads are capped and
	// downscaled to keep the blob small
	maxLogoBytes = 2 * 1024 * 1024
	maxLogoDim   = 240
	logoQuality  = 80
)

// ErrLogoTooLarge rejects uploads over the 2 MB cap
var ErrLogoTooLarge = fmt.Errorf("el logo supera el máximo de 2MB")

// OptimizeLogo normalizes the company logo before it is stored. Data URIs are
// decoded, downscaled to ticket size and re-encoded as JPEG; plain URLs pass
// through untouched. An undecodable image also passes through: company edits
// never fail over cosmetics.
func OptimizeLogo(logo string) (string, error) {
	logo = strings.TrimSpace(logo)
	if logo == "" || !strings.HasPrefix(logo, "data:") {
		return logo, nil
	}

	comma := strings.IndexByte(logo, ',')
	if comma < 0 {
		return logo, nil
	}

	raw, err := base64.StdEncoding.DecodeString(logo[comma+1:])
	if err != nil {
		log.Printf("⚠️  OptimizeLogo: undecodable data URI, keeping as-is: %v", err)
		return logo, nil
	}
	if len(raw) > maxLogoBytes {
		return "", ErrLogoTooLarge
	}

	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		log.Printf("⚠️  OptimizeLogo: undecodable image, keeping as-is: %v", err)
		return logo, nil
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	var resized image.Image = img
	if width > maxLogoDim || height > maxLogoDim {
		if width > height {
			resized = imaging.Resize(img, maxLogoDim, 0, imaging.Lanczos)
		} else {
			resized = imaging.Resize(img, 0, maxLogoDim, imaging.Lanczos)
		}
		log.Printf("🔄 OptimizeLogo: resized %s logo %dx%d -> max %d", format, width, height, maxLogoDim)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: logoQuality}); err != nil {
		log.Printf("⚠️  OptimizeLogo: re-encode failed, keeping as-is: %v", err)
		return logo, nil
	}

	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
