// Package imageprep decodes raw image bytes and produces the portable
// encoded form sent to vision backends.
package imageprep

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/menta2k/image-identifier/pkg/types"
)

// Bounds reads just enough of the image to report its pixel dimensions.
func Bounds(data []byte) (width, height int, err error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err == nil {
		return cfg.Width, cfg.Height, nil
	}

	// Fallback: some WebP variants fail config-only decoding.
	img, decErr := Decode(data)
	if decErr != nil {
		return 0, 0, fmt.Errorf("failed to decode image: %w", err)
	}
	b := img.Bounds()
	return b.Dx(), b.Dy(), nil
}

// Decode decodes raw image bytes with the registered decoders, falling
// back to an explicit WebP decode.
func Decode(data []byte) (image.Image, error) {
	if img, _, err := image.Decode(bytes.NewReader(data)); err == nil {
		return img, nil
	}
	if img, err := webp.Decode(bytes.NewReader(data)); err == nil {
		return img, nil
	}
	return nil, fmt.Errorf("image: unknown format")
}

// Encode converts raw image bytes into the portable data-URI form.
//
// When either pixel dimension exceeds maxSide the image is downscaled with
// Lanczos resampling and re-encoded as JPEG at the given quality, bounding
// the payload sent to the model. Otherwise the original bytes are kept
// untouched. maxSide <= 0 disables downscaling.
func Encode(data []byte, mimeType string, maxSide, quality int) (types.EncodedImage, error) {
	if maxSide > 0 {
		w, h, err := Bounds(data)
		if err != nil {
			return types.EncodedImage{}, err
		}
		if w > maxSide || h > maxSide {
			return reencode(data, maxSide, quality)
		}
	}

	return types.EncodedImage{
		DataURI: DataURI(mimeType, data),
		MIME:    mimeType,
		Size:    len(data),
	}, nil
}

func reencode(data []byte, maxSide, quality int) (types.EncodedImage, error) {
	img, err := Decode(data)
	if err != nil {
		return types.EncodedImage{}, err
	}

	b := img.Bounds()
	if b.Dx() >= b.Dy() {
		img = imaging.Resize(img, maxSide, 0, imaging.Lanczos)
	} else {
		img = imaging.Resize(img, 0, maxSide, imaging.Lanczos)
	}

	if quality <= 0 || quality > 100 {
		quality = 85
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return types.EncodedImage{}, err
	}

	return types.EncodedImage{
		DataURI: DataURI("image/jpeg", buf.Bytes()),
		MIME:    "image/jpeg",
		Size:    buf.Len(),
	}, nil
}

// DataURI renders bytes as a base64 data URI for the given MIME type.
func DataURI(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// StripDataURI returns the raw base64 payload of a data URI. Plain base64
// input is returned unchanged.
func StripDataURI(s string) string {
	if i := strings.Index(s, "base64,"); i >= 0 {
		return s[i+len("base64,"):]
	}
	return s
}
