// Package admission validates a candidate upload before it is allowed to
// reach a vision backend: format, size, pixel dimensions, and a
// model-backed check that the image plausibly contains the expected
// subject category.
package admission

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/menta2k/image-identifier/pkg/client"
	"github.com/menta2k/image-identifier/pkg/imageprep"
	"github.com/menta2k/image-identifier/pkg/types"
)

// Rejection reasons. Callers branch with errors.Is; the pipeline never
// panics or leaks untyped errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrFileTooLarge      = errors.New("file size exceeds limit")
	ErrImageTooSmall     = errors.New("image dimensions below minimum")
	ErrUnreadableImage   = errors.New("failed to read image")
	ErrCategoryMismatch  = errors.New("image does not match the expected category")
)

// Config holds the admission limits.
type Config struct {
	// MaxBytes is the upload size ceiling.
	MaxBytes int64
	// MinDimension is the minimum for both width and height, in pixels.
	MinDimension int
	// TransportMaxSide bounds the long side of the image actually sent to
	// the model; larger images are downscaled. 0 disables downscaling.
	TransportMaxSide int
	// TransportQuality is the JPEG quality used when downscaling.
	TransportQuality int
}

// DefaultConfig returns the standard admission limits.
func DefaultConfig() Config {
	return Config{
		MaxBytes:         5 * 1024 * 1024,
		MinDimension:     400,
		TransportMaxSide: 1536,
		TransportQuality: 85,
	}
}

var supportedMIMEs = []string{"image/jpeg", "image/png", "image/webp"}

// Pipeline runs the ordered admission checks for one upload.
type Pipeline struct {
	client client.VisionClient
	config Config
}

// New creates a Pipeline with default limits.
func New(vc client.VisionClient) *Pipeline {
	return NewWithConfig(vc, DefaultConfig())
}

// NewWithConfig creates a Pipeline with custom limits.
func NewWithConfig(vc client.VisionClient, cfg Config) *Pipeline {
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = DefaultConfig().MaxBytes
	}
	if cfg.MinDimension <= 0 {
		cfg.MinDimension = DefaultConfig().MinDimension
	}
	return &Pipeline{client: vc, config: cfg}
}

// Admit validates the upload for the given mode. Checks run in order and
// short-circuit on the first failure; every outcome is returned as a
// value, never raised.
func (p *Pipeline) Admit(ctx context.Context, upload types.Upload, mode types.Mode) types.ValidationResult {
	mimeType, err := p.checkFormat(upload)
	if err != nil {
		return reject(err)
	}

	if int64(len(upload.Data)) > p.config.MaxBytes {
		return reject(fmt.Errorf("%w: %d bytes (limit %d)",
			ErrFileTooLarge, len(upload.Data), p.config.MaxBytes))
	}

	width, height, err := imageprep.Bounds(upload.Data)
	if err != nil {
		return reject(fmt.Errorf("%w: %v", ErrUnreadableImage, err))
	}
	if width < p.config.MinDimension || height < p.config.MinDimension {
		return reject(fmt.Errorf("%w: %dx%d (minimum %dx%d)",
			ErrImageTooSmall, width, height, p.config.MinDimension, p.config.MinDimension))
	}

	encoded, err := imageprep.Encode(upload.Data, mimeType, p.config.TransportMaxSide, p.config.TransportQuality)
	if err != nil {
		return reject(fmt.Errorf("%w: %v", ErrUnreadableImage, err))
	}

	if err := p.confirmCategory(ctx, encoded, mode); err != nil {
		return reject(err)
	}

	return types.ValidationResult{Accepted: true, Encoded: encoded}
}

// checkFormat verifies the declared MIME type against the allow-list and
// cross-checks it with content sniffing. The sniffed type wins: a
// mislabeled upload is judged by what it actually is.
func (p *Pipeline) checkFormat(upload types.Upload) (string, error) {
	declared := strings.ToLower(strings.TrimSpace(upload.MIME))
	if !mimeSupported(declared) {
		return "", fmt.Errorf("%w: %q (supported: jpeg, png, webp)", ErrUnsupportedFormat, upload.MIME)
	}

	detected := mimetype.Detect(upload.Data).String()
	if !mimeSupported(detected) {
		return "", fmt.Errorf("%w: content is %q (supported: jpeg, png, webp)", ErrUnsupportedFormat, detected)
	}
	if detected != declared {
		log.Printf("admission.checkFormat: declared %q but content is %q, using detected type", declared, detected)
	}
	return detected, nil
}

// confirmCategory asks the model whether the image plausibly contains the
// mode's subject. This is a heuristic gate, not a guarantee: any failure
// to get a clear affirmative is a mismatch.
func (p *Pipeline) confirmCategory(ctx context.Context, encoded types.EncodedImage, mode types.Mode) error {
	prompt := fmt.Sprintf(`Analyze this image and tell me if it contains a %s. Only respond with "yes" or "no" followed by a brief explanation.`, mode.Subject())

	reply, err := p.client.Generate(ctx, prompt, encoded.Base64(), encoded.MIME)
	if err != nil {
		log.Printf("admission.confirmCategory: model check failed: %v", err)
		return fmt.Errorf("%w: could not confirm a %s is present", ErrCategoryMismatch, mode.Subject())
	}

	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(reply)), "yes") {
		return fmt.Errorf("%w: this image doesn't appear to contain a %s", ErrCategoryMismatch, mode.Subject())
	}
	return nil
}

func mimeSupported(mime string) bool {
	for _, m := range supportedMIMEs {
		if mime == m {
			return true
		}
	}
	return false
}

func reject(reason error) types.ValidationResult {
	return types.ValidationResult{Accepted: false, Reason: reason}
}
