// Package imageidentifier identifies the subject of an image with a
// generative vision model and structures the reply.
//
// A submission runs through four stages: the admission pipeline validates
// and encodes the upload and asks the model whether the expected subject
// category is plausibly present; the dispatcher sends the mode's
// instruction template with the image; the parser turns the free-text
// reply into a typed record; and the session tracks the per-mode result
// state.
//
// Basic usage:
//
//	package main
//
//	import (
//		"context"
//		"log"
//		"os"
//
//		imageidentifier "github.com/menta2k/image-identifier"
//		"github.com/menta2k/image-identifier/pkg/gemini"
//		"github.com/menta2k/image-identifier/pkg/types"
//	)
//
//	func main() {
//		vc, err := gemini.NewClient(gemini.Config{APIKey: os.Getenv("GEMINI_API_KEY")})
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		ident := imageidentifier.New(vc)
//
//		data, err := os.ReadFile("fox.jpg")
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		snap, err := ident.Identify(context.Background(), types.ModeAnimal, types.Upload{
//			Filename: "fox.jpg",
//			MIME:     "image/jpeg",
//			Data:     data,
//		})
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		log.Printf("identified: %s (%s)", snap.Animal.Name, snap.Animal.ScientificName)
//	}
//
// The package consists of four main components:
//
//  1. Admission (pkg/admission): upload validation, encoding and the
//     category gate
//  2. Dispatch (pkg/dispatch): per-mode instruction templates and the
//     model call
//  3. Parse (pkg/parse): line-oriented reply parsers for the three
//     record shapes
//  4. Session (pkg/session): the per-mode submission state machine
//
// Vision backends live in pkg/gemini, pkg/ollama and pkg/llamacpp behind
// the pkg/client interface.
package imageidentifier

import (
	"context"
	"fmt"
	"time"

	"github.com/menta2k/image-identifier/pkg/admission"
	"github.com/menta2k/image-identifier/pkg/client"
	"github.com/menta2k/image-identifier/pkg/dispatch"
	"github.com/menta2k/image-identifier/pkg/gemini"
	"github.com/menta2k/image-identifier/pkg/llamacpp"
	"github.com/menta2k/image-identifier/pkg/ollama"
	"github.com/menta2k/image-identifier/pkg/session"
	"github.com/menta2k/image-identifier/pkg/types"
)

// Version of the image identifier library
const Version = "1.0.0"

// Identifier provides a high-level interface for image identification.
type Identifier struct {
	session *session.Session
}

// New creates an Identifier with default admission limits.
func New(vc client.VisionClient) *Identifier {
	return NewWithConfig(vc, admission.DefaultConfig())
}

// NewWithConfig creates an Identifier with custom admission limits.
func NewWithConfig(vc client.VisionClient, cfg admission.Config) *Identifier {
	return &Identifier{
		session: session.New(
			admission.NewWithConfig(vc, cfg),
			dispatch.New(vc),
		),
	}
}

// Identify submits an upload for the given mode and blocks until the
// whole chain completes or fails.
func (i *Identifier) Identify(ctx context.Context, mode types.Mode, upload types.Upload) (session.Snapshot, error) {
	return i.session.Submit(ctx, mode, upload)
}

// Snapshot returns the current observable state for a mode.
func (i *Identifier) Snapshot(mode types.Mode) (session.Snapshot, error) {
	return i.session.Snapshot(mode)
}

// Reset clears a mode back to Idle (the mode-change transition).
func (i *Identifier) Reset(mode types.Mode) (session.Snapshot, error) {
	return i.session.Reset(mode)
}

// Session exposes the underlying session for callers that wire their own
// presentation layer.
func (i *Identifier) Session() *session.Session {
	return i.session
}

// BackendOptions selects and configures a vision backend for
// NewVisionClient.
type BackendOptions struct {
	// Provider is one of "gemini", "ollama" or "llamacpp".
	Provider string
	// APIKey authenticates the gemini provider.
	APIKey string
	// Model is the backend model name; each provider has its own default.
	Model string
	// URL is the server URL for the ollama and llamacpp providers.
	URL string
	// Timeout bounds a single model call where the provider supports it.
	Timeout time.Duration
}

// NewVisionClient constructs the configured vision backend.
func NewVisionClient(opts BackendOptions) (client.VisionClient, error) {
	switch opts.Provider {
	case "gemini":
		return gemini.NewClient(gemini.Config{APIKey: opts.APIKey, Model: opts.Model, Timeout: opts.Timeout})
	case "ollama":
		url := opts.URL
		if url == "" {
			url = "http://localhost:11434"
		}
		return ollama.NewClient(url, opts.Model)
	case "llamacpp":
		return llamacpp.NewClient(opts.URL, opts.Model)
	default:
		return nil, fmt.Errorf("unknown vision provider: %s (use 'gemini', 'ollama' or 'llamacpp')", opts.Provider)
	}
}

// GetVersion returns the library version.
func GetVersion() string {
	return Version
}
