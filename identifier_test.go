package imageidentifier

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/menta2k/image-identifier/pkg/session"
	"github.com/menta2k/image-identifier/pkg/types"
)

type fakeVision struct {
	categoryReply string
	identifyReply string
}

func (f *fakeVision) Generate(ctx context.Context, prompt, imageB64, mimeType string) (string, error) {
	if strings.Contains(prompt, "tell me if it contains") {
		return f.categoryReply, nil
	}
	return f.identifyReply, nil
}

func TestGetVersion(t *testing.T) {
	if GetVersion() != Version {
		t.Errorf("GetVersion() = %q, want %q", GetVersion(), Version)
	}
}

func TestNewVisionClient(t *testing.T) {
	tests := []struct {
		name    string
		opts    BackendOptions
		wantErr bool
	}{
		{"gemini with key", BackendOptions{Provider: "gemini", APIKey: "key"}, false},
		{"gemini without key", BackendOptions{Provider: "gemini"}, true},
		{"ollama default url", BackendOptions{Provider: "ollama"}, false},
		{"llamacpp", BackendOptions{Provider: "llamacpp", URL: "http://localhost:8081"}, false},
		{"unknown provider", BackendOptions{Provider: "openvino"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vc, err := NewVisionClient(tt.opts)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if vc == nil {
				t.Error("expected a client, got nil")
			}
		})
	}
}

func TestIdentifierEndToEnd(t *testing.T) {
	ident := New(&fakeVision{
		categoryReply: "Yes, a plant.",
		identifyReply: "Common Name: Basil\nScientific Name: Ocimum basilicum",
	})

	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 500, 500))); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}

	snap, err := ident.Identify(context.Background(), types.ModePlant, types.Upload{
		Filename: "basil.png",
		MIME:     "image/png",
		Data:     buf.Bytes(),
	})
	if err != nil {
		t.Fatalf("Identify returned error: %v", err)
	}
	if snap.Status != session.StatusSuccess {
		t.Errorf("status = %q, want %q", snap.Status, session.StatusSuccess)
	}
	if snap.Plant == nil || snap.Plant.Name != "Basil" {
		t.Errorf("unexpected plant record: %+v", snap.Plant)
	}

	snap, err = ident.Reset(types.ModePlant)
	if err != nil {
		t.Fatalf("Reset returned error: %v", err)
	}
	if snap.Status != session.StatusIdle || snap.Plant != nil {
		t.Errorf("reset did not clear state: %+v", snap)
	}

	if ident.Session() == nil {
		t.Error("Session() returned nil")
	}
}
