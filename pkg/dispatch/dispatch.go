// Package dispatch formats the per-mode instruction templates and sends
// them, with the encoded image, to a vision backend.
package dispatch

import (
	"context"
	"fmt"
	"strings"

	"github.com/menta2k/image-identifier/pkg/client"
	"github.com/menta2k/image-identifier/pkg/types"
)

// The instruction templates prescribe an exact section layout for the
// model's reply. This is a soft contract: the parsers in pkg/parse
// tolerate deviation, but the wording here is what the parsers' section
// headers are tuned to. Do not reword casually.

// PlantPrompt instructs the model to describe a plant.
const PlantPrompt = `
You are a botanical expert. Analyze this plant image and provide detailed information in exactly this format:

Common Name: [plant's common name]
Scientific Name: [scientific name]
Description: [2-3 sentences describing the plant's appearance and characteristics]
Care Instructions:
Light: [light requirements]
Water: [watering needs]
Soil: [soil preferences]
Temperature: [temperature requirements]
Humidity: [humidity preferences]
Fertilizer: [fertilizing recommendations]

Important: Always provide the Common Name and Scientific Name. If you're not completely certain, use qualifiers like "appears to be" or "likely". Never skip these fields.
`

// AnimalPrompt instructs the model to describe an animal.
const AnimalPrompt = `
You are a zoologist. Analyze this animal image and provide detailed information in exactly this format:

Common Name: [animal's common name]
Scientific Name: [scientific name]
Classification:
  Kingdom: [kingdom]
  Class: [class]
  Order: [order]
  Family: [family]
Description: [2-3 sentences describing the animal's appearance and characteristics]
Habitat: [natural habitat and geographical distribution]
Diet: [feeding habits and preferred food]
Behavior: [notable behavioral characteristics]
Conservation Status: [IUCN Red List status if applicable]

Important: Always provide the Common Name and Scientific Name. If you're not completely certain, use qualifiers like "appears to be" or "likely". Never skip these fields.
`

// SkinPrompt instructs the model to analyze facial skin.
const SkinPrompt = `
You are a dermatologist. Analyze this facial skin image and provide a detailed analysis in exactly this format:

Overall Skin Type: [combination/oily/dry/normal]

Skin Concerns:
- Acne: [severity and type if present]
- Wrinkles: [presence and severity]
- Pigmentation: [type and severity]
- Pores: [size and visibility]
- Texture: [description]
- Redness: [presence and severity]

Hydration Level: [description of skin's moisture level]

Recommendations:
1. Skincare Routine:
   - Cleanser: [type recommendation]
   - Toner: [if needed]
   - Treatment: [specific products or ingredients]
   - Moisturizer: [type recommendation]
   - Sunscreen: [type and SPF recommendation]

2. Lifestyle Recommendations:
   - Diet: [specific foods that might help]
   - Hydration: [water intake recommendation]
   - Sleep: [if relevant]
   - Stress Management: [if signs of stress-related skin issues]

3. Professional Treatments:
   [list any recommended professional treatments if necessary]

Important Notes:
[any specific warnings or important observations]

Please note: This is an AI-generated analysis and should not replace professional medical advice. Consult a dermatologist for accurate diagnosis and treatment.
`

// Prompt returns the instruction template for a mode.
func Prompt(mode types.Mode) (string, error) {
	switch mode {
	case types.ModePlant:
		return PlantPrompt, nil
	case types.ModeAnimal:
		return AnimalPrompt, nil
	case types.ModeSkin:
		return SkinPrompt, nil
	}
	return "", fmt.Errorf("no prompt for mode %q", mode)
}

// Dispatcher sends identification queries to a vision backend. One call
// per submission, no retries, no streaming.
type Dispatcher struct {
	client client.VisionClient
}

// New creates a Dispatcher backed by the given vision client.
func New(vc client.VisionClient) *Dispatcher {
	return &Dispatcher{client: vc}
}

// Identify sends the mode's instruction template plus the encoded image
// and returns the raw reply text. Failures carry the client package's
// typed errors.
func (d *Dispatcher) Identify(ctx context.Context, mode types.Mode, img types.EncodedImage) (string, error) {
	if img.Empty() {
		return "", fmt.Errorf("no image provided for identification")
	}

	prompt, err := Prompt(mode)
	if err != nil {
		return "", err
	}

	text, err := d.client.Generate(ctx, prompt, img.Base64(), img.MIME)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", client.ErrEmptyResponse
	}
	return text, nil
}
