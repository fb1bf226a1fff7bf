package types

import "strings"

// Mode selects which identification domain is active: the prompt template,
// the response parser, and the record shape all follow from it.
type Mode string

const (
	ModePlant  Mode = "plant"
	ModeAnimal Mode = "animal"
	ModeSkin   Mode = "skin"
)

// Valid reports whether m is one of the supported modes.
func (m Mode) Valid() bool {
	switch m {
	case ModePlant, ModeAnimal, ModeSkin:
		return true
	}
	return false
}

// Subject returns the noun used when asking the model whether an image
// contains this category of subject.
func (m Mode) Subject() string {
	switch m {
	case ModeSkin:
		return "human face"
	default:
		return string(m)
	}
}

// ParseMode converts a string into a Mode, case-insensitively.
func ParseMode(s string) (Mode, bool) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	return m, m.Valid()
}

// Upload is a raw image submission: the bytes as received plus the
// declared MIME type. Produced by the presentation layer.
type Upload struct {
	Filename string
	MIME     string
	Data     []byte
}

// EncodedImage is the portable representation of an admitted image: a
// base64 data URI plus the MIME type and byte length of the encoded
// payload. Immutable once produced by the admission pipeline.
type EncodedImage struct {
	DataURI string `json:"data_uri"`
	MIME    string `json:"mime"`
	Size    int    `json:"size"`
}

// Base64 returns the raw base64 payload with any data-URI prefix removed.
func (e EncodedImage) Base64() string {
	if i := strings.Index(e.DataURI, "base64,"); i >= 0 {
		return e.DataURI[i+len("base64,"):]
	}
	return e.DataURI
}

// Empty reports whether the image carries no payload.
func (e EncodedImage) Empty() bool {
	return e.DataURI == ""
}

// ValidationResult is the outcome of the admission pipeline. Exactly one of
// Encoded (accepted) or Reason (rejected) is meaningful.
type ValidationResult struct {
	Accepted bool
	Encoded  EncodedImage
	Reason   error
}

// CareInstruction is one care topic for a plant, e.g. "Light" or "Water".
// Instructions keep the order the model emitted them in.
type CareInstruction struct {
	Topic  string `json:"topic"`
	Detail string `json:"detail"`
}

// PlantRecord is the structured result of a plant identification.
type PlantRecord struct {
	Name             string            `json:"name"`
	ScientificName   string            `json:"scientific_name"`
	Description      string            `json:"description"`
	CareInstructions []CareInstruction `json:"care_instructions"`
}

// Identified reports whether the record carries at least one of the
// minimal-identity fields.
func (r PlantRecord) Identified() bool {
	return r.Name != "" || r.ScientificName != ""
}

// Care returns the detail for a care topic, matching case-insensitively.
func (r PlantRecord) Care(topic string) (string, bool) {
	for _, ci := range r.CareInstructions {
		if strings.EqualFold(ci.Topic, topic) {
			return ci.Detail, true
		}
	}
	return "", false
}

// Classification holds the well-known taxonomic ranks for an animal.
// Ranks the model emits outside this set are preserved in Extra rather
// than dropped.
type Classification struct {
	Kingdom string            `json:"kingdom"`
	Phylum  string            `json:"phylum,omitempty"`
	Class   string            `json:"class"`
	Order   string            `json:"order"`
	Family  string            `json:"family"`
	Genus   string            `json:"genus,omitempty"`
	Extra   map[string]string `json:"extra,omitempty"`
}

// AnimalRecord is the structured result of an animal identification.
type AnimalRecord struct {
	Name               string         `json:"name"`
	ScientificName     string         `json:"scientific_name"`
	Classification     Classification `json:"classification"`
	Description        string         `json:"description"`
	Habitat            string         `json:"habitat"`
	Diet               string         `json:"diet"`
	Behavior           string         `json:"behavior"`
	ConservationStatus string         `json:"conservation_status"`
}

// Identified reports whether the record carries at least one of the
// minimal-identity fields.
func (r AnimalRecord) Identified() bool {
	return r.Name != "" || r.ScientificName != ""
}

// SkinConcerns is the fixed set of concern assessments in a skin analysis.
type SkinConcerns struct {
	Acne         string `json:"acne"`
	Wrinkles     string `json:"wrinkles"`
	Pigmentation string `json:"pigmentation"`
	Pores        string `json:"pores"`
	Texture      string `json:"texture"`
	Redness      string `json:"redness"`
}

// SkincareRoutine is the fixed set of skincare product recommendations.
type SkincareRoutine struct {
	Cleanser    string `json:"cleanser"`
	Toner       string `json:"toner"`
	Treatment   string `json:"treatment"`
	Moisturizer string `json:"moisturizer"`
	Sunscreen   string `json:"sunscreen"`
}

// LifestyleAdvice is the fixed set of lifestyle recommendations.
type LifestyleAdvice struct {
	Diet             string `json:"diet"`
	Hydration        string `json:"hydration"`
	Sleep            string `json:"sleep"`
	StressManagement string `json:"stress_management"`
}

// SkinRecommendations groups all recommendation blocks of a skin analysis.
type SkinRecommendations struct {
	Skincare               SkincareRoutine `json:"skincare"`
	Lifestyle              LifestyleAdvice `json:"lifestyle"`
	ProfessionalTreatments []string        `json:"professional_treatments"`
}

// SkinRecord is the structured result of a facial skin analysis.
type SkinRecord struct {
	SkinType        string              `json:"skin_type"`
	Concerns        SkinConcerns        `json:"concerns"`
	HydrationLevel  string              `json:"hydration_level"`
	Recommendations SkinRecommendations `json:"recommendations"`
	ImportantNotes  string              `json:"important_notes"`
}

// Identified reports whether the minimal-identity field is present.
func (r SkinRecord) Identified() bool {
	return r.SkinType != ""
}
