package parse

import (
	"sort"
	"strings"

	"github.com/menta2k/image-identifier/pkg/types"
)

// The Format functions render a record back into the section layout the
// instruction templates prescribe. Feeding the output to the matching
// parser yields an equal record, which the parser tests lean on, and the
// HTTP layer uses it to export results as plain text.

// FormatPlant renders a PlantRecord in the canonical reply layout.
func FormatPlant(rec types.PlantRecord) string {
	var sb strings.Builder
	writeField(&sb, "Common Name", rec.Name)
	writeField(&sb, "Scientific Name", rec.ScientificName)
	writeField(&sb, "Description", rec.Description)
	sb.WriteString("Care Instructions:\n")
	for _, ci := range rec.CareInstructions {
		writeField(&sb, ci.Topic, ci.Detail)
	}
	return sb.String()
}

// FormatAnimal renders an AnimalRecord in the canonical reply layout.
func FormatAnimal(rec types.AnimalRecord) string {
	var sb strings.Builder
	writeField(&sb, "Common Name", rec.Name)
	writeField(&sb, "Scientific Name", rec.ScientificName)
	sb.WriteString("Classification:\n")
	c := rec.Classification
	writeIndented(&sb, "Kingdom", c.Kingdom)
	if c.Phylum != "" {
		writeIndented(&sb, "Phylum", c.Phylum)
	}
	writeIndented(&sb, "Class", c.Class)
	writeIndented(&sb, "Order", c.Order)
	writeIndented(&sb, "Family", c.Family)
	if c.Genus != "" {
		writeIndented(&sb, "Genus", c.Genus)
	}
	for _, rank := range sortedKeys(c.Extra) {
		writeIndented(&sb, titleCase(rank), c.Extra[rank])
	}
	writeField(&sb, "Description", rec.Description)
	writeField(&sb, "Habitat", rec.Habitat)
	writeField(&sb, "Diet", rec.Diet)
	writeField(&sb, "Behavior", rec.Behavior)
	writeField(&sb, "Conservation Status", rec.ConservationStatus)
	return sb.String()
}

// FormatSkin renders a SkinRecord in the canonical reply layout.
func FormatSkin(rec types.SkinRecord) string {
	var sb strings.Builder
	writeField(&sb, "Overall Skin Type", rec.SkinType)
	sb.WriteString("\nSkin Concerns:\n")
	writeBullet(&sb, "Acne", rec.Concerns.Acne)
	writeBullet(&sb, "Wrinkles", rec.Concerns.Wrinkles)
	writeBullet(&sb, "Pigmentation", rec.Concerns.Pigmentation)
	writeBullet(&sb, "Pores", rec.Concerns.Pores)
	writeBullet(&sb, "Texture", rec.Concerns.Texture)
	writeBullet(&sb, "Redness", rec.Concerns.Redness)
	sb.WriteString("\n")
	writeField(&sb, "Hydration Level", rec.HydrationLevel)
	sb.WriteString("\nRecommendations:\n")
	sb.WriteString("1. Skincare Routine:\n")
	writeBullet(&sb, "Cleanser", rec.Recommendations.Skincare.Cleanser)
	writeBullet(&sb, "Toner", rec.Recommendations.Skincare.Toner)
	writeBullet(&sb, "Treatment", rec.Recommendations.Skincare.Treatment)
	writeBullet(&sb, "Moisturizer", rec.Recommendations.Skincare.Moisturizer)
	writeBullet(&sb, "Sunscreen", rec.Recommendations.Skincare.Sunscreen)
	sb.WriteString("2. Lifestyle Recommendations:\n")
	writeBullet(&sb, "Diet", rec.Recommendations.Lifestyle.Diet)
	writeBullet(&sb, "Hydration", rec.Recommendations.Lifestyle.Hydration)
	writeBullet(&sb, "Sleep", rec.Recommendations.Lifestyle.Sleep)
	writeBullet(&sb, "Stress Management", rec.Recommendations.Lifestyle.StressManagement)
	sb.WriteString("3. Professional Treatments:\n")
	for _, t := range rec.Recommendations.ProfessionalTreatments {
		sb.WriteString("- " + t + "\n")
	}
	sb.WriteString("\n")
	writeField(&sb, "Important Notes", rec.ImportantNotes)
	return sb.String()
}

func writeField(sb *strings.Builder, label, value string) {
	sb.WriteString(label + ": " + value + "\n")
}

func writeIndented(sb *strings.Builder, label, value string) {
	sb.WriteString("  " + label + ": " + value + "\n")
}

func writeBullet(sb *strings.Builder, label, value string) {
	sb.WriteString("- " + label + ": " + value + "\n")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
