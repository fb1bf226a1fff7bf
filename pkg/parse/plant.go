package parse

import (
	"strings"

	"github.com/menta2k/image-identifier/pkg/types"
)

// ParsePlant converts a botanical identification reply into a
// PlantRecord. The result is best-effort: absent fields stay empty.
func ParsePlant(text string) (types.PlantRecord, error) {
	rec := types.PlantRecord{}
	if strings.TrimSpace(text) == "" {
		return rec, ErrEmptyInput
	}

	section := ""
	currentTopic := -1 // index into rec.CareInstructions

	for _, line := range lines(text) {
		lower := strings.ToLower(line)

		switch {
		case strings.HasPrefix(lower, "common name:"):
			rec.Name = afterColon(line)

		case strings.HasPrefix(lower, "scientific name:"):
			rec.ScientificName = afterColon(line)

		case strings.HasPrefix(lower, "description:"):
			rec.Description = afterColon(line)
			section = "description"

		case lower == "care instructions:":
			section = "care"

		case section == "description" && !strings.Contains(line, ":"):
			rec.Description = appendText(rec.Description, line)

		case section == "care":
			entry, _ := trimBullet(line)
			if strings.Contains(entry, ":") {
				key, value, _ := splitKV(entry)
				if key != "" && value != "" {
					currentTopic = upsertCare(&rec, key, value)
				}
			} else if currentTopic >= 0 {
				// Continuation of the previous care topic.
				rec.CareInstructions[currentTopic].Detail = appendText(rec.CareInstructions[currentTopic].Detail, line)
			}
		}
	}

	rec.Name = strings.TrimSpace(rec.Name)
	rec.ScientificName = strings.TrimSpace(rec.ScientificName)
	rec.Description = strings.TrimSpace(rec.Description)
	for i := range rec.CareInstructions {
		rec.CareInstructions[i].Detail = strings.TrimSpace(rec.CareInstructions[i].Detail)
	}
	return rec, nil
}

// upsertCare updates an existing care topic or appends a new one,
// preserving emission order, and returns its index.
func upsertCare(rec *types.PlantRecord, topic, detail string) int {
	for i := range rec.CareInstructions {
		if strings.EqualFold(rec.CareInstructions[i].Topic, topic) {
			rec.CareInstructions[i].Detail = detail
			return i
		}
	}
	rec.CareInstructions = append(rec.CareInstructions, types.CareInstruction{Topic: topic, Detail: detail})
	return len(rec.CareInstructions) - 1
}
