package parse

import (
	"strings"

	"github.com/menta2k/image-identifier/pkg/types"
)

// classificationRanks maps cleaned taxonomy keys to assignment targets in
// the Classification struct. Keys outside this set land in Extra.
var classificationRanks = map[string]func(*types.Classification, string){
	"kingdom": func(c *types.Classification, v string) { c.Kingdom = v },
	"phylum":  func(c *types.Classification, v string) { c.Phylum = v },
	"class":   func(c *types.Classification, v string) { c.Class = v },
	"order":   func(c *types.Classification, v string) { c.Order = v },
	"family":  func(c *types.Classification, v string) { c.Family = v },
	"genus":   func(c *types.Classification, v string) { c.Genus = v },
}

// ParseAnimal converts a zoological identification reply into an
// AnimalRecord. The result is best-effort: absent fields stay empty.
//
// Header matching runs most-specific first so "Conservation Status:" is
// never mistaken for a generic continuation line.
func ParseAnimal(text string) (types.AnimalRecord, error) {
	rec := types.AnimalRecord{}
	if strings.TrimSpace(text) == "" {
		return rec, ErrEmptyInput
	}

	section := ""

	for _, line := range lines(text) {
		lower := strings.ToLower(line)

		switch {
		case strings.HasPrefix(lower, "common name:"):
			rec.Name = afterColon(line)

		case strings.HasPrefix(lower, "scientific name:"):
			rec.ScientificName = afterColon(line)

		case strings.Contains(lower, "conservation status:"):
			rec.ConservationStatus = afterColon(line)
			section = "conservation"

		case strings.HasPrefix(lower, "description:"):
			rec.Description = afterColon(line)
			section = "description"

		case strings.HasPrefix(lower, "habitat:"):
			rec.Habitat = afterColon(line)
			section = "habitat"

		case strings.HasPrefix(lower, "diet:"):
			rec.Diet = afterColon(line)
			section = "diet"

		case strings.HasPrefix(lower, "behavior:"):
			rec.Behavior = afterColon(line)
			section = "behavior"

		case lower == "classification:":
			section = "classification"

		case section == "classification":
			entry, _ := trimBullet(line)
			key, value, ok := splitKV(entry)
			if !ok || key == "" {
				continue
			}
			rank := cleanKey(key)
			if assign, known := classificationRanks[rank]; known {
				assign(&rec.Classification, value)
			} else if rank != "" {
				// Unrecognized ranks (e.g. "Suborder") are preserved but
				// kept apart from the well-known set.
				if rec.Classification.Extra == nil {
					rec.Classification.Extra = map[string]string{}
				}
				rec.Classification.Extra[rank] = value
			}

		default:
			switch section {
			case "description":
				rec.Description = appendText(rec.Description, line)
			case "habitat":
				rec.Habitat = appendText(rec.Habitat, line)
			case "diet":
				rec.Diet = appendText(rec.Diet, line)
			case "behavior":
				rec.Behavior = appendText(rec.Behavior, line)
			case "conservation":
				rec.ConservationStatus = appendText(rec.ConservationStatus, line)
			}
		}
	}

	rec.Name = strings.TrimSpace(rec.Name)
	rec.ScientificName = strings.TrimSpace(rec.ScientificName)
	rec.Description = strings.TrimSpace(rec.Description)
	rec.Habitat = strings.TrimSpace(rec.Habitat)
	rec.Diet = strings.TrimSpace(rec.Diet)
	rec.Behavior = strings.TrimSpace(rec.Behavior)
	rec.ConservationStatus = strings.TrimSpace(rec.ConservationStatus)
	return rec, nil
}
