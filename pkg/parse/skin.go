package parse

import (
	"strings"

	"github.com/menta2k/image-identifier/pkg/types"
)

var concernKeys = map[string]func(*types.SkinConcerns, string){
	"acne":         func(c *types.SkinConcerns, v string) { c.Acne = v },
	"wrinkles":     func(c *types.SkinConcerns, v string) { c.Wrinkles = v },
	"pigmentation": func(c *types.SkinConcerns, v string) { c.Pigmentation = v },
	"pores":        func(c *types.SkinConcerns, v string) { c.Pores = v },
	"texture":      func(c *types.SkinConcerns, v string) { c.Texture = v },
	"redness":      func(c *types.SkinConcerns, v string) { c.Redness = v },
}

var skincareKeys = map[string]func(*types.SkincareRoutine, string){
	"cleanser":    func(s *types.SkincareRoutine, v string) { s.Cleanser = v },
	"toner":       func(s *types.SkincareRoutine, v string) { s.Toner = v },
	"treatment":   func(s *types.SkincareRoutine, v string) { s.Treatment = v },
	"moisturizer": func(s *types.SkincareRoutine, v string) { s.Moisturizer = v },
	"sunscreen":   func(s *types.SkincareRoutine, v string) { s.Sunscreen = v },
}

var lifestyleKeys = map[string]func(*types.LifestyleAdvice, string){
	"diet":             func(l *types.LifestyleAdvice, v string) { l.Diet = v },
	"hydration":        func(l *types.LifestyleAdvice, v string) { l.Hydration = v },
	"sleep":            func(l *types.LifestyleAdvice, v string) { l.Sleep = v },
	"stressmanagement": func(l *types.LifestyleAdvice, v string) { l.StressManagement = v },
}

// ParseSkin converts a dermatological analysis reply into a SkinRecord.
// The result is best-effort: absent fields stay empty.
func ParseSkin(text string) (types.SkinRecord, error) {
	rec := types.SkinRecord{}
	if strings.TrimSpace(text) == "" {
		return rec, ErrEmptyInput
	}

	section := ""

	for _, line := range lines(text) {
		lower := strings.ToLower(line)

		switch {
		case strings.HasPrefix(lower, "overall skin type:"):
			rec.SkinType = afterColon(line)
			section = ""

		case lower == "skin concerns:":
			section = "concerns"

		case strings.HasPrefix(lower, "hydration level:"):
			rec.HydrationLevel = afterColon(line)
			section = ""

		case lower == "recommendations:":
			section = "recommendations"

		case strings.HasPrefix(lower, "1. skincare routine:"):
			section = "skincare"

		case strings.HasPrefix(lower, "2. lifestyle recommendations:"):
			section = "lifestyle"

		case strings.HasPrefix(lower, "3. professional treatments:"):
			section = "professionalTreatments"

		case strings.HasPrefix(lower, "important notes:"):
			rec.ImportantNotes = afterColon(line)
			section = "notes"

		default:
			switch section {
			case "concerns":
				if entry, ok := trimBullet(line); ok {
					if key, value, split := splitKV(entry); split {
						if assign, known := concernKeys[cleanKey(key)]; known {
							assign(&rec.Concerns, value)
						}
					}
				}

			case "skincare":
				if entry, ok := trimBullet(line); ok {
					if key, value, split := splitKV(entry); split {
						if assign, known := skincareKeys[cleanKey(key)]; known {
							assign(&rec.Recommendations.Skincare, value)
						}
					}
				}

			case "lifestyle":
				if entry, ok := trimBullet(line); ok {
					if key, value, split := splitKV(entry); split {
						if assign, known := lifestyleKeys[cleanKey(key)]; known {
							assign(&rec.Recommendations.Lifestyle, value)
						}
					}
				}

			case "professionalTreatments":
				if entry, ok := trimBullet(line); ok && entry != "" {
					rec.Recommendations.ProfessionalTreatments = append(
						rec.Recommendations.ProfessionalTreatments, entry)
				}

			case "notes":
				rec.ImportantNotes = appendText(rec.ImportantNotes, line)
			}
		}
	}

	rec.SkinType = strings.TrimSpace(rec.SkinType)
	rec.HydrationLevel = strings.TrimSpace(rec.HydrationLevel)
	rec.ImportantNotes = strings.TrimSpace(rec.ImportantNotes)
	return rec, nil
}
