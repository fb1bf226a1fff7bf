package parse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menta2k/image-identifier/pkg/parse"
	"github.com/menta2k/image-identifier/pkg/types"
)

func TestParsePlant_FullReply(t *testing.T) {
	text := `Common Name: Swiss Cheese Plant
Scientific Name: Monstera deliciosa
Description: A large tropical plant with glossy, fenestrated leaves.
It climbs using aerial roots.
Care Instructions:
Light: Bright indirect light
Water: Water when the top inch of soil is dry
Soil: Well-draining potting mix
Temperature: 18-27C
Humidity: Prefers high humidity
Fertilizer: Monthly during growing season`

	rec, err := parse.ParsePlant(text)
	require.NoError(t, err)

	assert.Equal(t, "Swiss Cheese Plant", rec.Name)
	assert.Equal(t, "Monstera deliciosa", rec.ScientificName)
	assert.Equal(t, "A large tropical plant with glossy, fenestrated leaves. It climbs using aerial roots.", rec.Description)

	require.Len(t, rec.CareInstructions, 6)
	assert.Equal(t, "Light", rec.CareInstructions[0].Topic)
	assert.Equal(t, "Bright indirect light", rec.CareInstructions[0].Detail)

	water, ok := rec.Care("water")
	require.True(t, ok)
	assert.Equal(t, "Water when the top inch of soil is dry", water)
}

func TestParsePlant_EmptyInput(t *testing.T) {
	_, err := parse.ParsePlant("")
	assert.ErrorIs(t, err, parse.ErrEmptyInput)

	_, err = parse.ParsePlant("   \n\t\n")
	assert.ErrorIs(t, err, parse.ErrEmptyInput)
}

func TestParsePlant_EmptyHeaderValues(t *testing.T) {
	text := "Common Name:\nScientific Name:\nDescription:\nCare Instructions:\n"

	rec, err := parse.ParsePlant(text)
	require.NoError(t, err)

	assert.Empty(t, rec.Name)
	assert.Empty(t, rec.ScientificName)
	assert.Empty(t, rec.Description)
	assert.Empty(t, rec.CareInstructions)
	assert.False(t, rec.Identified())
}

func TestParsePlant_ValueKeepsLaterColons(t *testing.T) {
	rec, err := parse.ParsePlant("Common Name: Rose: Queen of Flowers\n")
	require.NoError(t, err)
	assert.Equal(t, "Rose: Queen of Flowers", rec.Name)
}

func TestParsePlant_CareContinuation(t *testing.T) {
	text := `Care Instructions:
Water: Keep the soil moist
but never waterlogged`

	rec, err := parse.ParsePlant(text)
	require.NoError(t, err)

	water, ok := rec.Care("Water")
	require.True(t, ok)
	assert.Equal(t, "Keep the soil moist but never waterlogged", water)
}

func TestParsePlant_BulletedCareEntries(t *testing.T) {
	text := `Care Instructions:
- Light: Full sun
- Water: Sparingly`

	rec, err := parse.ParsePlant(text)
	require.NoError(t, err)
	require.Len(t, rec.CareInstructions, 2)
	assert.Equal(t, "Light", rec.CareInstructions[0].Topic)
	assert.Equal(t, "Sparingly", rec.CareInstructions[1].Detail)
}

func TestParsePlant_IgnoresChatter(t *testing.T) {
	text := `Sure! Here is the analysis you asked for.
Common Name: Basil
Scientific Name: Ocimum basilicum
Let me know if you need more detail.`

	rec, err := parse.ParsePlant(text)
	require.NoError(t, err)
	assert.Equal(t, "Basil", rec.Name)
	assert.Equal(t, "Ocimum basilicum", rec.ScientificName)
	assert.Empty(t, rec.Description)
}

func TestParsePlant_HeadersCaseInsensitive(t *testing.T) {
	rec, err := parse.ParsePlant("COMMON NAME: Fern\nscientific name: Polypodiopsida\n")
	require.NoError(t, err)
	assert.Equal(t, "Fern", rec.Name)
	assert.Equal(t, "Polypodiopsida", rec.ScientificName)
}

func TestParsePlant_RoundTrip(t *testing.T) {
	original := types.PlantRecord{
		Name:           "Peace Lily",
		ScientificName: "Spathiphyllum wallisii",
		Description:    "An evergreen herbaceous perennial with white spathes.",
		CareInstructions: []types.CareInstruction{
			{Topic: "Light", Detail: "Low to medium indirect light"},
			{Topic: "Water", Detail: "Keep soil evenly moist"},
			{Topic: "Humidity", Detail: "High humidity preferred"},
		},
	}

	rec, err := parse.ParsePlant(parse.FormatPlant(original))
	require.NoError(t, err)
	assert.Equal(t, original, rec)
}
