package parse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menta2k/image-identifier/pkg/parse"
	"github.com/menta2k/image-identifier/pkg/types"
)

func TestParseAnimal_RedFox(t *testing.T) {
	text := `Common Name: Red Fox
Scientific Name: Vulpes vulpes
Classification:
Kingdom: Animalia
Phylum: Chordata
Class: Mammalia
Order: Carnivora
Family: Canidae
Genus: Vulpes
Description: A small omnivorous canid with reddish fur and a bushy tail.
Habitat: Forests, grasslands, mountains and urban areas across the Northern Hemisphere.
Diet: Omnivorous; small mammals, birds, insects, fruit.
Behavior: Mostly solitary and crepuscular, caches surplus food.
Conservation Status: Least Concern`

	rec, err := parse.ParseAnimal(text)
	require.NoError(t, err)

	assert.Equal(t, "Red Fox", rec.Name)
	assert.Equal(t, "Vulpes vulpes", rec.ScientificName)
	assert.Equal(t, "Animalia", rec.Classification.Kingdom)
	assert.Equal(t, "Chordata", rec.Classification.Phylum)
	assert.Equal(t, "Mammalia", rec.Classification.Class)
	assert.Equal(t, "Carnivora", rec.Classification.Order)
	assert.Equal(t, "Canidae", rec.Classification.Family)
	assert.Equal(t, "Vulpes", rec.Classification.Genus)
	assert.Nil(t, rec.Classification.Extra)
	assert.Equal(t, "Least Concern", rec.ConservationStatus)
	assert.Contains(t, rec.Habitat, "Northern Hemisphere")
	assert.True(t, rec.Identified())
}

func TestParseAnimal_UnknownRanksGoToExtra(t *testing.T) {
	text := `Common Name: Gray Wolf
Classification:
Kingdom: Animalia
Suborder: Caniformia
Subspecies: Canis lupus lupus`

	rec, err := parse.ParseAnimal(text)
	require.NoError(t, err)

	assert.Equal(t, "Animalia", rec.Classification.Kingdom)
	require.NotNil(t, rec.Classification.Extra)
	assert.Equal(t, "Caniformia", rec.Classification.Extra["suborder"])
	assert.Equal(t, "Canis lupus lupus", rec.Classification.Extra["subspecies"])
}

func TestParseAnimal_BulletedClassification(t *testing.T) {
	text := `Classification:
- Kingdom: Animalia
- Class: Aves`

	rec, err := parse.ParseAnimal(text)
	require.NoError(t, err)
	assert.Equal(t, "Animalia", rec.Classification.Kingdom)
	assert.Equal(t, "Aves", rec.Classification.Class)
}

func TestParseAnimal_ConservationStatusAnywhereOnLine(t *testing.T) {
	// Some models decorate the header; matching is by substring.
	rec, err := parse.ParseAnimal("**Conservation Status: Endangered\n")
	require.NoError(t, err)
	assert.Equal(t, "Endangered", rec.ConservationStatus)
}

func TestParseAnimal_Continuations(t *testing.T) {
	text := `Description: Large marine mammal
known for complex songs.
Habitat: Open ocean
in all major basins.`

	rec, err := parse.ParseAnimal(text)
	require.NoError(t, err)
	assert.Equal(t, "Large marine mammal known for complex songs.", rec.Description)
	assert.Equal(t, "Open ocean in all major basins.", rec.Habitat)
}

func TestParseAnimal_EmptyInput(t *testing.T) {
	_, err := parse.ParseAnimal("")
	assert.ErrorIs(t, err, parse.ErrEmptyInput)
}

func TestParseAnimal_EmptyHeaderValues(t *testing.T) {
	rec, err := parse.ParseAnimal("Common Name:\nScientific Name:\nDescription:\n")
	require.NoError(t, err)
	assert.False(t, rec.Identified())
	assert.Empty(t, rec.Description)
}

func TestParseAnimal_SectionOrderIndependent(t *testing.T) {
	a := `Common Name: Koala
Habitat: Eucalypt forests
Diet: Eucalyptus leaves`
	b := `Diet: Eucalyptus leaves
Common Name: Koala
Habitat: Eucalypt forests`

	recA, err := parse.ParseAnimal(a)
	require.NoError(t, err)
	recB, err := parse.ParseAnimal(b)
	require.NoError(t, err)
	assert.Equal(t, recA, recB)
}

func TestParseAnimal_RoundTrip(t *testing.T) {
	original := types.AnimalRecord{
		Name:           "Snow Leopard",
		ScientificName: "Panthera uncia",
		Classification: types.Classification{
			Kingdom: "Animalia",
			Phylum:  "Chordata",
			Class:   "Mammalia",
			Order:   "Carnivora",
			Family:  "Felidae",
			Genus:   "Panthera",
			Extra:   map[string]string{"subfamily": "Pantherinae"},
		},
		Description:        "A large cat native to the mountain ranges of Central Asia.",
		Habitat:            "Alpine and subalpine zones above 3000 m.",
		Diet:               "Blue sheep, ibex and smaller prey.",
		Behavior:           "Solitary and crepuscular.",
		ConservationStatus: "Vulnerable",
	}

	rec, err := parse.ParseAnimal(parse.FormatAnimal(original))
	require.NoError(t, err)
	assert.Equal(t, original, rec)
}
