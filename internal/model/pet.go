// Package model defines the pet and medical record data types.
package model

import "strings"

// Species is the stored species label. Values match the strings written by
// earlier versions of the app so old backups import unchanged.
type Species string

const (
	SpeciesDog   Species = "Cachorro"
	SpeciesCat   Species = "Gato"
	SpeciesBird  Species = "Pássaro"
	SpeciesOther Species = "Outro"
)

// DefaultBreed is used when a pet is saved without a breed ("sem raça definida").
const DefaultBreed = "SRD"

var speciesNames = map[string]Species{
	"dog":      SpeciesDog,
	"cat":      SpeciesCat,
	"bird":     SpeciesBird,
	"other":    SpeciesOther,
	"cachorro": SpeciesDog,
	"gato":     SpeciesCat,
	"pássaro":  SpeciesBird,
	"outro":    SpeciesOther,
}

// ParseSpecies accepts either the English name or the stored label, case-insensitively.
func ParseSpecies(s string) (Species, bool) {
	sp, ok := speciesNames[strings.ToLower(strings.TrimSpace(s))]
	return sp, ok
}

// Pet is a pet profile.
type Pet struct {
	ID        string  `json:"id" yaml:"id"`
	Name      string  `json:"name" yaml:"name"`
	Species   Species `json:"species" yaml:"species"`
	Breed     string  `json:"breed" yaml:"breed"`
	BirthDate string  `json:"birthDate" yaml:"birthDate"`   // YYYY-MM-DD, approximate
	PhotoData string  `json:"photoData,omitempty" yaml:"-"` // data: URL
	CreatedAt int64   `json:"createdAt" yaml:"createdAt"`   // epoch milliseconds
}
