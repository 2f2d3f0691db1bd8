package domain

// PersonaID identifies a preset household profile
type PersonaID string

const (
	PersonaYoungProfessional PersonaID = "young-professional"
	PersonaGrowingFamily     PersonaID = "growing-family"
	PersonaDownsizerWFH      PersonaID = "downsizer-wfh"
)

// Persona is a named bundle of personalisation options
type Persona struct {
	ID          PersonaID              `yaml:"id" json:"id"`
	Label       string                 `yaml:"label" json:"label"`
	Description string                 `yaml:"description" json:"description"`
	Options     PersonalisationOptions `yaml:"options" json:"options"`
}
