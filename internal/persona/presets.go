package persona

import (
	"errors"
	"fmt"
	"strings"

	"github.com/moovely/greener/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrUnknownPersona is returned for an ID that is not a preset
var ErrUnknownPersona = errors.New("unknown persona")

// Presets returns the built-in household profiles in display order
func Presets() []domain.Persona {
	return []domain.Persona{
		{
			ID:          domain.PersonaYoungProfessional,
			Label:       "Young Professional",
			Description: "1-bed, public transport, social life, no kids",
			Options: domain.PersonalisationOptions{
				BedSize:             domain.BedOne,
				IncludeChildcare:    false,
				CommuteType:         domain.CommutePublicTransport,
				LifestyleMultiplier: decimal.NewFromFloat(1.5),
			},
		},
		{
			ID:          domain.PersonaGrowingFamily,
			Label:       "Growing Family",
			Description: "3-bed, drives, nursery costs",
			Options: domain.PersonalisationOptions{
				BedSize:             domain.BedThree,
				IncludeChildcare:    true,
				CommuteType:         domain.CommuteDrive,
				LifestyleMultiplier: decimal.NewFromInt(1),
			},
		},
		{
			ID:          domain.PersonaDownsizerWFH,
			Label:       "Downsizer / WFH",
			Description: "2-bed, works from home, homebody",
			Options: domain.PersonalisationOptions{
				BedSize:             domain.BedTwo,
				IncludeChildcare:    false,
				CommuteType:         domain.CommuteWFH,
				LifestyleMultiplier: decimal.NewFromFloat(0.5),
			},
		},
	}
}

// Lookup returns the preset with the given ID
func Lookup(id domain.PersonaID) (domain.Persona, error) {
	for _, p := range Presets() {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Persona{}, fmt.Errorf("%w: %q", ErrUnknownPersona, id)
}

// ParseID normalises and checks a persona ID
func ParseID(s string) (domain.PersonaID, error) {
	id := domain.PersonaID(strings.ToLower(strings.TrimSpace(s)))
	if _, err := Lookup(id); err != nil {
		return "", err
	}
	return id, nil
}

// Apply returns the persona's options carrying over a custom salary from
// base, since personas describe households rather than pay
func Apply(p domain.Persona, base domain.PersonalisationOptions) domain.PersonalisationOptions {
	opts := p.Options
	opts.CustomSalary = base.CustomSalary
	return opts
}
