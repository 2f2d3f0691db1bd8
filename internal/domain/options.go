package domain

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// BedSize selects which rent figure applies
type BedSize string

const (
	BedOne   BedSize = "one"
	BedTwo   BedSize = "two"
	BedThree BedSize = "three"
)

// CommuteType describes how the household gets to work
type CommuteType string

const (
	CommuteDrive           CommuteType = "drive"
	CommutePublicTransport CommuteType = "public-transport"
	CommuteWFH             CommuteType = "wfh"
)

// LifestyleIntensity is the named form of the discretionary-spend multiplier
type LifestyleIntensity string

const (
	LifestyleHomebody        LifestyleIntensity = "homebody"
	LifestyleAverage         LifestyleIntensity = "average"
	LifestyleSocialButterfly LifestyleIntensity = "social-butterfly"
)

// Multiplier returns the spend multiplier for the intensity
func (li LifestyleIntensity) Multiplier() (decimal.Decimal, error) {
	switch li {
	case LifestyleHomebody:
		return decimal.NewFromFloat(0.5), nil
	case LifestyleAverage:
		return decimal.NewFromInt(1), nil
	case LifestyleSocialButterfly:
		return decimal.NewFromFloat(1.5), nil
	}
	return decimal.Zero, fmt.Errorf("unknown lifestyle intensity %q", li)
}

// AmountFromFloat converts a user-supplied figure to a decimal. NaN, the
// infinities and negative values are rejected.
func AmountFromFloat(name string, v float64) (decimal.Decimal, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero, fmt.Errorf("%s must be a finite number: %v", name, v)
	}
	if v < 0 {
		return decimal.Zero, fmt.Errorf("%s must not be negative: %v", name, v)
	}
	return decimal.NewFromFloat(v), nil
}

// PersonalisationOptions overrides median salary and household assumptions.
// It is a value type: the With* methods return modified copies and never
// touch the receiver.
type PersonalisationOptions struct {
	CustomSalary        *decimal.Decimal `yaml:"custom_salary,omitempty" json:"customSalary,omitempty"`
	BedSize             BedSize          `yaml:"bed_size" json:"bedSize"`
	IncludeChildcare    bool             `yaml:"include_childcare" json:"includeChildcare"`
	CommuteType         CommuteType      `yaml:"commute_type" json:"commuteType"`
	LifestyleMultiplier decimal.Decimal  `yaml:"lifestyle_multiplier" json:"lifestyleMultiplier"`
}

// DefaultOptions is two-bed, no childcare, public transport, average lifestyle
func DefaultOptions() PersonalisationOptions {
	return PersonalisationOptions{
		BedSize:             BedTwo,
		IncludeChildcare:    false,
		CommuteType:         CommutePublicTransport,
		LifestyleMultiplier: decimal.NewFromInt(1),
	}
}

// IsPersonalised reports whether a custom salary overrides the medians
func (o PersonalisationOptions) IsPersonalised() bool {
	return o.CustomSalary != nil
}

// WithCustomSalary returns a copy using the given salary on both sides
func (o PersonalisationOptions) WithCustomSalary(salary decimal.Decimal) PersonalisationOptions {
	s := salary
	o.CustomSalary = &s
	return o
}

// WithoutCustomSalary returns a copy that falls back to median salaries
func (o PersonalisationOptions) WithoutCustomSalary() PersonalisationOptions {
	o.CustomSalary = nil
	return o
}

// WithBedSize returns a copy with a different bedroom count
func (o PersonalisationOptions) WithBedSize(size BedSize) PersonalisationOptions {
	o.BedSize = size
	return o
}

// WithCommute returns a copy with a different commute mode
func (o PersonalisationOptions) WithCommute(ct CommuteType) PersonalisationOptions {
	o.CommuteType = ct
	return o
}

// WithChildcare returns a copy with childcare toggled
func (o PersonalisationOptions) WithChildcare(include bool) PersonalisationOptions {
	o.IncludeChildcare = include
	return o
}

// WithLifestyle returns a copy with a different spend multiplier
func (o PersonalisationOptions) WithLifestyle(multiplier decimal.Decimal) PersonalisationOptions {
	o.LifestyleMultiplier = multiplier
	return o
}

// Validate checks enum values and numeric ranges
func (o PersonalisationOptions) Validate() error {
	if o.CustomSalary != nil && o.CustomSalary.IsNegative() {
		return fmt.Errorf("custom salary cannot be negative, got %s", o.CustomSalary.String())
	}
	switch o.BedSize {
	case BedOne, BedTwo, BedThree:
	default:
		return fmt.Errorf("unknown bed size %q", o.BedSize)
	}
	switch o.CommuteType {
	case CommuteDrive, CommutePublicTransport, CommuteWFH:
	default:
		return fmt.Errorf("unknown commute type %q", o.CommuteType)
	}
	if o.LifestyleMultiplier.IsNegative() {
		return fmt.Errorf("lifestyle multiplier cannot be negative, got %s", o.LifestyleMultiplier.String())
	}
	return nil
}

// ParseBedSize accepts one, two, three or the digits 1 to 3
func ParseBedSize(s string) (BedSize, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "one", "1":
		return BedOne, nil
	case "two", "2", "":
		return BedTwo, nil
	case "three", "3":
		return BedThree, nil
	}
	return "", fmt.Errorf("unknown bed size %q (use one, two or three)", s)
}

// ParseCommuteType matches a commute mode case-insensitively. An empty
// string means public transport.
func ParseCommuteType(s string) (CommuteType, error) {
	switch CommuteType(strings.ToLower(strings.TrimSpace(s))) {
	case CommuteDrive:
		return CommuteDrive, nil
	case CommutePublicTransport, "":
		return CommutePublicTransport, nil
	case CommuteWFH:
		return CommuteWFH, nil
	}
	return "", fmt.Errorf("unknown commute type %q (use drive, public-transport or wfh)", s)
}
