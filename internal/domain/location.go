package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Country is the UK jurisdiction a location belongs to. It selects the
// income tax table; National Insurance is the same everywhere.
type Country string

const (
	CountryEngland         Country = "England"
	CountryScotland        Country = "Scotland"
	CountryWales           Country = "Wales"
	CountryNorthernIreland Country = "Northern Ireland"
)

// Countries lists every supported jurisdiction
var Countries = []Country{CountryEngland, CountryScotland, CountryWales, CountryNorthernIreland}

// UsesScottishRates reports whether income tax follows the Scottish bands
func (c Country) UsesScottishRates() bool {
	return c == CountryScotland
}

// ParseCountry matches a country name case-insensitively
func ParseCountry(s string) (Country, error) {
	for _, c := range Countries {
		if strings.EqualFold(strings.TrimSpace(s), string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown country %q", s)
}

// Region is an administrative region of the UK
type Region string

const (
	RegionLondon          Region = "London"
	RegionSouthEast       Region = "South East"
	RegionSouthWest       Region = "South West"
	RegionEastOfEngland   Region = "East of England"
	RegionEastMidlands    Region = "East Midlands"
	RegionWestMidlands    Region = "West Midlands"
	RegionNorthWest       Region = "North West"
	RegionNorthEast       Region = "North East"
	RegionYorkshire       Region = "Yorkshire and the Humber"
	RegionScotland        Region = "Scotland"
	RegionWales           Region = "Wales"
	RegionNorthernIreland Region = "Northern Ireland"
)

// Regions lists every region in display order
var Regions = []Region{
	RegionLondon, RegionSouthEast, RegionSouthWest, RegionEastOfEngland,
	RegionEastMidlands, RegionWestMidlands, RegionNorthWest, RegionNorthEast,
	RegionYorkshire, RegionScotland, RegionWales, RegionNorthernIreland,
}

// ParseRegion matches a region name case-insensitively
func ParseRegion(s string) (Region, error) {
	for _, r := range Regions {
		if strings.EqualFold(strings.TrimSpace(s), string(r)) {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown region %q", s)
}

// Location is one row of the static reference table. Currency values are in
// pounds; rents, commute, childcare, broadband and energy are monthly,
// groceries weekly and council tax (Band D) annual.
type Location struct {
	ID         string  `yaml:"id" json:"id" validate:"required"`
	Name       string  `yaml:"name" json:"name" validate:"required"`
	County     string  `yaml:"county,omitempty" json:"county,omitempty"`
	Region     Region  `yaml:"region" json:"region" validate:"required"`
	Country    Country `yaml:"country" json:"country" validate:"required,oneof=England Scotland Wales 'Northern Ireland'"`
	Lat        float64 `yaml:"lat,omitempty" json:"lat,omitempty" validate:"gte=-90,lte=90"`
	Lng        float64 `yaml:"lng,omitempty" json:"lng,omitempty" validate:"gte=-180,lte=180"`
	Population int     `yaml:"population,omitempty" json:"population,omitempty" validate:"gte=0"`

	MedianSalary        decimal.Decimal `yaml:"median_salary" json:"medianSalary" validate:"gte=0"`
	RentOneBed          decimal.Decimal `yaml:"rent_one_bed" json:"rentOneBed" validate:"gte=0"`
	RentTwoBed          decimal.Decimal `yaml:"rent_two_bed" json:"rentTwoBed" validate:"gte=0"`
	RentThreeBed        decimal.Decimal `yaml:"rent_three_bed" json:"rentThreeBed" validate:"gte=0"`
	AvgHousePrice       decimal.Decimal `yaml:"avg_house_price" json:"avgHousePrice" validate:"gte=0"`
	CouncilTaxBandD     decimal.Decimal `yaml:"council_tax_band_d" json:"councilTaxBandD" validate:"gte=0"`
	CommuteMonthly      decimal.Decimal `yaml:"commute_monthly" json:"commuteMonthly" validate:"gte=0"`
	PintOfBeer          decimal.Decimal `yaml:"pint_of_beer" json:"pintOfBeer" validate:"gte=0"`
	CinemaTicket        decimal.Decimal `yaml:"cinema_ticket" json:"cinemaTicket" validate:"gte=0"`
	GymMembership       decimal.Decimal `yaml:"gym_membership" json:"gymMembership" validate:"gte=0"`
	ChildcareMonthly    decimal.Decimal `yaml:"childcare_monthly" json:"childcareMonthly" validate:"gte=0"`
	GroceryBasketWeekly decimal.Decimal `yaml:"grocery_basket_weekly" json:"groceryBasketWeekly" validate:"gte=0"`
	BroadbandMonthly    decimal.Decimal `yaml:"broadband_monthly" json:"broadbandMonthly" validate:"gte=0"`
	EnergyMonthly       decimal.Decimal `yaml:"energy_monthly" json:"energyMonthly" validate:"gte=0"`

	// Optional quality-of-life data (Ofsted / Education Scotland / Estyn / ETI, police.uk)
	SchoolsOutstandingPct float64 `yaml:"schools_outstanding_pct,omitempty" json:"schoolsOutstandingPct,omitempty" validate:"gte=0,lte=100"`
	SchoolsGoodPct        float64 `yaml:"schools_good_pct,omitempty" json:"schoolsGoodPct,omitempty" validate:"gte=0,lte=100"`
	SchoolsTotal          int     `yaml:"schools_total,omitempty" json:"schoolsTotal,omitempty" validate:"gte=0"`
	OfstedRating          string  `yaml:"ofsted_rating,omitempty" json:"ofstedRating,omitempty" validate:"omitempty,oneof=excellent good average below-average"`
	CrimeRatePer1000      float64 `yaml:"crime_rate_per_1000,omitempty" json:"crimeRatePer1000,omitempty" validate:"gte=0"`
	ViolentCrimePer1000   float64 `yaml:"violent_crime_per_1000,omitempty" json:"violentCrimePer1000,omitempty" validate:"gte=0"`
	BurglaryPer1000       float64 `yaml:"burglary_per_1000,omitempty" json:"burglaryPer1000,omitempty" validate:"gte=0"`
	CrimeLevel            string  `yaml:"crime_level,omitempty" json:"crimeLevel,omitempty" validate:"omitempty,oneof=very-low low average high very-high"`
}

// RentFor returns the monthly rent for the given bedroom count
func (l Location) RentFor(size BedSize) decimal.Decimal {
	switch size {
	case BedOne:
		return l.RentOneBed
	case BedThree:
		return l.RentThreeBed
	default:
		return l.RentTwoBed
	}
}

// HasSchoolData reports whether school figures were supplied
func (l Location) HasSchoolData() bool {
	return l.SchoolsTotal > 0 || l.SchoolsOutstandingPct > 0 || l.SchoolsGoodPct > 0
}

// HasCrimeData reports whether crime figures were supplied
func (l Location) HasCrimeData() bool {
	return l.CrimeRatePer1000 > 0
}
