package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/moovely/greener/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validLocationYAML = `
metadata:
  source: test
locations:
  - id: Testville
    name: Testville
    region: North West
    country: England
    median_salary: 30000
    rent_one_bed: 700
    rent_two_bed: 900
    rent_three_bed: 1100
    council_tax_band_d: 2000
    commute_monthly: 60
    pint_of_beer: 4.5
    cinema_ticket: 9
    gym_membership: 25
    childcare_monthly: 1000
    grocery_basket_weekly: 60
    broadband_monthly: 28
    energy_monthly: 140
`

func TestLoadLocations_Embedded(t *testing.T) {
	table, err := LoadLocations("")
	require.NoError(t, err)

	assert.Equal(t, 13, table.Len())
	assert.NotEmpty(t, table.Metadata.Source)

	london, err := table.Get("london")
	require.NoError(t, err)
	assert.Equal(t, "London", london.Name)
	assert.Equal(t, domain.CountryEngland, london.Country)
	assert.True(t, london.MedianSalary.Equal(decimal.NewFromInt(44000)))
	assert.True(t, london.PintOfBeer.Equal(decimal.NewFromFloat(6.5)))
	assert.True(t, london.HasSchoolData())
	assert.True(t, london.HasCrimeData())

	belfast, err := table.Get("belfast")
	require.NoError(t, err)
	assert.Equal(t, domain.CountryNorthernIreland, belfast.Country)
	assert.False(t, belfast.HasSchoolData())
}

func TestLocationTable_Get(t *testing.T) {
	table, err := LoadLocations("")
	require.NoError(t, err)

	loc, err := table.Get("  Manchester ")
	require.NoError(t, err)
	assert.Equal(t, "manchester", loc.ID)

	_, err = table.Get("atlantis")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLocationNotFound))
	assert.Contains(t, err.Error(), "atlantis")
}

func TestLocationTable_ByRegionAndOrder(t *testing.T) {
	table, err := LoadLocations("")
	require.NoError(t, err)

	scottish := table.ByRegion(domain.RegionScotland)
	require.Len(t, scottish, 2)
	assert.Equal(t, "edinburgh", scottish[0].ID)
	assert.Equal(t, "glasgow", scottish[1].ID)

	assert.Empty(t, table.ByRegion(domain.Region("Isle of Man")))

	all := table.All()
	assert.Equal(t, "london", all[0].ID)
	all[0].Name = "changed"
	again, _ := table.Get("london")
	assert.Equal(t, "London", again.Name, "All must return a copy")
}

func TestParseLocations_Valid(t *testing.T) {
	table, err := ParseLocations([]byte(validLocationYAML))
	require.NoError(t, err)

	loc, err := table.Get("testville")
	require.NoError(t, err)
	assert.Equal(t, "testville", loc.ID, "ids are normalised to lower case")
	assert.Equal(t, domain.RegionNorthWest, loc.Region)
}

func TestParseLocations_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"malformed", "locations: [", "failed to parse YAML"},
		{"empty", "locations: []", "no locations provided"},
		{"missing name", replace(validLocationYAML, "    name: Testville\n", ""), "Name"},
		{"bad country", replace(validLocationYAML, "country: England", "country: France"), "Country"},
		{"bad region", replace(validLocationYAML, "region: North West", "region: Narnia"), "unknown region"},
		{"negative rent", replace(validLocationYAML, "rent_one_bed: 700", "rent_one_bed: -700"), "RentOneBed"},
		{"rents out of order", replace(validLocationYAML, "rent_three_bed: 1100", "rent_three_bed: 800"), "rents must not decrease"},
		{"vs in id", replace(validLocationYAML, "id: Testville", "id: a-vs-b"), "-vs-"},
		{"bad crime level", validLocationYAML + "    crime_level: terrible\n", "CrimeLevel"},
		{"duplicate", validLocationYAML + dupEntry, "duplicate location id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLocations([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

const dupEntry = `  - id: testville
    name: Testville Again
    region: North West
    country: England
    median_salary: 30000
    rent_one_bed: 700
    rent_two_bed: 900
    rent_three_bed: 1100
`

func replace(s, old, new string) string {
	return strings.Replace(s, old, new, 1)
}

func TestLoadLocations_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "locations.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validLocationYAML), 0o644))

	table, err := LoadLocations(path)
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())

	_, err = LoadLocations(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}
