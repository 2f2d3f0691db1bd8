package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/moovely/greener/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed data/locations.yaml
var defaultLocationsYAML []byte

// ErrLocationNotFound is returned when an ID is not in the table
var ErrLocationNotFound = errors.New("location not found")

// LocationFile is the on-disk layout of the reference table
type LocationFile struct {
	Metadata  LocationMetadata  `yaml:"metadata"`
	Locations []domain.Location `yaml:"locations"`
}

// LocationMetadata records where the figures came from
type LocationMetadata struct {
	Source  string `yaml:"source"`
	Updated string `yaml:"updated"`
}

// LocationTable is the read-only reference table. It is safe for
// concurrent use once built.
type LocationTable struct {
	Metadata LocationMetadata
	byID     map[string]domain.Location
	ordered  []domain.Location
}

// NewLocationTable indexes the given locations, preserving their order
func NewLocationTable(locations []domain.Location) (*LocationTable, error) {
	t := &LocationTable{
		byID:    make(map[string]domain.Location, len(locations)),
		ordered: make([]domain.Location, 0, len(locations)),
	}
	for _, loc := range locations {
		if _, dup := t.byID[loc.ID]; dup {
			return nil, fmt.Errorf("duplicate location id %q", loc.ID)
		}
		t.byID[loc.ID] = loc
		t.ordered = append(t.ordered, loc)
	}
	return t, nil
}

// Get returns the location with the given ID
func (t *LocationTable) Get(id string) (domain.Location, error) {
	loc, ok := t.byID[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return domain.Location{}, fmt.Errorf("%w: %s", ErrLocationNotFound, id)
	}
	return loc, nil
}

// All returns every location in file order
func (t *LocationTable) All() []domain.Location {
	out := make([]domain.Location, len(t.ordered))
	copy(out, t.ordered)
	return out
}

// ByRegion returns the locations in one region, in file order
func (t *LocationTable) ByRegion(region domain.Region) []domain.Location {
	var out []domain.Location
	for _, loc := range t.ordered {
		if loc.Region == region {
			out = append(out, loc)
		}
	}
	return out
}

// Len returns the number of locations
func (t *LocationTable) Len() int {
	return len(t.ordered)
}

// LoadLocations reads the reference table from a YAML file. An empty path
// loads the embedded default table.
func LoadLocations(filename string) (*LocationTable, error) {
	if filename == "" {
		return ParseLocations(defaultLocationsYAML)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	table, err := ParseLocations(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return table, nil
}

// ParseLocations decodes and validates a YAML reference table
func ParseLocations(data []byte) (*LocationTable, error) {
	var file LocationFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if len(file.Locations) == 0 {
		return nil, fmt.Errorf("no locations provided")
	}

	v := newValidator()
	for i := range file.Locations {
		loc := &file.Locations[i]
		loc.ID = strings.ToLower(strings.TrimSpace(loc.ID))
		if err := validateLocation(v, loc); err != nil {
			return nil, fmt.Errorf("location %d (%s) validation failed: %w", i, loc.ID, err)
		}
	}

	table, err := NewLocationTable(file.Locations)
	if err != nil {
		return nil, err
	}
	table.Metadata = file.Metadata
	return table, nil
}

func validateLocation(v *validator.Validate, loc *domain.Location) error {
	if err := v.Struct(loc); err != nil {
		return err
	}
	if strings.ContainsAny(loc.ID, " /") || strings.Contains(loc.ID, "-vs-") {
		return fmt.Errorf("id %q must be a slug without spaces, slashes or \"-vs-\"", loc.ID)
	}
	if _, err := domain.ParseRegion(string(loc.Region)); err != nil {
		return err
	}
	if loc.RentOneBed.GreaterThan(loc.RentTwoBed) || loc.RentTwoBed.GreaterThan(loc.RentThreeBed) {
		return fmt.Errorf("rents must not decrease with bedroom count")
	}
	return nil
}

// newValidator returns a validator that compares decimals as float64, so
// numeric tags like gte=0 apply to currency fields
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}
