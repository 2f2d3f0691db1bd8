package compare

import (
	"fmt"
	"math"
	"strings"

	"github.com/moovely/greener/internal/calculation"
	"github.com/moovely/greener/internal/domain"
	"github.com/shopspring/decimal"
)

// AffordabilityBand grades monthly disposable income
type AffordabilityBand string

const (
	AffordabilityComfortable AffordabilityBand = "comfortable"
	AffordabilityManageable  AffordabilityBand = "manageable"
	AffordabilityTight       AffordabilityBand = "tight"
)

var (
	comfortableFloor = decimal.NewFromInt(800)
	manageableFloor  = decimal.NewFromInt(300)
)

// Affordability grades a monthly disposable figure
func Affordability(monthlyDisposable decimal.Decimal) AffordabilityBand {
	switch {
	case monthlyDisposable.GreaterThanOrEqual(comfortableFloor):
		return AffordabilityComfortable
	case monthlyDisposable.GreaterThanOrEqual(manageableFloor):
		return AffordabilityManageable
	default:
		return AffordabilityTight
	}
}

// Side names which location a quality comparison favours
type Side string

const (
	SideFrom Side = "from"
	SideTo   Side = "to"
	SideSame Side = "same"
)

// SchoolsComparison contrasts the share of good or outstanding schools
type SchoolsComparison struct {
	FromCombinedPct float64 `json:"fromCombinedPct"`
	ToCombinedPct   float64 `json:"toCombinedPct"`
	FromRating      string  `json:"fromRating,omitempty"`
	ToRating        string  `json:"toRating,omitempty"`
	Better          Side    `json:"better"`
}

// CompareSchools returns nil when either side lacks school data
func CompareSchools(from, to domain.Location) *SchoolsComparison {
	if !from.HasSchoolData() || !to.HasSchoolData() {
		return nil
	}
	sc := &SchoolsComparison{
		FromCombinedPct: from.SchoolsOutstandingPct + from.SchoolsGoodPct,
		ToCombinedPct:   to.SchoolsOutstandingPct + to.SchoolsGoodPct,
		FromRating:      from.OfstedRating,
		ToRating:        to.OfstedRating,
		Better:          SideSame,
	}
	if sc.ToCombinedPct > sc.FromCombinedPct {
		sc.Better = SideTo
	} else if sc.ToCombinedPct < sc.FromCombinedPct {
		sc.Better = SideFrom
	}
	return sc
}

// UKAverageCrimePer1000 is the national recorded crime rate per 1,000
// residents
const UKAverageCrimePer1000 = 82.0

// CrimeComparison contrasts recorded crime rates. Percentages relative to
// the UK average are positive above it and negative below it.
type CrimeComparison struct {
	FromRate      float64 `json:"fromRate"`
	ToRate        float64 `json:"toRate"`
	FromVsAverage int     `json:"fromVsAveragePct"`
	ToVsAverage   int     `json:"toVsAveragePct"`
	ChangePct     int     `json:"changePct"`
	Safer         Side    `json:"safer"`
}

// CompareCrime returns nil when either side lacks crime data
func CompareCrime(from, to domain.Location) *CrimeComparison {
	if !from.HasCrimeData() || !to.HasCrimeData() {
		return nil
	}
	cc := &CrimeComparison{
		FromRate:      from.CrimeRatePer1000,
		ToRate:        to.CrimeRatePer1000,
		FromVsAverage: relativePct(from.CrimeRatePer1000, UKAverageCrimePer1000),
		ToVsAverage:   relativePct(to.CrimeRatePer1000, UKAverageCrimePer1000),
		ChangePct:     relativePct(to.CrimeRatePer1000, from.CrimeRatePer1000),
		Safer:         SideSame,
	}
	if to.CrimeRatePer1000 < from.CrimeRatePer1000 {
		cc.Safer = SideTo
	} else if to.CrimeRatePer1000 > from.CrimeRatePer1000 {
		cc.Safer = SideFrom
	}
	return cc
}

func relativePct(value, base float64) int {
	if base == 0 {
		return 0
	}
	return int(math.Floor((value-base)/base*100 + 0.5))
}

// PintSavings is the annual saving at two pints a week. Negative when the
// destination is dearer.
func PintSavings(from, to domain.Location) decimal.Decimal {
	return calculation.RoundPounds(from.PintOfBeer.Sub(to.PintOfBeer).Mul(decimal.NewFromInt(2 * 52)))
}

// ComparisonSlug builds the "<from>-vs-<to>" page slug
func ComparisonSlug(fromID, toID string) string {
	return fromID + "-vs-" + toID
}

// ParseComparisonSlug splits a "<from>-vs-<to>" slug at its last separator
func ParseComparisonSlug(slug string) (fromID, toID string, err error) {
	i := strings.LastIndex(slug, "-vs-")
	if i <= 0 || i+len("-vs-") >= len(slug) {
		return "", "", fmt.Errorf("invalid comparison slug %q: expected <from>-vs-<to>", slug)
	}
	return slug[:i], slug[i+len("-vs-"):], nil
}
