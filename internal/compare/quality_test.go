package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAffordability(t *testing.T) {
	tests := []struct {
		disposable float64
		expected   AffordabilityBand
	}{
		{1200, AffordabilityComfortable},
		{800, AffordabilityComfortable},
		{799.99, AffordabilityManageable},
		{300, AffordabilityManageable},
		{299, AffordabilityTight},
		{-410, AffordabilityTight},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Affordability(d(tt.disposable)), "disposable %v", tt.disposable)
	}
}

func TestCompareSchools(t *testing.T) {
	sc := CompareSchools(london(), manchester())
	require.NotNil(t, sc)

	assert.Equal(t, 90.0, sc.FromCombinedPct)
	assert.Equal(t, 85.0, sc.ToCombinedPct)
	assert.Equal(t, SideFrom, sc.Better)
	assert.Equal(t, "excellent", sc.FromRating)

	same := CompareSchools(london(), london())
	require.NotNil(t, same)
	assert.Equal(t, SideSame, same.Better)

	noData := manchester()
	noData.SchoolsOutstandingPct, noData.SchoolsGoodPct, noData.SchoolsTotal = 0, 0, 0
	assert.Nil(t, CompareSchools(london(), noData), "missing data yields no comparison")
}

func TestCompareCrime(t *testing.T) {
	cc := CompareCrime(london(), manchester())
	require.NotNil(t, cc)

	assert.Equal(t, 22, cc.FromVsAverage, "100 per 1,000 is 22% above average")
	assert.Equal(t, -27, cc.ToVsAverage, "60 per 1,000 is 27% below average")
	assert.Equal(t, -40, cc.ChangePct)
	assert.Equal(t, SideTo, cc.Safer)

	reverse := CompareCrime(manchester(), london())
	require.NotNil(t, reverse)
	assert.Equal(t, SideFrom, reverse.Safer)

	noData := manchester()
	noData.CrimeRatePer1000 = 0
	assert.Nil(t, CompareCrime(london(), noData))
}

func TestPintSavings(t *testing.T) {
	// (6.50 - 4.80) * 2 * 52 = 176.80
	assertDecimal(t, 177, PintSavings(london(), manchester()))
	assertDecimal(t, -177, PintSavings(manchester(), london()))
}

func TestParseComparisonSlug(t *testing.T) {
	tests := []struct {
		slug string
		from string
		to   string
	}{
		{"london-vs-manchester", "london", "manchester"},
		{"london-average-vs-bristol", "london-average", "bristol"},
		{"a-vs-b-vs-c", "a-vs-b", "c"},
	}

	for _, tt := range tests {
		from, to, err := ParseComparisonSlug(tt.slug)
		require.NoError(t, err, tt.slug)
		assert.Equal(t, tt.from, from)
		assert.Equal(t, tt.to, to)
	}

	for _, bad := range []string{"london", "-vs-leeds", "leeds-vs-", ""} {
		_, _, err := ParseComparisonSlug(bad)
		assert.Error(t, err, "slug %q should be rejected", bad)
	}
}

func TestComparisonSlug_RoundTrip(t *testing.T) {
	from, to, err := ParseComparisonSlug(ComparisonSlug("brighton", "bristol"))

	require.NoError(t, err)
	assert.Equal(t, "brighton", from)
	assert.Equal(t, "bristol", to)
}
