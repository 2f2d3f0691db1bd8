package scenes

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moovely/greener/internal/domain"
	"github.com/moovely/greener/internal/ranking"
	"github.com/moovely/greener/internal/tui/tuimsg"
)

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func london() domain.Location {
	return domain.Location{
		ID: "london", Name: "London", Region: domain.RegionLondon, Country: domain.CountryEngland,
		County: "Greater London", MedianSalary: d(44000), RentOneBed: d(1900), RentTwoBed: d(2500),
		RentThreeBed: d(3200), AvgHousePrice: d(520000), CouncilTaxBandD: d(1900), CommuteMonthly: d(180),
		PintOfBeer: d(6.5), CinemaTicket: d(14), GymMembership: d(50), ChildcareMonthly: d(1500),
		GroceryBasketWeekly: d(75), BroadbandMonthly: d(30), EnergyMonthly: d(150),
		SchoolsOutstandingPct: 30, SchoolsGoodPct: 60, CrimeRatePer1000: 110,
	}
}

func manchester() domain.Location {
	return domain.Location{
		ID: "manchester", Name: "Manchester", Region: domain.RegionNorthWest, Country: domain.CountryEngland,
		County: "Greater Manchester", MedianSalary: d(33000), RentOneBed: d(1000), RentTwoBed: d(1300),
		RentThreeBed: d(1600), AvgHousePrice: d(250000), CouncilTaxBandD: d(2100), CommuteMonthly: d(90),
		PintOfBeer: d(4.8), CinemaTicket: d(10), GymMembership: d(30), ChildcareMonthly: d(1100),
		GroceryBasketWeekly: d(65), BroadbandMonthly: d(28), EnergyMonthly: d(140),
		SchoolsOutstandingPct: 20, SchoolsGoodPct: 65, CrimeRatePer1000: 120,
	}
}

func leeds() domain.Location {
	return domain.Location{
		ID: "leeds", Name: "Leeds", Region: domain.RegionYorkshire, Country: domain.CountryEngland,
		County: "West Yorkshire", MedianSalary: d(31000), RentOneBed: d(800), RentTwoBed: d(1050),
		RentThreeBed: d(1300), AvgHousePrice: d(230000), CouncilTaxBandD: d(2000), CommuteMonthly: d(85),
		PintOfBeer: d(4.5), CinemaTicket: d(9.5), GymMembership: d(28), ChildcareMonthly: d(1000),
		GroceryBasketWeekly: d(63), BroadbandMonthly: d(28), EnergyMonthly: d(138),
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func entryIDs(entries []ranking.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Location.ID
	}
	return out
}

func newExplore() *ExploreModel {
	m := NewExploreModel(nil)
	m.SetData(london(), []domain.Location{london(), manchester(), leeds()}, nil)
	return m
}

func TestExplore_InitialRanking(t *testing.T) {
	m := newExplore()

	assert.Equal(t, ranking.SortAnnualDiff, m.SortBy())
	assert.Equal(t, []string{"leeds", "manchester"}, entryIDs(m.Entries()))

	selected, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "leeds", selected.Location.ID)

	view := m.View()
	assert.Contains(t, view, "Where is greener than London?")
	assert.Contains(t, view, "Manchester")
	assert.Contains(t, view, "2 of 2 locations are greener than London")
}

func TestExplore_SortCycles(t *testing.T) {
	m := newExplore()

	m, _ = m.Update(runes("s"))
	assert.Equal(t, ranking.SortRent, m.SortBy())
	assert.Equal(t, []string{"leeds", "manchester"}, entryIDs(m.Entries()))

	m, _ = m.Update(runes("s"))
	assert.Equal(t, ranking.SortSalary, m.SortBy())
	assert.Equal(t, []string{"manchester", "leeds"}, entryIDs(m.Entries()))

	m, _ = m.Update(runes("s"))
	m, _ = m.Update(runes("s"))
	assert.Equal(t, ranking.SortAnnualDiff, m.SortBy())
}

func TestExplore_RegionCycles(t *testing.T) {
	m := newExplore()

	// Regions sort by name: North West before Yorkshire and the Humber
	m, _ = m.Update(runes("r"))
	assert.Equal(t, domain.RegionNorthWest, m.Region())
	assert.Equal(t, []string{"manchester"}, entryIDs(m.Entries()))

	m, _ = m.Update(runes("r"))
	assert.Equal(t, domain.RegionYorkshire, m.Region())
	assert.Equal(t, []string{"leeds"}, entryIDs(m.Entries()))

	m, _ = m.Update(runes("r"))
	assert.Equal(t, domain.Region(""), m.Region())
	assert.Len(t, m.Entries(), 2)
}

func TestExplore_SearchFollowsTyping(t *testing.T) {
	m := newExplore()

	m, cmd := m.Update(runes("/"))
	assert.NotNil(t, cmd)
	require.True(t, m.Filtering())

	for _, r := range "york" {
		m, _ = m.Update(runes(string(r)))
	}
	assert.Equal(t, []string{"leeds"}, entryIDs(m.Entries()))

	// Enter keeps the search and leaves the box
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.Filtering())
	assert.Equal(t, "york", m.Options().Search)
	assert.Contains(t, m.View(), "york")

	// c clears everything
	m, _ = m.Update(runes("c"))
	assert.Empty(t, m.Options().Search)
	assert.Len(t, m.Entries(), 2)
}

func TestExplore_EscClearsSearch(t *testing.T) {
	m := newExplore()

	m, _ = m.Update(runes("/"))
	m, _ = m.Update(runes("z"))
	assert.Empty(t, m.Entries())
	assert.Contains(t, m.View(), "No locations match the current filters.")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.Filtering())
	assert.Len(t, m.Entries(), 2)
}

func TestExplore_SortKeyTypedWhileFiltering(t *testing.T) {
	m := newExplore()

	m, _ = m.Update(runes("/"))
	m, _ = m.Update(runes("s"))

	assert.Equal(t, ranking.SortAnnualDiff, m.SortBy())
	assert.Equal(t, "s", m.Options().Search)
}

func TestExplore_EnterSelectsLocation(t *testing.T) {
	m := newExplore()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(tuimsg.LocationSelectedMsg)
	require.True(t, ok)
	assert.Equal(t, "manchester", msg.LocationID)
}

func TestExplore_CustomSalaryHeader(t *testing.T) {
	m := NewExploreModel(nil)
	salary := decimal.NewFromInt(50000)
	m.SetData(london(), []domain.Location{manchester()}, &salary)

	assert.Same(t, &salary, m.Options().CustomSalary)
	assert.Contains(t, m.View(), "your salary of £50,000 everywhere")
}

func TestExplore_NoData(t *testing.T) {
	m := NewExploreModel(nil)

	assert.Empty(t, m.Entries())
	_, ok := m.Selected()
	assert.False(t, ok)
	assert.Equal(t, "No locations loaded.", m.View())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}
