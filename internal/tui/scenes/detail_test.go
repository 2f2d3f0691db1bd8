package scenes

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moovely/greener/internal/breakeven"
	"github.com/moovely/greener/internal/compare"
	"github.com/moovely/greener/internal/domain"
	"github.com/moovely/greener/internal/tui/tuimsg"
)

func TestDetail_EmptyState(t *testing.T) {
	m := NewDetailModel()
	assert.Nil(t, m.Report())
	assert.Contains(t, m.View(), "No comparison selected.")
}

func TestDetail_RendersReport(t *testing.T) {
	engine := compare.NewEngine(nil)
	opts := domain.DefaultOptions()
	report := engine.BuildReport(london(), manchester(), opts)

	required, err := breakeven.NewDefaultSolver(engine).RequiredSalary(london(), manchester(), opts)
	require.NoError(t, err)

	m := NewDetailModel()
	m.SetSize(120, 40)
	m.SetReport(report, required)
	require.Same(t, report, m.Report())

	view := m.View()
	assert.Contains(t, view, "London → Manchester")
	assert.Contains(t, view, "Greener")
	assert.Contains(t, view, "+£8,499")
	assert.Contains(t, view, "Where the difference comes from")
	assert.Contains(t, view, "Rent")
	assert.Contains(t, view, "Manchester a month")
	assert.Contains(t, view, "To stay level in Manchester you need")
	assert.Contains(t, view, "£21,856")
	assert.Contains(t, view, "Quality of life")
	assert.Contains(t, view, "Crime per 1,000")
}

func TestDetail_WithoutRequiredSalary(t *testing.T) {
	report := compare.NewEngine(nil).BuildReport(london(), leeds(), domain.DefaultOptions())

	m := NewDetailModel()
	m.SetReport(report, nil)

	view := m.View()
	assert.NotContains(t, view, "To stay level")
	// Leeds has no school or crime data
	assert.NotContains(t, view, "Good or outstanding schools")
}

func TestDetail_EscGoesBack(t *testing.T) {
	m := NewDetailModel()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, tuimsg.BackMsg{}, cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Nil(t, cmd)
}
