package scenes

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/moovely/greener/internal/domain"
	"github.com/moovely/greener/internal/output"
	"github.com/moovely/greener/internal/ranking"
	"github.com/moovely/greener/internal/tui/tuimsg"
	"github.com/moovely/greener/internal/tui/tuistyles"
)

var (
	keySort   = key.NewBinding(key.WithKeys("s"))
	keyFilter = key.NewBinding(key.WithKeys("/"))
	keyRegion = key.NewBinding(key.WithKeys("r"))
	keyClear  = key.NewBinding(key.WithKeys("c"))
	keySelect = key.NewBinding(key.WithKeys("enter"))
)

// ExploreModel is the league table of every location against home
type ExploreModel struct {
	ranker    *ranking.Ranker
	home      domain.Location
	locations []domain.Location
	salary    *decimal.Decimal

	sortBy    ranking.SortField
	regions   []domain.Region
	regionIdx int // -1 means every region
	entries   []ranking.Entry

	table     table.Model
	filter    textinput.Model
	filtering bool

	width  int
	height int
}

// NewExploreModel creates the explore scene
func NewExploreModel(ranker *ranking.Ranker) *ExploreModel {
	if ranker == nil {
		ranker = ranking.NewRanker(nil)
	}

	ti := textinput.New()
	ti.Placeholder = "name, region or county"
	ti.Prompt = "/ "
	ti.CharLimit = 40
	ti.Width = 30

	t := table.New(
		table.WithColumns(exploreColumns()),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	styles := table.DefaultStyles()
	styles.Header = tuistyles.TableHeaderStyle
	styles.Selected = tuistyles.TableSelectedStyle
	t.SetStyles(styles)

	return &ExploreModel{
		ranker:    ranker,
		sortBy:    ranking.SortAnnualDiff,
		regionIdx: -1,
		table:     t,
		filter:    ti,
	}
}

func exploreColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 3},
		{Title: "Location", Width: 14},
		{Title: "Region", Width: 24},
		{Title: "Per year", Width: 10},
		{Title: "Verdict", Width: 14},
		{Title: "2-bed rent", Width: 10},
		{Title: "Median pay", Width: 10},
	}
}

// SetData replaces home and the candidate list and re-ranks
func (m *ExploreModel) SetData(home domain.Location, locations []domain.Location, salary *decimal.Decimal) {
	m.home = home
	m.locations = locations
	m.salary = salary

	seen := map[domain.Region]bool{}
	m.regions = m.regions[:0]
	for _, loc := range locations {
		if loc.ID == home.ID || seen[loc.Region] {
			continue
		}
		seen[loc.Region] = true
		m.regions = append(m.regions, loc.Region)
	}
	sort.Slice(m.regions, func(i, j int) bool { return m.regions[i] < m.regions[j] })
	m.regionIdx = -1

	m.refresh()
}

// SetSize updates the model dimensions
func (m *ExploreModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	if h := height - 10; h > 3 {
		m.table.SetHeight(h)
	}
}

// Entries returns the ranked rows currently shown
func (m *ExploreModel) Entries() []ranking.Entry { return m.entries }

// SortBy returns the active sort field
func (m *ExploreModel) SortBy() ranking.SortField { return m.sortBy }

// Filtering reports whether the search box has focus
func (m *ExploreModel) Filtering() bool { return m.filtering }

// Region returns the active region filter, or "" for every region
func (m *ExploreModel) Region() domain.Region {
	if m.regionIdx < 0 || m.regionIdx >= len(m.regions) {
		return ""
	}
	return m.regions[m.regionIdx]
}

// Options returns the ranking options the table reflects
func (m *ExploreModel) Options() ranking.Options {
	opts := ranking.Options{
		CustomSalary: m.salary,
		Search:       m.filter.Value(),
		SortBy:       m.sortBy,
	}
	if r := m.Region(); r != "" {
		opts.Regions = map[domain.Region]bool{r: true}
	}
	return opts
}

// Selected returns the highlighted entry, if any
func (m *ExploreModel) Selected() (ranking.Entry, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.entries) {
		return ranking.Entry{}, false
	}
	return m.entries[i], true
}

// Update handles messages for the explore scene
func (m *ExploreModel) Update(msg tea.Msg) (*ExploreModel, tea.Cmd) {
	if m.filtering {
		return m.updateFilter(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keySort):
			m.sortBy = m.sortBy.Next()
			m.refresh()
			return m, nil

		case key.Matches(msg, keyFilter):
			m.filtering = true
			m.filter.Focus()
			return m, textinput.Blink

		case key.Matches(msg, keyRegion):
			m.regionIdx++
			if m.regionIdx >= len(m.regions) {
				m.regionIdx = -1
			}
			m.refresh()
			return m, nil

		case key.Matches(msg, keyClear):
			m.filter.SetValue("")
			m.regionIdx = -1
			m.refresh()
			return m, nil

		case key.Matches(msg, keySelect):
			entry, ok := m.Selected()
			if !ok {
				return m, nil
			}
			id := entry.Location.ID
			return m, func() tea.Msg {
				return tuimsg.LocationSelectedMsg{LocationID: id}
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// updateFilter handles input while the search box has focus. The table
// follows every keystroke.
func (m *ExploreModel) updateFilter(msg tea.Msg) (*ExploreModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter:
			m.filtering = false
			m.filter.Blur()
			return m, nil

		case tea.KeyEsc:
			m.filtering = false
			m.filter.Blur()
			m.filter.SetValue("")
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.refresh()
	return m, cmd
}

// refresh re-ranks and rebuilds the table rows
func (m *ExploreModel) refresh() {
	if m.home.ID == "" {
		m.entries = nil
		m.table.SetRows(nil)
		return
	}

	m.entries = m.ranker.Rank(m.home, m.locations, m.Options())

	rows := make([]table.Row, 0, len(m.entries))
	for i, e := range m.entries {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			e.Location.Name,
			string(e.Location.Region),
			output.FormatCurrency(e.AnnualDiff, true),
			e.Verdict.Label(),
			output.FormatCurrency(e.Location.RentTwoBed, false),
			output.FormatCurrency(e.Location.MedianSalary, false),
		})
	}
	m.table.SetRows(rows)
	if len(rows) > 0 {
		m.table.SetCursor(0)
	}
}

// View renders the explore scene
func (m *ExploreModel) View() string {
	if m.home.ID == "" {
		return "No locations loaded."
	}

	header := renderExploreHeader(m.home, m.salary, m.sortBy)

	var body string
	if len(m.entries) == 0 {
		body = tuistyles.SubtitleStyle.Render("No locations match the current filters.")
	} else {
		body = m.table.View()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		"",
		m.renderFilterLine(),
		"",
		body,
		"",
		m.renderSummary(),
		renderExploreHelp(m.filtering),
	)
}

func renderExploreHeader(home domain.Location, salary *decimal.Decimal, sortBy ranking.SortField) string {
	title := tuistyles.TitleStyle.Render(fmt.Sprintf("Where is greener than %s?", home.Name))

	basis := "local median salaries"
	if salary != nil {
		basis = "your salary of " + output.FormatCurrency(*salary, false) + " everywhere"
	}
	subtitle := tuistyles.SubtitleStyle.Render(fmt.Sprintf("Using %s • sorted by %s", basis, strings.ToLower(sortBy.Label())))

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle)
}

func (m *ExploreModel) renderFilterLine() string {
	region := "all regions"
	if r := m.Region(); r != "" {
		region = string(r)
	}
	regionText := tuistyles.MetricLabelStyle.Render("Region: ") + tuistyles.MetricValueStyle.Render(region)

	if m.filtering {
		return regionText + "   " + m.filter.View()
	}
	search := m.filter.Value()
	if search == "" {
		return regionText
	}
	return regionText + "   " + tuistyles.MetricLabelStyle.Render("Search: ") + tuistyles.MetricValueStyle.Render(search)
}

func (m *ExploreModel) renderSummary() string {
	greener := 0
	for _, e := range m.entries {
		if e.Verdict == domain.VerdictGreener {
			greener++
		}
	}
	return tuistyles.InfoStyle.Render(fmt.Sprintf("%d of %d locations are greener than %s", greener, len(m.entries), m.home.Name))
}

func renderExploreHelp(filtering bool) string {
	if filtering {
		return tuistyles.HelpDescStyle.Render("type to search • Enter keep • ESC clear")
	}
	return tuistyles.HelpDescStyle.Render("↑/↓ move • Enter details • s sort • / search • r region • c clear")
}
