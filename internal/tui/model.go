package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/moovely/greener/internal/breakeven"
	"github.com/moovely/greener/internal/calculation"
	"github.com/moovely/greener/internal/compare"
	"github.com/moovely/greener/internal/config"
	"github.com/moovely/greener/internal/domain"
	"github.com/moovely/greener/internal/ranking"
	"github.com/moovely/greener/internal/tui/scenes"
)

// Options configures a TUI session
type Options struct {
	LocationsFile string // "" uses the embedded table
	TaxRulesFile  string // "" uses the built-in rules
	HomeID        string
	Salary        *decimal.Decimal // nil ranks on local medians
	Logger        calculation.Logger
}

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	opts Options

	// Data and engines, set once locations are loaded
	locations *config.LocationTable
	home      domain.Location
	engine    *compare.Engine
	solver    *breakeven.Solver

	// Scene models
	exploreModel *scenes.ExploreModel
	detailModel  *scenes.DetailModel

	err error

	loading        bool
	loadingMessage string
}

// NewModel creates a new application model
func NewModel(opts Options) Model {
	if opts.HomeID == "" {
		opts.HomeID = "london"
	}
	return Model{
		currentScene:   SceneExplore,
		opts:           opts,
		exploreModel:   scenes.NewExploreModel(nil),
		detailModel:    scenes.NewDetailModel(),
		width:          100,
		height:         30,
		loading:        true,
		loadingMessage: "Loading locations...",
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return loadLocationsCmd(m.opts.LocationsFile, m.opts.TaxRulesFile)
}

// loadLocationsCmd returns a command that reads the location table and tax rules
func loadLocationsCmd(locationsFile, taxRulesFile string) tea.Cmd {
	return func() tea.Msg {
		table, err := config.LoadLocations(locationsFile)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		rules, err := config.LoadTaxRules(taxRulesFile)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return LocationsLoadedMsg{Table: table, Rules: rules}
	}
}

// applyLoaded builds the engines and hands the data to the scenes
func (m Model) applyLoaded(msg LocationsLoadedMsg) (Model, error) {
	home, err := msg.Table.Get(m.opts.HomeID)
	if err != nil {
		return m, fmt.Errorf("home location: %w", err)
	}

	engine := compare.NewEngine(calculation.NewTaxCalculatorWithRules(msg.Rules))
	engine.SetLogger(m.opts.Logger)

	m.locations = msg.Table
	m.home = home
	m.engine = engine
	m.solver = breakeven.NewDefaultSolver(engine)

	m.exploreModel = scenes.NewExploreModel(ranking.NewRanker(engine))
	m.exploreModel.SetSize(m.width, m.height)
	m.exploreModel.SetData(home, msg.Table.All(), m.opts.Salary)
	return m, nil
}

// personalisation returns the options used for detail comparisons
func (m Model) personalisation() domain.PersonalisationOptions {
	opts := domain.DefaultOptions()
	if m.opts.Salary != nil {
		opts = opts.WithCustomSalary(*m.opts.Salary)
	}
	return opts
}

// showLocation prepares the detail scene for a move from home to id
func (m Model) showLocation(id string) (Model, error) {
	to, err := m.locations.Get(id)
	if err != nil {
		return m, err
	}

	opts := m.personalisation()
	report := m.engine.BuildReport(m.home, to, opts)

	required, err := m.solver.RequiredSalary(m.home, to, opts)
	if err != nil {
		m.engine.Logger.Warnf("required salary for %s: %v", to.ID, err)
		required = nil
	}

	m.detailModel.SetReport(report, required)
	m.detailModel.SetSize(m.width, m.height)
	return m, nil
}

// CurrentScene returns the scene on display
func (m Model) CurrentScene() Scene { return m.currentScene }

// Explore returns the league table scene
func (m Model) Explore() *scenes.ExploreModel { return m.exploreModel }

// Detail returns the comparison detail scene
func (m Model) Detail() *scenes.DetailModel { return m.detailModel }

// Err returns the last error shown to the user
func (m Model) Err() error { return m.err }
