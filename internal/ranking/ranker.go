package ranking

import (
	"fmt"
	"sort"
	"strings"

	"github.com/moovely/greener/internal/compare"
	"github.com/moovely/greener/internal/domain"
	"github.com/shopspring/decimal"
)

// SortField selects the league table ordering
type SortField string

const (
	SortAnnualDiff SortField = "annual-diff"
	SortRent       SortField = "rent"
	SortSalary     SortField = "salary"
	SortHousePrice SortField = "house-price"
)

// SortFields lists every ordering in the order the explore view cycles them
var SortFields = []SortField{SortAnnualDiff, SortRent, SortSalary, SortHousePrice}

// ParseSortField matches a sort name case-insensitively. An empty string
// selects the annual difference.
func ParseSortField(s string) (SortField, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return SortAnnualDiff, nil
	}
	for _, f := range SortFields {
		if s == string(f) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown sort field %q (available: annual-diff, rent, salary, house-price)", s)
}

// Next returns the field after f, wrapping around
func (f SortField) Next() SortField {
	for i, candidate := range SortFields {
		if candidate == f {
			return SortFields[(i+1)%len(SortFields)]
		}
	}
	return SortAnnualDiff
}

// Label is the column heading for the field
func (f SortField) Label() string {
	switch f {
	case SortRent:
		return "Rent (2 bed)"
	case SortSalary:
		return "Median salary"
	case SortHousePrice:
		return "House price"
	default:
		return "Annual difference"
	}
}

// Options controls which candidates appear and in what order
type Options struct {
	CustomSalary *decimal.Decimal
	Regions      map[domain.Region]bool // empty means every region
	Search       string
	SortBy       SortField
}

// Entry is one row of the league table
type Entry struct {
	Location   domain.Location `json:"location"`
	AnnualDiff decimal.Decimal `json:"annualDiff"`
	Verdict    domain.Verdict  `json:"verdict"`
}

// Ranker scores every candidate against a fixed home location
type Ranker struct {
	Engine *compare.Engine
}

// NewRanker creates a ranker. A nil engine uses the default rules.
func NewRanker(engine *compare.Engine) *Ranker {
	if engine == nil {
		engine = compare.NewEngine(nil)
	}
	return &Ranker{Engine: engine}
}

// Rank compares home with each candidate under default options, then
// filters and sorts the results. Equal sort keys keep the candidate order.
func (r *Ranker) Rank(home domain.Location, candidates []domain.Location, opts Options) []Entry {
	entries := make([]Entry, 0, len(candidates))
	for _, loc := range candidates {
		if loc.ID == home.ID || !matches(loc, opts) {
			continue
		}
		q := r.Engine.QuickCompare(home, loc, opts.CustomSalary)
		entries = append(entries, Entry{Location: loc, AnnualDiff: q.AnnualDiff, Verdict: q.Verdict})
	}

	sortBy := opts.SortBy
	if sortBy == "" {
		sortBy = SortAnnualDiff
	}
	sort.SliceStable(entries, less(entries, sortBy))

	r.Engine.Logger.Debugf("ranked %d of %d candidates against %s by %s",
		len(entries), len(candidates), home.ID, sortBy)
	return entries
}

func matches(loc domain.Location, opts Options) bool {
	if len(opts.Regions) > 0 && !opts.Regions[loc.Region] {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(opts.Search))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(loc.Name), q) ||
		strings.Contains(strings.ToLower(string(loc.Region)), q) ||
		strings.Contains(strings.ToLower(loc.County), q)
}

func less(entries []Entry, field SortField) func(i, j int) bool {
	switch field {
	case SortRent:
		return func(i, j int) bool {
			return entries[i].Location.RentTwoBed.LessThan(entries[j].Location.RentTwoBed)
		}
	case SortSalary:
		return func(i, j int) bool {
			return entries[i].Location.MedianSalary.GreaterThan(entries[j].Location.MedianSalary)
		}
	case SortHousePrice:
		return func(i, j int) bool {
			return entries[i].Location.AvgHousePrice.LessThan(entries[j].Location.AvgHousePrice)
		}
	default:
		return func(i, j int) bool {
			return entries[i].AnnualDiff.GreaterThan(entries[j].AnnualDiff)
		}
	}
}

// RegionSet builds a region filter from names, ignoring blanks
func RegionSet(names []string) (map[domain.Region]bool, error) {
	set := make(map[domain.Region]bool)
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			continue
		}
		region, err := domain.ParseRegion(n)
		if err != nil {
			return nil, err
		}
		set[region] = true
	}
	return set, nil
}
