package breakeven

import (
	"fmt"
	"sort"

	"github.com/moovely/greener/internal/domain"
)

// RequiredSalaries solves for every destination except the origin itself and
// orders the results from the lowest required salary to the highest
func (s *Solver) RequiredSalaries(
	from domain.Location,
	destinations []domain.Location,
	opts domain.PersonalisationOptions,
) (*MultiResult, error) {

	results := make([]Result, 0, len(destinations))
	for _, to := range destinations {
		if to.ID == from.ID {
			continue
		}
		result, err := s.RequiredSalary(from, to, opts)
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
	}

	if len(results) == 0 {
		return nil, &BreakEvenError{
			Operation: "required_salaries",
			Message:   "no destinations to compare against",
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RequiredSalary.LessThan(results[j].RequiredSalary)
	})

	mr := &MultiResult{
		FromID:   from.ID,
		Results:  results,
		Cheapest: &results[0],
		Dearest:  &results[len(results)-1],
	}
	mr.Recommendations = s.generateRecommendations(mr)

	return mr, nil
}

// generateRecommendations summarises the spread of required salaries
func (s *Solver) generateRecommendations(mr *MultiResult) []string {
	var recommendations []string

	below := 0
	for _, r := range mr.Results {
		if r.RequiredSalary.LessThan(r.CurrentSalary) {
			below++
		}
	}
	if below > 0 {
		recommendations = append(recommendations,
			fmt.Sprintf("%d of %d destinations need less than your current salary", below, len(mr.Results)))
	}

	if mr.Cheapest != nil {
		recommendations = append(recommendations,
			fmt.Sprintf("Lowest bar: %s at £%s", mr.Cheapest.ToID, mr.Cheapest.RequiredSalary.StringFixed(0)))
	}
	if mr.Dearest != nil && mr.Dearest != mr.Cheapest {
		recommendations = append(recommendations,
			fmt.Sprintf("Highest bar: %s at £%s", mr.Dearest.ToID, mr.Dearest.RequiredSalary.StringFixed(0)))
	}

	return recommendations
}
