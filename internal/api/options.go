package api

import (
	"github.com/moovely/greener/internal/domain"
	"github.com/moovely/greener/internal/persona"
)

// OptionsRequest carries personalisation in a query string or JSON body.
// Unset fields keep the defaults, or the persona's values when one is named.
type OptionsRequest struct {
	Salary    *float64 `form:"salary" json:"salary" binding:"omitempty,gte=0"`
	Bed       string   `form:"bed" json:"bed" binding:"omitempty,oneof=one two three"`
	Commute   string   `form:"commute" json:"commute" binding:"omitempty,oneof=drive public-transport wfh"`
	Childcare *bool    `form:"childcare" json:"childcare"`
	Lifestyle *float64 `form:"lifestyle" json:"lifestyle" binding:"omitempty,gte=0,lte=3"`
	Persona   string   `form:"persona" json:"persona"`
}

// Build turns the request into validated options
func (r OptionsRequest) Build() (domain.PersonalisationOptions, error) {
	opts := domain.DefaultOptions()

	if r.Persona != "" {
		id, err := persona.ParseID(r.Persona)
		if err != nil {
			return opts, err
		}
		p, _ := persona.Lookup(id)
		opts = persona.Apply(p, opts)
	}

	if r.Salary != nil {
		salary, err := domain.AmountFromFloat("salary", *r.Salary)
		if err != nil {
			return opts, err
		}
		opts = opts.WithCustomSalary(salary)
	}
	if r.Bed != "" {
		opts = opts.WithBedSize(domain.BedSize(r.Bed))
	}
	if r.Commute != "" {
		opts = opts.WithCommute(domain.CommuteType(r.Commute))
	}
	if r.Childcare != nil {
		opts = opts.WithChildcare(*r.Childcare)
	}
	if r.Lifestyle != nil {
		m, err := domain.AmountFromFloat("lifestyle", *r.Lifestyle)
		if err != nil {
			return opts, err
		}
		opts = opts.WithLifestyle(m)
	}

	return opts, opts.Validate()
}
