package handlers

import (
	"errors"

	"crownwellness.az/crown-web/internal/catalog"
	"crownwellness.az/crown-web/internal/leads"
)

// ContactView backs both the contact form and the membership lead form.
type ContactView struct {
	Kind      leads.Kind
	Form      leads.Form
	Errors    map[string]bool
	Interests []catalog.InterestOption
	// Custom is set for membership leads so the form can recap the plan.
	Custom      *CustomView
	Submitted   bool
	LeadID      string
	RateLimited bool
	Failed      bool
}

// HasError reports whether field failed validation.
func (v ContactView) HasError(field string) bool { return v.Errors[field] }

// NewContactView starts an empty form of the given kind.
func NewContactView(c *catalog.Catalog, kind leads.Kind) *ContactView {
	return &ContactView{
		Kind:      kind,
		Form:      leads.Form{Kind: kind},
		Errors:    map[string]bool{},
		Interests: c.Interests,
	}
}

// ApplyError records the outcome of a failed submission on the view.
func (v *ContactView) ApplyError(err error) {
	var verr *leads.ValidationError
	switch {
	case errors.As(err, &verr):
		for _, f := range verr.Fields() {
			v.Errors[f] = true
		}
	case errors.Is(err, leads.ErrRateLimited):
		v.RateLimited = true
	case err != nil:
		v.Failed = true
	}
}
