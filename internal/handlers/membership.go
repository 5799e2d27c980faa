package handlers

import (
	"crownwellness.az/crown-web/internal/catalog"
	"crownwellness.az/crown-web/internal/format"
	"crownwellness.az/crown-web/internal/pricing"
	"crownwellness.az/crown-web/internal/selection"
)

// PriceView is a pricing.Display with the amounts already formatted.
type PriceView struct {
	Rate           string
	OriginalRate   string
	BilledAnnually string
	HasDiscount    bool
	DiscountLabel  string
	Annual         bool
}

// PlanCard is one preset plan column.
type PlanCard struct {
	Slug        string
	Title       string
	Subtitle    string
	Description string
	ButtonText  string
	Badge       string
	Popular     bool
	Features    []string
	Price       PriceView
}

// AddOnCard is one toggleable add-on.
type AddOnCard struct {
	ID          string
	Name        string
	Description string
	Category    string
	Features    []string
	Rate        string
	Selected    bool
}

// CustomView summarises the visitor's custom plan.
type CustomView struct {
	Empty         bool
	Count         int
	IDs           []string
	Names         []string
	Price         PriceView
	MonthlyTotal  string
	YearlyTotal   string
	Annual        bool
	BillingString string
}

// MembershipView is the whole configurator section.
type MembershipView struct {
	Annual bool
	Plans  []PlanCard
	AddOns []AddOnCard
	Custom CustomView
	// Notice is an i18n key shown above the custom plan, if any.
	Notice string
}

func priceView(d pricing.Display, currency, lang string) PriceView {
	pv := PriceView{
		Rate:          format.FmtCurrency(d.Rate, currency, lang),
		OriginalRate:  format.FmtCurrency(d.OriginalRate, currency, lang),
		HasDiscount:   d.HasDiscount(),
		DiscountLabel: d.DiscountLabel,
		Annual:        d.Annual,
	}
	if d.Annual {
		pv.BilledAnnually = format.FmtCurrency(d.BilledAnnually, currency, lang)
	}
	return pv
}

// BuildMembership derives the configurator from the catalog and the visitor's
// selection. Prices are recomputed on every call.
func BuildMembership(c *catalog.Catalog, st *selection.State, lang string) MembershipView {
	if st == nil {
		st = selection.New()
	}
	annual := st.BillingAnnual
	mv := MembershipView{Annual: annual}

	for _, p := range c.Plans {
		mv.Plans = append(mv.Plans, PlanCard{
			Slug:        p.Slug,
			Title:       p.Title,
			Subtitle:    p.Subtitle,
			Description: p.Description,
			ButtonText:  p.ButtonText,
			Badge:       p.Badge,
			Popular:     p.Popular,
			Features:    p.Features,
			Price:       priceView(pricing.PlanPrice(p, annual), c.Currency, lang),
		})
	}
	for _, a := range c.AddOns {
		mv.AddOns = append(mv.AddOns, AddOnCard{
			ID:          a.ID,
			Name:        a.Name,
			Description: a.Description,
			Category:    string(a.Category),
			Features:    a.Features,
			Rate:        format.FmtCurrency(pricing.AddOnRate(a, annual), c.Currency, lang),
			Selected:    st.Has(a.ID),
		})
	}
	mv.Custom = BuildCustom(c, st, lang)
	return mv
}

// BuildCustom summarises the selected add-ons. Ids missing from the catalog
// are skipped and contribute nothing to the totals.
func BuildCustom(c *catalog.Catalog, st *selection.State, lang string) CustomView {
	totals := pricing.ComputeCustomPrice(st, c.AddOns)
	cv := CustomView{
		Price:        priceView(pricing.CustomPrice(totals, st.BillingAnnual), c.Currency, lang),
		MonthlyTotal: format.FmtCurrency(totals.Monthly, c.Currency, lang),
		YearlyTotal:  format.FmtCurrency(totals.Yearly, c.Currency, lang),
		Annual:       st.BillingAnnual,
	}
	for _, a := range c.AddOns {
		if st.Has(a.ID) {
			cv.IDs = append(cv.IDs, a.ID)
			cv.Names = append(cv.Names, a.Name)
		}
	}
	cv.Count = len(cv.IDs)
	cv.Empty = cv.Count == 0
	cv.BillingString = billingString(st.BillingAnnual)
	return cv
}

func billingString(annual bool) string {
	if annual {
		return "annual"
	}
	return "monthly"
}

// Quote is the JSON body of the stateless quote endpoint.
type Quote struct {
	MonthlyTotal         int64    `json:"monthlyTotal"`
	YearlyTotal          int64    `json:"yearlyTotal"`
	DisplayedMonthlyRate int64    `json:"displayedMonthlyRate"`
	Annual               bool     `json:"annual"`
	AddOns               []string `json:"addOns"`
	Ignored              []string `json:"ignored,omitempty"`
	Currency             string   `json:"currency"`
}

// BuildQuote prices ids under the given billing period. Unknown ids are
// reported in Ignored and priced at zero.
func BuildQuote(c *catalog.Catalog, ids []string, annual bool) Quote {
	set := pricing.NewSet(ids...)
	totals := pricing.ComputeCustomPrice(set, c.AddOns)
	q := Quote{
		MonthlyTotal:         totals.Monthly,
		YearlyTotal:          totals.Yearly,
		DisplayedMonthlyRate: pricing.DisplayedMonthlyRate(totals, annual),
		Annual:               annual,
		AddOns:               []string{},
		Currency:             c.Currency,
	}
	seen := map[string]bool{}
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if _, ok := c.AddOn(id); ok {
			q.AddOns = append(q.AddOns, id)
		} else {
			q.Ignored = append(q.Ignored, id)
		}
	}
	return q
}
