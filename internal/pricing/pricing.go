// Package pricing derives membership prices from catalog entries and the
// visitor's add-on selection. Nothing here is cached: totals are recomputed on
// every read from the current selection.
package pricing

import (
	"fmt"
	"strings"

	"crownwellness.az/crown-web/internal/catalog"
)

// Selected reports whether an add-on id is part of the current selection.
type Selected interface {
	Has(id string) bool
}

// Set is a plain add-on id set.
type Set map[string]struct{}

// NewSet builds a Set from ids; duplicates collapse.
func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has implements Selected.
func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Totals is the aggregate price of a custom plan in whole currency units.
type Totals struct {
	Monthly int64 `json:"monthlyTotal"`
	Yearly  int64 `json:"yearlyTotal"`
}

// IsZero reports whether nothing contributes to the totals.
func (t Totals) IsZero() bool { return t.Monthly == 0 && t.Yearly == 0 }

// ComputeCustomPrice sums the monthly and yearly prices of every selected add-on.
// Ids without a catalog entry contribute nothing. Pricing is strictly additive.
func ComputeCustomPrice(selected Selected, addOns []catalog.AddOnFeature) Totals {
	var t Totals
	if selected == nil {
		return t
	}
	for _, a := range addOns {
		if !selected.Has(a.ID) {
			continue
		}
		t.Monthly += a.MonthlyPrice
		t.Yearly += a.YearlyPrice
	}
	return t
}

// DisplayedMonthlyRate is the per-month figure shown to visitors: the monthly
// total, or the yearly total spread over twelve months (floored) on annual billing.
// Preset plans, add-on cards and the custom plan all go through this function.
func DisplayedMonthlyRate(t Totals, annual bool) int64 {
	if !annual {
		return t.Monthly
	}
	return floorDiv(t.Yearly, 12)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Display is everything a price block renders.
type Display struct {
	Rate            int64
	OriginalRate    int64
	BilledAnnually  int64 // yearly amount charged up front; 0 on monthly billing
	Annual          bool
	DiscountPercent int
	DiscountLabel   string
}

// HasDiscount reports whether a struck-through original price should render.
func (d Display) HasDiscount() bool { return d.OriginalRate > d.Rate }

// PlanTotals returns the current price pair of a preset plan.
func PlanTotals(p catalog.PresetPlan) Totals {
	return Totals{Monthly: p.MonthlyPrice, Yearly: p.YearlyPrice}
}

// PlanOriginalTotals returns the pre-discount price pair of a preset plan.
func PlanOriginalTotals(p catalog.PresetPlan) Totals {
	return Totals{Monthly: p.OriginalMonthlyPrice, Yearly: p.OriginalYearlyPrice}
}

// PlanPrice renders a preset plan's current and original prices.
func PlanPrice(p catalog.PresetPlan, annual bool) Display {
	cur := PlanTotals(p)
	orig := PlanOriginalTotals(p)
	d := build(cur, orig, annual)
	pct := DiscountPercent(cur, orig)
	d.DiscountPercent = pct
	d.DiscountLabel = DiscountLabel(p.DiscountLabel, pct)
	return d
}

// CustomPrice renders the totals of a custom plan. Custom plans have no
// original price, so no discount is shown.
func CustomPrice(t Totals, annual bool) Display {
	return build(t, t, annual)
}

// AddOnRate is the per-month figure printed on an add-on card.
func AddOnRate(a catalog.AddOnFeature, annual bool) int64 {
	return DisplayedMonthlyRate(Totals{Monthly: a.MonthlyPrice, Yearly: a.YearlyPrice}, annual)
}

func build(cur, orig Totals, annual bool) Display {
	d := Display{
		Rate:         DisplayedMonthlyRate(cur, annual),
		OriginalRate: DisplayedMonthlyRate(orig, annual),
		Annual:       annual,
	}
	if annual {
		d.BilledAnnually = cur.Yearly
	}
	return d
}

// DiscountPercent derives the saving from the yearly price pair, rounded down
// so the label never promises more than the prices deliver.
func DiscountPercent(cur, orig Totals) int {
	if orig.Yearly <= 0 || cur.Yearly >= orig.Yearly {
		return 0
	}
	return int(100 - ceilDiv(100*cur.Yearly, orig.Yearly))
}

func ceilDiv(a, b int64) int64 {
	return -floorDiv(-a, b)
}

// DiscountLabel keeps an authored label when present and otherwise derives one.
func DiscountLabel(authored string, pct int) string {
	if s := strings.TrimSpace(authored); s != "" {
		return s
	}
	if pct <= 0 {
		return ""
	}
	return fmt.Sprintf("%d%% OFF", pct)
}

// LabelDrift lists preset plans whose authored discount label disagrees with
// the percentage their prices actually deliver.
func LabelDrift(plans []catalog.PresetPlan) []string {
	var out []string
	for _, p := range plans {
		authored := strings.TrimSpace(p.DiscountLabel)
		if authored == "" {
			continue
		}
		derived := DiscountLabel("", DiscountPercent(PlanTotals(p), PlanOriginalTotals(p)))
		if !strings.EqualFold(authored, derived) {
			out = append(out, fmt.Sprintf("%s: authored %q, prices give %q", p.Slug, authored, derived))
		}
	}
	return out
}
