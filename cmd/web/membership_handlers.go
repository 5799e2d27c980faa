package main

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	handlersPkg "crownwellness.az/crown-web/internal/handlers"
	"crownwellness.az/crown-web/internal/leads"
	mw "crownwellness.az/crown-web/internal/middleware"
	"crownwellness.az/crown-web/internal/selection"
)

// MembershipToggleHandler adds or removes one add-on and re-renders the
// configurator with freshly computed totals.
func MembershipToggleHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "addonID")
	if _, ok := catalogs.Get().AddOn(id); !ok {
		mw.WriteError(w, r, http.StatusNotFound, "unknown add-on")
		return
	}
	s := mw.GetSession(r)
	st := s.Selection()
	st.Toggle(id)
	s.SetSelection(st)
	collector.AddOnToggled(id, st.Has(id))

	renderMembership(w, r, http.StatusOK, st, "")
}

// MembershipBillingHandler switches between annual and monthly billing. The
// selection is kept.
func MembershipBillingHandler(w http.ResponseWriter, r *http.Request) {
	annual, ok := parseBilling(r.PostFormValue("billing"))
	if !ok {
		mw.WriteError(w, r, http.StatusBadRequest, "billing must be annual or monthly")
		return
	}
	s := mw.GetSession(r)
	st := s.Selection()
	st.SetBillingAnnual(annual)
	s.SetSelection(st)

	renderMembership(w, r, http.StatusOK, st, "")
}

// MembershipCustomHandler turns the current selection into a membership lead
// form. An empty selection answers 422 with a notice instead.
func MembershipCustomHandler(w http.ResponseWriter, r *http.Request) {
	s := mw.GetSession(r)
	st := s.Selection()
	if st.Len() == 0 {
		mw.Retarget(w, "#membership-configurator")
		renderMembership(w, r, http.StatusUnprocessableEntity, st, "membership.select_notice")
		return
	}

	cat := catalogs.Get()
	vm := newPage(r, "membership.title", "")
	custom := handlersPkg.BuildCustom(cat, st, vm.Lang)
	view := handlersPkg.NewContactView(cat, leads.KindMembership)
	view.Form.Plan = "custom"
	view.Form.AddOns = custom.IDs
	view.Form.Billing = custom.BillingString
	view.Custom = &custom
	vm.Contact = view
	renderTemplate(w, r, "frag_lead_form", vm)
}

// MembershipQuoteHandler prices ?addons= statelessly and answers JSON.
func MembershipQuoteHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	annual, ok := parseBilling(q.Get("billing"))
	if !ok {
		mw.WriteError(w, r, http.StatusBadRequest, "billing must be annual or monthly")
		return
	}
	ids := splitIDs(q["addons"])
	quote := handlersPkg.BuildQuote(catalogs.Get(), ids, annual)
	collector.QuoteServed(annual)
	mw.WriteJSON(w, http.StatusOK, quote)
}

func renderMembership(w http.ResponseWriter, r *http.Request, status int, st *selection.State, notice string) {
	vm := newPage(r, "membership.title", "")
	mv := handlersPkg.BuildMembership(catalogs.Get(), st, vm.Lang)
	mv.Notice = notice
	vm.Membership = &mv
	mw.Trigger(w, "membership:updated", map[string]any{
		"count":  mv.Custom.Count,
		"annual": mv.Annual,
	})
	renderTemplateStatus(w, r, status, "frag_membership", vm)
}

// parseBilling maps the billing parameter to the annual flag. Empty means
// annual, the default.
func parseBilling(v string) (annual bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "annual", "yearly":
		return true, true
	case "monthly":
		return false, true
	default:
		return false, false
	}
}

func splitIDs(values []string) []string {
	var ids []string
	for _, raw := range values {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids
}
