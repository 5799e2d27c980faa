package main

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"crownwellness.az/crown-web/internal/catalog"
	handlersPkg "crownwellness.az/crown-web/internal/handlers"
	"crownwellness.az/crown-web/internal/leads"
	mw "crownwellness.az/crown-web/internal/middleware"
	"crownwellness.az/crown-web/internal/observability"
	"crownwellness.az/crown-web/internal/selection"
)

// ContactSubmitHandler stores a contact enquiry. Invalid forms answer 422 and
// rate limited clients 429, both with the form re-rendered.
func ContactSubmitHandler(w http.ResponseWriter, r *http.Request) {
	submitLead(w, r, leads.KindContact, "frag_contact_form", "contact")
}

// LeadSubmitHandler stores a membership lead built from the configurator.
func LeadSubmitHandler(w http.ResponseWriter, r *http.Request) {
	submitLead(w, r, leads.KindMembership, "frag_lead_form", "contact")
}

func submitLead(w http.ResponseWriter, r *http.Request, kind leads.Kind, fragment, page string) {
	if err := r.ParseForm(); err != nil {
		mw.WriteError(w, r, http.StatusBadRequest, "invalid form")
		return
	}
	cat := catalogs.Get()
	lang := mw.Lang(r)
	form := leads.FormFromValues(kind, r.PostForm)
	form.Locale = lang
	form.AddOns = knownAddOns(cat, form.AddOns)

	view := handlersPkg.NewContactView(cat, kind)
	view.Form = form
	if kind == leads.KindMembership {
		annual, ok := parseBilling(form.Billing)
		if !ok {
			annual = true
		}
		st := selection.FromSnapshot(selection.Snapshot{AddOns: form.AddOns, Monthly: !annual})
		custom := handlersPkg.BuildCustom(cat, st, lang)
		view.Custom = &custom
	}

	lead, err := leadService.Submit(r.Context(), mw.ClientIP(r), form)
	status := http.StatusOK
	if err != nil {
		view.ApplyError(err)
		var verr *leads.ValidationError
		switch {
		case errors.As(err, &verr):
			status = http.StatusUnprocessableEntity
		case errors.Is(err, leads.ErrRateLimited):
			status = http.StatusTooManyRequests
		default:
			observability.FromContext(r.Context()).Error("submit lead", zap.String("kind", string(kind)), zap.Error(err))
			status = http.StatusInternalServerError
		}
	} else {
		view.Submitted = true
		view.LeadID = lead.ID
		mw.Trigger(w, "lead:submitted", map[string]string{"kind": string(kind)})
	}

	vm := newPage(r, "contact.title", "contact.description")
	vm.Contact = view
	if mw.IsHTMX(r.Context()) {
		renderTemplateStatus(w, r, status, fragment, vm)
		return
	}
	renderPageStatus(w, r, status, page, vm)
}

// knownAddOns drops ids the catalog does not list.
func knownAddOns(cat *catalog.Catalog, ids []string) []string {
	var out []string
	for _, id := range ids {
		if _, ok := cat.AddOn(id); ok {
			out = append(out, id)
		}
	}
	return out
}
