// Package selection holds the membership configurator state: which add-ons a
// visitor picked and whether prices are shown for annual billing.
package selection

import "sort"

// State is the configurator state for one session. The zero value is not
// ready for use; call New.
type State struct {
	selected      map[string]struct{}
	BillingAnnual bool
}

// New returns an empty selection with annual billing.
func New() *State {
	return &State{selected: map[string]struct{}{}, BillingAnnual: true}
}

// Toggle removes id when selected and adds it otherwise.
func (s *State) Toggle(id string) {
	if s.selected == nil {
		s.selected = map[string]struct{}{}
	}
	if _, ok := s.selected[id]; ok {
		delete(s.selected, id)
		return
	}
	s.selected[id] = struct{}{}
}

// SetBillingAnnual switches the billing period. The add-on set is untouched.
func (s *State) SetBillingAnnual(annual bool) { s.BillingAnnual = annual }

// Has reports whether id is selected.
func (s *State) Has(id string) bool {
	if s == nil {
		return false
	}
	_, ok := s.selected[id]
	return ok
}

// Len returns the number of selected add-ons.
func (s *State) Len() int {
	if s == nil {
		return 0
	}
	return len(s.selected)
}

// IDs returns the selected ids in sorted order.
func (s *State) IDs() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.selected))
	for id := range s.selected {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Equal reports whether both states hold the same ids and billing period.
// A nil state only equals another nil state.
func (s *State) Equal(o *State) bool {
	if s == nil || o == nil {
		return s == o
	}
	if s.Len() != o.Len() || s.BillingAnnual != o.BillingAnnual {
		return false
	}
	for id := range s.selected {
		if !o.Has(id) {
			return false
		}
	}
	return true
}

// Snapshot is the serialised form kept in the session cookie. Monthly is
// stored instead of annual so the zero value keeps the annual default.
type Snapshot struct {
	AddOns  []string `json:"addons,omitempty"`
	Monthly bool     `json:"monthly,omitempty"`
}

// Snapshot serialises the state.
func (s *State) Snapshot() Snapshot {
	return Snapshot{AddOns: s.IDs(), Monthly: !s.BillingAnnual}
}

// FromSnapshot restores a state; duplicate ids collapse.
func FromSnapshot(snap Snapshot) *State {
	s := New()
	s.BillingAnnual = !snap.Monthly
	for _, id := range snap.AddOns {
		s.selected[id] = struct{}{}
	}
	return s
}
