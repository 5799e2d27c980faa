// Package leads captures contact and membership enquiries from the site's
// forms and hands them to a Store.
package leads

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Kind identifies which form produced a lead.
type Kind string

const (
	KindContact    Kind = "contact"
	KindMembership Kind = "membership"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool { return k == KindContact || k == KindMembership }

// Form is a submitted enquiry before validation.
type Form struct {
	Kind         Kind     `json:"kind" validate:"required,oneof=contact membership"`
	FullName     string   `json:"fullName" validate:"required"`
	Email        string   `json:"email" validate:"required"`
	Phone        string   `json:"phone,omitempty" validate:"required_if=Kind membership"`
	Message      string   `json:"message,omitempty"`
	InterestedIn string   `json:"interestedIn,omitempty"`
	Plan         string   `json:"plan,omitempty"`
	AddOns       []string `json:"addOns,omitempty"`
	Billing      string   `json:"billing,omitempty"`
	Locale       string   `json:"locale,omitempty"`
}

// FormFromValues reads a posted form. Field names match the templates.
func FormFromValues(kind Kind, v url.Values) Form {
	f := Form{
		Kind:         kind,
		FullName:     v.Get("fullName"),
		Email:        v.Get("email"),
		Phone:        v.Get("phone"),
		Message:      v.Get("message"),
		InterestedIn: v.Get("interestedIn"),
		Plan:         v.Get("plan"),
		Billing:      v.Get("billing"),
	}
	for _, raw := range v["addOns"] {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				f.AddOns = append(f.AddOns, id)
			}
		}
	}
	return f.Normalize()
}

// Normalize trims every text field.
func (f Form) Normalize() Form {
	f.FullName = strings.TrimSpace(f.FullName)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Message = strings.TrimSpace(f.Message)
	f.InterestedIn = strings.TrimSpace(f.InterestedIn)
	f.Plan = strings.TrimSpace(f.Plan)
	f.Billing = strings.ToLower(strings.TrimSpace(f.Billing))
	return f
}

// ValidationError lists the fields a form is missing.
type ValidationError struct {
	fields []string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.fields) == 0 {
		return "invalid lead"
	}
	return fmt.Sprintf("invalid lead: missing %s", strings.Join(e.fields, ", "))
}

// Fields returns the missing field names in form order.
func (e *ValidationError) Fields() []string {
	if e == nil {
		return nil
	}
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Has reports whether field is among the missing ones.
func (e *ValidationError) Has(field string) bool {
	if e == nil {
		return false
	}
	for _, f := range e.fields {
		if f == field {
			return true
		}
	}
	return false
}

var formValidator = newFormValidator()

func newFormValidator() *validator.Validate {
	v := validator.New()
	// report fields by their form names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks presence only; the browser's email and tel inputs cover the
// format. Contact needs a name and email, a membership lead also a phone.
func (f Form) Validate() error {
	err := formValidator.Struct(f.Normalize())
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate lead: %w", err)
	}
	missing := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		missing = append(missing, fe.Field())
	}
	return &ValidationError{fields: missing}
}

// Lead is a validated, stored enquiry.
type Lead struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Form
}

// SortedAddOns returns the lead's add-on ids in a stable order.
func (l Lead) SortedAddOns() []string {
	out := append([]string(nil), l.AddOns...)
	sort.Strings(out)
	return out
}
