package forms

import (
	"net/url"
	"strconv"
	"strings"

	"leadmart/internal/models"
)

// LeadForm validates lead create/update submissions. Raw values are kept
// as submitted so an invalid form re-renders with the user's input intact.
type LeadForm struct {
	FirstName string
	LastName  string
	AgeRaw    string

	Age    int
	Errors Errors
}

// NewLeadForm binds submitted form values.
func NewLeadForm(values url.Values) *LeadForm {
	return &LeadForm{
		FirstName: strings.TrimSpace(values.Get("first_name")),
		LastName:  strings.TrimSpace(values.Get("last_name")),
		AgeRaw:    strings.TrimSpace(values.Get("age")),
		Errors:    Errors{},
	}
}

// LeadFormFromModel pre-fills the form from an existing lead for the update page.
func LeadFormFromModel(lead *models.Lead) *LeadForm {
	return &LeadForm{
		FirstName: lead.FirstName,
		LastName:  lead.LastName,
		AgeRaw:    strconv.Itoa(lead.Age),
		Age:       lead.Age,
		Errors:    Errors{},
	}
}

// Valid runs all field checks and reports whether the form may be persisted.
// Age must be a whole number greater than or equal to zero.
func (f *LeadForm) Valid() bool {
	f.Errors = Errors{}

	if f.FirstName == "" {
		f.Errors.Add("first_name", MsgRequired)
	}
	if f.LastName == "" {
		f.Errors.Add("last_name", MsgRequired)
	}

	if f.AgeRaw == "" {
		f.Errors.Add("age", MsgRequired)
	} else {
		age, err := strconv.Atoi(f.AgeRaw)
		switch {
		case err != nil:
			f.Errors.Add("age", MsgWholeNumber)
		case age < 0:
			f.Errors.Add("age", MsgMinZero)
		default:
			f.Age = age
		}
	}

	return len(f.Errors) == 0
}

// Apply copies the validated fields onto a lead, preserving its identity.
func (f *LeadForm) Apply(lead *models.Lead) {
	lead.FirstName = f.FirstName
	lead.LastName = f.LastName
	lead.Age = f.Age
}
