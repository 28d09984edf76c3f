// Package forms converts raw submitted field values into typed, validated
// input before anything reaches the service layer. A form that fails
// validation is re-rendered with its field errors; the response is still 200.
package forms

// Errors maps a field name to the messages reported against it.
type Errors map[string][]string

func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Get returns the first message for a field, or "" when the field is clean.
func (e Errors) Get(field string) string {
	if len(e[field]) == 0 {
		return ""
	}
	return e[field][0]
}

func (e Errors) Has(field string) bool {
	return len(e[field]) > 0
}

// Validation messages shared across forms.
const (
	MsgRequired      = "This field is required."
	MsgWholeNumber   = "Enter a whole number."
	MsgMinZero       = "Ensure this value is greater than or equal to 0."
	MsgInvalidEmail  = "Enter a valid email address."
	MsgPasswordShort = "This password is too short. It must contain at least 8 characters."
	MsgPasswordMatch = "The two password fields didn't match."
)
