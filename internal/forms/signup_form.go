package forms

import (
	"net/url"
	"strings"
)

// SignupForm validates account-creation submissions. Email uniqueness is
// checked by the auth service, which adds its own error to the form.
type SignupForm struct {
	Email     string
	Password  string
	Password2 string

	Errors Errors
}

func NewSignupForm(values url.Values) *SignupForm {
	return &SignupForm{
		Email:     strings.TrimSpace(values.Get("email")),
		Password:  values.Get("password1"),
		Password2: values.Get("password2"),
		Errors:    Errors{},
	}
}

func (f *SignupForm) Valid() bool {
	f.Errors = Errors{}

	if f.Email == "" {
		f.Errors.Add("email", MsgRequired)
	} else if !strings.Contains(f.Email, "@") {
		f.Errors.Add("email", MsgInvalidEmail)
	}

	if f.Password == "" {
		f.Errors.Add("password1", MsgRequired)
	} else if len(f.Password) < 8 {
		f.Errors.Add("password1", MsgPasswordShort)
	}

	if f.Password2 == "" {
		f.Errors.Add("password2", MsgRequired)
	} else if f.Password != "" && f.Password != f.Password2 {
		f.Errors.Add("password2", MsgPasswordMatch)
	}

	return len(f.Errors) == 0
}
