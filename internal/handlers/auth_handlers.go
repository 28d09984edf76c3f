package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"leadmart/internal/forms"
	"leadmart/internal/middleware"
	"leadmart/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandlers serves the sign-up, login and logout pages.
type AuthHandlers struct {
	authService services.AuthService
}

func NewAuthHandlers(authService services.AuthService) *AuthHandlers {
	return &AuthHandlers{authService: authService}
}

// SignupForm renders an empty account-creation form.
func (h *AuthHandlers) SignupForm(c echo.Context) error {
	return c.Render(http.StatusOK, "signup.html", map[string]interface{}{
		"form": forms.NewSignupForm(url.Values{}),
	})
}

// Signup creates the account and redirects to the login page. A form that
// fails validation re-renders with field errors and still responds 200.
func (h *AuthHandlers) Signup(c echo.Context) error {
	values, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form data")
	}

	form := forms.NewSignupForm(values)
	if !form.Valid() {
		return c.Render(http.StatusOK, "signup.html", map[string]interface{}{"form": form})
	}

	if _, err := h.authService.Signup(c.Request().Context(), form.Email, form.Password); err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			form.Errors.Add("email", "A user with that email already exists.")
			return c.Render(http.StatusOK, "signup.html", map[string]interface{}{"form": form})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create account")
	}

	return c.Redirect(http.StatusFound, "/login")
}

// LoginForm renders the login page.
func (h *AuthHandlers) LoginForm(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", map[string]interface{}{})
}

// Login verifies the credentials, sets the session cookie and redirects to
// the lead list. Bad credentials re-render the page with a message.
func (h *AuthHandlers) Login(c echo.Context) error {
	values, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form data")
	}
	email := values.Get("email")
	password := values.Get("password")

	token, err := h.authService.Login(c.Request().Context(), email, password)
	if err != nil {
		message := "Please enter a correct email and password."
		if errors.Is(err, services.ErrTooManyAttempts) {
			message = "Too many login attempts. Try again later."
		} else if !errors.Is(err, services.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to log in")
		}
		return c.Render(http.StatusOK, "login.html", map[string]interface{}{
			"email": email,
			"error": message,
		})
	}

	maxAge := int(h.authService.SessionTTL().Seconds())
	c.SetCookie(middleware.SessionCookie(token, maxAge))
	return c.Redirect(http.StatusFound, "/leads")
}

// Logout revokes the session token, clears the cookie and redirects home.
func (h *AuthHandlers) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil && cookie.Value != "" {
		if err := h.authService.Logout(c.Request().Context(), cookie.Value); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to log out")
		}
	}

	c.SetCookie(middleware.SessionCookie("", -1))
	return c.Redirect(http.StatusFound, "/")
}
