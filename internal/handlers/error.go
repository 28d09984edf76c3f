package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HTMLErrorHandler renders errors as HTML pages instead of echo's default
// JSON body. Redirect responses pass through untouched.
func HTMLErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Something went wrong."
	if httpErr, ok := err.(*echo.HTTPError); ok {
		code = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}

	renderErr := c.Render(code, "error.html", map[string]interface{}{
		"status":  code,
		"title":   http.StatusText(code),
		"message": message,
	})
	if renderErr != nil {
		c.Logger().Error(renderErr)
	}
}
