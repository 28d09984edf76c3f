package middleware

import (
	"net/http"

	"leadmart/internal/common"
	"leadmart/internal/services"

	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

const SessionCookieName = "session"

// SessionAuth protects the lead pages. The session token travels in an
// HttpOnly cookie; anything missing, expired, revoked or malformed redirects
// to the login page instead of rendering protected content.
func SessionAuth(authSvc services.AuthService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "cookie:" + SessionCookieName,
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			claims, err := authSvc.ValidateSession(c.Request().Context(), auth)
			if err != nil {
				return nil, err
			}

			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				return nil, err
			}
			agentID, err := uuid.Parse(claims.AgentID)
			if err != nil {
				return nil, err
			}

			ctx := common.WithIdentity(c.Request().Context(), userID, agentID)
			c.SetRequest(c.Request().WithContext(ctx))

			return claims, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.Redirect(http.StatusFound, "/login")
		},
	})
}

// SessionCookie builds the cookie carrying the signed session token. An empty
// token with maxAge < 0 clears it.
func SessionCookie(token string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
