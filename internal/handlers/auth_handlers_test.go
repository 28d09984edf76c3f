package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"leadmart/internal/middleware"
	"leadmart/internal/models"
	"leadmart/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AuthHandlersTestSuite struct {
	suite.Suite
	e        *echo.Echo
	mockAuth *MockAuthService
	handlers *AuthHandlers
}

func (suite *AuthHandlersTestSuite) SetupTest() {
	suite.e = newTestEcho(suite.T())
	suite.mockAuth = &MockAuthService{}
	suite.handlers = NewAuthHandlers(suite.mockAuth)

	suite.mockAuth.Test(suite.T())
}

func (suite *AuthHandlersTestSuite) TearDownTest() {
	suite.mockAuth.AssertExpectations(suite.T())
}

func TestAuthHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlersTestSuite))
}

func (suite *AuthHandlersTestSuite) TestLanding() {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := suite.e.NewContext(req, rec)

	err := Landing(c)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
}

func (suite *AuthHandlersTestSuite) TestSignup_Success() {
	suite.mockAuth.On("Signup", mock.Anything, "new@example.com", "correct-horse").
		Return(&models.User{ID: uuid.New(), Email: "new@example.com"}, nil)

	form := url.Values{}
	form.Set("email", "new@example.com")
	form.Set("password1", "correct-horse")
	form.Set("password2", "correct-horse")

	req := newFormRequest("/signup", form.Encode())
	rec := httptest.NewRecorder()
	c := suite.e.NewContext(req, rec)

	err := suite.handlers.Signup(c)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusFound, rec.Code)
	assert.Equal(suite.T(), "/login", rec.Header().Get(echo.HeaderLocation))
}

func (suite *AuthHandlersTestSuite) TestSignup_PasswordMismatchReRenders() {
	form := url.Values{}
	form.Set("email", "new@example.com")
	form.Set("password1", "correct-horse")
	form.Set("password2", "wrong-horse")

	req := newFormRequest("/signup", form.Encode())
	rec := httptest.NewRecorder()
	c := suite.e.NewContext(req, rec)

	err := suite.handlers.Signup(c)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), "password fields didn")
	suite.mockAuth.AssertNotCalled(suite.T(), "Signup")
}

func (suite *AuthHandlersTestSuite) TestSignup_EmailTakenReRenders() {
	suite.mockAuth.On("Signup", mock.Anything, "taken@example.com", "correct-horse").
		Return(nil, services.ErrEmailTaken)

	form := url.Values{}
	form.Set("email", "taken@example.com")
	form.Set("password1", "correct-horse")
	form.Set("password2", "correct-horse")

	req := newFormRequest("/signup", form.Encode())
	rec := httptest.NewRecorder()
	c := suite.e.NewContext(req, rec)

	err := suite.handlers.Signup(c)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), "A user with that email already exists.")
}

func (suite *AuthHandlersTestSuite) TestLogin_SetsCookieAndRedirects() {
	suite.mockAuth.On("Login", mock.Anything, "agent@example.com", "correct-horse").Return("signed-token", nil)
	suite.mockAuth.On("SessionTTL").Return(24 * time.Hour)

	form := url.Values{}
	form.Set("email", "agent@example.com")
	form.Set("password", "correct-horse")

	req := newFormRequest("/login", form.Encode())
	rec := httptest.NewRecorder()
	c := suite.e.NewContext(req, rec)

	err := suite.handlers.Login(c)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusFound, rec.Code)
	assert.Equal(suite.T(), "/leads", rec.Header().Get(echo.HeaderLocation))

	cookies := rec.Result().Cookies()
	assert.Len(suite.T(), cookies, 1)
	assert.Equal(suite.T(), middleware.SessionCookieName, cookies[0].Name)
	assert.Equal(suite.T(), "signed-token", cookies[0].Value)
	assert.True(suite.T(), cookies[0].HttpOnly)
}

func (suite *AuthHandlersTestSuite) TestLogin_BadCredentialsReRenders() {
	suite.mockAuth.On("Login", mock.Anything, "agent@example.com", "wrong-horse").
		Return("", services.ErrInvalidCredentials)

	form := url.Values{}
	form.Set("email", "agent@example.com")
	form.Set("password", "wrong-horse")

	req := newFormRequest("/login", form.Encode())
	rec := httptest.NewRecorder()
	c := suite.e.NewContext(req, rec)

	err := suite.handlers.Login(c)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), "Please enter a correct email and password.")
	assert.Empty(suite.T(), rec.Result().Cookies())
}

func (suite *AuthHandlersTestSuite) TestLogin_RateLimitedReRenders() {
	suite.mockAuth.On("Login", mock.Anything, "agent@example.com", "correct-horse").
		Return("", services.ErrTooManyAttempts)

	form := url.Values{}
	form.Set("email", "agent@example.com")
	form.Set("password", "correct-horse")

	req := newFormRequest("/login", form.Encode())
	rec := httptest.NewRecorder()
	c := suite.e.NewContext(req, rec)

	err := suite.handlers.Login(c)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), "Too many login attempts.")
}

func (suite *AuthHandlersTestSuite) TestLogout_RevokesAndClearsCookie() {
	suite.mockAuth.On("Logout", mock.Anything, "signed-token").Return(nil)

	req := newFormRequest("/logout", "")
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "signed-token"})
	rec := httptest.NewRecorder()
	c := suite.e.NewContext(req, rec)

	err := suite.handlers.Logout(c)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusFound, rec.Code)
	assert.Equal(suite.T(), "/", rec.Header().Get(echo.HeaderLocation))

	cookies := rec.Result().Cookies()
	assert.Len(suite.T(), cookies, 1)
	assert.Empty(suite.T(), cookies[0].Value)
	assert.Negative(suite.T(), cookies[0].MaxAge)
}

func (suite *AuthHandlersTestSuite) TestLogout_NoCookieStillRedirects() {
	req := newFormRequest("/logout", "")
	rec := httptest.NewRecorder()
	c := suite.e.NewContext(req, rec)

	err := suite.handlers.Logout(c)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusFound, rec.Code)
	suite.mockAuth.AssertNotCalled(suite.T(), "Logout")
}
