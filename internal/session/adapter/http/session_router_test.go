package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	sessionhttp "session-guard/internal/session/adapter/http"
	"session-guard/internal/session/adapter/security"
	"session-guard/internal/session/config"
	"session-guard/internal/session/testutil"
	"session-guard/internal/session/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type SessionRouterTestSuite struct {
	suite.Suite
	app      *fiber.App
	config   *config.Config
	sealer   *testutil.CookieSealer
	fixtures *testutil.SessionFixture
}

func (suite *SessionRouterTestSuite) SetupTest() {
	suite.config = testutil.TestConfig()
	suite.sealer = testutil.NewCookieSealer(suite.T(), suite.config)
	suite.fixtures = testutil.NewSessionFixture()

	cipher, err := security.NewCookieCipher(suite.config)
	require.NoError(suite.T(), err)

	mw := sessionhttp.NewSessionMiddleware(usecase.NewSessionExtractor(suite.config.CookieName, nil))
	handler := sessionhttp.NewSessionHTTPHandler(mw)

	suite.app = fiber.New()
	suite.app.Use(cipher.Middleware())
	handler.SetupSessionRoutes(suite.app.Group(suite.config.APIPrefix))
}

func (suite *SessionRouterTestSuite) get(path, cookie string) *http.Response {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	resp, err := suite.app.Test(req)
	require.NoError(suite.T(), err)
	return resp
}

func (suite *SessionRouterTestSuite) TestGetCurrentSession_Success() {
	// Arrange
	payload := `{"id":42,"email":"a@b.com","auth_key":"tok123","issued_at":1700000000}`
	cookie := suite.sealer.Header(suite.T(), "session", payload)

	// Act
	resp := suite.get("/api/v1/session", cookie)

	// Assert
	require.Equal(suite.T(), http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(suite.T(), json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(suite.T(), float64(42), body["id"])
	assert.Equal(suite.T(), "a@b.com", body["email"])
	assert.Equal(suite.T(), float64(1700000000), body["issued_at"])
	_, leaked := body["auth_key"]
	assert.False(suite.T(), leaked)
}

func (suite *SessionRouterTestSuite) TestGetCurrentSession_NoCookie() {
	resp := suite.get("/api/v1/session", "")

	assert.Equal(suite.T(), http.StatusUnauthorized, resp.StatusCode)
}

func (suite *SessionRouterTestSuite) TestGetCurrentSession_IDTypeMismatch() {
	payload := `{"id":"not-a-number","email":"a@b.com","auth_key":"x","issued_at":1}`

	resp := suite.get("/api/v1/session", suite.sealer.Header(suite.T(), "session", payload))

	assert.Equal(suite.T(), http.StatusUnauthorized, resp.StatusCode)
}

func (suite *SessionRouterTestSuite) TestGetSessionStatus() {
	valid := suite.sealer.Header(suite.T(), "session", suite.fixtures.Payload(suite.T(), suite.fixtures.ValidSession()))

	resp := suite.get("/api/v1/session/status", valid)
	require.Equal(suite.T(), http.StatusOK, resp.StatusCode)
	var present struct {
		Present bool                        `json:"present"`
		Session sessionhttp.SessionResponse `json:"session"`
	}
	require.NoError(suite.T(), json.NewDecoder(resp.Body).Decode(&present))
	assert.True(suite.T(), present.Present)
	assert.Equal(suite.T(), int32(42), present.Session.ID)

	resp = suite.get("/api/v1/session/status", "")
	require.Equal(suite.T(), http.StatusOK, resp.StatusCode)
	var absent map[string]interface{}
	require.NoError(suite.T(), json.NewDecoder(resp.Body).Decode(&absent))
	assert.Equal(suite.T(), map[string]interface{}{"present": false}, absent)
}

func TestSessionRouterTestSuite(t *testing.T) {
	suite.Run(t, new(SessionRouterTestSuite))
}
