package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/mika/reminders-web/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, url string, body map[string]string) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewBuffer(data))
	require.NoError(t, err)
	return resp
}

func TestAuthHandlers_RegisterLoginFlow(t *testing.T) {
	ts := testutil.NewTestServer(t)

	// Register
	resp := postJSON(t, ts.APIURL("/auth/register"), map[string]string{
		"email":    "flow@example.com",
		"password": "password123",
	})
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var registered testutil.AuthResponse
	testutil.AssertJSONResponse(t, resp, &registered)
	assert.Equal(t, "flow@example.com", registered.User.Email)
	assert.NotEmpty(t, registered.AccessToken)

	// Duplicate registration is rejected
	resp = postJSON(t, ts.APIURL("/auth/register"), map[string]string{
		"email":    "flow@example.com",
		"password": "password123",
	})
	testutil.AssertStatusCode(t, resp, http.StatusConflict)

	// Login
	resp = postJSON(t, ts.APIURL("/auth/login"), map[string]string{
		"email":    "flow@example.com",
		"password": "password123",
	})
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var loggedIn testutil.AuthResponse
	testutil.AssertJSONResponse(t, resp, &loggedIn)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)

	// Me
	meReq := testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/auth/me"), nil, loggedIn.AccessToken)
	resp = doRequest(t, meReq)
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var me struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	testutil.AssertJSONResponse(t, resp, &me)
	assert.Equal(t, "flow@example.com", me.Email)

	// Logout
	logoutReq := testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/auth/logout"), nil, loggedIn.AccessToken)
	resp = doRequest(t, logoutReq)
	testutil.AssertStatusCode(t, resp, http.StatusOK)
}

func TestAuthHandlers_LoginErrors(t *testing.T) {
	ts := testutil.NewTestServer(t)
	user, _ := testutil.NewUserBuilder().
		WithPassword("rightpassword").
		BuildAndAuthenticate(t, ts)

	tests := []struct {
		name       string
		body       map[string]string
		wantStatus int
	}{
		{
			name:       "wrong password",
			body:       map[string]string{"email": user.Email, "password": "wrongpassword"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "unknown account",
			body:       map[string]string{"email": "ghost@example.com", "password": "whatever"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed email",
			body:       map[string]string{"email": "not-an-email", "password": "whatever"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing password",
			body:       map[string]string{"email": user.Email},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, ts.APIURL("/auth/login"), tt.body)
			testutil.AssertStatusCode(t, resp, tt.wantStatus)
		})
	}
}

func TestAuthHandlers_MeRequiresToken(t *testing.T) {
	ts := testutil.NewTestServer(t)

	req := testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/auth/me"), nil, "")
	testutil.AssertStatusCode(t, doRequest(t, req), http.StatusUnauthorized)
}
