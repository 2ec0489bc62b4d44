package handlers_test

import (
	"net/http"
	"testing"

	"github.com/guru-bharadwaj20/Team-Dashboard/internal/api/dto"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthHandler_Register(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name       string
		body       map[string]any
		wantStatus int
		wantField  string
	}{
		{
			name:       "valid registration",
			body:       map[string]any{"name": "Ada", "email": "ada@example.com", "password": "secret1"},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "duplicate email",
			body:       map[string]any{"name": "Ada", "email": "ADA@example.com", "password": "secret1"},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "short password",
			body:       map[string]any{"name": "Bob", "email": "bob@example.com", "password": "12345"},
			wantStatus: http.StatusBadRequest,
			wantField:  "password",
		},
		{
			name:       "invalid email",
			body:       map[string]any{"name": "Bob", "email": "not-an-email", "password": "secret1"},
			wantStatus: http.StatusBadRequest,
			wantField:  "email",
		},
		{
			name:       "blank name",
			body:       map[string]any{"name": "   ", "email": "blank@example.com", "password": "secret1"},
			wantStatus: http.StatusBadRequest,
			wantField:  "name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(testutil.UnauthenticatedRequest(t, "POST", "/auth/register", tt.body))
			testutil.AssertStatus(t, rec, tt.wantStatus)

			if tt.wantStatus == http.StatusCreated {
				var resp dto.AuthResponse
				testutil.ParseJSONResponse(t, rec, &resp)
				assert.NotEmpty(t, resp.Token)
				assert.Equal(t, "ada@example.com", resp.User.Email)
				assert.Equal(t, "Ada", resp.User.Name)
			}
			if tt.wantField != "" {
				var resp dto.ErrorResponse
				testutil.ParseJSONResponse(t, rec, &resp)
				assert.Equal(t, "Validation failed", resp.Error)
				assert.Contains(t, resp.Details, tt.wantField)
			}
		})
	}
}

func TestAuthHandler_Register_MalformedBody(t *testing.T) {
	f := newFixture(t)

	req := testutil.UnauthenticatedRequest(t, "POST", "/auth/register", nil)
	req.Body = http.NoBody
	rec := f.do(req)

	testutil.AssertStatus(t, rec, http.StatusBadRequest)
	var resp dto.ErrorResponse
	testutil.ParseJSONResponse(t, rec, &resp)
	assert.Equal(t, "Invalid request body", resp.Error)
}

func TestAuthHandler_Login(t *testing.T) {
	f := newFixture(t)

	rec := f.do(testutil.UnauthenticatedRequest(t, "POST", "/auth/login", map[string]any{
		"email": f.User.Email, "password": "testpassword123",
	}))
	testutil.AssertStatus(t, rec, http.StatusOK)
	var resp dto.AuthResponse
	testutil.ParseJSONResponse(t, rec, &resp)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, f.User.ID.String(), resp.User.ID)

	rec = f.do(testutil.UnauthenticatedRequest(t, "POST", "/auth/login", map[string]any{
		"email": f.User.Email, "password": "wrong-password",
	}))
	testutil.AssertStatus(t, rec, http.StatusUnauthorized)

	rec = f.do(testutil.UnauthenticatedRequest(t, "POST", "/auth/login", map[string]any{
		"email": "nobody@example.com", "password": "testpassword123",
	}))
	testutil.AssertStatus(t, rec, http.StatusUnauthorized)
}

func TestAuthHandler_Profile(t *testing.T) {
	f := newFixture(t)

	rec := f.do(testutil.AuthenticatedRequest(t, "GET", "/me", nil, f.Token))
	testutil.AssertStatus(t, rec, http.StatusOK)
	var me dto.UserDTO
	testutil.ParseJSONResponse(t, rec, &me)
	assert.Equal(t, f.User.Email, me.Email)

	rec = f.do(testutil.AuthenticatedRequest(t, "PUT", "/me", map[string]any{"name": "Renamed"}, f.Token))
	testutil.AssertStatus(t, rec, http.StatusOK)
	testutil.ParseJSONResponse(t, rec, &me)
	assert.Equal(t, "Renamed", me.Name)
	assert.Equal(t, f.User.Email, me.Email)

	other, _ := f.secondUser(t, "Other")
	rec = f.do(testutil.AuthenticatedRequest(t, "PUT", "/me", map[string]any{"email": other.Email}, f.Token))
	testutil.AssertStatus(t, rec, http.StatusConflict)

	rec = f.do(testutil.UnauthenticatedRequest(t, "GET", "/me", nil))
	testutil.AssertStatus(t, rec, http.StatusUnauthorized)
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	f := newFixture(t)

	rec := f.do(testutil.AuthenticatedRequest(t, "PUT", "/me/password", map[string]any{
		"currentPassword": "not-it", "newPassword": "brand-new-pass",
	}, f.Token))
	testutil.AssertStatus(t, rec, http.StatusBadRequest)

	rec = f.do(testutil.AuthenticatedRequest(t, "PUT", "/me/password", map[string]any{
		"currentPassword": "testpassword123", "newPassword": "brand-new-pass",
	}, f.Token))
	testutil.AssertStatus(t, rec, http.StatusOK)

	rec = f.do(testutil.UnauthenticatedRequest(t, "POST", "/auth/login", map[string]any{
		"email": f.User.Email, "password": "brand-new-pass",
	}))
	testutil.AssertStatus(t, rec, http.StatusOK)
}

func TestAuthHandler_DeleteAccount(t *testing.T) {
	f := newFixture(t)
	team := f.createTeam(t, f.Token, "Doomed")

	rec := f.do(testutil.AuthenticatedRequest(t, "DELETE", "/me", nil, f.Token))
	testutil.AssertStatus(t, rec, http.StatusNoContent)

	// The token is still well-formed but the account is gone.
	rec = f.do(testutil.AuthenticatedRequest(t, "GET", "/me", nil, f.Token))
	testutil.AssertStatus(t, rec, http.StatusNotFound)

	_, token := f.secondUser(t, "Witness")
	rec = f.do(testutil.AuthenticatedRequest(t, "GET", "/teams/"+team.ID.String(), nil, token))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
