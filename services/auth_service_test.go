package services_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sportconnect-backend/models"
)

func TestRegisterSuccess(t *testing.T) {
	app, db, _ := newTestApp(t)

	resp := request(t, app, http.MethodPost, "/api/auth/register", map[string]string{
		"username":         "alice",
		"email":            "alice@example.com",
		"password":         "strong-and-long",
		"password_confirm": "strong-and-long",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body map[string]interface{}
	decode(t, resp, &body)
	assert.Equal(t, "alice", body["username"])
	// The hash never appears in output, under any name.
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "password_hash")

	var stored models.User
	require.NoError(t, db.Where("username = ?", "alice").First(&stored).Error)
	assert.NotEqual(t, "strong-and-long", stored.PasswordHash)
}

func TestRegisterValidationFailures(t *testing.T) {
	app, db, _ := newTestApp(t)
	createUser(t, db, "taken", false)

	cases := []struct {
		name      string
		body      map[string]string
		wantField string
	}{
		{
			"short password",
			map[string]string{"username": "u1", "password": "abc", "password_confirm": "abc"},
			"password",
		},
		{
			"confirm mismatch",
			map[string]string{"username": "u2", "password": "strong-and-long", "password_confirm": "different-one"},
			"password_confirm",
		},
		{
			"taken username",
			map[string]string{"username": "taken", "password": "strong-and-long", "password_confirm": "strong-and-long"},
			"username",
		},
		{
			"numeric password",
			map[string]string{"username": "u3", "password": "1234567890", "password_confirm": "1234567890"},
			"password",
		},
		{
			"password similar to username",
			map[string]string{"username": "christopher", "password": "christopher1", "password_confirm": "christopher1"},
			"password",
		},
		{
			"common password",
			map[string]string{"username": "u4", "password": "password123", "password_confirm": "password123"},
			"password",
		},
		{
			"missing username",
			map[string]string{"password": "strong-and-long", "password_confirm": "strong-and-long"},
			"username",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := request(t, app, http.MethodPost, "/api/auth/register", tc.body, "")
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var body struct {
				Errors map[string][]string `json:"errors"`
			}
			decode(t, resp, &body)
			assert.NotEmpty(t, body.Errors[tc.wantField])
		})
	}
}

func TestIssueToken(t *testing.T) {
	app, db, _ := newTestApp(t)
	createUser(t, db, "alice", false)

	resp := request(t, app, http.MethodPost, "/api/auth/token", map[string]string{
		"username": "alice",
		"password": testPassword,
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var pair struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	decode(t, resp, &pair)
	assert.NotEmpty(t, pair.Access)
	assert.NotEmpty(t, pair.Refresh)

	// The access token works against a protected endpoint.
	me := request(t, app, http.MethodGet, "/api/users/me", nil, pair.Access)
	assert.Equal(t, http.StatusOK, me.StatusCode)
}

func TestIssueTokenBadCredentials(t *testing.T) {
	app, db, _ := newTestApp(t)
	createUser(t, db, "alice", false)

	resp := request(t, app, http.MethodPost, "/api/auth/token", map[string]string{
		"username": "alice",
		"password": "wrong-password",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = request(t, app, http.MethodPost, "/api/auth/token", map[string]string{
		"username": "nobody",
		"password": testPassword,
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRefreshRotation(t *testing.T) {
	app, db, _ := newTestApp(t)
	createUser(t, db, "alice", false)

	resp := request(t, app, http.MethodPost, "/api/auth/token", map[string]string{
		"username": "alice",
		"password": testPassword,
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var first struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	decode(t, resp, &first)

	// Refresh rotates: a new pair comes back.
	resp = request(t, app, http.MethodPost, "/api/auth/token/refresh",
		map[string]string{"refresh": first.Refresh}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var second struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	decode(t, resp, &second)
	assert.NotEmpty(t, second.Refresh)
	assert.NotEqual(t, first.Refresh, second.Refresh)

	// The consumed token is dead.
	resp = request(t, app, http.MethodPost, "/api/auth/token/refresh",
		map[string]string{"refresh": first.Refresh}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Exactly one live refresh row remains for the user.
	var count int64
	require.NoError(t, db.Model(&models.RefreshToken{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRefreshUnknownToken(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp := request(t, app, http.MethodPost, "/api/auth/token/refresh",
		map[string]string{"refresh": "not-a-token"}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
