package httpserver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waysgoods/inventory/pkg/tokens"
)

func TestLogin_Success(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("admin@gmail.com", "12345", "admin")

	rec := env.do(env.jsonRequest(http.MethodPost, "/login", map[string]string{
		"email":    "admin@gmail.com",
		"password": "12345",
	}, ""))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.Equal(t, "Success", resp["status"])
	assert.Equal(t, "Login successful", resp["message"])

	data := resp["data"].(map[string]any)
	assert.EqualValues(t, user.ID, data["id"])
	assert.Equal(t, "admin@gmail.com", data["email"])
	assert.Equal(t, "admin", data["role"])
	assert.NotContains(t, data, "password")

	// the token must decode back to the stored identity
	claims, err := tokens.AccessClaimsFromToken(data["token"].(string), env.secret)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)
	assert.Equal(t, "admin", claims.Role)
}

func TestLogin_UniformFailureResponse(t *testing.T) {
	env := newTestEnv(t)
	env.createUser("admin@gmail.com", "12345", "admin")

	recWrongPassword := env.do(env.jsonRequest(http.MethodPost, "/login", map[string]string{
		"email":    "admin@gmail.com",
		"password": "wrong",
	}, ""))
	recUnknownEmail := env.do(env.jsonRequest(http.MethodPost, "/login", map[string]string{
		"email":    "nobody@gmail.com",
		"password": "12345",
	}, ""))

	require.Equal(t, http.StatusBadRequest, recWrongPassword.Code)
	require.Equal(t, http.StatusBadRequest, recUnknownEmail.Code)
	assert.Equal(t, recWrongPassword.Body.String(), recUnknownEmail.Body.String())

	resp := decodeEnvelope(t, recWrongPassword)
	assert.Equal(t, "Failed", resp["status"])
	assert.Equal(t, "Email or Password is incorrect", resp["message"])
}

func TestLogin_Validation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		body map[string]string
	}{
		{name: "missing email", body: map[string]string{"password": "12345"}},
		{name: "bad email format", body: map[string]string{"email": "not-an-email", "password": "12345"}},
		{name: "missing password", body: map[string]string{"email": "admin@gmail.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(env.jsonRequest(http.MethodPost, "/login", tt.body, ""))
			require.Equal(t, http.StatusBadRequest, rec.Code)
			resp := decodeEnvelope(t, rec)
			assert.Equal(t, "Failed", resp["status"])
			assert.NotEmpty(t, resp["message"])
		})
	}
}

func TestCheckAuth(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("admin@gmail.com", "12345", "admin")
	token := env.tokenFor(user)

	rec := env.do(env.jsonRequest(http.MethodGet, "/check-auth", nil, token))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeEnvelope(t, rec)
	assert.Equal(t, "Success", resp["status"])
	got := resp["data"].(map[string]any)["user"].(map[string]any)
	assert.Equal(t, "admin@gmail.com", got["email"])
	assert.Equal(t, "admin", got["role"])
	assert.NotContains(t, got, "password")
}

func TestCheckAuth_UserGone(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("admin@gmail.com", "12345", "admin")
	token := env.tokenFor(user)

	require.NoError(t, env.db.Delete(&user).Error)

	rec := env.do(env.jsonRequest(http.MethodGet, "/check-auth", nil, token))
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Failed", decodeEnvelope(t, rec)["status"])
}

func TestCheckAuth_Unauthorized(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(env.jsonRequest(http.MethodGet, "/check-auth", nil, ""))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(env.jsonRequest(http.MethodGet, "/check-auth", nil, "garbage-token"))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Failed", decodeEnvelope(t, rec)["status"])
}
