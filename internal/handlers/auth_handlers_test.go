package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	load := map[string]string{"email": "new@email.com", "password": "password"}

	rec := env.doJSONRequest(http.MethodPost, "/api/auth/register", load)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.doJSONRequest(http.MethodPost, "/api/auth/register", load)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = env.doJSONRequest(http.MethodPost, "/api/auth/login", load)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		IsAdmin      bool   `json:"is_admin"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)
	require.False(t, resp.IsAdmin)

	claims, err := env.Tokens.ParseAccess(resp.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "new@email.com", claims["email"])
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)

	load := map[string]string{"email": "new@email.com", "password": "password"}
	rec := env.doJSONRequest(http.MethodPost, "/api/auth/register", load)
	require.Equal(t, http.StatusCreated, rec.Code)

	load["password"] = "wrong"
	rec = env.doJSONRequest(http.MethodPost, "/api/auth/login", load)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	env := newTestEnv(t)

	load := map[string]string{"email": "new@email.com", "password": "password"}
	rec := env.doJSONRequest(http.MethodPost, "/api/auth/register", load)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.doJSONRequest(http.MethodPost, "/api/auth/login", load)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	ck := &http.Cookie{Name: "refreshToken", Value: resp.RefreshToken, Path: "/"}
	rec = env.doJSONRequest(http.MethodPost, "/api/auth/logout", nil, ck)
	require.Equal(t, http.StatusOK, rec.Code)

	_, err := env.Tokens.ValidateRefresh(context.Background(), resp.RefreshToken)
	require.Error(t, err)
}
