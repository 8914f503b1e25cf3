package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/studyhub/internal/app/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL})
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func TestClient_SignInKeepsToken(t *testing.T) {
	var authHeader string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/sign-in":
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			assert.Equal(t, "ada@uni.edu", body["email"])
			writeJSON(w, http.StatusOK, `{"data":{"session":{"accessToken":"tok-1","tokenType":"bearer","user":{"id":"u1"}},"profileLoaded":false}}`)
		case "/api/v1/me/profile":
			authHeader = r.Header.Get("Authorization")
			writeJSON(w, http.StatusOK, `{"data":{"id":"u1","name":"Ada"}}`)
		default:
			http.NotFound(w, r)
		}
	})

	session, err := c.SignIn(context.Background(), "ada@uni.edu", "secret1")
	require.NoError(t, err)
	assert.False(t, session.ProfileLoaded)
	assert.Equal(t, "tok-1", c.Token())

	profile, err := c.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ada", profile.Name)
	assert.Equal(t, "Bearer tok-1", authHeader)
}

func TestClient_ErrorEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, `{"error":{"code":"AUTH_001","message":"Invalid login credentials","severity":"ERROR","details":{"message":"Invalid login credentials","fields":{"password":"Invalid login credentials"},"values":{"email":"ada@uni.edu"}}}}`)
	})

	_, err := c.SignIn(context.Background(), "ada@uni.edu", "wrong")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "AUTH_001", apiErr.Code)
	assert.Equal(t, "Invalid login credentials", apiErr.Message)
	assert.Equal(t, map[string]string{"password": "Invalid login credentials"}, apiErr.Fields)
	assert.True(t, errors.Is(err, ErrUnauthorized))
	assert.Empty(t, c.Token())
}

func TestClient_ListSendsSearchAndSize(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/notes", r.URL.Path)
		assert.Equal(t, "calc", r.URL.Query().Get("q"))
		assert.Equal(t, "100", r.URL.Query().Get("size"))
		writeJSON(w, http.StatusOK, `{"data":{"items":[{"id":"n1","title":"Calc Notes"}],"pagination":{"currentPage":1,"totalPages":1,"pageSize":100,"totalItems":1}}}`)
	})

	notes, err := List[models.Note](context.Background(), c, "/notes", " calc ")

	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "Calc Notes", notes[0].Title)
}

func TestClient_DeleteAndToast(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodDelete && r.URL.Path == "/api/v1/notes/missing":
			writeJSON(w, http.StatusOK, `{"data":{"id":"missing","removed":false}}`)
		case r.URL.Path == "/api/v1/notifications/toast":
			writeJSON(w, http.StatusOK, `{"data":{"toast":null}}`)
		default:
			http.NotFound(w, r)
		}
	})

	deleted, err := c.Delete(context.Background(), "/notes", "missing")
	require.NoError(t, err)
	assert.False(t, deleted.Removed)

	toast, err := c.Toast(context.Background())
	require.NoError(t, err)
	assert.Nil(t, toast)
}

func TestClient_SignOutForgetsTokenOnError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, `{"error":{"code":"AUTH_004","message":"Session not found","severity":"ERROR"}}`)
	})
	c.SetToken("stale")

	err := c.SignOut(context.Background())

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, c.Token())
}
