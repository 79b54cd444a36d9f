package accounts_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veloria/accountd/internal/accounts"
	"github.com/veloria/accountd/internal/events"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	repo := accounts.NewMemoryRepository()
	service := accounts.NewService(repo, accounts.NewBcryptHasher(), events.NopRecorder{})
	handler := accounts.NewHandler(nil, service)

	r := chi.NewRouter()
	handler.MountRoutes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, srv *httptest.Server, method, path, body string) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	res, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = res.Body.Close() })

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&decoded))
	return res, decoded
}

func TestRegisterLoginScenario(t *testing.T) {
	srv := newTestServer(t)

	res, body := doJSON(t, srv, http.MethodPost, "/register",
		`{"username":"ana","email":"a@x.com","password":"pw1"}`)
	assert.Equal(t, http.StatusCreated, res.StatusCode)
	assert.Equal(t, "registration completed", body["message"])

	res, body = doJSON(t, srv, http.MethodPost, "/login",
		`{"email":"a@x.com","password":"pw1"}`)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	user, ok := body["user"].(map[string]any)
	require.True(t, ok, "login response carries a user object")
	assert.Equal(t, "ana", user["username"])
	assert.Equal(t, "a@x.com", user["email"])
	assert.Equal(t, float64(1), user["id"])
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "passwordHash")

	res, body = doJSON(t, srv, http.MethodPost, "/login",
		`{"email":"a@x.com","password":"wrong"}`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "wrong password", body["message"])

	res, body = doJSON(t, srv, http.MethodPost, "/register",
		`{"username":"other","email":"a@x.com","password":"pw2"}`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "username or email already registered", body["message"])
}

func TestLoginUnknownEmail(t *testing.T) {
	srv := newTestServer(t)

	res, body := doJSON(t, srv, http.MethodPost, "/login",
		`{"email":"nobody@x.com","password":"pw"}`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "email not found", body["message"])
}

func TestRegisterValidation(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing username", `{"email":"a@x.com","password":"pw"}`},
		{"missing password", `{"username":"ana","email":"a@x.com"}`},
		{"malformed email", `{"username":"ana","email":"not-an-email","password":"pw"}`},
		{"malformed body", `{"username":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, _ := doJSON(t, srv, http.MethodPost, "/register", tt.body)
			assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		})
	}
}

func TestListUsersNeverExposesPasswords(t *testing.T) {
	srv := newTestServer(t)

	res, _ := doJSON(t, srv, http.MethodPost, "/register",
		`{"username":"ana","email":"a@x.com","password":"pw1"}`)
	require.Equal(t, http.StatusCreated, res.StatusCode)

	listRes, err := srv.Client().Get(srv.URL + "/users")
	require.NoError(t, err)
	defer listRes.Body.Close()
	assert.Equal(t, http.StatusOK, listRes.StatusCode)

	var raw json.RawMessage
	require.NoError(t, json.NewDecoder(listRes.Body).Decode(&raw))
	assert.NotContains(t, strings.ToLower(string(raw)), "password")

	var users []map[string]any
	require.NoError(t, json.Unmarshal(raw, &users))
	require.Len(t, users, 1)
	assert.Equal(t, "ana", users[0]["username"])
}

func TestUpdateProfileEndpoint(t *testing.T) {
	srv := newTestServer(t)

	res, _ := doJSON(t, srv, http.MethodPost, "/register",
		`{"username":"ana","email":"a@x.com","password":"pw1"}`)
	require.Equal(t, http.StatusCreated, res.StatusCode)

	res, body := doJSON(t, srv, http.MethodPut, "/updateProfile/99",
		`{"username":"ana","oldPassword":"pw1"}`)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "user not found", body["message"])

	res, body = doJSON(t, srv, http.MethodPut, "/updateProfile/1",
		`{"username":"ana","oldPassword":"wrong"}`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "wrong old password", body["message"])

	res, _ = doJSON(t, srv, http.MethodPut, "/updateProfile/not-a-number",
		`{"username":"ana","oldPassword":"pw1"}`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, body = doJSON(t, srv, http.MethodPut, "/updateProfile/1",
		`{"username":"ana maria","oldPassword":"pw1","newPassword":"pw2"}`)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "profile updated", body["message"])

	res, _ = doJSON(t, srv, http.MethodPost, "/login",
		`{"email":"a@x.com","password":"pw2"}`)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestDeleteAccountEndpoint(t *testing.T) {
	srv := newTestServer(t)

	res, _ := doJSON(t, srv, http.MethodPost, "/register",
		`{"username":"ana","email":"a@x.com","password":"pw1"}`)
	require.Equal(t, http.StatusCreated, res.StatusCode)

	res, body := doJSON(t, srv, http.MethodDelete, "/deleteAccount/1", "")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "account deleted", body["message"])

	res, body = doJSON(t, srv, http.MethodDelete, "/deleteAccount/1", "")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "user not found", body["message"])

	res, _ = doJSON(t, srv, http.MethodPost, "/login",
		`{"email":"a@x.com","password":"pw1"}`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}
