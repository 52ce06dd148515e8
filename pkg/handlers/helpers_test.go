package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"user-org-backend/pkg/config"
	"user-org-backend/pkg/database"
	"user-org-backend/pkg/models"
	"user-org-backend/pkg/server"
)

// envelope matches both the success and error response shapes.
type envelope struct {
	Status     string              `json:"status"`
	Message    string              `json:"message"`
	StatusCode int                 `json:"statusCode"`
	Data       json.RawMessage     `json:"data"`
	Errors     []models.FieldError `json:"errors"`
}

func testConfig() *config.Config {
	return &config.Config{
		Environment:      "development",
		Port:             "3000",
		JWTSecret:        "test-secret",
		JWTExpiry:        time.Hour,
		UserAccessPolicy: "overlap",
		AllowedOrigins:   []string{"*"},
	}
}

// newTestServer builds the real router over an in-memory store.
func newTestServer(t *testing.T, cfg *config.Config) (http.Handler, database.Store) {
	t.Helper()
	if cfg == nil {
		cfg = testConfig()
	}
	store := database.NewMemoryStore()
	return server.NewRouter(cfg, store), store
}

// doJSON performs a request against the router. token may be empty.
func doJSON(t *testing.T, h http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// doRaw sends a request with an explicit content type and raw body.
func doRaw(t *testing.T, h http.Handler, method, path, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	return env
}

// registerUser registers through the API and returns the token and user.
func registerUser(t *testing.T, h http.Handler, firstName, lastName, email string) (string, models.User) {
	t.Helper()

	rec := doJSON(t, h, http.MethodPost, "/auth/register", "", models.RegisterRequest{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  "Test123$",
	})
	require.Equal(t, http.StatusCreated, rec.Code, "register %s: %s", email, rec.Body.String())

	var data models.AuthResponse
	env := decodeEnvelope(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.AccessToken)
	require.NotNil(t, data.User)
	return data.AccessToken, *data.User
}

// listOrganisations fetches the caller's organisation union.
func listOrganisations(t *testing.T, h http.Handler, token string) []models.Organisation {
	t.Helper()

	rec := doJSON(t, h, http.MethodGet, "/api/organisations", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	env := decodeEnvelope(t, rec)
	var data struct {
		Organisations []models.Organisation `json:"organisations"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return data.Organisations
}
