package httpapi

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"employee-management-api/internal/config"
	"employee-management-api/internal/db/dbtest"
	"employee-management-api/internal/security"
	"employee-management-api/internal/service"
	"employee-management-api/internal/store"
)

// newSeededServer wires the real services over the bundled fixture.
func newSeededServer(t *testing.T) *httptest.Server {
	t.Helper()

	database := dbtest.OpenSeeded(t)
	tokens := security.NewTokenManager(config.JWTConfig{
		Secret:     "0123456789abcdef0123456789abcdef",
		Issuer:     "EmployeeManagementAPI",
		Audience:   "EmployeeManagementClient",
		Expiration: time.Hour,
	})

	handler := NewHandler(
		service.NewEmployeeService(store.NewEmployeeStore(database)),
		service.NewAuthService(store.NewUserStore(database), tokens),
		tokens,
		log.New(io.Discard, "", 0),
	)

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func call(t *testing.T, server *httptest.Server, method, path, token, body string) (*http.Response, map[string]interface{}) {
	t.Helper()

	req, err := http.NewRequest(method, server.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var payload map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &payload))
	}
	return resp, payload
}

func login(t *testing.T, server *httptest.Server) string {
	t.Helper()

	resp, payload := call(t, server, http.MethodPost, "/api/auth/login", "", `{"username":"admin","password":"admin123"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	token, _ := payload["token"].(string)
	require.NotEmpty(t, token)

	expiresAt, err := time.Parse(time.RFC3339, payload["expiresAt"].(string))
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))
	return token
}

func TestSeededScenario(t *testing.T) {
	server := newSeededServer(t)
	token := login(t, server)

	resp, payload := call(t, server, http.MethodGet, "/api/employees/4", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), payload["subordinatesCount"])

	resp, payload = call(t, server, http.MethodGet, "/api/employees/2", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(6), payload["subordinatesCount"])

	resp, payload = call(t, server, http.MethodPost, "/api/employees", token, `{"name":"Jane Doe","email":"jane@x.com"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, float64(0), payload["subordinatesCount"])
	location := resp.Header.Get("Location")
	require.NotEmpty(t, location)

	resp, payload = call(t, server, http.MethodGet, location, token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Jane Doe", payload["name"])
}

func TestSeededLoginFailuresAreIndistinguishable(t *testing.T) {
	server := newSeededServer(t)

	wrongResp, wrongPassword := call(t, server, http.MethodPost, "/api/auth/login", "", `{"username":"admin","password":"wrong"}`)
	unknownResp, unknownUser := call(t, server, http.MethodPost, "/api/auth/login", "", `{"username":"ghost","password":"admin123"}`)

	assert.Equal(t, http.StatusUnauthorized, wrongResp.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, unknownResp.StatusCode)
	assert.Equal(t, wrongPassword, unknownUser)
}

func TestSeededUpdateFlows(t *testing.T) {
	server := newSeededServer(t)
	token := login(t, server)

	resp, _ := call(t, server, http.MethodPut, "/api/employees/3", token, `{"id":3,"name":"Sarah Johnson","email":"sarah.johnson@company.com","supervisorId":5}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "cycle through a subordinate")

	resp, _ = call(t, server, http.MethodPut, "/api/employees/3", token, `{"id":3,"name":"Sarah Johnson","email":"sarah.johnson@company.com","supervisorId":999}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = call(t, server, http.MethodPut, "/api/employees/999", token, `{"id":999,"name":"Nobody","email":"nobody@company.com"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, payload := call(t, server, http.MethodPut, "/api/employees/8", token, `{"id":8,"name":"Robert Taylor","email":"robert.taylor@company.com","supervisorId":4}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(4), payload["supervisorId"])

	resp, payload = call(t, server, http.MethodGet, "/api/employees/4", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(3), payload["subordinatesCount"])
}

func TestSeededListRequiresToken(t *testing.T) {
	server := newSeededServer(t)

	resp, payload := call(t, server, http.MethodGet, "/api/employees", "", "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, float64(http.StatusUnauthorized), payload["statusCode"])

	token := login(t, server)
	req, err := http.NewRequest(http.MethodGet, server.URL+"/api/employees", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	listResp, err := server.Client().Do(req)
	require.NoError(t, err)
	defer listResp.Body.Close()

	var list []service.EmployeeSummaryDTO
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&list))
	require.Len(t, list, 7)
	assert.Equal(t, "David Wilson", list[0].Name)
}
