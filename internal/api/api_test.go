package api_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transferhub/transferhub-go/internal/api"
	"github.com/transferhub/transferhub-go/internal/api/apierr"
	"github.com/transferhub/transferhub-go/internal/api/response"
	"github.com/transferhub/transferhub-go/internal/factory"
	"github.com/transferhub/transferhub-go/internal/services/auth"
	"github.com/transferhub/transferhub-go/internal/storage/memory"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	storage *memory.Storage
	auth    *auth.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	// API tests are integration tests - use production factory with a real clock
	app, err := factory.New(factory.Config{
		AuthConfig: auth.Config{TokenSecret: []byte("api-test-secret")},
	})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		AuthService:     app.AuthService,
		TransferService: app.TransferService,
	})

	return &testServer{
		handler: router,
		storage: app.Storage.(*memory.Storage),
		auth:    app.AuthService,
	}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// formRequest posts form-encoded values, as the token endpoint expects
func (ts *testServer) formRequest(path string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestRegister(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{"username": "alice", "password": "secret123"}
	rr := ts.request(http.MethodPost, "/api/v1/register", body, "")
	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp response.User
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.Username)
	assert.NotEmpty(t, resp.ID)
	assert.NotContains(t, rr.Body.String(), "password")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{"username": "alice", "password": "secret123"}
	rr := ts.request(http.MethodPost, "/api/v1/register", body, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/register", body, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var errResp apierr.ErrorResponse
	err := json.Unmarshal(rr.Body.Bytes(), &errResp)
	require.NoError(t, err)
	assert.Equal(t, apierr.CodeUsernameExists, errResp.Error.Code)
}

func TestRegisterRejectsShortCredentials(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/register", map[string]string{"username": "al", "password": "secret123"}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/register", map[string]string{"username": "alice", "password": "short"}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestTokenFlow(t *testing.T) {
	ts := newTestServer(t)

	registerUser(t, ts, "alice", "secret123")

	rr := ts.formRequest("/api/v1/token", url.Values{
		"username": {"alice"},
		"password": {"secret123"},
	})
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.Token
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.NotEmpty(t, resp.AccessToken)

	// The minted token must be accepted on protected routes
	rr = ts.request(http.MethodGet, "/api/v1/transfers", nil, resp.AccessToken)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestTokenWrongPassword(t *testing.T) {
	ts := newTestServer(t)

	registerUser(t, ts, "alice", "secret123")

	rr := ts.formRequest("/api/v1/token", url.Values{
		"username": {"alice"},
		"password": {"wrongpass"},
	})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Bearer", rr.Header().Get("WWW-Authenticate"))
}

func TestTokenUnknownUser(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.formRequest("/api/v1/token", url.Values{
		"username": {"nobody"},
		"password": {"secret123"},
	})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestUnauthorizedWithoutToken(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/transfers", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Bearer", rr.Header().Get("WWW-Authenticate"))

	rr = ts.request(http.MethodPost, "/api/v1/transfers", validTransferBody(), "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestUnauthorizedWithGarbageToken(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/transfers", nil, "not-a-real-token")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Bearer", rr.Header().Get("WWW-Authenticate"))
}

func TestCreateTransfer(t *testing.T) {
	ts := newTestServer(t)
	token := loginUser(t, ts, "alice", "secret123")

	rr := ts.request(http.MethodPost, "/api/v1/transfers", validTransferBody(), token)
	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp response.Transfer
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Alice Smith", resp.GuestName)
	assert.Equal(t, "scheduled", resp.Status)
	assert.False(t, resp.CreatedAt.IsZero())
}

func TestCreateTransferIgnoresClientStatus(t *testing.T) {
	ts := newTestServer(t)
	token := loginUser(t, ts, "alice", "secret123")

	// A status in the request body has no field to land in; new records
	// always start out scheduled
	body := validTransferBody()
	body["status"] = "completed"
	rr := ts.request(http.MethodPost, "/api/v1/transfers", body, token)
	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp response.Transfer
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "scheduled", resp.Status)
}

func TestCreateTransferValidation(t *testing.T) {
	ts := newTestServer(t)
	token := loginUser(t, ts, "alice", "secret123")

	body := validTransferBody()
	body["guest_name"] = ""
	body["passengers"] = 0
	rr := ts.request(http.MethodPost, "/api/v1/transfers", body, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var errResp apierr.ErrorResponse
	err := json.Unmarshal(rr.Body.Bytes(), &errResp)
	require.NoError(t, err)
	assert.Equal(t, apierr.CodeValidationFailed, errResp.Error.Code)
	assert.ElementsMatch(t, []string{"guest_name", "passengers"}, errResp.Error.Fields)
}

func TestListTransfers(t *testing.T) {
	ts := newTestServer(t)
	token := loginUser(t, ts, "alice", "secret123")

	first := createTransfer(t, ts, token, validTransferBody())
	second := createTransfer(t, ts, token, validTransferBody())

	rr := ts.request(http.MethodGet, "/api/v1/transfers", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var listed []response.Transfer
	err := json.Unmarshal(rr.Body.Bytes(), &listed)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, first.ID, listed[0].ID)
	assert.Equal(t, second.ID, listed[1].ID)
}

func TestListTransfersStatusFilter(t *testing.T) {
	ts := newTestServer(t)
	token := loginUser(t, ts, "alice", "secret123")

	kept := createTransfer(t, ts, token, validTransferBody())
	canceled := createTransfer(t, ts, token, validTransferBody())

	rr := ts.request(http.MethodPatch, "/api/v1/transfers/"+canceled.ID, map[string]string{"status": "canceled"}, token)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/transfers?status=canceled", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var listed []response.Transfer
	err := json.Unmarshal(rr.Body.Bytes(), &listed)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, canceled.ID, listed[0].ID)
	assert.NotEqual(t, kept.ID, listed[0].ID)
}

func TestListTransfersUnknownStatus(t *testing.T) {
	ts := newTestServer(t)
	token := loginUser(t, ts, "alice", "secret123")

	rr := ts.request(http.MethodGet, "/api/v1/transfers?status=bogus", nil, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetTransfer(t *testing.T) {
	ts := newTestServer(t)
	token := loginUser(t, ts, "alice", "secret123")

	created := createTransfer(t, ts, token, validTransferBody())

	rr := ts.request(http.MethodGet, "/api/v1/transfers/"+created.ID, nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.Transfer
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, created.ID, resp.ID)
	assert.Equal(t, "Alice Smith", resp.GuestName)
}

func TestGetTransferNotFound(t *testing.T) {
	ts := newTestServer(t)
	token := loginUser(t, ts, "alice", "secret123")

	// Unknown and malformed ids are indistinguishable to the caller
	rr := ts.request(http.MethodGet, "/api/v1/transfers/0b9bafb7-55a2-42a2-b62c-b483d2a0b970", nil, token)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/transfers/not-a-uuid", nil, token)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUpdateTransferPartialMerge(t *testing.T) {
	ts := newTestServer(t)
	token := loginUser(t, ts, "alice", "secret123")

	created := createTransfer(t, ts, token, validTransferBody())

	body := map[string]any{"room_number": "501", "status": "completed"}
	rr := ts.request(http.MethodPatch, "/api/v1/transfers/"+created.ID, body, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.Transfer
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "501", resp.RoomNumber)
	assert.Equal(t, "completed", resp.Status)
	// Untouched fields survive the patch
	assert.Equal(t, created.GuestName, resp.GuestName)
	assert.Equal(t, created.Destination, resp.Destination)
}

func TestUpdateTransferEmptyPatch(t *testing.T) {
	ts := newTestServer(t)
	token := loginUser(t, ts, "alice", "secret123")

	created := createTransfer(t, ts, token, validTransferBody())

	rr := ts.request(http.MethodPatch, "/api/v1/transfers/"+created.ID, map[string]any{}, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var errResp apierr.ErrorResponse
	err := json.Unmarshal(rr.Body.Bytes(), &errResp)
	require.NoError(t, err)
	assert.Equal(t, apierr.CodeEmptyUpdate, errResp.Error.Code)
}

func TestUpdateTransferInvalidStatus(t *testing.T) {
	ts := newTestServer(t)
	token := loginUser(t, ts, "alice", "secret123")

	created := createTransfer(t, ts, token, validTransferBody())

	rr := ts.request(http.MethodPatch, "/api/v1/transfers/"+created.ID, map[string]string{"status": "bogus"}, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpdateTransferNotFound(t *testing.T) {
	ts := newTestServer(t)
	token := loginUser(t, ts, "alice", "secret123")

	body := map[string]string{"status": "completed"}
	rr := ts.request(http.MethodPatch, "/api/v1/transfers/0b9bafb7-55a2-42a2-b62c-b483d2a0b970", body, token)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDeleteTransfer(t *testing.T) {
	ts := newTestServer(t)
	token := loginUser(t, ts, "alice", "secret123")

	created := createTransfer(t, ts, token, validTransferBody())

	rr := ts.request(http.MethodDelete, "/api/v1/transfers/"+created.ID, nil, token)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	// A second delete reports not found
	rr = ts.request(http.MethodDelete, "/api/v1/transfers/"+created.ID, nil, token)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/transfers/"+created.ID, nil, token)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

// Helper functions

func validTransferBody() map[string]any {
	return map[string]any{
		"guest_name":      "Alice Smith",
		"room_number":     "204",
		"phone_number":    "+15550100",
		"transfer_date":   time.Date(2024, 7, 15, 9, 30, 0, 0, time.UTC),
		"passengers":      2,
		"pickup_location": "Hotel lobby",
		"destination":     "Airport",
		"flight_number":   "BA123",
	}
}

func registerUser(t *testing.T, ts *testServer, username, password string) {
	t.Helper()

	body := map[string]string{"username": username, "password": password}
	rr := ts.request(http.MethodPost, "/api/v1/register", body, "")
	require.Equal(t, http.StatusCreated, rr.Code)
}

func loginUser(t *testing.T, ts *testServer, username, password string) string {
	t.Helper()

	registerUser(t, ts, username, password)

	rr := ts.formRequest("/api/v1/token", url.Values{
		"username": {username},
		"password": {password},
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.Token
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)
	return resp.AccessToken
}

func createTransfer(t *testing.T, ts *testServer, token string, body map[string]any) response.Transfer {
	t.Helper()

	rr := ts.request(http.MethodPost, "/api/v1/transfers", body, token)
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp response.Transfer
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)
	return resp
}
