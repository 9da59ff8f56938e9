package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mpalani/payflow/internal/domain"
	"github.com/mpalani/payflow/internal/engine"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	h := NewHandler(engine.New(), zap.NewNop())
	srv := httptest.NewServer(NewRouter(h))
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, srv *httptest.Server, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+"/api/v1/transactions", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func get(t *testing.T, srv *httptest.Server, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(t)
	resp := get(t, srv, "/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSubmitDepositAndReadBack(t *testing.T) {
	srv := newTestServer(t)

	resp := post(t, srv, `{"type":"deposit","client":1,"tx":1,"amount":"10.5"}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = get(t, srv, "/api/v1/accounts/1")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var s domain.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&s))
	assert.Equal(t, uint16(1), s.Client)
	assert.Equal(t, "10.5000", s.Available)
	assert.Equal(t, "10.5000", s.Total)
	assert.False(t, s.Locked)
}

func TestSubmitAcceptsNumericAmount(t *testing.T) {
	srv := newTestServer(t)
	resp := post(t, srv, `{"type":"deposit","client":1,"tx":1,"amount":2.5}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestSubmitMalformedBody(t *testing.T) {
	srv := newTestServer(t)
	resp := post(t, srv, `{"type":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSubmitUnknownType(t *testing.T) {
	srv := newTestServer(t)
	resp := post(t, srv, `{"type":"transfer","client":1,"tx":1,"amount":"1"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSubmitErrorStatuses(t *testing.T) {
	srv := newTestServer(t)

	// Seed a deposit, then exercise each rejection path.
	resp := post(t, srv, `{"type":"deposit","client":1,"tx":1,"amount":"10"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	cases := []struct {
		name string
		body string
		want int
	}{
		{"duplicate deposit", `{"type":"deposit","client":1,"tx":1,"amount":"5"}`, http.StatusConflict},
		{"missing amount", `{"type":"deposit","client":1,"tx":2}`, http.StatusUnprocessableEntity},
		{"invalid amount", `{"type":"deposit","client":1,"tx":2,"amount":"-1"}`, http.StatusUnprocessableEntity},
		{"insufficient funds", `{"type":"withdrawal","client":1,"tx":3,"amount":"99"}`, http.StatusUnprocessableEntity},
		{"dispute unknown tx", `{"type":"dispute","client":1,"tx":999}`, http.StatusNotFound},
		{"resolve not disputed", `{"type":"resolve","client":1,"tx":1}`, http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := post(t, srv, tc.body)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}

func TestChargebackFreezesAccountOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	for _, body := range []string{
		`{"type":"deposit","client":1,"tx":1,"amount":"10"}`,
		`{"type":"dispute","client":1,"tx":1}`,
		`{"type":"chargeback","client":1,"tx":1}`,
	} {
		resp := post(t, srv, body)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp := post(t, srv, `{"type":"deposit","client":1,"tx":2,"amount":"5"}`)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = get(t, srv, "/api/v1/accounts/1")
	var s domain.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&s))
	assert.True(t, s.Locked)
	assert.Equal(t, "0.0000", s.Total)
}

func TestListAccountsSorted(t *testing.T) {
	srv := newTestServer(t)

	for _, body := range []string{
		`{"type":"deposit","client":9,"tx":1,"amount":"1"}`,
		`{"type":"deposit","client":3,"tx":2,"amount":"2"}`,
	} {
		resp := post(t, srv, body)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp := get(t, srv, "/api/v1/accounts")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var snapshots []domain.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snapshots))
	require.Len(t, snapshots, 2)
	assert.Equal(t, uint16(3), snapshots[0].Client)
	assert.Equal(t, uint16(9), snapshots[1].Client)
}

func TestGetAccountNotFound(t *testing.T) {
	srv := newTestServer(t)
	resp := get(t, srv, "/api/v1/accounts/42")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetAccountBadID(t *testing.T) {
	srv := newTestServer(t)
	resp := get(t, srv, "/api/v1/accounts/abc")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
