package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCEPEnv(upstream http.HandlerFunc) (*echo.Echo, *httptest.Server) {
	srv := httptest.NewServer(upstream)
	h := &CEPHandler{BaseURL: srv.URL, Client: &http.Client{Timeout: 2 * time.Second}}

	e := echo.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(false)
	e.GET("/api/v1/utils/cep", h.Get)
	return e, srv
}

func TestCEPLookupSuccess(t *testing.T) {
	e, srv := newCEPEnv(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/cep/v1/01001000", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"cep":"01001000","state":"SP","city":"São Paulo","street":"Praça da Sé","service":"test"}`))
	})
	defer srv.Close()

	rec := doJSON(e, http.MethodGet, "/api/v1/utils/cep?cep=01001000", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["updated_at"])
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "01001000", data["cep"])
	assert.Equal(t, "SP", data["state"])
}

func TestCEPRequiresParameter(t *testing.T) {
	e, srv := newCEPEnv(func(http.ResponseWriter, *http.Request) {
		t.Fatal("upstream must not be called")
	})
	defer srv.Close()

	rec := doJSON(e, http.MethodGet, "/api/v1/utils/cep", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"CEP is required"}`, rec.Body.String())
}

func TestCEPUpstreamNonJSON(t *testing.T) {
	e, srv := newCEPEnv(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>gateway timeout</html>"))
	})
	defer srv.Close()

	rec := doJSON(e, http.MethodGet, "/api/v1/utils/cep?cep=99999999", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	errObj, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "The API returned an invalid response or the CEP is invalid.", errObj["message"])
}

func TestCEPUpstreamErrorsPayload(t *testing.T) {
	e, srv := newCEPEnv(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Todos os serviços de CEP retornaram erro.","errors":[{"name":"CepPromiseError"}]}`))
	})
	defer srv.Close()

	rec := doJSON(e, http.MethodGet, "/api/v1/utils/cep?cep=00000000", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	errObj, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Todos os serviços de CEP retornaram erro.", errObj["message"])
	assert.NotEmpty(t, errObj["errors"])
}

func TestCEPUpstreamUnreachable(t *testing.T) {
	e, srv := newCEPEnv(func(http.ResponseWriter, *http.Request) {})
	srv.Close() // upstream already gone

	rec := doJSON(e, http.MethodGet, "/api/v1/utils/cep?cep=01001000", "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "ServiceError", decodeError(t, rec)["name"])
	assert.Equal(t, "Error fetching CEP data.", decodeError(t, rec)["message"])
}
