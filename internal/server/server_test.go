package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarkTrayford/CPIDebugLocal/internal/config"
	"github.com/MarkTrayford/CPIDebugLocal/pkg/archive"
	"github.com/MarkTrayford/CPIDebugLocal/pkg/codec"
	"github.com/MarkTrayford/CPIDebugLocal/pkg/payload"
)

func testServer(t *testing.T, mutate func(*config.Config)) *Server {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(cfg, logger)
}

func postJSON(t *testing.T, s *Server, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := testServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestEncode(t *testing.T) {
	var opened string
	s := testServer(t, func(cfg *config.Config) {
		cfg.WebIDE.OpenBrowser = true
	})
	s.openBrowser = func(url string) error {
		opened = url
		return nil
	}

	p := &payload.DebugPayload{
		CurrentSessionType: "groovy",
		Script:             "def processData(msg) { return msg }",
		FunctionName:       "processData",
		Headers:            map[string]string{"SAP_MessageProcessingLogID": "AGlnwRPC"},
		Properties:         map[string]string{"AnotherProp": "conf1"},
	}
	rec := postJSON(t, s, "/v1/encode", encodeRequest{Payload: p})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp encodeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "https://groovyide.com/cpi/"+resp.Transport, resp.URL)
	assert.Equal(t, resp.URL, opened)

	// The transport string must decode back to the payload we sent.
	arch, err := codec.NewZipCodec().Decode(resp.Transport)
	require.NoError(t, err)
	embedded, err := archive.ReadSingle(arch, payload.ArchiveEntryName)
	require.NoError(t, err)
	want, err := p.JSON()
	require.NoError(t, err)
	assert.Equal(t, want, embedded)
}

func TestEncode_MissingPayload(t *testing.T) {
	s := testServer(t, nil)

	rec := postJSON(t, s, "/v1/encode", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "payload is required")
}

func TestDecode(t *testing.T) {
	dumpDir := t.TempDir()
	s := testServer(t, func(cfg *config.Config) {
		cfg.Dump.Enabled = true
		cfg.Dump.Dir = dumpDir
	})

	p := &payload.DebugPayload{
		CurrentSessionType: "groovy",
		ScriptInput:        `{ "test": "testval3" }`,
		Script:             "def processData(msg) { return msg }",
		Headers:            map[string]string{},
		Properties:         map[string]string{},
	}
	transport, err := codec.NewDeflateCodec().Encode(p)
	require.NoError(t, err)

	rec := postJSON(t, s, "/v1/decode", decodeRequest{Transport: transport})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp decodeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, p, resp.Payload)

	require.NotEmpty(t, resp.DumpDir)
	script, err := os.ReadFile(filepath.Join(resp.DumpDir, "script.groovy"))
	require.NoError(t, err)
	assert.Equal(t, p.Script, string(script))
}

func TestDecode_InvalidTransport(t *testing.T) {
	s := testServer(t, nil)

	rec := postJSON(t, s, "/v1/decode", decodeRequest{Transport: "abcde"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "decode.base64", resp["error"])
}

func TestDecode_MissingTransport(t *testing.T) {
	s := testServer(t, nil)

	rec := postJSON(t, s, "/v1/decode", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "transport is required")
}

func TestCustomBasePath(t *testing.T) {
	s := testServer(t, func(cfg *config.Config) {
		cfg.Server.BasePath = "/bridge"
	})

	rec := postJSON(t, s, "/bridge/v1/decode", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code) // routed, then rejected for the empty transport

	rec2 := postJSON(t, s, "/v1/decode", map[string]any{})
	assert.Equal(t, http.StatusNotFound, rec2.Code)
}
