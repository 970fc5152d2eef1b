package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/joannywerner/registrar/internal/logging"
	"github.com/joannywerner/registrar/internal/productapi"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	srv := New(&Config{})
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(func() {
		srv.Hub().Close()
		ts.Close()
	})
	return srv, ts
}

func post(t *testing.T, url, body string) (int, productapi.Response) {
	t.Helper()
	resp, err := http.Post(url+productapi.RegisterPath, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var out productapi.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	return resp.StatusCode, out
}

func TestRegister_WithClient(t *testing.T) {
	srv, ts := newTestServer(t)
	client := productapi.NewClient(ts.URL)

	resp, err := client.CreateProduct(context.Background(), productapi.CreateRequest{ProductID: "42", ProductName: " Teclado "})
	require.NoError(t, err)
	assert.Equal(t, MsgRegistered, resp.Msg)

	p, ok := srv.Store().Get("42")
	require.True(t, ok)
	assert.Equal(t, "Teclado", p.Name, "name is trimmed")
	assert.False(t, p.RegisteredAt.IsZero())
}

func TestRegister_DuplicateWithClient(t *testing.T) {
	_, ts := newTestServer(t)
	client := productapi.NewClient(ts.URL)
	req := productapi.CreateRequest{ProductID: "7", ProductName: "Mouse"}

	_, err := client.CreateProduct(context.Background(), req)
	require.NoError(t, err)

	_, err = client.CreateProduct(context.Background(), req)
	require.Error(t, err)
	assert.True(t, productapi.IsHTTPError(err))
	assert.Equal(t, MsgDuplicate, productapi.ServerMessage(err))

	var apiErr *productapi.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
}

func TestRegister_Validation(t *testing.T) {
	_, ts := newTestServer(t)

	tests := []struct {
		name    string
		body    string
		status  int
		wantMsg string
	}{
		{"malformed json", `{"idproducto":`, http.StatusBadRequest, MsgInvalidBody},
		{"wrong types", `{"idproducto": 42}`, http.StatusBadRequest, MsgInvalidBody},
		{"missing id", `{"nombre": "Teclado"}`, http.StatusBadRequest, MsgIDRequired},
		{"non-numeric id", `{"idproducto": "4a", "nombre": "Teclado"}`, http.StatusBadRequest, MsgIDNotNumeric},
		{"missing name", `{"idproducto": "1"}`, http.StatusBadRequest, MsgNameRequired},
		{"blank name", `{"idproducto": "1", "nombre": "   "}`, http.StatusBadRequest, MsgNameRequired},
		{"valid", `{"idproducto": "1", "nombre": "Teclado"}`, http.StatusCreated, MsgRegistered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := post(t, ts.URL, tt.body)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.wantMsg, resp.Msg)
		})
	}
}

func TestRegister_MethodNotAllowed(t *testing.T) {
	_, ts := newTestServer(t)

	tests := []struct {
		method, path string
	}{
		{http.MethodGet, productapi.RegisterPath},
		{http.MethodPut, productapi.RegisterPath},
		{http.MethodPost, "/producto/99"},
		{http.MethodPost, EventsPath},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, ts.URL+tt.path, nil)
			require.NoError(t, err)
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			_ = resp.Body.Close()

			assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		})
	}
}

func TestGetProduct(t *testing.T) {
	srv, ts := newTestServer(t)
	_, err := srv.Store().Add("99", "Monitor")
	require.NoError(t, err)

	resp, err := http.Get(ts.URL + "/producto/99")
	require.NoError(t, err)
	var p Product
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&p))
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "99", p.ID)
	assert.Equal(t, "Monitor", p.Name)

	resp, err = http.Get(ts.URL + "/producto/100")
	require.NoError(t, err)
	var out productapi.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, MsgNotFound, out.Msg)

	resp, err = http.Get(ts.URL + "/producto/abc")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "non-numeric ids do not match the route")
}

func TestStore_Expiration(t *testing.T) {
	s := NewStore(20 * time.Millisecond)

	_, err := s.Add("1", "A")
	require.NoError(t, err)
	_, err = s.Add("1", "B")
	require.ErrorIs(t, err, ErrDuplicate)

	time.Sleep(50 * time.Millisecond)

	_, ok := s.Get("1")
	assert.False(t, ok)
	_, err = s.Add("1", "B")
	assert.NoError(t, err, "expired ids can be registered again")
}

func TestStore_NoExpiration(t *testing.T) {
	s := NewStore(0)

	_, err := s.Add("1", "A")
	require.NoError(t, err)
	assert.Equal(t, 1, s.Count())

	p, ok := s.Get("1")
	require.True(t, ok)
	assert.Equal(t, "A", p.Name)
}

func TestLogMiddleware(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logging.SetLogger(zap.New(core))
	defer logging.SetLogger(nil)

	_, ts := newTestServer(t)
	client := productapi.NewClient(ts.URL)
	_, err := client.CreateProduct(context.Background(), productapi.CreateRequest{ProductID: "5", ProductName: "Cable"})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return logs.FilterMessage("HTTP request served").Len() == 1
	}, time.Second, 5*time.Millisecond)

	fields := logs.FilterMessage("HTTP request served").All()[0].ContextMap()
	assert.Equal(t, "POST", fields["method"])
	assert.Equal(t, productapi.RegisterPath, fields["path"])
	assert.EqualValues(t, http.StatusCreated, fields["status_code"])
	assert.NotEmpty(t, fields["request_id"], "client request id is logged")
}

func TestServer_StartAndShutdown(t *testing.T) {
	srv := New(&Config{Host: "127.0.0.1"})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errChan := make(chan error, 1)
	go func() { errChan <- srv.Start(ctx) }()

	require.Eventually(t, func() bool { return srv.Addr() != "" }, 2*time.Second, 5*time.Millisecond)

	client := productapi.NewClient("http://" + srv.Addr())
	resp, err := client.CreateProduct(context.Background(), productapi.CreateRequest{ProductID: "1", ProductName: "A"})
	require.NoError(t, err)
	assert.Equal(t, MsgRegistered, resp.Msg)

	cancel()
	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Start did not return after cancellation")
	}
}

func TestServer_StartListenError(t *testing.T) {
	srv := New(&Config{Host: "127.0.0.1", Port: -1})

	err := srv.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to listen")
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 4000, cfg.Port)
	assert.False(t, cfg.Advertise)
	assert.NotEmpty(t, cfg.Instance)
}
