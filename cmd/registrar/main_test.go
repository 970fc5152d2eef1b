package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joannywerner/registrar/internal/backend"
	"github.com/joannywerner/registrar/internal/config"
	"github.com/joannywerner/registrar/internal/productapi"
	"github.com/joannywerner/registrar/internal/registration"
)

func fastLifecycle() registration.Config {
	cfg := registration.DefaultConfig()
	cfg.LoadingDelay = 5 * time.Millisecond
	cfg.MessageDelay = 5 * time.Millisecond
	return cfg
}

func startBackend(t *testing.T) string {
	t.Helper()
	srv := backend.New(&backend.Config{})
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(func() {
		srv.Hub().Close()
		ts.Close()
	})
	appConfig = config.Config{BackendURL: ts.URL}
	return ts.URL
}

func submit(t *testing.T, url, id, name string, verbose bool) (string, error) {
	t.Helper()
	var out bytes.Buffer
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := runSubmit(ctx, submitOptions{
		ID:        id,
		Name:      name,
		Verbose:   verbose,
		Creator:   productapi.NewClient(url),
		Lifecycle: fastLifecycle(),
		Output:    &out,
		Width:     200,
	})
	return out.String(), err
}

func TestRunSubmit_Success(t *testing.T) {
	url := startBackend(t)

	out, err := submit(t, url, "42", "Teclado", true)

	require.NoError(t, err)
	assert.Contains(t, out, backend.MsgRegistered)
	assert.Contains(t, out, `"idproducto": "42"`, "verbose prints the request body")
	assert.Contains(t, out, "Mostrar resultado")
}

func TestRunSubmit_Duplicate(t *testing.T) {
	url := startBackend(t)
	_, err := submit(t, url, "7", "Mouse", false)
	require.NoError(t, err)

	out, err := submit(t, url, "7", "Mouse", false)

	require.Error(t, err)
	assert.True(t, productapi.IsHTTPError(err), "the transport error is kept: %v", err)
	assert.Contains(t, out, backend.MsgDuplicate)
	assert.NotContains(t, out, `"idproducto"`, "no payload box without --verbose")
}

func TestRunSubmit_BackendDown(t *testing.T) {
	appConfig = config.Config{BackendURL: "http://127.0.0.1:1"}

	out, err := submit(t, "http://127.0.0.1:1", "1", "A", false)

	require.Error(t, err)
	assert.True(t, productapi.IsNetworkError(err))
	assert.Contains(t, out, registration.DefaultErrorText)
}

func TestRunSubmit_Validation(t *testing.T) {
	tests := []struct {
		name, id, product string
	}{
		{"non-numeric id", "4a", "Teclado"},
		{"empty id", "", "Teclado"},
		{"empty name", "1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := backend.New(&backend.Config{})
			ts := httptest.NewServer(srv.Router())
			defer ts.Close()
			appConfig = config.Config{BackendURL: ts.URL}

			_, err := submit(t, ts.URL, tt.id, tt.product, false)

			require.Error(t, err)
			assert.Equal(t, 0, srv.Store().Count(), "nothing is sent")
		})
	}
}

func TestSetup_Precedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	settings := config.Default()
	settings.BackendURL = "http://file:1"
	settings.RequestTimeout = 2 * time.Second
	require.NoError(t, settings.Save(path))

	flagConfig = path
	defer func() { flagConfig, flagBackend = "", "" }()

	require.NoError(t, setup(versionCmd, nil))
	assert.Equal(t, "http://file:1", appConfig.BackendURL)
	assert.Equal(t, config.SourceFile, appConfig.BackendURLSource)
	assert.Equal(t, 2*time.Second, newClient().HTTPClient.Timeout)

	t.Setenv("REGISTRAR_BACKEND_URL", "http://env:2")
	require.NoError(t, setup(versionCmd, nil))
	assert.Equal(t, "http://env:2", appConfig.BackendURL)

	flagBackend = "http://flag:3/"
	require.NoError(t, setup(versionCmd, nil))
	assert.Equal(t, "http://flag:3", appConfig.BackendURL)
	assert.Equal(t, config.SourceFlag, appConfig.BackendURLSource)
}

func TestSetup_BrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: ["), 0600))
	flagConfig = path
	defer func() { flagConfig = "" }()

	assert.Error(t, setup(versionCmd, nil))
	assert.NoError(t, setup(configInitCmd, nil), "config init can replace a broken file")
}

func TestConfigInit_Force(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 1\nbackend_url: http://old:1\n"), 0600))
	flagConfig, configInitForce = path, true
	defer func() { flagConfig, configInitForce = "", false }()

	require.NoError(t, configInitCmd.RunE(configInitCmd, nil))

	s, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultBackendURL, s.BackendURL)
}

func TestFormatEvent(t *testing.T) {
	line := formatEvent(backend.Event{
		Type:    backend.EventRegistered,
		Product: backend.Product{ID: "42", Name: "Teclado", RegisteredAt: time.Now()},
	})

	assert.Contains(t, line, "42")
	assert.Contains(t, line, "Teclado")
}

func TestStateLog_KeepsEveryState(t *testing.T) {
	states := newStateLog()
	for i := 0; i < 40; i++ {
		states.record(registration.State{Attempt: uint64(i)})
	}
	states.record(registration.State{Attempt: 99, Phase: registration.PhaseShowingResult})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s, err := states.waitFor(ctx, func(s registration.State) bool {
		return s.Phase == registration.PhaseShowingResult
	})

	require.NoError(t, err)
	assert.Equal(t, uint64(99), s.Attempt, "a result recorded behind many states is still found")
}

func TestStateLog_WaitsForLaterState(t *testing.T) {
	states := newStateLog()
	go func() {
		time.Sleep(10 * time.Millisecond)
		states.record(registration.State{Loading: true})
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	s, err := states.waitFor(ctx, func(s registration.State) bool { return s.Loading })

	require.NoError(t, err)
	assert.True(t, s.Loading)

	_, err = states.waitFor(ctx, func(s registration.State) bool { return s.Loading })
	assert.ErrorIs(t, err, context.DeadlineExceeded, "a consumed state is not returned twice")
}
