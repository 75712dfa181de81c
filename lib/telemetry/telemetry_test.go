package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

func TestSetupFromEnvWithoutConfig(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	dir := t.TempDir()
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	_, err = os.Stat(filepath.Join(dir, configName))
	require.True(t, os.IsNotExist(err))

	tel, err := SetupFromEnv(context.Background(), "test:telemetry")
	require.NoError(t, err)
	require.Nil(t, tel.TracerProvider)
	require.NoError(t, tel.Shutdown(context.Background()))
}

func TestInstrumentResty(t *testing.T) {
	cleanup := SetupForTesting(t, "test:telemetry")
	defer cleanup()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := resty.New().SetBaseURL(server.URL)
	InstrumentResty(client, "test:telemetry/http")

	res, err := client.R().SetContext(context.Background()).Get("/")
	require.NoError(t, err)
	require.Equal(t, "[]", res.String())

	res, err = client.R().SetContext(context.Background()).Get("/missing")
	require.NoError(t, err)
	require.True(t, res.IsError())
}
