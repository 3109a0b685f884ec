package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/cyphergate/internal/cryptox"
	"github.com/dmitrijs2005/cyphergate/internal/gate/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	var cfg config.Config
	cfg.LoadDefaults()
	cfg.DataDir = t.TempDir()
	cfg.Hash.BcryptCost = 4
	cfg.Auth.FailureDelay = 0
	return &cfg
}

func TestNewApp_WiresConfiguredBackend(t *testing.T) {
	for _, backend := range []string{"sqlite", "file"} {
		t.Run(backend, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.Store.Backend = backend

			var out, errOut bytes.Buffer
			a, err := NewApp(context.Background(), cfg, strings.NewReader(""), &out, &errOut)
			require.NoError(t, err)
			t.Cleanup(func() { _ = a.Close() })

			assert.Equal(t, backend, a.store.Backend())
			assert.False(t, a.announcer.Color)
			assert.NotNil(t, a.registration)
			assert.NotNil(t, a.auth)
			assert.NotNil(t, a.dispatcher)
		})
	}
}

func TestNewApp_LogFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.Log.File = filepath.Join(t.TempDir(), "gate.log")
	cfg.Log.Level = "debug"
	cfg.Log.Format = "json"

	var out, errOut bytes.Buffer
	a, err := NewApp(context.Background(), cfg, strings.NewReader(""), &out, &errOut)
	require.NoError(t, err)
	require.NoError(t, a.Close())

	data, err := os.ReadFile(cfg.Log.File)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"app initialised"`)
	assert.Contains(t, string(data), `"session":"`)
	assert.Empty(t, errOut.String())
}

func TestNewApp_Errors(t *testing.T) {
	t.Run("unknown hash algorithm", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Hash.Algorithm = "md5"

		_, err := NewApp(context.Background(), cfg, strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
		require.ErrorIs(t, err, cryptox.ErrUnsupportedAlgorithm)
	})

	t.Run("log file in missing directory", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Log.File = filepath.Join(t.TempDir(), "missing", "gate.log")

		_, err := NewApp(context.Background(), cfg, strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
		require.Error(t, err)
	})

	t.Run("data dir is a file", func(t *testing.T) {
		cfg := testConfig(t)
		f := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(f, nil, 0o600))
		cfg.DataDir = f

		_, err := NewApp(context.Background(), cfg, strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
		require.Error(t, err)
	})
}

func TestApp_CloseIsIdempotent(t *testing.T) {
	cfg := testConfig(t)
	a, err := NewApp(context.Background(), cfg, strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, err)

	require.NoError(t, a.Close())
	require.NoError(t, a.Close())
}

func TestCommandStdin(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "stdin")
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	buffered := rdr("queued\n")

	assert.Same(t, buffered, commandStdin(strings.NewReader("x"), buffered))

	stubTerminal(t, false)
	assert.Same(t, buffered, commandStdin(f, buffered))

	stubTerminal(t, true)
	assert.Same(t, f, commandStdin(f, buffered))
}
