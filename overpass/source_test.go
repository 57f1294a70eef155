package overpass

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCachedSourceShortCircuitsOnSnapshot(t *testing.T) {
	// Any network call is a test failure.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("network touched despite existing snapshot")
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, os.WriteFile(path, []byte(fixtureResponse), 0o644))

	src := NewCachedSource(testClient(srv.URL, 0), "query", path, false, zap.NewNop())
	data, err := src.Dataset(context.Background())
	require.NoError(t, err)
	assert.Len(t, data.Nodes, 2)
}

func TestCachedSourceFetchesAndWritesSnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(fixtureResponse))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "snapshot.json")
	src := NewCachedSource(testClient(srv.URL, 0), "query", path, false, zap.NewNop())

	data, err := src.Dataset(context.Background())
	require.NoError(t, err)
	assert.Len(t, data.Ways, 1)

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, fixtureResponse, string(written))
}

func TestCachedSourceRefreshBypassesSnapshot(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(fixtureResponse))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":0.6,"elements":[]}`), 0o644))

	src := NewCachedSource(testClient(srv.URL, 0), "query", path, true, zap.NewNop())
	data, err := src.Dataset(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Len(t, data.Nodes, 2)
}
