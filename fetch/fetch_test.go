package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/curies/errors"
)

func TestDocumentFromURL(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`{"DOID": "http://purl.obolibrary.org/obo/DOID_"}`))
	}))
	defer server.Close()

	client := NewClient()
	body, err := client.Document(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Contains(t, string(body), "DOID")

	// Second fetch is served from the cache.
	_, err = client.Document(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestDocumentCacheDisabled(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(WithCacheTTL(0))
	for i := 0; i < 2; i++ {
		_, err := client.Document(context.Background(), server.URL)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(2), hits.Load())
}

func TestDocumentHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient()
	_, err := client.Document(context.Background(), server.URL)
	require.Error(t, err)
	assert.True(t, errors.IsFetch(err))
}

func TestDocumentUnreachableHost(t *testing.T) {
	client := NewClient(WithTimeout(500 * time.Millisecond))
	_, err := client.Document(context.Background(), "http://127.0.0.1:1/registry.json")
	require.Error(t, err)
	assert.True(t, errors.IsFetch(err))
}

func TestDocumentFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"go": "http://purl.obolibrary.org/obo/GO_"}`), 0o600))

	client := NewClient()
	body, err := client.Document(context.Background(), path)
	require.NoError(t, err)
	assert.Contains(t, string(body), "GO_")
}

func TestFileMissing(t *testing.T) {
	client := NewClient()
	_, err := client.File(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestDocumentInline(t *testing.T) {
	inline := `{"DOID": "http://purl.obolibrary.org/obo/DOID_"}`
	client := NewClient()
	body, err := client.Document(context.Background(), inline)
	require.NoError(t, err)
	assert.Equal(t, inline, string(body))
}

func TestDocumentContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(2 * time.Second)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	client := NewClient()
	_, err := client.Document(ctx, server.URL)
	require.Error(t, err)
	assert.True(t, errors.IsFetch(err))
}
