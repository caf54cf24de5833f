package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/curies/errors"
	"github.com/c360/curies/fetch"
	"github.com/c360/curies/loader"
)

func TestJSONLDConverter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"@context": {
			"DOID": "http://purl.obolibrary.org/obo/DOID_",
			"GO": "http://purl.obolibrary.org/obo/GO_"
		}}`))
	}))
	defer server.Close()

	converter, err := jsonldConverter(context.Background(), fetch.NewClient(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, 2, converter.Len())

	uri, err := converter.Expand("DOID:1234")
	require.NoError(t, err)
	assert.Equal(t, "http://purl.obolibrary.org/obo/DOID_1234", uri)
}

func TestJSONLDConverterNilClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"@context": {"GO": "http://purl.obolibrary.org/obo/GO_"}}`))
	}))
	defer server.Close()

	converter, err := jsonldConverter(context.Background(), nil, server.URL)
	require.NoError(t, err)
	assert.True(t, converter.IsCURIE("GO:0032571"))
}

func TestJSONLDConverterMalformedDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"no_context": true}`))
	}))
	defer server.Close()

	_, err := jsonldConverter(context.Background(), fetch.NewClient(), server.URL)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidFormat(err))
}

func TestExtendedPrefixMapDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[
			{
				"prefix": "doid",
				"uri_prefix": "http://purl.obolibrary.org/obo/DOID_",
				"prefix_synonyms": ["DOID"],
				"uri_prefix_synonyms": ["https://identifiers.org/DOID/"]
			}
		]`))
	}))
	defer server.Close()

	// Exercise the same path NewBioregistryConverter takes, against a
	// local server instead of the public registry.
	data, err := document(context.Background(), nil, server.URL)
	require.NoError(t, err)

	converter, err := loader.ConverterFromExtendedPrefixMap(data)
	require.NoError(t, err)

	curie, err := converter.Compress("https://identifiers.org/DOID/1234")
	require.NoError(t, err)
	assert.Equal(t, "doid:1234", curie)
}

func TestSourceURLs(t *testing.T) {
	for _, url := range []string{OBOContextURL, GOContextURL, MonarchContextURL, BioregistryURL} {
		assert.True(t, strings.HasPrefix(url, "https://"), url)
	}
}
