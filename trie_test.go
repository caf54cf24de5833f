package curies

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrieExactMatch(t *testing.T) {
	trie := newURITrie()
	doid := &Record{Prefix: "doid", URIPrefix: "http://purl.obolibrary.org/obo/DOID_"}
	trie.insert(doid.URIPrefix, doid)

	rec, ok := trie.get("http://purl.obolibrary.org/obo/DOID_")
	require.True(t, ok)
	assert.Equal(t, "doid", rec.Prefix)

	_, ok = trie.get("http://purl.obolibrary.org/obo/")
	assert.False(t, ok, "intermediate node without a record must not match")

	_, ok = trie.get("http://purl.obolibrary.org/obo/DOID_1234")
	assert.False(t, ok, "exact match must not extend past the inserted key")

	assert.True(t, trie.contains(doid.URIPrefix))
	assert.False(t, trie.contains("http://example.org/"))
}

func TestTrieLongestPrefix(t *testing.T) {
	trie := newURITrie()
	short := &Record{Prefix: "amigo", URIPrefix: "http://amigo.geneontology.org/amigo/term/"}
	long := &Record{Prefix: "go", URIPrefix: "http://amigo.geneontology.org/amigo/term/GO:"}
	trie.insert(short.URIPrefix, short)
	trie.insert(long.URIPrefix, long)

	tests := []struct {
		name     string
		query    string
		expected string
		found    bool
	}{
		{
			name:     "longer more specific prefix wins",
			query:    "http://amigo.geneontology.org/amigo/term/GO:0032571",
			expected: "go",
			found:    true,
		},
		{
			name:     "shorter prefix still matches when the longer diverges",
			query:    "http://amigo.geneontology.org/amigo/term/XAO:0001234",
			expected: "amigo",
			found:    true,
		},
		{
			name:     "query equal to an inserted key matches it",
			query:    "http://amigo.geneontology.org/amigo/term/GO:",
			expected: "go",
			found:    true,
		},
		{
			name:  "no registered prefix of the query",
			query: "http://purl.obolibrary.org/obo/DOID_1234",
			found: false,
		},
		{
			name:  "query shorter than any key",
			query: "http://amigo",
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, ok := trie.longestPrefix(tt.query)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.expected, rec.Prefix)
			}
		})
	}
}

func TestTrieOverwrite(t *testing.T) {
	trie := newURITrie()
	first := &Record{Prefix: "first", URIPrefix: "http://example.org/ns/"}
	second := &Record{Prefix: "second", URIPrefix: "http://example.org/ns/"}

	trie.insert("http://example.org/ns/", first)
	trie.insert("http://example.org/ns/", second)

	rec, ok := trie.get("http://example.org/ns/")
	require.True(t, ok)
	assert.Equal(t, "second", rec.Prefix, "inserting at an existing key overwrites")
}
