package curies

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExportConverter(t *testing.T) *Converter {
	t.Helper()
	converter := New()
	require.NoError(t, converter.AddRecord(Record{
		Prefix:            "doid",
		URIPrefix:         "http://purl.obolibrary.org/obo/DOID_",
		PrefixSynonyms:    []string{"DOID"},
		URIPrefixSynonyms: []string{"https://identifiers.org/DOID/"},
		Pattern:           "^\\d+$",
	}))
	require.NoError(t, converter.AddPrefix("go", "http://purl.obolibrary.org/obo/GO_"))
	return converter
}

func TestWritePrefixMap(t *testing.T) {
	converter := newExportConverter(t)

	prefixMap := converter.WritePrefixMap()
	assert.Equal(t, map[string]string{
		"doid": "http://purl.obolibrary.org/obo/DOID_",
		"go":   "http://purl.obolibrary.org/obo/GO_",
	}, prefixMap, "simple prefix map drops synonyms and patterns")
}

func TestWriteExtendedPrefixMapRoundTrip(t *testing.T) {
	converter := newExportConverter(t)

	out, err := converter.WriteExtendedPrefixMap()
	require.NoError(t, err)

	var records []Record
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 2)

	// Lossless: full record contents survive, in insertion order.
	assert.Equal(t, "doid", records[0].Prefix)
	assert.Equal(t, []string{"DOID"}, records[0].PrefixSynonyms)
	assert.Equal(t, []string{"https://identifiers.org/DOID/"}, records[0].URIPrefixSynonyms)
	assert.Equal(t, "^\\d+$", records[0].Pattern)
	assert.Equal(t, "go", records[1].Prefix)

	rebuilt, err := FromRecords(records)
	require.NoError(t, err)
	curie, err := rebuilt.Compress("https://identifiers.org/DOID/1234")
	require.NoError(t, err)
	assert.Equal(t, "doid:1234", curie)
}

func TestWriteJSONLD(t *testing.T) {
	converter := newExportConverter(t)

	doc := converter.WriteJSONLD()
	context, ok := doc["@context"].(map[string]any)
	require.True(t, ok)

	assert.Equal(t, "http://purl.obolibrary.org/obo/DOID_", context["doid"])
	assert.Equal(t, "http://purl.obolibrary.org/obo/DOID_", context["DOID"],
		"prefix synonyms map to the canonical URI prefix")
	assert.Equal(t, "http://purl.obolibrary.org/obo/GO_", context["go"])

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"@context"`)
}

func TestWriteSHACL(t *testing.T) {
	converter := newExportConverter(t)

	out, err := converter.WriteSHACL()
	require.NoError(t, err)

	assert.Contains(t, out, "@prefix sh: <http://www.w3.org/ns/shacl#> .")
	assert.Contains(t, out, `sh:prefix "doid" ; sh:namespace "http://purl.obolibrary.org/obo/DOID_"^^xsd:anyURI`)
	assert.Contains(t, out, `sh:prefix "go" ; sh:namespace "http://purl.obolibrary.org/obo/GO_"^^xsd:anyURI`)
	assert.Contains(t, out, "sh:declare")
}

func TestWriteSHACLEmpty(t *testing.T) {
	converter := New()
	out, err := converter.WriteSHACL()
	require.NoError(t, err)
	assert.NotContains(t, out, "sh:declare")
}

func TestTurtleStringEscaping(t *testing.T) {
	assert.Equal(t, `"plain"`, turtleString("plain"))
	assert.Equal(t, `"with \"quotes\""`, turtleString(`with "quotes"`))
	assert.Equal(t, `"back\\slash"`, turtleString(`back\slash`))
}
