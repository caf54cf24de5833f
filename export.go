package curies

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/c360/curies/errors"
)

// WritePrefixMap exports the registry as a simple map of canonical
// prefix to canonical URI prefix. Synonyms and patterns are dropped.
func (c *Converter) WritePrefixMap() map[string]string {
	prefixMap := make(map[string]string, len(c.records))
	for _, rec := range c.records {
		prefixMap[rec.Prefix] = rec.URIPrefix
	}
	return prefixMap
}

// WriteExtendedPrefixMap exports the registry losslessly as a JSON array
// of record objects, in insertion order. The output round-trips through
// loader.ParseExtendedPrefixMap.
func (c *Converter) WriteExtendedPrefixMap() (string, error) {
	records := c.Records()
	data, err := json.Marshal(records)
	if err != nil {
		return "", errors.Wrap(err, "Converter", "WriteExtendedPrefixMap", "marshal records")
	}
	return string(data), nil
}

// WriteJSONLD exports the registry as a JSON-LD context object mapping
// each canonical prefix, and each prefix synonym, to the record's
// canonical URI prefix.
func (c *Converter) WriteJSONLD() map[string]any {
	context := make(map[string]any)
	for _, rec := range c.records {
		context[rec.Prefix] = rec.URIPrefix
		for _, synonym := range rec.PrefixSynonyms {
			context[synonym] = rec.URIPrefix
		}
	}
	return map[string]any{"@context": context}
}

// WriteSHACL exports the registry as SHACL prefix declarations in the
// Turtle format: one sh:declare blank node per record, carrying
// sh:prefix and sh:namespace. Synonyms and patterns are dropped.
func (c *Converter) WriteSHACL() (string, error) {
	var b strings.Builder
	b.WriteString("@prefix sh: <http://www.w3.org/ns/shacl#> .\n")
	b.WriteString("@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .\n\n")
	if len(c.records) == 0 {
		return b.String(), nil
	}
	b.WriteString("[] sh:declare\n")
	for i, rec := range c.records {
		fmt.Fprintf(&b, "    [ sh:prefix %s ; sh:namespace %s^^xsd:anyURI ]",
			turtleString(rec.Prefix), turtleString(rec.URIPrefix))
		if i < len(c.records)-1 {
			b.WriteString(" ,\n")
		} else {
			b.WriteString(" .\n")
		}
	}
	return b.String(), nil
}

// turtleString renders s as a Turtle string literal.
func turtleString(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`, "\t", `\t`)
	return `"` + replacer.Replace(s) + `"`
}
