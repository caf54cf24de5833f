package curies

import (
	"fmt"
	"slices"
)

// Record is one registry entry: a canonical prefix, its canonical URI
// prefix, optional synonym sets for both, and an optional validation
// pattern for the local identifier.
//
// Records are plain values when constructed by callers or parsers. Once
// admitted into a Converter they are owned by it and must not be mutated;
// use Converter.UpdateRecord to replace a record wholesale.
type Record struct {
	// Prefix is the canonical short prefix (e.g. "doid"), unique within
	// a Converter.
	Prefix string `json:"prefix"`

	// URIPrefix is the canonical namespace URI prefix
	// (e.g. "http://purl.obolibrary.org/obo/DOID_"), unique within a
	// Converter.
	URIPrefix string `json:"uri_prefix"`

	// PrefixSynonyms are alternate prefixes resolving to this record.
	// Each must be unique across the whole registry.
	PrefixSynonyms []string `json:"prefix_synonyms,omitempty"`

	// URIPrefixSynonyms are alternate namespace URI prefixes, under the
	// same uniqueness constraint, used for longest-prefix URI matching.
	URIPrefixSynonyms []string `json:"uri_prefix_synonyms,omitempty"`

	// Pattern is an optional regular expression the local identifier
	// (the part after the prefix) must match in full.
	Pattern string `json:"pattern,omitempty"`
}

// NewRecord creates a Record from a prefix and URI prefix, with no
// synonyms and no pattern.
func NewRecord(prefix, uriPrefix string) Record {
	return Record{Prefix: prefix, URIPrefix: uriPrefix}
}

// String returns a short human-readable summary of the record.
func (r Record) String() string {
	return fmt.Sprintf("%s -> %s (%d prefix synonyms, %d URI prefix synonyms)",
		r.Prefix, r.URIPrefix, len(r.PrefixSynonyms), len(r.URIPrefixSynonyms))
}

// clone returns a deep copy of the record.
func (r Record) clone() Record {
	r.PrefixSynonyms = slices.Clone(r.PrefixSynonyms)
	r.URIPrefixSynonyms = slices.Clone(r.URIPrefixSynonyms)
	return r
}

// normalized returns a deep copy with synonym lists deduplicated and the
// record's own canonical values removed from them. Synonym order is
// otherwise preserved.
func (r Record) normalized() Record {
	out := Record{
		Prefix:    r.Prefix,
		URIPrefix: r.URIPrefix,
		Pattern:   r.Pattern,
	}
	for _, s := range r.PrefixSynonyms {
		if s != r.Prefix {
			out.PrefixSynonyms = appendUnique(out.PrefixSynonyms, s)
		}
	}
	for _, s := range r.URIPrefixSynonyms {
		if s != r.URIPrefix {
			out.URIPrefixSynonyms = appendUnique(out.URIPrefixSynonyms, s)
		}
	}
	return out
}

// appendUnique appends s to list unless already present.
func appendUnique(list []string, s string) []string {
	if slices.Contains(list, s) {
		return list
	}
	return append(list, s)
}
