package curies

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/c360/curies/errors"
)

// DefaultDelimiter separates the prefix from the local identifier in
// compact form.
const DefaultDelimiter = ":"

// Converter holds a registry of CURIE Records and converts between
// compact identifiers ("doid:1234") and full URIs
// ("http://purl.obolibrary.org/obo/DOID_1234").
//
// It keeps records in insertion order and indexes them twice: a flat map
// from every prefix string (canonical and synonym) to the owning record,
// and a byte trie over every URI prefix string for longest-prefix URI
// matching. Both indexes share the same record values; every prefix and
// URI prefix string across the Converter maps to exactly one record.
//
// Read operations are safe for concurrent use only while no mutation
// (AddRecord, UpdateRecord) is in flight; callers that mutate a shared
// Converter must supply their own synchronization.
type Converter struct {
	records   []*Record
	prefixMap map[string]*Record
	trie      *uriTrie
	delimiter string
}

// Option configures a Converter at construction time.
type Option func(*Converter)

// WithDelimiter sets the delimiter separating prefix and local identifier
// in compact form. The default is ":".
func WithDelimiter(delimiter string) Option {
	return func(c *Converter) {
		c.delimiter = delimiter
	}
}

// New creates an empty Converter.
func New(opts ...Option) *Converter {
	c := &Converter{
		prefixMap: make(map[string]*Record),
		trie:      newURITrie(),
		delimiter: DefaultDelimiter,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FromPrefixMap creates a Converter from a simple prefix map of
// prefix -> URI prefix.
func FromPrefixMap(prefixMap map[string]string, opts ...Option) (*Converter, error) {
	c := New(opts...)
	for prefix, uriPrefix := range prefixMap {
		if err := c.AddPrefix(prefix, uriPrefix); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// FromRecords creates a Converter from an extended prefix map, a list of
// full records.
func FromRecords(records []Record, opts ...Option) (*Converter, error) {
	c := New(opts...)
	for _, record := range records {
		if err := c.AddRecord(record); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Delimiter returns the configured CURIE delimiter.
func (c *Converter) Delimiter() string {
	return c.delimiter
}

// AddRecord admits a record into the registry. The record is checked
// against every existing canonical prefix, canonical URI prefix, and
// synonym before anything is mutated: on a DuplicateRecord error the
// registry is left unchanged. The stored record is a normalized copy
// (synonyms deduplicated, canonical values removed from synonym lists),
// so later mutation of the argument has no effect on the Converter.
func (c *Converter) AddRecord(record Record) error {
	if record.Prefix == "" || record.URIPrefix == "" {
		return errors.InvalidFormat("record prefix and URI prefix must be non-empty")
	}
	rec := record.normalized()

	if _, exists := c.prefixMap[rec.Prefix]; exists {
		return errors.Duplicate(rec.Prefix)
	}
	if c.trie.contains(rec.URIPrefix) {
		return errors.Duplicate(rec.URIPrefix)
	}
	for _, prefix := range rec.PrefixSynonyms {
		if _, exists := c.prefixMap[prefix]; exists {
			return errors.Duplicate(prefix)
		}
	}
	for _, uriPrefix := range rec.URIPrefixSynonyms {
		if c.trie.contains(uriPrefix) {
			return errors.Duplicate(uriPrefix)
		}
	}

	c.register(&rec)
	return nil
}

// register indexes rec under all of its prefix and URI prefix strings and
// appends it to the ordered record list. Callers have already checked for
// collisions.
func (c *Converter) register(rec *Record) {
	c.records = append(c.records, rec)
	c.prefixMap[rec.Prefix] = rec
	for _, prefix := range rec.PrefixSynonyms {
		c.prefixMap[prefix] = rec
	}
	c.trie.insert(rec.URIPrefix, rec)
	for _, uriPrefix := range rec.URIPrefixSynonyms {
		c.trie.insert(uriPrefix, rec)
	}
}

// AddPrefix admits a plain prefix -> URI prefix pair as a new record.
func (c *Converter) AddPrefix(prefix, uriPrefix string) error {
	return c.AddRecord(NewRecord(prefix, uriPrefix))
}

// UpdateRecord replaces the record registered at the same canonical
// prefix, which must already exist. All prefix and URI prefix strings of
// the new record are (re-)indexed; index entries for strings only present
// on the old record are not removed, so a replaced URI prefix stays
// resolvable until the Converter is rebuilt.
func (c *Converter) UpdateRecord(record Record) error {
	rec := record.normalized()
	pos := -1
	for i, r := range c.records {
		if r.Prefix == rec.Prefix {
			pos = i
			break
		}
	}
	if pos == -1 {
		return errors.NotFound(rec.Prefix)
	}
	c.records[pos] = &rec
	c.prefixMap[rec.Prefix] = &rec
	for _, prefix := range rec.PrefixSynonyms {
		c.prefixMap[prefix] = &rec
	}
	c.trie.insert(rec.URIPrefix, &rec)
	for _, uriPrefix := range rec.URIPrefixSynonyms {
		c.trie.insert(uriPrefix, &rec)
	}
	return nil
}

// FindByPrefix returns the record registered under prefix, canonical or
// synonym. The returned record is shared with the Converter and must not
// be mutated.
func (c *Converter) FindByPrefix(prefix string) (*Record, error) {
	if rec, ok := c.prefixMap[prefix]; ok {
		return rec, nil
	}
	return nil, errors.NotFound(prefix)
}

// FindByURIPrefix returns the record registered under exactly uriPrefix,
// canonical or synonym. This is an exact-match lookup; use FindByURI for
// longest-prefix matching over a full URI.
func (c *Converter) FindByURIPrefix(uriPrefix string) (*Record, error) {
	if rec, ok := c.trie.get(uriPrefix); ok {
		return rec, nil
	}
	return nil, errors.NotFound(uriPrefix)
}

// FindByURI returns the record whose registered URI prefix (canonical or
// synonym) is the longest literal prefix of uri.
func (c *Converter) FindByURI(uri string) (*Record, error) {
	if rec, ok := c.trie.longestPrefix(uri); ok {
		return rec, nil
	}
	return nil, errors.NotFound(uri)
}

// validateID checks id against the record's pattern, if any. The pattern
// must match the full local identifier; an uncompilable pattern is an
// InvalidFormat error, as is a mismatch.
func validateID(id string, rec *Record) error {
	if rec.Pattern == "" {
		return nil
	}
	re, err := regexp.Compile("^(?:" + rec.Pattern + ")$")
	if err != nil {
		return errors.InvalidFormatf("invalid pattern %q for prefix %q", rec.Pattern, rec.Prefix)
	}
	if !re.MatchString(id) {
		return errors.InvalidFormatf("id %q does not match the pattern %q", id, rec.Pattern)
	}
	return nil
}

// Expand converts a CURIE to a URI. The CURIE must split into exactly two
// parts on the configured delimiter, its prefix must be registered
// (canonical or synonym), and its local identifier must satisfy the
// record's pattern if one is set.
func (c *Converter) Expand(curie string) (string, error) {
	parts := strings.Split(curie, c.delimiter)
	if len(parts) != 2 {
		return "", errors.InvalidCURIE(curie)
	}
	prefix, id := parts[0], parts[1]
	rec, err := c.FindByPrefix(prefix)
	if err != nil {
		return "", err
	}
	if err := validateID(id, rec); err != nil {
		return "", err
	}
	return rec.URIPrefix + id, nil
}

// Compress converts a URI to a CURIE using the canonical prefix of the
// longest-prefix matching record. When the longest match in the index was
// a synonym, the local identifier is obtained by stripping the longest
// synonym that is a literal prefix of the URI, so a shorter synonym can
// never mis-truncate the identifier.
func (c *Converter) Compress(uri string) (string, error) {
	rec, err := c.FindByURI(uri)
	if err != nil {
		return "", err
	}
	id, ok := stripLongestURIPrefix(uri, rec)
	if !ok {
		return "", errors.NotFound(uri)
	}
	if err := validateID(id, rec); err != nil {
		return "", err
	}
	return rec.Prefix + c.delimiter + id, nil
}

// stripLongestURIPrefix removes the record's canonical URI prefix from
// the front of uri, falling back to the longest matching URI prefix
// synonym.
func stripLongestURIPrefix(uri string, rec *Record) (string, bool) {
	if id, ok := strings.CutPrefix(uri, rec.URIPrefix); ok {
		return id, true
	}
	best := ""
	found := false
	for _, synonym := range rec.URIPrefixSynonyms {
		if strings.HasPrefix(uri, synonym) && len(synonym) >= len(best) {
			best = synonym
			found = true
		}
	}
	if !found {
		return "", false
	}
	return uri[len(best):], true
}

// ExpandList expands each CURIE in the input. Per-item failures never
// abort the batch: with passthrough true the original input is echoed in
// the failing slot, otherwise the slot is nil.
func (c *Converter) ExpandList(curies []string, passthrough bool) []*string {
	out := make([]*string, len(curies))
	for i, curie := range curies {
		if uri, err := c.Expand(curie); err == nil {
			out[i] = &uri
		} else if passthrough {
			v := curie
			out[i] = &v
		}
	}
	return out
}

// CompressList compresses each URI in the input, with the same per-item
// failure semantics as ExpandList.
func (c *Converter) CompressList(uris []string, passthrough bool) []*string {
	out := make([]*string, len(uris))
	for i, uri := range uris {
		if curie, err := c.Compress(uri); err == nil {
			out[i] = &curie
		} else if passthrough {
			v := uri
			out[i] = &v
		}
	}
	return out
}

// IsCURIE reports whether s is a CURIE this Converter can expand.
func (c *Converter) IsCURIE(s string) bool {
	_, err := c.Expand(s)
	return err == nil
}

// IsURI reports whether s is a URI this Converter can compress.
func (c *Converter) IsURI(s string) bool {
	_, err := c.Compress(s)
	return err == nil
}

// StandardizePrefix resolves a prefix, canonical or synonym, to the
// owning record's canonical prefix.
func (c *Converter) StandardizePrefix(prefix string) (string, error) {
	rec, err := c.FindByPrefix(prefix)
	if err != nil {
		return "", err
	}
	return rec.Prefix, nil
}

// StandardizeCURIE replaces the prefix portion of a CURIE with its
// canonical form, leaving the local identifier untouched. It splits on
// the configured delimiter, like Expand; input that does not split into
// exactly two parts is passed through unchanged rather than rejected.
func (c *Converter) StandardizeCURIE(curie string) (string, error) {
	parts := strings.Split(curie, c.delimiter)
	if len(parts) != 2 {
		return curie, nil
	}
	prefix, err := c.StandardizePrefix(parts[0])
	if err != nil {
		return "", err
	}
	return prefix + c.delimiter + parts[1], nil
}

// StandardizeURI rewrites a URI onto the canonical URI prefix of its
// longest-prefix matching record, using the same longest-synonym
// tie-break as Compress. A URI already on the canonical prefix is
// returned unchanged.
func (c *Converter) StandardizeURI(uri string) (string, error) {
	rec, err := c.FindByURI(uri)
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(uri, rec.URIPrefix) {
		return uri, nil
	}
	id, ok := stripLongestURIPrefix(uri, rec)
	if !ok {
		return "", errors.NotFound(uri)
	}
	return rec.URIPrefix + id, nil
}

// CompressOrStandardize compresses input if it is a URI, or standardizes
// it if it is already a CURIE.
func (c *Converter) CompressOrStandardize(input string) (string, error) {
	if c.IsCURIE(input) {
		return c.StandardizeCURIE(input)
	}
	return c.Compress(input)
}

// ExpandOrStandardize expands input if it is a CURIE, or standardizes it
// if it is already a URI.
func (c *Converter) ExpandOrStandardize(input string) (string, error) {
	if c.IsCURIE(input) {
		return c.Expand(input)
	}
	return c.StandardizeURI(input)
}

// GetPrefixes returns the registered prefixes in record insertion order.
// With includeSynonyms, each record's canonical prefix is followed by its
// synonyms.
func (c *Converter) GetPrefixes(includeSynonyms bool) []string {
	var prefixes []string
	for _, rec := range c.records {
		prefixes = append(prefixes, rec.Prefix)
		if includeSynonyms {
			prefixes = append(prefixes, rec.PrefixSynonyms...)
		}
	}
	return prefixes
}

// GetURIPrefixes returns the registered URI prefixes in record insertion
// order, optionally including synonyms.
func (c *Converter) GetURIPrefixes(includeSynonyms bool) []string {
	var uriPrefixes []string
	for _, rec := range c.records {
		uriPrefixes = append(uriPrefixes, rec.URIPrefix)
		if includeSynonyms {
			uriPrefixes = append(uriPrefixes, rec.URIPrefixSynonyms...)
		}
	}
	return uriPrefixes
}

// Records returns a copy of the registry contents in insertion order.
func (c *Converter) Records() []Record {
	records := make([]Record, 0, len(c.records))
	for _, rec := range c.records {
		records = append(records, rec.clone())
	}
	return records
}

// Len returns the number of records in the Converter.
func (c *Converter) Len() int {
	return len(c.records)
}

// IsEmpty reports whether the Converter holds no records.
func (c *Converter) IsEmpty() bool {
	return len(c.records) == 0
}

// String returns a short human-readable summary of the Converter.
func (c *Converter) String() string {
	return fmt.Sprintf("Converter with %d records", len(c.records))
}

// Chain merges multiple Converters into one. The first converter is the
// base: its records, in order, keep their canonical identities. Every
// record of every subsequent converter is looked up in the accumulated
// result by canonical prefix or any prefix synonym:
//
//   - not found: the record is inserted as a new entry, subject to the
//     normal uniqueness checks;
//   - found with a different canonical URI prefix: the incoming URI
//     prefix and all incoming synonyms are merged into the existing
//     record's synonym sets, keeping the established canonical identity;
//   - found with an identical URI prefix: no-op.
//
// The inputs are not mutated; the result is built from copies. An empty
// input is an InvalidFormat error, and the first unrecoverable collision
// aborts the merge without returning a partial converter.
func Chain(converters []*Converter) (*Converter, error) {
	if len(converters) == 0 {
		return nil, errors.InvalidFormat("the list of converters is empty")
	}
	base := New(WithDelimiter(converters[0].delimiter))
	for _, rec := range converters[0].records {
		if err := base.AddRecord(rec.clone()); err != nil {
			return nil, err
		}
	}
	for _, conv := range converters[1:] {
		for _, rec := range conv.records {
			existing := base.findByAnyPrefix(rec)
			if existing == nil {
				if err := base.AddRecord(rec.clone()); err != nil {
					return nil, err
				}
				continue
			}
			if existing.URIPrefix == rec.URIPrefix {
				continue
			}
			merged := existing.clone()
			merged.URIPrefixSynonyms = appendUnique(merged.URIPrefixSynonyms, rec.URIPrefix)
			for _, synonym := range rec.URIPrefixSynonyms {
				if synonym != merged.URIPrefix {
					merged.URIPrefixSynonyms = appendUnique(merged.URIPrefixSynonyms, synonym)
				}
			}
			for _, synonym := range rec.PrefixSynonyms {
				if synonym != merged.Prefix {
					merged.PrefixSynonyms = appendUnique(merged.PrefixSynonyms, synonym)
				}
			}
			if err := base.UpdateRecord(merged); err != nil {
				return nil, err
			}
		}
	}
	return base, nil
}

// findByAnyPrefix looks up rec in the registry by its canonical prefix
// first, then by each of its prefix synonyms.
func (c *Converter) findByAnyPrefix(rec *Record) *Record {
	if found, ok := c.prefixMap[rec.Prefix]; ok {
		return found
	}
	for _, synonym := range rec.PrefixSynonyms {
		if found, ok := c.prefixMap[synonym]; ok {
			return found
		}
	}
	return nil
}
