// Package curies converts between compact identifiers (CURIEs) and full
// URIs over a registry of prefix-to-namespace mappings. It is used by
// knowledge-graph and ontology tooling to normalize identifiers across
// heterogeneous vocabularies.
//
// # Core concepts
//
// A Record maps a canonical prefix (e.g. "doid") to a canonical namespace
// URI prefix (e.g. "http://purl.obolibrary.org/obo/DOID_"), optionally
// with prefix and URI-prefix synonyms and a validation pattern for local
// identifiers. A Converter owns an ordered set of records, indexed both
// by prefix string and by URI prefix (via longest-prefix matching), and
// answers Expand, Compress, and Standardize queries:
//
//	converter := curies.New()
//	_ = converter.AddRecord(curies.Record{
//		Prefix:            "doid",
//		URIPrefix:         "http://purl.obolibrary.org/obo/DOID_",
//		PrefixSynonyms:    []string{"DOID"},
//		URIPrefixSynonyms: []string{"https://identifiers.org/DOID/"},
//	})
//
//	uri, _ := converter.Expand("doid:1234")
//	// http://purl.obolibrary.org/obo/DOID_1234
//
//	curie, _ := converter.Compress("https://identifiers.org/DOID/1234")
//	// doid:1234
//
// Longest-prefix matching guarantees that a short, coincidentally
// matching namespace never shadows a longer, more specific one.
//
// Multiple converters can be merged with Chain: the first converter's
// canonical identities win, and later converters' conflicting namespaces
// become synonyms of the established records instead of duplicates.
//
// # Collaborator packages
//
//   - errors: typed error kinds (not found, invalid CURIE, invalid
//     format, duplicate record) shared by all packages.
//   - fetch: retrieval of registry documents from URLs, files, or inline
//     strings, with TTL caching.
//   - loader: parsing of extended prefix maps, simple prefix maps
//     (JSON and YAML), JSON-LD contexts, and SHACL prefix declarations
//     into records.
//   - sources: bundled well-known registries (OBO Foundry, Gene
//     Ontology, Monarch, Bioregistry).
//   - service: a NATS request-reply conversion service with Prometheus
//     metrics.
//
// The core package itself performs no I/O and is fully synchronous:
// registry construction from remote sources happens in the collaborator
// packages before a Converter is built.
package curies
