// Package sources builds converters from well-known public registries:
// the OBO Foundry context, the prefixcommons Gene Ontology and Monarch
// Initiative contexts, and the Bioregistry extended prefix map.
package sources

import (
	"context"

	"github.com/c360/curies"
	"github.com/c360/curies/fetch"
	"github.com/c360/curies/loader"
)

// Registry document locations.
const (
	// OBOContextURL is the OBO Foundry context: a simple prefix map in a
	// JSON-LD file with OBO preferred prefixes and OBO PURL expansions,
	// no synonyms.
	OBOContextURL = "https://purl.obolibrary.org/meta/obo_context.jsonld"

	// GOContextURL is the prefixcommons-maintained Gene Ontology
	// context.
	GOContextURL = "https://raw.githubusercontent.com/prefixcommons/prefixcommons-py/master/prefixcommons/registry/go_context.jsonld"

	// MonarchContextURL is the prefixcommons-maintained Monarch
	// Initiative context, a project-specific mix of GO, OBO, and
	// Identifiers.org prefixes with some overlapping entries.
	MonarchContextURL = "https://raw.githubusercontent.com/prefixcommons/prefixcommons-py/master/prefixcommons/registry/monarch_context.jsonld"

	// BioregistryURL is the Bioregistry extended prefix map, the only
	// bundled source carrying synonyms and patterns.
	BioregistryURL = "https://raw.githubusercontent.com/biopragmatics/bioregistry/main/exports/contexts/bioregistry.epm.json"
)

// NewOBOConverter fetches the OBO Foundry context and builds a converter
// from it. A nil client uses a default fetch client.
func NewOBOConverter(ctx context.Context, client *fetch.Client) (*curies.Converter, error) {
	return jsonldConverter(ctx, client, OBOContextURL)
}

// NewGOConverter fetches the Gene Ontology context and builds a
// converter from it.
func NewGOConverter(ctx context.Context, client *fetch.Client) (*curies.Converter, error) {
	return jsonldConverter(ctx, client, GOContextURL)
}

// NewMonarchConverter fetches the Monarch Initiative context and builds
// a converter from it.
func NewMonarchConverter(ctx context.Context, client *fetch.Client) (*curies.Converter, error) {
	return jsonldConverter(ctx, client, MonarchContextURL)
}

// NewBioregistryConverter fetches the Bioregistry extended prefix map
// and builds a converter from it, synonyms and patterns included.
func NewBioregistryConverter(ctx context.Context, client *fetch.Client) (*curies.Converter, error) {
	data, err := document(ctx, client, BioregistryURL)
	if err != nil {
		return nil, err
	}
	return loader.ConverterFromExtendedPrefixMap(data)
}

func jsonldConverter(ctx context.Context, client *fetch.Client, url string) (*curies.Converter, error) {
	data, err := document(ctx, client, url)
	if err != nil {
		return nil, err
	}
	return loader.ConverterFromJSONLD(data)
}

func document(ctx context.Context, client *fetch.Client, url string) ([]byte, error) {
	if client == nil {
		client = fetch.NewClient()
	}
	return client.Document(ctx, url)
}
