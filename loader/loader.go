// Package loader parses external registry formats into curies records:
// extended prefix maps (JSON), simple prefix maps (JSON and YAML),
// JSON-LD context documents, and SHACL prefix declarations in Turtle.
//
// The loaders are pure transformations over in-memory bytes; retrieval of
// remote documents belongs to the fetch package.
package loader

import (
	"encoding/json"

	"github.com/buger/jsonparser"
	"gopkg.in/yaml.v3"

	"github.com/c360/curies"
	"github.com/c360/curies/errors"
)

// ParseExtendedPrefixMap parses a JSON array of record objects, the
// lossless extended prefix map format. The output round-trips through
// Converter.WriteExtendedPrefixMap.
func ParseExtendedPrefixMap(data []byte) ([]curies.Record, error) {
	var records []curies.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.InvalidFormatf("extended prefix map: %v", err)
	}
	return records, nil
}

// ParsePrefixMap parses a simple JSON object of prefix -> URI prefix.
// Non-string values are skipped.
func ParsePrefixMap(data []byte) (map[string]string, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.InvalidFormatf("prefix map: %v", err)
	}
	return stringEntries(raw), nil
}

// ParsePrefixMapYAML parses a simple YAML mapping of prefix -> URI
// prefix. Non-string values are skipped.
func ParsePrefixMapYAML(data []byte) (map[string]string, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.InvalidFormatf("YAML prefix map: %v", err)
	}
	return stringEntries(raw), nil
}

func stringEntries(raw map[string]any) map[string]string {
	out := make(map[string]string, len(raw))
	for key, value := range raw {
		if s, ok := value.(string); ok {
			out[key] = s
		}
	}
	return out
}

// ParseJSONLD extracts prefix declarations from the @context object of a
// JSON-LD document. Plain string values are taken as URI prefixes, and
// expanded term definitions of the form {"@id": uri, "@prefix": true}
// are honored; all other context entries are skipped. A document without
// an @context object is an InvalidFormat error.
func ParseJSONLD(data []byte) (map[string]string, error) {
	context, dataType, _, err := jsonparser.Get(data, "@context")
	if err != nil || dataType != jsonparser.Object {
		return nil, errors.InvalidFormat("JSON-LD")
	}
	out := make(map[string]string)
	err = jsonparser.ObjectEach(context, func(key, value []byte, vt jsonparser.ValueType, _ int) error {
		prefix := string(key)
		switch vt {
		case jsonparser.String:
			uri, err := jsonparser.ParseString(value)
			if err != nil {
				return nil // skip malformed entries, keep scanning
			}
			out[prefix] = uri
		case jsonparser.Object:
			isPrefix, err := jsonparser.GetBoolean(value, "@prefix")
			if err != nil || !isPrefix {
				return nil
			}
			if uri, err := jsonparser.GetString(value, "@id"); err == nil {
				out[prefix] = uri
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.InvalidFormatf("JSON-LD context: %v", err)
	}
	return out, nil
}

// ConverterFromExtendedPrefixMap builds a Converter from extended prefix
// map bytes.
func ConverterFromExtendedPrefixMap(data []byte, opts ...curies.Option) (*curies.Converter, error) {
	records, err := ParseExtendedPrefixMap(data)
	if err != nil {
		return nil, err
	}
	return curies.FromRecords(records, opts...)
}

// ConverterFromPrefixMap builds a Converter from simple JSON prefix map
// bytes.
func ConverterFromPrefixMap(data []byte, opts ...curies.Option) (*curies.Converter, error) {
	prefixMap, err := ParsePrefixMap(data)
	if err != nil {
		return nil, err
	}
	return curies.FromPrefixMap(prefixMap, opts...)
}

// ConverterFromPrefixMapYAML builds a Converter from YAML prefix map
// bytes.
func ConverterFromPrefixMapYAML(data []byte, opts ...curies.Option) (*curies.Converter, error) {
	prefixMap, err := ParsePrefixMapYAML(data)
	if err != nil {
		return nil, err
	}
	return curies.FromPrefixMap(prefixMap, opts...)
}

// ConverterFromJSONLD builds a Converter from a JSON-LD context document.
func ConverterFromJSONLD(data []byte, opts ...curies.Option) (*curies.Converter, error) {
	prefixMap, err := ParseJSONLD(data)
	if err != nil {
		return nil, err
	}
	return curies.FromPrefixMap(prefixMap, opts...)
}

// ConverterFromSHACL builds a Converter from SHACL prefix declarations.
func ConverterFromSHACL(data []byte, opts ...curies.Option) (*curies.Converter, error) {
	prefixMap, err := ParseSHACL(data)
	if err != nil {
		return nil, err
	}
	return curies.FromPrefixMap(prefixMap, opts...)
}
