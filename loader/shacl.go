package loader

import (
	"regexp"
	"strings"

	"github.com/c360/curies/errors"
)

// SHACL prefix declarations in Turtle look like:
//
//	[] sh:declare
//	    [ sh:prefix "doid" ; sh:namespace "http://purl.obolibrary.org/obo/DOID_"^^xsd:anyURI ] .
//
// This reader scans declaration blank nodes for sh:prefix/sh:namespace
// pairs. It is not a general Turtle parser: declarations must use the
// conventional sh: prefix, and only string literals and IRI objects are
// recognized for the namespace.
var (
	declarationBlock = regexp.MustCompile(`\[[^\[\]]*\]`)
	shPrefixLiteral  = regexp.MustCompile(`sh:prefix\s+"((?:[^"\\]|\\.)*)"`)
	shNamespaceTerm  = regexp.MustCompile(`sh:namespace\s+(?:"((?:[^"\\]|\\.)*)"|<([^>]*)>)`)

	turtleUnescaper = strings.NewReplacer(`\\`, `\`, `\"`, `"`, `\n`, "\n", `\r`, "\r", `\t`, "\t")
)

// ParseSHACL extracts prefix declarations from a SHACL shapes document in
// the Turtle format. Declaration blocks carrying both sh:prefix and
// sh:namespace contribute one prefix -> URI prefix entry; a document with
// sh:declare statements but no readable declarations is an InvalidFormat
// error, while a document without any declarations yields an empty map.
func ParseSHACL(data []byte) (map[string]string, error) {
	text := string(data)
	out := make(map[string]string)
	for _, block := range declarationBlock.FindAllString(text, -1) {
		prefixMatch := shPrefixLiteral.FindStringSubmatch(block)
		nsMatch := shNamespaceTerm.FindStringSubmatch(block)
		if prefixMatch == nil || nsMatch == nil {
			continue
		}
		prefix := turtleUnescaper.Replace(prefixMatch[1])
		namespace := nsMatch[2] // IRI form
		if nsMatch[1] != "" {
			namespace = turtleUnescaper.Replace(nsMatch[1]) // literal form
		}
		if namespace == "" {
			continue
		}
		out[prefix] = namespace
	}
	if len(out) == 0 && strings.Contains(text, "sh:declare") {
		return nil, errors.InvalidFormat("SHACL: no readable prefix declarations")
	}
	return out, nil
}
