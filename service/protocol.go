package service

import (
	"github.com/c360/curies/errors"
)

// NATS subjects served by the conversion service.
const (
	SubjectExpand            = "curies.expand"
	SubjectCompress          = "curies.compress"
	SubjectExpandList        = "curies.expand.list"
	SubjectCompressList      = "curies.compress.list"
	SubjectStandardizePrefix = "curies.standardize.prefix"
	SubjectStandardizeCURIE  = "curies.standardize.curie"
	SubjectStandardizeURI    = "curies.standardize.uri"
	SubjectPrefixMap         = "curies.prefixmap"
)

// ConvertRequest is the payload for single-input operations.
type ConvertRequest struct {
	Input string `json:"input"`
}

// ConvertResponse is the payload for single-output operations.
type ConvertResponse struct {
	Output string     `json:"output,omitempty"`
	Error  *ErrorInfo `json:"error,omitempty"`
}

// ListRequest is the payload for batch operations. Passthrough defaults
// to true: failed items echo their input instead of a null slot.
type ListRequest struct {
	Inputs      []string `json:"inputs"`
	Passthrough *bool    `json:"passthrough,omitempty"`
}

// ListResponse is the payload for batch operations. Failed items are
// null when passthrough is disabled.
type ListResponse struct {
	Outputs []*string  `json:"outputs"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// PrefixMapResponse carries the registry's simple prefix map.
type PrefixMapResponse struct {
	PrefixMap map[string]string `json:"prefix_map"`
	Error     *ErrorInfo        `json:"error,omitempty"`
}

// ErrorInfo renders a library error over the wire: the error kind as
// category plus a human-readable message.
type ErrorInfo struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// errorInfo converts an error to its wire form.
func errorInfo(err error) *ErrorInfo {
	kind := "internal"
	if k, ok := errors.KindOf(err); ok {
		kind = k.String()
	}
	return &ErrorInfo{Kind: kind, Message: err.Error()}
}

// errorResponse is the generic failure envelope used when a request
// cannot be decoded or handled.
type errorResponse struct {
	Error *ErrorInfo `json:"error"`
}
