package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "not found",
			err:      NotFound("doid"),
			expected: "not found: doid",
		},
		{
			name:     "invalid curie",
			err:      InvalidCURIE("doid"),
			expected: "invalid CURIE: doid",
		},
		{
			name:     "invalid format",
			err:      InvalidFormat("JSON-LD"),
			expected: "invalid format: JSON-LD",
		},
		{
			name:     "invalid format formatted",
			err:      InvalidFormatf("bad pattern %q", "[a-"),
			expected: `invalid format: bad pattern "[a-"`,
		},
		{
			name:     "duplicate record",
			err:      Duplicate("GO"),
			expected: "duplicate record: GO",
		},
		{
			name:     "fetch with cause",
			err:      Fetch("https://example.org/ctx.jsonld", stderrors.New("timeout")),
			expected: "fetch failed: https://example.org/ctx.jsonld: timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestClassification(t *testing.T) {
	assert.True(t, IsNotFound(NotFound("x")))
	assert.True(t, IsInvalidCURIE(InvalidCURIE("x")))
	assert.True(t, IsInvalidFormat(InvalidFormat("x")))
	assert.True(t, IsDuplicate(Duplicate("x")))
	assert.True(t, IsFetch(Fetch("x", nil)))

	assert.False(t, IsNotFound(Duplicate("x")))
	assert.False(t, IsDuplicate(stderrors.New("plain")))
	assert.False(t, IsNotFound(nil))
}

func TestClassificationThroughWrapping(t *testing.T) {
	err := fmt.Errorf("outer: %w", NotFound("doid"))
	assert.True(t, IsNotFound(err))

	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindNotFound, kind)

	_, ok = KindOf(stderrors.New("plain"))
	assert.False(t, ok)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "not_found", KindNotFound.String())
	assert.Equal(t, "invalid_curie", KindInvalidCURIE.String())
	assert.Equal(t, "invalid_format", KindInvalidFormat.String())
	assert.Equal(t, "duplicate_record", KindDuplicateRecord.String())
	assert.Equal(t, "fetch", KindFetch.String())
	assert.Equal(t, "unknown", Kind(99).String())
}

func TestWrap(t *testing.T) {
	base := NotFound("doid")
	wrapped := Wrap(base, "Converter", "Expand", "prefix lookup")
	require.Error(t, wrapped)
	assert.Equal(t, "Converter.Expand: prefix lookup failed: not found: doid", wrapped.Error())
	assert.True(t, IsNotFound(wrapped))

	assert.NoError(t, Wrap(nil, "Converter", "Expand", "prefix lookup"))
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Fetch("https://example.org", cause)
	assert.True(t, stderrors.Is(err, cause))
}
