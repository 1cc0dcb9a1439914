package validation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePayload() map[string]any {
	return map[string]any{
		"description":   "  <b>Lunch</b> at cafe  ",
		"amount":        json.Number("45.50"),
		"category":      " alimentacion ",
		"date":          "2025-03-15",
		"paymentMethod": " efectivo ",
		"notes":         "with \x00control\x01 chars\nkept newline",
		"tags":          []any{" Food ", "FOOD", "", "Travel"},
		"isRecurring":   "true",
	}
}

func TestSanitizeEscapesMarkupAndTrims(t *testing.T) {
	out := Sanitize(samplePayload())

	assert.Equal(t, "&lt;b&gt;Lunch&lt;/b&gt; at cafe", out["description"])
	assert.Equal(t, "alimentacion", out["category"])
	assert.Equal(t, "efectivo", out["paymentMethod"])
}

func TestSanitizeStripsControlCharsButKeepsWhitespace(t *testing.T) {
	out := Sanitize(samplePayload())

	assert.Equal(t, "withcontrol chars\nkept newline", out["notes"])
}

func TestSanitizeNormalizesTags(t *testing.T) {
	out := Sanitize(samplePayload())

	assert.Equal(t, []any{"food", "travel"}, out["tags"])
}

func TestSanitizeCoercesTypes(t *testing.T) {
	payload := map[string]any{
		"amount":      "100.25",
		"isRecurring": "true",
		"isEssential": "false",
	}
	out := Sanitize(payload)

	assert.Equal(t, json.Number("100.25"), out["amount"])
	assert.Equal(t, true, out["isRecurring"])
	assert.Equal(t, false, out["isEssential"])
}

func TestSanitizeLeavesMalformedValuesAlone(t *testing.T) {
	payload := map[string]any{
		"amount":      "not-a-number",
		"date":        "not-a-date",
		"isRecurring": "not-a-bool",
	}
	out := Sanitize(payload)

	assert.Equal(t, "not-a-number", out["amount"])
	assert.Equal(t, "not-a-date", out["date"])
	assert.Equal(t, "not-a-bool", out["isRecurring"])
}

func TestSanitizeCanonicalizesDates(t *testing.T) {
	cases := map[string]string{
		"2025-03-15":           "2025-03-15T00:00:00Z",
		"2025-03-15T10:30:00Z": "2025-03-15T10:30:00Z",
		"2025-03-15T10:30:00":  "2025-03-15T10:30:00Z",
		"2025-03-15 10:30:00":  "2025-03-15T10:30:00Z",
	}
	for in, want := range cases {
		out := Sanitize(map[string]any{"date": in})
		assert.Equal(t, want, out["date"], "input %q", in)
	}
}

func TestSanitizeIsIdempotent(t *testing.T) {
	once := Sanitize(samplePayload())
	twice := Sanitize(Sanitize(samplePayload()))

	assert.Equal(t, once, twice)

	// Escaped entities must survive a second pass untouched.
	again := Sanitize(map[string]any{"description": "&lt;b&gt;Lunch&lt;/b&gt;"})
	assert.Equal(t, "&lt;b&gt;Lunch&lt;/b&gt;", again["description"])
}

func TestDecodeBodyPreservesNumbers(t *testing.T) {
	payload, err := DecodeBody([]byte(`{"amount": 10.123}`))
	require.NoError(t, err)

	n, ok := payload["amount"].(json.Number)
	require.True(t, ok)
	assert.Equal(t, "10.123", n.String())
}

func TestDecodeBodyRejectsInvalidJSON(t *testing.T) {
	_, err := DecodeBody([]byte(`{"amount":`))
	assert.Error(t, err)
}
