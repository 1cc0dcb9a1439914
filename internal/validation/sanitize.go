package validation

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/fintrack-io/fintrack_backend/internal/dto"
)

// DecodeBody decodes a JSON request body into a generic map, preserving
// numbers as json.Number so the schema validator can inspect the decimal
// string exactly as sent.
func DecodeBody(body []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// markupEscaper escapes markup-significant characters in free text.
// Ampersands are deliberately left alone so the transform is idempotent:
// a second pass over escaped output finds nothing left to replace.
var markupEscaper = strings.NewReplacer(
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// Sanitize normalizes a decoded transaction payload in place and returns it.
// It only ever transforms, never rejects: values it cannot make sense of are
// left for the schema validator to flag.
func Sanitize(payload map[string]any) map[string]any {
	for _, field := range []string{"description", "notes"} {
		if s, ok := payload[field].(string); ok {
			payload[field] = cleanText(s)
		}
	}
	if s, ok := payload["category"].(string); ok {
		payload["category"] = strings.TrimSpace(s)
	}
	if s, ok := payload["paymentMethod"].(string); ok {
		payload["paymentMethod"] = strings.TrimSpace(s)
	}
	if s, ok := payload["recurringFrequency"].(string); ok {
		payload["recurringFrequency"] = strings.TrimSpace(s)
	}
	if tags, ok := payload["tags"].([]any); ok {
		payload["tags"] = sanitizeTags(tags)
	}
	if s, ok := payload["amount"].(string); ok {
		trimmed := strings.TrimSpace(s)
		if _, err := strconv.ParseFloat(trimmed, 64); err == nil {
			payload["amount"] = json.Number(trimmed)
		}
	}
	for _, field := range []string{"isRecurring", "isEssential"} {
		if s, ok := payload[field].(string); ok {
			if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
				payload[field] = b
			}
		}
	}
	if s, ok := payload["date"].(string); ok {
		payload["date"] = canonicalDate(strings.TrimSpace(s))
	}
	return payload
}

// cleanText trims, strips control characters and escapes markup from free text.
func cleanText(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, s)
	return markupEscaper.Replace(strings.TrimSpace(s))
}

// sanitizeTags lowercases and trims tag entries, dropping empties and
// duplicates while preserving the first-seen order.
func sanitizeTags(tags []any) []any {
	out := make([]any, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		s, ok := t.(string)
		if !ok {
			out = append(out, t)
			continue
		}
		s = strings.ToLower(strings.TrimSpace(cleanText(s)))
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

var inputDateLayouts = []string{
	dto.DateLayoutFull,
	"2006-01-02T15:04:05",
	dto.DateLayoutDay,
	"2006-01-02 15:04:05",
}

// canonicalDate parses a date-like string and reformats it as RFC3339.
// The original value survives when nothing parses, so the validator can
// reject it with the value the client actually sent.
func canonicalDate(s string) string {
	for _, layout := range inputDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format(time.RFC3339)
		}
	}
	return s
}
