package validation

import (
	"net/url"
	"regexp"
)

// dangerousPatterns match markup and URI schemes that have no business in a
// finance payload. The guard runs against the rawest available form of the
// request, before sanitization could mangle an encoded attack.
var dangerousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)<\s*script`),
	regexp.MustCompile(`(?i)javascript\s*:`),
	regexp.MustCompile(`(?i)\bon[a-z]+\s*=`),
	regexp.MustCompile(`(?i)<\s*(iframe|object|embed)\b`),
}

// ContainsDangerousString reports whether s matches any deny-list pattern.
func ContainsDangerousString(s string) bool {
	for _, p := range dangerousPatterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// ContainsDangerousContent recursively scans every string in a decoded JSON
// value. The first match wins; which field matched is deliberately not
// reported.
func ContainsDangerousContent(v any) bool {
	switch val := v.(type) {
	case string:
		return ContainsDangerousString(val)
	case map[string]any:
		for _, inner := range val {
			if ContainsDangerousContent(inner) {
				return true
			}
		}
	case []any:
		for _, inner := range val {
			if ContainsDangerousContent(inner) {
				return true
			}
		}
	}
	return false
}

// ContainsDangerousQuery scans all query parameter values.
func ContainsDangerousQuery(values url.Values) bool {
	for _, vs := range values {
		for _, v := range vs {
			if ContainsDangerousString(v) {
				return true
			}
		}
	}
	return false
}
