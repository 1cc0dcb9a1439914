package validation

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsDangerousString(t *testing.T) {
	dangerous := []string{
		"<script>alert(1)</script>",
		"< SCRIPT src=x>",
		"javascript:alert(1)",
		"JavaScript : void(0)",
		"<img onerror=alert(1)>",
		"onload = steal()",
		"<iframe src=x>",
		"< object data=x>",
		"<embed src=x>",
	}
	for _, s := range dangerous {
		assert.True(t, ContainsDangerousString(s), "should flag %q", s)
	}

	safe := []string{
		"Lunch at the corner cafe",
		"prescription refill", // contains "script" but not as a tag
		"paid online for concert",
		"transfer to main account",
	}
	for _, s := range safe {
		assert.False(t, ContainsDangerousString(s), "should not flag %q", s)
	}
}

func TestContainsDangerousContentScansNestedValues(t *testing.T) {
	payload := map[string]any{
		"description": "lunch",
		"tags":        []any{"food", "<script>x</script>"},
	}
	assert.True(t, ContainsDangerousContent(payload))

	clean := map[string]any{
		"description": "lunch",
		"tags":        []any{"food", "work"},
		"amount":      45.5,
	}
	assert.False(t, ContainsDangerousContent(clean))
}

func TestContainsDangerousQuery(t *testing.T) {
	assert.True(t, ContainsDangerousQuery(url.Values{"category": {"javascript:x"}}))
	assert.False(t, ContainsDangerousQuery(url.Values{"category": {"alimentacion"}, "limit": {"20"}}))
}
