package templates

import (
	"fmt"
	"html"
	"strings"
)

func defaultHelperFuncs() map[string]any {
	return map[string]any{
		"is_absolute": isAbsoluteHelper,
	}
}

func isAbsoluteHelper(value any) bool {
	return IsAbsoluteURL(stringFromTemplateValue(value))
}

// IsAbsoluteURL reports whether raw starts with an http or https scheme.
func IsAbsoluteURL(raw string) bool {
	lower := strings.ToLower(strings.TrimSpace(raw))
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// EscapeAttr neutralizes characters that could end a quoted attribute value
// or open markup: & < > " and '.
func EscapeAttr(raw string) string {
	return html.EscapeString(raw)
}

func stringFromTemplateValue(value any) string {
	if value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
