package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var underscoreRunRe = regexp.MustCompile(`_+`)

// snakeCase converts an identifier to snake_case. camelCase input is
// segmented at case transitions, kebab-case at dashes; any other
// non-alphanumeric run becomes a single underscore.
func snakeCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		switch {
		case unicode.IsUpper(r):
			if i > 0 && runes[i-1] != '_' {
				// Boundary before an upper rune: after a lower/digit run, or
				// at the end of an acronym (HTTPServer -> http_server).
				afterLower := !unicode.IsUpper(runes[i-1])
				beforeLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if afterLower || beforeLower {
					b.WriteRune('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := underscoreRunRe.ReplaceAllString(b.String(), "_")
	return strings.Trim(out, "_")
}

// deriveName builds an endpoint identifier from the HTTP method and URL
// template when no operationId is available. Path placeholders contribute
// a "by_<param>" token: GET /users/{userId} becomes get_users_by_user_id.
func deriveName(method, path string) string {
	parts := []string{strings.ToLower(method)}
	for _, seg := range strings.Split(strings.Trim(path, "/"), "/") {
		if seg == "" {
			continue
		}
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			inner := snakeCase(seg[1 : len(seg)-1])
			if inner != "" {
				parts = append(parts, "by", inner)
			}
			continue
		}
		if token := snakeCase(seg); token != "" {
			parts = append(parts, token)
		}
	}
	return strings.Join(parts, "_")
}

// uniqueName disambiguates colliding endpoint names deterministically:
// the first collision gets the HTTP method appended, any further ones a
// numeric suffix. seen is updated with the chosen name.
func uniqueName(name, method string, seen map[string]bool) string {
	if !seen[name] {
		seen[name] = true
		return name
	}
	withMethod := name + "_" + strings.ToLower(method)
	if !seen[withMethod] {
		seen[withMethod] = true
		return withMethod
	}
	for i := 2; ; i++ {
		candidate := withMethod + "_" + strconv.Itoa(i)
		if !seen[candidate] {
			seen[candidate] = true
			return candidate
		}
	}
}
