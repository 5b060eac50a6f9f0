package utils

import (
	"net/url"
	"strings"
)

// RedactSource masks the password of a URL-style data source so it can be
// logged or shown. Plain file paths come back unchanged.
func RedactSource(source string) string {
	u, err := url.Parse(source)
	if err != nil {
		if strings.Contains(source, "@") {
			return "[redacted source]"
		}
		return source
	}
	if u.User == nil {
		return source
	}
	return u.Redacted()
}
