package validator

import (
	"net/url"
	"strings"
)

func isURL(value string, requireHTTP bool) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}
	if err := syntax.Var(value, "url"); err != nil {
		return false
	}
	if !requireHTTP {
		return true
	}

	u, err := url.Parse(value)
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return u.Host != ""
	default:
		return false
	}
}
