package shortener

import (
	"net/url"
	"strings"
)

// SameOrigin reports whether target may be shortened by a request coming
// from origin (a "scheme://host" string). Relative paths are always
// allowed; absolute URLs must match the origin exactly on scheme and
// host. This is what keeps the service from being used as an open
// redirector to arbitrary external hosts.
func SameOrigin(origin, target string) bool {
	if strings.HasPrefix(target, "/") {
		return true
	}

	u, err := url.Parse(target)
	if err != nil {
		return false
	}

	if u.Scheme == "" || u.Host == "" {
		return false
	}

	return u.Scheme+"://"+u.Host == origin
}

// NormalizePath reduces target to a relative path, preserving the query
// string and dropping any fragment. Relative targets are returned as-is.
func NormalizePath(target string) string {
	if strings.HasPrefix(target, "/") {
		return target
	}

	u, err := url.Parse(target)
	if err != nil {
		return target
	}

	path := u.Path
	if path == "" {
		path = "/"
	}

	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}

	return path
}
