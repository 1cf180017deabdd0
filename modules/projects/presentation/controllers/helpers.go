package controllers

import (
	"net/url"
	"strconv"
	"strings"
)

// isDetailURL reports whether the page the htmx request came from is path.
func isDetailURL(current, path string) bool {
	if current == "" {
		return false
	}
	u, err := url.Parse(current)
	if err != nil {
		return false
	}
	return strings.TrimSuffix(u.Path, "/") == path
}

func parseID(raw string) int64 {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}
