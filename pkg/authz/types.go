package authz

import "strings"

const (
	// Wildcard granted on its own means every permission.
	Wildcard  = "*"
	separator = "."
)

// Permission builds the "<resource>.<action>" key the backend grants to roles.
func Permission(resource, action string) string {
	return NormalizePermission(resource + separator + action)
}

// NormalizePermission lower-cases and trims a permission key.
func NormalizePermission(p string) string {
	return strings.ToLower(strings.TrimSpace(p))
}

// SplitPermission returns the resource and action parts of a permission key.
func SplitPermission(p string) (string, string) {
	p = NormalizePermission(p)
	idx := strings.LastIndex(p, separator)
	if idx < 0 {
		return p, ""
	}
	return p[:idx], p[idx+1:]
}
