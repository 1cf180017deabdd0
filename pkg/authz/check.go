package authz

// HasPermission reports whether the granted permission list covers required.
// Evaluation belongs to the backend: this only matches the list it returned
// at login, honoring "*" and "<resource>.*" grants.
func HasPermission(granted []string, required string) bool {
	required = NormalizePermission(required)
	if required == "" {
		return true
	}
	resource, _ := SplitPermission(required)
	allowed := false
	for _, g := range granted {
		g = NormalizePermission(g)
		if g == Wildcard || g == required || g == resource+separator+Wildcard {
			allowed = true
			break
		}
	}
	recordCheck(required, allowed)
	return allowed
}

// HasAny reports whether at least one of required is granted.
func HasAny(granted []string, required ...string) bool {
	for _, r := range required {
		if HasPermission(granted, r) {
			return true
		}
	}
	return len(required) == 0
}
