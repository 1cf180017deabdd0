package types

import (
	"github.com/a-h/templ"
)

type NavigationItem struct {
	Name     string
	Href     string
	Children []NavigationItem
	Icon     templ.Component
	// Permission hides the item from users not granted it. Empty means visible.
	Permission string
}

// Filter drops items the can func rejects. Parents left without children are
// dropped too, and a parent with one remaining child collapses into it.
func Filter(items []NavigationItem, can func(permission string) bool) []NavigationItem {
	out := make([]NavigationItem, 0, len(items))
	for _, item := range items {
		if item.Permission != "" && !can(item.Permission) {
			continue
		}
		if len(item.Children) == 0 {
			out = append(out, item)
			continue
		}
		children := Filter(item.Children, can)
		switch len(children) {
		case 0:
		case 1:
			out = append(out, children[0])
		default:
			item.Children = children
			out = append(out, item)
		}
	}
	return out
}
