package application

import (
	"os"
	"sort"

	"github.com/go-faster/errors"
	"gopkg.in/yaml.v3"

	"github.com/worktrack/worktrack/pkg/authz"
)

// PermissionGroup is one block of checkboxes on the role permission matrix.
type PermissionGroup struct {
	Name        string   `yaml:"name"`
	Label       string   `yaml:"label"`
	Permissions []string `yaml:"permissions"`
}

// PermissionSchema groups permission keys for display. The backend remains
// the source of truth for which permissions exist.
type PermissionSchema struct {
	Groups []PermissionGroup `yaml:"groups"`
}

func ParsePermissionSchema(data []byte) (*PermissionSchema, error) {
	var s PermissionSchema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(err, "parse permission schema")
	}
	for i, g := range s.Groups {
		if g.Name == "" {
			return nil, errors.Errorf("permission group %d has no name", i)
		}
		for j, p := range g.Permissions {
			s.Groups[i].Permissions[j] = authz.NormalizePermission(p)
		}
	}
	return &s, nil
}

func LoadPermissionSchemaFile(path string) (*PermissionSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return ParsePermissionSchema(data)
}

// Merge appends other's groups. Groups with the same name are combined and
// duplicate permissions are skipped.
func (s *PermissionSchema) Merge(other *PermissionSchema) {
	if other == nil {
		return
	}
	for _, g := range other.Groups {
		idx := s.indexOf(g.Name)
		if idx < 0 {
			s.Groups = append(s.Groups, PermissionGroup{Name: g.Name, Label: g.Label})
			idx = len(s.Groups) - 1
		}
		target := &s.Groups[idx]
		if target.Label == "" {
			target.Label = g.Label
		}
		for _, p := range g.Permissions {
			if !contains(target.Permissions, p) {
				target.Permissions = append(target.Permissions, p)
			}
		}
	}
}

// Override replaces groups that share a name with one in other and appends
// the rest. An empty label in other keeps the existing one.
func (s *PermissionSchema) Override(other *PermissionSchema) {
	if other == nil {
		return
	}
	for _, g := range other.Groups {
		idx := s.indexOf(g.Name)
		if idx < 0 {
			s.Groups = append(s.Groups, g)
			continue
		}
		if g.Label != "" {
			s.Groups[idx].Label = g.Label
		}
		s.Groups[idx].Permissions = append([]string(nil), g.Permissions...)
	}
}

func (s *PermissionSchema) indexOf(name string) int {
	for i, g := range s.Groups {
		if g.Name == name {
			return i
		}
	}
	return -1
}

// GroupOf returns the group holding permission, or "" when none does.
func (s *PermissionSchema) GroupOf(permission string) string {
	key := authz.NormalizePermission(permission)
	for _, g := range s.Groups {
		if contains(g.Permissions, key) {
			return g.Name
		}
	}
	return ""
}

// Ungrouped returns the keys not covered by any group, sorted.
func (s *PermissionSchema) Ungrouped(keys []string) []string {
	var out []string
	for _, k := range keys {
		if s.GroupOf(k) == "" {
			out = append(out, authz.NormalizePermission(k))
		}
	}
	sort.Strings(out)
	return out
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
