// Package changes computes what an edit changed: a JSON patch for update
// events and a merge patch for partial PATCH bodies.
package changes

import (
	"encoding/json"
	"sort"
	"strings"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/go-faster/errors"
	"github.com/wI2L/jsondiff"
)

// Diff returns the RFC 6902 patch turning before into after, or nil when the
// two encode to the same JSON.
func Diff(before, after any) ([]byte, error) {
	patch, err := jsondiff.Compare(before, after)
	if err != nil {
		return nil, errors.Wrap(err, "compare")
	}
	if len(patch) == 0 {
		return nil, nil
	}
	return json.Marshal(patch)
}

// Fields lists the top-level fields a patch from Diff touches, sorted.
func Fields(patch []byte) []string {
	if len(patch) == 0 {
		return nil
	}
	var ops []struct {
		Path string `json:"path"`
	}
	if err := json.Unmarshal(patch, &ops); err != nil {
		return nil
	}
	seen := make(map[string]struct{}, len(ops))
	out := make([]string, 0, len(ops))
	for _, op := range ops {
		field := strings.SplitN(strings.TrimPrefix(op.Path, "/"), "/", 2)[0]
		if field == "" {
			continue
		}
		if _, ok := seen[field]; ok {
			continue
		}
		seen[field] = struct{}{}
		out = append(out, field)
	}
	sort.Strings(out)
	return out
}

// MergePatch returns the RFC 7386 merge patch turning before into after.
func MergePatch(before, after any) ([]byte, error) {
	original, err := json.Marshal(before)
	if err != nil {
		return nil, errors.Wrap(err, "marshal original")
	}
	modified, err := json.Marshal(after)
	if err != nil {
		return nil, errors.Wrap(err, "marshal modified")
	}
	patch, err := jsonpatch.CreateMergePatch(original, modified)
	if err != nil {
		return nil, errors.Wrap(err, "merge patch")
	}
	return patch, nil
}

// ApplyMergePatch applies a merge patch to v's JSON encoding and decodes the
// result into out.
func ApplyMergePatch(v any, patch []byte, out any) error {
	doc, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "marshal document")
	}
	merged, err := jsonpatch.MergePatch(doc, patch)
	if err != nil {
		return errors.Wrap(err, "apply merge patch")
	}
	return json.Unmarshal(merged, out)
}
