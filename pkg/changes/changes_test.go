package changes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Name   string   `json:"name"`
	Status string   `json:"status"`
	Tags   []string `json:"tags"`
}

func TestDiff(t *testing.T) {
	before := record{Name: "a", Status: "todo", Tags: []string{"x"}}
	after := record{Name: "a", Status: "done", Tags: []string{"x", "y"}}

	patch, err := Diff(before, after)
	require.NoError(t, err)
	assert.Equal(t, []string{"status", "tags"}, Fields(patch))
}

func TestDiff_Unchanged(t *testing.T) {
	patch, err := Diff(record{Name: "a"}, record{Name: "a"})
	require.NoError(t, err)
	assert.Nil(t, patch)
	assert.Nil(t, Fields(patch))
}

func TestMergePatch(t *testing.T) {
	patch, err := MergePatch(
		map[string]any{"status": "todo", "progress": 10},
		map[string]any{"status": "in_progress", "progress": 10},
	)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"in_progress"}`, string(patch))

	var out record
	require.NoError(t, ApplyMergePatch(record{Name: "a", Status: "todo"}, patch, &out))
	assert.Equal(t, record{Name: "a", Status: "in_progress"}, out)
}
