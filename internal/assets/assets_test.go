package assets

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPath_IsHashed(t *testing.T) {
	p := Path("js/app.js")
	assert.True(t, strings.HasPrefix(p, "/assets/js/app-"))
	assert.True(t, strings.HasSuffix(p, ".js"))

	_, err := fs.Stat(HashFS, strings.TrimPrefix(p, "/assets/"))
	require.NoError(t, err)
}
