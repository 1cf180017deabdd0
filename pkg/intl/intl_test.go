package intl

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/iota-uz/go-i18n/v2/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestGetSupportedLanguages(t *testing.T) {
	assert.Len(t, GetSupportedLanguages(nil), 2)

	only := GetSupportedLanguages([]string{"zh", "fr"})
	require.Len(t, only, 1)
	assert.Equal(t, language.Chinese, only[0].Tag)
}

func TestT_FallsBack(t *testing.T) {
	assert.Equal(t, "fallback", T(context.Background(), "Missing", "fallback"))

	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
	bundle.MustParseMessageFileBytes([]byte(`{"Hello": "Hello {{.Name}}"}`), "en.json")
	ctx := WithLocalizer(context.Background(), i18n.NewLocalizer(bundle, "en"))

	assert.Equal(t, "Hello Ann", T(ctx, "Hello", "x", map[string]interface{}{"Name": "Ann"}))
	assert.Equal(t, "x", T(ctx, "Nope", "x"))
	assert.Equal(t, "Hello Bo", MustT(ctx, "Hello", map[string]interface{}{"Name": "Bo"}))
}

func TestMustT_PanicsWithoutLocalizer(t *testing.T) {
	assert.PanicsWithValue(t, ErrNoLocalizer, func() {
		MustT(context.Background(), "Hello")
	})
}
