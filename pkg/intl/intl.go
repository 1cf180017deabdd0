package intl

import (
	"context"
	"errors"
	"slices"

	"github.com/iota-uz/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

type SupportedLanguage struct {
	Code        string
	VerboseName string
	Tag         language.Tag
}

var (
	// allSupportedLanguages is the master list of UI languages
	allSupportedLanguages = []SupportedLanguage{
		{
			Code:        "en",
			VerboseName: "English",
			Tag:         language.English,
		},
		{
			Code:        "zh",
			VerboseName: "中文",
			Tag:         language.Chinese,
		},
	}

	SupportedLanguages = allSupportedLanguages
)

// GetSupportedLanguages returns the languages whose codes appear in
// whitelist, or every language when whitelist is empty.
func GetSupportedLanguages(whitelist []string) []SupportedLanguage {
	if len(whitelist) == 0 {
		return allSupportedLanguages
	}
	out := make([]SupportedLanguage, 0, len(whitelist))
	for _, lang := range allSupportedLanguages {
		if slices.Contains(whitelist, lang.Code) {
			out = append(out, lang)
		}
	}
	return out
}

var ErrNoLocalizer = errors.New("localizer not found in context")

type localizerKey struct{}

type localeKey struct{}

func WithLocalizer(ctx context.Context, l *i18n.Localizer) context.Context {
	return context.WithValue(ctx, localizerKey{}, l)
}

func UseLocalizer(ctx context.Context) (*i18n.Localizer, bool) {
	l, ok := ctx.Value(localizerKey{}).(*i18n.Localizer)
	return l, ok && l != nil
}

func WithLocale(ctx context.Context, tag language.Tag) context.Context {
	return context.WithValue(ctx, localeKey{}, tag)
}

func UseLocale(ctx context.Context) (language.Tag, bool) {
	tag, ok := ctx.Value(localeKey{}).(language.Tag)
	return tag, ok
}

// MustT localizes messageID with the request localizer and panics when the
// context carries none.
func MustT(ctx context.Context, messageID string, data ...map[string]interface{}) string {
	l, ok := UseLocalizer(ctx)
	if !ok {
		panic(ErrNoLocalizer)
	}
	cfg := &i18n.LocalizeConfig{MessageID: messageID}
	if len(data) > 0 {
		cfg.TemplateData = data[0]
	}
	return l.MustLocalize(cfg)
}

// T is like MustT but falls back to fallback when the message or the
// localizer is missing.
func T(ctx context.Context, messageID, fallback string, data ...map[string]interface{}) string {
	l, ok := UseLocalizer(ctx)
	if !ok {
		return fallback
	}
	cfg := &i18n.LocalizeConfig{MessageID: messageID}
	if len(data) > 0 {
		cfg.TemplateData = data[0]
	}
	msg, err := l.Localize(cfg)
	if err != nil || msg == "" {
		return fallback
	}
	return msg
}
