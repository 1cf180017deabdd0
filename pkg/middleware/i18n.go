package middleware

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/iota-uz/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/worktrack/worktrack/pkg/composables"
	"github.com/worktrack/worktrack/pkg/intl"
)

// Application interface for accessing app config needed by localizer
type Application interface {
	Bundle() *i18n.Bundle
	GetSupportedLanguages() []string
}

const LocaleCookie = "lang"

func languageTagsFromCodes(codes []string) []language.Tag {
	supported := intl.GetSupportedLanguages(codes)
	tags := make([]language.Tag, len(supported))
	for i, lang := range supported {
		tags[i] = lang.Tag
	}
	return tags
}

func useLocaleFromUser(ctx context.Context) (language.Tag, error) {
	user, err := composables.UseUser(ctx)
	if err != nil {
		return language.Und, err
	}
	return language.Parse(user.Language)
}

func matchSupported(defaultLocale language.Tag, supported []language.Tag, candidates []language.Tag) language.Tag {
	if len(supported) == 0 {
		return defaultLocale
	}
	if len(candidates) == 0 {
		candidates = []language.Tag{defaultLocale}
	}
	matcher := language.NewMatcher(supported)
	_, idx, _ := matcher.Match(candidates...)
	return supported[idx]
}

// useLocale prefers the signed-in user's language, then the lang cookie, then
// Accept-Language.
func useLocale(r *http.Request, defaultLocale language.Tag, supported []language.Tag) language.Tag {
	if tag, err := useLocaleFromUser(r.Context()); err == nil {
		return matchSupported(defaultLocale, supported, []language.Tag{tag})
	}
	if c, err := r.Cookie(LocaleCookie); err == nil {
		if tag, err := language.Parse(c.Value); err == nil {
			return matchSupported(defaultLocale, supported, []language.Tag{tag})
		}
	}
	tags, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	if err != nil || len(tags) == 0 {
		return matchSupported(defaultLocale, supported, nil)
	}
	return matchSupported(defaultLocale, supported, tags)
}

func ProvideLocalizer(app Application) mux.MiddlewareFunc {
	bundle := app.Bundle()
	supportedLanguages := languageTagsFromCodes(app.GetSupportedLanguages())
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				locale := useLocale(r, language.English, supportedLanguages)
				ctx := intl.WithLocalizer(
					r.Context(),
					i18n.NewLocalizer(bundle, locale.String()),
				)
				ctx = intl.WithLocale(ctx, locale)
				next.ServeHTTP(w, r.WithContext(ctx))
			},
		)
	}
}
