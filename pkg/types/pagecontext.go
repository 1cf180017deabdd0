package types

import (
	"net/url"

	"github.com/iota-uz/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/worktrack/worktrack/pkg/authz"
)

// PageContext carries per-request localization and permission state into
// templates.
type PageContext struct {
	Locale    language.Tag
	URL       *url.URL
	Localizer *i18n.Localizer
	Authz     *authz.ViewState
	prefix    string
}

func (p *PageContext) messageID(k string) string {
	if p.prefix != "" {
		return p.prefix + "." + k
	}
	return k
}

func (p *PageContext) T(k string, args ...map[string]interface{}) string {
	if len(args) > 1 {
		panic("T(): too many arguments")
	}
	cfg := &i18n.LocalizeConfig{MessageID: p.messageID(k)}
	if len(args) == 1 {
		cfg.TemplateData = args[0]
	}
	return p.Localizer.MustLocalize(cfg)
}

// TSafe is like T but returns an empty string instead of panicking.
func (p *PageContext) TSafe(k string, args ...map[string]interface{}) string {
	if len(args) > 1 {
		return ""
	}
	cfg := &i18n.LocalizeConfig{MessageID: p.messageID(k)}
	if len(args) == 1 {
		cfg.TemplateData = args[0]
	}
	result, err := p.Localizer.Localize(cfg)
	if err != nil {
		return ""
	}
	return result
}

// Namespace returns a copy whose message ids are prefixed with prefix.
func (p *PageContext) Namespace(prefix string) *PageContext {
	cp := *p
	cp.prefix = prefix
	return &cp
}

// Can reports whether the signed-in user holds permission.
func (p *PageContext) Can(permission string) bool {
	if p == nil {
		return false
	}
	return p.Authz.Can(permission)
}

// ToJSLocale maps the page locale to a BCP 47 tag for Intl.* APIs.
func (p *PageContext) ToJSLocale() string {
	switch p.Locale.String() {
	case "zh", "zh-CN", "zh-Hans":
		return "zh-CN"
	case "zh-TW", "zh-Hant":
		return "zh-TW"
	default:
		return "en-US"
	}
}
