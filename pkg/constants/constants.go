package constants

import (
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

type ContextKey string

const (
	AppKey         ContextKey = "app"
	LoggerKey      ContextKey = "logger"
	RequestStart   ContextKey = "requestStart"
	ParamsKey      ContextKey = "params"
	SessionKey     ContextKey = "session"
	PageContext    ContextKey = "pageContext"
	NavItemsKey    ContextKey = "navItems"
	AllNavItemsKey ContextKey = "allNavItems"
	FlashToastsKey ContextKey = "flashToasts"
	HeadKey        ContextKey = "head"
	ConfigKey      ContextKey = "config"
)

const (
	DateFormat     = "2006-01-02"
	DateTimeFormat = "2006-01-02 15:04"
)

var (
	Validate = validator.New(validator.WithRequiredStructEnabled())

	// Translator renders validator errors in plain English when no
	// localized message exists for a tag.
	Translator ut.Translator
)

func init() {
	english := en.New()
	uni := ut.New(english, english)
	Translator, _ = uni.GetTranslator("en")
	if err := entranslations.RegisterDefaultTranslations(Validate, Translator); err != nil {
		panic(err)
	}
}
