package user

import "github.com/go-faster/errors"

type UILanguage string

const (
	UILanguageEN UILanguage = "en"
	UILanguageZH UILanguage = "zh"
)

var ErrInvalidLanguage = errors.New("invalid language")

func NewUILanguage(l string) (UILanguage, error) {
	language := UILanguage(l)
	if !language.IsValid() {
		return "", errors.Wrapf(ErrInvalidLanguage, "%q", l)
	}
	return language, nil
}

func (l UILanguage) IsValid() bool {
	switch l {
	case UILanguageEN, UILanguageZH:
		return true
	}
	return false
}

// OrDefault returns l, or English when l is not supported.
func (l UILanguage) OrDefault() UILanguage {
	if l.IsValid() {
		return l
	}
	return UILanguageEN
}
