package shared

import (
	"net/url"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-playground/form"
	"github.com/shopspring/decimal"
)

// DateOnly is a calendar date posted by <input type="date">.
type DateOnly time.Time

func (d DateOnly) Time() time.Time {
	return time.Time(d)
}

func (d DateOnly) IsZero() bool {
	return time.Time(d).IsZero()
}

func (d DateOnly) String() string {
	if d.IsZero() {
		return ""
	}
	return time.Time(d).Format(time.DateOnly)
}

func ParseDateOnly(s string) (DateOnly, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DateOnly{}, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return DateOnly{}, err
	}
	return DateOnly(t), nil
}

var Decoder = newDecoder()

// Unparsed records form fields whose raw value could not be decoded, such as
// "abc" posted for a number. Embed it in a DTO to have Validate report them.
type Unparsed struct {
	fields []string
}

func (u *Unparsed) MarkUnparsed(field string) {
	u.fields = append(u.fields, field)
}

func (u *Unparsed) UnparsedFields() []string {
	return u.fields
}

// DecodeForm fills v from values. When v embeds Unparsed, per-field failures
// are kept on v and the rest of the form is still decoded.
func DecodeForm(v any, values url.Values) error {
	err := Decoder.Decode(v, values)
	if err == nil {
		return nil
	}
	u, ok := v.(interface{ MarkUnparsed(field string) })
	var derrs form.DecodeErrors
	if !ok || !errors.As(err, &derrs) {
		return err
	}
	for field := range derrs {
		u.MarkUnparsed(field)
	}
	return nil
}

func newDecoder() *form.Decoder {
	d := form.NewDecoder()
	d.RegisterCustomTypeFunc(func(vals []string) (interface{}, error) {
		return ParseDateOnly(vals[0])
	}, DateOnly{})
	d.RegisterCustomTypeFunc(func(vals []string) (interface{}, error) {
		v := strings.TrimSpace(vals[0])
		if v == "" {
			return decimal.Zero, nil
		}
		return decimal.NewFromString(v)
	}, decimal.Decimal{})
	d.RegisterCustomTypeFunc(func(vals []string) (interface{}, error) {
		switch strings.ToLower(strings.TrimSpace(vals[0])) {
		case "on", "true", "1", "yes":
			return true, nil
		default:
			return false, nil
		}
	}, false)
	return d
}
