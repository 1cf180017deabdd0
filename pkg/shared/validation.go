package shared

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"

	"github.com/worktrack/worktrack/pkg/constants"
	"github.com/worktrack/worktrack/pkg/intl"
)

// Validate runs the struct tags of v and returns localized messages keyed by
// field name. Field labels are looked up as "<ns>.<Field>".
//
// Fields v could not decode are reported as "invalid" and win over the tag
// rules, which only saw their zero value.
func Validate(ctx context.Context, ns string, v any) (map[string]string, bool) {
	messages := map[string]string{}
	if errs := constants.Validate.Struct(v); errs != nil {
		messages = ValidationMessages(ctx, ns, errs)
	}
	if u, ok := v.(interface{ UnparsedFields() []string }); ok {
		for _, field := range u.UnparsedFields() {
			messages[field] = fieldMessage(ctx, ns, field, "invalid", "", field+" is not a valid value")
		}
	}
	return messages, len(messages) == 0
}

func ValidationMessages(ctx context.Context, ns string, err error) map[string]string {
	out := map[string]string{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return out
	}
	for _, fe := range verrs {
		out[fe.Field()] = fieldMessage(ctx, ns, fe.Field(), fe.Tag(), fe.Param(), fe.Translate(constants.Translator))
	}
	return out
}

func fieldMessage(ctx context.Context, ns, field, tag, param, fallback string) string {
	label := intl.T(ctx, fmt.Sprintf("%s.%s", ns, field), field)
	return intl.T(ctx, fmt.Sprintf("ValidationErrors.%s", tag), fallback, map[string]interface{}{
		"Field": label,
		"Param": param,
	})
}

// FieldError renders the localized message of a rule checked outside the
// struct tags, e.g. decimal bounds.
func FieldError(ctx context.Context, ns, field, tag, param string) string {
	return fieldMessage(ctx, ns, field, tag, param, field+" is invalid")
}

// CheckDateRange adds a gtefield error on endField when end is before start.
// Either date left empty passes.
func CheckDateRange(ctx context.Context, ns string, errs map[string]string, startField string, start DateOnly, endField string, end DateOnly) {
	if start.IsZero() || end.IsZero() || !end.Time().Before(start.Time()) {
		return
	}
	if _, ok := errs[endField]; ok {
		return
	}
	startLabel := intl.T(ctx, fmt.Sprintf("%s.%s", ns, startField), startField)
	errs[endField] = fieldMessage(ctx, ns, endField, "gtefield", startLabel, endField+" must not be before "+startLabel)
}
