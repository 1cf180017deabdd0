package dtos

import (
	"context"

	"github.com/worktrack/worktrack/pkg/shared"
)

// LanguageDTO is posted by the language switch.
type LanguageDTO struct {
	Language string `validate:"required,oneof=en zh"`
}

func (d *LanguageDTO) Ok(ctx context.Context) (map[string]string, bool) {
	return shared.Validate(ctx, "Account", d)
}
