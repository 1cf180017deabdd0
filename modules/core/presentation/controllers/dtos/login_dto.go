package dtos

import (
	"context"
	"strings"

	"github.com/worktrack/worktrack/pkg/shared"
)

type LoginDTO struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
	Next     string
}

func (d *LoginDTO) Ok(ctx context.Context) (map[string]string, bool) {
	d.Email = strings.TrimSpace(d.Email)
	return shared.Validate(ctx, "Login", d)
}

