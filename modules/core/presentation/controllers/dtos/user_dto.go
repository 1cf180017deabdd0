package dtos

import (
	"context"
	"strings"

	"github.com/worktrack/worktrack/modules/core/domain/aggregates/user"
	"github.com/worktrack/worktrack/pkg/shared"
)

type CreateUserDTO struct {
	Name     string `validate:"required,max=255"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
	RoleID   int64  `validate:"required,gt=0"`
	Active   bool
	Language string `validate:"omitempty,oneof=en zh"`
}

type UpdateUserDTO struct {
	Name     string `validate:"required,max=255"`
	Email    string `validate:"required,email"`
	RoleID   int64  `validate:"required,gt=0"`
	Active   bool
	Language string `validate:"omitempty,oneof=en zh"`
}

func (d *CreateUserDTO) Ok(ctx context.Context) (map[string]string, bool) {
	d.Name = strings.TrimSpace(d.Name)
	d.Email = strings.TrimSpace(d.Email)
	return shared.Validate(ctx, "Users.Single", d)
}

func (d *UpdateUserDTO) Ok(ctx context.Context) (map[string]string, bool) {
	d.Name = strings.TrimSpace(d.Name)
	d.Email = strings.TrimSpace(d.Email)
	return shared.Validate(ctx, "Users.Single", d)
}

func (d *CreateUserDTO) ToCreateData() user.CreateData {
	return user.CreateData{
		Name:     d.Name,
		Email:    d.Email,
		Password: d.Password,
		RoleID:   d.RoleID,
		Active:   d.Active,
		Language: d.Language,
	}
}

func (d *UpdateUserDTO) ToUpdateData() user.UpdateData {
	return user.UpdateData{
		Name:     d.Name,
		Email:    d.Email,
		RoleID:   d.RoleID,
		Active:   d.Active,
		Language: d.Language,
	}
}
