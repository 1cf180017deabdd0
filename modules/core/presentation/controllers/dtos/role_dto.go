package dtos

import (
	"context"
	"strings"

	"github.com/worktrack/worktrack/modules/core/domain/aggregates/role"
	"github.com/worktrack/worktrack/pkg/shared"
)

type RoleDTO struct {
	Name        string `validate:"required,max=100"`
	Description string `validate:"max=500"`
}

func (d *RoleDTO) Ok(ctx context.Context) (map[string]string, bool) {
	d.Name = strings.TrimSpace(d.Name)
	d.Description = strings.TrimSpace(d.Description)
	return shared.Validate(ctx, "Roles.Single", d)
}

func (d *RoleDTO) ToSaveData() role.SaveData {
	return role.SaveData{Name: d.Name, Description: d.Description}
}

// RolePermissionsDTO is the permission matrix submit.
type RolePermissionsDTO struct {
	PermissionIDs []int64 `form:"permission_ids"`
}
