package persistence

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"

	"github.com/worktrack/worktrack/modules/core/domain/aggregates/user"
	"github.com/worktrack/worktrack/modules/core/infrastructure/persistence/models"
	"github.com/worktrack/worktrack/pkg/apiclient"
)

const usersPath = "/api/users"

type APIUserRepository struct {
	api *apiclient.Client
}

func NewUserRepository(api *apiclient.Client) user.Repository {
	return &APIUserRepository{api: api}
}

func userPath(id int64) string {
	return fmt.Sprintf("%s/%d", usersPath, id)
}

func (g *APIUserRepository) GetPaginated(ctx context.Context, params *user.FindParams) ([]user.User, int, error) {
	q := apiclient.NewQuery().
		Page(params.Page, params.Limit).
		String("search", params.Search).
		Int("role_id", params.RoleID)
	page, err := apiclient.GetPage[models.User](ctx, g.api, usersPath, q.Values())
	if err != nil {
		return nil, 0, errors.Wrap(err, "list users")
	}
	return ToDomainUsers(page.Items), page.Total, nil
}

func (g *APIUserRepository) GetByID(ctx context.Context, id int64) (user.User, error) {
	m, err := apiclient.Get[models.User](ctx, g.api, userPath(id), nil)
	if err != nil {
		return user.User{}, errors.Wrapf(err, "get user %d", id)
	}
	return ToDomainUser(m), nil
}

func (g *APIUserRepository) Create(ctx context.Context, data user.CreateData) (user.User, error) {
	m, err := apiclient.Post[models.User](ctx, g.api, usersPath, data)
	if err != nil {
		return user.User{}, errors.Wrap(err, "create user")
	}
	return ToDomainUser(m), nil
}

func (g *APIUserRepository) Update(ctx context.Context, id int64, data user.UpdateData) (user.User, error) {
	m, err := apiclient.Put[models.User](ctx, g.api, userPath(id), data)
	if err != nil {
		return user.User{}, errors.Wrapf(err, "update user %d", id)
	}
	return ToDomainUser(m), nil
}

func (g *APIUserRepository) Delete(ctx context.Context, id int64) error {
	if err := apiclient.Delete(ctx, g.api, userPath(id)); err != nil {
		return errors.Wrapf(err, "delete user %d", id)
	}
	return nil
}
