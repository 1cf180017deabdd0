package persistence

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"

	"github.com/worktrack/worktrack/modules/projects/domain/aggregates/project"
	"github.com/worktrack/worktrack/modules/projects/infrastructure/persistence/models"
	"github.com/worktrack/worktrack/pkg/apiclient"
	"github.com/worktrack/worktrack/pkg/mapping"
)

const projectsPath = "/api/project"

type APIProjectRepository struct {
	api *apiclient.Client
}

func NewProjectRepository(api *apiclient.Client) project.Repository {
	return &APIProjectRepository{api: api}
}

func projectPath(id int64) string {
	return fmt.Sprintf("%s/%d", projectsPath, id)
}

func (g *APIProjectRepository) GetPaginated(ctx context.Context, params *project.FindParams) ([]project.Project, int, error) {
	q := apiclient.NewQuery().
		Page(params.Page, params.Limit).
		String("search", params.Search).
		String("status", string(params.Status)).
		Int("member_id", params.MemberID)
	page, err := apiclient.GetPage[models.Project](ctx, g.api, projectsPath, q.Values())
	if err != nil {
		return nil, 0, errors.Wrap(err, "list projects")
	}
	return ToDomainProjects(page.Items), page.Total, nil
}

func (g *APIProjectRepository) GetByID(ctx context.Context, id int64) (project.Project, error) {
	m, err := apiclient.Get[models.Project](ctx, g.api, projectPath(id), nil)
	if err != nil {
		return project.Project{}, errors.Wrapf(err, "get project %d", id)
	}
	return ToDomainProject(m), nil
}

func (g *APIProjectRepository) Create(ctx context.Context, data project.SaveData) (project.Project, error) {
	m, err := apiclient.Post[models.Project](ctx, g.api, projectsPath, data)
	if err != nil {
		return project.Project{}, errors.Wrap(err, "create project")
	}
	return ToDomainProject(m), nil
}

func (g *APIProjectRepository) Update(ctx context.Context, id int64, data project.SaveData) (project.Project, error) {
	m, err := apiclient.Put[models.Project](ctx, g.api, projectPath(id), data)
	if err != nil {
		return project.Project{}, errors.Wrapf(err, "update project %d", id)
	}
	return ToDomainProject(m), nil
}

func (g *APIProjectRepository) Delete(ctx context.Context, id int64) error {
	if err := apiclient.Delete(ctx, g.api, projectPath(id)); err != nil {
		return errors.Wrapf(err, "delete project %d", id)
	}
	return nil
}

func (g *APIProjectRepository) Members(ctx context.Context, id int64) ([]project.Member, error) {
	items, err := apiclient.Get[[]models.Member](ctx, g.api, projectPath(id)+"/members", nil)
	if err != nil {
		return nil, errors.Wrapf(err, "list members of project %d", id)
	}
	return mapping.MapViewModels(items, ToDomainMember), nil
}

func (g *APIProjectRepository) AddMember(ctx context.Context, id, userID int64) error {
	if _, err := apiclient.Post[models.Member](ctx, g.api, projectPath(id)+"/members", models.MemberInput{UserID: userID}); err != nil {
		return errors.Wrapf(err, "add member %d to project %d", userID, id)
	}
	return nil
}

func (g *APIProjectRepository) RemoveMember(ctx context.Context, id, userID int64) error {
	if err := apiclient.Delete(ctx, g.api, fmt.Sprintf("%s/members/%d", projectPath(id), userID)); err != nil {
		return errors.Wrapf(err, "remove member %d from project %d", userID, id)
	}
	return nil
}
