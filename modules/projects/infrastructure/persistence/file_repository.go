package persistence

import (
	"context"
	"fmt"
	"io"

	"github.com/go-faster/errors"

	"github.com/worktrack/worktrack/modules/projects/domain/entities/file"
	"github.com/worktrack/worktrack/modules/projects/infrastructure/persistence/models"
	"github.com/worktrack/worktrack/pkg/apiclient"
	"github.com/worktrack/worktrack/pkg/mapping"
)

type APIFileRepository struct {
	api *apiclient.Client
}

func NewFileRepository(api *apiclient.Client) file.Repository {
	return &APIFileRepository{api: api}
}

func filesPath(projectID int64) string {
	return projectPath(projectID) + "/files"
}

func filePath(projectID, fileID int64) string {
	return fmt.Sprintf("%s/%d", filesPath(projectID), fileID)
}

func (g *APIFileRepository) List(ctx context.Context, projectID int64) ([]file.File, error) {
	items, err := apiclient.Get[[]models.File](ctx, g.api, filesPath(projectID), nil)
	if err != nil {
		return nil, errors.Wrapf(err, "list files of project %d", projectID)
	}
	return mapping.MapViewModels(items, ToDomainFile), nil
}

func (g *APIFileRepository) Upload(ctx context.Context, projectID int64, upload file.Upload) (file.File, error) {
	form := &apiclient.Multipart{
		Files: []apiclient.File{{Field: "file", Name: upload.Name, Content: upload.Content}},
	}
	m, err := apiclient.Upload[models.File](ctx, g.api, filesPath(projectID), form)
	if err != nil {
		return file.File{}, errors.Wrapf(err, "upload %q to project %d", upload.Name, projectID)
	}
	return ToDomainFile(m), nil
}

func (g *APIFileRepository) Delete(ctx context.Context, projectID, fileID int64) error {
	if err := apiclient.Delete(ctx, g.api, filePath(projectID, fileID)); err != nil {
		return errors.Wrapf(err, "delete file %d", fileID)
	}
	return nil
}

func (g *APIFileRepository) Open(ctx context.Context, projectID, fileID int64) (io.ReadCloser, string, error) {
	body, contentType, err := g.api.Stream(ctx, filePath(projectID, fileID)+"/download")
	if err != nil {
		return nil, "", errors.Wrapf(err, "download file %d", fileID)
	}
	return body, contentType, nil
}
