package services

import (
	"context"
	"io"

	"github.com/go-faster/errors"

	"github.com/worktrack/worktrack/modules/projects/domain/entities/file"
	"github.com/worktrack/worktrack/modules/projects/permissions"
	"github.com/worktrack/worktrack/pkg/composables"
)

type FileService struct {
	repo file.Repository
}

func NewFileService(repo file.Repository) *FileService {
	return &FileService{repo: repo}
}

// MaxSize is the upload limit in bytes of the request's configuration. Zero
// means no limit.
func (s *FileService) MaxSize(ctx context.Context) int64 {
	return composables.UseConfig(ctx).MaxUploadSize
}

func (s *FileService) List(ctx context.Context, projectID int64) ([]file.File, error) {
	if err := composables.RequirePermission(ctx, permissions.ProjectView); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, projectID)
}

// CheckSize rejects an upload before it is read or sent.
func (s *FileService) CheckSize(ctx context.Context, size int64) error {
	if size <= 0 {
		return file.ErrEmpty
	}
	if limit := s.MaxSize(ctx); limit > 0 && size > limit {
		return errors.Wrapf(file.ErrTooLarge, "%d > %d bytes", size, limit)
	}
	return nil
}

func (s *FileService) Upload(ctx context.Context, projectID int64, upload file.Upload) (file.File, error) {
	if err := composables.RequirePermission(ctx, permissions.ProjectUpdate); err != nil {
		return file.File{}, err
	}
	if err := s.CheckSize(ctx, int64(len(upload.Content))); err != nil {
		return file.File{}, err
	}
	return s.repo.Upload(ctx, projectID, upload)
}

func (s *FileService) Delete(ctx context.Context, projectID, fileID int64) error {
	if err := composables.RequirePermission(ctx, permissions.ProjectUpdate); err != nil {
		return err
	}
	return s.repo.Delete(ctx, projectID, fileID)
}

func (s *FileService) Open(ctx context.Context, projectID, fileID int64) (io.ReadCloser, string, error) {
	if err := composables.RequirePermission(ctx, permissions.ProjectView); err != nil {
		return nil, "", err
	}
	return s.repo.Open(ctx, projectID, fileID)
}
