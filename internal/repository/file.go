package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/templui/goalnote/internal/model"
	"github.com/templui/goalnote/internal/pagination"
)

type FileRepository interface {
	Create(ctx context.Context, owner model.OwnerID, file *model.File) error
	ByID(ctx context.Context, owner model.OwnerID, fileID int64) (*model.File, error)
	Files(ctx context.Context, owner model.OwnerID, page pagination.Params) (pagination.Page[*model.File], error)
	Delete(ctx context.Context, owner model.OwnerID, fileID int64) error
}

type fileRepository struct {
	scoped[model.File]
}

func NewFileRepository(db sqlx.ExtContext) FileRepository {
	return &fileRepository{scoped[model.File]{
		db:       db,
		table:    "files",
		notFound: ErrFileNotFound,
		id:       model.FileID,
	}}
}

func (r *fileRepository) Create(ctx context.Context, owner model.OwnerID, file *model.File) error {
	file.UserID = int64(owner)

	query := `INSERT INTO files (user_id, filename, original_filename, file_path, mime_type, size, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`

	id, err := r.insert(ctx, query,
		file.UserID,
		file.Filename,
		file.OriginalFilename,
		file.FilePath,
		file.MimeType,
		file.Size,
		file.CreatedAt,
		file.UpdatedAt,
	)
	if err != nil {
		return err
	}

	file.ID = id
	return nil
}

func (r *fileRepository) ByID(ctx context.Context, owner model.OwnerID, fileID int64) (*model.File, error) {
	return r.byID(ctx, owner, fileID)
}

func (r *fileRepository) Files(ctx context.Context, owner model.OwnerID, page pagination.Params) (pagination.Page[*model.File], error) {
	return r.list(ctx, owner, nil, page)
}

func (r *fileRepository) Delete(ctx context.Context, owner model.OwnerID, fileID int64) error {
	return r.delete(ctx, owner, fileID)
}
