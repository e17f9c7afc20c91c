package service

import (
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/templui/goalnote/internal/model"
	"github.com/templui/goalnote/internal/pagination"
	"github.com/templui/goalnote/internal/repository"
	"github.com/templui/goalnote/internal/storage"
	"github.com/templui/goalnote/internal/validation"
)

type FileService struct {
	fileRepo    repository.FileRepository
	storage     storage.Storage
	constraints validation.FileConstraints
}

func NewFileService(fileRepo repository.FileRepository, storage storage.Storage, constraints validation.FileConstraints) *FileService {
	return &FileService{
		fileRepo:    fileRepo,
		storage:     storage,
		constraints: constraints,
	}
}

// storedName builds "{YYYYMMDD}_{random}{ext}" with 16 random hex characters
func storedName(original string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(original))
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
	return fmt.Sprintf("%s_%s%s", now.Format("20060102"), random, ext)
}

// Upload validates the file, writes it to storage and records it.
// The stored object is removed again if the record cannot be created.
func (s *FileService) Upload(ctx context.Context, owner model.OwnerID, header *multipart.FileHeader) (*model.File, error) {
	mimeType, err := validation.ValidateFile(header, s.constraints)
	if err != nil {
		return nil, err
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer func() { _ = file.Close() }()

	now := time.Now().UTC()
	filename := storedName(header.Filename, now)
	storagePath := path.Join("user_"+owner.String(), filename)

	err = s.storage.Save(ctx, storagePath, file)
	if err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	fileModel := &model.File{
		Filename:         filename,
		OriginalFilename: filepath.Base(header.Filename),
		FilePath:         storagePath,
		MimeType:         mimeType,
		Size:             header.Size,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	err = s.fileRepo.Create(ctx, owner, fileModel)
	if err != nil {
		delErr := s.storage.Delete(ctx, storagePath)
		if delErr != nil {
			slog.Error("failed to delete file from storage during cleanup", "error", delErr, "path", storagePath)
		}
		return nil, err
	}

	fileModel.URL = s.storage.URL(ctx, storagePath)
	return fileModel, nil
}

func (s *FileService) ByID(ctx context.Context, owner model.OwnerID, fileID int64) (*model.File, error) {
	file, err := s.fileRepo.ByID(ctx, owner, fileID)
	if err != nil {
		return nil, err
	}

	file.URL = s.storage.URL(ctx, file.FilePath)
	return file, nil
}

func (s *FileService) Files(ctx context.Context, owner model.OwnerID, page pagination.Params) (pagination.Page[*model.File], error) {
	result, err := s.fileRepo.Files(ctx, owner, page)
	if err != nil {
		return result, err
	}

	for _, file := range result.Items {
		file.URL = s.storage.URL(ctx, file.FilePath)
	}

	return result, nil
}

// Delete removes the record, then the stored object. A storage failure is
// logged and leaves an orphaned object rather than failing the request.
func (s *FileService) Delete(ctx context.Context, owner model.OwnerID, fileID int64) error {
	file, err := s.fileRepo.ByID(ctx, owner, fileID)
	if err != nil {
		return err
	}

	err = s.fileRepo.Delete(ctx, owner, fileID)
	if err != nil {
		return err
	}

	delErr := s.storage.Delete(ctx, file.FilePath)
	if delErr != nil {
		slog.Warn("failed to delete file from storage", "error", delErr, "path", file.FilePath, "user_id", owner)
	}

	return nil
}
