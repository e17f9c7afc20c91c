package handler

import (
	"errors"
	"net/http"

	"github.com/templui/goalnote/internal/apperror"
	"github.com/templui/goalnote/internal/model"
	"github.com/templui/goalnote/internal/render"
	"github.com/templui/goalnote/internal/service"
)

// multipart overhead allowed on top of the file itself
const formOverhead = 1 << 20

type FileHandler struct {
	fileService *service.FileService
	maxSize     int64
}

func NewFileHandler(fileService *service.FileService, maxSize int64) *FileHandler {
	return &FileHandler{
		fileService: fileService,
		maxSize:     maxSize,
	}
}

type filesResponse struct {
	Files      []*model.File `json:"files"`
	NextCursor *int64        `json:"next_cursor"`
	TotalCount int           `json:"total_count"`
}

func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	o, err := owner(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxSize+formOverhead)

	err = r.ParseMultipartForm(h.maxSize + formOverhead)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			render.Error(w, r, apperror.Wrap(apperror.KindBadRequest, "File too large", err))
			return
		}
		render.Error(w, r, apperror.Wrap(apperror.KindBadRequest, "Failed to parse form", err))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	_, header, err := r.FormFile("file")
	if err != nil {
		render.Error(w, r, apperror.Wrap(apperror.KindBadRequest, "No file uploaded", err))
		return
	}

	file, err := h.fileService.Upload(r.Context(), o, header)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, file)
}

func (h *FileHandler) List(w http.ResponseWriter, r *http.Request) {
	o, err := owner(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	page, err := pageParams(r, pageSizeMax(r))
	if err != nil {
		render.Error(w, r, err)
		return
	}

	files, err := h.fileService.Files(r.Context(), o, page)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, filesResponse{
		Files:      files.Items,
		NextCursor: files.NextCursor,
		TotalCount: files.TotalCount,
	})
}

func (h *FileHandler) Get(w http.ResponseWriter, r *http.Request) {
	o, err := owner(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	file, err := h.fileService.ByID(r.Context(), o, id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, file)
}

func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	o, err := owner(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	err = h.fileService.Delete(r.Context(), o, id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.NoContent(w)
}
