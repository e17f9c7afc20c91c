package handler

import (
	"net/http"

	"github.com/templui/goalnote/internal/model"
	"github.com/templui/goalnote/internal/render"
	"github.com/templui/goalnote/internal/service"
	"github.com/templui/goalnote/internal/validation"
)

type NoteHandler struct {
	noteService *service.NoteService
	validator   *validation.Validator
}

func NewNoteHandler(noteService *service.NoteService, validator *validation.Validator) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
		validator:   validator,
	}
}

type createNoteRequest struct {
	GoalID  int64   `json:"goal_id" validate:"required,gt=0"`
	TodoID  int64   `json:"todo_id" validate:"required,gt=0"`
	Title   string  `json:"title" validate:"required,notblank,max=255"`
	Content string  `json:"content"`
	LinkURL *string `json:"link_url" validate:"omitempty,url"`
}

type notesResponse struct {
	Notes      []*model.Note `json:"notes"`
	NextCursor *int64        `json:"next_cursor"`
	TotalCount int           `json:"total_count"`
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
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

	var filter model.NoteFilter
	filter.GoalID, err = queryInt64(r, "goalId")
	if err != nil {
		render.Error(w, r, err)
		return
	}
	filter.TodoID, err = queryInt64(r, "todoId")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	notes, err := h.noteService.Notes(r.Context(), o, filter, page)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, notesResponse{
		Notes:      notes.Items,
		NextCursor: notes.NextCursor,
		TotalCount: notes.TotalCount,
	})
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	o, err := owner(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	var req createNoteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		render.Error(w, r, err)
		return
	}
	if err := checkPayload(h.validator, req); err != nil {
		render.Error(w, r, err)
		return
	}

	note := &model.Note{
		GoalID:  req.GoalID,
		TodoID:  req.TodoID,
		Title:   req.Title,
		Content: req.Content,
		LinkURL: req.LinkURL,
	}

	err = h.noteService.Create(r.Context(), o, note)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, note)
}

func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	note, err := h.noteService.ByID(r.Context(), o, id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, note)
}

func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	var p model.NotePatch
	if err := decodeJSON(w, r, &p); err != nil {
		render.Error(w, r, err)
		return
	}
	if err := checkPayload(h.validator, p); err != nil {
		render.Error(w, r, err)
		return
	}

	note, err := h.noteService.Update(r.Context(), o, id, p)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, note)
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	err = h.noteService.Delete(r.Context(), o, id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.NoContent(w)
}
