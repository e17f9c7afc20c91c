package handler

import (
	"net/http"

	"github.com/templui/goalnote/internal/apperror"
	"github.com/templui/goalnote/internal/model"
	"github.com/templui/goalnote/internal/render"
	"github.com/templui/goalnote/internal/service"
	"github.com/templui/goalnote/internal/validation"
)

type TodoHandler struct {
	todoService *service.TodoService
	validator   *validation.Validator
}

func NewTodoHandler(todoService *service.TodoService, validator *validation.Validator) *TodoHandler {
	return &TodoHandler{
		todoService: todoService,
		validator:   validator,
	}
}

type createTodoRequest struct {
	GoalID  int64   `json:"goalId" validate:"required,gt=0"`
	Title   string  `json:"title" validate:"required,notblank,max=255"`
	LinkURL *string `json:"linkUrl" validate:"omitempty,url"`
	FileURL *string `json:"fileUrl"`
}

type todosResponse struct {
	Todos      []*model.Todo `json:"todos"`
	NextCursor *int64        `json:"next_cursor"`
	TotalCount int           `json:"total_count"`
}

func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
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

	var filter model.TodoFilter
	filter.GoalID, err = queryInt64(r, "goalId")
	if err != nil {
		render.Error(w, r, err)
		return
	}
	filter.Done, err = queryBool(r, "done")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	todos, err := h.todoService.Todos(r.Context(), o, filter, page)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, todosResponse{
		Todos:      todos.Items,
		NextCursor: todos.NextCursor,
		TotalCount: todos.TotalCount,
	})
}

// Progress reports how many of a goal's todos are done.
func (h *TodoHandler) Progress(w http.ResponseWriter, r *http.Request) {
	o, err := owner(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	goalID, err := queryInt64(r, "goalId")
	if err != nil {
		render.Error(w, r, err)
		return
	}
	if goalID == nil {
		render.Error(w, r, apperror.BadRequest("goalId is required"))
		return
	}

	progress, err := h.todoService.Progress(r.Context(), o, *goalID)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, progress)
}

func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	o, err := owner(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	var req createTodoRequest
	if err := decodeJSON(w, r, &req); err != nil {
		render.Error(w, r, err)
		return
	}
	if err := checkPayload(h.validator, req); err != nil {
		render.Error(w, r, err)
		return
	}

	todo := &model.Todo{
		GoalID:  req.GoalID,
		Title:   req.Title,
		LinkURL: req.LinkURL,
		FileURL: req.FileURL,
	}

	err = h.todoService.Create(r.Context(), o, todo)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, todo)
}

func (h *TodoHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	todo, err := h.todoService.ByID(r.Context(), o, id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, todo)
}

func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	var p model.TodoPatch
	if err := decodeJSON(w, r, &p); err != nil {
		render.Error(w, r, err)
		return
	}
	if err := checkPayload(h.validator, p); err != nil {
		render.Error(w, r, err)
		return
	}

	todo, err := h.todoService.Update(r.Context(), o, id, p)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, todo)
}

func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	err = h.todoService.Delete(r.Context(), o, id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.NoContent(w)
}
