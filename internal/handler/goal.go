package handler

import (
	"net/http"

	"github.com/templui/goalnote/internal/model"
	"github.com/templui/goalnote/internal/render"
	"github.com/templui/goalnote/internal/service"
	"github.com/templui/goalnote/internal/validation"
)

type GoalHandler struct {
	goalService *service.GoalService
	validator   *validation.Validator
}

func NewGoalHandler(goalService *service.GoalService, validator *validation.Validator) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
		validator:   validator,
	}
}

type createGoalRequest struct {
	Title string `json:"title" validate:"required,notblank,max=255"`
}

type goalsResponse struct {
	Goals      []*model.Goal `json:"goals"`
	NextCursor *int64        `json:"next_cursor"`
	TotalCount int           `json:"total_count"`
}

func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
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

	goals, err := h.goalService.Goals(r.Context(), o, page)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, goalsResponse{
		Goals:      goals.Items,
		NextCursor: goals.NextCursor,
		TotalCount: goals.TotalCount,
	})
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	o, err := owner(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	var req createGoalRequest
	if err := decodeJSON(w, r, &req); err != nil {
		render.Error(w, r, err)
		return
	}
	if err := checkPayload(h.validator, req); err != nil {
		render.Error(w, r, err)
		return
	}

	goal, err := h.goalService.Create(r.Context(), o, req.Title)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, goal)
}

func (h *GoalHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	goal, err := h.goalService.ByID(r.Context(), o, id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	var p model.GoalPatch
	if err := decodeJSON(w, r, &p); err != nil {
		render.Error(w, r, err)
		return
	}
	if err := checkPayload(h.validator, p); err != nil {
		render.Error(w, r, err)
		return
	}

	goal, err := h.goalService.Update(r.Context(), o, id, p)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	err = h.goalService.Delete(r.Context(), o, id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.NoContent(w)
}
