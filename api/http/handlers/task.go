package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"taskdeck/api/http/presenter"
	"taskdeck/pkg/task"
)

type TaskHandler struct {
	uc task.UseCase
}

func NewTaskHandler(uc task.UseCase) *TaskHandler { return &TaskHandler{uc: uc} }

// ownerID resolves the authenticated principal set by the JWT middleware.
// The owner is never taken from client-supplied data.
func ownerID(c *fiber.Ctx) (uuid.UUID, error) {
	userIDStr, _ := c.Locals("userId").(string)
	return uuid.Parse(userIDStr)
}

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// @Summary Create task
// @Tags    tasks
// @Accept  json
// @Produce json
// @Param   input body createTaskRequest true "task payload"
// @Security BearerAuth
// @Success 201 {object} task.Task
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /tasks [post]
func (h *TaskHandler) Create(c *fiber.Ctx) error {
	uid, err := ownerID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "failed to resolve user")
	}
	var req createTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	t, err := h.uc.Create(c.Context(), uid, req.Title, req.Description)
	if err != nil {
		var ve task.ErrValidation
		if errors.As(err, &ve) {
			return presenter.Error(c, http.StatusBadRequest, ve.Error())
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to create task")
	}
	return presenter.JSON(c, http.StatusCreated, t)
}

// @Summary List tasks
// @Description Returns every task of the authenticated user, most recently created first.
// @Tags    tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {array} task.Task
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /tasks [get]
func (h *TaskHandler) List(c *fiber.Ctx) error {
	uid, err := ownerID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "failed to resolve user")
	}
	ts, err := h.uc.List(c.Context(), uid)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list tasks")
	}
	if ts == nil {
		ts = []task.Task{}
	}
	return presenter.JSON(c, http.StatusOK, ts)
}

// @Summary Update task
// @Description Applies the supplied fields to an owned task; missing fields stay unchanged.
// @Tags    tasks
// @Accept  json
// @Produce json
// @Param   id path string true "task id (UUID)"
// @Param   input body task.Patch true "fields to update"
// @Security BearerAuth
// @Success 200 {object} task.Task
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /tasks/{id} [patch]
func (h *TaskHandler) Update(c *fiber.Ctx) error {
	uid, err := ownerID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "failed to resolve user")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid task id")
	}
	var p task.Patch
	if err := c.BodyParser(&p); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	t, err := h.uc.Update(c.Context(), uid, id, p)
	if err != nil {
		var ve task.ErrValidation
		switch {
		case errors.Is(err, task.ErrNotFound):
			return presenter.Error(c, http.StatusNotFound, "task not found")
		case errors.As(err, &ve):
			return presenter.Error(c, http.StatusBadRequest, ve.Error())
		default:
			return presenter.Error(c, http.StatusInternalServerError, "failed to update task")
		}
	}
	return presenter.JSON(c, http.StatusOK, t)
}

// @Summary Delete task
// @Tags    tasks
// @Produce json
// @Param   id path string true "task id (UUID)"
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	uid, err := ownerID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "failed to resolve user")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid task id")
	}
	if err := h.uc.Delete(c.Context(), uid, id); err != nil {
		if errors.Is(err, task.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "task not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to delete task")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"message": "task deleted"})
}
