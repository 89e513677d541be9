package handlers

import (
	"errors"
	"net/http"

	dom "github.com/hicham722/taskflow/internal/domain"
	"github.com/hicham722/taskflow/internal/dto"
	"github.com/hicham722/taskflow/internal/service"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	svc *service.TaskService
}

func NewTaskHandler(svc *service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// List godoc
// @Summary      List tasks
// @Tags         tasks
// @Produce      json
// @Param        userId  query     string  false  "Filter by owner"
// @Success      200     {array}   dto.Task
// @Failure      500     {object}  dto.ErrorResponse
// @Router       /tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), c.Query("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, tasksToResponses(list))
}

// Create godoc
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        body  body      dto.TaskPayload  true  "Task body"
// @Success      201   {object}  dto.Task
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req dto.TaskPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	t, err := h.svc.Create(c.Request.Context(), payloadToTask(req))
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, taskToResponse(t))
}

// Replace godoc
// @Summary      Replace a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id    path      string           true  "Task ID"
// @Param        body  body      dto.TaskPayload  true  "Full task body"
// @Success      200   {object}  dto.Task
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /tasks/{id} [put]
func (h *TaskHandler) Replace(c *gin.Context) {
	var req dto.TaskPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	t, err := h.svc.Replace(c.Request.Context(), c.Param("id"), payloadToTask(req))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "task not found"})
			return
		}
		if errors.Is(err, service.ErrValidation) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, taskToResponse(t))
}

// Delete godoc
// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

func payloadToTask(p dto.TaskPayload) dom.Task {
	return dom.Task{
		Title:       p.Title,
		Description: p.Description,
		Category:    dom.Category(p.Category),
		Amount:      p.Amount,
		DueDate:     p.DueDate.String(),
		Status:      dom.Status(p.Status),
		Notes:       p.Notes,
		Reminder:    p.Reminder,
		UserID:      p.UserID,
	}
}

func taskToResponse(t dom.Task) dto.Task {
	created, updated := t.CreatedAt, t.UpdatedAt
	return dto.Task{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Category:    string(t.Category),
		Amount:      t.Amount,
		DueDate:     t.DueDate,
		Status:      string(t.Status),
		Notes:       t.Notes,
		Reminder:    t.Reminder,
		UserID:      t.UserID,
		CreatedAt:   &created,
		UpdatedAt:   &updated,
	}
}

func tasksToResponses(list []dom.Task) []dto.Task {
	out := make([]dto.Task, len(list))
	for i := range list {
		out[i] = taskToResponse(list[i])
	}
	return out
}
