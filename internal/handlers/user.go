package handlers

import (
	"errors"
	"net/http"

	dom "github.com/hicham722/taskflow/internal/domain"
	"github.com/hicham722/taskflow/internal/dto"
	"github.com/hicham722/taskflow/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler handles the identity upsert and the admin listing.
type UserHandler struct {
	svc *service.UserService
}

// NewUserHandler returns a new UserHandler.
func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// Sync godoc
// @Summary      Upsert identity on login
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      dto.SyncUserRequest  true  "Identity"
// @Success      200   {object}  dto.User
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /users/sync [post]
func (h *UserHandler) Sync(c *gin.Context) {
	var req dto.SyncUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	u, err := h.svc.Sync(c.Request.Context(), req.Name, req.Email, req.Avatar)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, userToResponse(u))
}

// AdminUsers godoc
// @Summary      List users with task aggregates
// @Tags         admin
// @Produce      json
// @Success      200  {array}   dto.UserStat
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /admin/users [get]
func (h *UserHandler) AdminUsers(c *gin.Context) {
	list, err := h.svc.AdminStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: err.Error()})
		return
	}
	out := make([]dto.UserStat, len(list))
	for i, s := range list {
		out[i] = dto.UserStat{
			User:           userToResponse(s.User),
			TotalTasks:     s.TotalTasks,
			CompletedTasks: s.CompletedTasks,
			TotalSpent:     s.TotalSpent,
		}
	}
	c.JSON(http.StatusOK, out)
}

func userToResponse(u dom.User) dto.User {
	lastLogin := u.LastLogin
	return dto.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Avatar:    u.Avatar,
		LastLogin: &lastLogin,
	}
}
