package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/clinique-api/internal/access"
	"github.com/harentsoaR/clinique-api/internal/apperror"
	"github.com/harentsoaR/clinique-api/internal/middleware"
	"github.com/harentsoaR/clinique-api/internal/models"
)

// CreateUser creates an account of any role the caller may provision.
func (h *Handler) CreateUser(c *gin.Context) {
	p, ok := caller(c)
	if !ok {
		return
	}
	var req models.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	if !access.CanCreateRole(p.Role, req.Role) {
		middleware.RespondError(c, apperror.Forbidden("A %s cannot create a %s account", p.Role, req.Role))
		return
	}

	user, err := h.Users.CreateUser(c.Request.Context(), req, req.Role)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func roleQuery(c *gin.Context) (models.Role, bool) {
	raw := c.Query("role")
	if raw == "" {
		return "", true
	}
	role, err := models.ParseRole(raw)
	if err != nil {
		middleware.RespondError(c, apperror.Validation("%s", err.Error()))
		return "", false
	}
	return role, true
}

func (h *Handler) ListUsers(c *gin.Context) {
	role, ok := roleQuery(c)
	if !ok {
		return
	}
	if role == "" {
		middleware.RespondError(c, apperror.Validation("Query parameter role is required"))
		return
	}
	users, err := h.Users.ListByRole(c.Request.Context(), role)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	list(c, users)
}

// GetUser returns a user. With ?role= a user of another role is a 404.
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := pathID(c, "user")
	if !ok {
		return
	}
	role, ok := roleQuery(c)
	if !ok {
		return
	}
	user, err := h.Users.FindByID(c.Request.Context(), id, role)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser removes an account whose role the caller could have created.
func (h *Handler) DeleteUser(c *gin.Context) {
	p, ok := caller(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "user")
	if !ok {
		return
	}
	target, err := h.Users.FindByID(c.Request.Context(), id, "")
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	if !access.CanManageRole(p.Role, target.Role) {
		middleware.RespondError(c, apperror.Forbidden("A %s cannot delete a %s account", p.Role, target.Role))
		return
	}
	if err := h.Users.DeleteUser(c.Request.Context(), id); err != nil {
		middleware.RespondError(c, err)
		return
	}
	deleted(c, "User")
}
