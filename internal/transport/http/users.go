package http

import (
	"fmt"
	"net/http"

	"github.com/MichalMitros/crm-console/internal/platform/models"
	"github.com/gin-gonic/gin"
)

type roleRequest struct {
	Role models.Role `json:"role" binding:"required"`
}

func (s *Server) getUsers(c *gin.Context) {
	respond(c, http.StatusOK, s.users.State())
}

func (s *Server) reloadUsers(c *gin.Context) {
	if err := s.users.Reload(c.Request.Context()); err != nil {
		state := s.users.State()
		respondError(c, err, state.Error, state)
		return
	}

	respond(c, http.StatusOK, s.users.State())
}

// createUser creates user as logged in administrator.
func (s *Server) createUser(c *gin.Context) {
	var registration models.Registration
	if err := c.ShouldBindJSON(&registration); err != nil {
		respondError(c, fmt.Errorf("%w: %w", errBadRequest, err), "Invalid user form", nil)
		return
	}

	user, err := s.users.Create(c.Request.Context(), registration)
	if err != nil {
		respondError(c, err, "", nil)
		return
	}

	c.JSON(http.StatusCreated, response{Message: "User created", Data: user})
}

func (s *Server) getProfile(c *gin.Context) {
	user, err := s.users.Profile(c.Request.Context())
	if err != nil {
		respondError(c, err, "", nil)
		return
	}

	respond(c, http.StatusOK, user)
}

// toggleUserStatus asks API to flip user's status. New status arrives with userUpdated event.
func (s *Server) toggleUserStatus(c *gin.Context) {
	if err := s.users.ToggleStatus(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "", nil)
		return
	}

	c.JSON(http.StatusAccepted, response{Message: "Status change requested"})
}

// changeUserRole asks API to change user's role. New role arrives with userUpdated event.
func (s *Server) changeUserRole(c *gin.Context) {
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("%w: %w", errBadRequest, err), "Invalid role", nil)
		return
	}

	if err := s.users.ChangeRole(c.Request.Context(), c.Param("id"), req.Role); err != nil {
		respondError(c, err, "", nil)
		return
	}

	c.JSON(http.StatusAccepted, response{Message: "Role change requested"})
}
