package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/MichalMitros/crm-console/internal/platform/models"
	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// sessionResponse is session state. Token is never exposed.
type sessionResponse struct {
	Authenticated bool         `json:"authenticated"`
	Loading       bool         `json:"loading"`
	User          *models.User `json:"user,omitempty"`
	ExpiresAt     *time.Time   `json:"expiresAt,omitempty"`
}

func (s *Server) currentSession() sessionResponse {
	resp := sessionResponse{Loading: s.session.Loading()}

	if current := s.session.Session(); current != nil {
		resp.Authenticated = true
		resp.User = &current.User
		resp.ExpiresAt = current.ExpiresAt
	}

	return resp
}

func (s *Server) getSession(c *gin.Context) {
	respond(c, http.StatusOK, s.currentSession())
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("%w: %w", errBadRequest, err), "Invalid credentials", nil)
		return
	}

	if _, err := s.session.Login(c.Request.Context(), req.Email, req.Password); err != nil {
		respondError(c, err, "", nil)
		return
	}

	respond(c, http.StatusOK, s.currentSession())
}

func (s *Server) logout(c *gin.Context) {
	if err := s.session.Logout(); err != nil {
		respondError(c, err, "", nil)
		return
	}

	respond(c, http.StatusOK, s.currentSession())
}

func (s *Server) register(c *gin.Context) {
	var registration models.Registration
	if err := c.ShouldBindJSON(&registration); err != nil {
		respondError(c, fmt.Errorf("%w: %w", errBadRequest, err), "Invalid registration form", nil)
		return
	}

	if err := s.session.Register(c.Request.Context(), registration); err != nil {
		respondError(c, err, "", nil)
		return
	}

	c.JSON(http.StatusCreated, response{Message: "Registration successful"})
}
