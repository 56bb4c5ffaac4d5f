package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dinoverse/internal/auth"
)

type AuthHandler struct {
	Gate *auth.Gate
}

func (h *AuthHandler) Register(r *gin.Engine) {
	g := r.Group("/api/auth")
	g.POST("/login", h.login)
	g.POST("/logout", h.logout)
	g.GET("/session", h.session)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type sessionResponse struct {
	Authenticated bool `json:"authenticated"`
}

// @Summary Admin login
// @Tags auth
// @Accept json
// @Param body body loginRequest true "credentials"
// @Success 200 {object} apiResponse
// @Failure 401 {object} apiResponse
// @Router /api/auth/login [post]
func (h *AuthHandler) login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}
	if !h.Gate.CheckCredentials(req.Email, req.Password) || !h.Gate.Configured() {
		Error(c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}
	h.Gate.SetSession(c)
	Ok(c, sessionResponse{Authenticated: true}, nil)
}

// @Summary Admin logout
// @Tags auth
// @Success 200 {object} apiResponse
// @Router /api/auth/logout [post]
func (h *AuthHandler) logout(c *gin.Context) {
	h.Gate.ClearSession(c)
	Ok(c, sessionResponse{Authenticated: false}, nil)
}

// @Summary Current session
// @Tags auth
// @Success 200 {object} apiResponse
// @Router /api/auth/session [get]
func (h *AuthHandler) session(c *gin.Context) {
	Ok(c, sessionResponse{Authenticated: h.Gate.Authenticated(c)}, nil)
}
