package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *handlers) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "username and password are required"})
		return
	}

	if err := h.deps.Session.Login(c.Request.Context(), req.Username, req.Password); err != nil {
		h.writeError(c, err)
		return
	}

	// The product grid is the first thing shown after login.
	if err := h.deps.Catalog.Reload(c.Request.Context()); err != nil {
		h.logger.Printf("catalog reload after login: %v", err)
	}

	user, ok := h.deps.Session.Current()
	if !ok {
		// Logout raced the login response; report the logged-out state.
		c.JSON(http.StatusOK, gin.H{"loggedIn": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"loggedIn": true, "user": user})
}

func (h *handlers) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "username, email and password are required"})
		return
	}

	if err := h.deps.Session.Register(c.Request.Context(), req.Username, req.Email, req.Password); err != nil {
		h.writeError(c, err)
		return
	}
	// Registration does not log the user in.
	c.JSON(http.StatusCreated, gin.H{"message": "registered"})
}

func (h *handlers) logout(c *gin.Context) {
	h.deps.Session.Logout()
	c.JSON(http.StatusOK, gin.H{"loggedIn": false})
}

func (h *handlers) currentSession(c *gin.Context) {
	user, ok := h.deps.Session.Current()
	if !ok {
		c.JSON(http.StatusOK, gin.H{"loggedIn": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"loggedIn": true, "user": user})
}
