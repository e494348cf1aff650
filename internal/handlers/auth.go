package handlers

import (
	"errors"
	"net/http"

	"github.com/drodber/results-service/internal/entity"
	"github.com/drodber/results-service/internal/services"
	"github.com/gin-gonic/gin"
)

type LoginHandler struct {
	auth *services.Auth
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func NewLoginHandler(auth *services.Auth) *LoginHandler {
	return &LoginHandler{auth: auth}
}

// Login exchanges credentials for an access token.
func (h *LoginHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.NewMessage(http.StatusBadRequest, http.StatusText(http.StatusBadRequest)))
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, entity.NewMessage(http.StatusUnauthorized, "`Unauthorized`: Invalid credentials."))
			return
		}
		c.JSON(http.StatusInternalServerError, entity.NewMessage(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)))
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
