package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"bookshelf-api/internal/domains/auth"
	"bookshelf-api/internal/shared/apperror"
	"bookshelf-api/internal/shared/response"
)

type AuthHandler struct {
	service auth.Service
}

func NewAuthHandler(service auth.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	id, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	// "success" is a string here, matching the published contract.
	c.JSON(http.StatusCreated, gin.H{
		"success": "true",
		"id":      id,
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"accessToken": token,
	})
}

// bindJSON decodes the body into dest. An empty body is allowed through as
// a zero value so field-presence validation can name the missing field.
func bindJSON(c *gin.Context, dest interface{}) error {
	err := c.ShouldBindJSON(dest)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return apperror.Validation("Invalid request body!")
}
