package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"bookshelf-api/internal/domains/book"
	"bookshelf-api/internal/shared/apperror"
	"bookshelf-api/internal/shared/response"
)

type BookHandler struct {
	service book.Service
}

func NewBookHandler(service book.Service) *BookHandler {
	return &BookHandler{service: service}
}

// List handles GET /books?page=&limit=.
func (h *BookHandler) List(c *gin.Context) {
	books, page, limit, err := h.service.List(c.Request.Context(), c.Query("page"), c.Query("limit"))
	if err != nil {
		response.Error(c, err)
		return
	}

	// The caller's page number is echoed unmodified.
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"page":    page,
		"limit":   limit,
		"data":    books,
	})
}

// GetByID handles GET /books/:id.
func (h *BookHandler) GetByID(c *gin.Context) {
	b, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    b,
	})
}

// Create handles POST /books.
func (h *BookHandler) Create(c *gin.Context) {
	var payload book.Payload
	if err := bindJSON(c, &payload); err != nil {
		response.Error(c, err)
		return
	}

	id, err := h.service.Create(c.Request.Context(), payload)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"id":      id,
	})
}

// Update handles PUT /books/:id.
func (h *BookHandler) Update(c *gin.Context) {
	var payload book.Payload
	if err := bindJSON(c, &payload); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.Update(c.Request.Context(), c.Param("id"), payload); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusNoContent, gin.H{"ok": true})
}

// Delete handles DELETE /books/:id.
func (h *BookHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusNoContent, gin.H{"ok": true})
}

func bindJSON(c *gin.Context, dest interface{}) error {
	err := c.ShouldBindJSON(dest)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return apperror.Validation("Invalid request body!")
}
