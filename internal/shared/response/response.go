package response

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bookshelf-api/internal/shared/apperror"
)

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Success writes the uniform success envelope.
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
	})
}

// Error classifies err, logs it in full, and writes the uniform failure
// envelope. This is the only place in the application that produces a
// client-facing error body, and the only place that logs one.
func Error(c *gin.Context, err error) {
	appErr := apperror.From(err)

	log.Error().
		Str("request_id", c.GetString("request_id")).
		Str("path", c.Request.URL.Path).
		Int("status", appErr.StatusCode).
		Str("error_code", appErr.ErrorCode).
		Str("error_status", appErr.Status()).
		Err(err).
		Msg("request failed")

	c.AbortWithStatusJSON(appErr.StatusCode, Response{
		Success: false,
		Error: &ErrorBody{
			Code:    appErr.ErrorCode,
			Message: appErr.Message,
		},
	})
}
