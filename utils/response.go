// File: /utils/response.go
package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"chatmini-api/apperrors"
)

// ErrorResponse is the wire envelope for domain errors.
type ErrorResponse struct {
	ErrCd  string `json:"errCd"`
	ErrMsg string `json:"errMsg"`
}

// SendError translates an error into the {errCd, errMsg} envelope. Errors
// without a domain code become an opaque 500.
func SendError(c *gin.Context, err error) {
	if ae, ok := apperrors.As(err); ok {
		c.JSON(ae.HTTPStatus(), ErrorResponse{
			ErrCd:  string(ae.Code),
			ErrMsg: ae.Message,
		})
		return
	}

	log.Error().Err(err).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Msg("unhandled error")
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "An unexpected error occurred.",
	})
}

// SendBindingError reports request binding failures as a field->message map.
func SendBindingError(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusBadRequest, gin.H{"errors": fields})
}

func SendSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func SendCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}
