package dto

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/shelfd/pkg/errors"
)

// ErrorBody is the error envelope returned on every failed request.
type ErrorBody struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// SendError writes the JSON error response matching err. Unknown error types
// fall back to a generic 500 so internals never leak to clients.
func SendError(c *gin.Context, err error) {
	if appErr, ok := err.(*errors.AppError); ok {
		c.JSON(appErr.HTTPStatus, ErrorBody{
			Error:            appErr.Code,
			ErrorDescription: appErr.Message,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, ErrorBody{
		Error:            errors.ErrCodeInternal,
		ErrorDescription: "internal server error",
	})
}
