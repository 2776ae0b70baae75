package dto

import (
	"github.com/gin-gonic/gin"

	"github.com/Tudu-hope/credit-card-delinquency-check/pkg/errors"
)

// ErrorResponse is the uniform error body. Every failure surface of the API
// returns this shape with an appropriate HTTP status.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// SendError writes the error response for any error value. Non-application
// errors collapse to a generic detail so internals never leak.
func SendError(c *gin.Context, err error) {
	c.JSON(errors.HTTPStatus(err), ErrorResponse{Detail: errors.Detail(err)})
}
