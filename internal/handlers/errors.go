package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	platformerrors "github.com/jmgilman/go/errors"
)

// respondError writes err as a JSON error body with a status derived from its code.
func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(platformerrors.GetCode(err)), gin.H{
		"error": platformerrors.ToJSON(err),
	})
}

func statusFor(code platformerrors.ErrorCode) int {
	switch code {
	case platformerrors.CodeInvalidInput:
		return http.StatusBadRequest
	case platformerrors.CodeNotFound:
		return http.StatusNotFound
	case platformerrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case platformerrors.CodeDatabase:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
