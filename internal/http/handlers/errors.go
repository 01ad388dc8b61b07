package handlers

import (
	"errors"
	"net/http"

	"backend/internal/domain"
	"backend/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// RespondError sends standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	reqID := middleware.GetRequestID(c)
	payload := gin.H{
		"error":      message,
		"request_id": reqID,
	}
	if err != nil {
		payload["detail"] = err.Error()
	}
	c.JSON(status, payload)
}

// RespondDomainError maps domain errors to HTTP responses. Field-level
// errors keep the raw {field: message} shape the form client expects;
// everything unexpected collapses into a generic 500.
func RespondDomainError(c *gin.Context, err error) {
	var (
		fieldErrs   domain.FieldErrors
		notFound    domain.NotFoundError
		conflict    domain.ConflictError
		credentials domain.InvalidCredentialsError
		unauth      domain.UnauthenticatedError
	)

	switch {
	case errors.As(err, &fieldErrs):
		c.JSON(http.StatusBadRequest, fieldErrs)
	case errors.As(err, &conflict):
		msg := conflict.Msg
		if msg == "" {
			msg = conflict.Error()
		}
		c.JSON(http.StatusBadRequest, gin.H{conflict.Field: msg})
	case errors.As(err, &notFound):
		if notFound.Field != "" {
			c.JSON(http.StatusNotFound, gin.H{notFound.Field: notFound.Error()})
			return
		}
		RespondError(c, http.StatusNotFound, notFound.Error(), nil)
	case errors.As(err, &credentials):
		c.JSON(http.StatusUnauthorized, gin.H{credentials.Field: credentials.Error()})
	case errors.As(err, &unauth):
		c.JSON(http.StatusUnauthorized, gin.H{"error": unauth.Error()})
	default:
		RespondError(c, http.StatusInternalServerError, "something went wrong", nil)
	}
}
