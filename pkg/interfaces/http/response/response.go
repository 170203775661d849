package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vsinha/partcounter/pkg/domain/entities"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondDomainError maps a classified error to its HTTP status.
// Unclassified errors are reported as 500 without leaking their text.
func RespondDomainError(c *gin.Context, err error) {
	_ = c.Error(err)

	var domainErr *entities.Error
	if !errors.As(err, &domainErr) {
		RespondError(c, http.StatusInternalServerError, "internal", errors.New("internal server error"))
		return
	}
	RespondError(c, StatusFor(domainErr.Kind), domainErr.Kind.Code(), domainErr)
}

// RespondBadRequest reports an undecodable request body or parameter
func RespondBadRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	RespondError(c, http.StatusBadRequest, "invalid_request", err)
}

// StatusFor returns the HTTP status of an error kind
func StatusFor(kind entities.ErrorKind) int {
	switch kind {
	case entities.InvalidInput, entities.InvalidQuantity:
		return http.StatusBadRequest
	case entities.NotFound, entities.UnknownPart:
		return http.StatusNotFound
	case entities.Conflict:
		return http.StatusConflict
	case entities.InvalidReference, entities.Overflow:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
