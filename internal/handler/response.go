package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/menta2k/image-identifier/pkg/admission"
	"github.com/menta2k/image-identifier/pkg/client"
	"github.com/menta2k/image-identifier/pkg/session"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapError translates submission errors to HTTP status codes and error
// codes. Validation problems are the user's to fix; model problems are
// upstream failures.
func MapError(err error) (status int, code, msg string) {
	var transport *client.TransportError

	switch {
	case errors.Is(err, session.ErrInvalidMode):
		return http.StatusNotFound, "UNKNOWN_MODE", "unknown mode; use plant, animal or skin"
	case errors.Is(err, session.ErrSubmissionInFlight):
		return http.StatusConflict, "SUBMISSION_IN_FLIGHT", "a submission is already in progress for this mode"
	case errors.Is(err, admission.ErrUnsupportedFormat):
		return http.StatusBadRequest, "UNSUPPORTED_FORMAT", err.Error()
	case errors.Is(err, admission.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", err.Error()
	case errors.Is(err, admission.ErrImageTooSmall):
		return http.StatusBadRequest, "IMAGE_TOO_SMALL", err.Error()
	case errors.Is(err, admission.ErrUnreadableImage):
		return http.StatusBadRequest, "UNREADABLE_IMAGE", "failed to read the uploaded image"
	case errors.Is(err, admission.ErrCategoryMismatch):
		return http.StatusBadRequest, "CATEGORY_MISMATCH", err.Error()
	case errors.Is(err, session.ErrIdentityUnresolved):
		return http.StatusUnprocessableEntity, "IDENTITY_UNRESOLVED", "could not identify the subject; please try a clearer image"
	case errors.Is(err, client.ErrModelUnavailable):
		return http.StatusServiceUnavailable, "MODEL_UNAVAILABLE", "the vision model is not available"
	case errors.Is(err, client.ErrEmptyResponse):
		return http.StatusBadGateway, "EMPTY_RESPONSE", "the vision model returned no text"
	case errors.As(err, &transport):
		return http.StatusBadGateway, "MODEL_TRANSPORT", "failed to reach the vision model"
	}
	return http.StatusInternalServerError, "INTERNAL", "internal error"
}
