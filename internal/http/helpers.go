package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/readtrack/internal/database"
)

// Transactor runs fn inside a scope that commits when fn returns nil.
type Transactor interface {
	InTx(ctx context.Context, fn func(s *database.Scope) error) error
}

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`    // machine-readable error code
	Details any    `json:"details,omitempty"` // additional context (validation errors, etc.)
}

// SuccessResponse is a standard success response with optional data.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// DeleteResponse reports how many rows a delete removed.
type DeleteResponse struct {
	Deleted int64 `json:"deleted"`
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondBindError reports a request body that could not be decoded. A value
// of the wrong type or width for its field is a validation error.
func respondBindError(c *gin.Context, err error, resource string) {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		respondStoreError(c, &database.ValidationError{
			Field:  typeErr.Field,
			Reason: "must be a " + typeErr.Type.String(),
		}, resource)
		return
	}
	respondBadRequest(c, "invalid request body")
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found", Code: "not_found"})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// respondError sends an error response with the given status code.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}

// respondStoreError maps a data-access error kind onto a status code.
func respondStoreError(c *gin.Context, err error, resource string) {
	var verr *database.ValidationError
	switch database.Kind(err) {
	case database.ErrNotFound:
		respondNotFound(c, resource)
	case database.ErrValidation:
		resp := ErrorResponse{Error: "validation failed", Code: "validation"}
		if errors.As(err, &verr) {
			resp.Details = gin.H{"field": verr.Field, "reason": verr.Reason}
		}
		c.JSON(http.StatusBadRequest, resp)
	case database.ErrConstraintViolation:
		c.JSON(http.StatusConflict, ErrorResponse{Error: "conflicts with existing data", Code: "constraint_violation"})
	case database.ErrNotImplemented:
		c.JSON(http.StatusNotImplemented, ErrorResponse{Error: "not implemented", Code: "not_implemented"})
	default:
		respondInternalError(c, err, resource)
	}
}

// --- Success Response Helpers ---

// respondCreated sends a 201 Created response with data.
func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// respondAccepted sends a 202 Accepted response (for async operations).
func respondAccepted(c *gin.Context, message string, data any) {
	c.JSON(http.StatusAccepted, SuccessResponse{Message: message, Data: data})
}

// --- Parameter Parsing ---

// parseIDParam extracts an unsigned integer ID of the given bit width from
// URL parameters. Responds with a 400 error and returns 0, false when the
// value is not a number or does not fit.
func parseIDParam(c *gin.Context, paramName string, bitSize int) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(paramName), 10, bitSize)
	if err != nil {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return id, true
}
