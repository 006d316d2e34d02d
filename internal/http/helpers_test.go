package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/mrlokans/readtrack/internal/database"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestParseIDParam_Valid(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "123"}}

	id, ok := parseIDParam(c, "id", 64)

	assert.True(t, ok)
	assert.Equal(t, uint64(123), id)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestParseIDParam_Invalid(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	id, ok := parseIDParam(c, "id", 64)

	assert.False(t, ok)
	assert.Equal(t, uint64(0), id)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid id")
}

func TestParseIDParam_Negative(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "-1"}}

	_, ok := parseIDParam(c, "id", 64)

	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestParseIDParam_TooWide(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "256"}}

	_, ok := parseIDParam(c, "id", 8)

	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRespondStoreError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
		contains string
	}{
		{"not found", fmt.Errorf("author 1: %w", database.ErrNotFound), http.StatusNotFound, "author not found"},
		{"validation", database.Missing("name"), http.StatusBadRequest, `"field":"name"`},
		{"constraint", fmt.Errorf("%w: fk", database.ErrConstraintViolation), http.StatusConflict, "constraint_violation"},
		{"not implemented", database.ErrNotImplemented, http.StatusNotImplemented, "not_implemented"},
		{"ambiguous", database.ErrAmbiguous, http.StatusInternalServerError, "internal server error"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondStoreError(c, tt.err, "author")

			assert.Equal(t, tt.expected, w.Code)
			assert.Contains(t, w.Body.String(), tt.contains)
			assert.NotContains(t, w.Body.String(), "boom")
		})
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	generated := w.Header().Get(requestIDHeader)
	assert.Len(t, generated, 36)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(requestIDHeader, "3f1c2a7e-5a7b-4c4d-9e57-0c2b8a1d9f10")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "3f1c2a7e-5a7b-4c4d-9e57-0c2b8a1d9f10", w.Header().Get(requestIDHeader))

	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set(requestIDHeader, "not-a-uuid")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.NotEqual(t, "not-a-uuid", w.Header().Get(requestIDHeader))
}
