package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/yigit/studyhub/internal/app/models/dto"
	"github.com/yigit/studyhub/internal/pkg/apperrors"
)

type formError struct{ fields map[string]string }

func (e formError) Error() string              { return "Please correct the highlighted fields." }
func (e formError) Unwrap() error              { return apperrors.ErrValidationFailed }
func (e formError) ErrorDetails() interface{} { return e.fields }

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		status   int
		code     dto.ErrorCode
		message  string
		critical bool
	}{
		{name: "not implemented", err: apperrors.NewNotImplementedError("Liking an infovid"), status: http.StatusNotImplemented, code: dto.ErrorCodeNotImplemented, message: "Liking an infovid is not implemented"},
		{name: "wrapped not found", err: fmt.Errorf("load: %w", apperrors.ErrNoteNotFound), status: http.StatusNotFound, code: dto.ErrorCodeResourceNotFound, message: "Note not found"},
		{name: "rate limited", err: apperrors.ErrRateLimited, status: http.StatusTooManyRequests, code: dto.ErrorCodeRateLimited, message: "Too many requests"},
		{name: "custom message", err: apperrors.NewBadRequestError("you cannot follow yourself"), status: http.StatusBadRequest, code: dto.ErrorCodeBadRequest, message: "you cannot follow yourself"},
		{name: "already registered", err: apperrors.ErrAlreadyRegistered, status: http.StatusConflict, code: dto.ErrorCodeResourceAlreadyExists, message: "User already registered"},
		{name: "unknown", err: errors.New("boom"), status: http.StatusInternalServerError, code: dto.ErrorCodeInternalServer, message: "Internal server error", critical: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, detail := ErrorStatus(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, detail.Code)
			assert.Equal(t, tt.message, detail.Message)
			assert.Equal(t, tt.critical, detail.Severity == dto.ErrorSeverityCritical)
		})
	}
}

func TestErrorStatus_Detailer(t *testing.T) {
	err := formError{fields: map[string]string{"email": "Email is required."}}

	status, detail := ErrorStatus(err)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Please correct the highlighted fields.", detail.Message)
	assert.Equal(t, err.fields, detail.Details)
}

func TestHandleAPIError_AbortsWithEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Logging(zerolog.Nop()), Metrics())
	router.GET("/boom", func(c *gin.Context) {
		HandleAPIError(c, apperrors.ErrChatNotFound)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":{"code":"RES_001","message":"Chat not found","severity":"ERROR"}}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}
