package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"galleria/internal/models"
	"galleria/internal/services"
)

type stubRegistration struct {
	startErr  error
	verifyErr error
	resendErr error
}

func (s *stubRegistration) Start(context.Context, string, string, string) error {
	return s.startErr
}

func (s *stubRegistration) VerifyEmail(context.Context, string, string) (*models.User, *services.TokenPair, error) {
	if s.verifyErr != nil {
		return nil, nil, s.verifyErr
	}
	return &models.User{ID: 1, Email: "alice@example.com", IsVerified: true},
		&services.TokenPair{AccessToken: "at", RefreshToken: "rt"}, nil
}

func (s *stubRegistration) Resend(context.Context, string) error { return s.resendErr }
func (s *stubRegistration) Cancel(context.Context, string) error { return nil }

func registerRouter(stub *stubRegistration) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewRegisterHandler(stub)
	r := gin.New()
	r.POST("/register", h.Register)
	r.POST("/register/verify", h.VerifyEmail)
	r.POST("/register/resend", h.Resend)
	r.POST("/register/cancel", h.Cancel)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterHandler_StartAccepted(t *testing.T) {
	r := registerRouter(&stubRegistration{})

	w := postJSON(t, r, "/register", gin.H{
		"name": "Alice", "email": "alice@example.com", "password": "s3cret-pw",
	})

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Contains(t, w.Body.String(), "/register/verify")
}

func TestRegisterHandler_StartValidation(t *testing.T) {
	r := registerRouter(&stubRegistration{})

	// short password
	w := postJSON(t, r, "/register", gin.H{
		"name": "Alice", "email": "alice@example.com", "password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// malformed email
	w = postJSON(t, r, "/register", gin.H{
		"name": "Alice", "email": "not-an-email", "password": "s3cret-pw",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterHandler_StartEmailTaken(t *testing.T) {
	r := registerRouter(&stubRegistration{startErr: services.ErrEmailTaken})

	w := postJSON(t, r, "/register", gin.H{
		"name": "Alice", "email": "alice@example.com", "password": "s3cret-pw",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterHandler_VerifySuccess(t *testing.T) {
	r := registerRouter(&stubRegistration{})

	w := postJSON(t, r, "/register/verify", gin.H{
		"email": "alice@example.com", "code": "123456",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "access_token")
}

func TestRegisterHandler_VerifyErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", services.ErrCodeNotFound, http.StatusNotFound},
		{"expired", services.ErrCodeExpired, http.StatusBadRequest},
		{"mismatch", services.ErrCodeMismatch, http.StatusBadRequest},
		{"attempt cap", services.ErrTooManyAttempts, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := registerRouter(&stubRegistration{verifyErr: tc.err})
			w := postJSON(t, r, "/register/verify", gin.H{
				"email": "alice@example.com", "code": "123456",
			})
			assert.Equal(t, tc.wantStatus, w.Code)
		})
	}
}

func TestRegisterHandler_ResendThrottled(t *testing.T) {
	r := registerRouter(&stubRegistration{
		resendErr: &services.ThrottledError{RetryAfter: 40 * time.Second},
	})

	w := postJSON(t, r, "/register/resend", gin.H{"email": "alice@example.com"})

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.EqualValues(t, 40, body["retry_after"])
}

func TestRegisterHandler_ResendAlreadyVerified(t *testing.T) {
	r := registerRouter(&stubRegistration{resendErr: services.ErrAlreadyVerified})

	w := postJSON(t, r, "/register/resend", gin.H{"email": "alice@example.com"})

	// an already confirmed address is reported as success, not failure
	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["already_verified"])
}

func TestRegisterHandler_Cancel(t *testing.T) {
	r := registerRouter(&stubRegistration{})

	w := postJSON(t, r, "/register/cancel", gin.H{"email": "alice@example.com"})
	assert.Equal(t, http.StatusOK, w.Code)
}
