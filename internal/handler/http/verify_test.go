package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-shop-keeper/internal/auth"
	"github.com/MKhiriev/go-shop-keeper/internal/config"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestVerifyEmail(t *testing.T) {
	tests := []struct {
		name       string
		verifyErr  error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "verified",
			wantStatus: http.StatusOK,
			wantBody:   "Email verified successfully",
		},
		{
			name:       "expired link",
			verifyErr:  fmt.Errorf("%w: exp", auth.ErrTokenExpired),
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Invalid or expired verification link",
		},
		{
			name:       "access token used as link",
			verifyErr:  auth.ErrInvalidCredentials,
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Invalid or expired verification link",
		},
		{
			name:       "database down",
			verifyErr:  errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   http.StatusText(http.StatusInternalServerError),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, s := newTestHandler(t, config.Server{})
			s.auth.EXPECT().VerifyEmail(gomock.Any(), "abc.def.ghi").Return(tt.verifyErr)

			req := httptest.NewRequest(http.MethodGet, "/verify/abc.def.ghi", nil)
			rec := httptest.NewRecorder()
			h.Init().ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.String())
			assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
		})
	}
}
