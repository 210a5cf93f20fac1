package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-shop-keeper/internal/config"
	"github.com/MKhiriev/go-shop-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestGetServerVersion(t *testing.T) {
	h, s := newTestHandler(t, config.Server{})

	s.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("1.4.0")
	s.appInfo.EXPECT().GetBuildInfo(gomock.Any()).Return(models.NewAppBuildInfo("1.4.0", "2026-10-01", "a1b2c3"))

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"version":"1.4.0","buildDate":"2026-10-01","buildCommit":"a1b2c3"}`, rec.Body.String())
}

func TestGetServerVersion_NoBuildInfo(t *testing.T) {
	h, s := newTestHandler(t, config.Server{})

	s.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("dev")
	s.appInfo.EXPECT().GetBuildInfo(gomock.Any()).Return(models.AppBuildInfo{})

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"version":"dev"}`, rec.Body.String())
}
