package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-shop-keeper/internal/auth"
	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/MKhiriev/go-shop-keeper/internal/utils"
	"github.com/go-chi/chi/v5"
)

// verifyEmail handles the link mailed by sendEmailVerification.
func (h *Handler) verifyEmail(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	token := chi.URLParam(r, "token")

	err := h.services.AuthService.VerifyEmail(r.Context(), token)
	switch {
	case err == nil:
		utils.WriteText(w, "Email verified successfully", http.StatusOK)
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrTokenExpired):
		log.Info().Err(err).Str("func", "Handler.verifyEmail").Msg("rejected verification token")
		utils.WriteText(w, "Invalid or expired verification link", http.StatusUnauthorized)
	default:
		log.Err(err).Str("func", "Handler.verifyEmail").Msg("email verification failed")
		utils.WriteText(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
