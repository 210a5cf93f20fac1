package http

import (
	"net/http"

	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/MKhiriev/go-shop-keeper/internal/utils"
)

// withBearerToken stores the raw bearer token of the Authorization header in
// the request context. It never rejects a request: public operations run
// without a token and guarded ones verify it in the dispatcher.
func (h *Handler) withBearerToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		token, err := utils.ParseBearerToken(header)
		if err != nil {
			logger.FromRequest(r).Debug().Err(err).Str("func", "Handler.withBearerToken").Msg("ignoring authorization header")
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithBearerToken(r.Context(), token)))
	})
}
