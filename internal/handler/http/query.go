package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"

	"github.com/MKhiriev/go-shop-keeper/internal/auth"
	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/MKhiriev/go-shop-keeper/internal/utils"
	"github.com/MKhiriev/go-shop-keeper/models"
)

// maxQueryBodySize caps the /query request body.
const maxQueryBodySize = 1 << 20

type queryRequest struct {
	OperationName string          `json:"operationName"`
	Variables     json.RawMessage `json:"variables"`
}

type queryResponse struct {
	Data   map[string]any `json:"data,omitempty"`
	Errors []queryError   `json:"errors,omitempty"`
}

// call is what a resolver gets to know about the caller. Claims and UserID
// are zero for public operations.
type call struct {
	token     string
	claims    models.Claims
	userID    int64
	variables json.RawMessage
}

type resolver func(ctx context.Context, c call) (any, error)

// operation binds a resolver to the roles allowed to run it. An empty role
// list makes the operation public.
type operation struct {
	roles   []models.Role
	resolve resolver
}

// query dispatches POST /query to the operation table.
func (h *Handler) query(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req queryRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxQueryBodySize)).Decode(&req); err != nil {
		log.Err(err).Str("func", "Handler.query").Msg("invalid query body")
		h.writeError(w, r, fmt.Errorf("%w: %w", ErrMalformedRequest, err))
		return
	}

	op, ok := h.operations[req.OperationName]
	if !ok {
		h.writeError(w, r, fmt.Errorf("%w: %q", ErrUnknownOperation, req.OperationName))
		return
	}

	if req.OperationName == "login" && !h.loginLimiter.Allow(clientIP(r)) {
		log.Warn().Str("func", "Handler.query").Str("client", clientIP(r)).Msg("login rate exceeded")
		h.writeError(w, r, ErrTooManyRequests)
		return
	}

	c := call{variables: req.Variables}
	if len(op.roles) > 0 {
		claims, token, err := h.authenticate(ctx)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		if err = auth.Authorize(claims, op.roles...); err != nil {
			log.Info().Err(err).Str("func", "Handler.query").Str("operation", req.OperationName).Msg("operation denied")
			h.writeError(w, r, err)
			return
		}

		// Authenticate already parsed the subject, so the error is nil here.
		c.userID, _ = claims.UserID()
		c.claims = claims
		c.token = token
	}

	result, err := op.resolve(ctx, c)
	if err != nil {
		log.Err(err).Str("func", "Handler.query").Str("operation", req.OperationName).Msg("operation failed")
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, queryResponse{Data: map[string]any{req.OperationName: result}}, http.StatusOK)
}

// authenticate verifies the bearer token stored by withBearerToken.
func (h *Handler) authenticate(ctx context.Context) (models.Claims, string, error) {
	token, ok := utils.GetBearerTokenFromContext(ctx)
	if !ok {
		return models.Claims{}, "", fmt.Errorf("%w: missing bearer token", auth.ErrInvalidCredentials)
	}

	claims, err := h.services.AuthService.Authenticate(ctx, token)
	if err != nil {
		return models.Claims{}, "", err
	}

	if _, err = claims.UserID(); err != nil {
		return models.Claims{}, "", fmt.Errorf("%w: %w", auth.ErrInvalidCredentials, err)
	}

	return claims, token, nil
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	qe, status := toQueryError(err)
	if status == http.StatusInternalServerError {
		logger.FromRequest(r).Err(err).Str("func", "Handler.writeError").Msg("internal error")
	}

	utils.WriteJSON(w, queryResponse{Errors: []queryError{qe}}, status)
}

// decodeVariables decodes raw into a T. Absent variables decode to the zero
// value.
func decodeVariables[T any](raw json.RawMessage) (T, error) {
	var v T
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return v, nil
	}

	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("%w: variables: %w", ErrMalformedRequest, err)
	}
	return v, nil
}

// withVariables adapts a typed resolver to the operation table.
func withVariables[T any](fn func(ctx context.Context, c call, in T) (any, error)) resolver {
	return func(ctx context.Context, c call) (any, error) {
		in, err := decodeVariables[T](c.variables)
		if err != nil {
			return nil, err
		}
		return fn(ctx, c, in)
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
