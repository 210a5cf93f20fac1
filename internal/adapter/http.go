package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/MKhiriev/go-shop-keeper/models"
	"github.com/go-resty/resty/v2"
)

const defaultTimeout = 15 * time.Second

// HTTPClientConfig configures [NewHTTPShopClient].
type HTTPClientConfig struct {
	// BaseURL of the server; "host:port" is read as http://host:port.
	BaseURL string
	// Timeout bounds one request. Defaults to 15s.
	Timeout time.Duration
}

type queryRequest struct {
	OperationName string `json:"operationName"`
	Variables     any    `json:"variables,omitempty"`
}

type wireError struct {
	Message    string `json:"message"`
	Extensions struct {
		Code     string `json:"code"`
		UserID   *int64 `json:"userId,omitempty"`
		Resource string `json:"resource,omitempty"`
	} `json:"extensions"`
}

type queryResponse struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []wireError                `json:"errors"`
}

type httpShopClient struct {
	client *resty.Client

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

func NewHTTPShopClient(cfg HTTPClientConfig, logger *logger.Logger) (ShopClient, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid shop address: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")

	return &httpShopClient{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Host == "" {
		return "", fmt.Errorf("address must include a host")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpShopClient) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpShopClient) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpShopClient) Query(ctx context.Context, operation string, variables, result any) error {
	var body queryResponse
	resp, err := h.request(ctx).
		SetBody(queryRequest{OperationName: operation, Variables: variables}).
		SetResult(&body).
		SetError(&body).
		Post("/query")
	if err != nil {
		return fmt.Errorf("%s request: %w", operation, err)
	}

	if resp.IsError() || len(body.Errors) > 0 {
		err = mapQueryError(resp.StatusCode(), body.Errors, resp.String())
		h.logger.Debug().Err(err).Str("func", "httpShopClient.Query").Str("operation", operation).Msg("query failed")
		return err
	}
	if result == nil {
		return nil
	}

	raw, ok := body.Data[operation]
	if !ok {
		return fmt.Errorf("%w: no data for %s", ErrMalformedResponse, operation)
	}
	if err = json.Unmarshal(raw, result); err != nil {
		return fmt.Errorf("%w: decoding %s: %w", ErrMalformedResponse, operation, err)
	}

	return nil
}

func (h *httpShopClient) Register(ctx context.Context, user models.RegisterUser) (models.AuthUser, error) {
	var auth models.AuthUser
	if err := h.Query(ctx, "registerUser", user, &auth); err != nil {
		return models.AuthUser{}, err
	}

	h.SetToken(auth.Token)
	return auth, nil
}

func (h *httpShopClient) Login(ctx context.Context, user models.LoginUser) (models.AuthUser, error) {
	var auth models.AuthUser
	if err := h.Query(ctx, "login", user, &auth); err != nil {
		return models.AuthUser{}, err
	}

	h.SetToken(auth.Token)
	return auth, nil
}

func (h *httpShopClient) PlaceOrder(ctx context.Context, request models.PlaceOrderRequest) (models.Order, error) {
	var order models.Order
	err := h.Query(ctx, "placeOrder", request, &order)
	return order, err
}

func (h *httpShopClient) CancelOrder(ctx context.Context, orderID int64) (models.Order, error) {
	var order models.Order
	err := h.Query(ctx, "cancelOrder", map[string]int64{"orderId": orderID}, &order)
	return order, err
}

func (h *httpShopClient) VerifyEmail(ctx context.Context, token string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("token", token).
		Get("/verify/{token}")
	if err != nil {
		return fmt.Errorf("verify email request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return mapQueryError(resp.StatusCode(), nil, resp.String())
	}
	return nil
}

func (h *httpShopClient) request(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}
